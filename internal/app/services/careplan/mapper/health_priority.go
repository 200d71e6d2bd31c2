package mapper

import (
	"careplan-service/internal/pkg/exceptions"
	"sort"
	"strings"
)

// HealthPriorities maps provider category codes to the category names patients pick.
var HealthPriorities = map[string]string{
	"BloodGlucose":     "Blood glucose",
	"BloodPressure":    "Blood pressure",
	"Cholesterol":      "Cholesterol",
	"HeartFailure":     "Heart failure",
	"Medication":       "Medication adherence",
	"Mood":             "Mood",
	"Nutrition":        "Nutrition",
	"PhysicalActivity": "Physical activity",
	"Sleep":            "Sleep",
	"Smoking":          "Quit smoking",
	"Stress":           "Stress management",
	"Weight":           "Weight management",
}

// ResolveHealthPriorityCode returns the provider code for a category given
// either as its display name or as the code itself, ignoring case.
func ResolveHealthPriorityCode(category string) (string, error) {
	category = strings.TrimSpace(category)
	codes := make([]string, 0, len(HealthPriorities))
	for code := range HealthPriorities {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		if strings.EqualFold(HealthPriorities[code], category) || strings.EqualFold(code, category) {
			return code, nil
		}
	}
	return "", exceptions.ErrCareplanUnknownHealthPriority(category)
}
