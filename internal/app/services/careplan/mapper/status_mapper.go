// Package mapper translates provider vocabulary into the internal care plan enums.
// Every function is total: unknown inputs fall back to a defined value.
package mapper

import (
	"careplan-service/internal/app/models"
	"careplan-service/internal/pkg/constvars"
)

var categoryByType = map[string]models.ActivityCategory{
	"Questionnaire": models.ActivityCategoryAssessment,
	"Assessment":    models.ActivityCategoryAssessment,
	"Video":         models.ActivityCategoryEducational,
	"Audio":         models.ActivityCategoryEducational,
	"Animation":     models.ActivityCategoryEducational,
	"Link":          models.ActivityCategoryEducational,
	"Infographic":   models.ActivityCategoryEducational,
	"Message":       models.ActivityCategoryMessage,
	"Goal":          models.ActivityCategoryGoal,
	"Challenge":     models.ActivityCategoryChallenge,
}

// Titles of Professional activities that are consultations. The spelling
// matches what the provider sends.
var consultationTitles = map[string]struct{}{
	"Weekely review": {},
	"Week televisit": {},
}

const professionalActivityType = "Professional"

func MapStatus(status string) models.ProgressStatus {
	switch status {
	case constvars.ExternalStatusPending:
		return models.ProgressStatusPending
	case constvars.ExternalStatusCompleted:
		return models.ProgressStatusCompleted
	default:
		return models.ProgressStatusUnknown
	}
}

func MapCategory(activityType, title string) models.ActivityCategory {
	if category, ok := categoryByType[activityType]; ok {
		return category
	}
	if activityType == professionalActivityType {
		if _, ok := consultationTitles[title]; ok {
			return models.ActivityCategoryConsultation
		}
	}
	return models.ActivityCategoryCustom
}

// ComposeDescription prefers description over text and terminates a non-empty
// result with a newline.
func ComposeDescription(text, description string) string {
	result := text
	if description != "" {
		result = description
	}
	if result == "" {
		return ""
	}
	return result + "\n"
}

func ActivityTitle(name, title string) string {
	if name != "" {
		return name
	}
	return title
}
