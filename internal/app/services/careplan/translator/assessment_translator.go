// Package translator turns recorded assessment answers into the item/value
// payload providers accept for an assessment submission.
package translator

import (
	"careplan-service/internal/app/models"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/utils"
	"strconv"
	"time"
)

// Translate builds one submission item per answer that yields at least one value.
// Answers of an unrecognised response type are skipped.
func Translate(answers []models.AssessmentAnswer) models.AssessmentSubmission {
	submission := models.AssessmentSubmission{
		Items: make([]models.AssessmentSubmissionItem, 0, len(answers)),
	}
	for _, answer := range answers {
		values := answerValues(answer)
		if len(values) == 0 {
			continue
		}
		item := models.AssessmentSubmissionItem{
			ID:     answer.Node.ProviderGivenID,
			Values: make([]models.AssessmentSubmissionValue, 0, len(values)),
		}
		for _, value := range values {
			item.Values = append(item.Values, models.AssessmentSubmissionValue{Value: value})
		}
		submission.Items = append(submission.Items, item)
	}
	return submission
}

// BuildCompletionUpdate wraps the translated answers in a completed envelope
// dated on the day of completedAt.
func BuildCompletionUpdate(answers []models.AssessmentAnswer, completedAt time.Time) models.ActivityCompletionUpdate {
	return models.ActivityCompletionUpdate{
		CompletedAt: utils.FormatProviderDate(completedAt),
		Status:      constvars.ExternalStatusCompleted,
		Items:       Translate(answers).Items,
	}
}

func answerValues(answer models.AssessmentAnswer) []string {
	switch answer.ResponseType {
	case models.QueryResponseTypeSingleChoiceSelection:
		if answer.Option == nil {
			return nil
		}
		return []string{answer.Option.Text}
	case models.QueryResponseTypeMultiChoiceSelection:
		values := make([]string, 0, len(answer.Options))
		for _, option := range answer.Options {
			values = append(values, option.Text)
		}
		return values
	case models.QueryResponseTypeText:
		if answer.TextValue == nil {
			return nil
		}
		return []string{*answer.TextValue}
	case models.QueryResponseTypeInteger:
		if answer.IntegerValue == nil {
			return nil
		}
		return []string{strconv.FormatInt(*answer.IntegerValue, 10)}
	case models.QueryResponseTypeFloat:
		if answer.FloatValue == nil {
			return nil
		}
		return []string{formatFloat(*answer.FloatValue)}
	case models.QueryResponseTypeBoolean:
		if answer.BooleanValue == nil {
			return nil
		}
		return []string{strconv.FormatBool(*answer.BooleanValue)}
	case models.QueryResponseTypeOk:
		return []string{constvars.AssessmentOkValue}
	case models.QueryResponseTypeBiometrics:
		return biometricsValues(answer.Biometrics)
	default:
		return nil
	}
}

func biometricsValues(entries []models.BiometricsEntry) []string {
	var values []string
	appendValue := func(v *float64) {
		if v != nil {
			values = append(values, formatFloat(*v))
		}
	}

	for _, entry := range entries {
		switch entry.BiometricsType {
		case models.BiometricsTypeBloodGlucose:
			appendValue(entry.BloodGlucose)
		case models.BiometricsTypeBloodOxygenSaturation:
			appendValue(entry.BloodOxygenSaturation)
		case models.BiometricsTypeBloodPressure:
			appendValue(entry.Systolic)
			appendValue(entry.Diastolic)
		case models.BiometricsTypeBodyWeight:
			appendValue(entry.BodyWeight)
		case models.BiometricsTypeBodyTemperature:
			appendValue(entry.BodyTemperature)
		case models.BiometricsTypeBodyHeight:
			appendValue(entry.BodyHeight)
		case models.BiometricsTypePulse:
			appendValue(entry.Pulse)
		}
	}
	return values
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
