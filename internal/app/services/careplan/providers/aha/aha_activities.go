package aha

import (
	"careplan-service/internal/app/models"
	"careplan-service/internal/app/services/careplan/mapper"
	"careplan-service/internal/app/services/careplan/providers"
	"careplan-service/internal/app/services/careplan/providers/providerclient"
	"careplan-service/internal/app/services/careplan/translator"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/exceptions"
	"careplan-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func activitiesPath(enrollmentID string) string {
	return fmt.Sprintf("/%s/%s/%s", constvars.ResourceEnrollments, url.PathEscape(enrollmentID), constvars.ResourceActivities)
}

func (s *CareplanService) FetchActivities(ctx context.Context, enrollmentID string, fromDate, toDate time.Time) ([]models.CareplanActivity, error) {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("ahaCareplanService.FetchActivities called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEnrollmentIDKey, enrollmentID),
		zap.Time(constvars.LoggingFromDateKey, fromDate),
		zap.Time(constvars.LoggingToDateKey, toDate),
	)

	if err := providers.RequireCapability(s.ProviderName(), s.capabilities, models.CapabilityFetchActivities); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("fromDate", utils.FormatProviderDate(fromDate))
	query.Set("toDate", utils.FormatProviderDate(toDate))
	query.Set("pageSize", strconv.Itoa(s.cfg.PageSize))

	var response activitiesResponse
	err := s.do(ctx, providerclient.Request{
		Method:   http.MethodGet,
		Path:     activitiesPath(enrollmentID),
		Resource: constvars.ResourceActivities,
		Query:    query,
	}, &response)
	if err != nil {
		return nil, err
	}

	activities := make([]models.CareplanActivity, 0, len(response.Data.Activities))
	for index, raw := range response.Data.Activities {
		activity, err := s.toActivity(ctx, enrollmentID, raw)
		if err != nil {
			s.log.Warn("ahaCareplanService.FetchActivities skipping undecodable activity",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEnrollmentIDKey, enrollmentID),
				zap.Int(constvars.LoggingActivityIndexKey, index),
				zap.Error(err),
			)
			continue
		}
		activities = append(activities, *activity)
	}

	s.log.Info("ahaCareplanService.FetchActivities succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEnrollmentIDKey, enrollmentID),
		zap.Int(constvars.LoggingActivityCountKey, len(activities)),
	)
	return activities, nil
}

func (s *CareplanService) GetActivity(ctx context.Context, enrollmentID, providerActionID string, scheduledAt *time.Time) (*models.CareplanActivity, error) {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("ahaCareplanService.GetActivity called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEnrollmentIDKey, enrollmentID),
		zap.String(constvars.LoggingProviderActionIDKey, providerActionID),
	)

	if err := providers.RequireCapability(s.ProviderName(), s.capabilities, models.CapabilityGetActivity); err != nil {
		return nil, err
	}

	var query url.Values
	if scheduledAt != nil {
		query = url.Values{}
		query.Set("scheduledAt", utils.FormatProviderDate(*scheduledAt))
	}

	var response activityResponse
	err := s.do(ctx, providerclient.Request{
		Method:   http.MethodGet,
		Path:     activitiesPath(enrollmentID) + "/" + url.PathEscape(providerActionID),
		Resource: constvars.ResourceActivities,
		Query:    query,
	}, &response)
	if err != nil {
		return nil, err
	}
	return s.toActivity(ctx, enrollmentID, response.Data.Activity)
}

// CompleteActivity submits assessments with their answers and marks every
// other category completed. A provider that accepts a repeated completion
// makes it a success.
func (s *CareplanService) CompleteActivity(ctx context.Context, category models.ActivityCategory, enrollmentID, providerActionID string, updates *models.ActivityUpdates) (*models.CareplanActivity, error) {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("ahaCareplanService.CompleteActivity called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEnrollmentIDKey, enrollmentID),
		zap.String(constvars.LoggingProviderActionIDKey, providerActionID),
		zap.String(constvars.LoggingCategoryKey, string(category)),
	)

	if err := providers.RequireCapability(s.ProviderName(), s.capabilities, models.CapabilityCompleteActivity); err != nil {
		return nil, err
	}
	if updates == nil {
		updates = &models.ActivityUpdates{}
	}
	completedAt := s.deps.Clock.Now()
	if updates.CompletedAt != nil {
		completedAt = *updates.CompletedAt
	}

	if category == models.ActivityCategoryAssessment {
		return s.completeAssessment(ctx, enrollmentID, providerActionID, updates, completedAt)
	}

	var response activityResponse
	err := s.do(ctx, providerclient.Request{
		Method:   http.MethodPatch,
		Path:     activitiesPath(enrollmentID) + "/" + url.PathEscape(providerActionID),
		Resource: constvars.ResourceActivities,
		JSONBody: models.ActivityCompletionUpdate{
			CompletedAt: utils.FormatProviderDate(completedAt),
			Status:      constvars.ExternalStatusCompleted,
		},
	}, &response)
	if err != nil {
		return nil, err
	}

	activity, err := s.toActivity(ctx, enrollmentID, response.Data.Activity)
	if err != nil {
		return nil, err
	}
	activity.Category = category
	if activity.CompletedAt == nil {
		activity.CompletedAt = &completedAt
	}

	s.log.Info("ahaCareplanService.CompleteActivity succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderActionIDKey, activity.ProviderActionID),
	)
	return activity, nil
}

func (s *CareplanService) completeAssessment(ctx context.Context, enrollmentID, providerActionID string, updates *models.ActivityUpdates, completedAt time.Time) (*models.CareplanActivity, error) {
	requestID := utils.GetRequestID(ctx)
	if updates.ScheduledAt == nil || len(updates.Answers) == 0 {
		return nil, exceptions.ErrCareplanMissingAssessmentDetails(errors.New("scheduled date and answers are required"))
	}

	payload := translator.BuildCompletionUpdate(updates.Answers, completedAt)
	s.log.Info("ahaCareplanService.completeAssessment submitting answers",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAssessmentItemCountKey, len(payload.Items)),
	)

	query := url.Values{}
	query.Set("scheduledAt", utils.FormatProviderDate(*updates.ScheduledAt))
	query.Set("sequence", strconv.Itoa(updates.Sequence))

	var response assessmentResponse
	err := s.do(ctx, providerclient.Request{
		Method:   http.MethodPatch,
		Path:     fmt.Sprintf("/%s/%s/%s/%s", constvars.ResourceEnrollments, url.PathEscape(enrollmentID), constvars.ResourceAssessments, url.PathEscape(providerActionID)),
		Resource: constvars.ResourceAssessments,
		Query:    query,
		JSONBody: payload,
	}, &response)
	if err != nil {
		return nil, err
	}

	activity := s.assessmentActivity(enrollmentID, providerActionID, response.Data.Assessment, *updates.ScheduledAt, updates.Sequence)
	activity.Status = models.ProgressStatusCompleted
	activity.CompletedAt = &completedAt
	return activity, nil
}

// UpdateAssessmentActivity records answers on an assessment occurrence through
// the activity endpoint, with the status the caller gives.
func (s *CareplanService) UpdateAssessmentActivity(ctx context.Context, enrollmentID, providerActionID string, update *models.AssessmentActivityUpdate) (*models.CareplanActivity, error) {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("ahaCareplanService.UpdateAssessmentActivity called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEnrollmentIDKey, enrollmentID),
		zap.String(constvars.LoggingProviderActionIDKey, providerActionID),
	)

	if err := providers.RequireCapability(s.ProviderName(), s.capabilities, models.CapabilityUpdateAssessmentActivity); err != nil {
		return nil, err
	}
	if update == nil {
		return nil, exceptions.ErrPrecondition(errors.New("assessment update is required"))
	}
	if err := utils.ValidateStruct(update); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	query := url.Values{}
	query.Set("scheduledAt", utils.FormatProviderDate(update.ScheduledAt))
	query.Set("sequence", strconv.Itoa(update.Sequence))

	var response assessmentResponse
	err := s.do(ctx, providerclient.Request{
		Method:   http.MethodPatch,
		Path:     activitiesPath(enrollmentID) + "/" + url.PathEscape(providerActionID),
		Resource: constvars.ResourceActivities,
		Query:    query,
		JSONBody: models.ActivityCompletionUpdate{
			CompletedAt: utils.FormatProviderDate(update.CompletedAt),
			Status:      update.Status,
			Items:       translator.Translate(update.Answers).Items,
		},
	}, &response)
	if err != nil {
		return nil, err
	}

	activity := s.assessmentActivity(enrollmentID, providerActionID, response.Data.Assessment, update.ScheduledAt, update.Sequence)
	activity.Status = mapper.MapStatus(update.Status)
	if activity.Status == models.ProgressStatusCompleted {
		completedAt := update.CompletedAt
		activity.CompletedAt = &completedAt
	}

	s.log.Info("ahaCareplanService.UpdateAssessmentActivity succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderActionIDKey, activity.ProviderActionID),
	)
	return activity, nil
}

func (s *CareplanService) assessmentActivity(enrollmentID, providerActionID string, assessment activityPayload, scheduledAt time.Time, sequence int) *models.CareplanActivity {
	actionID := assessment.Code.String()
	if actionID == "" {
		actionID = providerActionID
	}
	return &models.CareplanActivity{
		EnrollmentID:     enrollmentID,
		Provider:         s.ProviderName(),
		Type:             assessment.Type,
		Category:         models.ActivityCategoryAssessment,
		ProviderActionID: actionID,
		Title:            mapper.ActivityTitle(deref(assessment.Name), deref(assessment.Title)),
		Language:         constvars.ActivityLanguageEnglish,
		ScheduledAt:      &scheduledAt,
		Sequence:         sequence,
	}
}

func (s *CareplanService) UpdateBiometricsActivity(ctx context.Context, enrollmentID, providerActionID string, update *models.BiometricsActivityUpdate) (*models.CareplanActivity, error) {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("ahaCareplanService.UpdateBiometricsActivity called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEnrollmentIDKey, enrollmentID),
		zap.String(constvars.LoggingProviderActionIDKey, providerActionID),
	)

	if err := providers.RequireCapability(s.ProviderName(), s.capabilities, models.CapabilityUpdateBiometricsActivity); err != nil {
		return nil, err
	}
	if update == nil {
		return nil, exceptions.ErrPrecondition(errors.New("biometrics update is required"))
	}
	if err := utils.ValidateStruct(update); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	var response activityResponse
	err := s.do(ctx, providerclient.Request{
		Method:   http.MethodPatch,
		Path:     activitiesPath(enrollmentID) + "/" + url.PathEscape(providerActionID),
		Resource: constvars.ResourceActivities,
		JSONBody: biometricsUpdateRequest{
			CompletedAt: utils.FormatProviderDate(update.CompletedAt),
			Comments:    update.Comments,
			Status:      update.Status,
		},
	}, &response)
	if err != nil {
		return nil, err
	}
	return s.toActivity(ctx, enrollmentID, response.Data.Activity)
}

func (s *CareplanService) toActivity(ctx context.Context, enrollmentID string, raw json.RawMessage) (*models.CareplanActivity, error) {
	var payload activityPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, exceptions.ErrCareplanDecodeResponse(err, constvars.ResourceActivities, s.ProviderName())
	}

	title := mapper.ActivityTitle(deref(payload.Name), deref(payload.Title))
	activity := &models.CareplanActivity{
		EnrollmentID:     enrollmentID,
		Provider:         s.ProviderName(),
		Type:             payload.Type,
		Category:         mapper.MapCategory(payload.Type, title),
		ProviderActionID: payload.Code.String(),
		Title:            title,
		Description:      mapper.ComposeDescription(deref(payload.Text), deref(payload.Description)),
		URL:              payload.URL,
		Language:         constvars.ActivityLanguageEnglish,
		Status:           mapper.MapStatus(deref(payload.Status)),
		Comments:         payload.Comments,
		RawContent:       append(json.RawMessage(nil), raw...),
	}
	if payload.Sequence != nil {
		activity.Sequence = *payload.Sequence
	}
	if payload.Frequency != nil {
		activity.Frequency = *payload.Frequency
	}
	activity.ScheduledAt = s.parseTimestamp(ctx, "scheduledAt", payload.ScheduledAt)
	activity.CompletedAt = s.parseTimestamp(ctx, "completedAt", payload.CompletedAt)
	return activity, nil
}

func (s *CareplanService) parseTimestamp(ctx context.Context, field string, value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	parsed, err := utils.ParseProviderTimestamp(*value)
	if err != nil {
		s.log.Warn("ahaCareplanService.parseTimestamp ignoring unparsable timestamp",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String("field", field),
			zap.String("value", *value),
		)
		return nil
	}
	return &parsed
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
