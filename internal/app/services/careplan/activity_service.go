package careplan

import (
	"careplan-service/internal/app/contracts"
	"careplan-service/internal/app/models"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/exceptions"
	"careplan-service/internal/pkg/utils"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// ActivityService keeps the local activity store in step with the providers.
// Raw payloads are archived and events published when those collaborators are
// configured; their failures are logged and never fail the operation.
type ActivityService struct {
	registry   *Registry
	activities contracts.ActivityRepository
	archive    contracts.RawContentArchive
	publisher  contracts.ActivityEventPublisher
	clock      utils.Clock
	log        *zap.Logger
}

var _ contracts.CareplanActivityService = (*ActivityService)(nil)

func NewActivityService(
	registry *Registry,
	activities contracts.ActivityRepository,
	archive contracts.RawContentArchive,
	publisher contracts.ActivityEventPublisher,
	clock utils.Clock,
	logger *zap.Logger,
) *ActivityService {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &ActivityService{
		registry:   registry,
		activities: activities,
		archive:    archive,
		publisher:  publisher,
		clock:      clock,
		log:        logger,
	}
}

func (s *ActivityService) SyncActivities(ctx context.Context, provider string, enrollment *models.Enrollment, fromDate, toDate time.Time) ([]models.CareplanActivity, error) {
	requestID := utils.GetRequestID(ctx)
	if enrollment == nil {
		return nil, exceptions.ErrPrecondition(errors.New("enrollment is required"))
	}
	s.log.Info("ActivityService.SyncActivities called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderKey, provider),
		zap.String(constvars.LoggingEnrollmentIDKey, enrollment.ProviderEnrollmentID),
	)

	service, err := s.registry.Get(provider)
	if err != nil {
		return nil, err
	}
	activities, err := service.FetchActivities(ctx, enrollment.ProviderEnrollmentID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	for i := range activities {
		activity := &activities[i]
		activity.SetCreatedAtUpdatedAt(now)
		s.archiveRawContent(ctx, activity, now)
		if err := s.activities.Upsert(ctx, activity); err != nil {
			s.log.Error("ActivityService.SyncActivities error storing activity",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingProviderActionIDKey, activity.ProviderActionID),
				zap.Error(err),
			)
			return nil, err
		}
		s.publish(ctx, constvars.ActivityEventSynced, activity, now)
	}

	s.log.Info("ActivityService.SyncActivities succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderKey, provider),
		zap.Int(constvars.LoggingActivityCountKey, len(activities)),
	)
	return activities, nil
}

// CompleteActivity completes the activity at its provider, then stores it as
// Completed under the same occurrence key it was synced with.
func (s *ActivityService) CompleteActivity(ctx context.Context, provider string, activity *models.CareplanActivity, updates *models.ActivityUpdates) (*models.CareplanActivity, error) {
	requestID := utils.GetRequestID(ctx)
	if activity == nil {
		return nil, exceptions.ErrPrecondition(errors.New("activity is required"))
	}
	s.log.Info("ActivityService.CompleteActivity called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderKey, provider),
		zap.String(constvars.LoggingProviderActionIDKey, activity.ProviderActionID),
	)

	service, err := s.registry.Get(provider)
	if err != nil {
		return nil, err
	}
	var effective models.ActivityUpdates
	if updates != nil {
		effective = *updates
	}
	if effective.ScheduledAt == nil {
		effective.ScheduledAt = activity.ScheduledAt
		effective.Sequence = activity.Sequence
	}

	result, err := service.CompleteActivity(ctx, activity.Category, activity.EnrollmentID, activity.ProviderActionID, &effective)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	completed := *activity
	completed.Provider = provider
	completed.Status = models.ProgressStatusCompleted
	completed.CompletedAt = result.CompletedAt
	if completed.CompletedAt == nil {
		completed.CompletedAt = &now
	}
	if result.Comments != nil {
		completed.Comments = result.Comments
	}
	completed.SetUpdatedAt(now)
	if completed.CreatedAt.IsZero() {
		completed.CreatedAt = now
	}

	if err := s.activities.Upsert(ctx, &completed); err != nil {
		s.log.Error("ActivityService.CompleteActivity error storing activity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderActionIDKey, completed.ProviderActionID),
			zap.Error(err),
		)
		return nil, err
	}
	s.publish(ctx, constvars.ActivityEventCompleted, &completed, now)

	utils.LogBusinessEvent(s.log, constvars.ActivityEventCompleted, requestID,
		zap.String(constvars.LoggingProviderKey, provider),
		zap.String(constvars.LoggingEnrollmentIDKey, completed.EnrollmentID),
		zap.String(constvars.LoggingProviderActionIDKey, completed.ProviderActionID),
		zap.String(constvars.LoggingCategoryKey, string(completed.Category)),
	)
	return &completed, nil
}

func (s *ActivityService) archiveRawContent(ctx context.Context, activity *models.CareplanActivity, capturedAt time.Time) {
	if s.archive == nil || len(activity.RawContent) == 0 {
		return
	}
	objectName, err := s.archive.ArchiveRawContent(ctx, activity.Provider, activity.EnrollmentID, activity.ProviderActionID, capturedAt, activity.RawContent)
	if err != nil {
		s.log.Warn("ActivityService.archiveRawContent failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingProviderActionIDKey, activity.ProviderActionID),
			zap.Error(err),
		)
		return
	}
	s.log.Debug("ActivityService.archiveRawContent stored raw content",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
}

func (s *ActivityService) publish(ctx context.Context, eventType string, activity *models.CareplanActivity, occurredAt time.Time) {
	if s.publisher == nil {
		return
	}
	event := &models.ActivityEvent{
		EventType:        eventType,
		Provider:         activity.Provider,
		EnrollmentID:     activity.EnrollmentID,
		ProviderActionID: activity.ProviderActionID,
		Category:         activity.Category,
		Status:           activity.Status,
		ScheduledAt:      activity.ScheduledAt,
		OccurredAt:       occurredAt,
		RequestID:        utils.GetRequestID(ctx),
	}
	if err := s.publisher.PublishActivityEvent(ctx, event); err != nil {
		s.log.Warn("ActivityService.publish failed",
			zap.String(constvars.LoggingRequestIDKey, event.RequestID),
			zap.String(constvars.LoggingEventTypeKey, eventType),
			zap.Error(err),
		)
	}
}
