package contracts

import (
	"careplan-service/internal/app/models"
	"context"
	"time"
)

// CareplanService is the contract every care plan provider adapter implements.
// Operations outside Capabilities fail with exceptions.ErrCapabilityNotSupported
// before any network call is made.
type CareplanService interface {
	ProviderName() string
	Capabilities() models.Capabilities

	Init(ctx context.Context) bool
	RegisterPatient(ctx context.Context, details *models.Participant) (*models.Participant, error)
	EnrollPatientToCarePlan(ctx context.Context, enrollment *models.Enrollment) (string, error)
	FetchActivities(ctx context.Context, enrollmentID string, fromDate, toDate time.Time) ([]models.CareplanActivity, error)
	GetActivity(ctx context.Context, enrollmentID, providerActionID string, scheduledAt *time.Time) (*models.CareplanActivity, error)
	CompleteActivity(ctx context.Context, category models.ActivityCategory, enrollmentID, providerActionID string, updates *models.ActivityUpdates) (*models.CareplanActivity, error)
	UpdateBiometricsActivity(ctx context.Context, enrollmentID, providerActionID string, update *models.BiometricsActivityUpdate) (*models.CareplanActivity, error)
	UpdateAssessmentActivity(ctx context.Context, enrollmentID, providerActionID string, update *models.AssessmentActivityUpdate) (*models.CareplanActivity, error)
	GetGoals(ctx context.Context, enrollmentID, category string) ([]models.GoalRecord, error)
	GetActionPlans(ctx context.Context, enrollmentID, category string) ([]models.ActionPlanRecord, error)
	ConvertToAssessmentTemplate(ctx context.Context, activity *models.CareplanActivity) (*models.AssessmentTemplate, error)
	GetPatientEligibility(ctx context.Context, birthDate time.Time, planCode string) (*models.EligibilityResult, error)
}

// TokenStatusReporter is implemented by adapters that can report their cached token.
type TokenStatusReporter interface {
	TokenStatus() (models.AuthToken, bool)
}

type CareplanActivityService interface {
	SyncActivities(ctx context.Context, provider string, enrollment *models.Enrollment, fromDate, toDate time.Time) ([]models.CareplanActivity, error)
	CompleteActivity(ctx context.Context, provider string, activity *models.CareplanActivity, updates *models.ActivityUpdates) (*models.CareplanActivity, error)
}
