package contracts

import (
	"careplan-service/internal/app/models"
	"context"
	"time"
)

// ParticipantRepository lookups return (nil, nil) when nothing matches.
type ParticipantRepository interface {
	FindByPatientUserID(ctx context.Context, patientUserID, provider string) (*models.Participant, error)
	Create(ctx context.Context, participant *models.Participant) error
}

type EnrollmentRepository interface {
	FindByProviderEnrollmentID(ctx context.Context, provider, providerEnrollmentID string) (*models.Enrollment, error)
	FindActive(ctx context.Context, provider string, at time.Time) ([]models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
}

type ActivityRepository interface {
	// Upsert stores the activity keyed by provider, enrollment, action id,
	// schedule and sequence. A stored Completed status is never overwritten.
	Upsert(ctx context.Context, activity *models.CareplanActivity) error
}
