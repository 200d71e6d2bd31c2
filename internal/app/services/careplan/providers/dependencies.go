// Package providers holds what the care plan provider adapters share: their
// dependencies, idempotent participant registration and capability checks.
package providers

import (
	"careplan-service/internal/app/contracts"
	"careplan-service/internal/app/models"
	"careplan-service/internal/app/services/careplan/tokencache"
	"careplan-service/internal/pkg/exceptions"
	"careplan-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

var (
	errEnrollmentNotStored       = errors.New("enrollment is not stored")
	errParticipantDetailsMissing = errors.New("participant is not registered and no registration details were given")
)

type Dependencies struct {
	Participants        contracts.ParticipantRepository
	Enrollments         contracts.EnrollmentRepository
	Locker              contracts.LockerService
	Tokens              *tokencache.Cache
	Clock               utils.Clock
	HTTPClient          *http.Client
	Log                 *zap.Logger
	RegistrationLockTTL time.Duration
}

// WithDefaults fills the optional dependencies an adapter can run without.
func (d Dependencies) WithDefaults() Dependencies {
	if d.Clock == nil {
		d.Clock = utils.SystemClock{}
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Tokens == nil {
		d.Tokens = tokencache.New(d.Clock, tokencache.WithLogger(d.Log))
	}
	if d.RegistrationLockTTL <= 0 {
		d.RegistrationLockTTL = 30 * time.Second
	}
	return d
}

// RequireCapability fails before any network call when the adapter does not
// implement capability.
func RequireCapability(provider string, capabilities models.Capabilities, capability models.Capability) error {
	if capabilities.Supports(capability) {
		return nil
	}
	return exceptions.ErrCareplanCapabilityNotSupported(provider, string(capability))
}

// ResolveEnrollment loads the stored enrollment for a provider enrollment id.
func ResolveEnrollment(ctx context.Context, repo contracts.EnrollmentRepository, provider, enrollmentID string) (*models.Enrollment, error) {
	enrollment, err := repo.FindByProviderEnrollmentID(ctx, provider, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, exceptions.ErrCareplanEnrollmentNotFound(errEnrollmentNotStored, enrollmentID)
	}
	return enrollment, nil
}

// ResolveParticipant returns the registered participant of the enrolling patient,
// registering it from the enrollment's participant details when missing.
func ResolveParticipant(
	ctx context.Context,
	repo contracts.ParticipantRepository,
	provider string,
	enrollment *models.Enrollment,
	register func(ctx context.Context, details *models.Participant) (*models.Participant, error),
) (*models.Participant, error) {
	participant, err := repo.FindByPatientUserID(ctx, enrollment.PatientUserID, provider)
	if err != nil {
		return nil, err
	}
	if participant != nil {
		return participant, nil
	}
	if enrollment.Participant == nil {
		return nil, exceptions.ErrCareplanParticipantNotResolvable(errParticipantDetailsMissing, enrollment.PatientUserID)
	}

	details := *enrollment.Participant
	details.PatientUserID = enrollment.PatientUserID
	return register(ctx, &details)
}
