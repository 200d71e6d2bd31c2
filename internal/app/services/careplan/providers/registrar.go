package providers

import (
	"careplan-service/internal/app/contracts"
	"careplan-service/internal/app/models"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/exceptions"
	"careplan-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var errRegistrationInProgress = errors.New("participant registration already in progress")

// CreateParticipantFunc registers details upstream and returns the provider participant id.
type CreateParticipantFunc func(ctx context.Context, details *models.Participant) (string, error)

// Registrar makes participant registration idempotent per patient user and
// provider. Concurrent registrations in this process share one flight and,
// when a locker is configured, other instances are kept out by a redis lock.
type Registrar struct {
	provider string
	repo     contracts.ParticipantRepository
	locker   contracts.LockerService
	deps     Dependencies
	group    singleflight.Group
}

func NewRegistrar(provider string, deps Dependencies) *Registrar {
	deps = deps.WithDefaults()
	return &Registrar{
		provider: provider,
		repo:     deps.Participants,
		locker:   deps.Locker,
		deps:     deps,
	}
}

func (r *Registrar) Register(ctx context.Context, details *models.Participant, create CreateParticipantFunc) (*models.Participant, error) {
	requestID := utils.GetRequestID(ctx)
	log := r.deps.Log

	if details == nil {
		return nil, exceptions.ErrPrecondition(errors.New("participant details are required"))
	}
	if err := utils.ValidateStruct(details); err != nil {
		log.Error("Registrar.Register validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderKey, r.provider),
			zap.Error(err),
		)
		return nil, exceptions.ErrInputValidation(err)
	}

	existing, err := r.repo.FindByPatientUserID(ctx, details.PatientUserID, r.provider)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Info("Registrar.Register participant already registered",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderKey, r.provider),
			zap.String(constvars.LoggingPatientUserIDKey, details.PatientUserID),
		)
		return existing, nil
	}

	resultCh := r.group.DoChan(details.PatientUserID, func() (interface{}, error) {
		// concurrent callers wait on this flight, so it is detached from the first caller's cancellation
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.deps.RegistrationLockTTL)
		defer cancel()
		return r.register(flightCtx, details, create)
	})

	select {
	case result := <-resultCh:
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Val.(*models.Participant), nil
	case <-ctx.Done():
		return nil, exceptions.ErrServerDeadlineExceeded(ctx.Err())
	}
}

func (r *Registrar) register(ctx context.Context, details *models.Participant, create CreateParticipantFunc) (*models.Participant, error) {
	requestID := utils.GetRequestID(ctx)
	log := r.deps.Log

	// another flight may have persisted the participant after the first lookup
	existing, err := r.repo.FindByPatientUserID(ctx, details.PatientUserID, r.provider)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if r.locker != nil {
		lockKey := fmt.Sprintf(constvars.RedisKeyRegisterParticipantLock, r.provider, details.PatientUserID)
		acquired, lockValue, err := r.locker.TryLock(ctx, lockKey, r.deps.RegistrationLockTTL)
		if err != nil {
			return nil, err
		}
		if !acquired {
			existing, err := r.repo.FindByPatientUserID(ctx, details.PatientUserID, r.provider)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return existing, nil
			}
			log.Warn("Registrar.Register registration held by another instance",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingProviderKey, r.provider),
				zap.String(constvars.LoggingPatientUserIDKey, details.PatientUserID),
			)
			return nil, exceptions.ErrPrecondition(errRegistrationInProgress)
		}
		defer func() {
			if err := r.locker.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
				log.Warn("Registrar.Register failed to release registration lock",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingRedisKey, lockKey),
					zap.Error(err),
				)
			}
		}()
	}

	providerParticipantID, err := create(ctx, details)
	if err != nil {
		return nil, err
	}
	if providerParticipantID == "" {
		log.Error("Registrar.Register provider returned no participant id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderKey, r.provider),
			zap.String(constvars.LoggingPatientUserIDKey, details.PatientUserID),
		)
		return nil, exceptions.ErrCareplanMissingProviderID(constvars.ResourceParticipants, r.provider)
	}

	participant := *details
	participant.ID = uuid.New().String()
	participant.Provider = r.provider
	participant.ProviderParticipantID = providerParticipantID
	participant.SetCreatedAtUpdatedAt(r.deps.Clock.Now())

	if err := r.repo.Create(ctx, &participant); err != nil {
		return nil, err
	}

	log.Info("Registrar.Register succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderKey, r.provider),
		zap.String(constvars.LoggingPatientUserIDKey, participant.PatientUserID),
		zap.String(constvars.LoggingParticipantIDKey, participant.ProviderParticipantID),
	)
	return &participant, nil
}
