// Package rean adapts the REAN care plan API. It covers registration,
// enrollment, task retrieval and eligibility; everything else is reported as
// unsupported.
package rean

import (
	"careplan-service/internal/app/contracts"
	"careplan-service/internal/app/models"
	"careplan-service/internal/app/services/careplan/mapper"
	"careplan-service/internal/app/services/careplan/providers"
	"careplan-service/internal/app/services/careplan/providers/providerclient"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/exceptions"
	"careplan-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const capabilitiesVersion = "rean/v1"

type Config struct {
	BaseURL                  string
	APIKey                   string
	APIKeyTTLInSeconds       int
	EnrollmentDurationInDays int
	Timeout                  time.Duration
	RateLimitPerSecond       float64
	RateLimitBurst           int
}

type CareplanService struct {
	cfg          Config
	client       *providerclient.Client
	registrar    *providers.Registrar
	deps         providers.Dependencies
	log          *zap.Logger
	capabilities models.Capabilities
}

var (
	_ contracts.CareplanService     = (*CareplanService)(nil)
	_ contracts.TokenStatusReporter = (*CareplanService)(nil)
)

func NewCareplanService(cfg Config, deps providers.Dependencies) *CareplanService {
	deps = deps.WithDefaults()
	if cfg.APIKeyTTLInSeconds <= 0 {
		cfg.APIKeyTTLInSeconds = constvars.REANDefaultAPIKeyTTLInSeconds
	}
	if cfg.EnrollmentDurationInDays <= 0 {
		cfg.EnrollmentDurationInDays = constvars.REANDefaultEnrollmentDurationInDays
	}

	client := providerclient.New(providerclient.Config{
		Provider:           constvars.CareplanProviderREAN,
		BaseURL:            cfg.BaseURL,
		Timeout:            cfg.Timeout,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	}, deps.HTTPClient, deps.Log)

	return &CareplanService{
		cfg:          cfg,
		client:       client,
		registrar:    providers.NewRegistrar(constvars.CareplanProviderREAN, deps),
		deps:         deps,
		log:          deps.Log,
		capabilities: models.NewCapabilities(capabilitiesVersion,
			models.CapabilityInit,
			models.CapabilityRegisterPatient,
			models.CapabilityEnrollPatientToCarePlan,
			models.CapabilityFetchActivities,
			models.CapabilityGetPatientEligibility,
		),
	}
}

func (s *CareplanService) ProviderName() string {
	return constvars.CareplanProviderREAN
}

func (s *CareplanService) Capabilities() models.Capabilities {
	return s.capabilities
}

func (s *CareplanService) TokenStatus() (models.AuthToken, bool) {
	return s.deps.Tokens.Get(s.ProviderName())
}

// Init checks the configured API key against the service root.
func (s *CareplanService) Init(ctx context.Context) bool {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("reanCareplanService.Init called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if _, err := s.deps.Tokens.Refresh(ctx, s.ProviderName(), s.validateAPIKey); err != nil {
		s.log.Error("reanCareplanService.Init unable to connect to provider",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderKey, s.ProviderName()),
			zap.Error(err),
		)
		return false
	}

	s.log.Info("reanCareplanService.Init succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return true
}

func (s *CareplanService) validateAPIKey(ctx context.Context) (string, int, error) {
	_, err := s.client.Do(ctx, providerclient.Request{
		Method:  http.MethodGet,
		Path:    "",
		Headers: map[string]string{constvars.HeaderXAPIKey: s.cfg.APIKey},
	}, nil)
	if err != nil {
		return "", 0, exceptions.ErrCareplanProviderAuth(err, s.ProviderName())
	}
	return s.cfg.APIKey, s.cfg.APIKeyTTLInSeconds, nil
}

func (s *CareplanService) do(ctx context.Context, request providerclient.Request, out interface{}) error {
	token, err := s.deps.Tokens.EnsureValid(ctx, s.ProviderName(), s.validateAPIKey)
	if err != nil {
		return err
	}
	if request.Headers == nil {
		request.Headers = make(map[string]string)
	}
	request.Headers[constvars.HeaderXAPIKey] = token.Value

	_, err = s.client.Do(ctx, request, out)
	if providerErr, ok := exceptions.AsProviderError(err); ok && providerErr.StatusCode == constvars.StatusUnauthorized {
		s.deps.Tokens.Invalidate(ctx, s.ProviderName())
	}
	return err
}

// GetPatientEligibility rejects patients younger than the minimum age only for
// the restricted plan. It makes no network call.
func (s *CareplanService) GetPatientEligibility(ctx context.Context, birthDate time.Time, planCode string) (*models.EligibilityResult, error) {
	if err := providers.RequireCapability(s.ProviderName(), s.capabilities, models.CapabilityGetPatientEligibility); err != nil {
		return nil, err
	}

	turnedAdultAt := birthDate.AddDate(constvars.REANMinimumEligibleAge, 0, 0)
	if turnedAdultAt.Before(s.deps.Clock.Now()) || planCode != constvars.REANRestrictedPlanCode {
		return &models.EligibilityResult{Eligible: true}, nil
	}
	return &models.EligibilityResult{
		Eligible: false,
		Reason:   constvars.REANIneligibleTooYoungReason,
	}, nil
}

func (s *CareplanService) RegisterPatient(ctx context.Context, details *models.Participant) (*models.Participant, error) {
	if err := providers.RequireCapability(s.ProviderName(), s.capabilities, models.CapabilityRegisterPatient); err != nil {
		return nil, err
	}
	return s.registrar.Register(ctx, details, s.createParticipant)
}

func (s *CareplanService) createParticipant(ctx context.Context, details *models.Participant) (string, error) {
	firstName, lastName := utils.SplitFullName(details.Name)
	countryCode, phone := utils.SplitDialNumber(details.Phone)

	var response createdResponse
	err := s.do(ctx, providerclient.Request{
		Method:   http.MethodPost,
		Path:     "/" + constvars.ResourceParticipants,
		Resource: constvars.ResourceParticipants,
		JSONBody: participantRequest{
			ParticipantReferenceID: details.PatientUserID,
			FirstName:              firstName,
			LastName:               lastName,
			Gender:                 details.Gender,
			CountryCode:            countryCode,
			Phone:                  phone,
		},
		ExpectedStatus: constvars.StatusCreated,
	}, &response)
	if err != nil {
		return "", err
	}
	return response.Data.ID.String(), nil
}

func (s *CareplanService) EnrollPatientToCarePlan(ctx context.Context, enrollment *models.Enrollment) (string, error) {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("reanCareplanService.EnrollPatientToCarePlan called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := providers.RequireCapability(s.ProviderName(), s.capabilities, models.CapabilityEnrollPatientToCarePlan); err != nil {
		return "", err
	}
	if enrollment == nil {
		return "", exceptions.ErrPrecondition(errors.New("enrollment is required"))
	}
	if err := utils.ValidateStruct(enrollment); err != nil {
		return "", exceptions.ErrInputValidation(err)
	}
	careplanID, err := strconv.Atoi(enrollment.PlanCode)
	if err != nil {
		return "", exceptions.ErrPrecondition(err)
	}

	participant, err := providers.ResolveParticipant(ctx, s.deps.Participants, s.ProviderName(), enrollment, s.RegisterPatient)
	if err != nil {
		return "", err
	}

	now := s.deps.Clock.Now()
	endDate := enrollment.StartDate.AddDate(0, 0, s.cfg.EnrollmentDurationInDays)

	var response createdResponse
	err = s.do(ctx, providerclient.Request{
		Method:   http.MethodPost,
		Path:     "/" + constvars.ResourceEnrollments,
		Resource: constvars.ResourceEnrollments,
		JSONBody: enrollmentRequest{
			ParticipantID:  participant.ProviderParticipantID,
			CareplanID:     careplanID,
			StartDate:      utils.FormatProviderDate(enrollment.StartDate),
			EndDate:        utils.FormatProviderDate(endDate),
			EnrollmentDate: utils.FormatProviderDate(now),
			WeekOffset:     enrollment.WeekOffset,
			DayOffset:      enrollment.DayOffset,
		},
		ExpectedStatus: constvars.StatusCreated,
	}, &response)
	if err != nil {
		return "", err
	}
	providerEnrollmentID := response.Data.ID.String()
	if providerEnrollmentID == "" {
		return "", exceptions.ErrCareplanMissingProviderID(constvars.ResourceEnrollments, s.ProviderName())
	}

	stored := *enrollment
	stored.ID = uuid.New().String()
	stored.Provider = s.ProviderName()
	stored.ParticipantID = participant.ProviderParticipantID
	stored.ProviderEnrollmentID = providerEnrollmentID
	stored.EndDate = endDate
	stored.Participant = nil
	stored.SetCreatedAtUpdatedAt(now)
	if err := s.deps.Enrollments.Create(ctx, &stored); err != nil {
		return "", err
	}

	s.log.Info("reanCareplanService.EnrollPatientToCarePlan succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEnrollmentIDKey, stored.ProviderEnrollmentID),
		zap.String(constvars.LoggingPlanCodeKey, stored.PlanCode),
	)
	return stored.ProviderEnrollmentID, nil
}

// FetchActivities lists the enrollment tasks of the stored enrollment and keeps
// those scheduled on a day within [fromDate, toDate]. Unscheduled tasks are kept.
func (s *CareplanService) FetchActivities(ctx context.Context, enrollmentID string, fromDate, toDate time.Time) ([]models.CareplanActivity, error) {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("reanCareplanService.FetchActivities called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEnrollmentIDKey, enrollmentID),
	)

	if err := providers.RequireCapability(s.ProviderName(), s.capabilities, models.CapabilityFetchActivities); err != nil {
		return nil, err
	}
	enrollment, err := providers.ResolveEnrollment(ctx, s.deps.Enrollments, s.ProviderName(), enrollmentID)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("careplanId", enrollment.PlanCode)
	query.Set("participantId", enrollment.ParticipantID)

	var response enrollmentTasksResponse
	err = s.do(ctx, providerclient.Request{
		Method:   http.MethodGet,
		Path:     constvars.REANEnrollmentTasksSearchPath,
		Resource: constvars.ResourceActivities,
		Query:    query,
	}, &response)
	if err != nil {
		return nil, err
	}

	from := utils.StartOfDay(fromDate)
	to := utils.StartOfDay(toDate)
	activities := make([]models.CareplanActivity, 0, len(response.Data.Items))
	for index, raw := range response.Data.Items {
		activity, err := s.toActivity(ctx, enrollmentID, enrollment.PlanCode, raw)
		if err != nil {
			s.log.Warn("reanCareplanService.FetchActivities skipping undecodable task",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEnrollmentIDKey, enrollmentID),
				zap.Int(constvars.LoggingActivityIndexKey, index),
				zap.Error(err),
			)
			continue
		}
		if activity.ScheduledAt != nil {
			day := utils.StartOfDay(*activity.ScheduledAt)
			if day.Before(from) || day.After(to) {
				continue
			}
		}
		activities = append(activities, *activity)
	}

	s.log.Info("reanCareplanService.FetchActivities succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingActivityCountKey, len(activities)),
	)
	return activities, nil
}

func (s *CareplanService) toActivity(ctx context.Context, enrollmentID, planCode string, raw json.RawMessage) (*models.CareplanActivity, error) {
	var task enrollmentTask
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, exceptions.ErrCareplanDecodeResponse(err, constvars.ResourceActivities, s.ProviderName())
	}

	asset := task.Asset
	if asset == nil {
		asset = &taskAsset{}
	}
	title := deref(asset.Name)
	activity := &models.CareplanActivity{
		EnrollmentID:           enrollmentID,
		Provider:               s.ProviderName(),
		Type:                   deref(asset.AssetType),
		Category:               mapper.MapCategory(deref(asset.AssetType), title),
		ProviderActionID:       task.ID.String(),
		Title:                  title,
		Description:            deref(asset.Description),
		URL:                    asset.URL,
		Language:               constvars.ActivityLanguageEnglish,
		Status:                 mapper.MapStatus(deref(task.Status)),
		RawContent:             append(json.RawMessage(nil), raw...),
		PlanCode:               asset.AssetCode,
		TimeSlot:               task.TimeSlot,
		IsRegistrationActivity: task.IsRegistrationActivity,
	}
	if asset.AssetCode == nil {
		activity.PlanCode = &planCode
	}
	if participantID := task.ParticipantID.String(); participantID != "" {
		activity.ParticipantID = &participantID
	}
	if task.ScheduledDate != nil && *task.ScheduledDate != "" {
		scheduledAt, err := utils.ParseProviderTimestamp(*task.ScheduledDate)
		if err != nil {
			s.log.Warn("reanCareplanService.toActivity ignoring unparsable scheduled date",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingProviderActionIDKey, activity.ProviderActionID),
				zap.Error(err),
			)
		} else {
			activity.ScheduledAt = &scheduledAt
		}
	}
	return activity, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
