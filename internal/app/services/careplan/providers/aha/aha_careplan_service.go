// Package aha adapts the AHA continuity care plan API.
package aha

import (
	"careplan-service/internal/app/contracts"
	"careplan-service/internal/app/models"
	"careplan-service/internal/app/services/careplan/providers"
	"careplan-service/internal/app/services/careplan/providers/providerclient"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/exceptions"
	"careplan-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const capabilitiesVersion = "aha/v1"

type Config struct {
	BaseURL                  string
	ClientID                 string
	ClientSecret             string
	PageSize                 int
	DefaultTokenTTLInSeconds int
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
	if cfg.PageSize <= 0 {
		cfg.PageSize = constvars.AHADefaultPageSize
	}
	if cfg.DefaultTokenTTLInSeconds <= 0 {
		cfg.DefaultTokenTTLInSeconds = constvars.AHADefaultTokenTTLInSeconds
	}

	client := providerclient.New(providerclient.Config{
		Provider:           constvars.CareplanProviderAHA,
		BaseURL:            cfg.BaseURL,
		Timeout:            cfg.Timeout,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	}, deps.HTTPClient, deps.Log)

	return &CareplanService{
		cfg:          cfg,
		client:       client,
		registrar:    providers.NewRegistrar(constvars.CareplanProviderAHA, deps),
		deps:         deps,
		log:          deps.Log,
		capabilities: models.NewCapabilities(capabilitiesVersion,
			models.CapabilityInit,
			models.CapabilityRegisterPatient,
			models.CapabilityEnrollPatientToCarePlan,
			models.CapabilityFetchActivities,
			models.CapabilityGetActivity,
			models.CapabilityCompleteActivity,
			models.CapabilityUpdateBiometricsActivity,
			models.CapabilityUpdateAssessmentActivity,
			models.CapabilityGetGoals,
			models.CapabilityGetActionPlans,
			models.CapabilityConvertToAssessmentTemplate,
		),
	}
}

func (s *CareplanService) ProviderName() string {
	return constvars.CareplanProviderAHA
}

func (s *CareplanService) Capabilities() models.Capabilities {
	return s.capabilities
}

func (s *CareplanService) TokenStatus() (models.AuthToken, bool) {
	return s.deps.Tokens.Get(s.ProviderName())
}

// Init exchanges the client credentials for a fresh access token.
func (s *CareplanService) Init(ctx context.Context) bool {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("ahaCareplanService.Init called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	token, err := s.deps.Tokens.Refresh(ctx, s.ProviderName(), s.login)
	if err != nil {
		s.log.Error("ahaCareplanService.Init unable to connect to provider",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderKey, s.ProviderName()),
			zap.Error(err),
		)
		return false
	}

	s.log.Info("ahaCareplanService.Init succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Time(constvars.LoggingTokenExpiresAtKey, token.ExpiresAt),
	)
	return true
}

func (s *CareplanService) login(ctx context.Context) (string, int, error) {
	form := url.Values{}
	form.Set("client_id", s.cfg.ClientID)
	form.Set("client_secret", s.cfg.ClientSecret)
	form.Set("grant_type", constvars.AHAGrantTypeClientCredentials)

	var response tokenResponse
	_, err := s.client.Do(ctx, providerclient.Request{
		Method:   http.MethodPost,
		Path:     "/" + constvars.ResourceToken,
		Resource: constvars.ResourceToken,
		FormBody: form,
	}, &response)
	if err != nil {
		return "", 0, exceptions.ErrCareplanProviderAuth(err, s.ProviderName())
	}
	if response.AccessToken == "" {
		return "", 0, exceptions.ErrCareplanProviderAuth(errors.New("empty access token"), s.ProviderName())
	}

	if response.ExpiresIn != nil && *response.ExpiresIn > 0 {
		return response.AccessToken, *response.ExpiresIn, nil
	}
	return response.AccessToken, s.ttlFromClaims(response.AccessToken), nil
}

// ttlFromClaims reads the exp claim without verifying the signature; the
// provider is the only party that checks the token.
func (s *CareplanService) ttlFromClaims(accessToken string) int {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil || claims.ExpiresAt == nil {
		return s.cfg.DefaultTokenTTLInSeconds
	}
	ttl := int(claims.ExpiresAt.Time.Sub(s.deps.Clock.Now()).Seconds())
	if ttl <= 0 {
		return s.cfg.DefaultTokenTTLInSeconds
	}
	return ttl
}

// do sends an authenticated request. A rejected token is dropped so the next
// call logs in again; the failed call itself is not retried.
func (s *CareplanService) do(ctx context.Context, request providerclient.Request, out interface{}) error {
	token, err := s.deps.Tokens.EnsureValid(ctx, s.ProviderName(), s.login)
	if err != nil {
		return err
	}
	if request.Headers == nil {
		request.Headers = make(map[string]string)
	}
	request.Headers[constvars.HeaderAuthorization] = fmt.Sprintf(constvars.AuthorizationBearerFormat, token.Value)

	_, err = s.client.Do(ctx, request, out)
	if providerErr, ok := exceptions.AsProviderError(err); ok && providerErr.StatusCode == constvars.StatusUnauthorized {
		s.deps.Tokens.Invalidate(ctx, s.ProviderName())
	}
	return err
}

func (s *CareplanService) RegisterPatient(ctx context.Context, details *models.Participant) (*models.Participant, error) {
	if err := providers.RequireCapability(s.ProviderName(), s.capabilities, models.CapabilityRegisterPatient); err != nil {
		return nil, err
	}
	return s.registrar.Register(ctx, details, s.createParticipant)
}

func (s *CareplanService) createParticipant(ctx context.Context, details *models.Participant) (string, error) {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("ahaCareplanService.createParticipant called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientUserIDKey, details.PatientUserID),
	)

	meta := make(map[string]interface{})
	if details.Age > 0 {
		meta["age"] = details.Age
	} else if details.DOB != nil {
		meta["age"] = utils.CalculateAge(*details.DOB, s.deps.Clock.Now())
	}
	if details.DOB != nil {
		meta["dob"] = utils.FormatProviderDate(*details.DOB)
	}
	if details.Gender != "" {
		meta["gender"] = details.Gender
	}
	if details.HeightInInches != nil {
		meta["heightInInches"] = *details.HeightInInches
	}
	if details.MaritalStatus != nil {
		meta["maritalStatus"] = *details.MaritalStatus
	}
	if details.WeightInLbs != nil {
		meta["weightInLbs"] = *details.WeightInLbs
	}
	if details.ZipCode != nil {
		meta["zipCode"] = *details.ZipCode
	}

	var response participantResponse
	err := s.do(ctx, providerclient.Request{
		Method:   http.MethodPost,
		Path:     "/" + constvars.ResourceParticipants,
		Resource: constvars.ResourceParticipants,
		JSONBody: participantRequest{
			IsActive: 1,
			Meta:     meta,
			UserID:   details.PatientUserID,
			Name:     details.Name,
		},
	}, &response)
	if err != nil {
		return "", err
	}
	return response.Data.Participant.ID.String(), nil
}

func (s *CareplanService) EnrollPatientToCarePlan(ctx context.Context, enrollment *models.Enrollment) (string, error) {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("ahaCareplanService.EnrollPatientToCarePlan called",
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

	participant, err := providers.ResolveParticipant(ctx, s.deps.Participants, s.ProviderName(), enrollment, s.RegisterPatient)
	if err != nil {
		return "", err
	}

	body := enrollmentRequest{
		UserID:       enrollment.PatientUserID,
		CareplanCode: enrollment.PlanCode,
		StartAt:      utils.FormatProviderDate(enrollment.StartDate),
		Meta:         enrollmentMeta{Gender: enrollment.Gender},
	}
	if !enrollment.EndDate.IsZero() {
		body.EndAt = utils.FormatProviderDate(enrollment.EndDate)
	}

	var response enrollmentResponse
	err = s.do(ctx, providerclient.Request{
		Method:   http.MethodPost,
		Path:     "/" + constvars.ResourceEnrollments,
		Resource: constvars.ResourceEnrollments,
		JSONBody: body,
	}, &response)
	if err != nil {
		return "", err
	}
	providerEnrollmentID := response.Data.Enrollment.ID.String()
	if providerEnrollmentID == "" {
		return "", exceptions.ErrCareplanMissingProviderID(constvars.ResourceEnrollments, s.ProviderName())
	}

	stored := *enrollment
	stored.ID = uuid.New().String()
	stored.Provider = s.ProviderName()
	stored.ParticipantID = participant.ProviderParticipantID
	stored.ProviderEnrollmentID = providerEnrollmentID
	stored.Participant = nil
	stored.SetCreatedAtUpdatedAt(s.deps.Clock.Now())
	if err := s.deps.Enrollments.Create(ctx, &stored); err != nil {
		return "", err
	}

	s.log.Info("ahaCareplanService.EnrollPatientToCarePlan succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEnrollmentIDKey, stored.ProviderEnrollmentID),
		zap.String(constvars.LoggingPlanCodeKey, stored.PlanCode),
	)
	return stored.ProviderEnrollmentID, nil
}

func (s *CareplanService) GetPatientEligibility(ctx context.Context, birthDate time.Time, planCode string) (*models.EligibilityResult, error) {
	return nil, providers.RequireCapability(s.ProviderName(), s.capabilities, models.CapabilityGetPatientEligibility)
}
