package controllers

import (
	"careplan-service/internal/app/contracts"
	"careplan-service/internal/app/services/careplan"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/dto/responses"
	"careplan-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type CareplanController struct {
	Log      *zap.Logger
	Registry *careplan.Registry
	Clock    utils.Clock
}

func NewCareplanController(logger *zap.Logger, registry *careplan.Registry, clock utils.Clock) *CareplanController {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &CareplanController{
		Log:      logger,
		Registry: registry,
		Clock:    clock,
	}
}

func (ctrl *CareplanController) Health(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, responses.HealthStatus{
		Status:    constvars.HealthStatusOK,
		Timestamp: ctrl.Clock.Now().UTC().Format(time.RFC3339),
	})
}

// ListProviders reports every registered provider with its capability set
// and whether its cached credential is currently usable.
func (ctrl *CareplanController) ListProviders(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("CareplanController.ListProviders called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	now := ctrl.Clock.Now()
	result := make([]responses.CareplanProviderStatus, 0)
	for _, name := range ctrl.Registry.Providers() {
		service, err := ctrl.Registry.Get(name)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, err)
			return
		}

		capabilities := service.Capabilities()
		status := responses.CareplanProviderStatus{
			Provider:     name,
			Capabilities: capabilities.List(),
			Version:      capabilities.Version,
		}
		if reporter, ok := service.(contracts.TokenStatusReporter); ok {
			if token, found := reporter.TokenStatus(); found {
				status.TokenValid = !token.IsExpiredAt(now)
				status.ExpiresAt = token.ExpiresAt.UTC().Format(time.RFC3339)
			}
		}
		result = append(result, status)
	}

	ctrl.Log.Info("CareplanController.ListProviders succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("provider_count", len(result)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCareplanProvidersSuccessMessage, result)
}
