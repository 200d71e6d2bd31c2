package middlewares

import (
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/exceptions"
	"careplan-service/internal/pkg/utils"
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"
)

// RequireOpsAPIKey guards operational endpoints with App.OpsAPIKey.
// When no key is configured the endpoints stay open.
func (m *Middlewares) RequireOpsAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := m.InternalConfig.App.OpsAPIKey
		if expected == "" {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.Header.Get(constvars.HeaderXAPIKey)
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			m.Log.Warn("Ops API key rejected",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		next.ServeHTTP(w, r)
	})
}
