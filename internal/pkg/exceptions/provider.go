package exceptions

import (
	"careplan-service/internal/pkg/constvars"
	"errors"
	"fmt"
)

var (
	ErrPreconditionFailed     = errors.New("precondition failed")
	ErrProviderAuthFailure    = errors.New("provider authentication failed")
	ErrCapabilityNotSupported = errors.New("capability not supported")
	ErrUnknownHealthPriority  = errors.New("unknown health priority")
	ErrUnknownProvider        = errors.New("unknown care plan provider")
	ErrMissingProviderID      = errors.New("provider response carries no identifier")
)

// ProviderError is a non-success answer from a care plan provider. It keeps the
// upstream status code and message so callers can decide on retries themselves.
type ProviderError struct {
	Provider   string
	Method     string
	Endpoint   string
	StatusCode int
	Message    string

	response *CustomError
}

func NewProviderError(provider, method, endpoint string, statusCode int, message string) *ProviderError {
	clientMessage := constvars.ErrClientCareplanProviderRejected
	if statusCode >= constvars.StatusInternalServerError {
		clientMessage = constvars.ErrClientCareplanProviderUnavailable
	}
	return &ProviderError{
		Provider:   provider,
		Method:     method,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
		response: WrapWithoutError(
			constvars.StatusBadGateway,
			clientMessage,
			fmt.Sprintf(constvars.ErrDevCareplanProviderResponse, provider, statusCode, endpoint),
		),
	}
}

// Unwrap exposes the 502 response the delivery layer renders for this error.
func (e *ProviderError) Unwrap() error {
	return e.response
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("careplan provider %s: %s %s returned %d: %s", e.Provider, e.Method, e.Endpoint, e.StatusCode, e.Message)
}

func AsProviderError(err error) (*ProviderError, bool) {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr, true
	}
	return nil, false
}

func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrPreconditionFailed)
}
