// Package providerclient is the outbound HTTP client shared by the care plan
// provider adapters.
package providerclient

import (
	"bytes"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/exceptions"
	"careplan-service/internal/pkg/utils"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Config struct {
	Provider           string
	BaseURL            string
	Timeout            time.Duration
	RateLimitPerSecond float64
	RateLimitBurst     int
}

type Client struct {
	provider   string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
}

// Request describes one outbound call. At most one of JSONBody and FormBody is sent.
type Request struct {
	Method         string
	Path           string
	Resource       string
	Query          url.Values
	Headers        map[string]string
	JSONBody       interface{}
	FormBody       url.Values
	ExpectedStatus int
}

type Response struct {
	StatusCode int
	Body       []byte
}

func New(cfg Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	var limiter *rate.Limiter
	if cfg.RateLimitPerSecond > 0 {
		burst := cfg.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), burst)
	}
	return &Client{
		provider:   cfg.Provider,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    limiter,
		log:        logger,
	}
}

func (c *Client) Provider() string {
	return c.provider
}

// Do sends the request and decodes a successful body into out when out is not nil.
// A status other than ExpectedStatus yields *exceptions.ProviderError.
func (c *Client) Do(ctx context.Context, request Request, out interface{}) (*Response, error) {
	requestID := utils.GetRequestID(ctx)
	endpoint := c.baseURL + request.Path

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.log.Error("providerClient.Do rate limiter wait aborted",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingProviderKey, c.provider),
				zap.String(constvars.LoggingEndpointKey, endpoint),
				zap.Error(err),
			)
			return nil, exceptions.ErrServerDeadlineExceeded(err)
		}
	}

	httpRequest, err := c.buildRequest(ctx, request, endpoint, requestID)
	if err != nil {
		c.log.Error("providerClient.Do error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderKey, c.provider),
			zap.String(constvars.LoggingEndpointKey, endpoint),
			zap.Error(err),
		)
		return nil, err
	}

	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		c.log.Error("providerClient.Do error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderKey, c.provider),
			zap.String(constvars.LoggingMethodKey, request.Method),
			zap.String(constvars.LoggingEndpointKey, endpoint),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, exceptions.ErrServerDeadlineExceeded(err)
		}
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer httpResponse.Body.Close()

	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		c.log.Error("providerClient.Do error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderKey, c.provider),
			zap.String(constvars.LoggingEndpointKey, endpoint),
			zap.Error(err),
		)
		return nil, exceptions.ErrReadHTTPResponse(err)
	}

	response := &Response{
		StatusCode: httpResponse.StatusCode,
		Body:       body,
	}

	expected := request.ExpectedStatus
	if expected == 0 {
		expected = constvars.StatusOK
	}
	if httpResponse.StatusCode != expected {
		message := extractErrorMessage(body)
		c.log.Error("providerClient.Do provider returned unexpected status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderKey, c.provider),
			zap.String(constvars.LoggingMethodKey, request.Method),
			zap.String(constvars.LoggingEndpointKey, endpoint),
			zap.Int(constvars.LoggingStatusCodeKey, httpResponse.StatusCode),
			zap.ByteString(constvars.LoggingResponseBodyKey, body),
		)
		return response, exceptions.NewProviderError(c.provider, request.Method, request.Path, httpResponse.StatusCode, message)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			c.log.Error("providerClient.Do error decoding response",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingProviderKey, c.provider),
				zap.String(constvars.LoggingEndpointKey, endpoint),
				zap.Error(err),
			)
			return response, exceptions.ErrCareplanDecodeResponse(err, request.Resource, c.provider)
		}
	}

	c.log.Info("providerClient.Do succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderKey, c.provider),
		zap.String(constvars.LoggingMethodKey, request.Method),
		zap.String(constvars.LoggingEndpointKey, endpoint),
		zap.Int(constvars.LoggingStatusCodeKey, httpResponse.StatusCode),
	)
	return response, nil
}

func (c *Client) buildRequest(ctx context.Context, request Request, endpoint, requestID string) (*http.Request, error) {
	if len(request.Query) > 0 {
		endpoint += "?" + request.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case request.FormBody != nil:
		body = strings.NewReader(request.FormBody.Encode())
		contentType = constvars.MIMEApplicationForm
	case request.JSONBody != nil:
		payload, err := json.Marshal(request.JSONBody)
		if err != nil {
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
		body = bytes.NewReader(payload)
		contentType = constvars.MIMEApplicationJSON
	}

	httpRequest, err := http.NewRequestWithContext(ctx, request.Method, endpoint, body)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}

	if contentType != "" {
		httpRequest.Header.Set(constvars.HeaderContentType, contentType)
	}
	httpRequest.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	httpRequest.Header.Set(constvars.HeaderCacheControl, constvars.CacheControlNoCache)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	httpRequest.Header.Set(constvars.HeaderXRequestID, requestID)
	for key, value := range request.Headers {
		httpRequest.Header.Set(key, value)
	}
	return httpRequest, nil
}

type errorBody struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

// extractErrorMessage reads error.message, a string error or a top level message,
// falling back to the raw body.
func extractErrorMessage(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if len(parsed.Error) > 0 {
			var nested struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(parsed.Error, &nested); err == nil && nested.Message != "" {
				return nested.Message
			}
			var plain string
			if err := json.Unmarshal(parsed.Error, &plain); err == nil && plain != "" {
				return plain
			}
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return strings.TrimSpace(string(body))
}
