package tokencache

import (
	"careplan-service/internal/app/contracts"
	"careplan-service/internal/app/models"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/utils"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultRefreshTimeout = 30 * time.Second

// RefreshFunc performs a provider login and returns the new token with its lifetime.
type RefreshFunc func(ctx context.Context) (value string, ttlSeconds int, err error)

// Cache holds one AuthToken per provider. Refreshes for the same provider are
// collapsed into a single in-flight call.
type Cache struct {
	mu             sync.RWMutex
	tokens         map[string]models.AuthToken
	clock          utils.Clock
	group          singleflight.Group
	mirror         contracts.TokenMirror
	refreshTimeout time.Duration
	log            *zap.Logger
}

type Option func(*Cache)

// WithMirror seeds the cache from a shared store on miss and writes refreshed tokens back.
func WithMirror(mirror contracts.TokenMirror) Option {
	return func(c *Cache) {
		c.mirror = mirror
	}
}

// WithRefreshTimeout bounds a shared refresh, which outlives the caller that started it.
func WithRefreshTimeout(timeout time.Duration) Option {
	return func(c *Cache) {
		if timeout > 0 {
			c.refreshTimeout = timeout
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		c.log = logger
	}
}

func New(clock utils.Clock, opts ...Option) *Cache {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	c := &Cache{
		tokens:         make(map[string]models.AuthToken),
		clock:          clock,
		refreshTimeout: defaultRefreshTimeout,
		log:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) Get(provider string) (models.AuthToken, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	token, ok := c.tokens[provider]
	return token, ok
}

func (c *Cache) Set(provider, value string, ttlSeconds int) models.AuthToken {
	token := models.AuthToken{
		Value:     value,
		ExpiresAt: c.clock.Now().Add(time.Duration(ttlSeconds) * time.Second),
	}
	c.mu.Lock()
	c.tokens[provider] = token
	c.mu.Unlock()
	return token
}

func (c *Cache) IsExpired(provider string) bool {
	token, ok := c.Get(provider)
	if !ok {
		return true
	}
	return token.IsExpiredAt(c.clock.Now())
}

// Invalidate drops the cached and mirrored token so the next EnsureValid
// performs a login.
func (c *Cache) Invalidate(ctx context.Context, provider string) {
	c.mu.Lock()
	delete(c.tokens, provider)
	c.mu.Unlock()

	if c.mirror == nil {
		return
	}
	if err := c.mirror.Delete(ctx, provider); err != nil {
		c.log.Warn("tokencache.Cache failed to delete token from mirror",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingProviderKey, provider),
			zap.Error(err),
		)
	}
}

// Refresh always performs a login through fn, sharing the call with any
// concurrent refresh of the same provider.
func (c *Cache) Refresh(ctx context.Context, provider string, fn RefreshFunc) (models.AuthToken, error) {
	return c.flight(ctx, provider, fn, true)
}

// EnsureValid returns the cached token while it is valid and refreshes it otherwise.
func (c *Cache) EnsureValid(ctx context.Context, provider string, fn RefreshFunc) (models.AuthToken, error) {
	if token, ok := c.Get(provider); ok && !token.IsExpiredAt(c.clock.Now()) {
		return token, nil
	}
	if token, ok := c.loadFromMirror(ctx, provider); ok {
		return token, nil
	}
	return c.flight(ctx, provider, fn, false)
}

func (c *Cache) flight(ctx context.Context, provider string, fn RefreshFunc, force bool) (models.AuthToken, error) {
	resultCh := c.group.DoChan(provider, func() (interface{}, error) {
		// a flight that finished just before this one may already have refreshed
		if !force {
			if token, ok := c.Get(provider); ok && !token.IsExpiredAt(c.clock.Now()) {
				return token, nil
			}
		}

		// shared by every waiting caller, so it outlives the one that started it
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout)
		defer cancel()

		requestID := utils.GetRequestID(ctx)
		c.log.Info("tokencache.Cache refreshing provider token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderKey, provider),
		)

		value, ttlSeconds, err := fn(refreshCtx)
		if err != nil {
			return models.AuthToken{}, err
		}
		token := c.Set(provider, value, ttlSeconds)
		c.storeToMirror(refreshCtx, provider, token)

		c.log.Info("tokencache.Cache provider token refreshed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderKey, provider),
			zap.Time(constvars.LoggingTokenExpiresAtKey, token.ExpiresAt),
		)
		return token, nil
	})

	select {
	case result := <-resultCh:
		if result.Err != nil {
			return models.AuthToken{}, result.Err
		}
		return result.Val.(models.AuthToken), nil
	case <-ctx.Done():
		return models.AuthToken{}, ctx.Err()
	}
}

func (c *Cache) loadFromMirror(ctx context.Context, provider string) (models.AuthToken, bool) {
	if c.mirror == nil {
		return models.AuthToken{}, false
	}
	token, err := c.mirror.Load(ctx, provider)
	if err != nil {
		c.log.Warn("tokencache.Cache failed to load token from mirror",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingProviderKey, provider),
			zap.Error(err),
		)
		return models.AuthToken{}, false
	}
	if token == nil || token.IsExpiredAt(c.clock.Now()) {
		return models.AuthToken{}, false
	}

	c.mu.Lock()
	c.tokens[provider] = *token
	c.mu.Unlock()
	return *token, true
}

func (c *Cache) storeToMirror(ctx context.Context, provider string, token models.AuthToken) {
	if c.mirror == nil {
		return
	}
	if err := c.mirror.Store(ctx, provider, token); err != nil {
		c.log.Warn("tokencache.Cache failed to store token in mirror",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingProviderKey, provider),
			zap.Error(err),
		)
	}
}
