package tokencache

import (
	"careplan-service/internal/app/contracts"
	"careplan-service/internal/app/models"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/exceptions"
	"careplan-service/internal/pkg/utils"
	"context"
	"fmt"

	"github.com/goccy/go-json"
)

// RedisTokenMirror keeps provider tokens in redis until they expire.
type RedisTokenMirror struct {
	redisRepo contracts.RedisRepository
	clock     utils.Clock
}

var _ contracts.TokenMirror = (*RedisTokenMirror)(nil)

func NewRedisTokenMirror(redisRepo contracts.RedisRepository, clock utils.Clock) *RedisTokenMirror {
	return &RedisTokenMirror{
		redisRepo: redisRepo,
		clock:     clock,
	}
}

func (m *RedisTokenMirror) Load(ctx context.Context, provider string) (*models.AuthToken, error) {
	raw, err := m.redisRepo.Get(ctx, redisKey(provider))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var token models.AuthToken
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &token, nil
}

func (m *RedisTokenMirror) Store(ctx context.Context, provider string, token models.AuthToken) error {
	ttl := token.ExpiresAt.Sub(m.clock.Now())
	if ttl <= 0 {
		return nil
	}
	return m.redisRepo.Set(ctx, redisKey(provider), token, ttl)
}

func (m *RedisTokenMirror) Delete(ctx context.Context, provider string) error {
	return m.redisRepo.Delete(ctx, redisKey(provider))
}

func redisKey(provider string) string {
	return fmt.Sprintf(constvars.RedisKeyProviderTokenFormat, provider)
}
