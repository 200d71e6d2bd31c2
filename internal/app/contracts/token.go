package contracts

import (
	"careplan-service/internal/app/models"
	"context"
)

// TokenMirror shares provider tokens between service instances.
type TokenMirror interface {
	Load(ctx context.Context, provider string) (*models.AuthToken, error)
	Store(ctx context.Context, provider string, token models.AuthToken) error
	Delete(ctx context.Context, provider string) error
}
