package contracts

import (
	"careplan-service/internal/app/models"
	"context"
)

type ActivityEventPublisher interface {
	PublishActivityEvent(ctx context.Context, event *models.ActivityEvent) error
}
