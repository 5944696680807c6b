package notification

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/notification/dto"
)

type Repository interface {
	Create(ctx context.Context, e *model.SentEmail) error
	FindAll(ctx context.Context, filters *dto.SentEmailFilters) ([]model.SentEmail, int, error)
}
