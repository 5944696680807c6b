package assistant

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/assistant/dto"
	"github.com/fekuna/termas-hotel-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, u *model.TokenUsage) error
	FindAll(ctx context.Context, filters *dto.UsageFilters) ([]model.TokenUsage, int, error)
	// Stats aggregates the rows matching filters. MostUsedModel and
	// MostUsedFeature are left to the caller.
	Stats(ctx context.Context, filters *dto.UsageFilters) (*model.TokenUsageStats, error)
}
