package client

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/client/dto"
	"github.com/fekuna/termas-hotel-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, c *model.Client) error
	FindByID(ctx context.Context, id string) (*model.Client, error)
	FindByRUT(ctx context.Context, rut string) (*model.Client, error)
	FindByEmail(ctx context.Context, email string) (*model.Client, error)
	FindAll(ctx context.Context, filters *dto.ClientFilters) ([]model.Client, int, error)
	// Search is the SQL fallback used when the search index is unavailable.
	Search(ctx context.Context, query string, limit int) ([]model.Client, error)
	Update(ctx context.Context, c *model.Client) error
	UpdateStatus(ctx context.Context, id, status string) error
	SetFrequent(ctx context.Context, id string, frequent bool) error
	SetRanking(ctx context.Context, id string, ranking int) error
	Delete(ctx context.Context, id string) error
	CountReservations(ctx context.Context, clientID string) (int, error)
}
