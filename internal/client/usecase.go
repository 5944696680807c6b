package client

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/client/dto"
	"github.com/fekuna/termas-hotel-service/internal/model"
)

type UseCase interface {
	CreateClient(ctx context.Context, input *dto.ClientInput) (*model.Client, error)
	GetClient(ctx context.Context, id string) (*model.Client, error)
	GetClientByRUT(ctx context.Context, rut string) (*model.Client, error)
	SearchClients(ctx context.Context, query string, limit int) ([]model.Client, error)
	ListClients(ctx context.Context, filters *dto.ClientFilters) ([]model.Client, int, error)
	UpdateClient(ctx context.Context, id string, input *dto.ClientInput) (*model.Client, error)
	UpdateClientStatus(ctx context.Context, id, status string) (*model.Client, error)
	SetFrequent(ctx context.Context, id string, frequent bool) (*model.Client, error)
	SetRanking(ctx context.Context, id string, ranking int) (*model.Client, error)
	// DeleteClient reports whether the client was only deactivated.
	DeleteClient(ctx context.Context, id string) (bool, error)
}
