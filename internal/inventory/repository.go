package inventory

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/inventory/dto"
	"github.com/fekuna/termas-hotel-service/internal/model"
)

type Repository interface {
	// Record applies every stock change and inserts every movement in one
	// transaction. A change that would leave a row negative fails the whole
	// call with model.ErrInsufficientStock.
	Record(ctx context.Context, movements []model.InventoryMovement, changes []model.StockChange) error

	// HasReference reports whether movements for the given reference exist.
	HasReference(ctx context.Context, referenceType, referenceID string) (bool, error)

	FindMovement(ctx context.Context, id string) (*model.InventoryMovement, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
	ListGroupedTransfers(ctx context.Context, filters *dto.TransferFilters) ([]model.GroupedTransfer, int, error)
	Stats(ctx context.Context) (*model.MovementStats, error)
}
