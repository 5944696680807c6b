package inventory

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/inventory/dto"
	"github.com/fekuna/termas-hotel-service/internal/model"
)

type UseCase interface {
	CreateMovement(ctx context.Context, input *dto.MovementInput) (*model.InventoryMovement, error)
	// TransferProducts moves several products between two warehouses under a
	// single batch id. It returns the batch id.
	TransferProducts(ctx context.Context, input *dto.TransferInput) (string, []model.InventoryMovement, error)
	GetMovement(ctx context.Context, id string) (*model.InventoryMovement, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
	ListGroupedTransfers(ctx context.Context, filters *dto.TransferFilters) ([]model.GroupedTransfer, int, error)
	GetMovementStats(ctx context.Context) (*model.MovementStats, error)

	// RecordSale deducts the items of a POS sale from warehouseID.
	RecordSale(ctx context.Context, warehouseID string, event *model.SaleCreatedEvent) error
}
