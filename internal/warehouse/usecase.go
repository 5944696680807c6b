package warehouse

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/warehouse/dto"
)

type UseCase interface {
	CreateWarehouse(ctx context.Context, input *dto.WarehouseInput) (*model.Warehouse, error)
	GetWarehouse(ctx context.Context, id string) (*model.Warehouse, error)
	ListWarehouses(ctx context.Context, filters *dto.WarehouseFilters) ([]model.Warehouse, int, error)
	UpdateWarehouse(ctx context.Context, id string, input *dto.WarehouseInput) (*model.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id string) error

	AssignProduct(ctx context.Context, input *dto.AssignProductInput) (*model.WarehouseProduct, error)
	RemoveProduct(ctx context.Context, warehouseID, productID string) error
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.WarehouseProduct, int, error)
}
