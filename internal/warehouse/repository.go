package warehouse

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/warehouse/dto"
)

type Repository interface {
	Create(ctx context.Context, w *model.Warehouse) error
	FindByID(ctx context.Context, id string) (*model.Warehouse, error)
	FindAll(ctx context.Context, filters *dto.WarehouseFilters) ([]model.Warehouse, int, error)
	Update(ctx context.Context, w *model.Warehouse) error
	Delete(ctx context.Context, id string) error

	// CountStocked counts product rows of the warehouse with quantity > 0.
	CountStocked(ctx context.Context, warehouseID string) (int, error)

	UpsertProduct(ctx context.Context, wp *model.WarehouseProduct) (*model.WarehouseProduct, error)
	FindProduct(ctx context.Context, warehouseID, productID string) (*model.WarehouseProduct, error)
	RemoveProduct(ctx context.Context, warehouseID, productID string) error
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.WarehouseProduct, int, error)
}
