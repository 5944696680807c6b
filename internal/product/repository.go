package product

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error

	IsSKUTaken(ctx context.Context, sku, excludeID string) (bool, error)
	// NextSequence increments and returns the SKU sequence of a keyword hash.
	NextSequence(ctx context.Context, hash, keywords string) (int, error)

	// CountStockHolders counts warehouse rows that still hold the product.
	CountStockHolders(ctx context.Context, productID string) (int, error)
	CountPOSProducts(ctx context.Context, productID string) (int, error)
}
