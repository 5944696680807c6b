package supplier

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/supplier/dto"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, s *model.Supplier) error
	FindByID(ctx context.Context, id string) (*model.Supplier, error)
	FindByRUT(ctx context.Context, rut string) (*model.Supplier, error)
	FindAll(ctx context.Context, filters *dto.SupplierFilters) ([]model.Supplier, int, error)
	Update(ctx context.Context, s *model.Supplier) error
	SetActive(ctx context.Context, id string, active bool) error
	UpdateCreditLimit(ctx context.Context, id string, limit decimal.Decimal) error
}
