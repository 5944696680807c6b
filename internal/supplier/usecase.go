package supplier

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/supplier/dto"
	"github.com/shopspring/decimal"
)

type UseCase interface {
	CreateSupplier(ctx context.Context, input *dto.SupplierInput) (*model.Supplier, error)
	GetSupplier(ctx context.Context, id string) (*model.Supplier, error)
	ListSuppliers(ctx context.Context, filters *dto.SupplierFilters) ([]model.Supplier, int, error)
	UpdateSupplier(ctx context.Context, id string, input *dto.SupplierInput) (*model.Supplier, error)
	SetActive(ctx context.Context, id string, active bool) (*model.Supplier, error)
	UpdateCreditLimit(ctx context.Context, id string, limit decimal.Decimal) (*model.Supplier, error)
}
