package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/product"
	"github.com/fekuna/termas-hotel-service/internal/warehouse"
	"github.com/fekuna/termas-hotel-service/internal/warehouse/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var defaultMaxStock = decimal.NewFromInt(100)

type warehouseUseCase struct {
	repo     warehouse.Repository
	products product.Repository
	logger   logger.ZapLogger
}

func NewWarehouseUseCase(repo warehouse.Repository, products product.Repository, log logger.ZapLogger) warehouse.UseCase {
	return &warehouseUseCase{
		repo:     repo,
		products: products,
		logger:   log,
	}
}

func (uc *warehouseUseCase) CreateWarehouse(ctx context.Context, input *dto.WarehouseInput) (*model.Warehouse, error) {
	w := &model.Warehouse{}
	if err := uc.apply(ctx, w, input); err != nil {
		return nil, err
	}

	now := time.Now()
	w.BaseModel = model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}

	uc.logger.Info("warehouse created", zap.String("warehouse_id", w.ID), zap.String("name", w.Name))
	return w, nil
}

func (uc *warehouseUseCase) GetWarehouse(ctx context.Context, id string) (*model.Warehouse, error) {
	w, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("warehouse %s: %w", id, model.ErrNotFound)
	}
	return w, nil
}

func (uc *warehouseUseCase) ListWarehouses(ctx context.Context, filters *dto.WarehouseFilters) ([]model.Warehouse, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *warehouseUseCase) UpdateWarehouse(ctx context.Context, id string, input *dto.WarehouseInput) (*model.Warehouse, error) {
	w, err := uc.GetWarehouse(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, w, input); err != nil {
		return nil, err
	}
	w.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (uc *warehouseUseCase) DeleteWarehouse(ctx context.Context, id string) error {
	if _, err := uc.GetWarehouse(ctx, id); err != nil {
		return err
	}

	stocked, err := uc.repo.CountStocked(ctx, id)
	if err != nil {
		return err
	}
	if stocked > 0 {
		return fmt.Errorf("%w: warehouse still holds stock of %d products", model.ErrConflict, stocked)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("warehouse deleted", zap.String("warehouse_id", id))
	return nil
}

func (uc *warehouseUseCase) AssignProduct(ctx context.Context, input *dto.AssignProductInput) (*model.WarehouseProduct, error) {
	if _, err := uc.GetWarehouse(ctx, input.WarehouseID); err != nil {
		return nil, err
	}
	p, err := uc.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %s: %w", input.ProductID, model.ErrNotFound)
	}

	maxStock := defaultMaxStock
	if input.MaxStock != nil {
		maxStock = *input.MaxStock
	}
	if input.Quantity.IsNegative() || input.MinStock.IsNegative() || maxStock.IsNegative() {
		return nil, fmt.Errorf("%w: stock values must not be negative", model.ErrInvalidInput)
	}
	if maxStock.LessThan(input.MinStock) {
		return nil, fmt.Errorf("%w: max stock is below min stock", model.ErrInvalidInput)
	}

	now := time.Now()
	wp, err := uc.repo.UpsertProduct(ctx, &model.WarehouseProduct{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		WarehouseID: input.WarehouseID,
		ProductID:   input.ProductID,
		Quantity:    input.Quantity,
		MinStock:    input.MinStock,
		MaxStock:    maxStock,
	})
	if err != nil {
		return nil, err
	}
	wp.ProductName = p.Name
	wp.ProductSKU = p.SKU
	return wp, nil
}

func (uc *warehouseUseCase) RemoveProduct(ctx context.Context, warehouseID, productID string) error {
	wp, err := uc.repo.FindProduct(ctx, warehouseID, productID)
	if err != nil {
		return err
	}
	if wp == nil {
		return fmt.Errorf("product %s in warehouse %s: %w", productID, warehouseID, model.ErrNotFound)
	}
	if wp.Quantity.IsPositive() {
		return fmt.Errorf("%w: move out the remaining %s units first", model.ErrConflict, wp.Quantity)
	}
	return uc.repo.RemoveProduct(ctx, warehouseID, productID)
}

func (uc *warehouseUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.WarehouseProduct, int, error) {
	switch filters.StockFilter {
	case "", dto.StockAll, dto.StockWith, dto.StockWithout, dto.StockLow:
	default:
		return nil, 0, fmt.Errorf("%w: unknown stock filter %q", model.ErrInvalidInput, filters.StockFilter)
	}
	if _, err := uc.GetWarehouse(ctx, filters.WarehouseID); err != nil {
		return nil, 0, err
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	return uc.repo.ListProducts(ctx, filters)
}

func (uc *warehouseUseCase) apply(ctx context.Context, w *model.Warehouse, input *dto.WarehouseInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", model.ErrInvalidInput)
	}
	whType := input.Type
	if whType == "" {
		whType = model.WarehouseGeneral
	}
	if !model.ValidWarehouseType(whType) {
		return fmt.Errorf("%w: unknown warehouse type %q", model.ErrInvalidInput, whType)
	}

	var parent *string
	if input.ParentID != "" {
		if input.ParentID == w.ID {
			return fmt.Errorf("%w: a warehouse cannot be its own parent", model.ErrInvalidInput)
		}
		if _, err := uc.GetWarehouse(ctx, input.ParentID); err != nil {
			return err
		}
		id := input.ParentID
		parent = &id
	}

	w.Name = name
	w.Location = optional(input.Location)
	w.Type = whType
	w.ParentID = parent
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
