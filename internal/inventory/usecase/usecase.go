package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/inventory"
	"github.com/fekuna/termas-hotel-service/internal/inventory/dto"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/product"
	"github.com/fekuna/termas-hotel-service/internal/warehouse"
	"github.com/fekuna/termas-hotel-service/pkg/cache"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	lockTTL      = 10 * time.Second
	lockAttempts = 5
	lockWait     = 100 * time.Millisecond

	// ReferencePOSSale marks movements created from POS sales.
	ReferencePOSSale = "pos_sale"
)

type inventoryUseCase struct {
	repo       inventory.Repository
	products   product.Repository
	warehouses warehouse.Repository
	cache      *cache.RedisClient
	logger     logger.ZapLogger
}

// NewInventoryUseCase builds the inventory usecase. When cache is nil stock
// writes rely on row locks only.
func NewInventoryUseCase(repo inventory.Repository, products product.Repository, warehouses warehouse.Repository, cache *cache.RedisClient, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:       repo,
		products:   products,
		warehouses: warehouses,
		cache:      cache,
		logger:     log,
	}
}

func (uc *inventoryUseCase) CreateMovement(ctx context.Context, input *dto.MovementInput) (*model.InventoryMovement, error) {
	if !model.ValidMovementType(input.MovementType) {
		return nil, fmt.Errorf("%w: unknown movement type %q", model.ErrInvalidInput, input.MovementType)
	}
	if input.MovementType == model.MovementAdjust {
		if input.Quantity.IsZero() {
			return nil, fmt.Errorf("%w: adjustment quantity must not be zero", model.ErrInvalidInput)
		}
	} else if !input.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", model.ErrInvalidInput)
	}

	from, to := input.FromWarehouseID, input.ToWarehouseID
	switch input.MovementType {
	case model.MovementTransfer:
		if from == "" || to == "" {
			return nil, fmt.Errorf("%w: transfer needs source and destination warehouses", model.ErrInvalidInput)
		}
		if from == to {
			return nil, fmt.Errorf("%w: source and destination warehouses must differ", model.ErrInvalidInput)
		}
	case model.MovementIn:
		if to == "" || from != "" {
			return nil, fmt.Errorf("%w: entry needs only a destination warehouse", model.ErrInvalidInput)
		}
	case model.MovementOut:
		if from == "" || to != "" {
			return nil, fmt.Errorf("%w: exit needs only a source warehouse", model.ErrInvalidInput)
		}
	case model.MovementAdjust:
		if (from == "") == (to == "") {
			return nil, fmt.Errorf("%w: adjustment needs exactly one warehouse", model.ErrInvalidInput)
		}
	}

	if err := uc.ensureProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}
	for _, id := range []string{from, to} {
		if err := uc.ensureWarehouse(ctx, id); err != nil {
			return nil, err
		}
	}

	m := model.InventoryMovement{
		ID:              uuid.New().String(),
		ProductID:       input.ProductID,
		FromWarehouseID: optional(from),
		ToWarehouseID:   optional(to),
		MovementType:    input.MovementType,
		Quantity:        input.Quantity,
		Reason:          optional(input.Reason),
		Notes:           optional(input.Notes),
		ReferenceType:   optional(input.ReferenceType),
		ReferenceID:     optional(input.ReferenceID),
		UserID:          optional(input.UserID),
		CreatedAt:       time.Now(),
	}

	var changes []model.StockChange
	switch {
	case input.MovementType == model.MovementAdjust:
		// the quantity of an adjustment is a signed delta on its one warehouse
		changes = append(changes, model.StockChange{WarehouseID: from + to, ProductID: input.ProductID, Delta: input.Quantity})
	default:
		if from != "" {
			changes = append(changes, model.StockChange{WarehouseID: from, ProductID: input.ProductID, Delta: input.Quantity.Neg()})
		}
		if to != "" {
			changes = append(changes, model.StockChange{WarehouseID: to, ProductID: input.ProductID, Delta: input.Quantity})
		}
	}

	err := uc.withStockLock(ctx, []string{from, to}, func() error {
		return uc.repo.Record(ctx, []model.InventoryMovement{m}, changes)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("inventory movement recorded",
		zap.String("movement_id", m.ID),
		zap.String("type", m.MovementType),
		zap.String("product_id", m.ProductID),
		zap.String("quantity", m.Quantity.String()),
	)
	return &m, nil
}

func (uc *inventoryUseCase) TransferProducts(ctx context.Context, input *dto.TransferInput) (string, []model.InventoryMovement, error) {
	from, to := input.FromWarehouseID, input.ToWarehouseID
	if from == "" || to == "" {
		return "", nil, fmt.Errorf("%w: transfer needs source and destination warehouses", model.ErrInvalidInput)
	}
	if from == to {
		return "", nil, fmt.Errorf("%w: source and destination warehouses must differ", model.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Reason) == "" {
		return "", nil, fmt.Errorf("%w: reason is required", model.ErrInvalidInput)
	}
	lines, err := mergeLines(input.Products)
	if err != nil {
		return "", nil, err
	}

	for _, id := range []string{from, to} {
		if err := uc.ensureWarehouse(ctx, id); err != nil {
			return "", nil, err
		}
	}
	for _, l := range lines {
		if err := uc.ensureProduct(ctx, l.ProductID); err != nil {
			return "", nil, err
		}
	}

	batchID := uuid.New().String()
	now := time.Now()
	movements := make([]model.InventoryMovement, 0, len(lines))
	changes := make([]model.StockChange, 0, 2*len(lines))
	for _, l := range lines {
		movements = append(movements, model.InventoryMovement{
			ID:              uuid.New().String(),
			ProductID:       l.ProductID,
			FromWarehouseID: optional(from),
			ToWarehouseID:   optional(to),
			MovementType:    model.MovementTransfer,
			Quantity:        l.Quantity,
			Reason:          optional(input.Reason),
			Notes:           optional(input.Notes),
			BatchID:         &batchID,
			UserID:          optional(input.UserID),
			CreatedAt:       now,
		})
		changes = append(changes,
			model.StockChange{WarehouseID: from, ProductID: l.ProductID, Delta: l.Quantity.Neg()},
			model.StockChange{WarehouseID: to, ProductID: l.ProductID, Delta: l.Quantity},
		)
	}

	err = uc.withStockLock(ctx, []string{from, to}, func() error {
		return uc.repo.Record(ctx, movements, changes)
	})
	if err != nil {
		uc.logger.Warn("transfer rolled back", zap.String("batch_id", batchID), zap.Error(err))
		return "", nil, err
	}

	uc.logger.Info("products transferred",
		zap.String("batch_id", batchID),
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("lines", len(movements)),
	)
	return batchID, movements, nil
}

// mergeLines validates transfer lines and sums repeated products, keeping
// the order in which products first appear.
func mergeLines(in []dto.TransferLineInput) ([]dto.TransferLineInput, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: at least one product is required", model.ErrInvalidInput)
	}
	index := map[string]int{}
	var out []dto.TransferLineInput
	for _, l := range in {
		if l.ProductID == "" {
			return nil, fmt.Errorf("%w: product is required on every line", model.ErrInvalidInput)
		}
		if !l.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: quantity of product %s must be greater than zero", model.ErrInvalidInput, l.ProductID)
		}
		if i, ok := index[l.ProductID]; ok {
			out[i].Quantity = out[i].Quantity.Add(l.Quantity)
			continue
		}
		index[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out, nil
}

func (uc *inventoryUseCase) GetMovement(ctx context.Context, id string) (*model.InventoryMovement, error) {
	m, err := uc.repo.FindMovement(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("movement %s: %w", id, model.ErrNotFound)
	}
	return m, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	if filters.MovementType != "" && !model.ValidMovementType(filters.MovementType) {
		return nil, 0, fmt.Errorf("%w: unknown movement type %q", model.ErrInvalidInput, filters.MovementType)
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	return uc.repo.ListMovements(ctx, filters)
}

func (uc *inventoryUseCase) ListGroupedTransfers(ctx context.Context, filters *dto.TransferFilters) ([]model.GroupedTransfer, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	return uc.repo.ListGroupedTransfers(ctx, filters)
}

func (uc *inventoryUseCase) GetMovementStats(ctx context.Context) (*model.MovementStats, error) {
	return uc.repo.Stats(ctx)
}

func (uc *inventoryUseCase) RecordSale(ctx context.Context, warehouseID string, event *model.SaleCreatedEvent) error {
	sale := event.Payload
	seen, err := uc.repo.HasReference(ctx, ReferencePOSSale, sale.ID)
	if err != nil {
		return err
	}
	if seen {
		uc.logger.Debug("sale already deducted", zap.String("sale_id", sale.ID))
		return nil
	}

	reason := "Venta POS " + sale.SaleNumber
	var errs []error
	for _, item := range sale.Items {
		if item.ProductID == nil || *item.ProductID == "" || item.Quantity <= 0 {
			continue
		}
		qty := decimal.NewFromInt(int64(item.Quantity))
		m := model.InventoryMovement{
			ID:              uuid.New().String(),
			ProductID:       *item.ProductID,
			FromWarehouseID: &warehouseID,
			MovementType:    model.MovementOut,
			Quantity:        qty,
			Reason:          &reason,
			ReferenceType:   optional(ReferencePOSSale),
			ReferenceID:     optional(sale.ID),
			UserID:          sale.UserID,
			CreatedAt:       time.Now(),
		}
		change := model.StockChange{WarehouseID: warehouseID, ProductID: *item.ProductID, Delta: qty.Neg()}

		err := uc.withStockLock(ctx, []string{warehouseID}, func() error {
			return uc.repo.Record(ctx, []model.InventoryMovement{m}, []model.StockChange{change})
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("product %s: %w", *item.ProductID, err))
		}
	}
	return errors.Join(errs...)
}

// withStockLock serializes stock writes on every touched warehouse across
// instances. Locks are nested in sorted id order.
func (uc *inventoryUseCase) withStockLock(ctx context.Context, warehouseIDs []string, fn func() error) error {
	if uc.cache == nil {
		return fn()
	}
	ids := lockOrder(warehouseIDs)
	run := fn
	for i := len(ids) - 1; i >= 0; i-- {
		key, inner := lockKey(ids[i]), run
		run = func() error {
			return uc.cache.WithLock(ctx, key, uuid.New().String(), lockTTL, lockAttempts, lockWait, inner)
		}
	}
	return run()
}

func lockKey(warehouseID string) string {
	return "lock:inventory:warehouse:" + warehouseID
}

// lockOrder drops empty ids and duplicates and sorts the rest.
func lockOrder(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func (uc *inventoryUseCase) ensureProduct(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: product is required", model.ErrInvalidInput)
	}
	p, err := uc.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("product %s: %w", id, model.ErrNotFound)
	}
	return nil
}

func (uc *inventoryUseCase) ensureWarehouse(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	w, err := uc.warehouses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("warehouse %s: %w", id, model.ErrNotFound)
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
