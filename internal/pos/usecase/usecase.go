package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/auth"
	"github.com/fekuna/termas-hotel-service/internal/category"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/pettycash"
	"github.com/fekuna/termas-hotel-service/internal/pos"
	"github.com/fekuna/termas-hotel-service/internal/pos/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var registerTypes = []int{model.RegisterReception, model.RegisterRestaurant}

type posUseCase struct {
	repo       pos.Repository
	categories category.Repository
	sessions   pettycash.Repository
	publisher  pos.EventPublisher
	logger     logger.ZapLogger
	now        func() time.Time
}

// NewPOSUseCase wires the POS flows. publisher may be nil, in which case no
// SaleCreated events are emitted.
func NewPOSUseCase(
	repo pos.Repository,
	categories category.Repository,
	sessions pettycash.Repository,
	publisher pos.EventPublisher,
	log logger.ZapLogger,
) pos.UseCase {
	return &posUseCase{
		repo:       repo,
		categories: categories,
		sessions:   sessions,
		publisher:  publisher,
		logger:     log,
		now:        time.Now,
	}
}

func (uc *posUseCase) SyncPOSProducts(ctx context.Context) (*model.SyncResult, error) {
	defaults := map[int]*model.Category{}
	for _, rt := range registerTypes {
		c, err := uc.categories.DefaultForRegister(ctx, rt)
		if err != nil {
			return nil, err
		}
		if c != nil {
			defaults[rt] = c
		}
	}
	if len(defaults) == 0 {
		return nil, fmt.Errorf("%w: no active POS category for any register type", model.ErrInvalidInput)
	}

	result := &model.SyncResult{}
	for _, rt := range registerTypes {
		cat, ok := defaults[rt]
		if !ok {
			uc.logger.Warn("skipping register without category", zap.Int("register_type_id", rt))
			continue
		}
		pending, err := uc.repo.PendingSync(ctx, rt)
		if err != nil {
			return nil, err
		}
		for i := range pending {
			p := &pending[i]
			err := uc.repo.CreateProduct(ctx, newPOSProduct(p, cat, uc.now()))
			switch {
			case errors.Is(err, model.ErrConflict):
				result.Skipped++
			case err != nil:
				result.Errors = append(result.Errors, fmt.Sprintf("%s (%s): %v", p.Name, model.RegisterCode(rt), err))
			case rt == model.RegisterReception:
				result.Reception++
			default:
				result.Restaurant++
			}
		}
	}

	uc.logger.Info("pos products synced",
		zap.Int("reception", result.Reception),
		zap.Int("restaurant", result.Restaurant),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func newPOSProduct(p *model.Product, cat *model.Category, now time.Time) *model.POSProduct {
	productID := p.ID
	return &model.POSProduct{
		BaseModel:      model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:           p.Name,
		Description:    p.Description,
		SKU:            model.POSSKU(p, cat.RegisterTypeID),
		Price:          model.POSPrice(p),
		Cost:           p.CostPrice.Round(0),
		CategoryID:     cat.ID,
		RegisterTypeID: cat.RegisterTypeID,
		ProductID:      &productID,
		IsActive:       true,
	}
}

func (uc *posUseCase) GetSyncStats(ctx context.Context) (*model.SyncStats, error) {
	return uc.repo.SyncStats(ctx)
}

func (uc *posUseCase) ListPOSProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.POSProduct, int, error) {
	if filters.RegisterTypeID != 0 && model.RegisterCode(filters.RegisterTypeID) == "" {
		return nil, 0, fmt.Errorf("%w: unknown register type %d", model.ErrInvalidInput, filters.RegisterTypeID)
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	filters.SearchQuery = strings.TrimSpace(filters.SearchQuery)
	return uc.repo.FindProducts(ctx, filters)
}

func (uc *posUseCase) CreateSale(ctx context.Context, input *dto.SaleInput) (*model.Sale, error) {
	session, err := uc.openSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: a sale needs at least one item", model.ErrInvalidInput)
	}
	if input.DiscountAmount.IsNegative() || input.TaxAmount.IsNegative() {
		return nil, fmt.Errorf("%w: discount and tax must not be negative", model.ErrInvalidInput)
	}

	now := uc.now()
	sale := &model.Sale{
		BaseModel:      model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		SessionID:      session.ID,
		RegisterTypeID: session.RegisterTypeID,
		CustomerName:   optional(input.CustomerName),
		ClientID:       optional(input.ClientID),
		TableNumber:    optional(input.TableNumber),
		RoomNumber:     optional(input.RoomNumber),
		TaxAmount:      input.TaxAmount,
		DiscountAmount: input.DiscountAmount,
		DiscountReason: optional(input.DiscountReason),
		Status:         model.SaleCompleted,
		Notes:          optional(input.Notes),
		UserID:         auth.UserPtr(ctx),
	}

	if sale.Items, err = uc.buildItems(ctx, sale.ID, session.RegisterTypeID, input.Items); err != nil {
		return nil, err
	}
	for _, it := range sale.Items {
		sale.Subtotal = sale.Subtotal.Add(it.Total)
	}
	sale.Total = sale.Subtotal.Sub(sale.DiscountAmount).Add(sale.TaxAmount)
	if sale.Total.IsNegative() {
		return nil, fmt.Errorf("%w: discount exceeds the sale subtotal", model.ErrInvalidInput)
	}

	cash := decimal.Zero
	for i := range input.Payments {
		p, err := newPayment(sale.ID, &input.Payments[i], now)
		if err != nil {
			return nil, err
		}
		sale.Payments = append(sale.Payments, *p)
		sale.PaidAmount = sale.PaidAmount.Add(p.Amount)
		if p.PaymentMethod == model.PayCash {
			cash = cash.Add(p.Amount)
		}
	}
	if sale.PaidAmount.GreaterThan(sale.Total) {
		return nil, fmt.Errorf("%w: payments of %s exceed the total %s", model.ErrInvalidInput, sale.PaidAmount, sale.Total)
	}
	sale.PaymentStatus = model.PaymentStatusOf(sale.PaidAmount, sale.Total)

	prefix := model.SaleNumberPrefix(sale.RegisterTypeID, now)
	if err := uc.repo.CreateSale(ctx, sale, prefix, cash); err != nil {
		return nil, err
	}

	uc.logger.Info("sale created",
		zap.String("sale_id", sale.ID),
		zap.String("sale_number", sale.SaleNumber),
		zap.String("session_id", sale.SessionID),
		zap.String("total", sale.Total.String()),
		zap.String("payment_status", sale.PaymentStatus),
	)
	uc.publishSale(ctx, sale)
	return sale, nil
}

func (uc *posUseCase) openSession(ctx context.Context, id string) (*model.CashSession, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: session is required", model.ErrInvalidInput)
	}
	s, err := uc.sessions.FindSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("session %s: %w", id, model.ErrNotFound)
	}
	if s.Status != model.SessionOpen {
		return nil, fmt.Errorf("session %s is %s: %w", id, s.Status, model.ErrSessionClosed)
	}
	return s, nil
}

func (uc *posUseCase) buildItems(ctx context.Context, saleID string, registerType int, in []dto.SaleItemInput) ([]model.SaleItem, error) {
	ids := make([]string, 0, len(in))
	for _, it := range in {
		if it.POSProductID == "" {
			return nil, fmt.Errorf("%w: item product is required", model.ErrInvalidInput)
		}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: item quantity must be at least 1", model.ErrInvalidInput)
		}
		ids = append(ids, it.POSProductID)
	}

	found, err := uc.repo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.POSProduct, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	items := make([]model.SaleItem, 0, len(in))
	for _, it := range in {
		p, ok := byID[it.POSProductID]
		if !ok {
			return nil, fmt.Errorf("pos product %s: %w", it.POSProductID, model.ErrNotFound)
		}
		if !p.IsActive {
			return nil, fmt.Errorf("%w: pos product %s is inactive", model.ErrInvalidInput, p.Name)
		}
		if p.RegisterTypeID != registerType {
			return nil, fmt.Errorf("%w: pos product %s belongs to another register", model.ErrInvalidInput, p.Name)
		}
		qty := decimal.NewFromInt(int64(it.Quantity))
		items = append(items, model.SaleItem{
			ID:           uuid.New().String(),
			SaleID:       saleID,
			POSProductID: p.ID,
			ProductID:    p.ProductID,
			ProductName:  p.Name,
			Quantity:     it.Quantity,
			UnitPrice:    p.Price,
			Total:        p.Price.Mul(qty),
			Notes:        optional(it.Notes),
		})
	}
	return items, nil
}

func newPayment(saleID string, in *dto.PaymentInput, now time.Time) (*model.SalePayment, error) {
	method := strings.ToLower(strings.TrimSpace(in.Method))
	if !model.ValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", model.ErrInvalidInput, in.Method)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", model.ErrInvalidInput)
	}

	p := &model.SalePayment{
		ID:            uuid.New().String(),
		SaleID:        saleID,
		PaymentMethod: method,
		Amount:        in.Amount,
		Reference:     optional(in.Reference),
		CreatedAt:     now,
	}
	if method == model.PayCash && in.ReceivedAmount != nil {
		if in.ReceivedAmount.LessThan(in.Amount) {
			return nil, fmt.Errorf("%w: received %s is less than the amount %s", model.ErrInvalidInput, in.ReceivedAmount, in.Amount)
		}
		received := *in.ReceivedAmount
		p.ReceivedAmount = &received
		p.ChangeAmount = received.Sub(in.Amount)
	}
	return p, nil
}

func (uc *posUseCase) publishSale(ctx context.Context, sale *model.Sale) {
	if uc.publisher == nil {
		return
	}
	event := model.SaleCreatedEvent{
		EventID:   uuid.New().String(),
		EventType: model.EventSaleCreated,
		Timestamp: uc.now(),
		Payload: model.SaleEventPayload{
			ID:             sale.ID,
			SaleNumber:     sale.SaleNumber,
			RegisterTypeID: sale.RegisterTypeID,
			SessionID:      sale.SessionID,
			UserID:         sale.UserID,
		},
	}
	for _, it := range sale.Items {
		event.Payload.Items = append(event.Payload.Items, model.SaleEventItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
		})
	}
	if err := uc.publisher.PublishJSON(ctx, sale.ID, event); err != nil {
		uc.logger.Warn("failed to publish sale event",
			zap.String("sale_id", sale.ID),
			zap.Error(err),
		)
	}
}

func (uc *posUseCase) AddPaymentToSale(ctx context.Context, saleID string, input *dto.PaymentInput) (*model.Sale, error) {
	sale, err := uc.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.Status != model.SaleCompleted {
		return nil, fmt.Errorf("%w: sale %s is %s", model.ErrInvalidInput, sale.SaleNumber, sale.Status)
	}
	if _, err := uc.openSession(ctx, sale.SessionID); err != nil {
		return nil, err
	}

	p, err := newPayment(sale.ID, input, uc.now())
	if err != nil {
		return nil, err
	}
	cash := decimal.Zero
	if p.PaymentMethod == model.PayCash {
		cash = p.Amount
	}
	if err := uc.repo.AddPayment(ctx, sale.SessionID, p, cash); err != nil {
		return nil, err
	}

	uc.logger.Info("payment added to sale",
		zap.String("sale_id", sale.ID),
		zap.String("method", p.PaymentMethod),
		zap.String("amount", p.Amount.String()),
	)
	return uc.GetSale(ctx, saleID)
}

func (uc *posUseCase) GetSale(ctx context.Context, id string) (*model.Sale, error) {
	sale, err := uc.repo.FindSale(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("sale %s: %w", id, model.ErrNotFound)
	}
	return sale, nil
}

func (uc *posUseCase) ListSales(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error) {
	if filters.PaymentStatus != "" {
		switch filters.PaymentStatus {
		case model.PaymentNone, model.PaymentPartial, model.PaymentPaid:
		default:
			return nil, 0, fmt.Errorf("%w: unknown payment status %q", model.ErrInvalidInput, filters.PaymentStatus)
		}
	}
	if filters.From != nil && filters.To != nil && !filters.From.Before(*filters.To) {
		return nil, 0, fmt.Errorf("%w: date_from must be before date_to", model.ErrInvalidInput)
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	return uc.repo.FindSales(ctx, filters)
}

func (uc *posUseCase) PaymentSummary(ctx context.Context, sessionID string) ([]model.PaymentMethodTotal, error) {
	s, err := uc.sessions.FindSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, model.ErrNotFound)
	}
	return uc.repo.PaymentSummary(ctx, sessionID)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
