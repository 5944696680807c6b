package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/auth"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/pettycash"
	"github.com/fekuna/termas-hotel-service/internal/pettycash/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type pettyCashUseCase struct {
	repo   pettycash.Repository
	logger logger.ZapLogger
}

func NewPettyCashUseCase(repo pettycash.Repository, log logger.ZapLogger) pettycash.UseCase {
	return &pettyCashUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *pettyCashUseCase) OpenSession(ctx context.Context, input *dto.OpenSessionInput) (*model.CashSession, error) {
	userID := auth.GetUserID(ctx)
	if userID == "" {
		return nil, fmt.Errorf("%w: an authenticated user is required", model.ErrInvalidInput)
	}
	if input.CashRegisterID <= 0 {
		return nil, fmt.Errorf("%w: cash register is required", model.ErrInvalidInput)
	}
	if model.RegisterCode(input.RegisterTypeID) == "" {
		return nil, fmt.Errorf("%w: unknown register type %d", model.ErrInvalidInput, input.RegisterTypeID)
	}
	if input.OpeningAmount.IsNegative() {
		return nil, fmt.Errorf("%w: opening amount must not be negative", model.ErrInvalidInput)
	}

	open, err := uc.repo.FindOpenSession(ctx, input.CashRegisterID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, fmt.Errorf("%w: cash register %d already has open session %s", model.ErrConflict, input.CashRegisterID, open.ID)
	}

	now := time.Now()
	s := &model.CashSession{
		BaseModel:      model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		UserID:         userID,
		CashRegisterID: input.CashRegisterID,
		RegisterTypeID: input.RegisterTypeID,
		OpeningAmount:  input.OpeningAmount,
		CurrentAmount:  input.OpeningAmount,
		Status:         model.SessionOpen,
		OpenedAt:       now,
		Notes:          optional(input.Notes),
	}
	if err := uc.repo.CreateSession(ctx, s); err != nil {
		return nil, err
	}

	uc.logger.Info("cash session opened",
		zap.String("session_id", s.ID),
		zap.Int("cash_register_id", s.CashRegisterID),
		zap.String("user_id", userID),
		zap.String("opening_amount", s.OpeningAmount.String()),
	)
	return s, nil
}

func (uc *pettyCashUseCase) GetCurrentSession(ctx context.Context, cashRegisterID int) (*model.CashSession, error) {
	s, err := uc.repo.FindOpenSession(ctx, cashRegisterID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("open session for cash register %d: %w", cashRegisterID, model.ErrNotFound)
	}
	return s, nil
}

func (uc *pettyCashUseCase) GetSession(ctx context.Context, id string) (*model.CashSession, error) {
	s, err := uc.repo.FindSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("session %s: %w", id, model.ErrNotFound)
	}
	return s, nil
}

func (uc *pettyCashUseCase) ListSessions(ctx context.Context, filters *dto.SessionFilters) ([]model.CashSession, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	return uc.repo.FindSessions(ctx, filters)
}

// openSession returns the session when it accepts transactions.
func (uc *pettyCashUseCase) openSession(ctx context.Context, id string) (*model.CashSession, error) {
	s, err := uc.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Status != model.SessionOpen {
		return nil, fmt.Errorf("session %s is %s: %w", id, s.Status, model.ErrSessionClosed)
	}
	return s, nil
}

func (uc *pettyCashUseCase) AddExpense(ctx context.Context, input *dto.ExpenseInput) (*model.Expense, error) {
	if _, err := uc.openSession(ctx, input.SessionID); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", model.ErrInvalidInput)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", model.ErrInvalidInput)
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", model.ErrInvalidInput)
	}
	method, err := paymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	e := &model.Expense{
		ID:            uuid.New().String(),
		SessionID:     input.SessionID,
		Description:   description,
		Amount:        input.Amount,
		Category:      category,
		CostCenter:    optional(input.CostCenter),
		PaymentMethod: method,
		UserID:        auth.GetUserID(ctx),
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}
	uc.logger.Info("petty cash expense recorded", zap.String("session_id", e.SessionID), zap.String("amount", e.Amount.String()))
	return e, nil
}

func (uc *pettyCashUseCase) AddPurchase(ctx context.Context, input *dto.PurchaseInput) (*model.Purchase, error) {
	if _, err := uc.openSession(ctx, input.SessionID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.ProductName)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", model.ErrInvalidInput)
	}
	if !input.Quantity.IsPositive() || !input.UnitPrice.IsPositive() {
		return nil, fmt.Errorf("%w: quantity and unit price must be greater than zero", model.ErrInvalidInput)
	}
	method, err := paymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	p := &model.Purchase{
		ID:            uuid.New().String(),
		SessionID:     input.SessionID,
		ProductName:   name,
		ProductID:     optional(input.ProductID),
		Quantity:      input.Quantity,
		UnitPrice:     input.UnitPrice,
		TotalAmount:   input.Quantity.Mul(input.UnitPrice).Round(2),
		SupplierID:    optional(input.SupplierID),
		PaymentMethod: method,
		UserID:        auth.GetUserID(ctx),
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.CreatePurchase(ctx, p); err != nil {
		return nil, err
	}
	uc.logger.Info("petty cash purchase recorded", zap.String("session_id", p.SessionID), zap.String("total", p.TotalAmount.String()))
	return p, nil
}

func (uc *pettyCashUseCase) AddIncome(ctx context.Context, input *dto.IncomeInput) (*model.Income, error) {
	if _, err := uc.openSession(ctx, input.SessionID); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", model.ErrInvalidInput)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", model.ErrInvalidInput)
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = "otros"
	}
	method, err := paymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	i := &model.Income{
		ID:            uuid.New().String(),
		SessionID:     input.SessionID,
		Description:   description,
		Amount:        input.Amount,
		Category:      category,
		PaymentMethod: method,
		UserID:        auth.GetUserID(ctx),
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.CreateIncome(ctx, i); err != nil {
		return nil, err
	}
	uc.logger.Info("petty cash income recorded", zap.String("session_id", i.SessionID), zap.String("amount", i.Amount.String()))
	return i, nil
}

func (uc *pettyCashUseCase) DeleteTransaction(ctx context.Context, kind, sessionID, id string) error {
	s, err := uc.openSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if !auth.IsAdmin(ctx) && auth.GetUserID(ctx) != s.UserID {
		return fmt.Errorf("%w: only the session owner or an admin can delete transactions", model.ErrForbidden)
	}

	if err := uc.repo.DeleteTransaction(ctx, kind, sessionID, id); err != nil {
		return err
	}
	uc.logger.Info("petty cash transaction deleted",
		zap.String("session_id", sessionID),
		zap.String("type", kind),
		zap.String("id", id),
	)
	return nil
}

func (uc *pettyCashUseCase) ListTransactions(ctx context.Context, sessionID string) (*model.SessionTransactions, error) {
	if _, err := uc.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return uc.repo.ListTransactions(ctx, sessionID)
}

func (uc *pettyCashUseCase) GetClosureSummary(ctx context.Context, sessionID string) (*model.ClosureSummary, error) {
	s, err := uc.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	totals, err := uc.repo.Totals(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	end := time.Now()
	if s.ClosedAt != nil {
		end = *s.ClosedAt
	}
	return &model.ClosureSummary{
		Session:      s,
		Totals:       *totals,
		ExpectedCash: model.ExpectedCash(s.OpeningAmount, *totals),
		Duration:     model.FormatSessionDuration(end.Sub(s.OpenedAt)),
	}, nil
}

func (uc *pettyCashUseCase) CloseSession(ctx context.Context, input *dto.CloseSessionInput) (*model.CashClosure, error) {
	if _, err := uc.openSession(ctx, input.SessionID); err != nil {
		return nil, err
	}
	if input.ActualCash.IsNegative() {
		return nil, fmt.Errorf("%w: counted cash must not be negative", model.ErrInvalidInput)
	}

	summary, err := uc.GetClosureSummary(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	t := summary.Totals
	c := &model.CashClosure{
		ID:           uuid.New().String(),
		SessionID:    input.SessionID,
		ExpectedCash: summary.ExpectedCash,
		ActualCash:   input.ActualCash,
		Difference:   input.ActualCash.Sub(summary.ExpectedCash),
		TotalSales:   t.CashSales.Add(t.CardSales).Add(t.OtherSales),
		Notes:        optional(input.Notes),
		Status:       model.ClosurePending,
		ClosedBy:     auth.GetUserID(ctx),
		CreatedAt:    now,
	}
	if err := uc.repo.Close(ctx, c, now); err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("session_id", c.SessionID),
		zap.String("expected", c.ExpectedCash.String()),
		zap.String("actual", c.ActualCash.String()),
		zap.String("difference", c.Difference.String()),
	}
	if c.Difference.IsZero() {
		uc.logger.Info("cash session closed", fields...)
	} else {
		uc.logger.Warn("cash session closed with difference", fields...)
	}
	return c, nil
}

func (uc *pettyCashUseCase) ApproveClosure(ctx context.Context, closureID, notes string) (*model.CashClosure, error) {
	return uc.review(ctx, closureID, notes, model.ClosureApproved)
}

// RejectClosure reopens the session so the cashier can correct it.
func (uc *pettyCashUseCase) RejectClosure(ctx context.Context, closureID, notes string) (*model.CashClosure, error) {
	return uc.review(ctx, closureID, notes, model.ClosureRejected)
}

func (uc *pettyCashUseCase) review(ctx context.Context, closureID, notes, status string) (*model.CashClosure, error) {
	if !auth.IsAdmin(ctx) {
		return nil, fmt.Errorf("%w: closures are reviewed by admins", model.ErrForbidden)
	}
	c, err := uc.repo.FindClosure(ctx, closureID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("closure %s: %w", closureID, model.ErrNotFound)
	}
	if c.Status != model.ClosurePending {
		return nil, fmt.Errorf("%w: closure is already %s", model.ErrInvalidTransition, c.Status)
	}

	now := time.Now()
	c.Status = status
	c.ReviewedBy = auth.UserPtr(ctx)
	c.ReviewNotes = optional(notes)
	c.ReviewedAt = &now
	if err := uc.repo.Review(ctx, c, status == model.ClosureRejected); err != nil {
		return nil, err
	}

	uc.logger.Info("cash closure reviewed",
		zap.String("closure_id", c.ID),
		zap.String("session_id", c.SessionID),
		zap.String("status", status),
	)
	return c, nil
}

func (uc *pettyCashUseCase) ListClosures(ctx context.Context, filters *dto.ClosureFilters) ([]model.CashClosure, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	return uc.repo.FindClosures(ctx, filters)
}

func paymentMethod(m string) (string, error) {
	m = strings.ToLower(strings.TrimSpace(m))
	if m == "" {
		return model.PayCash, nil
	}
	if !model.ValidPaymentMethod(m) {
		return "", fmt.Errorf("%w: unknown payment method %q", model.ErrInvalidInput, m)
	}
	return m, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
