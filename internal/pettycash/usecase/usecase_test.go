package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/auth"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/pettycash"
	"github.com/fekuna/termas-hotel-service/internal/pettycash/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/fekuna/termas-hotel-service/pkg/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	pettycash.Repository
	sessions map[string]*model.CashSession
	closures map[string]*model.CashClosure
	totals   model.CashTotals
	expenses []model.Expense
	deleted  []string
	reopened bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: map[string]*model.CashSession{}, closures: map[string]*model.CashClosure{}}
}

func (f *fakeRepo) CreateSession(_ context.Context, s *model.CashSession) error {
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeRepo) FindSession(_ context.Context, id string) (*model.CashSession, error) {
	if s, ok := f.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) FindOpenSession(_ context.Context, register int) (*model.CashSession, error) {
	for _, s := range f.sessions {
		if s.CashRegisterID == register && s.Status == model.SessionOpen {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) adjust(id, method string, delta decimal.Decimal) {
	if method == model.PayCash {
		f.sessions[id].CurrentAmount = f.sessions[id].CurrentAmount.Add(delta)
	}
}

func (f *fakeRepo) CreateExpense(_ context.Context, e *model.Expense) error {
	f.adjust(e.SessionID, e.PaymentMethod, e.Amount.Neg())
	f.expenses = append(f.expenses, *e)
	return nil
}

func (f *fakeRepo) CreatePurchase(_ context.Context, p *model.Purchase) error {
	f.adjust(p.SessionID, p.PaymentMethod, p.TotalAmount.Neg())
	return nil
}

func (f *fakeRepo) CreateIncome(_ context.Context, i *model.Income) error {
	f.adjust(i.SessionID, i.PaymentMethod, i.Amount)
	return nil
}

func (f *fakeRepo) DeleteTransaction(_ context.Context, kind, _, id string) error {
	f.deleted = append(f.deleted, kind+":"+id)
	return nil
}

func (f *fakeRepo) Totals(context.Context, string) (*model.CashTotals, error) {
	t := f.totals
	return &t, nil
}

func (f *fakeRepo) Close(_ context.Context, c *model.CashClosure, closedAt time.Time) error {
	s := f.sessions[c.SessionID]
	if s.Status != model.SessionOpen {
		return model.ErrSessionClosed
	}
	s.Status = model.SessionClosed
	s.ClosedAt = &closedAt
	s.CurrentAmount = c.ActualCash
	cp := *c
	f.closures[c.ID] = &cp
	return nil
}

func (f *fakeRepo) FindClosure(_ context.Context, id string) (*model.CashClosure, error) {
	if c, ok := f.closures[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) Review(_ context.Context, c *model.CashClosure, reopen bool) error {
	cp := *c
	f.closures[c.ID] = &cp
	if reopen {
		f.reopened = true
		f.sessions[c.SessionID].Status = model.SessionOpen
	}
	return nil
}

func cashier(id string) context.Context {
	return middleware.WithUser(context.Background(), id, "cashier")
}

func admin() context.Context {
	return middleware.WithUser(context.Background(), "boss", auth.RoleAdmin)
}

func openSession(t *testing.T, uc pettycash.UseCase, ctx context.Context, register int, opening int64) *model.CashSession {
	t.Helper()
	s, err := uc.OpenSession(ctx, &dto.OpenSessionInput{
		CashRegisterID: register,
		RegisterTypeID: model.RegisterReception,
		OpeningAmount:  decimal.NewFromInt(opening),
	})
	require.NoError(t, err)
	return s
}

func TestOpenSession_OnePerRegister(t *testing.T) {
	repo := newFakeRepo()
	uc := NewPettyCashUseCase(repo, logger.NewNop())

	s := openSession(t, uc, cashier("u1"), 1, 20000)
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, model.SessionOpen, s.Status)
	assert.True(t, s.CurrentAmount.Equal(decimal.NewFromInt(20000)))

	_, err := uc.OpenSession(cashier("u2"), &dto.OpenSessionInput{CashRegisterID: 1, RegisterTypeID: 1})
	assert.ErrorIs(t, err, model.ErrConflict)

	openSession(t, uc, cashier("u2"), 2, 0)

	current, err := uc.GetCurrentSession(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, s.ID, current.ID)

	_, err = uc.GetCurrentSession(context.Background(), 9)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestOpenSession_Validation(t *testing.T) {
	uc := NewPettyCashUseCase(newFakeRepo(), logger.NewNop())

	_, err := uc.OpenSession(context.Background(), &dto.OpenSessionInput{CashRegisterID: 1, RegisterTypeID: 1})
	assert.ErrorIs(t, err, model.ErrInvalidInput, "anonymous caller")

	tests := []dto.OpenSessionInput{
		{CashRegisterID: 0, RegisterTypeID: 1},
		{CashRegisterID: 1, RegisterTypeID: 5},
		{CashRegisterID: 1, RegisterTypeID: 1, OpeningAmount: decimal.NewFromInt(-1)},
	}
	for i, in := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := uc.OpenSession(cashier("u1"), &in)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
		})
	}
}

func TestTransactions_MoveCashOnly(t *testing.T) {
	repo := newFakeRepo()
	uc := NewPettyCashUseCase(repo, logger.NewNop())
	ctx := cashier("u1")
	s := openSession(t, uc, ctx, 1, 50000)

	e, err := uc.AddExpense(ctx, &dto.ExpenseInput{SessionID: s.ID, Description: "Gas", Amount: decimal.NewFromInt(8000), Category: "insumos"})
	require.NoError(t, err)
	assert.Equal(t, model.PayCash, e.PaymentMethod)
	assert.Equal(t, "u1", e.UserID)

	_, err = uc.AddExpense(ctx, &dto.ExpenseInput{SessionID: s.ID, Description: "Internet", Amount: decimal.NewFromInt(30000), Category: "servicios", PaymentMethod: "transfer"})
	require.NoError(t, err)

	p, err := uc.AddPurchase(ctx, &dto.PurchaseInput{SessionID: s.ID, ProductName: "Pan", Quantity: decimal.RequireFromString("2.5"), UnitPrice: decimal.NewFromInt(1990)})
	require.NoError(t, err)
	assert.Equal(t, "4975", p.TotalAmount.String())

	i, err := uc.AddIncome(ctx, &dto.IncomeInput{SessionID: s.ID, Description: "Reposición", Amount: decimal.NewFromInt(10000)})
	require.NoError(t, err)
	assert.Equal(t, "otros", i.Category)

	// 50000 - 8000 - 4975 + 10000
	assert.Equal(t, "47025", repo.sessions[s.ID].CurrentAmount.String())
}

func TestTransactions_Validation(t *testing.T) {
	repo := newFakeRepo()
	uc := NewPettyCashUseCase(repo, logger.NewNop())
	ctx := cashier("u1")
	s := openSession(t, uc, ctx, 1, 0)

	_, err := uc.AddExpense(ctx, &dto.ExpenseInput{SessionID: s.ID, Description: "x", Amount: decimal.Zero, Category: "c"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = uc.AddExpense(ctx, &dto.ExpenseInput{SessionID: s.ID, Description: "x", Amount: decimal.NewFromInt(1), Category: "c", PaymentMethod: "cheque"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = uc.AddPurchase(ctx, &dto.PurchaseInput{SessionID: s.ID, ProductName: "Pan", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = uc.AddIncome(ctx, &dto.IncomeInput{SessionID: "missing", Description: "x", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, model.ErrNotFound)

	repo.sessions[s.ID].Status = model.SessionClosed
	_, err = uc.AddIncome(ctx, &dto.IncomeInput{SessionID: s.ID, Description: "x", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, model.ErrSessionClosed)
}

func TestDeleteTransaction_OwnerOrAdmin(t *testing.T) {
	repo := newFakeRepo()
	uc := NewPettyCashUseCase(repo, logger.NewNop())
	s := openSession(t, uc, cashier("u1"), 1, 0)

	err := uc.DeleteTransaction(cashier("u2"), model.TxExpense, s.ID, "e1")
	assert.ErrorIs(t, err, model.ErrForbidden)

	require.NoError(t, uc.DeleteTransaction(cashier("u1"), model.TxExpense, s.ID, "e1"))
	require.NoError(t, uc.DeleteTransaction(admin(), model.TxIncome, s.ID, "i1"))
	assert.Equal(t, []string{"expense:e1", "income:i1"}, repo.deleted)
}

func TestCloseSession_ComputesDifference(t *testing.T) {
	repo := newFakeRepo()
	uc := NewPettyCashUseCase(repo, logger.NewNop())
	ctx := cashier("u1")
	s := openSession(t, uc, ctx, 1, 20000)
	repo.sessions[s.ID].OpenedAt = time.Now().Add(-(3*time.Hour + 20*time.Minute))
	repo.totals = model.CashTotals{
		CashSales:     decimal.NewFromInt(45000),
		CardSales:     decimal.NewFromInt(30000),
		OtherSales:    decimal.NewFromInt(5000),
		CashIncomes:   decimal.NewFromInt(1000),
		CashExpenses:  decimal.NewFromInt(6000),
		CashPurchases: decimal.NewFromInt(0),
	}

	summary, err := uc.GetClosureSummary(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "60000", summary.ExpectedCash.String())
	assert.Equal(t, "3h 20min", summary.Duration)

	c, err := uc.CloseSession(ctx, &dto.CloseSessionInput{SessionID: s.ID, ActualCash: decimal.NewFromInt(59500)})
	require.NoError(t, err)
	assert.Equal(t, "-500", c.Difference.String())
	assert.Equal(t, "80000", c.TotalSales.String())
	assert.Equal(t, model.ClosurePending, c.Status)
	assert.Equal(t, "u1", c.ClosedBy)
	assert.Equal(t, model.SessionClosed, repo.sessions[s.ID].Status)

	_, err = uc.CloseSession(ctx, &dto.CloseSessionInput{SessionID: s.ID})
	assert.ErrorIs(t, err, model.ErrSessionClosed)
}

func TestReviewClosure(t *testing.T) {
	repo := newFakeRepo()
	uc := NewPettyCashUseCase(repo, logger.NewNop())
	ctx := cashier("u1")
	s := openSession(t, uc, ctx, 1, 0)
	c, err := uc.CloseSession(ctx, &dto.CloseSessionInput{SessionID: s.ID})
	require.NoError(t, err)

	_, err = uc.ApproveClosure(ctx, c.ID, "")
	assert.ErrorIs(t, err, model.ErrForbidden)

	rejected, err := uc.RejectClosure(admin(), c.ID, "recontar")
	require.NoError(t, err)
	assert.Equal(t, model.ClosureRejected, rejected.Status)
	assert.Equal(t, "boss", *rejected.ReviewedBy)
	assert.True(t, repo.reopened)
	assert.Equal(t, model.SessionOpen, repo.sessions[s.ID].Status)

	_, err = uc.ApproveClosure(admin(), c.ID, "")
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	_, err = uc.ApproveClosure(admin(), "missing", "")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
