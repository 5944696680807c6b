package pettycash

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/pettycash/dto"
)

type UseCase interface {
	OpenSession(ctx context.Context, input *dto.OpenSessionInput) (*model.CashSession, error)
	GetCurrentSession(ctx context.Context, cashRegisterID int) (*model.CashSession, error)
	GetSession(ctx context.Context, id string) (*model.CashSession, error)
	ListSessions(ctx context.Context, filters *dto.SessionFilters) ([]model.CashSession, int, error)

	AddExpense(ctx context.Context, input *dto.ExpenseInput) (*model.Expense, error)
	AddPurchase(ctx context.Context, input *dto.PurchaseInput) (*model.Purchase, error)
	AddIncome(ctx context.Context, input *dto.IncomeInput) (*model.Income, error)
	DeleteTransaction(ctx context.Context, kind, sessionID, id string) error
	ListTransactions(ctx context.Context, sessionID string) (*model.SessionTransactions, error)

	GetClosureSummary(ctx context.Context, sessionID string) (*model.ClosureSummary, error)
	CloseSession(ctx context.Context, input *dto.CloseSessionInput) (*model.CashClosure, error)
	ApproveClosure(ctx context.Context, closureID, notes string) (*model.CashClosure, error)
	RejectClosure(ctx context.Context, closureID, notes string) (*model.CashClosure, error)
	ListClosures(ctx context.Context, filters *dto.ClosureFilters) ([]model.CashClosure, int, error)
}
