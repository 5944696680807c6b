package pettycash

import (
	"context"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/pettycash/dto"
)

type Repository interface {
	CreateSession(ctx context.Context, s *model.CashSession) error
	FindSession(ctx context.Context, id string) (*model.CashSession, error)
	// FindOpenSession returns the open session of a cash register, or nil.
	FindOpenSession(ctx context.Context, cashRegisterID int) (*model.CashSession, error)
	FindSessions(ctx context.Context, filters *dto.SessionFilters) ([]model.CashSession, int, error)

	// Cash transactions adjust the session's current amount in the same
	// transaction and fail with model.ErrSessionClosed when it is not open.
	CreateExpense(ctx context.Context, e *model.Expense) error
	CreatePurchase(ctx context.Context, p *model.Purchase) error
	CreateIncome(ctx context.Context, i *model.Income) error
	DeleteTransaction(ctx context.Context, kind, sessionID, id string) error
	ListTransactions(ctx context.Context, sessionID string) (*model.SessionTransactions, error)

	Totals(ctx context.Context, sessionID string) (*model.CashTotals, error)
	// Close marks the session closed and stores its closure. A rejected
	// closure of the same session is replaced.
	Close(ctx context.Context, c *model.CashClosure, closedAt time.Time) error
	FindClosure(ctx context.Context, id string) (*model.CashClosure, error)
	FindClosures(ctx context.Context, filters *dto.ClosureFilters) ([]model.CashClosure, int, error)
	// Review stores the review of a pending closure and reopens its
	// session when reopen is set.
	Review(ctx context.Context, c *model.CashClosure, reopen bool) error
}
