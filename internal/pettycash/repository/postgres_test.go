package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestCreateExpense_CashAdjustsSession(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE cash_sessions SET current_amount = current_amount + $1`)).
		WithArgs(decimal.NewFromInt(-5000), "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO petty_cash_expenses`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateExpense(context.Background(), &model.Expense{
		ID: "e1", SessionID: "s1", Description: "Gas", Amount: decimal.NewFromInt(5000),
		Category: "insumos", PaymentMethod: model.PayCash, UserID: "u1", CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIncome_ClosedSessionRollsBack(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE cash_sessions SET current_amount`)).
		WithArgs(decimal.NewFromInt(1000), "s1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CreateIncome(context.Background(), &model.Income{
		ID: "i1", SessionID: "s1", Description: "x", Amount: decimal.NewFromInt(1000), PaymentMethod: model.PayCash,
	})
	assert.ErrorIs(t, err, model.ErrSessionClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePurchase_CardSkipsSession(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO petty_cash_purchases`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreatePurchase(context.Background(), &model.Purchase{
		ID: "p1", SessionID: "s1", ProductName: "Pan", Quantity: decimal.NewFromInt(1),
		UnitPrice: decimal.NewFromInt(900), TotalAmount: decimal.NewFromInt(900), PaymentMethod: model.PayCard,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTransaction_RestoresCash(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM petty_cash_purchases WHERE id = $1 AND session_id = $2 RETURNING total_amount AS amount, payment_method`)).
		WithArgs("p1", "s1").
		WillReturnRows(sqlmock.NewRows([]string{"amount", "payment_method"}).AddRow("4975", "cash"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE cash_sessions SET current_amount = current_amount + $1`)).
		WithArgs(decimal.NewFromInt(4975), "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteTransaction(context.Background(), model.TxPurchase, "s1", "p1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTransaction_Missing(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM petty_cash_incomes`).
		WithArgs("i9", "s1").
		WillReturnRows(sqlmock.NewRows([]string{"amount", "payment_method"}))
	mock.ExpectRollback()

	err := repo.DeleteTransaction(context.Background(), model.TxIncome, "s1", "i9")
	assert.ErrorIs(t, err, model.ErrNotFound)

	err = repo.DeleteTransaction(context.Background(), "transfer", "s1", "x")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClose_StoresClosure(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE cash_sessions\s+SET status = 'closed'`).
		WithArgs(now, decimal.NewFromInt(59500), "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO cash_closures .* ON CONFLICT \(session_id\) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c-old"))
	mock.ExpectCommit()

	c := &model.CashClosure{
		ID: "c-new", SessionID: "s1", ActualCash: decimal.NewFromInt(59500),
		Status: model.ClosurePending, ClosedBy: "u1", CreatedAt: now,
	}
	require.NoError(t, repo.Close(context.Background(), c, now))
	assert.Equal(t, "c-old", c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReview_ReopenConflict(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()
	by := "boss"

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE cash_closures`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Review(context.Background(), &model.CashClosure{ID: "c1", SessionID: "s1", Status: model.ClosureApproved, ReviewedBy: &by, ReviewedAt: &now}, false)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE cash_closures`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE cash_sessions SET status = 'open'`).WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.Review(context.Background(), &model.CashClosure{ID: "c1", SessionID: "s1", Status: model.ClosureRejected, ReviewedBy: &by, ReviewedAt: &now}, true)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
