package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/pettycash/dto"
	"github.com/fekuna/termas-hotel-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// AdjustSessionCash moves the current amount of an open session by delta.
func AdjustSessionCash(ctx context.Context, tx sqlx.ExecerContext, sessionID string, delta decimal.Decimal) error {
	res, err := tx.ExecContext(ctx, `
        UPDATE cash_sessions SET current_amount = current_amount + $1, updated_at = NOW()
        WHERE id = $2 AND status = 'open'
    `, delta, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update session cash: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", sessionID, model.ErrSessionClosed)
	}
	return nil
}

func (r *PGRepository) CreateSession(ctx context.Context, s *model.CashSession) error {
	query := `
        INSERT INTO cash_sessions (
            id, user_id, cash_register_id, register_type_id, opening_amount, current_amount,
            status, opened_at, notes, created_at, updated_at
        )
        VALUES (
            :id, :user_id, :cash_register_id, :register_type_id, :opening_amount, :current_amount,
            :status, :opened_at, :notes, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, s)
	if postgres.IsUniqueViolation(err) {
		return fmt.Errorf("%w: cash register %d already has an open session", model.ErrConflict, s.CashRegisterID)
	}
	return err
}

func (r *PGRepository) FindSession(ctx context.Context, id string) (*model.CashSession, error) {
	var s model.CashSession
	err := r.DB.GetContext(ctx, &s, `SELECT * FROM cash_sessions WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) FindOpenSession(ctx context.Context, cashRegisterID int) (*model.CashSession, error) {
	var s model.CashSession
	err := r.DB.GetContext(ctx, &s, `
        SELECT * FROM cash_sessions WHERE cash_register_id = $1 AND status = 'open'
        ORDER BY opened_at DESC LIMIT 1
    `, cashRegisterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) FindSessions(ctx context.Context, f *dto.SessionFilters) ([]model.CashSession, int, error) {
	var items []model.CashSession
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.CashRegisterID != 0 {
		conditions = append(conditions, "cash_register_id = :cash_register_id")
		args["cash_register_id"] = f.CashRegisterID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.UserID != "" {
		conditions = append(conditions, "user_id = :user_id")
		args["user_id"] = f.UserID
	}
	if f.From != nil {
		conditions = append(conditions, "opened_at >= :from")
		args["from"] = *f.From
	}
	if f.To != nil {
		conditions = append(conditions, "opened_at < :to")
		args["to"] = *f.To
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM cash_sessions"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT * FROM cash_sessions" + whereClause + " ORDER BY opened_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) CreateExpense(ctx context.Context, e *model.Expense) error {
	query := `
        INSERT INTO petty_cash_expenses (
            id, session_id, description, amount, category, cost_center, payment_method, user_id, created_at
        )
        VALUES (
            :id, :session_id, :description, :amount, :category, :cost_center, :payment_method, :user_id, :created_at
        )
    `
	return r.insertCash(ctx, query, e, e.SessionID, e.PaymentMethod, e.Amount.Neg())
}

func (r *PGRepository) CreatePurchase(ctx context.Context, p *model.Purchase) error {
	query := `
        INSERT INTO petty_cash_purchases (
            id, session_id, product_name, product_id, quantity, unit_price, total_amount,
            supplier_id, payment_method, user_id, created_at
        )
        VALUES (
            :id, :session_id, :product_name, :product_id, :quantity, :unit_price, :total_amount,
            :supplier_id, :payment_method, :user_id, :created_at
        )
    `
	return r.insertCash(ctx, query, p, p.SessionID, p.PaymentMethod, p.TotalAmount.Neg())
}

func (r *PGRepository) CreateIncome(ctx context.Context, i *model.Income) error {
	query := `
        INSERT INTO petty_cash_incomes (
            id, session_id, description, amount, category, payment_method, user_id, created_at
        )
        VALUES (
            :id, :session_id, :description, :amount, :category, :payment_method, :user_id, :created_at
        )
    `
	return r.insertCash(ctx, query, i, i.SessionID, i.PaymentMethod, i.Amount)
}

func (r *PGRepository) insertCash(ctx context.Context, query string, arg interface{}, sessionID, method string, delta decimal.Decimal) error {
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if method == model.PayCash {
			if err := AdjustSessionCash(ctx, tx, sessionID, delta); err != nil {
				return err
			}
		}
		if _, err := tx.NamedExecContext(ctx, query, arg); err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
		return nil
	})
}

// transactionTables maps a kind to its table, amount column and the sign of
// its effect on the session cash.
var transactionTables = map[string]struct {
	table  string
	amount string
	sign   int64
}{
	model.TxExpense:  {"petty_cash_expenses", "amount", -1},
	model.TxPurchase: {"petty_cash_purchases", "total_amount", -1},
	model.TxIncome:   {"petty_cash_incomes", "amount", 1},
}

func (r *PGRepository) DeleteTransaction(ctx context.Context, kind, sessionID, id string) error {
	t, ok := transactionTables[kind]
	if !ok {
		return fmt.Errorf("%w: unknown transaction type %q", model.ErrInvalidInput, kind)
	}

	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		var row struct {
			Amount        decimal.Decimal `db:"amount"`
			PaymentMethod string          `db:"payment_method"`
		}
		query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND session_id = $2 RETURNING %s AS amount, payment_method`, t.table, t.amount)
		err := tx.GetContext(ctx, &row, query, id, sessionID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s %s: %w", kind, id, model.ErrNotFound)
		}
		if err != nil {
			return err
		}

		if row.PaymentMethod == model.PayCash {
			// undo the original effect
			delta := row.Amount.Mul(decimal.NewFromInt(-t.sign))
			return AdjustSessionCash(ctx, tx, sessionID, delta)
		}
		return nil
	})
}

func (r *PGRepository) ListTransactions(ctx context.Context, sessionID string) (*model.SessionTransactions, error) {
	out := &model.SessionTransactions{
		Expenses:  []model.Expense{},
		Purchases: []model.Purchase{},
		Incomes:   []model.Income{},
	}
	if err := r.DB.SelectContext(ctx, &out.Expenses,
		`SELECT * FROM petty_cash_expenses WHERE session_id = $1 ORDER BY created_at DESC`, sessionID); err != nil {
		return nil, err
	}
	if err := r.DB.SelectContext(ctx, &out.Purchases,
		`SELECT * FROM petty_cash_purchases WHERE session_id = $1 ORDER BY created_at DESC`, sessionID); err != nil {
		return nil, err
	}
	if err := r.DB.SelectContext(ctx, &out.Incomes,
		`SELECT * FROM petty_cash_incomes WHERE session_id = $1 ORDER BY created_at DESC`, sessionID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PGRepository) Totals(ctx context.Context, sessionID string) (*model.CashTotals, error) {
	var t model.CashTotals
	err := r.DB.GetContext(ctx, &t, `
        WITH payments AS (
            SELECT p.payment_method, p.amount
            FROM pos_sale_payments p
            JOIN pos_sales s ON s.id = p.sale_id
            WHERE s.session_id = $1 AND s.status = 'completed'
        )
        SELECT
            COALESCE((SELECT sum(amount) FROM payments WHERE payment_method = 'cash'), 0) AS cash_sales,
            COALESCE((SELECT sum(amount) FROM payments WHERE payment_method = 'card'), 0) AS card_sales,
            COALESCE((SELECT sum(amount) FROM payments WHERE payment_method NOT IN ('cash', 'card')), 0) AS other_sales,
            COALESCE((SELECT sum(amount) FROM petty_cash_incomes WHERE session_id = $1 AND payment_method = 'cash'), 0) AS cash_incomes,
            COALESCE((SELECT sum(amount) FROM petty_cash_expenses WHERE session_id = $1 AND payment_method = 'cash'), 0) AS cash_expenses,
            COALESCE((SELECT sum(total_amount) FROM petty_cash_purchases WHERE session_id = $1 AND payment_method = 'cash'), 0) AS cash_purchases,
            (SELECT count(*) FROM pos_sales WHERE session_id = $1 AND status = 'completed') AS sales_count,
            (SELECT count(*) FROM petty_cash_expenses WHERE session_id = $1) AS expenses_count,
            (SELECT count(*) FROM petty_cash_purchases WHERE session_id = $1) AS purchases_count,
            (SELECT count(*) FROM petty_cash_incomes WHERE session_id = $1) AS incomes_count
    `, sessionID)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PGRepository) Close(ctx context.Context, c *model.CashClosure, closedAt time.Time) error {
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
            UPDATE cash_sessions
            SET status = 'closed', closed_at = $1, current_amount = $2, updated_at = $1
            WHERE id = $3 AND status = 'open'
        `, closedAt, c.ActualCash, c.SessionID)
		if err != nil {
			return fmt.Errorf("failed to close session: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return fmt.Errorf("session %s: %w", c.SessionID, model.ErrSessionClosed)
		}

		err = tx.QueryRowxContext(ctx, `
            INSERT INTO cash_closures (
                id, session_id, expected_cash, actual_cash, difference, total_sales,
                notes, status, closed_by, created_at
            )
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
            ON CONFLICT (session_id) DO UPDATE SET
                expected_cash = EXCLUDED.expected_cash,
                actual_cash = EXCLUDED.actual_cash,
                difference = EXCLUDED.difference,
                total_sales = EXCLUDED.total_sales,
                notes = EXCLUDED.notes,
                status = EXCLUDED.status,
                closed_by = EXCLUDED.closed_by,
                created_at = EXCLUDED.created_at,
                reviewed_by = NULL,
                review_notes = NULL,
                reviewed_at = NULL
            RETURNING id
        `, c.ID, c.SessionID, c.ExpectedCash, c.ActualCash, c.Difference, c.TotalSales,
			c.Notes, c.Status, c.ClosedBy, c.CreatedAt).Scan(&c.ID)
		if err != nil {
			return fmt.Errorf("failed to store closure: %w", err)
		}
		return nil
	})
}

func (r *PGRepository) FindClosure(ctx context.Context, id string) (*model.CashClosure, error) {
	var c model.CashClosure
	err := r.DB.GetContext(ctx, &c, `SELECT * FROM cash_closures WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindClosures(ctx context.Context, f *dto.ClosureFilters) ([]model.CashClosure, int, error) {
	var items []model.CashClosure
	var count int

	whereClause := ""
	args := []interface{}{}
	if f.Status != "" {
		whereClause = " WHERE status = $1"
		args = append(args, f.Status)
	}

	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM cash_closures"+whereClause, args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM cash_closures" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}
	err := r.DB.SelectContext(ctx, &items, query, args...)
	return items, count, err
}

func (r *PGRepository) Review(ctx context.Context, c *model.CashClosure, reopen bool) error {
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
            UPDATE cash_closures
            SET status = $1, reviewed_by = $2, review_notes = $3, reviewed_at = $4
            WHERE id = $5 AND status = 'pending'
        `, c.Status, c.ReviewedBy, c.ReviewNotes, c.ReviewedAt, c.ID)
		if err != nil {
			return fmt.Errorf("failed to review closure: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return fmt.Errorf("%w: closure %s is no longer pending", model.ErrInvalidTransition, c.ID)
		}

		if !reopen {
			return nil
		}
		_, err = tx.ExecContext(ctx, `
            UPDATE cash_sessions SET status = 'open', closed_at = NULL, updated_at = NOW()
            WHERE id = $1
        `, c.SessionID)
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("%w: the cash register already has another open session", model.ErrConflict)
		}
		return err
	})
}
