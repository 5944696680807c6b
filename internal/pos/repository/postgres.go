package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/termas-hotel-service/internal/model"
	pettycash "github.com/fekuna/termas-hotel-service/internal/pettycash/repository"
	"github.com/fekuna/termas-hotel-service/internal/pos/dto"
	"github.com/fekuna/termas-hotel-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// saleNumberLock namespaces the advisory locks that serialize numbering per register.
const saleNumberLock = 7_100_000

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateProduct(ctx context.Context, p *model.POSProduct) error {
	query := `
        INSERT INTO pos_products (
            id, name, description, sku, price, cost, category_id, register_type_id,
            product_id, is_active, sort_order, created_at, updated_at
        )
        VALUES (
            :id, :name, :description, :sku, :price, :cost, :category_id, :register_type_id,
            :product_id, :is_active, :sort_order, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	if postgres.IsUniqueViolation(err) {
		return fmt.Errorf("%w: pos product %s already exists", model.ErrConflict, p.SKU)
	}
	return err
}

func (r *PGRepository) FindProductsByIDs(ctx context.Context, ids []string) ([]model.POSProduct, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM pos_products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var items []model.POSProduct
	err = r.DB.SelectContext(ctx, &items, r.DB.Rebind(query), args...)
	return items, err
}

func (r *PGRepository) FindProducts(ctx context.Context, f *dto.ProductFilters) ([]model.POSProduct, int, error) {
	var items []model.POSProduct
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.RegisterTypeID != 0 {
		conditions = append(conditions, "register_type_id = :register_type_id")
		args["register_type_id"] = f.RegisterTypeID
	}
	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM pos_products"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT * FROM pos_products" + whereClause + " ORDER BY sort_order, name"
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

func (r *PGRepository) PendingSync(ctx context.Context, registerType int) ([]model.Product, error) {
	var items []model.Product
	err := r.DB.SelectContext(ctx, &items, `
        SELECT p.* FROM products p
        WHERE p.is_pos_enabled = TRUE
          AND NOT EXISTS (
              SELECT 1 FROM pos_products pp
              WHERE pp.product_id = p.id AND pp.register_type_id = $1
          )
        ORDER BY p.name
    `, registerType)
	return items, err
}

func (r *PGRepository) SyncStats(ctx context.Context) (*model.SyncStats, error) {
	var s model.SyncStats
	err := r.DB.GetContext(ctx, &s, `
        SELECT
            (SELECT count(*) FROM products WHERE is_pos_enabled = TRUE) AS enabled_products,
            (SELECT count(*) FROM pos_products) AS pos_products,
            (SELECT count(DISTINCT product_id) FROM pos_products WHERE product_id IS NOT NULL) AS synced_products
    `)
	if err != nil {
		return nil, err
	}
	s.PendingSync = s.EnabledProducts - s.SyncedProducts
	if s.PendingSync < 0 {
		s.PendingSync = 0
	}
	return &s, nil
}

func (r *PGRepository) CreateSale(ctx context.Context, sale *model.Sale, prefix string, cashDelta decimal.Decimal) error {
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, saleNumberLock+sale.RegisterTypeID); err != nil {
			return fmt.Errorf("failed to lock sale numbering: %w", err)
		}
		seq, err := nextSaleSequence(ctx, tx, prefix)
		if err != nil {
			return err
		}
		sale.SaleNumber = model.FormatSaleNumber(prefix, seq)

		_, err = tx.NamedExecContext(ctx, `
            INSERT INTO pos_sales (
                id, session_id, register_type_id, sale_number, customer_name, client_id, table_number,
                room_number, subtotal, tax_amount, discount_amount, discount_reason, total, paid_amount,
                payment_status, status, notes, user_id, created_at, updated_at
            )
            VALUES (
                :id, :session_id, :register_type_id, :sale_number, :customer_name, :client_id, :table_number,
                :room_number, :subtotal, :tax_amount, :discount_amount, :discount_reason, :total, :paid_amount,
                :payment_status, :status, :notes, :user_id, :created_at, :updated_at
            )
        `, sale)
		if err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}

		for i := range sale.Items {
			if _, err := tx.NamedExecContext(ctx, insertItem, &sale.Items[i]); err != nil {
				return fmt.Errorf("failed to insert sale item: %w", err)
			}
		}
		for i := range sale.Payments {
			if _, err := tx.NamedExecContext(ctx, insertPayment, &sale.Payments[i]); err != nil {
				return fmt.Errorf("failed to insert payment: %w", err)
			}
		}

		if cashDelta.IsPositive() {
			return pettycash.AdjustSessionCash(ctx, tx, sale.SessionID, cashDelta)
		}
		return nil
	})
}

const insertItem = `
    INSERT INTO pos_sale_items (id, sale_id, pos_product_id, product_id, product_name, quantity, unit_price, total, notes)
    VALUES (:id, :sale_id, :pos_product_id, :product_id, :product_name, :quantity, :unit_price, :total, :notes)
`

const insertPayment = `
    INSERT INTO pos_sale_payments (id, sale_id, payment_method, amount, received_amount, change_amount, reference, created_at)
    VALUES (:id, :sale_id, :payment_method, :amount, :received_amount, :change_amount, :reference, :created_at)
`

// nextSaleSequence is one past the largest numeric suffix among the sale
// numbers starting with prefix.
func nextSaleSequence(ctx context.Context, tx *sqlx.Tx, prefix string) (int, error) {
	var last int
	err := tx.GetContext(ctx, &last, `
        SELECT COALESCE(MAX(CAST(split_part(sale_number, '-', 3) AS int)), 0)
        FROM pos_sales WHERE sale_number LIKE $1
    `, prefix+"%")
	if err != nil {
		return 0, fmt.Errorf("failed to read sale sequence: %w", err)
	}
	return last + 1, nil
}

func (r *PGRepository) AddPayment(ctx context.Context, sessionID string, p *model.SalePayment, cashDelta decimal.Decimal) error {
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		var sale model.Sale
		err := tx.GetContext(ctx, &sale, `SELECT * FROM pos_sales WHERE id = $1 FOR UPDATE`, p.SaleID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("sale %s: %w", p.SaleID, model.ErrNotFound)
		}
		if err != nil {
			return err
		}

		paid := sale.PaidAmount.Add(p.Amount)
		if paid.GreaterThan(sale.Total) {
			return fmt.Errorf("%w: payment of %s exceeds the pending %s",
				model.ErrInvalidInput, p.Amount, sale.Total.Sub(sale.PaidAmount))
		}

		if _, err := tx.NamedExecContext(ctx, insertPayment, p); err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
            UPDATE pos_sales SET paid_amount = $1, payment_status = $2, updated_at = NOW()
            WHERE id = $3
        `, paid, model.PaymentStatusOf(paid, sale.Total), sale.ID)
		if err != nil {
			return fmt.Errorf("failed to update sale: %w", err)
		}

		if cashDelta.IsPositive() {
			return pettycash.AdjustSessionCash(ctx, tx, sessionID, cashDelta)
		}
		return nil
	})
}

func (r *PGRepository) FindSale(ctx context.Context, id string) (*model.Sale, error) {
	var sale model.Sale
	err := r.DB.GetContext(ctx, &sale, `SELECT * FROM pos_sales WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.DB.SelectContext(ctx, &sale.Items,
		`SELECT * FROM pos_sale_items WHERE sale_id = $1 ORDER BY product_name`, id); err != nil {
		return nil, err
	}
	if err := r.DB.SelectContext(ctx, &sale.Payments,
		`SELECT * FROM pos_sale_payments WHERE sale_id = $1 ORDER BY created_at`, id); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *PGRepository) FindSales(ctx context.Context, f *dto.SaleFilters) ([]model.Sale, int, error) {
	var items []model.Sale
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.SessionID != "" {
		conditions = append(conditions, "session_id = :session_id")
		args["session_id"] = f.SessionID
	}
	if f.RegisterTypeID != 0 {
		conditions = append(conditions, "register_type_id = :register_type_id")
		args["register_type_id"] = f.RegisterTypeID
	}
	if f.PaymentStatus != "" {
		conditions = append(conditions, "payment_status = :payment_status")
		args["payment_status"] = f.PaymentStatus
	}
	if f.From != nil {
		conditions = append(conditions, "created_at >= :from")
		args["from"] = *f.From
	}
	if f.To != nil {
		conditions = append(conditions, "created_at < :to")
		args["to"] = *f.To
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM pos_sales"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT * FROM pos_sales" + whereClause + " ORDER BY created_at DESC"
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

func (r *PGRepository) PaymentSummary(ctx context.Context, sessionID string) ([]model.PaymentMethodTotal, error) {
	var out []model.PaymentMethodTotal
	err := r.DB.SelectContext(ctx, &out, `
        SELECT p.payment_method, count(*) AS count, COALESCE(sum(p.amount), 0) AS amount
        FROM pos_sale_payments p
        JOIN pos_sales s ON s.id = p.sale_id
        WHERE s.session_id = $1 AND s.status = 'completed'
        GROUP BY p.payment_method
        ORDER BY p.payment_method
    `, sessionID)
	return out, err
}
