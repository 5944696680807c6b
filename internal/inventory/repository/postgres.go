package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fekuna/termas-hotel-service/internal/inventory/dto"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/pkg/database/postgres"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const insertMovement = `
    INSERT INTO inventory_movements (
        id, product_id, from_warehouse_id, to_warehouse_id, movement_type, quantity,
        reason, notes, batch_id, reference_type, reference_id, user_id, created_at
    )
    VALUES (
        :id, :product_id, :from_warehouse_id, :to_warehouse_id, :movement_type, :quantity,
        :reason, :notes, :batch_id, :reference_type, :reference_id, :user_id, :created_at
    )
`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Record(ctx context.Context, movements []model.InventoryMovement, changes []model.StockChange) error {
	// fixed lock order keeps concurrent batches from deadlocking
	ordered := make([]model.StockChange, len(changes))
	copy(ordered, changes)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].WarehouseID != ordered[j].WarehouseID {
			return ordered[i].WarehouseID < ordered[j].WarehouseID
		}
		return ordered[i].ProductID < ordered[j].ProductID
	})

	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		for _, c := range ordered {
			if err := applyChange(ctx, tx, c); err != nil {
				return err
			}
		}
		for i := range movements {
			if _, err := tx.NamedExecContext(ctx, insertMovement, &movements[i]); err != nil {
				return fmt.Errorf("failed to log movement: %w", err)
			}
		}
		return nil
	})
}

func applyChange(ctx context.Context, tx *sqlx.Tx, c model.StockChange) error {
	var current decimal.Decimal
	err := tx.GetContext(ctx, &current, `
        SELECT quantity FROM warehouse_products
        WHERE warehouse_id = $1 AND product_id = $2
        FOR UPDATE
    `, c.WarehouseID, c.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		if c.Delta.IsNegative() {
			return fmt.Errorf("%w: product %s is not stocked in warehouse %s", model.ErrInsufficientStock, c.ProductID, c.WarehouseID)
		}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO warehouse_products (id, warehouse_id, product_id, quantity, created_at, updated_at)
            VALUES ($1, $2, $3, $4, NOW(), NOW())
        `, uuid.New().String(), c.WarehouseID, c.ProductID, c.Delta)
		if err != nil {
			return fmt.Errorf("failed to create stock row: %w", err)
		}
		return nil
	}
	if err != nil {
		return err
	}

	next := current.Add(c.Delta)
	if next.IsNegative() {
		return fmt.Errorf("%w: product %s in warehouse %s has %s, needs %s",
			model.ErrInsufficientStock, c.ProductID, c.WarehouseID, current, c.Delta.Neg())
	}
	_, err = tx.ExecContext(ctx, `
        UPDATE warehouse_products SET quantity = $1, updated_at = NOW()
        WHERE warehouse_id = $2 AND product_id = $3
    `, next, c.WarehouseID, c.ProductID)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	return nil
}

func (r *PGRepository) HasReference(ctx context.Context, referenceType, referenceID string) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists, `
        SELECT EXISTS (
            SELECT 1 FROM inventory_movements WHERE reference_type = $1 AND reference_id = $2
        )
    `, referenceType, referenceID)
	return exists, err
}

func (r *PGRepository) FindMovement(ctx context.Context, id string) (*model.InventoryMovement, error) {
	var m model.InventoryMovement
	err := r.DB.GetContext(ctx, &m, `SELECT * FROM inventory_movements WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	var items []model.InventoryMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.FromWarehouseID != "" {
		conditions = append(conditions, "from_warehouse_id = :from_warehouse_id")
		args["from_warehouse_id"] = f.FromWarehouseID
	}
	if f.ToWarehouseID != "" {
		conditions = append(conditions, "to_warehouse_id = :to_warehouse_id")
		args["to_warehouse_id"] = f.ToWarehouseID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}
	if f.UserID != "" {
		conditions = append(conditions, "user_id = :user_id")
		args["user_id"] = f.UserID
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at < :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM inventory_movements"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT * FROM inventory_movements" + whereClause + " ORDER BY created_at DESC"
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

func (r *PGRepository) ListGroupedTransfers(ctx context.Context, f *dto.TransferFilters) ([]model.GroupedTransfer, int, error) {
	var groups []model.GroupedTransfer
	var count int

	conditions := []string{"m.movement_type = 'TRANSFER'", "m.batch_id IS NOT NULL"}
	args := map[string]interface{}{}

	if f.WarehouseID != "" {
		conditions = append(conditions, "(m.from_warehouse_id = :warehouse_id OR m.to_warehouse_id = :warehouse_id)")
		args["warehouse_id"] = f.WarehouseID
	}
	if f.StartDate != nil {
		conditions = append(conditions, "m.created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "m.created_at < :end_date")
		args["end_date"] = *f.EndDate
	}
	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(DISTINCT m.batch_id) FROM inventory_movements m"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := `
        SELECT m.batch_id::text AS batch_id,
            m.from_warehouse_id::text AS from_warehouse_id, fw.name AS from_warehouse_name,
            m.to_warehouse_id::text AS to_warehouse_id, tw.name AS to_warehouse_name,
            MIN(m.reason) AS reason, MIN(m.user_id) AS user_id,
            COUNT(DISTINCT m.product_id) AS product_count,
            SUM(m.quantity) AS total_quantity,
            MIN(m.created_at) AS created_at
        FROM inventory_movements m
        JOIN warehouses fw ON fw.id = m.from_warehouse_id
        JOIN warehouses tw ON tw.id = m.to_warehouse_id` + whereClause + `
        GROUP BY m.batch_id, m.from_warehouse_id, fw.name, m.to_warehouse_id, tw.name
        ORDER BY created_at DESC`
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &groups, args); err != nil {
		return nil, 0, err
	}
	if len(groups) == 0 {
		return groups, count, nil
	}

	if err := r.attachLines(ctx, groups); err != nil {
		return nil, 0, err
	}
	return groups, count, nil
}

type batchLine struct {
	BatchID string `db:"batch_id"`
	model.TransferLine
}

func (r *PGRepository) attachLines(ctx context.Context, groups []model.GroupedTransfer) error {
	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.BatchID
	}

	query, args, err := sqlx.In(`
        SELECT m.batch_id::text AS batch_id, m.product_id::text AS product_id, p.name AS product_name, m.quantity
        FROM inventory_movements m
        JOIN products p ON p.id = m.product_id
        WHERE m.movement_type = 'TRANSFER' AND m.batch_id::text IN (?)
        ORDER BY p.name
    `, ids)
	if err != nil {
		return err
	}
	query = r.DB.Rebind(query)

	var lines []batchLine
	if err := r.DB.SelectContext(ctx, &lines, query, args...); err != nil {
		return err
	}

	byBatch := make(map[string][]model.TransferLine, len(groups))
	for _, l := range lines {
		byBatch[l.BatchID] = append(byBatch[l.BatchID], l.TransferLine)
	}
	for i := range groups {
		groups[i].Lines = byBatch[groups[i].BatchID]
	}
	return nil
}

func (r *PGRepository) Stats(ctx context.Context) (*model.MovementStats, error) {
	stats := &model.MovementStats{}

	var totals struct {
		Total    int             `db:"total"`
		Quantity decimal.Decimal `db:"quantity"`
		Last30   decimal.Decimal `db:"last30"`
	}
	err := r.DB.GetContext(ctx, &totals, `
        SELECT count(*) AS total,
            COALESCE(SUM(quantity), 0) AS quantity,
            COALESCE(SUM(quantity) FILTER (WHERE created_at >= NOW() - INTERVAL '30 days'), 0) AS last30
        FROM inventory_movements
    `)
	if err != nil {
		return nil, err
	}
	stats.TotalMovements = totals.Total
	stats.TotalQuantity = totals.Quantity
	stats.Last30DaysQty = totals.Last30

	err = r.DB.SelectContext(ctx, &stats.ByType, `
        SELECT movement_type, count(*) AS count, COALESCE(SUM(quantity), 0) AS quantity
        FROM inventory_movements
        GROUP BY movement_type
        ORDER BY movement_type
    `)
	if err != nil {
		return nil, err
	}

	err = r.DB.SelectContext(ctx, &stats.TopProducts, `
        SELECT m.product_id::text AS product_id, p.name AS product_name,
            count(*) AS movements, SUM(m.quantity) AS quantity
        FROM inventory_movements m
        JOIN products p ON p.id = m.product_id
        GROUP BY m.product_id, p.name
        ORDER BY quantity DESC
        LIMIT 10
    `)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
