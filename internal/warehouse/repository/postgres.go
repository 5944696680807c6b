package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/warehouse/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, w *model.Warehouse) error {
	query := `
        INSERT INTO warehouses (id, name, location, type, parent_id, created_at, updated_at)
        VALUES (:id, :name, :location, :type, :parent_id, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, w)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Warehouse, error) {
	var w model.Warehouse
	err := r.DB.GetContext(ctx, &w, `SELECT * FROM warehouses WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.WarehouseFilters) ([]model.Warehouse, int, error) {
	var items []model.Warehouse
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Type != "" {
		conditions = append(conditions, "type = :type")
		args["type"] = f.Type
	}
	if f.ParentID != "" {
		conditions = append(conditions, "parent_id = :parent_id")
		args["parent_id"] = f.ParentID
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR location ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM warehouses"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT * FROM warehouses" + whereClause + " ORDER BY name"
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

func (r *PGRepository) Update(ctx context.Context, w *model.Warehouse) error {
	query := `
        UPDATE warehouses
        SET name = :name, location = :location, type = :type, parent_id = :parent_id, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, w)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// empty assignments go with the warehouse
	if _, err := tx.ExecContext(ctx, `DELETE FROM warehouse_products WHERE warehouse_id = $1`, id); err != nil {
		return fmt.Errorf("failed to remove warehouse products: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM warehouses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete warehouse: %w", err)
	}
	return tx.Commit()
}

func (r *PGRepository) CountStocked(ctx context.Context, warehouseID string) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM warehouse_products WHERE warehouse_id = $1 AND quantity > 0`, warehouseID)
	return count, err
}

func (r *PGRepository) UpsertProduct(ctx context.Context, wp *model.WarehouseProduct) (*model.WarehouseProduct, error) {
	query := `
        INSERT INTO warehouse_products (
            id, warehouse_id, product_id, quantity, min_stock, max_stock, created_at, updated_at
        )
        VALUES (
            :id, :warehouse_id, :product_id, :quantity, :min_stock, :max_stock, :created_at, :updated_at
        )
        ON CONFLICT (warehouse_id, product_id)
        DO UPDATE SET
            min_stock = EXCLUDED.min_stock,
            max_stock = EXCLUDED.max_stock,
            updated_at = EXCLUDED.updated_at
        RETURNING *
    `
	rows, err := r.DB.NamedQueryContext(ctx, query, wp)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out model.WarehouseProduct
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}
	if err := rows.StructScan(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PGRepository) FindProduct(ctx context.Context, warehouseID, productID string) (*model.WarehouseProduct, error) {
	var wp model.WarehouseProduct
	err := r.DB.GetContext(ctx, &wp, `
        SELECT wp.*, p.name AS product_name, p.sku AS product_sku
        FROM warehouse_products wp
        JOIN products p ON p.id = wp.product_id
        WHERE wp.warehouse_id = $1 AND wp.product_id = $2
    `, warehouseID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &wp, nil
}

func (r *PGRepository) RemoveProduct(ctx context.Context, warehouseID, productID string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM warehouse_products WHERE warehouse_id = $1 AND product_id = $2`, warehouseID, productID)
	return err
}

func (r *PGRepository) ListProducts(ctx context.Context, f *dto.ProductFilters) ([]model.WarehouseProduct, int, error) {
	var items []model.WarehouseProduct
	var count int

	conditions := []string{"wp.warehouse_id = :warehouse_id"}
	args := map[string]interface{}{"warehouse_id": f.WarehouseID}

	if f.SearchQuery != "" {
		conditions = append(conditions, "(p.name ILIKE :search OR p.sku ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}
	switch f.StockFilter {
	case dto.StockWith:
		conditions = append(conditions, "wp.quantity > 0")
	case dto.StockWithout:
		conditions = append(conditions, "wp.quantity = 0")
	case dto.StockLow:
		conditions = append(conditions, "wp.quantity <= wp.min_stock")
	}

	from := " FROM warehouse_products wp JOIN products p ON p.id = wp.product_id WHERE " + strings.Join(conditions, " AND ")

	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*)"+from, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT wp.*, p.name AS product_name, p.sku AS product_sku" + from + " ORDER BY p.name"
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
