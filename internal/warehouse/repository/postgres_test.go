package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/warehouse/dto"
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

func TestUpsertProduct_ReturnsStoredRow(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO warehouse_products .* ON CONFLICT \(warehouse_id, product_id\)\s+DO UPDATE SET\s+min_stock = EXCLUDED.min_stock`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "warehouse_id", "product_id", "quantity", "min_stock", "max_stock", "created_at", "updated_at"}).
			AddRow("wp-old", "w1", "p1", "7", "2", "100", now, now))

	wp, err := repo.UpsertProduct(context.Background(), &model.WarehouseProduct{
		BaseModel:   model.BaseModel{ID: "wp-new", CreatedAt: now, UpdatedAt: now},
		WarehouseID: "w1",
		ProductID:   "p1",
		Quantity:    decimal.NewFromInt(50),
		MinStock:    decimal.NewFromInt(2),
		MaxStock:    decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, "wp-old", wp.ID)
	assert.Equal(t, "7", wp.Quantity.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProducts_LowStockFilter(t *testing.T) {
	repo, mock := newRepo(t)

	where := `WHERE wp.warehouse_id = $1 AND wp.quantity <= wp.min_stock`
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM warehouse_products wp JOIN products p ON p.id = wp.product_id ` + where)).
		WithArgs("w1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectPrepare(regexp.QuoteMeta(`SELECT wp.*, p.name AS product_name, p.sku AS product_sku FROM warehouse_products wp JOIN products p ON p.id = wp.product_id ` + where + ` ORDER BY p.name`)).
		ExpectQuery().
		WithArgs("w1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "warehouse_id", "product_id", "quantity", "min_stock", "product_name"}).
			AddRow("wp1", "w1", "p1", "1", "5", "Toalla"))

	items, count, err := repo.ListProducts(context.Background(), &dto.ProductFilters{WarehouseID: "w1", StockFilter: dto.StockLow})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, items, 1)
	assert.True(t, items[0].LowStock())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_RemovesAssignments(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM warehouse_products WHERE warehouse_id = $1`)).WithArgs("w1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM warehouses WHERE id = $1`)).WithArgs("w1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "w1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
