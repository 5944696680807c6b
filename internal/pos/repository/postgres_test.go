package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/pos/dto"
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

func testSale() *model.Sale {
	now := time.Date(2024, 7, 9, 13, 0, 0, 0, time.UTC)
	return &model.Sale{
		BaseModel:      model.BaseModel{ID: "sale-1", CreatedAt: now, UpdatedAt: now},
		SessionID:      "s1",
		RegisterTypeID: model.RegisterRestaurant,
		Subtotal:       decimal.NewFromInt(5000),
		Total:          decimal.NewFromInt(5000),
		PaidAmount:     decimal.NewFromInt(5000),
		PaymentStatus:  model.PaymentPaid,
		Status:         model.SaleCompleted,
		Items: []model.SaleItem{
			{ID: "it-1", SaleID: "sale-1", POSProductID: "coffee", ProductName: "Café", Quantity: 2,
				UnitPrice: decimal.NewFromInt(2500), Total: decimal.NewFromInt(5000)},
		},
		Payments: []model.SalePayment{
			{ID: "pay-1", SaleID: "sale-1", PaymentMethod: model.PayCash, Amount: decimal.NewFromInt(5000), CreatedAt: now},
		},
	}
}

func TestCreateSale_NumbersAfterLastOfDay(t *testing.T) {
	repo, mock := newRepo(t)
	sale := testSale()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1)`)).
		WithArgs(saleNumberLock + model.RegisterRestaurant).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM pos_sales WHERE sale_number LIKE $1`)).
		WithArgs("REST-20240709-%").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(41))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pos_sales`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pos_sale_items`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pos_sale_payments`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE cash_sessions SET current_amount = current_amount + $1`)).
		WithArgs(decimal.NewFromInt(5000), "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateSale(context.Background(), sale, "REST-20240709-", decimal.NewFromInt(5000))
	require.NoError(t, err)
	assert.Equal(t, "REST-20240709-0042", sale.SaleNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSale_SequencePastFourDigits(t *testing.T) {
	repo, mock := newRepo(t)
	sale := testSale()
	sale.Payments = nil

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1)`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(MAX(CAST(split_part(sale_number, '-', 3) AS int)), 0)`)).
		WithArgs("REST-20240709-%").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(10000))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pos_sales`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pos_sale_items`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateSale(context.Background(), sale, "REST-20240709-", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "REST-20240709-10001", sale.SaleNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSale_FirstOfDayWithoutCash(t *testing.T) {
	repo, mock := newRepo(t)
	sale := testSale()
	sale.Payments = nil

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1)`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`split_part(sale_number, '-', 3)`)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pos_sales`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pos_sale_items`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateSale(context.Background(), sale, "REST-20240709-", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "REST-20240709-0001", sale.SaleNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSale_ClosedSessionRollsBack(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1)`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`split_part(sale_number, '-', 3)`)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pos_sales`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pos_sale_items`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pos_sale_payments`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE cash_sessions`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CreateSale(context.Background(), testSale(), "REST-20240709-", decimal.NewFromInt(5000))
	assert.ErrorIs(t, err, model.ErrSessionClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddPayment(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM pos_sales WHERE id = $1 FOR UPDATE`)).
		WithArgs("sale-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "total", "paid_amount"}).AddRow("sale-1", "7500", "5000"))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pos_sale_payments`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE pos_sales SET paid_amount = $1, payment_status = $2`)).
		WithArgs(decimal.NewFromInt(7500), model.PaymentPaid, "sale-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.AddPayment(context.Background(), "s1", &model.SalePayment{
		ID: "pay-2", SaleID: "sale-1", PaymentMethod: model.PayCard, Amount: decimal.NewFromInt(2500),
	}, decimal.Zero)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddPayment_ExceedsPending(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM pos_sales WHERE id = $1 FOR UPDATE`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "total", "paid_amount"}).AddRow("sale-1", "7500", "5000"))
	mock.ExpectRollback()

	err := repo.AddPayment(context.Background(), "s1", &model.SalePayment{
		ID: "pay-2", SaleID: "sale-1", PaymentMethod: model.PayCash, Amount: decimal.NewFromInt(3000),
	}, decimal.NewFromInt(3000))
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindProductsByIDs(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM pos_products WHERE id IN ($1, $2)`)).
		WithArgs("a", "b").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).
			AddRow("a", "Café", "2500").
			AddRow("b", "Kuchen", "3200"))

	items, err := repo.FindProductsByIDs(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[1].Price.Equal(decimal.NewFromInt(3200)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindSales_Filters(t *testing.T) {
	repo, mock := newRepo(t)
	from := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM pos_sales WHERE session_id = $1 AND created_at >= $2`)).
		WithArgs("s1", from).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectPrepare(regexp.QuoteMeta(`SELECT * FROM pos_sales WHERE session_id = $1 AND created_at >= $2 ORDER BY created_at DESC LIMIT 10 OFFSET 10`)).
		ExpectQuery().
		WithArgs("s1", from).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sale_number"}).AddRow("sale-1", "REC-20240701-0001"))

	sales, count, err := repo.FindSales(context.Background(), &dto.SaleFilters{
		SessionID: "s1", From: &from, Page: 2, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, sales, 1)
	assert.Equal(t, "REC-20240701-0001", sales[0].SaleNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncStats_PendingNeverNegative(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WillReturnRows(sqlmock.NewRows([]string{"enabled_products", "pos_products", "synced_products"}).AddRow(3, 8, 5))

	s, err := repo.SyncStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, s.POSProducts)
	assert.Equal(t, 0, s.PendingSync)
	assert.NoError(t, mock.ExpectationsWereMet())
}
