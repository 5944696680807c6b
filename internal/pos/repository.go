package pos

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/pos/dto"
	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateProduct(ctx context.Context, p *model.POSProduct) error
	FindProductsByIDs(ctx context.Context, ids []string) ([]model.POSProduct, error)
	FindProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.POSProduct, int, error)
	// PendingSync lists POS-enabled catalog products that have no POS
	// product for registerType yet.
	PendingSync(ctx context.Context, registerType int) ([]model.Product, error)
	SyncStats(ctx context.Context) (*model.SyncStats, error)

	// CreateSale numbers the sale after prefix and stores it with its items
	// and payments. cashDelta is added to the session in the same transaction.
	CreateSale(ctx context.Context, sale *model.Sale, prefix string, cashDelta decimal.Decimal) error
	// AddPayment stores p and refreshes the paid amount and payment status
	// of its sale. Payments beyond the sale total are refused.
	AddPayment(ctx context.Context, sessionID string, p *model.SalePayment, cashDelta decimal.Decimal) error
	FindSale(ctx context.Context, id string) (*model.Sale, error)
	FindSales(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error)
	PaymentSummary(ctx context.Context, sessionID string) ([]model.PaymentMethodTotal, error)
}
