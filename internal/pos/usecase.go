package pos

import (
	"context"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/pos/dto"
)

type UseCase interface {
	SyncPOSProducts(ctx context.Context) (*model.SyncResult, error)
	GetSyncStats(ctx context.Context) (*model.SyncStats, error)
	ListPOSProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.POSProduct, int, error)

	CreateSale(ctx context.Context, input *dto.SaleInput) (*model.Sale, error)
	AddPaymentToSale(ctx context.Context, saleID string, input *dto.PaymentInput) (*model.Sale, error)
	GetSale(ctx context.Context, id string) (*model.Sale, error)
	ListSales(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error)
	PaymentSummary(ctx context.Context, sessionID string) ([]model.PaymentMethodTotal, error)
}

// EventPublisher is satisfied by broker.KafkaProducer.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, event any) error
}
