package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/termas-hotel-service/internal/inventory"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// SaleListener deducts stock for POS sales published on the sales topic.
type SaleListener struct {
	consumer   MessageReader
	uc         inventory.UseCase
	warehouses map[int]string
	logger     logger.ZapLogger
}

// NewSaleListener builds a listener. warehouses maps a register type id to
// the warehouse its sales are taken from.
func NewSaleListener(consumer MessageReader, uc inventory.UseCase, warehouses map[int]string, logger logger.ZapLogger) *SaleListener {
	return &SaleListener{
		consumer:   consumer,
		uc:         uc,
		warehouses: warehouses,
		logger:     logger,
	}
}

func (l *SaleListener) Start(ctx context.Context) {
	l.logger.Info("Starting sale listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping sale listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *SaleListener) processMessage(ctx context.Context, value []byte) {
	var event model.SaleCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != model.EventSaleCreated {
		return
	}

	warehouseID, ok := l.warehouses[event.Payload.RegisterTypeID]
	if !ok || warehouseID == "" {
		l.logger.Warn("No warehouse configured for register type, stock not deducted",
			zap.Int("register_type_id", event.Payload.RegisterTypeID),
			zap.String("sale_id", event.Payload.ID),
		)
		return
	}

	l.logger.Info("Processing SaleCreated event", zap.String("sale_id", event.Payload.ID), zap.String("sale_number", event.Payload.SaleNumber))

	// failures are logged only; a redelivered sale is skipped by reference
	if err := l.uc.RecordSale(ctx, warehouseID, &event); err != nil {
		l.logger.Error("Failed to deduct stock for sale",
			zap.String("sale_id", event.Payload.ID),
			zap.Error(err),
		)
	}
}
