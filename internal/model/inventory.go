package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MovementIn       = "ENTRADA"
	MovementOut      = "SALIDA"
	MovementTransfer = "TRANSFER"
	MovementAdjust   = "AJUSTE"
)

func ValidMovementType(t string) bool {
	switch t {
	case MovementIn, MovementOut, MovementTransfer, MovementAdjust:
		return true
	}
	return false
}

type InventoryMovement struct {
	ID              string          `db:"id" json:"id"`
	ProductID       string          `db:"product_id" json:"product_id"`
	FromWarehouseID *string         `db:"from_warehouse_id" json:"from_warehouse_id"`
	ToWarehouseID   *string         `db:"to_warehouse_id" json:"to_warehouse_id"`
	MovementType    string          `db:"movement_type" json:"movement_type"`
	Quantity        decimal.Decimal `db:"quantity" json:"quantity"`
	Reason          *string         `db:"reason" json:"reason"`
	Notes           *string         `db:"notes" json:"notes"`
	BatchID         *string         `db:"batch_id" json:"batch_id"`
	ReferenceType   *string         `db:"reference_type" json:"reference_type"`
	ReferenceID     *string         `db:"reference_id" json:"reference_id"`
	UserID          *string         `db:"user_id" json:"user_id"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// StockChange is a signed quantity applied to one warehouse_products row.
type StockChange struct {
	WarehouseID string
	ProductID   string
	Delta       decimal.Decimal
}

type TransferLine struct {
	ProductID   string          `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
}

// GroupedTransfer aggregates the movements that share a batch id.
type GroupedTransfer struct {
	BatchID           string          `db:"batch_id" json:"batch_id"`
	FromWarehouseID   string          `db:"from_warehouse_id" json:"from_warehouse_id"`
	FromWarehouseName string          `db:"from_warehouse_name" json:"from_warehouse_name"`
	ToWarehouseID     string          `db:"to_warehouse_id" json:"to_warehouse_id"`
	ToWarehouseName   string          `db:"to_warehouse_name" json:"to_warehouse_name"`
	Reason            *string         `db:"reason" json:"reason"`
	UserID            *string         `db:"user_id" json:"user_id"`
	ProductCount      int             `db:"product_count" json:"product_count"`
	TotalQuantity     decimal.Decimal `db:"total_quantity" json:"total_quantity"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	Lines             []TransferLine  `db:"-" json:"lines"`
}

type MovementTypeCount struct {
	MovementType string          `db:"movement_type" json:"movement_type"`
	Count        int             `db:"count" json:"count"`
	Quantity     decimal.Decimal `db:"quantity" json:"quantity"`
}

type ProductMovementTotal struct {
	ProductID   string          `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Movements   int             `db:"movements" json:"movements"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
}

type MovementStats struct {
	TotalMovements int                    `json:"total_movements"`
	TotalQuantity  decimal.Decimal        `json:"total_quantity"`
	Last30DaysQty  decimal.Decimal        `json:"last_30_days_quantity"`
	ByType         []MovementTypeCount    `json:"by_type"`
	TopProducts    []ProductMovementTotal `json:"top_products"`
}
