package dto

import "github.com/shopspring/decimal"

type WarehouseInput struct {
	Name     string
	Location string
	Type     string
	ParentID string
}

type AssignProductInput struct {
	WarehouseID string
	ProductID   string
	// Quantity is only used when the product is not yet assigned.
	Quantity decimal.Decimal
	MinStock decimal.Decimal
	MaxStock *decimal.Decimal
}
