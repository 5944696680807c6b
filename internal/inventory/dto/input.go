package dto

import "github.com/shopspring/decimal"

type MovementInput struct {
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	MovementType    string
	Quantity        decimal.Decimal
	Reason          string
	Notes           string
	ReferenceType   string
	ReferenceID     string
	UserID          string
}

type TransferLineInput struct {
	ProductID string
	Quantity  decimal.Decimal
}

type TransferInput struct {
	FromWarehouseID string
	ToWarehouseID   string
	Reason          string
	Notes           string
	Products        []TransferLineInput
	UserID          string
}
