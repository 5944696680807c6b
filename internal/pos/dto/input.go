package dto

import "github.com/shopspring/decimal"

type SaleItemInput struct {
	POSProductID string
	Quantity     int
	Notes        string
}

type PaymentInput struct {
	Method string
	Amount decimal.Decimal
	// ReceivedAmount is the cash handed over; change is computed from it.
	ReceivedAmount *decimal.Decimal
	Reference      string
}

type SaleInput struct {
	SessionID      string
	CustomerName   string
	ClientID       string
	TableNumber    string
	RoomNumber     string
	Items          []SaleItemInput
	Payments       []PaymentInput
	DiscountAmount decimal.Decimal
	DiscountReason string
	TaxAmount      decimal.Decimal
	Notes          string
}
