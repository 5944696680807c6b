package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AdjustmentInput struct {
	Type   string
	Value  decimal.Decimal
	Reason string
}

type ProductLineInput struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

type PaymentInput struct {
	Amount    decimal.Decimal
	Method    string
	Reference string
	Notes     string
}

type CreateReservationInput struct {
	ClientID       string
	GuestName      string
	GuestEmail     string
	GuestPhone     string
	CheckIn        time.Time
	CheckOut       time.Time
	Guests         int
	RoomID         string
	ClientType     string
	CompanyName    string
	CompanyRUT     string
	BillingName    string
	BillingRUT     string
	BillingAddress string
	AuthorizedBy   string
	// BaseAmount overrides the nightly rate times nights plus products.
	BaseAmount     decimal.Decimal
	DepositAmount  decimal.Decimal
	PaymentMethod  string
	Discount       AdjustmentInput
	Surcharge      AdjustmentInput
	Products       []ProductLineInput
	Observations   string
	InitialPayment *PaymentInput
}

type UpdateReservationInput struct {
	ID             string
	GuestName      string
	GuestEmail     string
	GuestPhone     string
	CheckIn        time.Time
	CheckOut       time.Time
	Guests         int
	RoomID         string
	CompanyName    string
	CompanyRUT     string
	BillingName    string
	BillingRUT     string
	BillingAddress string
	AuthorizedBy   string
	BaseAmount     decimal.Decimal
	Discount       AdjustmentInput
	Surcharge      AdjustmentInput
}
