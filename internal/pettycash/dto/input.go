package dto

import "github.com/shopspring/decimal"

type OpenSessionInput struct {
	CashRegisterID int
	RegisterTypeID int
	OpeningAmount  decimal.Decimal
	Notes          string
}

type ExpenseInput struct {
	SessionID     string
	Description   string
	Amount        decimal.Decimal
	Category      string
	CostCenter    string
	PaymentMethod string
}

type PurchaseInput struct {
	SessionID     string
	ProductName   string
	ProductID     string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	SupplierID    string
	PaymentMethod string
}

type IncomeInput struct {
	SessionID     string
	Description   string
	Amount        decimal.Decimal
	Category      string
	PaymentMethod string
}

type CloseSessionInput struct {
	SessionID  string
	ActualCash decimal.Decimal
	Notes      string
}
