package dto

import "github.com/shopspring/decimal"

type SupplierInput struct {
	Name         string
	RUT          string
	Email        string
	Phone        string
	Address      string
	Category     string
	PaymentTerms string
	CreditLimit  decimal.Decimal
}
