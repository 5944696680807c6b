package dto

import "github.com/shopspring/decimal"

type ProductInput struct {
	Name         string
	Description  string
	SKU          string // generated when empty
	Brand        string
	Category     string
	Type         string
	Unit         string
	CostPrice    decimal.Decimal
	SalePrice    decimal.Decimal
	VAT          *decimal.Decimal // nil means model.DefaultVAT
	IsPOSEnabled bool
	ImageURL     string
	IsActive     *bool
}
