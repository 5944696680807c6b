package model

import "github.com/shopspring/decimal"

const (
	ProductConsumable = "consumible"
	ProductStorable   = "almacenable"
	ProductService    = "servicio"
	ProductInventory  = "inventario"
	ProductCombo      = "combo"
)

func ValidProductType(t string) bool {
	switch t {
	case ProductConsumable, ProductStorable, ProductService, ProductInventory, ProductCombo:
		return true
	}
	return false
}

// DefaultVAT is the Chilean IVA rate in percent.
var DefaultVAT = decimal.NewFromInt(19)

type Product struct {
	BaseModel
	Name         string          `db:"name" json:"name"`
	Description  *string         `db:"description" json:"description"`
	SKU          string          `db:"sku" json:"sku"`
	Brand        *string         `db:"brand" json:"brand"`
	Category     *string         `db:"category" json:"category"`
	Type         string          `db:"type" json:"type"`
	Unit         string          `db:"unit" json:"unit"`
	CostPrice    decimal.Decimal `db:"cost_price" json:"cost_price"`
	SalePrice    decimal.Decimal `db:"sale_price" json:"sale_price"`
	VAT          decimal.Decimal `db:"vat" json:"vat"`
	FinalPrice   decimal.Decimal `db:"final_price" json:"final_price"`
	IsPOSEnabled bool            `db:"is_pos_enabled" json:"is_pos_enabled"`
	ImageURL     *string         `db:"image_url" json:"image_url"`
	IsActive     bool            `db:"is_active" json:"is_active"`
}

// FinalPriceOf applies vat percent to salePrice, rounded to whole pesos.
func FinalPriceOf(salePrice, vat decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(vat.Div(decimal.NewFromInt(100)))
	return salePrice.Mul(factor).Round(0)
}
