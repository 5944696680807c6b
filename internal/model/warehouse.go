package model

import "github.com/shopspring/decimal"

const (
	WarehouseGeneral   = "general"
	WarehouseKitchen   = "cocina"
	WarehouseBar       = "bar"
	WarehouseReception = "recepcion"
	WarehouseStore     = "bodega"
)

func ValidWarehouseType(t string) bool {
	switch t {
	case WarehouseGeneral, WarehouseKitchen, WarehouseBar, WarehouseReception, WarehouseStore:
		return true
	}
	return false
}

type Warehouse struct {
	BaseModel
	Name     string  `db:"name" json:"name"`
	Location *string `db:"location" json:"location"`
	Type     string  `db:"type" json:"type"`
	ParentID *string `db:"parent_id" json:"parent_id"`
}

type WarehouseProduct struct {
	BaseModel
	WarehouseID string          `db:"warehouse_id" json:"warehouse_id"`
	ProductID   string          `db:"product_id" json:"product_id"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	MinStock    decimal.Decimal `db:"min_stock" json:"min_stock"`
	MaxStock    decimal.Decimal `db:"max_stock" json:"max_stock"`

	ProductName string `db:"product_name" json:"product_name,omitempty"`
	ProductSKU  string `db:"product_sku" json:"product_sku,omitempty"`
}

// LowStock reports whether the row is at or below its minimum.
func (w *WarehouseProduct) LowStock() bool {
	return w.Quantity.LessThanOrEqual(w.MinStock)
}
