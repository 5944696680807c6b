package dto

type WarehouseFilters struct {
	SearchQuery string
	Type        string
	ParentID    string
	Page        int
	PageSize    int
}

const (
	StockAll     = "all"
	StockWith    = "with_stock"
	StockWithout = "without_stock"
	StockLow     = "low"
)

type ProductFilters struct {
	WarehouseID string
	SearchQuery string // product name or sku
	StockFilter string
	Page        int
	PageSize    int
}
