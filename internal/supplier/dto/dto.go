package dto

type SupplierFilters struct {
	SearchQuery string
	Category    string
	Active      *bool
	Page        int
	PageSize    int
}
