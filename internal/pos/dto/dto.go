package dto

import "time"

type ProductFilters struct {
	RegisterTypeID int
	CategoryID     string
	SearchQuery    string // name or sku
	ActiveOnly     bool
	Page           int
	PageSize       int
}

type SaleFilters struct {
	SessionID      string
	RegisterTypeID int
	PaymentStatus  string
	From           *time.Time
	To             *time.Time // exclusive
	Page           int
	PageSize       int
}
