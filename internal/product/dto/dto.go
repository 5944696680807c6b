package dto

type ProductFilters struct {
	Category     string `json:"category,omitempty"`
	Type         string `json:"type,omitempty"`
	IsActive     *bool  `json:"is_active,omitempty"`
	IsPOSEnabled *bool  `json:"is_pos_enabled,omitempty"`
	SearchQuery  string `json:"search,omitempty"`  // name, sku, brand
	SortBy       string `json:"sort_by,omitempty"` // name, price, created_at
	SortOrder    string `json:"sort_order,omitempty"`
	Page         int    `json:"page,omitempty"`
	PageSize     int    `json:"page_size,omitempty"`
}
