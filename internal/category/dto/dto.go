package dto

type CategoryFilters struct {
	RegisterTypeID int // 0 means every register
	IsActive       *bool
	Page           int
	PageSize       int
}
