package dto

type ClientFilters struct {
	SearchQuery string // name, last name, rut or email
	Type        string
	Status      string
	IsFrequent  *bool
	Page        int
	PageSize    int
}
