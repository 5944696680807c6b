package dto

type RoomFilters struct {
	SearchQuery string // number or type
	Type        string
	Floor       int
	MinCapacity int
	Status      string
	IsActive    *bool
	Page        int
	PageSize    int
}
