package dto

import "time"

type MovementFilters struct {
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	MovementType    string
	UserID          string
	StartDate       *time.Time
	EndDate         *time.Time
	Page            int
	PageSize        int
}

type TransferFilters struct {
	WarehouseID string // either side of the transfer
	StartDate   *time.Time
	EndDate     *time.Time
	Page        int
	PageSize    int
}
