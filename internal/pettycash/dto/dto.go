package dto

import "time"

type SessionFilters struct {
	CashRegisterID int
	Status         string
	UserID         string
	From           *time.Time
	To             *time.Time
	Page           int
	PageSize       int
}

type ClosureFilters struct {
	Status   string
	Page     int
	PageSize int
}
