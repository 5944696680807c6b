package dto

import "time"

type ReservationFilters struct {
	Status        string
	ClientType    string
	CheckInFrom   *time.Time
	CheckInTo     *time.Time
	RoomID        string
	PaymentStatus string
	SearchQuery   string // guest name or email
	Page          int
	PageSize      int
}
