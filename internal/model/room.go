package model

import "github.com/shopspring/decimal"

const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
	RoomCleaning    = "cleaning"
)

func ValidRoomStatus(s string) bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomCleaning:
		return true
	}
	return false
}

type Room struct {
	BaseModel
	Number        string          `db:"number" json:"number"`
	Type          string          `db:"type" json:"type"`
	Capacity      int             `db:"capacity" json:"capacity"`
	Floor         int             `db:"floor" json:"floor"`
	Amenities     *string         `db:"amenities" json:"amenities"`
	PricePerNight decimal.Decimal `db:"price_per_night" json:"price_per_night"`
	Status        string          `db:"status" json:"status"`
	IsActive      bool            `db:"is_active" json:"is_active"`
}
