package dto

import "github.com/shopspring/decimal"

type CreateRoomInput struct {
	Number        string
	Type          string
	Capacity      int
	Floor         int
	Amenities     string
	PricePerNight decimal.Decimal
}

type UpdateRoomInput struct {
	ID            string
	Number        string
	Type          string
	Capacity      int
	Floor         int
	Amenities     string
	PricePerNight decimal.Decimal
	IsActive      bool
}
