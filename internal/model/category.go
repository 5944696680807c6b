package model

// Register types of the point of sale.
const (
	RegisterReception  = 1
	RegisterRestaurant = 2
)

// RegisterCode is the short code used in SKUs and sale numbers.
func RegisterCode(registerType int) string {
	switch registerType {
	case RegisterReception:
		return "REC"
	case RegisterRestaurant:
		return "REST"
	}
	return ""
}

type Category struct {
	BaseModel
	RegisterTypeID int     `db:"register_type_id" json:"register_type_id"`
	Name           string  `db:"name" json:"name"`
	Description    *string `db:"description" json:"description"`
	Color          *string `db:"color" json:"color"`
	SortOrder      int     `db:"sort_order" json:"sort_order"`
	IsActive       bool    `db:"is_active" json:"is_active"`
}
