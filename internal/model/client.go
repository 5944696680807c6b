package model

import "github.com/shopspring/decimal"

const (
	ClientPersona = "persona"
	ClientEmpresa = "empresa"

	ClientActive   = "activo"
	ClientInactive = "inactivo"
)

type Client struct {
	BaseModel
	Type       string          `db:"type" json:"type"`
	Name       string          `db:"name" json:"name"`
	LastName   *string         `db:"last_name" json:"last_name"`
	RUT        *string         `db:"rut" json:"rut"`
	Email      *string         `db:"email" json:"email"`
	Phone      *string         `db:"phone" json:"phone"`
	Address    *string         `db:"address" json:"address"`
	City       *string         `db:"city" json:"city"`
	Country    string          `db:"country" json:"country"`
	IsFrequent bool            `db:"is_frequent" json:"is_frequent"`
	Ranking    int             `db:"ranking" json:"ranking"`
	Status     string          `db:"status" json:"status"`
	Notes      *string         `db:"notes" json:"notes"`
	TotalSpent decimal.Decimal `db:"total_spent" json:"total_spent"`
	VisitCount int             `db:"visit_count" json:"visit_count"`
}

// FullName joins name and last name.
func (c *Client) FullName() string {
	if c.LastName == nil || *c.LastName == "" {
		return c.Name
	}
	return c.Name + " " + *c.LastName
}
