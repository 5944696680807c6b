package model

import "github.com/shopspring/decimal"

type Supplier struct {
	BaseModel
	Name         string          `db:"name" json:"name"`
	RUT          string          `db:"rut" json:"rut"`
	Email        *string         `db:"email" json:"email"`
	Phone        *string         `db:"phone" json:"phone"`
	Address      *string         `db:"address" json:"address"`
	Category     *string         `db:"category" json:"category"`
	PaymentTerms *string         `db:"payment_terms" json:"payment_terms"`
	CreditLimit  decimal.Decimal `db:"credit_limit" json:"credit_limit"`
	RankPoints   int             `db:"rank_points" json:"rank_points"`
	Active       bool            `db:"active" json:"active"`
}
