package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PayCash     = "cash"
	PayCard     = "card"
	PayTransfer = "transfer"
	PayOther    = "other"
)

const (
	SaleCompleted = "completed"
	SaleCancelled = "cancelled"
)

func ValidPaymentMethod(m string) bool {
	switch m {
	case PayCash, PayCard, PayTransfer, PayOther:
		return true
	}
	return false
}

// PaymentStatusOf derives a sale's payment status from what was paid so far.
func PaymentStatusOf(paid, total decimal.Decimal) string {
	switch {
	case paid.IsPositive() && paid.GreaterThanOrEqual(total):
		return PaymentPaid
	case paid.IsPositive():
		return PaymentPartial
	case total.IsZero():
		return PaymentPaid
	}
	return PaymentNone
}

// SaleNumberPrefix is "<REC|REST>-YYYYMMDD-"; the daily sequence follows it.
func SaleNumberPrefix(registerType int, day time.Time) string {
	return fmt.Sprintf("%s-%s-", RegisterCode(registerType), day.Format("20060102"))
}

func FormatSaleNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s%04d", prefix, seq)
}

// POSSKU is the SKU of the POS copy of a catalog product for registerType.
func POSSKU(p *Product, registerType int) string {
	if sku := strings.TrimSpace(p.SKU); sku != "" {
		return sku + "-" + RegisterCode(registerType)
	}
	return fmt.Sprintf("PROD-%s-%s", p.ID, RegisterCode(registerType))
}

// POSPrice is the rounded selling price of a catalog product at the POS.
func POSPrice(p *Product) decimal.Decimal {
	if p.FinalPrice.IsPositive() {
		return p.FinalPrice.Round(0)
	}
	return p.SalePrice.Round(0)
}

type POSProduct struct {
	BaseModel
	Name           string          `db:"name" json:"name"`
	Description    *string         `db:"description" json:"description"`
	SKU            string          `db:"sku" json:"sku"`
	Price          decimal.Decimal `db:"price" json:"price"`
	Cost           decimal.Decimal `db:"cost" json:"cost"`
	CategoryID     string          `db:"category_id" json:"category_id"`
	RegisterTypeID int             `db:"register_type_id" json:"register_type_id"`
	ProductID      *string         `db:"product_id" json:"product_id"`
	IsActive       bool            `db:"is_active" json:"is_active"`
	SortOrder      int             `db:"sort_order" json:"sort_order"`
}

type Sale struct {
	BaseModel
	SessionID      string          `db:"session_id" json:"session_id"`
	RegisterTypeID int             `db:"register_type_id" json:"register_type_id"`
	SaleNumber     string          `db:"sale_number" json:"sale_number"`
	CustomerName   *string         `db:"customer_name" json:"customer_name"`
	ClientID       *string         `db:"client_id" json:"client_id"`
	TableNumber    *string         `db:"table_number" json:"table_number"`
	RoomNumber     *string         `db:"room_number" json:"room_number"`
	Subtotal       decimal.Decimal `db:"subtotal" json:"subtotal"`
	TaxAmount      decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	DiscountAmount decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	DiscountReason *string         `db:"discount_reason" json:"discount_reason"`
	Total          decimal.Decimal `db:"total" json:"total"`
	PaidAmount     decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	PaymentStatus  string          `db:"payment_status" json:"payment_status"`
	Status         string          `db:"status" json:"status"`
	Notes          *string         `db:"notes" json:"notes"`
	UserID         *string         `db:"user_id" json:"user_id"`

	Items    []SaleItem    `db:"-" json:"items,omitempty"`
	Payments []SalePayment `db:"-" json:"payments,omitempty"`
}

type SaleItem struct {
	ID           string          `db:"id" json:"id"`
	SaleID       string          `db:"sale_id" json:"sale_id"`
	POSProductID string          `db:"pos_product_id" json:"pos_product_id"`
	ProductID    *string         `db:"product_id" json:"product_id"`
	ProductName  string          `db:"product_name" json:"product_name"`
	Quantity     int             `db:"quantity" json:"quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price" json:"unit_price"`
	Total        decimal.Decimal `db:"total" json:"total"`
	Notes        *string         `db:"notes" json:"notes"`
}

type SalePayment struct {
	ID             string           `db:"id" json:"id"`
	SaleID         string           `db:"sale_id" json:"sale_id"`
	PaymentMethod  string           `db:"payment_method" json:"payment_method"`
	Amount         decimal.Decimal  `db:"amount" json:"amount"`
	ReceivedAmount *decimal.Decimal `db:"received_amount" json:"received_amount"`
	ChangeAmount   decimal.Decimal  `db:"change_amount" json:"change_amount"`
	Reference      *string          `db:"reference" json:"reference"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
}

type PaymentMethodTotal struct {
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	Count         int             `db:"count" json:"count"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
}

type SyncStats struct {
	EnabledProducts int `db:"enabled_products" json:"enabled_products"`
	POSProducts     int `db:"pos_products" json:"pos_products"`
	SyncedProducts  int `db:"synced_products" json:"synced_products"`
	PendingSync     int `db:"pending_sync" json:"pending_sync"`
}

type SyncResult struct {
	Reception  int      `json:"reception"`
	Restaurant int      `json:"restaurant"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors,omitempty"`
}

const EventSaleCreated = "SaleCreated"

// SaleCreatedEvent is published on the sales topic after a POS sale commits.
type SaleCreatedEvent struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	Payload   SaleEventPayload `json:"payload"`
	Timestamp time.Time        `json:"timestamp"`
}

type SaleEventPayload struct {
	ID             string          `json:"id"`
	SaleNumber     string          `json:"sale_number"`
	RegisterTypeID int             `json:"register_type_id"`
	SessionID      string          `json:"session_id"`
	UserID         *string         `json:"user_id,omitempty"`
	Items          []SaleEventItem `json:"items"`
}

type SaleEventItem struct {
	ProductID   *string `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
}
