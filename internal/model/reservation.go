package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPrereserva = "prereserva"
	StatusConfirmada = "confirmada"
	StatusEnCurso    = "en_curso"
	StatusFinalizada = "finalizada"
	StatusCancelled  = "cancelled"
)

const (
	PaymentNone    = "no_payment"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
	PaymentOverdue = "overdue"
)

const (
	AdjustmentNone       = "none"
	AdjustmentPercentage = "percentage"
	AdjustmentFixed      = "fixed_amount"
)

const (
	CommentGeneral      = "general"
	CommentPayment      = "payment"
	CommentService      = "service"
	CommentCancellation = "cancellation"
	CommentSystem       = "system"
)

// reservationTransitions lists the statuses reachable from each status.
var reservationTransitions = map[string][]string{
	StatusPrereserva: {StatusConfirmada, StatusCancelled},
	StatusConfirmada: {StatusEnCurso, StatusCancelled, StatusPrereserva},
	StatusEnCurso:    {StatusFinalizada},
	StatusFinalizada: {},
	StatusCancelled:  {},
}

// CanTransition reports whether a reservation may move from one status to another.
func CanTransition(from, to string) bool {
	for _, s := range reservationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func ValidReservationStatus(s string) bool {
	_, ok := reservationTransitions[s]
	return ok
}

// BlocksRoom reports whether a reservation in status s occupies its room.
func BlocksRoom(s string) bool {
	return s != StatusFinalizada && s != StatusCancelled
}

type Reservation struct {
	BaseModel
	ClientID        string          `db:"client_id" json:"client_id"`
	GuestName       string          `db:"guest_name" json:"guest_name"`
	GuestEmail      string          `db:"guest_email" json:"guest_email"`
	GuestPhone      string          `db:"guest_phone" json:"guest_phone"`
	CheckIn         time.Time       `db:"check_in" json:"check_in"`
	CheckOut        time.Time       `db:"check_out" json:"check_out"`
	Guests          int             `db:"guests" json:"guests"`
	RoomID          string          `db:"room_id" json:"room_id"`
	ClientType      string          `db:"client_type" json:"client_type"`
	CompanyName     *string         `db:"company_name" json:"company_name"`
	CompanyRUT      *string         `db:"company_rut" json:"company_rut"`
	BillingName     *string         `db:"billing_name" json:"billing_name"`
	BillingRUT      *string         `db:"billing_rut" json:"billing_rut"`
	BillingAddress  *string         `db:"billing_address" json:"billing_address"`
	AuthorizedBy    *string         `db:"authorized_by" json:"authorized_by"`
	Status          string          `db:"status" json:"status"`
	TotalAmount     decimal.Decimal `db:"total_amount" json:"total_amount"`
	DepositAmount   decimal.Decimal `db:"deposit_amount" json:"deposit_amount"`
	PaidAmount      decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	PendingAmount   decimal.Decimal `db:"pending_amount" json:"pending_amount"`
	PaymentStatus   string          `db:"payment_status" json:"payment_status"`
	PaymentMethod   *string         `db:"payment_method" json:"payment_method"`
	DiscountType    string          `db:"discount_type" json:"discount_type"`
	DiscountValue   decimal.Decimal `db:"discount_value" json:"discount_value"`
	DiscountAmount  decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	DiscountReason  *string         `db:"discount_reason" json:"discount_reason"`
	SurchargeType   string          `db:"surcharge_type" json:"surcharge_type"`
	SurchargeValue  decimal.Decimal `db:"surcharge_value" json:"surcharge_value"`
	SurchargeAmount decimal.Decimal `db:"surcharge_amount" json:"surcharge_amount"`
	SurchargeReason *string         `db:"surcharge_reason" json:"surcharge_reason"`
	CreatedBy       *string         `db:"created_by" json:"created_by"`
	UpdatedBy       *string         `db:"updated_by" json:"updated_by"`

	Products []ReservationProduct `db:"-" json:"products,omitempty"`
	Comments []ReservationComment `db:"-" json:"comments,omitempty"`
	Payments []ReservationPayment `db:"-" json:"payments,omitempty"`
}

// Nights is the number of nights between check-in and check-out.
func (r *Reservation) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

type ReservationProduct struct {
	ID            string          `db:"id" json:"id"`
	ReservationID string          `db:"reservation_id" json:"reservation_id"`
	ProductID     string          `db:"product_id" json:"product_id"`
	Quantity      int             `db:"quantity" json:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price" json:"unit_price"`
	TotalPrice    decimal.Decimal `db:"total_price" json:"total_price"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

type ReservationComment struct {
	ID            string    `db:"id" json:"id"`
	ReservationID string    `db:"reservation_id" json:"reservation_id"`
	Text          string    `db:"text" json:"text"`
	Author        string    `db:"author" json:"author"`
	CommentType   string    `db:"comment_type" json:"comment_type"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type ReservationPayment struct {
	ID            string          `db:"id" json:"id"`
	ReservationID string          `db:"reservation_id" json:"reservation_id"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	Reference     *string         `db:"reference" json:"reference"`
	Notes         *string         `db:"notes" json:"notes"`
	ProcessedBy   string          `db:"processed_by" json:"processed_by"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

type ReservationStats struct {
	Total           int             `db:"total" json:"total"`
	Prereserva      int             `db:"prereserva" json:"prereserva"`
	Confirmada      int             `db:"confirmada" json:"confirmada"`
	EnCurso         int             `db:"en_curso" json:"en_curso"`
	Finalizada      int             `db:"finalizada" json:"finalizada"`
	Cancelled       int             `db:"cancelled" json:"cancelled"`
	Revenue         decimal.Decimal `db:"revenue" json:"revenue"`
	PendingPayments decimal.Decimal `db:"pending_payments" json:"pending_payments"`
	ActiveRooms     int             `db:"-" json:"active_rooms"`
	OccupiedRooms   int             `db:"-" json:"occupied_rooms"`
	OccupancyRate   float64         `db:"-" json:"occupancy_rate"`
}

type DailyOccupancy struct {
	Date         time.Time `db:"day" json:"date"`
	Reservations int       `db:"reservations" json:"reservations"`
}

var hundred = decimal.NewFromInt(100)

// DiscountAmount is the amount a discount of the given kind takes off base.
// Percentages round to whole pesos and fixed amounts never exceed base.
func DiscountAmount(kind string, value, base decimal.Decimal) decimal.Decimal {
	if !value.IsPositive() || !base.IsPositive() {
		return decimal.Zero
	}
	switch kind {
	case AdjustmentPercentage:
		return base.Mul(value).Div(hundred).Round(0)
	case AdjustmentFixed:
		return decimal.Min(value, base)
	}
	return decimal.Zero
}

// SurchargeAmount is the amount a surcharge of the given kind adds to base.
func SurchargeAmount(kind string, value, base decimal.Decimal) decimal.Decimal {
	if !value.IsPositive() {
		return decimal.Zero
	}
	switch kind {
	case AdjustmentPercentage:
		return base.Mul(value).Div(hundred).Round(0)
	case AdjustmentFixed:
		return value
	}
	return decimal.Zero
}

// ValidAdjustment reports whether kind is a known discount/surcharge type.
func ValidAdjustment(kind string) bool {
	switch kind {
	case AdjustmentNone, AdjustmentPercentage, AdjustmentFixed:
		return true
	}
	return false
}

// PriceFrom sets discount, surcharge and total from base and recomputes the
// pending balance against what was already paid.
func (r *Reservation) PriceFrom(base decimal.Decimal) {
	r.DiscountAmount = DiscountAmount(r.DiscountType, r.DiscountValue, base)
	r.SurchargeAmount = SurchargeAmount(r.SurchargeType, r.SurchargeValue, base)
	r.TotalAmount = base.Sub(r.DiscountAmount).Add(r.SurchargeAmount)
	r.settle()
}

// ApplyPayment adds amount to the paid total.
func (r *Reservation) ApplyPayment(amount decimal.Decimal) {
	r.PaidAmount = r.PaidAmount.Add(amount)
	r.settle()
}

func (r *Reservation) settle() {
	r.PendingAmount = decimal.Max(decimal.Zero, r.TotalAmount.Sub(r.PaidAmount))
	switch {
	case !r.PaidAmount.IsPositive():
		r.PaymentStatus = PaymentNone
	case r.PaidAmount.GreaterThanOrEqual(r.TotalAmount):
		r.PaymentStatus = PaymentPaid
	default:
		r.PaymentStatus = PaymentPartial
	}
}

// Overlaps reports whether [checkIn, checkOut) intersects the reservation's stay.
func (r *Reservation) Overlaps(checkIn, checkOut time.Time) bool {
	return checkIn.Before(r.CheckOut) && checkOut.After(r.CheckIn)
}
