package model

import "time"

type SentEmail struct {
	ID         string    `db:"id" json:"id"`
	TemplateID string    `db:"template_id" json:"template_id"`
	Recipient  string    `db:"recipient" json:"recipient"`
	Subject    string    `db:"subject" json:"subject"`
	Status     string    `db:"status" json:"status"`
	Error      *string   `db:"error" json:"error"`
	RefType    *string   `db:"ref_type" json:"ref_type"`
	RefID      *string   `db:"ref_id" json:"ref_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

const (
	EmailSent   = "sent"
	EmailFailed = "failed"
)

// Built-in email templates.
const (
	TemplateReservationConfirmation = "reservation_confirmation"
	TemplatePaymentReceipt          = "payment_receipt"
	TemplateCheckoutThanks          = "checkout_thanks"
)
