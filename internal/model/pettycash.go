package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	SessionOpen      = "open"
	SessionClosed    = "closed"
	SessionSuspended = "suspended"
)

const (
	ClosurePending  = "pending"
	ClosureApproved = "approved"
	ClosureRejected = "rejected"
)

type CashSession struct {
	BaseModel
	UserID         string          `db:"user_id" json:"user_id"`
	CashRegisterID int             `db:"cash_register_id" json:"cash_register_id"`
	RegisterTypeID int             `db:"register_type_id" json:"register_type_id"`
	OpeningAmount  decimal.Decimal `db:"opening_amount" json:"opening_amount"`
	CurrentAmount  decimal.Decimal `db:"current_amount" json:"current_amount"`
	Status         string          `db:"status" json:"status"`
	OpenedAt       time.Time       `db:"opened_at" json:"opened_at"`
	ClosedAt       *time.Time      `db:"closed_at" json:"closed_at"`
	Notes          *string         `db:"notes" json:"notes"`
}

type Expense struct {
	ID            string          `db:"id" json:"id"`
	SessionID     string          `db:"session_id" json:"session_id"`
	Description   string          `db:"description" json:"description"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Category      string          `db:"category" json:"category"`
	CostCenter    *string         `db:"cost_center" json:"cost_center"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	UserID        string          `db:"user_id" json:"user_id"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

type Purchase struct {
	ID            string          `db:"id" json:"id"`
	SessionID     string          `db:"session_id" json:"session_id"`
	ProductName   string          `db:"product_name" json:"product_name"`
	ProductID     *string         `db:"product_id" json:"product_id"`
	Quantity      decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price" json:"unit_price"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	SupplierID    *string         `db:"supplier_id" json:"supplier_id"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	UserID        string          `db:"user_id" json:"user_id"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

type Income struct {
	ID            string          `db:"id" json:"id"`
	SessionID     string          `db:"session_id" json:"session_id"`
	Description   string          `db:"description" json:"description"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Category      string          `db:"category" json:"category"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	UserID        string          `db:"user_id" json:"user_id"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// CashTotals are the per-session sums the closure is computed from.
type CashTotals struct {
	CashSales      decimal.Decimal `db:"cash_sales" json:"cash_sales"`
	CardSales      decimal.Decimal `db:"card_sales" json:"card_sales"`
	OtherSales     decimal.Decimal `db:"other_sales" json:"other_sales"`
	CashIncomes    decimal.Decimal `db:"cash_incomes" json:"cash_incomes"`
	CashExpenses   decimal.Decimal `db:"cash_expenses" json:"cash_expenses"`
	CashPurchases  decimal.Decimal `db:"cash_purchases" json:"cash_purchases"`
	SalesCount     int             `db:"sales_count" json:"sales_count"`
	ExpensesCount  int             `db:"expenses_count" json:"expenses_count"`
	PurchasesCount int             `db:"purchases_count" json:"purchases_count"`
	IncomesCount   int             `db:"incomes_count" json:"incomes_count"`
}

type ClosureSummary struct {
	Session      *CashSession    `json:"session"`
	Totals       CashTotals      `json:"totals"`
	ExpectedCash decimal.Decimal `json:"expected_cash"`
	Duration     string          `json:"duration"`
}

// ExpectedCash = opening + cash sales + cash incomes - cash expenses - cash purchases.
func ExpectedCash(opening decimal.Decimal, t CashTotals) decimal.Decimal {
	return opening.Add(t.CashSales).Add(t.CashIncomes).Sub(t.CashExpenses).Sub(t.CashPurchases)
}

// FormatSessionDuration renders d as "Xh Ymin".
func FormatSessionDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Minutes())
	return fmt.Sprintf("%dh %dmin", total/60, total%60)
}

type CashClosure struct {
	ID           string          `db:"id" json:"id"`
	SessionID    string          `db:"session_id" json:"session_id"`
	ExpectedCash decimal.Decimal `db:"expected_cash" json:"expected_cash"`
	ActualCash   decimal.Decimal `db:"actual_cash" json:"actual_cash"`
	Difference   decimal.Decimal `db:"difference" json:"difference"`
	TotalSales   decimal.Decimal `db:"total_sales" json:"total_sales"`
	Notes        *string         `db:"notes" json:"notes"`
	Status       string          `db:"status" json:"status"`
	ClosedBy     string          `db:"closed_by" json:"closed_by"`
	ReviewedBy   *string         `db:"reviewed_by" json:"reviewed_by"`
	ReviewNotes  *string         `db:"review_notes" json:"review_notes"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	ReviewedAt   *time.Time      `db:"reviewed_at" json:"reviewed_at"`
}

// Petty cash transaction kinds.
const (
	TxExpense  = "expense"
	TxPurchase = "purchase"
	TxIncome   = "income"
)

type SessionTransactions struct {
	Expenses  []Expense  `json:"expenses"`
	Purchases []Purchase `json:"purchases"`
	Incomes   []Income   `json:"incomes"`
}
