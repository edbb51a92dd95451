package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment modes accepted by the payment form. PaymentMode stays free text in
// the store; these are the values the UI offers.
const (
	PaymentModeCash   = "cash"
	PaymentModeUPI    = "upi"
	PaymentModeCheque = "cheque"
	PaymentModeBank   = "bank"
)

// Payment is money received from a customer. Payments are hard-deleted,
// there is no soft-delete flag on them.
type Payment struct {
	ID          string
	CustomerID  string
	Amount      decimal.Decimal // always positive
	Date        time.Time
	PaymentMode string
	Reference   string
	Notes       string
	CreatedAt   time.Time
}
