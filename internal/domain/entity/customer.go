package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record lifecycle states. Soft-deleted records stay in the store so that
// historical invoices and payments keep a resolvable reference.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Customer is a shop on one of the weekly delivery routes.
type Customer struct {
	ID             string
	Name           string
	ShopName       string
	Phone          string // unique
	Address        string
	RouteWeekday   int // 0 = Sunday .. 6 = Saturday
	RouteOrder     *int
	GSTIN          string          // GST registration, empty for unregistered shops
	OpeningBalance decimal.Decimal // pre-existing dues carried in from the paper books, signed
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Deleted reports whether the customer has been soft-deleted.
func (c *Customer) Deleted() bool { return c.Status == StatusDeleted }
