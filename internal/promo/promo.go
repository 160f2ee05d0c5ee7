package promo

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindPercentage Kind = "percentage"
	KindFixed      Kind = "fixed"
	KindFreeShip   Kind = "freeship"
)

// Code is a resolved promo code record. Records are immutable once resolved;
// callers treat them as read-only snapshots of the promotion table.
type Code struct {
	Code           string
	Kind           Kind
	Value          decimal.Decimal
	MinOrderAmount decimal.Decimal
	MaxDiscount    *decimal.Decimal
	ExpiresAt      *time.Time
	Active         bool
	Description    string
}

// Expired reports whether the code's expiration is in the past relative to now.
// Codes without an expiration never expire.
func (c Code) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// MeetsMinOrder reports whether a subtotal qualifies for the code. The
// boundary subtotal == MinOrderAmount counts as meeting the minimum.
func (c Code) MeetsMinOrder(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThanOrEqual(c.MinOrderAmount)
}
