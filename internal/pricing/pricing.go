package pricing

import (
	"github.com/shopspring/decimal"

	"go-butterflies-checkout/internal/promo"
)

// Config holds the storefront pricing constants.
type Config struct {
	ShippingThreshold decimal.Decimal
	ShippingRate      decimal.Decimal
	TaxRate           decimal.Decimal
}

func DefaultConfig() Config {
	return Config{
		ShippingThreshold: decimal.RequireFromString("200"),
		ShippingRate:      decimal.RequireFromString("15"),
		TaxRate:           decimal.RequireFromString("0.15"),
	}
}

// LineItem is the pricing view of a cart row: unit price times quantity.
type LineItem struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Totals is derived on every read and never cached across input mutations.
// Invariant: Total = Subtotal + Shipping + Tax - Discount, Discount <= Subtotal.
type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// Engine computes cart totals. It is pure: identical inputs always produce
// identical outputs and nothing is mutated or retained between calls.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Compute derives the full totals breakdown. Order of operations is fixed:
// subtotal, then shipping, then discount, then tax on the discounted amount.
func (e *Engine) Compute(items []LineItem, code *promo.Code) Totals {
	subtotal := e.Subtotal(items)
	shipping := e.Shipping(subtotal)
	discount := e.Discount(subtotal, code)
	tax := e.Tax(subtotal, discount)
	total := subtotal.Add(shipping).Add(tax).Sub(discount)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: discount,
		Total:    total,
	}
}

func (e *Engine) Subtotal(items []LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

// Shipping is zero for an empty cart (nothing to ship, distinct from
// qualifying for the free-shipping threshold) and zero at or above the
// threshold; otherwise the flat rate applies.
func (e *Engine) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() {
		return decimal.Zero
	}
	if subtotal.GreaterThanOrEqual(e.cfg.ShippingThreshold) {
		return decimal.Zero
	}
	return e.cfg.ShippingRate
}

// Discount resolves the promo discount against a subtotal. Inactive codes and
// subtotals under the code's minimum yield zero. Percentage discounts are
// capped at MaxDiscount when present. Fixed discounts (freeship included,
// modeled as a fixed discount equal to the shipping rate) are clamped to the
// subtotal so the discount can never exceed what is being discounted.
func (e *Engine) Discount(subtotal decimal.Decimal, code *promo.Code) decimal.Decimal {
	if code == nil || !code.Active {
		return decimal.Zero
	}
	if !code.MeetsMinOrder(subtotal) {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch code.Kind {
	case promo.KindPercentage:
		discount = subtotal.Mul(code.Value).Div(decimal.NewFromInt(100))
		if code.MaxDiscount != nil && discount.GreaterThan(*code.MaxDiscount) {
			discount = *code.MaxDiscount
		}
	case promo.KindFixed:
		discount = code.Value
	case promo.KindFreeShip:
		discount = e.cfg.ShippingRate
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount.Round(2)
}

// Tax is levied on the discounted amount and is never negative.
func (e *Engine) Tax(subtotal, discount decimal.Decimal) decimal.Decimal {
	base := subtotal.Sub(discount)
	if base.IsNegative() {
		base = decimal.Zero
	}
	return base.Mul(e.cfg.TaxRate).Round(2)
}
