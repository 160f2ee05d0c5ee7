//go:build property

package pricing_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"go-butterflies-checkout/internal/pricing"
	"go-butterflies-checkout/internal/promo"
)

func genLineItems() gopter.Gen {
	genItem := gopter.CombineGens(
		gen.Int64Range(1, 100000), // unit price in cents
		gen.IntRange(1, 20),
	).Map(func(vals []interface{}) pricing.LineItem {
		return pricing.LineItem{
			UnitPrice: decimal.New(vals[0].(int64), -2),
			Quantity:  vals[1].(int),
		}
	})
	return gen.SliceOfN(8, genItem)
}

func genPromoCode() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 3), // 0 none, 1 percentage, 2 fixed, 3 freeship
		gen.Int64Range(1, 90),
		gen.Int64Range(0, 30000),
		gen.Int64Range(0, 20000),
	).Map(func(vals []interface{}) *promo.Code {
		kind := vals[0].(int)
		if kind == 0 {
			return nil
		}
		code := &promo.Code{
			Code:           "PROP",
			MinOrderAmount: decimal.New(vals[3].(int64), -2),
			Active:         true,
		}
		switch kind {
		case 1:
			code.Kind = promo.KindPercentage
			code.Value = decimal.NewFromInt(vals[1].(int64))
			cap := decimal.New(vals[2].(int64), -2)
			code.MaxDiscount = &cap
		case 2:
			code.Kind = promo.KindFixed
			code.Value = decimal.New(vals[2].(int64), -2)
		default:
			code.Kind = promo.KindFreeShip
		}
		return code
	})
}

func TestTotalsInvariants(t *testing.T) {
	engine := pricing.NewEngine(pricing.DefaultConfig())

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("total equals subtotal plus shipping plus tax minus discount",
		prop.ForAll(func(items []pricing.LineItem, code *promo.Code) bool {
			totals := engine.Compute(items, code)
			expected := totals.Subtotal.Add(totals.Shipping).Add(totals.Tax).Sub(totals.Discount)
			return totals.Total.Equal(expected)
		}, genLineItems(), genPromoCode()))

	properties.Property("discount never exceeds subtotal",
		prop.ForAll(func(items []pricing.LineItem, code *promo.Code) bool {
			totals := engine.Compute(items, code)
			return totals.Discount.LessThanOrEqual(totals.Subtotal)
		}, genLineItems(), genPromoCode()))

	properties.Property("tax and discount are never negative",
		prop.ForAll(func(items []pricing.LineItem, code *promo.Code) bool {
			totals := engine.Compute(items, code)
			return !totals.Tax.IsNegative() && !totals.Discount.IsNegative()
		}, genLineItems(), genPromoCode()))

	properties.Property("shipping is zero only for empty or threshold-qualifying carts",
		prop.ForAll(func(items []pricing.LineItem) bool {
			totals := engine.Compute(items, nil)
			if totals.Shipping.IsZero() {
				return totals.Subtotal.IsZero() ||
					totals.Subtotal.GreaterThanOrEqual(decimal.RequireFromString("200"))
			}
			return totals.Shipping.Equal(decimal.RequireFromString("15"))
		}, genLineItems()))

	properties.Property("identical inputs produce identical totals",
		prop.ForAll(func(items []pricing.LineItem, code *promo.Code) bool {
			first := engine.Compute(items, code)
			second := engine.Compute(items, code)
			return first.Total.Equal(second.Total) &&
				first.Tax.Equal(second.Tax) &&
				first.Discount.Equal(second.Discount)
		}, genLineItems(), genPromoCode()))

	properties.TestingRun(t)
}
