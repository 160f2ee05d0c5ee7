package cart_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-butterflies-checkout/internal/cart"
	"go-butterflies-checkout/internal/pricing"
	"go-butterflies-checkout/internal/promo"
)

func newTestService() cart.Service {
	return cart.NewService(cart.Deps{
		Store:    cart.NewStore(),
		PromoSvc: promo.NewService(0, nil),
		Engine:   pricing.NewEngine(pricing.DefaultConfig()),
	})
}

func addItem(t *testing.T, svc cart.Service, sessionID, productID string, price float64, qty int) {
	t.Helper()
	err := svc.AddItem(context.Background(), sessionID, cart.AddItemRequest{
		ProductID: productID,
		Name:      "Butterfly Pendant",
		UnitPrice: price,
		Qty:       qty,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
}

func TestCartService_AddItem(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		addItem(t, svc, "s1", "p1", 40, 2)

		count, err := svc.Count(ctx, "s1")
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("same_product_merges_quantities", func(t *testing.T) {
		addItem(t, svc, "s1", "p1", 40, 1)

		detail, err := svc.Detail(ctx, "s1")
		assert.NoError(t, err)
		assert.Len(t, detail.Items, 1)
		assert.Equal(t, 3, detail.Items[0].Qty)
	})

	t.Run("error_missing_product_id", func(t *testing.T) {
		err := svc.AddItem(ctx, "s1", cart.AddItemRequest{
			Name:      "Nameless",
			UnitPrice: 10,
			Qty:       1,
		})
		assert.Error(t, err)
	})

	t.Run("error_zero_qty", func(t *testing.T) {
		err := svc.AddItem(ctx, "s1", cart.AddItemRequest{
			ProductID: "p9",
			Name:      "Zero",
			UnitPrice: 10,
			Qty:       0,
		})
		assert.Error(t, err)
	})

	t.Run("sessions_are_isolated", func(t *testing.T) {
		count, err := svc.Count(ctx, "other-session")
		assert.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestCartService_Quantities(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	addItem(t, svc, "s1", "p1", 40, 2)

	t.Run("update_qty", func(t *testing.T) {
		err := svc.UpdateQty(ctx, "s1", "p1", cart.UpdateQtyRequest{Qty: 5})
		assert.NoError(t, err)

		count, _ := svc.Count(ctx, "s1")
		assert.Equal(t, 5, count)
	})

	t.Run("update_unknown_product", func(t *testing.T) {
		err := svc.UpdateQty(ctx, "s1", "nope", cart.UpdateQtyRequest{Qty: 2})
		assert.ErrorIs(t, err, cart.ErrCartItemNotFound)
	})

	t.Run("increment", func(t *testing.T) {
		err := svc.Increment(ctx, "s1", "p1")
		assert.NoError(t, err)

		count, _ := svc.Count(ctx, "s1")
		assert.Equal(t, 6, count)
	})

	t.Run("decrement_to_zero_removes_the_line", func(t *testing.T) {
		err := svc.UpdateQty(ctx, "s1", "p1", cart.UpdateQtyRequest{Qty: 1})
		assert.NoError(t, err)

		assert.NoError(t, svc.Decrement(ctx, "s1", "p1"))

		detail, _ := svc.Detail(ctx, "s1")
		assert.Empty(t, detail.Items)
	})
}

func TestCartService_ApplyPromo(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	addItem(t, svc, "s1", "p1", 110, 2) // subtotal 220

	t.Run("success", func(t *testing.T) {
		code, err := svc.ApplyPromo(ctx, "s1", "  butterfly10  ")
		assert.NoError(t, err)
		if assert.NotNil(t, code) {
			assert.Equal(t, "BUTTERFLY10", code.Code)
		}

		totals, err := svc.Totals(ctx, "s1")
		assert.NoError(t, err)
		assert.Equal(t, 22.0, totals.Discount.InexactFloat64())
		assert.Equal(t, 227.70, totals.Total.InexactFloat64())
	})

	t.Run("reapplying_replaces_the_code", func(t *testing.T) {
		_, err := svc.ApplyPromo(ctx, "s1", "SAVE25")
		assert.NoError(t, err)

		detail, _ := svc.Detail(ctx, "s1")
		assert.Equal(t, "SAVE25", detail.PromoCode)
	})

	t.Run("error_unknown_code", func(t *testing.T) {
		_, err := svc.ApplyPromo(ctx, "s1", "NOSUCHCODE")
		assert.ErrorIs(t, err, cart.ErrPromoInvalid)
	})

	t.Run("error_below_min_order", func(t *testing.T) {
		other := newTestService()
		addItem(t, other, "s2", "p1", 10, 1)

		_, err := other.ApplyPromo(ctx, "s2", "SAVE25")
		assert.ErrorIs(t, err, cart.ErrPromoMinOrder)
	})

	t.Run("remove_promo", func(t *testing.T) {
		assert.NoError(t, svc.RemovePromo(ctx, "s1"))

		totals, _ := svc.Totals(ctx, "s1")
		assert.True(t, totals.Discount.IsZero())

		assert.ErrorIs(t, svc.RemovePromo(ctx, "s1"), cart.ErrNoPromoApplied)
	})
}

func TestCartService_Totals(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("empty_cart_is_all_zero", func(t *testing.T) {
		totals, err := svc.Totals(ctx, "fresh")
		assert.NoError(t, err)
		assert.True(t, totals.Total.IsZero())
	})

	t.Run("recomputed_after_every_mutation", func(t *testing.T) {
		addItem(t, svc, "s1", "p1", 100, 1)
		first, _ := svc.Totals(ctx, "s1")
		assert.Equal(t, 130.0, first.Total.InexactFloat64(), "100 + 15 shipping + 15 tax")

		addItem(t, svc, "s1", "p2", 100, 1)
		second, _ := svc.Totals(ctx, "s1")
		assert.Equal(t, 230.0, second.Total.InexactFloat64(), "200 crosses the free-shipping threshold")
	})

	t.Run("clear_resets_everything", func(t *testing.T) {
		_, err := svc.ApplyPromo(ctx, "s1", "WELCOME10")
		assert.NoError(t, err)

		assert.NoError(t, svc.Clear(ctx, "s1"))

		snap, _ := svc.Snapshot(ctx, "s1")
		assert.Empty(t, snap.Items)
		assert.Nil(t, snap.Promo)
	})
}
