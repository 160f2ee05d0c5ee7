package promo

import (
	"time"

	"github.com/shopspring/decimal"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// seedCodes is the static promotion table. It stands in for the promotions
// backend; in production these rows come from the campaign service.
func seedCodes() map[string]Code {
	return map[string]Code{
		"WELCOME10": {
			Code:           "WELCOME10",
			Kind:           KindPercentage,
			Value:          decimal.RequireFromString("10"),
			MinOrderAmount: decimal.RequireFromString("50"),
			MaxDiscount:    decPtr("50"),
			Active:         true,
			Description:    "10% off your first order",
		},
		"BUTTERFLY10": {
			Code:           "BUTTERFLY10",
			Kind:           KindPercentage,
			Value:          decimal.RequireFromString("10"),
			MinOrderAmount: decimal.RequireFromString("50"),
			MaxDiscount:    decPtr("50"),
			Active:         true,
			Description:    "10% off, with love from Noura",
		},
		"SAVE25": {
			Code:           "SAVE25",
			Kind:           KindFixed,
			Value:          decimal.RequireFromString("25"),
			MinOrderAmount: decimal.RequireFromString("150"),
			Active:         true,
			Description:    "25 off orders over 150",
		},
		"FREESHIP": {
			Code:        "FREESHIP",
			Kind:        KindFreeShip,
			Value:       decimal.Zero,
			Active:      true,
			Description: "Free shipping on any order",
		},
		"VIP20": {
			Code:           "VIP20",
			Kind:           KindPercentage,
			Value:          decimal.RequireFromString("20"),
			MinOrderAmount: decimal.RequireFromString("300"),
			MaxDiscount:    decPtr("120"),
			Active:         true,
			Description:    "20% off large orders",
		},
		"SUMMER24": {
			Code:        "SUMMER24",
			Kind:        KindPercentage,
			Value:       decimal.RequireFromString("15"),
			ExpiresAt:   timePtr(time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)),
			Active:      true,
			Description: "Summer sale, long gone",
		},
		"PAUSED5": {
			Code:        "PAUSED5",
			Kind:        KindFixed,
			Value:       decimal.RequireFromString("5"),
			Active:      false,
			Description: "Disabled campaign",
		},
	}
}
