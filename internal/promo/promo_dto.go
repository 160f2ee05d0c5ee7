package promo

import "time"

type ValidateRequest struct {
	Code string `json:"code" binding:"required"`
}

type CodeResponse struct {
	Code           string     `json:"code"`
	Kind           string     `json:"kind"`
	Value          float64    `json:"value"`
	MinOrderAmount float64    `json:"minOrderAmount,omitempty"`
	MaxDiscount    *float64   `json:"maxDiscount,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	Description    string     `json:"description"`
}

func toResponse(c Code) CodeResponse {
	res := CodeResponse{
		Code:           c.Code,
		Kind:           string(c.Kind),
		Value:          c.Value.InexactFloat64(),
		MinOrderAmount: c.MinOrderAmount.InexactFloat64(),
		ExpiresAt:      c.ExpiresAt,
		Description:    c.Description,
	}
	if c.MaxDiscount != nil {
		md := c.MaxDiscount.InexactFloat64()
		res.MaxDiscount = &md
	}
	return res
}
