package cart

// ==================== REQUEST STRUCTS ====================

type AddItemRequest struct {
	ProductID     string   `json:"productId" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	UnitPrice     float64  `json:"unitPrice" binding:"required,gt=0"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Qty           int      `json:"qty" binding:"required,gte=1"`
}

type UpdateQtyRequest struct {
	Qty int `json:"qty" binding:"required,gte=1"`
}

type ApplyPromoRequest struct {
	Code string `json:"code" binding:"required"`
}

// ==================== RESPONSE STRUCTS ====================

type CartItemResponse struct {
	ProductID     string   `json:"productId"`
	Name          string   `json:"name"`
	UnitPrice     float64  `json:"unitPrice"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Qty           int      `json:"qty"`
	LineTotal     float64  `json:"lineTotal"`
}

type CartDetailResponse struct {
	Items     []CartItemResponse `json:"items"`
	PromoCode string             `json:"promoCode,omitempty"`
	Totals    TotalsResponse     `json:"totals"`
}

type CartCountResponse struct {
	Count int `json:"count"`
}

type TotalsResponse struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

type PromoAppliedResponse struct {
	Code        string  `json:"code"`
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Discount    float64 `json:"discount"`
}
