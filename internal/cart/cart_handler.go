package cart

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-butterflies-checkout/internal/pkg/apperror"
	"go-butterflies-checkout/internal/pkg/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(s Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: s, logger: logger.Named("cart.handler")}
}

func sessionID(c *gin.Context) string {
	return c.GetString("session_id")
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("cart service error", zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GET /cart
func (h *Handler) Detail(c *gin.Context) {
	res, err := h.service.Detail(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// GET /cart/count
func (h *Handler) Count(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, CartCountResponse{Count: count}, nil)
}

// GET /cart/totals
func (h *Handler) Totals(c *gin.Context) {
	totals, err := h.service.Totals(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapTotals(totals), nil)
}

// POST /cart/items
func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeBadRequest, "invalid request payload", err.Error())
		return
	}

	if err := h.service.AddItem(c.Request.Context(), sessionID(c), req); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, nil, nil)
}

// PATCH /cart/items/:productId
func (h *Handler) UpdateQty(c *gin.Context) {
	var req UpdateQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeBadRequest, "invalid request payload", err.Error())
		return
	}

	if err := h.service.UpdateQty(c.Request.Context(), sessionID(c), c.Param("productId"), req); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, nil)
}

// POST /cart/items/:productId/increment
func (h *Handler) Increment(c *gin.Context) {
	if err := h.service.Increment(c.Request.Context(), sessionID(c), c.Param("productId")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, nil)
}

// POST /cart/items/:productId/decrement
func (h *Handler) Decrement(c *gin.Context) {
	if err := h.service.Decrement(c.Request.Context(), sessionID(c), c.Param("productId")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, nil)
}

// DELETE /cart/items/:productId
func (h *Handler) RemoveItem(c *gin.Context) {
	if err := h.service.RemoveItem(c.Request.Context(), sessionID(c), c.Param("productId")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, nil)
}

// DELETE /cart
func (h *Handler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), sessionID(c)); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, nil)
}

// POST /cart/promo
func (h *Handler) ApplyPromo(c *gin.Context) {
	var req ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeBadRequest, "invalid request payload", err.Error())
		return
	}

	code, err := h.service.ApplyPromo(c.Request.Context(), sessionID(c), req.Code)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	totals, err := h.service.Totals(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, PromoAppliedResponse{
		Code:        code.Code,
		Kind:        string(code.Kind),
		Description: code.Description,
		Discount:    totals.Discount.InexactFloat64(),
	}, nil)
}

// DELETE /cart/promo
func (h *Handler) RemovePromo(c *gin.Context) {
	if err := h.service.RemovePromo(c.Request.Context(), sessionID(c)); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, nil)
}
