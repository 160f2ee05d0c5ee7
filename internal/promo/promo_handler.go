package promo

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-butterflies-checkout/internal/pkg/apperror"
	"go-butterflies-checkout/internal/pkg/response"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// GET /promos
func (h *Handler) List(c *gin.Context) {
	codes, err := h.service.List(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	res := make([]CodeResponse, 0, len(codes))
	for _, code := range codes {
		res = append(res, toResponse(code))
	}
	response.Success(c, http.StatusOK, res, nil)
}

// POST /promos/validate
//
// A lookup miss is a 200 with valid=false, not an error; the storefront
// treats an unknown code the same as no code applied.
func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeBadRequest, "invalid request payload", err.Error())
		return
	}

	code, err := h.service.Validate(c.Request.Context(), req.Code)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	if code == nil {
		response.Success(c, http.StatusOK, gin.H{"valid": false}, nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"valid": true, "promo": toResponse(*code)}, nil)
}
