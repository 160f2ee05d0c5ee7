package checkout

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
	return &Handler{service: s, logger: logger.Named("checkout.handler")}
}

func sessionID(c *gin.Context) string {
	return c.GetString("session_id")
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("checkout service error", zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// POST /checkout
func (h *Handler) Start(c *gin.Context) {
	res, err := h.service.Start(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// GET /checkout
func (h *Handler) Get(c *gin.Context) {
	res, err := h.service.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// PUT /checkout/fields
func (h *Handler) SetField(c *gin.Context) {
	var req SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeBadRequest, "invalid request payload", err.Error())
		return
	}

	res, err := h.service.SetField(c.Request.Context(), sessionID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// PUT /checkout/focus
func (h *Handler) SetFocus(c *gin.Context) {
	var req SetFocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeBadRequest, "invalid request payload", err.Error())
		return
	}

	if err := h.service.SetFocus(c.Request.Context(), sessionID(c), req.Focused); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, nil)
}

// POST /checkout/advance
func (h *Handler) Advance(c *gin.Context) {
	res, err := h.service.Advance(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// POST /checkout/back
func (h *Handler) Retreat(c *gin.Context) {
	res, err := h.service.Retreat(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// POST /checkout/jump
func (h *Handler) Jump(c *gin.Context) {
	var req JumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeBadRequest, "invalid request payload", err.Error())
		return
	}

	step, ok := ParseStep(req.Step)
	if !ok {
		h.writeServiceError(c, ErrUnknownStep)
		return
	}

	res, err := h.service.JumpTo(c.Request.Context(), sessionID(c), step)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// POST /checkout/gesture
func (h *Handler) Gesture(c *gin.Context) {
	var req GestureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeBadRequest, "invalid request payload", err.Error())
		return
	}

	res, err := h.service.Gesture(c.Request.Context(), sessionID(c), GestureInput{
		DeltaX:        req.DeltaX,
		DurationMs:    req.DurationMs,
		ReducedMotion: req.ReducedMotion,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// POST /checkout/submit
func (h *Handler) Submit(c *gin.Context) {
	res, err := h.service.Submit(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}
