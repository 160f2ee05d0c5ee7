package apperror

import "net/http"

const (
	CodeInternalError    = "INTERNAL_ERROR"
	CodeBadRequest       = "BAD_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeConflict         = "CONFLICT"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeTransitionDenied = "TRANSITION_DENIED"
	CodeSubmissionLocked = "SUBMISSION_IN_FLIGHT"
	CodePromoInvalid     = "PROMO_INVALID"
	CodePromoMinOrder    = "PROMO_MIN_ORDER_NOT_MET"
	CodeCartEmpty        = "CART_EMPTY"
	CodeCartItemNotFound = "CART_ITEM_NOT_FOUND"
	CodeSessionNotFound  = "SESSION_NOT_FOUND"
)

// AppError is the domain error carried from services to the HTTP boundary.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

func NotFound(code, message string) *AppError {
	return New(code, message, http.StatusNotFound)
}

func BadRequest(code, message string) *AppError {
	return New(code, message, http.StatusBadRequest)
}

func Unprocessable(code, message string) *AppError {
	return New(code, message, http.StatusUnprocessableEntity)
}

func Conflict(code, message string) *AppError {
	return New(code, message, http.StatusConflict)
}
