package cart

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"go-butterflies-checkout/internal/pkg/apperror"
)

var (
	ErrCartItemNotFound = apperror.NotFound(apperror.CodeCartItemNotFound, "item not in cart")
	ErrInvalidQty       = apperror.BadRequest(apperror.CodeBadRequest, "quantity must be at least 1")
	ErrPromoInvalid     = apperror.Unprocessable(apperror.CodePromoInvalid, "promo code is invalid or expired")
	ErrPromoMinOrder    = apperror.Unprocessable(apperror.CodePromoMinOrder, "order subtotal does not meet the promo minimum")
	ErrNoPromoApplied   = apperror.NotFound(apperror.CodeNotFound, "no promo code applied")
)

// MapValidationError folds a validator.v10 struct error into the matching
// domain error so handlers never leak tag syntax to clients.
func MapValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if fe.Field() == "Qty" {
			return ErrInvalidQty
		}
	}
	return apperror.BadRequest(apperror.CodeValidationFailed, "invalid request payload")
}
