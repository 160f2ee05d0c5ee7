package checkout

import "go-butterflies-checkout/internal/pkg/apperror"

var (
	ErrSessionNotFound = apperror.NotFound(apperror.CodeSessionNotFound, "checkout session not found")
	ErrUnknownStep     = apperror.BadRequest(apperror.CodeBadRequest, "unknown checkout step")
	ErrUnknownField    = apperror.BadRequest(apperror.CodeBadRequest, "unknown form field")

	ErrForwardJump = apperror.Unprocessable(apperror.CodeTransitionDenied, "earlier steps must be completed first")

	ErrNotAtReview        = apperror.Unprocessable(apperror.CodeTransitionDenied, "orders can only be placed from the review step")
	ErrStepsIncomplete    = apperror.Unprocessable(apperror.CodeTransitionDenied, "shipping and payment must be completed before placing an order")
	ErrCartEmpty          = apperror.Unprocessable(apperror.CodeCartEmpty, "cart is empty")
	ErrSubmissionInFlight = apperror.Conflict(apperror.CodeSubmissionLocked, "an order submission is already in progress")
	ErrAlreadySubmitted   = apperror.Conflict(apperror.CodeConflict, "this checkout has already been completed")
)

// submissionFailureMessage is the single form-level message for a failed
// submission; the underlying cause goes to the analytics side channel only.
const submissionFailureMessage = "we couldn't process your order, please try again"
