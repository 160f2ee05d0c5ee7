package validation

import "errors"

var (
	// ErrBadRuleConfig is returned at engine construction for malformed
	// rules. Validation itself never raises it.
	ErrBadRuleConfig = errors.New("invalid validation rule configuration")

	// ErrUnknownField is returned when a field name has no configured rule.
	ErrUnknownField = errors.New("no validation rule for field")

	// ErrSuperseded tells a progressive caller that a newer validation for
	// the same field replaced this one. Its result must be discarded.
	ErrSuperseded = errors.New("validation superseded by a newer request")
)
