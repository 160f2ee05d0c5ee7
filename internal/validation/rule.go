package validation

import (
	"context"
	"fmt"
	"regexp"
)

// Rule describes the checks for one named field. Zero values mean "check not
// configured". Custom and Async return "" for pass or the user-facing error
// message; errors are data here, never panics.
type Rule struct {
	Required  bool
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	// Hint is the advisory format reminder surfaced as a suggestion for
	// fields with a Pattern rule.
	Hint  string
	Email bool

	Custom func(value string) string
	Async  func(ctx context.Context, value string) (string, error)
}

func (r Rule) validate(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty field name", ErrBadRuleConfig)
	}
	if r.MinLength < 0 || r.MaxLength < 0 {
		return fmt.Errorf("%w: negative length bound for %q", ErrBadRuleConfig, name)
	}
	if r.MinLength > 0 && r.MaxLength > 0 && r.MinLength > r.MaxLength {
		return fmt.Errorf("%w: min length exceeds max length for %q", ErrBadRuleConfig, name)
	}
	return nil
}

// FieldResult classifies a single field validation. Error blocks, Warning and
// Suggestion are advisory; a Suggestion is only populated when there is no
// Error.
type FieldResult struct {
	IsValid    bool   `json:"isValid"`
	Error      string `json:"error,omitempty"`
	Warning    string `json:"warning,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// FormResult aggregates a whole-form validation pass.
type FormResult struct {
	Valid   bool              `json:"valid"`
	Errors  map[string]string `json:"errors"`
	Message string            `json:"message,omitempty"`
}
