package validation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// structValidate backs the email check; format knowledge stays in the
// validator library rather than a hand-rolled regexp.
var structValidate = validator.New()

type Mode int

const (
	// ModeImmediate runs every check right away.
	ModeImmediate Mode = iota
	// ModeProgressive settles before format checks and debounces async
	// rules so feedback does not flicker while the user is typing.
	ModeProgressive
)

// Engine validates named fields against their configured rules.
type Engine struct {
	rules map[string]Rule

	settleDelay   time.Duration
	debounceDelay time.Duration

	mu   sync.Mutex
	gens map[string]uint64

	logger *zap.Logger
}

type Option func(*Engine)

func WithSettleDelay(d time.Duration) Option {
	return func(e *Engine) { e.settleDelay = d }
}

func WithDebounceDelay(d time.Duration) Option {
	return func(e *Engine) { e.debounceDelay = d }
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine builds an engine. Malformed rules fail here, at initialization;
// validation calls never raise for configuration reasons.
func NewEngine(rules map[string]Rule, opts ...Option) (*Engine, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: no rules", ErrBadRuleConfig)
	}
	for name, rule := range rules {
		if err := rule.validate(name); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		rules:         rules,
		settleDelay:   300 * time.Millisecond,
		debounceDelay: 500 * time.Millisecond,
		gens:          make(map[string]uint64),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Rules exposes the configured rule set (read-only by convention).
func (e *Engine) Rules() map[string]Rule {
	return e.rules
}

// ValidateField runs the immediate mode: required first (short-circuit),
// empty optional fields pass, then format checks in fixed order with first
// failure winning, then the async rule if configured.
func (e *Engine) ValidateField(ctx context.Context, name, value string) (string, error) {
	rule, ok := e.rules[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	if msg, done := checkRequired(rule, value); done {
		return msg, nil
	}

	if msg := checkFormat(rule, value); msg != "" {
		return msg, nil
	}

	if rule.Async != nil {
		return rule.Async(ctx, value)
	}
	return "", nil
}

// ValidateFieldWithFeedback validates in the given mode and classifies the
// outcome into error, warning and suggestion. Exactly one result is returned;
// the suggestion is suppressed whenever an error is present.
func (e *Engine) ValidateFieldWithFeedback(ctx context.Context, name, value string, mode Mode) (FieldResult, error) {
	var errMsg string
	var err error
	switch mode {
	case ModeProgressive:
		errMsg, err = e.ValidateFieldProgressive(ctx, name, value)
	default:
		errMsg, err = e.ValidateField(ctx, name, value)
	}
	if err != nil {
		return FieldResult{}, err
	}

	rule := e.rules[name]
	result := FieldResult{
		IsValid: errMsg == "",
		Error:   errMsg,
	}

	// Non-blocking nudge when the value is close to but under the minimum.
	if value != "" && rule.MinLength > 0 && len(value) < rule.MinLength+2 {
		result.Warning = fmt.Sprintf("almost there, %s needs at least %d characters", name, rule.MinLength)
	}

	if errMsg == "" && rule.Pattern != nil {
		if rule.Hint != "" {
			result.Suggestion = rule.Hint
		} else {
			result.Suggestion = fmt.Sprintf("check the expected format for %s", name)
		}
	}

	return result, nil
}

// ValidateForm validates every configured field concurrently, waits for all
// of them, and aggregates per-field errors. Missing entries in values are
// validated as empty strings. The form is valid iff no field errored.
func (e *Engine) ValidateForm(ctx context.Context, values map[string]string) (FormResult, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fieldErrors := make(map[string]string)

	for name := range e.rules {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			msg, err := e.ValidateField(ctx, name, values[name])
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			if msg != "" {
				fieldErrors[name] = msg
			}
		}(name)
	}
	wg.Wait()

	if firstErr != nil {
		return FormResult{}, firstErr
	}

	result := FormResult{
		Valid:  len(fieldErrors) == 0,
		Errors: fieldErrors,
	}
	if !result.Valid {
		noun := "errors"
		if len(fieldErrors) == 1 {
			noun = "error"
		}
		result.Message = fmt.Sprintf("%d %s found", len(fieldErrors), noun)
	}
	return result, nil
}

// checkRequired handles the required/empty short-circuits. done=true means
// the verdict is final and format checks must be skipped.
func checkRequired(rule Rule, value string) (msg string, done bool) {
	if value == "" {
		if rule.Required {
			return "this field is required", true
		}
		return "", true
	}
	return "", false
}

// checkFormat runs the synchronous format checks in fixed order:
// email, minLength, maxLength, pattern, custom. First failure wins.
func checkFormat(rule Rule, value string) string {
	if rule.Email {
		if err := structValidate.Var(value, "email"); err != nil {
			return "enter a valid email address"
		}
	}
	if rule.MinLength > 0 && len(value) < rule.MinLength {
		return fmt.Sprintf("must be at least %d characters", rule.MinLength)
	}
	if rule.MaxLength > 0 && len(value) > rule.MaxLength {
		return fmt.Sprintf("must be at most %d characters", rule.MaxLength)
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
		return "invalid format"
	}
	if rule.Custom != nil {
		if msg := rule.Custom(value); msg != "" {
			return msg
		}
	}
	return ""
}
