package validation_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-butterflies-checkout/internal/validation"
)

func newTestEngine(t *testing.T, rules map[string]validation.Rule) *validation.Engine {
	t.Helper()
	engine, err := validation.NewEngine(rules,
		validation.WithSettleDelay(0),
		validation.WithDebounceDelay(0),
	)
	if err != nil {
		t.Fatalf("engine setup: %v", err)
	}
	return engine
}

func TestNewEngine(t *testing.T) {
	t.Run("rejects_empty_rule_set", func(t *testing.T) {
		_, err := validation.NewEngine(nil)
		assert.ErrorIs(t, err, validation.ErrBadRuleConfig)
	})

	t.Run("rejects_negative_min_length", func(t *testing.T) {
		_, err := validation.NewEngine(map[string]validation.Rule{
			"name": {MinLength: -1},
		})
		assert.ErrorIs(t, err, validation.ErrBadRuleConfig)
	})

	t.Run("rejects_min_above_max", func(t *testing.T) {
		_, err := validation.NewEngine(map[string]validation.Rule{
			"name": {MinLength: 10, MaxLength: 5},
		})
		assert.ErrorIs(t, err, validation.ErrBadRuleConfig)
	})
}

func TestEngine_ValidateField(t *testing.T) {
	engine := newTestEngine(t, map[string]validation.Rule{
		"fullName": {Required: true, MinLength: 2, MaxLength: 10},
		"email":    {Required: true, Email: true},
		"nickname": {MinLength: 3},
		"zip": {
			Required: true,
			Pattern:  regexp.MustCompile(`^[0-9]{5}$`),
			Hint:     "five digits",
		},
		"code": {
			Required: true,
			Custom: func(v string) string {
				if v == "bad" {
					return "that code is not allowed"
				}
				return ""
			},
		},
	})
	ctx := context.Background()

	t.Run("required_empty_fails_immediately", func(t *testing.T) {
		msg, err := engine.ValidateField(ctx, "fullName", "")
		assert.NoError(t, err)
		assert.Equal(t, "this field is required", msg)
	})

	t.Run("optional_empty_passes_without_format_checks", func(t *testing.T) {
		msg, err := engine.ValidateField(ctx, "nickname", "")
		assert.NoError(t, err)
		assert.Empty(t, msg)
	})

	t.Run("min_length_enforced", func(t *testing.T) {
		msg, err := engine.ValidateField(ctx, "fullName", "a")
		assert.NoError(t, err)
		assert.Equal(t, "must be at least 2 characters", msg)
	})

	t.Run("max_length_enforced", func(t *testing.T) {
		msg, err := engine.ValidateField(ctx, "fullName", "waaaaaaaaay too long")
		assert.NoError(t, err)
		assert.Equal(t, "must be at most 10 characters", msg)
	})

	t.Run("email_format_enforced", func(t *testing.T) {
		msg, err := engine.ValidateField(ctx, "email", "not-an-email")
		assert.NoError(t, err)
		assert.Equal(t, "enter a valid email address", msg)

		msg, err = engine.ValidateField(ctx, "email", "noura@example.com")
		assert.NoError(t, err)
		assert.Empty(t, msg)
	})

	t.Run("pattern_enforced", func(t *testing.T) {
		msg, err := engine.ValidateField(ctx, "zip", "12ab5")
		assert.NoError(t, err)
		assert.Equal(t, "invalid format", msg)
	})

	t.Run("custom_rule_runs_after_format", func(t *testing.T) {
		msg, err := engine.ValidateField(ctx, "code", "bad")
		assert.NoError(t, err)
		assert.Equal(t, "that code is not allowed", msg)
	})

	t.Run("unknown_field_is_an_error", func(t *testing.T) {
		_, err := engine.ValidateField(ctx, "nope", "x")
		assert.ErrorIs(t, err, validation.ErrUnknownField)
	})
}

func TestEngine_ValidateFieldWithFeedback(t *testing.T) {
	engine := newTestEngine(t, map[string]validation.Rule{
		"city": {Required: true, MinLength: 5},
		"zip": {
			Required: true,
			Pattern:  regexp.MustCompile(`^[0-9]{5}$`),
			Hint:     "five digits",
		},
	})
	ctx := context.Background()

	t.Run("warning_when_close_to_min_length", func(t *testing.T) {
		res, err := engine.ValidateFieldWithFeedback(ctx, "city", "Amst", validation.ModeImmediate)
		assert.NoError(t, err)
		assert.False(t, res.IsValid)
		assert.NotEmpty(t, res.Warning)
	})

	t.Run("suggestion_from_hint_when_valid", func(t *testing.T) {
		res, err := engine.ValidateFieldWithFeedback(ctx, "zip", "12345", validation.ModeImmediate)
		assert.NoError(t, err)
		assert.True(t, res.IsValid)
		assert.Equal(t, "five digits", res.Suggestion)
	})

	t.Run("no_warning_for_empty_value", func(t *testing.T) {
		res, err := engine.ValidateFieldWithFeedback(ctx, "city", "", validation.ModeImmediate)
		assert.NoError(t, err)
		assert.Empty(t, res.Warning)
	})
}

func TestEngine_ValidateForm(t *testing.T) {
	engine := newTestEngine(t, map[string]validation.Rule{
		"fullName": {Required: true},
		"email":    {Required: true, Email: true},
		"phone":    {MinLength: 7},
	})
	ctx := context.Background()

	t.Run("valid_form", func(t *testing.T) {
		res, err := engine.ValidateForm(ctx, map[string]string{
			"fullName": "Noura",
			"email":    "noura@example.com",
		})
		assert.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
		assert.Empty(t, res.Message)
	})

	t.Run("aggregates_every_failing_field", func(t *testing.T) {
		res, err := engine.ValidateForm(ctx, map[string]string{
			"phone": "123",
		})
		assert.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Len(t, res.Errors, 3)
		assert.Equal(t, "3 errors found", res.Message)
	})

	t.Run("singular_message_for_one_error", func(t *testing.T) {
		res, err := engine.ValidateForm(ctx, map[string]string{
			"fullName": "Noura",
			"email":    "noura@example.com",
			"phone":    "123",
		})
		assert.NoError(t, err)
		assert.Equal(t, "1 error found", res.Message)
	})

	t.Run("missing_values_validate_as_empty", func(t *testing.T) {
		res, err := engine.ValidateForm(ctx, nil)
		assert.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, "fullName")
		assert.Contains(t, res.Errors, "email")
		assert.NotContains(t, res.Errors, "phone", "optional empty field passes")
	})
}

func TestTracker(t *testing.T) {
	tr := validation.NewTracker()

	t.Run("untouched_fields_hide_errors", func(t *testing.T) {
		assert.False(t, tr.ShouldShow("email", true))
	})

	t.Run("touched_fields_show_errors", func(t *testing.T) {
		tr.Touch("email")
		assert.True(t, tr.ShouldShow("email", true))
		assert.False(t, tr.ShouldShow("email", false), "nothing to show without an error")
	})

	t.Run("touch_all_covers_untouched_fields", func(t *testing.T) {
		tr.TouchAll()
		assert.True(t, tr.ShouldShow("never-touched", true))
	})

	t.Run("reset_clears_everything", func(t *testing.T) {
		tr.Reset()
		assert.False(t, tr.ShouldShow("email", true))
		assert.False(t, tr.IsTouched("email"))
	})
}
