package validation_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-butterflies-checkout/internal/validation"
)

func TestEngine_ValidateFieldProgressive(t *testing.T) {
	t.Run("required_verdict_skips_the_settle_delay", func(t *testing.T) {
		engine, err := validation.NewEngine(map[string]validation.Rule{
			"name": {Required: true},
		}, validation.WithSettleDelay(10*time.Second))
		assert.NoError(t, err)

		// Would block for ten seconds if the settle ran before the
		// required check.
		msg, err := engine.ValidateFieldProgressive(context.Background(), "name", "")
		assert.NoError(t, err)
		assert.Equal(t, "this field is required", msg)
	})

	t.Run("rapid_edits_supersede_older_calls", func(t *testing.T) {
		var asyncCalls atomic.Int32
		engine, err := validation.NewEngine(map[string]validation.Rule{
			"postal": {
				Required: true,
				Async: func(ctx context.Context, value string) (string, error) {
					asyncCalls.Add(1)
					return "", nil
				},
			},
		},
			validation.WithSettleDelay(50*time.Millisecond),
			validation.WithDebounceDelay(50*time.Millisecond),
		)
		assert.NoError(t, err)

		ctx := context.Background()
		var wg sync.WaitGroup
		results := make([]error, 2)

		// Two rapid keystrokes, each issued while the previous call is
		// still settling.
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int, value string) {
				defer wg.Done()
				_, err := engine.ValidateFieldProgressive(ctx, "postal", value)
				results[i] = err
			}(i, "123")
			time.Sleep(5 * time.Millisecond)
		}

		// The final keystroke is the only one whose verdict counts.
		msg, err := engine.ValidateFieldProgressive(ctx, "postal", "12345")
		wg.Wait()

		assert.NoError(t, err)
		assert.Empty(t, msg)
		for i, res := range results {
			assert.ErrorIs(t, res, validation.ErrSuperseded, "call %d should be superseded", i)
		}
		assert.Equal(t, int32(1), asyncCalls.Load(), "only the newest call runs the async rule")
	})

	t.Run("format_errors_surface_after_settle", func(t *testing.T) {
		engine, err := validation.NewEngine(map[string]validation.Rule{
			"city": {Required: true, MinLength: 2},
		},
			validation.WithSettleDelay(time.Millisecond),
			validation.WithDebounceDelay(time.Millisecond),
		)
		assert.NoError(t, err)

		msg, err := engine.ValidateFieldProgressive(context.Background(), "city", "a")
		assert.NoError(t, err)
		assert.Equal(t, "must be at least 2 characters", msg)
	})

	t.Run("cancelled_context_aborts_the_wait", func(t *testing.T) {
		engine, err := validation.NewEngine(map[string]validation.Rule{
			"city": {Required: true},
		}, validation.WithSettleDelay(10*time.Second))
		assert.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err = engine.ValidateFieldProgressive(ctx, "city", "Utrecht")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("async_rule_errors_propagate", func(t *testing.T) {
		boom := errors.New("lookup backend down")
		engine, err := validation.NewEngine(map[string]validation.Rule{
			"postal": {
				Required: true,
				Async: func(ctx context.Context, value string) (string, error) {
					return "", boom
				},
			},
		},
			validation.WithSettleDelay(0),
			validation.WithDebounceDelay(0),
		)
		assert.NoError(t, err)

		_, err = engine.ValidateFieldProgressive(context.Background(), "postal", "12345")
		assert.ErrorIs(t, err, boom)
	})
}
