package validation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ValidateFieldProgressive is the debounced mode. Required handling is
// immediate, then the call settles before running format checks, and an async
// rule waits out a full debounce window. Each call bumps a per-field
// generation counter; a call that is no longer the newest for its field
// returns ErrSuperseded at the next checkpoint instead of a result, so a slow
// response to an old keystroke can never overwrite a newer one.
func (e *Engine) ValidateFieldProgressive(ctx context.Context, name, value string) (string, error) {
	rule, ok := e.rules[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	gen := e.nextGeneration(name)

	if msg, done := checkRequired(rule, value); done {
		return msg, nil
	}

	// Settle: let the user finish typing before judging the format.
	if err := e.sleep(ctx, e.settleDelay); err != nil {
		return "", err
	}
	if e.superseded(name, gen) {
		e.logger.Debug("progressive validation superseded during settle",
			zap.String("field", name))
		return "", ErrSuperseded
	}

	if msg := checkFormat(rule, value); msg != "" {
		return msg, nil
	}

	if rule.Async == nil {
		return "", nil
	}

	// Debounce the async rule: only the newest call for this field may run
	// it, and only the newest call may honor its result.
	if err := e.sleep(ctx, e.debounceDelay); err != nil {
		return "", err
	}
	if e.superseded(name, gen) {
		e.logger.Debug("progressive validation superseded during debounce",
			zap.String("field", name))
		return "", ErrSuperseded
	}

	msg, err := rule.Async(ctx, value)
	if err != nil {
		return "", err
	}
	if e.superseded(name, gen) {
		// The async check raced a newer edit; its verdict is stale.
		return "", ErrSuperseded
	}
	return msg, nil
}

func (e *Engine) nextGeneration(name string) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gens[name]++
	return e.gens[name]
}

func (e *Engine) superseded(name string, gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gens[name] != gen
}

func (e *Engine) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
