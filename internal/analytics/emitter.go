package analytics

import "context"

// Emitter is the fire-and-forget analytics boundary. Implementations must
// never fail the caller: a lost event is acceptable, a blocked checkout is
// not.
type Emitter interface {
	Track(ctx context.Context, category, action string, props any, value int64)
}

// Nop discards every event. Used in tests and when no broker is configured.
type Nop struct{}

func (Nop) Track(ctx context.Context, category, action string, props any, value int64) {}
