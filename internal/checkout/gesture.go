package checkout

import "math"

// GestureConfig holds the swipe-navigation thresholds. These are tuning
// values (px and px/ms), configurable rather than hard-coded.
type GestureConfig struct {
	// Distance alone triggers a transition.
	Distance float64
	// MinDistance triggers only when combined with Velocity.
	MinDistance float64
	Velocity    float64
}

func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		Distance:    100,
		MinDistance: 50,
		Velocity:    0.5,
	}
}

// GestureInput is one completed horizontal drag as reported by the client.
type GestureInput struct {
	// DeltaX is the horizontal travel in px; negative is a leftward swipe.
	DeltaX float64
	// DurationMs is the elapsed drag time.
	DurationMs float64
	// ReducedMotion mirrors the user's reduced-motion preference; it
	// suppresses the haptic pulse, never the navigation itself.
	ReducedMotion bool
}

type gestureDirection int

const (
	gestureNone gestureDirection = iota
	gestureForward
	gestureBackward
)

// detect classifies a drag. A swipe fires on raw distance alone, or on a
// shorter but fast flick (distance over the lower bound and velocity over
// the velocity threshold). Swiping left advances, swiping right goes back.
func (g GestureConfig) detect(input GestureInput) gestureDirection {
	distance := math.Abs(input.DeltaX)

	velocity := 0.0
	if input.DurationMs > 0 {
		velocity = distance / input.DurationMs
	}

	triggered := distance >= g.Distance ||
		(distance >= g.MinDistance && velocity >= g.Velocity)
	if !triggered {
		return gestureNone
	}

	if input.DeltaX < 0 {
		return gestureForward
	}
	return gestureBackward
}
