package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGestureConfig_Detect(t *testing.T) {
	cfg := DefaultGestureConfig()

	tests := []struct {
		name  string
		input GestureInput
		want  gestureDirection
	}{
		{
			name:  "long_left_swipe_advances",
			input: GestureInput{DeltaX: -120, DurationMs: 400},
			want:  gestureForward,
		},
		{
			name:  "long_right_swipe_goes_back",
			input: GestureInput{DeltaX: 150, DurationMs: 400},
			want:  gestureBackward,
		},
		{
			name:  "distance_threshold_is_inclusive",
			input: GestureInput{DeltaX: -100, DurationMs: 1000},
			want:  gestureForward,
		},
		{
			name:  "short_slow_drag_is_ignored",
			input: GestureInput{DeltaX: -60, DurationMs: 1000},
			want:  gestureNone,
		},
		{
			name:  "short_fast_flick_triggers",
			input: GestureInput{DeltaX: -60, DurationMs: 100},
			want:  gestureForward,
		},
		{
			name:  "fast_but_tiny_flick_is_ignored",
			input: GestureInput{DeltaX: -30, DurationMs: 10},
			want:  gestureNone,
		},
		{
			name:  "zero_duration_relies_on_distance_alone",
			input: GestureInput{DeltaX: -110, DurationMs: 0},
			want:  gestureForward,
		},
		{
			name:  "no_movement",
			input: GestureInput{DeltaX: 0, DurationMs: 200},
			want:  gestureNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.detect(tt.input))
		})
	}
}
