package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationMs(t *testing.T) {
	tests := []struct {
		raw      string
		fallback float64
		want     float64
	}{
		{"", 400, 400},
		{"   ", 400, 400},
		{"300ms", 400, 300},
		{" 300 ms ", 400, 300},
		{"0.45s", 400, 450},
		{"2s", 0, 2000},
		{"250", 400, 250},
		{"ms", 400, 0},
		{"fast", 400, 400},
		{"1.5xs", 400, 400},
		{"NaNms", 400, 400},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseDurationMs(tt.raw, tt.fallback), 1e-9)
		})
	}
}

func TestTransitionStyleMillisFor(t *testing.T) {
	tests := []struct {
		name  string
		style TransitionStyle
		want  float64
	}{
		{
			name:  "no transition",
			style: TransitionStyle{},
			want:  0,
		},
		{
			name:  "exact property",
			style: TransitionStyle{Properties: "opacity, transform", Durations: "100ms, 0.3s", Delays: "0s, 50ms"},
			want:  350,
		},
		{
			name:  "all matches transform",
			style: TransitionStyle{Properties: "all", Durations: "0.45s", Delays: "0s"},
			want:  450,
		},
		{
			name:  "shorter duration list repeats last entry",
			style: TransitionStyle{Properties: "opacity, filter, transform", Durations: "100ms, 200ms", Delays: ""},
			want:  200,
		},
		{
			name:  "property not transitioned",
			style: TransitionStyle{Properties: "opacity", Durations: "1s"},
			want:  0,
		},
		{
			name:  "negative delay clamps to zero",
			style: TransitionStyle{Properties: "transform", Durations: "100ms", Delays: "-500ms"},
			want:  0,
		},
		{
			name:  "missing durations default to zero",
			style: TransitionStyle{Properties: "transform"},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.style.MillisFor(TransformProperty), 1e-9)
		})
	}
}
