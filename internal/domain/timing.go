package domain

import (
	"math"
	"strings"
)

// TransitionStyle is the transition configuration of a card, as comma separated
// lists the way a style sheet declares them.
type TransitionStyle struct {
	// Properties lists the transitioned properties, e.g. "transform, opacity"
	Properties string

	// Durations lists the durations, e.g. "0.45s, 200ms"
	Durations string

	// Delays lists the delays, e.g. "0s"
	Delays string

	// FallbackDuration is the configured fallback, e.g. "400ms" (--cfc-transition-ms)
	FallbackDuration string
}

// MillisFor returns duration plus delay, in milliseconds, of the transition
// that applies to prop. "all" matches any property. No match yields 0.
func (s TransitionStyle) MillisFor(prop string) float64 {
	props := splitList(s.Properties)
	if len(props) == 0 {
		return 0
	}

	idx := indexOf(props, prop)
	if idx < 0 {
		idx = indexOf(props, "all")
	}
	if idx < 0 {
		return 0
	}

	dur := ParseDurationMs(pick(splitList(s.Durations), idx), 0)
	del := ParseDurationMs(pick(splitList(s.Delays), idx), 0)

	return math.Max(0, dur+del)
}

// ParseDurationMs parses "<n>ms", "<n>s" or a bare number of milliseconds.
// Empty or unparsable input yields fallbackMs.
func ParseDurationMs(raw string, fallbackMs float64) float64 {
	v := strings.TrimSpace(raw)
	if v == "" {
		return fallbackMs
	}

	scale := 1.0
	switch {
	case strings.HasSuffix(v, "ms"):
		v = strings.TrimSuffix(v, "ms")
	case strings.HasSuffix(v, "s"):
		v = strings.TrimSuffix(v, "s")
		scale = 1000
	}

	// A bare unit ("ms", "s") parses as zero.
	n, ok := ParseNumber(v)
	if !ok {
		return fallbackMs
	}
	return n * scale
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}

// pick returns list[min(idx, len-1)], or "0s" for an empty list.
func pick(list []string, idx int) string {
	if len(list) == 0 {
		return "0s"
	}
	if idx > len(list)-1 {
		idx = len(list) - 1
	}
	return list[idx]
}
