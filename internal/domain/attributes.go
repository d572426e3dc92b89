package domain

import (
	"math"
	"strconv"
	"strings"
)

// Attribute is the name of a string-valued carousel attribute.
type Attribute string

// Attributes observed by the carousel.
const (
	AttrStartIndex      Attribute = "start-index"
	AttrIndex           Attribute = "index"
	AttrShowDots        Attribute = "show-dots"
	AttrShowArrows      Attribute = "show-arrows"
	AttrAnnounceChanges Attribute = "announce-changes"
)

// ObservedAttributes lists every attribute whose change the carousel reacts to.
var ObservedAttributes = []Attribute{
	AttrStartIndex,
	AttrIndex,
	AttrShowDots,
	AttrShowArrows,
	AttrAnnounceChanges,
}

// ReadBool interprets a boolean attribute.
// Absent yields the default, an empty value means true, anything but "false" is true.
func ReadBool(raw string, present bool, defaultValue bool) bool {
	if !present {
		return defaultValue
	}
	if raw == "" {
		return true
	}
	return raw != "false"
}

// ReadInt interprets an integer attribute, truncating fractional values toward zero.
// Absent, unparsable or non-finite values yield the fallback.
func ReadInt(raw string, present bool, fallback int) int {
	if !present {
		return fallback
	}
	n, ok := ParseNumber(raw)
	if !ok {
		return fallback
	}
	switch {
	case n >= math.MaxInt:
		return math.MaxInt
	case n <= math.MinInt:
		return math.MinInt
	}
	return int(math.Trunc(n))
}

// ReadString trims the value and reports it as absent when empty.
func ReadString(raw string, present bool) (string, bool) {
	if !present {
		return "", false
	}
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", false
	}
	return v, true
}

// ParseNumber parses a trimmed decimal number and rejects NaN and infinities.
// An empty string parses as 0.
func ParseNumber(raw string) (float64, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, true
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
