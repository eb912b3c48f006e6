package normalize

import (
	"math"
	"strconv"
	"strings"
)

// Primitive coercers. None of these fail: whatever shape the raw value has,
// they produce a usable scalar or the declared fallback.

// trimmedString returns the trimmed value for string input, "" for anything else.
func trimmedString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

type intOpts struct {
	Min      int
	Fallback int
}

// boundedInt parses v as an integer (accepts int, int64, float64 and numeric
// strings), falls back when unparseable and clamps to Min when below it.
func boundedInt(v any, o intOpts) int {
	n, ok := asInt(v)
	if !ok {
		n = o.Fallback
	}
	if n < o.Min {
		n = o.Min
	}
	return n
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		// tolerate "2.0" style input
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

type floatOpts struct {
	Min      float64
	Fallback *float64
}

// boundedFloat parses v as a float (accepts float64, int and strings with
// either "." or "," decimals), falls back for empty or unparseable input and
// clamps to Min when below it.
func boundedFloat(v any, o floatOpts) *float64 {
	f, ok := asFloat(v)
	if !ok {
		return o.Fallback
	}
	if f < o.Min {
		f = o.Min
	}
	return &f
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", "."))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// asBool coerces checkbox-ish input: real booleans, 0/1 numbers and the usual
// string spellings.
func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "on", "yes":
			return true
		}
	}
	return false
}

// orderOr returns the submitted sort order when it is a finite number,
// otherwise the positional fallback. Unlike boundedInt it applies no lower
// bound: explicit negative orders are kept.
func orderOr(v any, fallback int) int {
	if n, ok := asInt(v); ok {
		return n
	}
	return fallback
}
