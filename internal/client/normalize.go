package client

import (
	"math"
	"strconv"
	"strings"
)

// The backend's JSON contracts are not enforced on its side: every field may
// be absent, null, or carry the wrong type. These helpers coerce decoded
// payload values into the strict shapes the models package promises.

// asObject returns the payload as a map, or nil when it is anything else.
func asObject(v any) map[string]any {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return obj
}

// asSlice returns the payload as a slice, or nil when it is anything else.
func asSlice(v any) []any {
	s, ok := v.([]any)
	if !ok {
		return nil
	}
	return s
}

// toString renders scalar values as strings; non-scalars become "".
func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// toStringSlice keeps only string elements, trimmed, with empties dropped.
// Absent or malformed input yields an empty (non-nil) slice.
func toStringSlice(v any) []string {
	out := []string{}
	for _, item := range asSlice(v) {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// toLooseStringSlice renders every scalar element as a string, skipping
// nulls and nested structures. Used for ticket id lists the backend stores
// as mixed ints and strings.
func toLooseStringSlice(v any) []string {
	out := []string{}
	for _, item := range asSlice(v) {
		s := toString(item)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// toFloat coerces numbers and numeric strings to a finite float64,
// defaulting to 0 on anything else.
func toFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0
		}
		return val
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0
		}
		return parsed
	case bool:
		if val {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// toInt truncates toFloat's result.
func toInt(v any) int {
	return int(toFloat(v))
}

// toInt64 truncates toFloat's result to 64 bits.
func toInt64(v any) int64 {
	return int64(toFloat(v))
}

// toBool accepts real booleans plus the usual string and numeric spellings.
func toBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "1", "yes":
			return true
		}
		return false
	case float64:
		return val != 0
	default:
		return false
	}
}
