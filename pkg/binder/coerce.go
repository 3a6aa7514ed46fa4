package binder

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// coerce converts v to the Go representation of kind. Unknown kinds yield nil.
func coerce(v any, kind Kind) any {
	switch kind {
	case KindInt:
		return toInt(v)
	case KindFloat:
		return toFloat(v)
	case KindString:
		return toString(v)
	case KindBool:
		return toBool(v)
	case KindMap:
		return toMap(v)
	default:
		return nil
	}
}

func toInt(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case int8:
		return int(t)
	case int16:
		return int(t)
	case int32:
		return int(t)
	case int64:
		return int(t)
	case uint:
		return clampUint(uint64(t))
	case uint8:
		return int(t)
	case uint16:
		return int(t)
	case uint32:
		return clampUint(uint64(t))
	case uint64:
		return clampUint(t)
	case float32:
		return truncate(float64(t))
	case float64:
		return truncate(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return int(n)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return truncate(f)
		}
		return 0
	case map[string]any:
		if len(t) > 0 {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func clampUint(u uint64) int {
	if u > math.MaxInt {
		return math.MaxInt
	}
	return int(u)
}

func truncate(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case float32:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return float64(toInt(v))
	}
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "1"
		}
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(t)
	}
}

func toBool(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err == nil {
			return b
		}
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "on", "yes", "y":
			return true
		case "off", "no", "n", "":
			return false
		}
		return true
	case float64:
		return t != 0
	case float32:
		return t != 0
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return toInt(v) != 0
	}
}

func toMap(v any) map[string]any {
	switch t := v.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = val
		}
		return out
	case []any:
		out := make(map[string]any, len(t))
		for i, val := range t {
			out[strconv.Itoa(i)] = val
		}
		return out
	default:
		return map[string]any{"0": t}
	}
}
