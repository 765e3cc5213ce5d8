package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToInt converts various types to int using explicit type switching.
// Strings are trimmed; values that do not parse yield 0.
func ToInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case uint:
		return int(v)
	case uint64:
		return int(v)
	case uint32:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case string:
		return parseInt(v)
	case []byte:
		return parseInt(string(v))
	default:
		return parseInt(fmt.Sprintf("%v", v))
	}
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// ToIntDefault is ToInt with a fallback for zero or negative results.
func ToIntDefault(val any, def int) int {
	if i := ToInt(val); i > 0 {
		return i
	}
	return def
}

// ToBool converts various types to bool.
// Numbers are true when equal to 1; strings accept "1", "1.0", "true", "x" and "ja".
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, uint, uint64, uint32:
		return ToInt(v) == 1
	case float64:
		return v == 1
	case float32:
		return v == 1
	case string:
		return parseBool(v)
	case []byte:
		return parseBool(string(v))
	default:
		return false
	}
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "true", "x", "ja":
		return true
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f == 1
}
