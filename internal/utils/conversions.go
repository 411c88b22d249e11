package utils

import "strconv"

func ToStringSlice(slice []any) []string {
	stringSlice := make([]string, 0)
	for _, v := range slice {
		if s, ok := v.(string); ok {
			stringSlice = append(stringSlice, s)
		}
	}
	return stringSlice
}

// ScalarString renders JSON scalars the way they would print in a template:
// strings as-is, numbers without exponent or trailing zeros. Anything else,
// including empty strings, reports false.
func ScalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// FirstText returns the first field of m, in order, holding a non-empty
// string. Numbers and booleans are skipped.
func FirstText(m map[string]any, fields ...string) (string, bool) {
	for _, f := range fields {
		if s, ok := m[f].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// FirstString returns the first field of m, in order, holding a non-empty
// scalar value.
func FirstString(m map[string]any, fields ...string) (string, bool) {
	for _, f := range fields {
		if s, ok := ScalarString(m[f]); ok {
			return s, true
		}
	}
	return "", false
}
