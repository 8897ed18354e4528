package functions

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Coercion errors shared by the option readers below.
var (
	ErrNotBoolean         = errors.New("not a boolean")
	ErrNotPositiveInteger = errors.New("not a positive integer")
	ErrNotString          = errors.New("not a string")
)

// unwrapValueOf replaces a {"valueOf": x} wrapper with x. Operand objects
// from FormatToParts consumers arrive in this shape.
func unwrapValueOf(value any) any {
	if obj, ok := value.(map[string]any); ok {
		if inner, ok := obj["valueOf"]; ok {
			return inner
		}
	}
	return value
}

// asBoolean coerces an option value to a bool: a real bool, or the strings
// "true"/"false".
func asBoolean(value any) (bool, error) {
	value = unwrapValueOf(value)
	if b, ok := value.(bool); ok {
		return b, nil
	}
	switch fmt.Sprintf("%v", value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, ErrNotBoolean
}

// asPositiveInteger coerces an option value to a non-negative int: integer
// types, whole non-negative floats, or canonical decimal strings.
func asPositiveInteger(value any) (int, error) {
	value = unwrapValueOf(value)
	switch v := value.(type) {
	case int:
		if v >= 0 {
			return v, nil
		}
	case int64:
		if v >= 0 {
			return int(v), nil
		}
	case float64:
		if v >= 0 && v == float64(int(v)) {
			return int(v), nil
		}
	case string:
		if isCanonicalInteger(v) {
			if n, err := strconv.Atoi(v); err == nil {
				return n, nil
			}
		}
	}
	return 0, ErrNotPositiveInteger
}

// isCanonicalInteger reports whether s is a decimal integer with no sign,
// no leading zeros (except "0" itself), and at least one digit.
func isCanonicalInteger(s string) bool {
	if s == "" {
		return false
	}
	if s == "0" {
		return true
	}
	if s[0] < '1' || s[0] > '9' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// asString coerces an option value to a string; non-strings are an error
// rather than silently stringified.
func asString(value any) (string, error) {
	value = unwrapValueOf(value)
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", ErrNotString
}

func getStringOption(options map[string]any, name, fallback string) string {
	if s, ok := options[name].(string); ok {
		return s
	}
	return fallback
}

func getIntOption(options map[string]any, name string, fallback int) int {
	if val, ok := options[name]; ok {
		if n, err := asPositiveInteger(val); err == nil {
			return n
		}
	}
	return fallback
}

func getBoolOption(options map[string]any, name string, fallback bool) bool {
	if val, ok := options[name]; ok {
		if b, err := asBoolean(val); err == nil {
			return b
		}
	}
	return fallback
}

// GetFirstLocale returns the primary locale, defaulting to "en".
func GetFirstLocale(locales []string) string {
	if len(locales) > 0 {
		return locales[0]
	}
	return "en"
}

// normalizeLocale reduces a locale tag to its lowercase language subtag.
func normalizeLocale(locale string) string {
	lang, _, _ := strings.Cut(locale, "-")
	if lang == "" {
		return "en"
	}
	return strings.ToLower(lang)
}
