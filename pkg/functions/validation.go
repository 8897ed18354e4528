package functions

import (
	"fmt"
	"strings"
)

// Abuse limits on caller-supplied option maps.
const (
	MaxOptionKeyLength = 100
	MaxOptionsCount    = 50
)

// reservedOptionKeys are names that collide with object-internal fields in
// other runtimes; rejected here too so option maps stay portable.
var reservedOptionKeys = map[string]bool{
	"__proto__":        true,
	"constructor":      true,
	"prototype":        true,
	"__definegetter__": true,
	"__definesetter__": true,
	"__lookupgetter__": true,
	"__lookupsetter__": true,
}

// ValidateOptionKey rejects option keys that are over-long, empty, carry
// characters outside [A-Za-z0-9_-], or use a reserved name.
func ValidateOptionKey(key string) error {
	if len(key) > MaxOptionKeyLength {
		return fmt.Errorf("option key too long: %d characters (max: %d)", len(key), MaxOptionKeyLength)
	}
	if key == "" {
		return fmt.Errorf("option key cannot be empty")
	}

	for i, ch := range key {
		if !isOptionKeyChar(ch) {
			return fmt.Errorf("invalid character %q at position %d in option key %q", ch, i, key)
		}
	}

	if reservedOptionKeys[strings.ToLower(key)] {
		return fmt.Errorf("forbidden option key: %q", key)
	}
	return nil
}

func isOptionKeyChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_' || ch == '-'
}

// ValidateOptions checks the whole map: bounded size, every key valid.
func ValidateOptions(options map[string]interface{}) error {
	if len(options) > MaxOptionsCount {
		return fmt.Errorf("too many options: %d (max: %d)", len(options), MaxOptionsCount)
	}
	for key := range options {
		if err := ValidateOptionKey(key); err != nil {
			return fmt.Errorf("invalid option: %w", err)
		}
	}
	return nil
}

// SanitizeOptions returns a copy of options with invalid keys dropped, for
// callers that prefer filtering over rejecting.
func SanitizeOptions(options map[string]interface{}) map[string]interface{} {
	if options == nil {
		return nil
	}
	out := make(map[string]interface{}, len(options))
	for key, value := range options {
		if ValidateOptionKey(key) == nil {
			out[key] = value
		}
	}
	return out
}
