// Package bidi resolves text direction and supplies the Unicode isolation
// characters a renderer needs when LTR and RTL content interleave in one
// formatted string.
package bidi

import (
	"strings"

	xbidi "golang.org/x/text/unicode/bidi"
)

// Direction is a resolved or requested text direction.
type Direction string

const (
	DirLTR  Direction = "ltr"
	DirRTL  Direction = "rtl"
	DirAuto Direction = "auto"
)

// Unicode bidi isolation controls.
const (
	LRI = '\u2066' // Left-to-Right Isolate
	RLI = '\u2067' // Right-to-Left Isolate
	FSI = '\u2068' // First Strong Isolate
	PDI = '\u2069' // Pop Directional Isolate
)

// ParseDirection reads a direction string; anything unrecognized is auto.
func ParseDirection(s string) Direction {
	switch s {
	case "ltr":
		return DirLTR
	case "rtl":
		return DirRTL
	}
	return DirAuto
}

// GetDirection scans text for its first strongly-directional rune and
// returns the direction it implies, the way the Unicode bidi algorithm's
// paragraph-level auto-detection does. Runes with no strong direction
// (digits, punctuation, most combining marks) are skipped; text with no
// strong rune at all stays auto.
func GetDirection(text string) Direction {
	for _, r := range text {
		props, _ := xbidi.LookupRune(r)
		switch props.Class() {
		case xbidi.R, xbidi.AL:
			return DirRTL
		case xbidi.L:
			return DirLTR
		}
	}
	return DirAuto
}

// rtlLanguages are the language subtags written right-to-left that this
// engine's locale fallback recognizes.
var rtlLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian
	"ur": true, // Urdu
	"yi": true, // Yiddish
}

// GetLocaleDirection maps a locale tag to its script direction by its
// language subtag.
func GetLocaleDirection(locale string) Direction {
	lang, _, _ := strings.Cut(locale, "-")
	if rtlLanguages[strings.ToLower(lang)] {
		return DirRTL
	}
	return DirLTR
}

// WrapWithIsolation brackets text in the isolate pair for dir; an unknown
// direction passes text through untouched.
func WrapWithIsolation(text string, dir Direction) string {
	switch dir {
	case DirLTR:
		return string(LRI) + text + string(PDI)
	case DirRTL:
		return string(RLI) + text + string(PDI)
	case DirAuto:
		return string(FSI) + text + string(PDI)
	}
	return text
}

// IsIsolationChar reports whether r is one of the isolate controls.
func IsIsolationChar(r rune) bool {
	return r == LRI || r == RLI || r == FSI || r == PDI
}
