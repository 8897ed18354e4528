package cst

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Bidi control characters are transparent to the grammar: they may appear
// around names and whitespace runs without affecting what is parsed.
// ALM, LRM, RLM, LRI, RLI, FSI, PDI.
const bidiControls = "\u061C\u200E\u200F\u2066\u2067\u2068\u2069"

// Grammar whitespace: ASCII space, tab, CR, LF, plus ideographic space.
const spaceChars = "\t\n\r \u3000"

// skipSpace scans past any run of whitespace and bidi control characters
// at start, returning the position after the run and whether it contained
// at least one actual whitespace character (bidi controls alone do not
// satisfy a required-whitespace position).
func skipSpace(src string, start int) (end int, seen bool) {
	pos := start
	for pos < len(src) {
		r, size := utf8.DecodeRuneInString(src[pos:])
		if r == utf8.RuneError {
			break
		}
		switch {
		case strings.ContainsRune(bidiControls, r):
		case strings.ContainsRune(spaceChars, r):
			seen = true
		default:
			return pos, seen
		}
		pos += size
	}
	return pos, seen
}

// IsBidiChar reports whether r is one of the bidi control characters the
// grammar treats as transparent.
func IsBidiChar(r rune) bool {
	return strings.ContainsRune(bidiControls, r)
}

// IsWhitespaceChar reports whether r is grammar whitespace or any other
// rune unicode.IsSpace accepts.
func IsWhitespaceChar(r rune) bool {
	return strings.ContainsRune(spaceChars, r) || unicode.IsSpace(r)
}
