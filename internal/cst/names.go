package cst

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// nameRanges lists the rune ranges of the MF2 `name-char` class beyond the
// ASCII letters, digits, and [-.+_] handled inline. The gaps are the bidi
// controls and whitespace the grammar treats specially.
var nameRanges = [][2]rune{
	{0x00A1, 0x061B}, {0x061D, 0x167F}, {0x1681, 0x1FFF},
	{0x200B, 0x200D}, {0x2010, 0x2027}, {0x2030, 0x205E},
	{0x2060, 0x2065}, {0x206A, 0x2FFF}, {0x3001, 0xD7FF},
	{0xE000, 0xFDCF}, {0xFDF0, 0xFFFD},
	{0x10000, 0x1FFFD}, {0x20000, 0x2FFFD}, {0x30000, 0x3FFFD},
	{0x40000, 0x4FFFD}, {0x50000, 0x5FFFD}, {0x60000, 0x6FFFD},
	{0x70000, 0x7FFFD}, {0x80000, 0x8FFFD}, {0x90000, 0x9FFFD},
	{0xA0000, 0xAFFFD}, {0xB0000, 0xBFFFD}, {0xC0000, 0xCFFFD},
	{0xD0000, 0xDFFFD}, {0xE0000, 0xEFFFD}, {0xF0000, 0xFFFFD},
	{0x100000, 0x10FFFD},
}

func isNameChar(r rune) bool {
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
		return true
	}
	if r == '-' || r == '.' || r == '+' || r == '_' {
		return true
	}
	for _, rng := range nameRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// IsNameStartChar reports whether r may begin a name: any name character
// except '-', '.', and digits.
func IsNameStartChar(r rune) bool {
	if r == '-' || r == '.' || (r >= '0' && r <= '9') {
		return false
	}
	return isNameChar(r)
}

// nameToken is a parsed name with its end offset; the value is
// NFC-normalized and stripped of surrounding bidi controls.
type nameToken struct {
	value string
	end   int
}

// parseName reads a name at start, tolerating bidi controls on either
// side. Returns nil when no valid name begins there (including a run that
// starts with a character valid only in name-char position).
func parseName(source string, start int) *nameToken {
	pos := start
	pos += leadingBidi(source[pos:])

	runStart := pos
	for pos < len(source) {
		r, size := utf8.DecodeRuneInString(source[pos:])
		if !isNameChar(r) {
			break
		}
		pos += size
	}
	if pos == runStart {
		return nil
	}
	name := source[runStart:pos]

	first, _ := utf8.DecodeRuneInString(name)
	if !IsNameStartChar(first) {
		return nil
	}

	pos += leadingBidi(source[pos:])

	return &nameToken{value: norm.NFC.String(name), end: pos}
}

func leadingBidi(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !strings.ContainsRune(bidiControls, r) {
			break
		}
		n += size
	}
	return n
}

// matchUnquoted returns the longest run of name characters at start — the
// surface form of an unquoted literal — or "".
func matchUnquoted(source string, start int) string {
	pos := start
	for pos < len(source) {
		r, size := utf8.DecodeRuneInString(source[pos:])
		if !isNameChar(r) {
			break
		}
		pos += size
	}
	return source[start:pos]
}

// IsValidUnquotedLiteral reports whether str can appear as a literal
// without |quotes|.
func IsValidUnquotedLiteral(str string) bool {
	if str == "" {
		return false
	}
	for _, r := range str {
		if !isNameChar(r) {
			return false
		}
	}
	return true
}
