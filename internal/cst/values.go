package cst

import (
	"strconv"
	"strings"
)

// parseText reads a text run inside a quoted pattern, stopping at any
// brace. Escapes are undone; in resource mode, newline-led indentation is
// folded away.
func (p *parser) parseText(start int) *Text {
	var out strings.Builder
	lit := start // start of the pending un-copied span
	i := start

scan:
	for i < len(p.src) {
		switch p.src[i] {
		case '\\':
			if val, size, ok := p.parseEscape(i); ok {
				out.WriteString(p.src[lit:i])
				out.WriteString(val)
				i += size
				lit = i + 1
			}
		case '{', '}':
			break scan
		case '\n':
			i = p.foldIndent(&out, &lit, i)
		}
		i++
	}

	out.WriteString(p.src[lit:i])
	return NewText(start, i, out.String())
}

// parseSimpleText reads a text run in a simple (unquoted) message, where
// doubled braces denote literal brace characters.
func (p *parser) parseSimpleText(start int) *Text {
	var out strings.Builder
	lit := start
	i := start

scan:
	for i < len(p.src) {
		switch p.src[i] {
		case '\\':
			if val, size, ok := p.parseEscape(i); ok {
				out.WriteString(p.src[lit:i])
				out.WriteString(val)
				i += size
				lit = i + 1
			}
		case '{', '}':
			if i+1 < len(p.src) && p.src[i+1] == p.src[i] {
				out.WriteString(p.src[lit:i])
				out.WriteByte(p.src[i])
				i += 2
				lit = i
				continue
			}
			break scan
		case '\n':
			i = p.foldIndent(&out, &lit, i)
		}
		i++
	}

	out.WriteString(p.src[lit:i])
	return NewText(start, i, out.String())
}

// foldIndent implements resource-mode newline handling: the spaces and
// tabs following a newline are dropped from the text value. Returns the
// updated scan position (still pointing at the last folded byte).
func (p *parser) foldIndent(out *strings.Builder, lit *int, i int) int {
	if !p.resource {
		return i
	}
	nl := i
	for i+1 < len(p.src) && (p.src[i+1] == ' ' || p.src[i+1] == '\t') {
		i++
	}
	if i > nl {
		out.WriteString(p.src[*lit : nl+1])
		*lit = i + 1
	}
	return i
}

// parseLiteral reads a |quoted| or unquoted literal at start. When no
// literal is present: with required set an empty-token error is recorded
// and a zero-width literal returned, otherwise nil.
func (p *parser) parseLiteral(start int, required bool) *Literal {
	if start < len(p.src) && p.src[start] == '|' {
		return p.parseQuotedLiteral(start)
	}

	value := matchUnquoted(p.src, start)
	if value == "" {
		if !required {
			return nil
		}
		p.errorAt("empty-token", start, start)
		return NewLiteral(start, start, false, nil, "", nil)
	}
	return NewLiteral(start, start+len(value), false, nil, value, nil)
}

func (p *parser) parseQuotedLiteral(start int) *Literal {
	var out strings.Builder
	open := NewSyntax(start, start+1, "|")
	lit := start + 1

	for i := start + 1; i < len(p.src); i++ {
		switch p.src[i] {
		case '\\':
			if val, size, ok := p.parseEscape(i); ok {
				out.WriteString(p.src[lit:i])
				out.WriteString(val)
				i += size
				lit = i + 1
			}
		case '|':
			out.WriteString(p.src[lit:i])
			close := NewSyntax(i, i+1, "|")
			return NewLiteral(start, i+1, true, &open, out.String(), &close)
		case '\n':
			i = p.foldIndent(&out, &lit, i)
		}
	}

	// Unterminated literal: keep what we saw, report the missing pipe.
	out.WriteString(p.src[lit:])
	p.missing(len(p.src), "|")
	return NewLiteral(start, len(p.src), true, &open, out.String(), nil)
}

// parseVariable reads `$name` at start.
func (p *parser) parseVariable(start int) *VariableRef {
	pos := start + 1
	dollar := NewSyntax(start, pos, "$")

	name := parseName(p.src, pos)
	if name == nil {
		p.errorAt("empty-token", pos, pos+1)
		return NewVariableRef(start, pos, dollar, "")
	}
	return NewVariableRef(start, name.end, dollar, name.value)
}

// parseEscape decodes the escape at a backslash. Returns the replacement
// text and how many bytes beyond the backslash were consumed. `\\`, `\{`,
// `\|`, `\}` are always valid; resource mode adds \n \r \t, escaped blank,
// and \xHH / \uHHHH / \UHHHHHH.
func (p *parser) parseEscape(start int) (value string, size int, ok bool) {
	if start+1 >= len(p.src) {
		p.errorAt("bad-escape", start, start+2)
		return "", 0, false
	}

	c := p.src[start+1]
	switch c {
	case '\\', '{', '|', '}':
		return string(c), 1, true
	}

	if p.resource {
		switch c {
		case '\t', ' ':
			return string(c), 1, true
		case 'n':
			return "\n", 1, true
		case 'r':
			return "\r", 1, true
		case 't':
			return "\t", 1, true
		case 'x':
			return p.parseHexEscape(start, 2)
		case 'u':
			return p.parseHexEscape(start, 4)
		case 'U':
			return p.parseHexEscape(start, 6)
		}
	}

	p.errorAt("bad-escape", start, start+2)
	return "", 0, false
}

func (p *parser) parseHexEscape(start, digits int) (string, int, bool) {
	h0 := start + 2
	if h0+digits > len(p.src) {
		p.errorAt("bad-escape", start, start+2)
		return "", 0, false
	}

	code, err := strconv.ParseUint(p.src[h0:h0+digits], 16, 32)
	if err != nil {
		p.errorAt("bad-escape", start, start+2)
		return "", 0, false
	}
	return string(rune(code)), 1 + digits, true
}
