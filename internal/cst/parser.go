package cst

import (
	"strings"

	"github.com/mf2compile/messageformat/pkg/errors"
)

// parser is the state of one parse: the source text, whether resource-mode
// escapes apply, and the syntax errors found so far. All productions hang
// off it; the position is threaded through return values, not stored.
type parser struct {
	src      string
	resource bool
	errs     []*errors.MessageSyntaxError
}

// errorAt records a syntax error of the given type spanning [start, end).
func (p *parser) errorAt(errType string, start, end int) {
	p.errs = append(p.errs, errors.NewMessageSyntaxError(canonicalType(errType), start, &end, nil))
}

// missing records a missing-syntax error naming the token expected at pos.
func (p *parser) missing(pos int, token string) {
	end := pos + len(token)
	p.errs = append(p.errs, errors.NewMessageSyntaxError(errors.ErrorTypeMissingSyntax, pos, &end, &token))
}

func canonicalType(errType string) string {
	switch errType {
	case "extra-content":
		return errors.ErrorTypeExtraContent
	case "empty-token":
		return errors.ErrorTypeEmptyToken
	case "bad-escape":
		return errors.ErrorTypeBadEscape
	case "bad-input-expression":
		return errors.ErrorTypeBadInputExpression
	case "duplicate-option-name":
		return errors.ErrorTypeDuplicateOptionName
	}
	return errors.ErrorTypeParseError
}

// Parse reads MF2 source text into a CST. Errors never abort the parse:
// the returned message carries every syntax error found, positioned by
// byte offset. Resource mode enables the extended escape set used when
// messages are embedded in resource files.
func Parse(source string, resource bool) Message {
	p := &parser{src: source, resource: resource}

	pos, _ := skipSpace(source, 0)
	if pos < len(source) && source[pos] == '.' {
		declarations, end := p.parseDeclarations(pos)
		if strings.HasPrefix(source[end:], ".match") {
			return p.parseSelectMessage(end, declarations)
		}
		return p.parsePatternMessage(end, declarations, true)
	}

	if strings.HasPrefix(source[pos:], "{{") {
		return p.parsePatternMessage(0, nil, true)
	}
	return p.parsePatternMessage(0, nil, false)
}

func (p *parser) parsePatternMessage(start int, declarations []Declaration, quoted bool) Message {
	pattern := p.parsePattern(start, quoted)

	pos, _ := skipSpace(p.src, pattern.End())
	if pos < len(p.src) {
		p.errorAt("extra-content", pos, len(p.src))
	}

	if quoted {
		if declarations == nil {
			declarations = []Declaration{}
		}
		return NewComplexMessage(declarations, *pattern, p.errs)
	}
	return NewSimpleMessage(*pattern, p.errs)
}

func (p *parser) parseSelectMessage(start int, declarations []Declaration) *SelectMessage {
	pos := start + len(".match")
	match := NewSyntax(start, pos, ".match")

	end, seen := skipSpace(p.src, pos)
	if !seen {
		p.missing(pos, " ")
	}
	pos = end

	// Selector list: bare $variables, ended by the first variant key.
	var selectors []VariableRef
selectorLoop:
	for pos < len(p.src) {
		switch p.src[pos] {
		case '$':
			sel := p.parseVariable(pos)
			selectors = append(selectors, *sel)
			pos = sel.End()
		case '{':
			// A braced selector is the old draft syntax; consume the
			// expression so parsing can continue, but flag it.
			expr := p.parseExpression(pos)
			p.errorAt("parse-error", expr.Start(), expr.End())
			pos = expr.End()
		default:
			break selectorLoop
		}

		end, seen = skipSpace(p.src, pos)
		if !seen && pos < len(p.src) {
			p.missing(pos, " ")
		}
		pos = end
	}

	if len(selectors) == 0 {
		p.errorAt("empty-token", pos, pos+1)
	}

	var variants []Variant
	for pos < len(p.src) {
		variant := p.parseVariant(pos)
		if variant.End() > pos {
			variants = append(variants, *variant)
			pos = variant.End()
		} else {
			pos++
		}
		pos, _ = skipSpace(p.src, pos)
	}

	if pos < len(p.src) {
		p.errorAt("extra-content", pos, len(p.src))
	}

	return NewSelectMessage(declarations, match, selectors, variants, p.errs)
}

// parseVariant reads one variant row: whitespace-separated keys up to the
// opening {{ of its pattern.
func (p *parser) parseVariant(start int) *Variant {
	pos := start
	var keys []Key

	for pos < len(p.src) {
		end, seen := skipSpace(p.src, pos)
		pos = end
		if pos >= len(p.src) || p.src[pos] == '{' {
			break
		}
		if pos > start && !seen {
			p.missing(pos, " ")
		}

		var key Key
		if p.src[pos] == '*' {
			key = NewCatchallKey(pos, pos+1)
			pos++
		} else {
			literal := p.parseLiteral(pos, true)
			if literal == nil {
				break
			}
			literal.value = strings.ToValidUTF8(literal.value, "")
			key = literal
			pos = literal.End()
		}

		if key.End() == key.Start() {
			break // already reported
		}
		keys = append(keys, key)
	}

	pattern := p.parsePattern(pos, true)
	return NewVariant(start, pattern.End(), keys, *pattern)
}

// parsePattern reads a pattern: quoted means it must be wrapped in {{ }}.
func (p *parser) parsePattern(start int, quoted bool) *Pattern {
	pos := start
	var braces []Syntax

	if quoted {
		pos, _ = skipSpace(p.src, pos)
		if !strings.HasPrefix(p.src[pos:], "{{") {
			p.missing(start, "{{")
			return NewPattern(start, start, []Node{}, nil)
		}
		braces = append(braces, NewSyntax(pos, pos+2, "{{"))
		pos += 2
	}

	var body []Node
bodyLoop:
	for pos < len(p.src) {
		switch p.src[pos] {
		case '{':
			expr := p.parseExpression(pos)
			body = append(body, expr)
			pos = expr.End()
		case '}':
			break bodyLoop
		default:
			var text *Text
			if quoted {
				text = p.parseText(pos)
			} else {
				text = p.parseSimpleText(pos)
			}
			body = append(body, text)
			pos = text.End()
		}
	}

	if quoted {
		pos, _ = skipSpace(p.src, pos)
		if strings.HasPrefix(p.src[pos:], "}}") {
			braces = append(braces, NewSyntax(pos, pos+2, "}}"))
			pos += 2
		} else {
			p.missing(pos, "}}")
		}
	}

	return NewPattern(start, pos, body, braces)
}

// parseDeclarations reads the leading .input/.local statements, stopping
// at .match or the pattern.
func (p *parser) parseDeclarations(start int) ([]Declaration, int) {
	declarations := make([]Declaration, 0, 4)
	pos := start

	for pos < len(p.src) && p.src[pos] == '.' {
		if strings.HasPrefix(p.src[pos:], ".match") {
			break
		}

		var decl Declaration
		switch {
		case strings.HasPrefix(p.src[pos:], ".input"):
			decl = p.parseInputDeclaration(pos)
		case strings.HasPrefix(p.src[pos:], ".local"):
			decl = p.parseLocalDeclaration(pos)
		default:
			decl = p.parseDeclarationJunk(pos)
		}

		declarations = append(declarations, decl)
		pos, _ = skipSpace(p.src, decl.End())
	}

	return declarations, pos
}

func (p *parser) parseInputDeclaration(start int) *InputDeclaration {
	pos := start + len(".input")
	keyword := NewSyntax(start, pos, ".input")
	pos, _ = skipSpace(p.src, pos)

	value := p.parseDeclarationValue(pos)
	if expr, ok := value.(*Expression); ok {
		// An input declaration's expression must be a plain or annotated
		// variable; anything else cannot name the argument being bound.
		if expr.markup != nil || (expr.arg != nil && expr.arg.Type() != "variable") {
			p.errorAt("bad-input-expression", value.Start(), value.End())
		}
	}

	return NewInputDeclaration(start, value.End(), keyword, value)
}

func (p *parser) parseLocalDeclaration(start int) *LocalDeclaration {
	pos := start + len(".local")
	keyword := NewSyntax(start, pos, ".local")

	end, seen := skipSpace(p.src, pos)
	pos = end
	if !seen {
		p.missing(pos, " ")
	}

	var target Node
	if pos < len(p.src) && p.src[pos] == '$' {
		target = p.parseVariable(pos)
		pos = target.End()
	} else {
		junkEnd := pos
		for junkEnd < len(p.src) && !strings.ContainsRune("\t\n\r ={}", rune(p.src[junkEnd])) {
			junkEnd++
		}
		target = NewJunk(pos, junkEnd, p.src[pos:junkEnd])
		p.missing(pos, "$")
		pos = junkEnd
	}

	pos, _ = skipSpace(p.src, pos)
	var equals *Syntax
	if pos < len(p.src) && p.src[pos] == '=' {
		eq := NewSyntax(pos, pos+1, "=")
		equals = &eq
		pos++
	} else {
		p.missing(pos, "=")
	}

	pos, _ = skipSpace(p.src, pos)
	value := p.parseDeclarationValue(pos)

	return NewLocalDeclaration(start, value.End(), keyword, target, equals, value)
}

func (p *parser) parseDeclarationValue(start int) Node {
	if start < len(p.src) && p.src[start] == '{' {
		return p.parseExpression(start)
	}
	return p.parseDeclarationJunk(start)
}

// parseDeclarationJunk consumes unparseable declaration content up to the
// next plausible statement or pattern start.
func (p *parser) parseDeclarationJunk(start int) *Junk {
	end := len(p.src)
	for i := start + 1; i < len(p.src)-1; i++ {
		if p.src[i] == '.' && p.src[i+1] >= 'a' && p.src[i+1] <= 'z' {
			end = i
			break
		}
		if p.src[i] == '{' && p.src[i+1] == '{' {
			end = i
			break
		}
	}
	for end > start && strings.ContainsRune(" \t\n\r", rune(p.src[end-1])) {
		end--
	}

	p.missing(start, "{")
	return NewJunk(start, end, p.src[start:end])
}
