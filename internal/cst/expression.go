package cst

import (
	"github.com/mf2compile/messageformat/pkg/errors"
)

// parseExpression reads one braced placeholder: an optional operand, an
// optional :function or markup annotation, and trailing @attributes. The
// content between unbalanced braces is swept into Junk so the caller can
// keep parsing after the closing brace.
func (p *parser) parseExpression(start int) *Expression {
	pos := start + 1 // consume '{'
	pos, _ = skipSpace(p.src, pos)

	arg := p.parseOperand(pos)
	if arg != nil {
		pos = arg.End()
		end, seen := skipSpace(p.src, pos)
		if !seen && pos < len(p.src) && p.src[pos] != '}' {
			p.missing(pos, " ")
		}
		pos = end
	}

	var functionRef Node
	var markup *Markup
	var junkErr *errors.MessageSyntaxError

	if pos < len(p.src) {
		switch p.src[pos] {
		case ':':
			functionRef = p.parseAnnotation(pos, false)
			pos = functionRef.End()
		case '#', '/':
			if arg != nil {
				p.errorAt("extra-content", arg.Start(), arg.End())
			}
			node := p.parseAnnotation(pos, true)
			markup, _ = node.(*Markup)
			pos = node.End()
		case '@', '}':
			if arg == nil {
				p.errorAt("empty-token", start, pos)
			}
		default:
			if arg == nil {
				end := pos + 1
				functionRef = NewJunk(pos, end, string(p.src[pos]))
				junkErr = errors.NewMessageSyntaxError(errors.ErrorTypeParseError, start, &end, nil)
				p.errs = append(p.errs, junkErr)
			}
		}
	}

	// Attributes: each @name[=literal], whitespace-separated.
	var attributes []Attribute
	needWS := functionRef != nil || markup != nil
	wsEnd, wsSeen := skipSpace(p.src, pos)

	for pos < len(p.src) && wsEnd < len(p.src) && p.src[wsEnd] == '@' {
		if needWS && !wsSeen {
			p.missing(pos, " ")
		}
		pos = wsEnd
		attr := p.parseAttribute(pos)
		attributes = append(attributes, *attr)
		pos = attr.End()
		needWS = true
		wsEnd, wsSeen = skipSpace(p.src, pos)
	}
	pos = wsEnd

	open := NewSyntax(start, start+1, "{")
	var close *Syntax

	if pos >= len(p.src) {
		p.missing(pos, "}")
	} else {
		if p.src[pos] != '}' {
			// Sweep to the closing brace; grow existing Junk over the
			// swept span, otherwise it is plain extra content.
			sweepStart := pos
			for pos < len(p.src) && p.src[pos] != '}' {
				pos++
			}
			if junk, ok := functionRef.(*Junk); ok {
				junk.span.end = pos
				junk.source = p.src[junk.Start():pos]
				if junkErr != nil {
					junkErr.End = pos
				}
			} else {
				p.errorAt("extra-content", sweepStart, pos)
			}
		}
		if pos < len(p.src) && p.src[pos] == '}' {
			c := NewSyntax(pos, pos+1, "}")
			close = &c
			pos++
		}
	}

	braces := []Syntax{open}
	if close != nil {
		braces = append(braces, *close)
	}

	if markup != nil {
		return NewExpression(start, pos, braces, nil, nil, markup, attributes)
	}
	return NewExpression(start, pos, braces, arg, functionRef, nil, attributes)
}

// parseOperand reads the expression operand at pos: a $variable or a
// literal (quoted, numeric, or unquoted name). Returns nil when the
// position holds an annotation or closing brace instead.
func (p *parser) parseOperand(pos int) Node {
	if pos >= len(p.src) {
		return nil
	}
	if p.src[pos] == '$' {
		if v := p.parseVariable(pos); v != nil {
			return v
		}
		return nil
	}
	if lit := p.parseLiteral(pos, false); lit != nil {
		return lit
	}
	return nil
}

// parseAnnotation reads a :function or #markup/{/markup} annotation,
// including its option list and — for markup — the self-closing slash.
func (p *parser) parseAnnotation(start int, isMarkup bool) Node {
	id := p.parseIdentifier(start + 1)
	pos := id.end
	var options []Option
	var close *Syntax

	seenNames := make(map[string]bool)

	for pos < len(p.src) {
		wsEnd, wsSeen := skipSpace(p.src, pos)
		var next byte
		if wsEnd < len(p.src) {
			next = p.src[wsEnd]
		}

		if next == '@' || next == '}' {
			break
		}

		if next == '/' && p.src[start] == '#' {
			pos = wsEnd + 1
			c := NewSyntax(pos-1, pos, "/")
			close = &c
			if end, seen := skipSpace(p.src, pos); seen {
				p.errorAt("extra-content", pos, end)
			}
			break
		}

		if !wsSeen {
			p.missing(pos, " ")
		}
		pos = wsEnd

		opt := p.parseOption(pos)
		if opt.End() == pos {
			break // no progress; the error is already recorded
		}

		name := opt.Name().String()
		if seenNames[name] {
			p.errorAt("duplicate-option-name", opt.Start(), opt.End())
		} else {
			seenNames[name] = true
		}

		options = append(options, *opt)
		pos = opt.End()
	}

	if isMarkup {
		open := NewSyntax(start, start+1, string(p.src[start]))
		return NewMarkup(start, pos, open, id.parts, options, close)
	}
	open := NewSyntax(start, start+1, ":")
	return NewFunctionRef(start, pos, open, id.parts, options)
}

// identifier is a parsed (possibly namespaced) identifier plus its end.
type identifier struct {
	parts Identifier
	end   int
}

// parseIdentifier reads `name` or `namespace:name`.
func (p *parser) parseIdentifier(start int) identifier {
	name0 := parseName(p.src, start)
	if name0 == nil {
		p.errorAt("empty-token", start, start+1)
		return identifier{parts: Identifier{NewSyntax(start, start, "")}, end: start}
	}

	pos := name0.end
	head := NewSyntax(start, pos, name0.value)
	if pos >= len(p.src) || p.src[pos] != ':' {
		return identifier{parts: Identifier{head}, end: pos}
	}

	sep := NewSyntax(pos, pos+1, ":")
	pos++

	name1 := parseName(p.src, pos)
	if name1 == nil {
		p.errorAt("empty-token", pos, pos+1)
		return identifier{parts: Identifier{head, sep}, end: pos}
	}
	return identifier{
		parts: Identifier{head, sep, NewSyntax(pos, name1.end, name1.value)},
		end:   name1.end,
	}
}

// parseOption reads one `name = value` option; the value is a $variable or
// a literal.
func (p *parser) parseOption(start int) *Option {
	id := p.parseIdentifier(start)
	pos, _ := skipSpace(p.src, id.end)

	var equals *Syntax
	if pos < len(p.src) && p.src[pos] == '=' {
		eq := NewSyntax(pos, pos+1, "=")
		equals = &eq
		pos++
	} else {
		p.missing(pos, "=")
	}

	pos, _ = skipSpace(p.src, pos)

	var value Node
	if pos < len(p.src) && p.src[pos] == '$' {
		value = p.parseVariable(pos)
	} else if pos < len(p.src) {
		value = p.parseLiteral(pos, true)
	}
	if value == nil {
		value = NewLiteral(pos, pos, false, nil, "", nil)
	}

	return NewOption(start, value.End(), id.parts, equals, value)
}

// parseAttribute reads `@name` or `@name = literal`.
func (p *parser) parseAttribute(start int) *Attribute {
	id := p.parseIdentifier(start + 1)
	pos := id.end
	wsEnd, _ := skipSpace(p.src, pos)

	var equals *Syntax
	var value *Literal

	if wsEnd < len(p.src) && p.src[wsEnd] == '=' {
		pos = wsEnd + 1
		eq := NewSyntax(pos-1, pos, "=")
		equals = &eq
		pos, _ = skipSpace(p.src, pos)
		value = p.parseLiteral(pos, true)
		if value != nil {
			pos = value.End()
		}
	}
	// A bare @name ends at the name; trailing whitespace stays outside.

	at := NewSyntax(start, start+1, "@")
	return NewAttribute(start, pos, at, id.parts, equals, value)
}
