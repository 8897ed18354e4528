package datamodel

import (
	"sort"
	"strings"

	"github.com/mf2compile/messageformat/internal/cst"
)

// StringifyMessage renders a data model back to canonical MF2 source: one
// declaration per line, options and attributes in sorted name order,
// literals quoted only when their value demands it. Parsing the result
// yields an equivalent message.
func StringifyMessage(msg Message) string {
	var w sourceWriter

	for _, decl := range msg.Declarations() {
		w.declaration(decl)
	}

	switch m := msg.(type) {
	case *PatternMessage:
		w.pattern(m.Pattern(), len(msg.Declarations()) > 0)
	case *SelectMessage:
		w.WriteString(".match")
		for _, sel := range m.Selectors() {
			w.WriteString(" $" + sel.Name())
		}
		for _, variant := range m.Variants() {
			w.WriteByte('\n')
			for _, key := range variant.Keys() {
				if lit, ok := key.(*Literal); ok {
					w.literal(lit)
				} else {
					w.WriteByte('*')
				}
				w.WriteByte(' ')
			}
			w.pattern(variant.Value(), true)
		}
	}

	return w.String()
}

// sourceWriter accumulates canonical source text.
type sourceWriter struct {
	strings.Builder
}

func (w *sourceWriter) declaration(decl Declaration) {
	switch d := decl.(type) {
	case *InputDeclaration:
		w.WriteString(".input ")
		if d.value != nil {
			w.expression(NewExpression(d.value.Arg(), d.value.FunctionRef(), d.value.Attributes()))
		}
		w.WriteByte('\n')
	case *LocalDeclaration:
		w.WriteString(".local $" + d.Name() + " = ")
		if d.value != nil {
			w.expression(d.value)
		}
		w.WriteByte('\n')
	}
}

func (w *sourceWriter) pattern(pattern Pattern, quoted bool) {
	// An unquoted pattern whose text opens with a dot would re-parse as a
	// declaration keyword, so force the braces on.
	if !quoted && len(pattern.Elements()) > 0 {
		if text, ok := pattern.Elements()[0].(*TextElement); ok {
			if strings.HasPrefix(strings.TrimLeft(text.Value(), " \t\n\r"), ".") {
				quoted = true
			}
		}
	}

	if quoted {
		w.WriteString("{{")
	}
	for _, elem := range pattern.Elements() {
		switch e := elem.(type) {
		case *TextElement:
			w.WriteString(escapeText(e.Value()))
		case *Expression:
			w.expression(e)
		case *Markup:
			w.markup(e)
		}
	}
	if quoted {
		w.WriteString("}}")
	}
}

func (w *sourceWriter) expression(expr *Expression) {
	w.WriteByte('{')

	var parts []string
	switch arg := expr.Arg().(type) {
	case *Literal:
		parts = append(parts, literalSource(arg))
	case *VariableRef:
		parts = append(parts, "$"+arg.Name())
	}
	if fn := expr.FunctionRef(); fn != nil {
		parts = append(parts, functionSource(fn))
	}
	parts = append(parts, attributeSources(expr.Attributes())...)

	w.WriteString(strings.Join(parts, " "))
	w.WriteByte('}')
}

func (w *sourceWriter) markup(m *Markup) {
	if m.Kind() == "close" {
		w.WriteString("{/")
	} else {
		w.WriteString("{#")
	}
	w.WriteString(m.Name())
	for _, opt := range optionSources(m.Options()) {
		w.WriteString(" " + opt)
	}
	for _, attr := range attributeSources(m.Attributes()) {
		w.WriteString(" " + attr)
	}
	if m.Kind() == "standalone" {
		w.WriteString(" /}")
	} else {
		w.WriteByte('}')
	}
}

func (w *sourceWriter) literal(lit *Literal) {
	w.WriteString(literalSource(lit))
}

func functionSource(fn *FunctionRef) string {
	s := ":" + fn.Name()
	for _, opt := range optionSources(fn.Options()) {
		s += " " + opt
	}
	return s
}

// optionSources renders name=value pairs in sorted name order, so the
// canonical form is stable across runs.
func optionSources(options Options) []string {
	if len(options) == 0 {
		return nil
	}
	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		switch v := options[name].(type) {
		case *VariableRef:
			out = append(out, name+"=$"+v.Name())
		case *Literal:
			out = append(out, name+"="+literalSource(v))
		}
	}
	return out
}

func attributeSources(attributes Attributes) []string {
	if len(attributes) == 0 {
		return nil
	}
	names := make([]string, 0, len(attributes))
	for name := range attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		switch v := attributes[name].(type) {
		case *BooleanAttribute:
			out = append(out, "@"+name)
		case *Literal:
			out = append(out, "@"+name+"="+literalSource(v))
		}
	}
	return out
}

// literalSource renders a literal bare when every character is legal in an
// unquoted literal, |quoted| with escapes otherwise.
func literalSource(lit *Literal) string {
	v := lit.Value()
	if isBareLiteral(v) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, "|", `\|`)
	return "|" + v + "|"
}

func isBareLiteral(v string) bool {
	if v == "" || strings.HasPrefix(v, ".") {
		return false
	}
	return cst.IsValidUnquotedLiteral(v)
}

func escapeText(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, "{", `\{`)
	text = strings.ReplaceAll(text, "}", `\}`)
	return text
}
