// Package cst parses MessageFormat 2.0 source text into a concrete syntax
// tree. The CST keeps every token's source span and the surrounding
// syntax marks, so error positions stay exact and the original text can be
// reconstructed; pkg/datamodel lowers it into the evaluation AST.
package cst

import (
	"github.com/mf2compile/messageformat/pkg/errors"
)

// span carries a node's byte offsets into the source text. Every CST node
// embeds one.
type span struct {
	start, end int
}

func (s span) Start() int { return s.start }
func (s span) End() int   { return s.end }

// Node is any positioned CST node.
type Node interface {
	Type() string
	Start() int
	End() int
}

// Message is the CST root: a simple message (bare pattern), a complex
// message (declarations plus quoted pattern), or a select message.
type Message interface {
	Type() string
	Errors() []*errors.MessageSyntaxError
}

// SimpleMessage is a message that is just a pattern, no declarations.
type SimpleMessage struct {
	pattern Pattern
	errors  []*errors.MessageSyntaxError
}

func NewSimpleMessage(pattern Pattern, errs []*errors.MessageSyntaxError) *SimpleMessage {
	return &SimpleMessage{pattern: pattern, errors: errs}
}

func (m *SimpleMessage) Type() string                          { return "simple" }
func (m *SimpleMessage) Errors() []*errors.MessageSyntaxError  { return m.errors }
func (m *SimpleMessage) Pattern() Pattern                      { return m.pattern }
func (m *SimpleMessage) Declarations() []Declaration           { return nil }

// ComplexMessage is a declaration list followed by one quoted pattern.
type ComplexMessage struct {
	declarations []Declaration
	pattern      Pattern
	errors       []*errors.MessageSyntaxError
}

func NewComplexMessage(declarations []Declaration, pattern Pattern, errs []*errors.MessageSyntaxError) *ComplexMessage {
	return &ComplexMessage{declarations: declarations, pattern: pattern, errors: errs}
}

func (m *ComplexMessage) Type() string                         { return "complex" }
func (m *ComplexMessage) Errors() []*errors.MessageSyntaxError { return m.errors }
func (m *ComplexMessage) Pattern() Pattern                     { return m.pattern }
func (m *ComplexMessage) Declarations() []Declaration          { return m.declarations }

// SelectMessage is a declaration list, a .match with selector variables,
// and the variant rows.
type SelectMessage struct {
	declarations []Declaration
	match        Syntax
	selectors    []VariableRef
	variants     []Variant
	errors       []*errors.MessageSyntaxError
}

func NewSelectMessage(declarations []Declaration, match Syntax, selectors []VariableRef, variants []Variant, errs []*errors.MessageSyntaxError) *SelectMessage {
	return &SelectMessage{
		declarations: declarations,
		match:        match,
		selectors:    selectors,
		variants:     variants,
		errors:       errs,
	}
}

func (m *SelectMessage) Type() string                         { return "select" }
func (m *SelectMessage) Errors() []*errors.MessageSyntaxError { return m.errors }
func (m *SelectMessage) Declarations() []Declaration          { return m.declarations }
func (m *SelectMessage) Match() Syntax                        { return m.match }
func (m *SelectMessage) Selectors() []VariableRef             { return m.selectors }
func (m *SelectMessage) Variants() []Variant                  { return m.variants }

// Declaration is an .input or .local statement, or Junk where one failed
// to parse.
type Declaration interface {
	Type() string
	Start() int
	End() int
}

// InputDeclaration binds a caller argument: `.input {$x :number}`.
type InputDeclaration struct {
	span
	keyword Syntax
	value   Node // *Expression or *Junk
}

func NewInputDeclaration(start, end int, keyword Syntax, value Node) *InputDeclaration {
	return &InputDeclaration{span: span{start, end}, keyword: keyword, value: value}
}

func (d *InputDeclaration) Type() string    { return "input" }
func (d *InputDeclaration) Keyword() Syntax { return d.keyword }
func (d *InputDeclaration) Value() Node     { return d.value }

// LocalDeclaration binds a new local name: `.local $y = {...}`.
type LocalDeclaration struct {
	span
	keyword Syntax
	target  Node // *VariableRef or *Junk
	equals  *Syntax
	value   Node // *Expression or *Junk
}

func NewLocalDeclaration(start, end int, keyword Syntax, target Node, equals *Syntax, value Node) *LocalDeclaration {
	return &LocalDeclaration{
		span:    span{start, end},
		keyword: keyword,
		target:  target,
		equals:  equals,
		value:   value,
	}
}

func (d *LocalDeclaration) Type() string    { return "local" }
func (d *LocalDeclaration) Keyword() Syntax { return d.keyword }
func (d *LocalDeclaration) Target() Node    { return d.target }
func (d *LocalDeclaration) Equals() *Syntax { return d.equals }
func (d *LocalDeclaration) Value() Node     { return d.value }

// Variant is one row of a select message: key list plus quoted pattern.
type Variant struct {
	span
	keys  []Key
	value Pattern
}

func NewVariant(start, end int, keys []Key, value Pattern) *Variant {
	return &Variant{span: span{start, end}, keys: keys, value: value}
}

func (v *Variant) Keys() []Key   { return v.keys }
func (v *Variant) Value() Pattern { return v.value }

// Key is a variant key: a Literal or the catch-all `*`.
type Key interface {
	Type() string
	Start() int
	End() int
}

// CatchallKey is the `*` key.
type CatchallKey struct {
	span
}

func NewCatchallKey(start, end int) *CatchallKey {
	return &CatchallKey{span: span{start, end}}
}

func (k *CatchallKey) Type() string { return "*" }

// Pattern is a run of text and expressions. Quoted patterns record their
// {{ }} marks in braces; a simple message's pattern has none.
type Pattern struct {
	span
	body   []Node // *Text and *Expression
	braces []Syntax
}

func NewPattern(start, end int, body []Node, braces []Syntax) *Pattern {
	return &Pattern{span: span{start, end}, body: body, braces: braces}
}

func (p Pattern) Body() []Node     { return p.body }
func (p Pattern) Braces() []Syntax { return p.braces }

// Text is a literal text run inside a pattern, escapes already undone.
type Text struct {
	span
	value string
}

func NewText(start, end int, value string) *Text {
	return &Text{span: span{start, end}, value: value}
}

func (t *Text) Type() string  { return "text" }
func (t *Text) Value() string { return t.value }

// Expression is one placeholder: `{ operand? annotation? attribute* }`,
// or a markup element in the same braces.
type Expression struct {
	span
	braces      []Syntax
	arg         Node // *Literal, *VariableRef, or nil
	functionRef Node // *FunctionRef, *Junk, or nil
	markup      *Markup
	attributes  []Attribute
}

func NewExpression(start, end int, braces []Syntax, arg Node, functionRef Node, markup *Markup, attributes []Attribute) *Expression {
	return &Expression{
		span:        span{start, end},
		braces:      braces,
		arg:         arg,
		functionRef: functionRef,
		markup:      markup,
		attributes:  attributes,
	}
}

func (e *Expression) Type() string            { return "expression" }
func (e *Expression) Braces() []Syntax        { return e.braces }
func (e *Expression) Arg() Node               { return e.arg }
func (e *Expression) FunctionRef() Node       { return e.functionRef }
func (e *Expression) Markup() *Markup         { return e.markup }
func (e *Expression) Attributes() []Attribute { return e.attributes }

// Junk is source text that failed to parse; the span and raw source are
// kept so errors can point at it.
type Junk struct {
	span
	source string
}

func NewJunk(start, end int, source string) *Junk {
	return &Junk{span: span{start, end}, source: source}
}

func (j *Junk) Type() string   { return "junk" }
func (j *Junk) Source() string { return j.source }

// Literal is a quoted |...| or unquoted literal. Quoted literals record
// their pipe marks.
type Literal struct {
	span
	quoted bool
	open   *Syntax
	value  string
	close  *Syntax
}

func NewLiteral(start, end int, quoted bool, open *Syntax, value string, close *Syntax) *Literal {
	return &Literal{
		span:   span{start, end},
		quoted: quoted,
		open:   open,
		value:  value,
		close:  close,
	}
}

func (l *Literal) Type() string   { return "literal" }
func (l *Literal) Quoted() bool   { return l.quoted }
func (l *Literal) Open() *Syntax  { return l.open }
func (l *Literal) Value() string  { return l.value }
func (l *Literal) Close() *Syntax { return l.close }

// VariableRef is `$name`.
type VariableRef struct {
	span
	open Syntax
	name string
}

func NewVariableRef(start, end int, open Syntax, name string) *VariableRef {
	return &VariableRef{span: span{start, end}, open: open, name: name}
}

func (v *VariableRef) Type() string { return "variable" }
func (v *VariableRef) Open() Syntax { return v.open }
func (v *VariableRef) Name() string { return v.name }

// FunctionRef is `:name option*`.
type FunctionRef struct {
	span
	open    Syntax
	name    Identifier
	options []Option
}

func NewFunctionRef(start, end int, open Syntax, name Identifier, options []Option) *FunctionRef {
	return &FunctionRef{span: span{start, end}, open: open, name: name, options: options}
}

func (f *FunctionRef) Type() string      { return "function" }
func (f *FunctionRef) Open() Syntax      { return f.open }
func (f *FunctionRef) Name() Identifier  { return f.name }
func (f *FunctionRef) Options() []Option { return f.options }

// Markup is `{#name}`, `{/name}`, or standalone `{#name/}`.
type Markup struct {
	span
	open    Syntax
	name    Identifier
	options []Option
	close   *Syntax
}

func NewMarkup(start, end int, open Syntax, name Identifier, options []Option, close *Syntax) *Markup {
	return &Markup{span: span{start, end}, open: open, name: name, options: options, close: close}
}

func (m *Markup) Type() string      { return "markup" }
func (m *Markup) Open() Syntax      { return m.open }
func (m *Markup) Name() Identifier  { return m.name }
func (m *Markup) Options() []Option { return m.options }
func (m *Markup) Close() *Syntax    { return m.close }

// Option is one `name=value` pair on a function or markup.
type Option struct {
	span
	name   Identifier
	equals *Syntax
	value  Node // *Literal or *VariableRef
}

func NewOption(start, end int, name Identifier, equals *Syntax, value Node) *Option {
	return &Option{span: span{start, end}, name: name, equals: equals, value: value}
}

func (o *Option) Name() Identifier { return o.name }
func (o *Option) Equals() *Syntax  { return o.equals }
func (o *Option) Value() Node      { return o.value }

// Attribute is one `@name` or `@name=literal` on an expression.
type Attribute struct {
	span
	open   Syntax
	name   Identifier
	equals *Syntax
	value  *Literal
}

func NewAttribute(start, end int, open Syntax, name Identifier, equals *Syntax, value *Literal) *Attribute {
	return &Attribute{span: span{start, end}, open: open, name: name, equals: equals, value: value}
}

func (a *Attribute) Open() Syntax     { return a.open }
func (a *Attribute) Name() Identifier { return a.name }
func (a *Attribute) Equals() *Syntax  { return a.equals }
func (a *Attribute) Value() *Literal  { return a.value }

// Identifier is one to three Syntax tokens: name, or namespace ":" [name].
type Identifier []Syntax

func (i Identifier) String() string {
	var s string
	for _, part := range i {
		s += part.Value()
	}
	return s
}

// Namespace returns the namespace token of a namespaced identifier.
func (i Identifier) Namespace() *Syntax {
	if len(i) >= 2 && i[1].Value() == ":" {
		return &i[0]
	}
	return nil
}

// Name returns the name token: the sole token of a plain identifier, or
// the third of a fully namespaced one.
func (i Identifier) Name() *Syntax {
	switch len(i) {
	case 1:
		return &i[0]
	case 3:
		return &i[2]
	}
	return nil
}

// Separator returns the ":" token of a namespaced identifier.
func (i Identifier) Separator() *Syntax {
	if len(i) >= 2 && i[1].Value() == ":" {
		return &i[1]
	}
	return nil
}

// Syntax is one source token: a keyword, sigil, or name, with its span.
type Syntax struct {
	start int
	end   int
	value string
}

func NewSyntax(start, end int, value string) Syntax {
	return Syntax{start: start, end: end, value: value}
}

func (s *Syntax) Start() int    { return s.start }
func (s *Syntax) End() int      { return s.end }
func (s *Syntax) Value() string { return s.value }
