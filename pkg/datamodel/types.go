// Package datamodel defines the evaluation data model for MessageFormat
// 2.0 messages — the tree the evaluator walks — together with its CST
// lowering (fromcst.go), static validation (validate.go), canonical
// stringification (stringify.go), and JSON serialization (json.go).
package datamodel

// Node is any data model node, discriminated by its Type string.
type Node interface {
	Type() string
}

// Message is the data model root: a PatternMessage or a SelectMessage.
type Message interface {
	Type() string
	Declarations() []Declaration
	Comment() string
}

// PatternMessage is a message with a single pattern and no selection.
type PatternMessage struct {
	declarations []Declaration
	pattern      Pattern
	comment      string
}

func NewPatternMessage(declarations []Declaration, pattern Pattern, comment string) *PatternMessage {
	if declarations == nil {
		declarations = []Declaration{}
	}
	return &PatternMessage{declarations: declarations, pattern: pattern, comment: comment}
}

func (pm *PatternMessage) Type() string                { return "message" }
func (pm *PatternMessage) Declarations() []Declaration { return pm.declarations }
func (pm *PatternMessage) Pattern() Pattern            { return pm.pattern }
func (pm *PatternMessage) Comment() string             { return pm.comment }

// SelectMessage holds selector variables and the variants they choose
// among. Every selector must be a declared variable; selection ranks the
// variants against the selectors' resolved values.
type SelectMessage struct {
	declarations []Declaration
	selectors    []VariableRef
	variants     []Variant
	comment      string
}

func NewSelectMessage(declarations []Declaration, selectors []VariableRef, variants []Variant, comment string) *SelectMessage {
	if declarations == nil {
		declarations = []Declaration{}
	}
	if selectors == nil {
		selectors = []VariableRef{}
	}
	if variants == nil {
		variants = []Variant{}
	}
	return &SelectMessage{
		declarations: declarations,
		selectors:    selectors,
		variants:     variants,
		comment:      comment,
	}
}

func (sm *SelectMessage) Type() string                { return "select" }
func (sm *SelectMessage) Declarations() []Declaration { return sm.declarations }
func (sm *SelectMessage) Selectors() []VariableRef    { return sm.selectors }
func (sm *SelectMessage) Variants() []Variant         { return sm.variants }
func (sm *SelectMessage) Comment() string             { return sm.comment }

// Declaration is an .input or .local binding. Names are unique within a
// message; a declaration's value may reference only earlier declarations.
type Declaration interface {
	Node
	Name() string
	Value() any // *VariableRefExpression for input, *Expression for local
}

// InputDeclaration binds a formatting argument, optionally with an
// annotation: `.input {$count :number}`. Its name is always the bound
// argument's own name.
type InputDeclaration struct {
	name  string
	value *VariableRefExpression
}

func NewInputDeclaration(name string, value *VariableRefExpression) *InputDeclaration {
	return &InputDeclaration{name: name, value: value}
}

func (d *InputDeclaration) Type() string { return "input" }
func (d *InputDeclaration) Name() string { return d.name }
func (d *InputDeclaration) Value() any   { return d.value }

// VariableRefExpression is an expression whose operand is statically known
// to be a variable reference — the only expression form an .input
// declaration admits.
type VariableRefExpression struct {
	arg         *VariableRef
	functionRef *FunctionRef
	attributes  Attributes
}

func NewVariableRefExpression(arg *VariableRef, functionRef *FunctionRef, attributes Attributes) *VariableRefExpression {
	return &VariableRefExpression{arg: arg, functionRef: functionRef, attributes: attributes}
}

func (e *VariableRefExpression) Type() string            { return "expression" }
func (e *VariableRefExpression) Arg() *VariableRef       { return e.arg }
func (e *VariableRefExpression) FunctionRef() *FunctionRef { return e.functionRef }
func (e *VariableRefExpression) Attributes() Attributes  { return e.attributes }

// LocalDeclaration binds a new local name to an expression:
// `.local $sum = {$a :number}`.
type LocalDeclaration struct {
	name  string
	value *Expression
}

func NewLocalDeclaration(name string, value *Expression) *LocalDeclaration {
	return &LocalDeclaration{name: name, value: value}
}

func (d *LocalDeclaration) Type() string { return "local" }
func (d *LocalDeclaration) Name() string { return d.name }
func (d *LocalDeclaration) Value() any   { return d.value }

// Variant pairs a key tuple with the pattern selected when it wins. The
// tuple length always equals the enclosing message's selector count.
type Variant struct {
	keys  []VariantKey
	value Pattern
}

func NewVariant(keys []VariantKey, value Pattern) *Variant {
	if keys == nil {
		keys = []VariantKey{}
	}
	return &Variant{keys: keys, value: value}
}

func (v *Variant) Keys() []VariantKey { return v.keys }
func (v *Variant) Value() Pattern     { return v.value }

// VariantKey is one position of a variant's key tuple: a Literal or the
// CatchallKey.
type VariantKey interface {
	Node
	String() string
}

// CatchallKey is the `*` key, matching any selector value with lowest
// priority. It may carry the concrete value it stood in for.
type CatchallKey struct {
	value string
}

func NewCatchallKey(value string) *CatchallKey {
	return &CatchallKey{value: value}
}

func (k *CatchallKey) Type() string  { return "*" }
func (k *CatchallKey) Value() string { return k.value }

func (k *CatchallKey) String() string {
	if k.value != "" {
		return k.value
	}
	return "*"
}

// Pattern is the ordered body of a message: text runs, expression
// placeholders, and markup elements.
type Pattern []PatternElement

func NewPattern(elements []PatternElement) Pattern {
	if elements == nil {
		elements = []PatternElement{}
	}
	return Pattern(elements)
}

func (p Pattern) Elements() []PatternElement { return []PatternElement(p) }
func (p Pattern) Len() int                   { return len(p) }

// PatternElement is a TextElement, Expression, or Markup.
type PatternElement interface {
	Node
}

// TextElement is a fixed text run, escapes already undone.
type TextElement struct {
	value string
}

func NewTextElement(value string) *TextElement {
	return &TextElement{value: value}
}

func (t *TextElement) Type() string  { return "text" }
func (t *TextElement) Value() string { return t.value }

// Expression is a placeholder: an operand (Literal or VariableRef), an
// optional function annotation, and optional attributes. At least one of
// operand and annotation is present.
type Expression struct {
	arg         any // *Literal, *VariableRef, or nil
	functionRef *FunctionRef
	attributes  Attributes
}

func NewExpression(arg any, functionRef *FunctionRef, attributes Attributes) *Expression {
	return &Expression{arg: arg, functionRef: functionRef, attributes: attributes}
}

func (e *Expression) Type() string             { return "expression" }
func (e *Expression) Arg() any                 { return e.arg }
func (e *Expression) FunctionRef() *FunctionRef { return e.functionRef }
func (e *Expression) Attributes() Attributes   { return e.attributes }

// AsVariableRefExpression narrows the expression to the input-declaration
// form; nil when the operand is not a variable reference.
func (e *Expression) AsVariableRefExpression() *VariableRefExpression {
	if e == nil {
		return nil
	}
	ref, ok := e.arg.(*VariableRef)
	if !ok {
		return nil
	}
	return NewVariableRefExpression(ref, e.functionRef, e.attributes)
}

// Literal is an immediate string value. Function handlers may parse it
// further (number options, boolean switches).
type Literal struct {
	value string
}

func NewLiteral(value string) *Literal {
	return &Literal{value: value}
}

func (l *Literal) Type() string   { return "literal" }
func (l *Literal) Value() string  { return l.value }
func (l *Literal) String() string { return l.value }

// VariableRef names a declared variable or a formatting argument.
type VariableRef struct {
	name string
}

func NewVariableRef(name string) *VariableRef {
	return &VariableRef{name: name}
}

func (v *VariableRef) Type() string   { return "variable" }
func (v *VariableRef) Name() string   { return v.name }
func (v *VariableRef) String() string { return v.name }

// FunctionRef names the function resolving an expression, with its
// options.
type FunctionRef struct {
	name    string
	options Options
}

func NewFunctionRef(name string, options Options) *FunctionRef {
	return &FunctionRef{name: name, options: options}
}

func (f *FunctionRef) Type() string     { return "function" }
func (f *FunctionRef) Name() string     { return f.name }
func (f *FunctionRef) Options() Options { return f.options }

// Options maps option names to their unresolved values: literals or
// variable references, resolved per format call.
type Options map[string]OptionValue

// OptionValue is a *Literal or *VariableRef.
type OptionValue interface {
	Node
	String() string
}

// Markup is an open, standalone, or close markup placeholder. Markup
// contributes structure to FormatToParts output but no text.
type Markup struct {
	kind       string // "open", "standalone", "close"
	name       string
	options    Options
	attributes Attributes
}

func NewMarkup(kind, name string, options Options, attributes Attributes) *Markup {
	return &Markup{kind: kind, name: name, options: options, attributes: attributes}
}

func (m *Markup) Type() string           { return "markup" }
func (m *Markup) Kind() string           { return m.kind }
func (m *Markup) Name() string           { return m.name }
func (m *Markup) Options() Options       { return m.options }
func (m *Markup) Attributes() Attributes { return m.attributes }

// Attributes maps attribute names to a *BooleanAttribute (bare @name) or
// *Literal (@name=value).
type Attributes map[string]AttributeValue

// AttributeValue is a *BooleanAttribute or *Literal.
type AttributeValue interface {
	Node
	String() string
}

// BooleanAttribute is the value of a bare @name attribute.
type BooleanAttribute struct{}

func NewBooleanAttribute() *BooleanAttribute { return &BooleanAttribute{} }

func (b *BooleanAttribute) Type() string   { return "boolean" }
func (b *BooleanAttribute) String() string { return "true" }
