// Package datamodel provides JSON (de)serialization of the data model for
// MessageFormat 2.0, mirroring the JSON shape ICU4C's builder
// (messageformat2_builder.cpp) accepts when constructing a message from a
// data model instead of source text, and the shape the JS reference
// implementation's Message/Pattern/Expression types already serialize to
// naturally (every node already carries a "type" discriminator field).
package datamodel

import (
	"fmt"

	"github.com/go-json-experiment/json"

	"github.com/mf2compile/messageformat/pkg/errors"
)

// MarshalMessage serializes a compiled message's data model to JSON, so a
// caller can cache a parsed AST across process boundaries instead of
// re-parsing source text on every process start.
func MarshalMessage(msg Message) ([]byte, error) {
	node, err := messageToJSON(msg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

// UnmarshalMessage reconstructs a Message from JSON produced by
// MarshalMessage. The result has no CST (source-text) backing: operations
// that only need the AST, such as Format, work unchanged; anything that
// requires the original source span (e.g. re-stringifying with original
// whitespace) falls back to the canonical form via StringifyMessage.
func UnmarshalMessage(data []byte) (Message, error) {
	var raw jsonMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		expected := "valid message JSON: " + err.Error()
		return nil, errors.NewMessageSyntaxError("parse-error", -1, nil, &expected)
	}
	return raw.toMessage()
}

// --- wire types -------------------------------------------------------

type jsonMessage struct {
	Type         string              `json:"type"`
	Declarations []jsonDeclaration   `json:"declarations"`
	Pattern      jsonPattern         `json:"pattern,omitempty"`
	Selectors    []jsonVariableRef   `json:"selectors,omitempty"`
	Variants     []jsonVariant       `json:"variants,omitempty"`
	Comment      string              `json:"comment,omitempty"`
}

type jsonDeclaration struct {
	Type  string          `json:"type"`
	Name  string          `json:"name"`
	Value jsonExpression  `json:"value"`
}

type jsonVariableRef struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type jsonLiteral struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// jsonOptionValue is a Literal or a VariableRef; decoded by sniffing "type".
type jsonOptionValue struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
	Name  string `json:"name,omitempty"`
}

func (v jsonOptionValue) toOptionValue() (OptionValue, error) {
	switch v.Type {
	case "literal":
		return NewLiteral(v.Value), nil
	case "variable":
		return NewVariableRef(v.Name), nil
	default:
		return nil, fmt.Errorf("unsupported option value type %q", v.Type)
	}
}

// jsonAttributeValue is `true` or a Literal.
type jsonAttributeValue struct {
	Bool    *bool
	Literal *jsonLiteral
}

func (v jsonAttributeValue) toAttributeValue() (AttributeValue, error) {
	if v.Bool != nil && *v.Bool {
		return NewBooleanAttribute(), nil
	}
	if v.Literal != nil {
		return NewLiteral(v.Literal.Value), nil
	}
	return nil, fmt.Errorf("unsupported attribute value")
}

func (v *jsonAttributeValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		v.Bool = &b
		return nil
	}
	var lit jsonLiteral
	if err := json.Unmarshal(data, &lit); err != nil {
		return err
	}
	v.Literal = &lit
	return nil
}

func (v jsonAttributeValue) MarshalJSON() ([]byte, error) {
	if v.Bool != nil {
		return json.Marshal(*v.Bool)
	}
	if v.Literal != nil {
		return json.Marshal(*v.Literal)
	}
	return json.Marshal(true)
}

type jsonFunctionRef struct {
	Type    string                     `json:"type"`
	Name    string                     `json:"name"`
	Options map[string]jsonOptionValue `json:"options,omitempty"`
}

func (fr *jsonFunctionRef) toFunctionRef() (*FunctionRef, error) {
	if fr == nil {
		return nil, nil
	}
	opts := make(Options, len(fr.Options))
	for name, v := range fr.Options {
		ov, err := v.toOptionValue()
		if err != nil {
			return nil, err
		}
		opts[name] = ov
	}
	return NewFunctionRef(fr.Name, opts), nil
}

type jsonExpression struct {
	Type        string                        `json:"type"`
	Arg         *jsonOptionValue              `json:"arg,omitempty"`
	FunctionRef *jsonFunctionRef              `json:"functionRef,omitempty"`
	Attributes  map[string]jsonAttributeValue `json:"attributes,omitempty"`
}

func (je jsonExpression) toExpression() (*Expression, error) {
	var arg any
	if je.Arg != nil {
		ov, err := je.Arg.toOptionValue()
		if err != nil {
			return nil, err
		}
		arg = ov
	}
	fref, err := je.FunctionRef.toFunctionRef()
	if err != nil {
		return nil, err
	}
	attrs, err := toAttributes(je.Attributes)
	if err != nil {
		return nil, err
	}
	return NewExpression(arg, fref, attrs), nil
}

func toAttributes(in map[string]jsonAttributeValue) (Attributes, error) {
	if len(in) == 0 {
		return nil, nil
	}
	attrs := make(Attributes, len(in))
	for name, v := range in {
		av, err := v.toAttributeValue()
		if err != nil {
			return nil, err
		}
		attrs[name] = av
	}
	return attrs, nil
}

type jsonMarkup struct {
	Type       string                        `json:"type"`
	Kind       string                        `json:"kind"`
	Name       string                        `json:"name"`
	Options    map[string]jsonOptionValue    `json:"options,omitempty"`
	Attributes map[string]jsonAttributeValue `json:"attributes,omitempty"`
}

// jsonPatternElement is a text run (plain JSON string) or an expression/
// markup object, mirroring Pattern = Array<string | Expression | Markup>.
type jsonPatternElement struct {
	Text       *string
	Expression *jsonExpression
	Markup     *jsonMarkup
}

func (e *jsonPatternElement) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Text = &s
		return nil
	}
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch probe.Type {
	case "markup":
		var m jsonMarkup
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		e.Markup = &m
	default:
		var ex jsonExpression
		if err := json.Unmarshal(data, &ex); err != nil {
			return err
		}
		e.Expression = &ex
	}
	return nil
}

func (e jsonPatternElement) MarshalJSON() ([]byte, error) {
	switch {
	case e.Text != nil:
		return json.Marshal(*e.Text)
	case e.Markup != nil:
		return json.Marshal(*e.Markup)
	case e.Expression != nil:
		return json.Marshal(*e.Expression)
	default:
		return json.Marshal("")
	}
}

func (e jsonPatternElement) toPatternElement() (PatternElement, error) {
	switch {
	case e.Text != nil:
		return NewTextElement(*e.Text), nil
	case e.Markup != nil:
		opts := make(Options, len(e.Markup.Options))
		for name, v := range e.Markup.Options {
			ov, err := v.toOptionValue()
			if err != nil {
				return nil, err
			}
			opts[name] = ov
		}
		attrs, err := toAttributes(e.Markup.Attributes)
		if err != nil {
			return nil, err
		}
		return NewMarkup(e.Markup.Kind, e.Markup.Name, opts, attrs), nil
	case e.Expression != nil:
		return e.Expression.toExpression()
	default:
		return nil, fmt.Errorf("empty pattern element")
	}
}

type jsonPattern []jsonPatternElement

func (p jsonPattern) toPattern() (Pattern, error) {
	elements := make([]PatternElement, 0, len(p))
	for _, el := range p {
		pe, err := el.toPatternElement()
		if err != nil {
			return nil, err
		}
		elements = append(elements, pe)
	}
	return NewPattern(elements), nil
}

func patternToJSON(p Pattern) jsonPattern {
	out := make(jsonPattern, 0, p.Len())
	for _, elem := range p.Elements() {
		out = append(out, patternElementToJSON(elem))
	}
	return out
}

func patternElementToJSON(elem PatternElement) jsonPatternElement {
	switch e := elem.(type) {
	case *TextElement:
		v := e.Value()
		return jsonPatternElement{Text: &v}
	case *Markup:
		m := jsonMarkup{Type: "markup", Kind: e.Kind(), Name: e.Name()}
		m.Options = optionsToJSON(e.Options())
		m.Attributes = attributesToJSON(e.Attributes())
		return jsonPatternElement{Markup: &m}
	case *Expression:
		ex := expressionToJSON(e)
		return jsonPatternElement{Expression: &ex}
	default:
		empty := ""
		return jsonPatternElement{Text: &empty}
	}
}

func optionsToJSON(opts Options) map[string]jsonOptionValue {
	if len(opts) == 0 {
		return nil
	}
	out := make(map[string]jsonOptionValue, len(opts))
	for name, v := range opts {
		out[name] = optionValueToJSON(v)
	}
	return out
}

func optionValueToJSON(v OptionValue) jsonOptionValue {
	switch val := v.(type) {
	case *Literal:
		return jsonOptionValue{Type: "literal", Value: val.Value()}
	case *VariableRef:
		return jsonOptionValue{Type: "variable", Name: val.Name()}
	default:
		return jsonOptionValue{Type: "literal", Value: fmt.Sprintf("%v", v)}
	}
}

func attributesToJSON(attrs Attributes) map[string]jsonAttributeValue {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]jsonAttributeValue, len(attrs))
	for name, v := range attrs {
		switch val := v.(type) {
		case *BooleanAttribute:
			t := true
			out[name] = jsonAttributeValue{Bool: &t}
		case *Literal:
			out[name] = jsonAttributeValue{Literal: &jsonLiteral{Type: "literal", Value: val.Value()}}
		}
	}
	return out
}

func expressionToJSON(e *Expression) jsonExpression {
	je := jsonExpression{Type: "expression"}
	if e.Arg() != nil {
		if ov, ok := e.Arg().(OptionValue); ok {
			v := optionValueToJSON(ov)
			je.Arg = &v
		}
	}
	if fr := e.FunctionRef(); fr != nil {
		je.FunctionRef = &jsonFunctionRef{Type: "function", Name: fr.Name(), Options: optionsToJSON(fr.Options())}
	}
	je.Attributes = attributesToJSON(e.Attributes())
	return je
}

func declarationToJSON(d Declaration) jsonDeclaration {
	switch decl := d.(type) {
	case *InputDeclaration:
		je := jsonExpression{Type: "expression"}
		if v := decl.value; v != nil {
			je = expressionToJSON(NewExpression(v.Arg(), v.FunctionRef(), v.Attributes()))
		}
		return jsonDeclaration{Type: "input", Name: decl.Name(), Value: je}
	case *LocalDeclaration:
		je := jsonExpression{Type: "expression"}
		if v := decl.value; v != nil {
			je = expressionToJSON(v)
		}
		return jsonDeclaration{Type: "local", Name: decl.Name(), Value: je}
	default:
		return jsonDeclaration{Type: d.Type(), Name: d.Name()}
	}
}

func (jd jsonDeclaration) toDeclaration() (Declaration, error) {
	expr, err := jd.Value.toExpression()
	if err != nil {
		return nil, err
	}
	switch jd.Type {
	case "input":
		varRef, _ := expr.Arg().(*VariableRef)
		vre := NewVariableRefExpression(varRef, expr.FunctionRef(), expr.Attributes())
		return NewInputDeclaration(jd.Name, vre), nil
	case "local":
		return NewLocalDeclaration(jd.Name, expr), nil
	default:
		return nil, fmt.Errorf("unsupported declaration type %q", jd.Type)
	}
}

type jsonVariantKey struct {
	IsCatchall bool
	Literal    *jsonLiteral
}

func (k *jsonVariantKey) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Type == "*" {
		k.IsCatchall = true
		return nil
	}
	var lit jsonLiteral
	if err := json.Unmarshal(data, &lit); err != nil {
		return err
	}
	k.Literal = &lit
	return nil
}

func (k jsonVariantKey) MarshalJSON() ([]byte, error) {
	if k.IsCatchall {
		return json.Marshal(struct {
			Type string `json:"type"`
		}{Type: "*"})
	}
	if k.Literal != nil {
		return json.Marshal(*k.Literal)
	}
	return json.Marshal(struct {
		Type string `json:"type"`
	}{Type: "*"})
}

func (k jsonVariantKey) toVariantKey() VariantKey {
	if k.IsCatchall || k.Literal == nil {
		return NewCatchallKey("*")
	}
	return NewLiteral(k.Literal.Value)
}

type jsonVariant struct {
	Keys  []jsonVariantKey `json:"keys"`
	Value jsonPattern      `json:"value"`
}

func (jv jsonVariant) toVariant() (*Variant, error) {
	keys := make([]VariantKey, 0, len(jv.Keys))
	for _, k := range jv.Keys {
		keys = append(keys, k.toVariantKey())
	}
	pattern, err := jv.Value.toPattern()
	if err != nil {
		return nil, err
	}
	return NewVariant(keys, pattern), nil
}

func messageToJSON(msg Message) (jsonMessage, error) {
	decls := make([]jsonDeclaration, 0, len(msg.Declarations()))
	for _, d := range msg.Declarations() {
		decls = append(decls, declarationToJSON(d))
	}

	switch m := msg.(type) {
	case *PatternMessage:
		return jsonMessage{
			Type:         "message",
			Declarations: decls,
			Pattern:      patternToJSON(m.Pattern()),
			Comment:      m.Comment(),
		}, nil
	case *SelectMessage:
		selectors := make([]jsonVariableRef, 0, len(m.Selectors()))
		for _, s := range m.Selectors() {
			selectors = append(selectors, jsonVariableRef{Type: "variable", Name: s.Name()})
		}
		variants := make([]jsonVariant, 0, len(m.Variants()))
		for _, v := range m.Variants() {
			keys := make([]jsonVariantKey, 0, len(v.Keys()))
			for _, k := range v.Keys() {
				if IsCatchallKey(k) {
					keys = append(keys, jsonVariantKey{IsCatchall: true})
				} else if lit, ok := k.(*Literal); ok {
					keys = append(keys, jsonVariantKey{Literal: &jsonLiteral{Type: "literal", Value: lit.Value()}})
				}
			}
			variants = append(variants, jsonVariant{Keys: keys, Value: patternToJSON(v.Value())})
		}
		return jsonMessage{
			Type:         "select",
			Declarations: decls,
			Selectors:    selectors,
			Variants:     variants,
			Comment:      m.Comment(),
		}, nil
	default:
		return jsonMessage{}, fmt.Errorf("unsupported message type %q", msg.Type())
	}
}

func (jm jsonMessage) toMessage() (Message, error) {
	decls := make([]Declaration, 0, len(jm.Declarations))
	for _, jd := range jm.Declarations {
		d, err := jd.toDeclaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}

	switch jm.Type {
	case "message":
		pattern, err := jm.Pattern.toPattern()
		if err != nil {
			return nil, err
		}
		return NewPatternMessage(decls, pattern, jm.Comment), nil
	case "select":
		selectors := make([]VariableRef, 0, len(jm.Selectors))
		for _, s := range jm.Selectors {
			selectors = append(selectors, *NewVariableRef(s.Name))
		}
		variants := make([]Variant, 0, len(jm.Variants))
		for _, jv := range jm.Variants {
			v, err := jv.toVariant()
			if err != nil {
				return nil, err
			}
			variants = append(variants, *v)
		}
		return NewSelectMessage(decls, selectors, variants, jm.Comment), nil
	default:
		return nil, fmt.Errorf("unsupported message type %q", jm.Type)
	}
}
