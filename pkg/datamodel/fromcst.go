package datamodel

import (
	"github.com/mf2compile/messageformat/internal/cst"
	"github.com/mf2compile/messageformat/pkg/errors"
)

// FromCST lowers a parsed CST into the evaluation data model. The CST must
// be error-free; any recorded syntax error aborts the lowering with that
// error. Source spans do not survive the lowering — the data model is the
// form that gets evaluated, cached, and serialized.
func FromCST(msg cst.Message) (Message, error) {
	if errs := msg.Errors(); len(errs) > 0 {
		first := errs[0]
		end := first.End
		return nil, errors.NewMessageSyntaxError(errors.ErrorTypeParseError, first.Start, &end, nil)
	}

	switch m := msg.(type) {
	case *cst.SimpleMessage:
		pattern, err := lowerPattern(m.Pattern())
		if err != nil {
			return nil, err
		}
		return NewPatternMessage([]Declaration{}, *pattern, ""), nil

	case *cst.ComplexMessage:
		declarations, err := lowerDeclarations(m.Declarations())
		if err != nil {
			return nil, err
		}
		pattern, err := lowerPattern(m.Pattern())
		if err != nil {
			return nil, err
		}
		return NewPatternMessage(declarations, *pattern, ""), nil

	case *cst.SelectMessage:
		declarations, err := lowerDeclarations(m.Declarations())
		if err != nil {
			return nil, err
		}

		selectors := make([]VariableRef, len(m.Selectors()))
		for i := range m.Selectors() {
			sel := m.Selectors()[i]
			ref, err := lowerVariableRef(&sel)
			if err != nil {
				return nil, err
			}
			selectors[i] = *ref
		}

		variants := make([]Variant, len(m.Variants()))
		for i, variant := range m.Variants() {
			lowered, err := lowerVariant(variant)
			if err != nil {
				return nil, err
			}
			variants[i] = *lowered
		}

		return NewSelectMessage(declarations, selectors, variants, ""), nil
	}

	end := 1
	return nil, errors.NewMessageSyntaxError(errors.ErrorTypeParseError, 0, &end, nil)
}

// nodeErr builds the parse error reported when a CST node cannot lower —
// Junk reaching this stage, or a node of the wrong kind in its position.
func nodeErr(node cst.Node) error {
	end := node.End()
	return errors.NewMessageSyntaxError(errors.ErrorTypeParseError, node.Start(), &end, nil)
}

func lowerDeclarations(decls []cst.Declaration) ([]Declaration, error) {
	out := make([]Declaration, len(decls))
	for i, decl := range decls {
		lowered, err := lowerDeclaration(decl)
		if err != nil {
			return nil, err
		}
		out[i] = lowered
	}
	return out, nil
}

func lowerDeclaration(decl cst.Declaration) (Declaration, error) {
	switch d := decl.(type) {
	case *cst.InputDeclaration:
		elem, err := lowerExpression(d.Value(), false)
		if err != nil {
			return nil, err
		}
		expr, ok := elem.(*Expression)
		if !ok {
			return nil, declErr(d)
		}
		// The declared name is the bound argument's own name.
		ref, ok := expr.Arg().(*VariableRef)
		if !ok {
			return nil, declErr(d)
		}
		return NewInputDeclaration(ref.Name(), expr.AsVariableRefExpression()), nil

	case *cst.LocalDeclaration:
		target, err := lowerVariableRef(d.Target())
		if err != nil {
			return nil, err
		}
		elem, err := lowerExpression(d.Value(), false)
		if err != nil {
			return nil, err
		}
		expr, ok := elem.(*Expression)
		if !ok {
			return nil, declErr(d)
		}
		return NewLocalDeclaration(target.Name(), expr), nil
	}

	return nil, declErr(decl)
}

func declErr(decl cst.Declaration) error {
	end := decl.End()
	return errors.NewMessageSyntaxError(errors.ErrorTypeParseError, decl.Start(), &end, nil)
}

func lowerPattern(pattern cst.Pattern) (*Pattern, error) {
	elements := make([]PatternElement, len(pattern.Body()))
	for i, node := range pattern.Body() {
		switch n := node.(type) {
		case *cst.Text:
			elements[i] = NewTextElement(n.Value())
		case *cst.Expression:
			lowered, err := lowerExpression(n, true)
			if err != nil {
				return nil, err
			}
			elements[i] = lowered
		default:
			return nil, nodeErr(node)
		}
	}
	result := NewPattern(elements)
	return &result, nil
}

// lowerExpression lowers a CST expression to an *Expression, or — when
// allowMarkup holds and the braces contain a markup element — a *Markup.
func lowerExpression(node cst.Node, allowMarkup bool) (PatternElement, error) {
	expr, ok := node.(*cst.Expression)
	if !ok {
		return nil, nodeErr(node)
	}

	if allowMarkup && expr.Markup() != nil {
		return lowerMarkup(expr)
	}

	var arg any
	if expr.Arg() != nil {
		value, err := lowerValue(expr.Arg())
		if err != nil {
			return nil, err
		}
		arg = value
	}

	var fn *FunctionRef
	if expr.FunctionRef() != nil {
		ref, ok := expr.FunctionRef().(*cst.FunctionRef)
		if !ok {
			return nil, nodeErr(node)
		}
		lowered, err := lowerFunctionRef(ref)
		if err != nil {
			return nil, err
		}
		fn = lowered
	}

	attrs, err := lowerAttributes(expr.Attributes())
	if err != nil {
		return nil, err
	}

	return NewExpression(arg, fn, attrs), nil
}

func lowerMarkup(expr *cst.Expression) (*Markup, error) {
	m := expr.Markup()

	kind := "open"
	open := m.Open()
	switch {
	case open.Value() == "/":
		kind = "close"
	case m.Close() != nil:
		kind = "standalone"
	}

	options, err := lowerOptions(m.Options())
	if err != nil {
		return nil, err
	}
	attrs, err := lowerAttributes(expr.Attributes())
	if err != nil {
		return nil, err
	}

	return NewMarkup(kind, identifierName(m.Name()), options, attrs), nil
}

func lowerFunctionRef(ref *cst.FunctionRef) (*FunctionRef, error) {
	options, err := lowerOptions(ref.Options())
	if err != nil {
		return nil, err
	}
	return NewFunctionRef(identifierName(ref.Name()), options), nil
}

func lowerOptions(opts []cst.Option) (Options, error) {
	if len(opts) == 0 {
		return nil, nil
	}
	out := make(Options, len(opts))
	for _, opt := range opts {
		value, err := lowerValue(opt.Value())
		if err != nil {
			return nil, err
		}
		out[identifierName(opt.Name())] = value.(OptionValue)
	}
	return out, nil
}

func lowerAttributes(attrs []cst.Attribute) (Attributes, error) {
	if len(attrs) == 0 {
		return nil, nil
	}
	out := make(Attributes, len(attrs))
	for _, attr := range attrs {
		name := identifierName(attr.Name())
		if attr.Value() == nil {
			out[name] = NewBooleanAttribute()
			continue
		}
		out[name] = NewLiteral(attr.Value().Value())
	}
	return out, nil
}

func lowerVariant(variant cst.Variant) (*Variant, error) {
	keys := make([]VariantKey, len(variant.Keys()))
	for i, key := range variant.Keys() {
		switch k := key.(type) {
		case *cst.CatchallKey:
			keys[i] = NewCatchallKey("*")
		case *cst.Literal:
			keys[i] = NewLiteral(k.Value())
		default:
			return nil, nodeErr(key)
		}
	}

	pattern, err := lowerPattern(variant.Value())
	if err != nil {
		return nil, err
	}
	return NewVariant(keys, *pattern), nil
}

// lowerValue lowers an operand or option value: a literal or a variable
// reference.
func lowerValue(node cst.Node) (any, error) {
	switch v := node.(type) {
	case *cst.Literal:
		return NewLiteral(v.Value()), nil
	case *cst.VariableRef:
		return NewVariableRef(v.Name()), nil
	}
	return nil, nodeErr(node)
}

func lowerVariableRef(node cst.Node) (*VariableRef, error) {
	if v, ok := node.(*cst.VariableRef); ok {
		return NewVariableRef(v.Name()), nil
	}
	return nil, nodeErr(node)
}

// identifierName flattens a CST identifier to its string form, namespaced
// or plain.
func identifierName(id cst.Identifier) string {
	switch len(id) {
	case 1:
		return id[0].Value()
	case 3:
		return id[0].Value() + ":" + id[2].Value()
	}
	return ""
}
