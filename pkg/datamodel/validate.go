package datamodel

import (
	"strconv"
	"strings"

	"github.com/mf2compile/messageformat/pkg/errors"
)

// ValidationResult lists what a message references: the function names its
// expressions call and the external variable names it reads.
type ValidationResult struct {
	Functions []string
	Variables []string
}

// ValidateMessage runs the static data-model checks and returns the first
// error found, if any. The optional callback observes every violation as
// (errorType, node).
func ValidateMessage(msg Message, onError func(string, interface{})) (*ValidationResult, error) {
	result, errs := ValidateMessageAll(msg, onError)
	if len(errs) > 0 {
		return result, errs[0]
	}
	return result, nil
}

// ValidateMessageAll is ValidateMessage keeping every error in first-seen
// order — the shape the static half of an error accumulator needs.
func ValidateMessageAll(msg Message, onError func(string, interface{})) (*ValidationResult, []error) {
	v := &validator{
		notify:    onError,
		annotated: map[string]bool{},
		declared:  map[string]bool{},
		locals:    map[string]bool{},
		functions: map[string]bool{},
		variables: map[string]bool{},
	}
	v.message(msg)
	return v.result(), v.errs
}

// validator accumulates the static checks over one message: unique
// declaration names, selector annotations, variant key arity and
// uniqueness, and the presence of a catch-all variant.
type validator struct {
	notify func(string, interface{})
	errs   []error

	annotated map[string]bool // declared names carrying an annotation
	declared  map[string]bool
	locals    map[string]bool
	functions map[string]bool
	variables map[string]bool
}

func (v *validator) report(errType string, node interface{}) {
	end := 0
	v.errs = append(v.errs, errors.NewMessageSyntaxError(canonicalErrType(errType), 0, &end, nil))
	if v.notify != nil {
		v.notify(errType, node)
	}
}

func canonicalErrType(errType string) string {
	switch errType {
	case "key-mismatch":
		return errors.ErrorTypeKeyMismatch
	case "missing-fallback":
		return errors.ErrorTypeMissingFallback
	case "missing-selector-annotation":
		return errors.ErrorTypeMissingSelectorAnnotation
	case "duplicate-declaration":
		return errors.ErrorTypeDuplicateDeclaration
	case "duplicate-variant":
		return errors.ErrorTypeDuplicateVariant
	}
	return errors.ErrorTypeParseError
}

func (v *validator) message(msg Message) {
	for _, decl := range msg.Declarations() {
		v.declaration(decl)
	}

	switch m := msg.(type) {
	case *PatternMessage:
		v.pattern(m.Pattern())
	case *SelectMessage:
		v.selectMessage(m)
	}
}

func (v *validator) declaration(decl Declaration) {
	name := decl.Name()
	if name == "" {
		return
	}

	if v.declared[name] {
		v.report("duplicate-declaration", decl)
	} else {
		v.declared[name] = true
	}

	switch d := decl.(type) {
	case *InputDeclaration:
		if d.value == nil {
			return
		}
		if d.value.FunctionRef() != nil {
			v.annotated[name] = true
		}
		v.expression(NewExpression(d.value.Arg(), d.value.FunctionRef(), d.value.Attributes()))

	case *LocalDeclaration:
		v.locals[name] = true
		if d.value == nil {
			return
		}
		// A local is annotated if its own expression is, or if it merely
		// renames a variable that already was.
		if d.value.FunctionRef() != nil {
			v.annotated[name] = true
		} else if ref, ok := d.value.Arg().(*VariableRef); ok && v.annotated[ref.Name()] {
			v.annotated[name] = true
		}
		v.expression(d.value)
	}
}

func (v *validator) selectMessage(m *SelectMessage) {
	for _, sel := range m.Selectors() {
		v.variables[sel.Name()] = true
		if !v.annotated[sel.Name()] {
			v.report("missing-selector-annotation", sel)
		}
	}

	seenKeys := map[string]bool{}
	hasFallback := false

	for i := range m.Variants() {
		variant := &m.Variants()[i]

		if len(variant.Keys()) != len(m.Selectors()) {
			v.report("key-mismatch", variant)
		}

		signature, allCatchall := keySignature(variant.Keys())
		if allCatchall {
			hasFallback = true
		}
		if seenKeys[signature] {
			v.report("duplicate-variant", variant)
		} else {
			seenKeys[signature] = true
		}

		v.pattern(variant.Value())
	}

	if !hasFallback && len(m.Selectors()) > 0 {
		v.report("missing-fallback", m.Selectors()[0])
	}
}

// keySignature flattens a key tuple for duplicate detection; the catchall
// marker cannot collide with any literal because literals are length-
// prefixed.
func keySignature(keys []VariantKey) (signature string, allCatchall bool) {
	var b strings.Builder
	allCatchall = true
	for _, key := range keys {
		if IsCatchallKey(key) {
			b.WriteString("*;")
			continue
		}
		allCatchall = false
		if lit, ok := key.(*Literal); ok {
			value := lit.Value()
			b.WriteString(strconv.Itoa(len(value)))
			b.WriteByte(':')
			b.WriteString(value)
			b.WriteByte(';')
		}
	}
	return b.String(), allCatchall
}

func (v *validator) pattern(pattern Pattern) {
	for _, elem := range pattern.Elements() {
		if expr, ok := elem.(*Expression); ok {
			v.expression(expr)
		}
	}
}

func (v *validator) expression(expr *Expression) {
	if expr.FunctionRef() != nil {
		v.functions[expr.FunctionRef().Name()] = true
	}
	if ref, ok := expr.Arg().(*VariableRef); ok {
		v.variables[ref.Name()] = true
	}
}

func (v *validator) result() *ValidationResult {
	fns := make([]string, 0, len(v.functions))
	for name := range v.functions {
		fns = append(fns, name)
	}
	vars := make([]string, 0, len(v.variables))
	for name := range v.variables {
		if !v.locals[name] {
			vars = append(vars, name)
		}
	}
	return &ValidationResult{Functions: fns, Variables: vars}
}
