package datamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mf2compile/messageformat/internal/cst"
)

func lower(t *testing.T, source string) Message {
	t.Helper()
	msg, err := FromCST(cst.Parse(source, false))
	require.NoError(t, err, "lowering %q", source)
	return msg
}

func TestFromCSTPatternMessage(t *testing.T) {
	t.Run("text and variable", func(t *testing.T) {
		msg := lower(t, "Hello {$name}!")
		pm, ok := msg.(*PatternMessage)
		require.True(t, ok)
		require.Equal(t, 3, pm.Pattern().Len())

		assert.Equal(t, "Hello ", pm.Pattern().Elements()[0].(*TextElement).Value())
		expr := pm.Pattern().Elements()[1].(*Expression)
		assert.Equal(t, "name", expr.Arg().(*VariableRef).Name())
		assert.Equal(t, "!", pm.Pattern().Elements()[2].(*TextElement).Value())
	})

	t.Run("function with options", func(t *testing.T) {
		msg := lower(t, "{$n :number minimumFractionDigits=2 opt=$v}")
		expr := msg.(*PatternMessage).Pattern().Elements()[0].(*Expression)
		fn := expr.FunctionRef()
		require.NotNil(t, fn)
		assert.Equal(t, "number", fn.Name())

		require.Len(t, fn.Options(), 2)
		assert.Equal(t, "2", fn.Options()["minimumFractionDigits"].(*Literal).Value())
		assert.Equal(t, "v", fn.Options()["opt"].(*VariableRef).Name())
	})

	t.Run("attributes become literals and booleans", func(t *testing.T) {
		msg := lower(t, "{$x :string @note=hi @flag}")
		expr := msg.(*PatternMessage).Pattern().Elements()[0].(*Expression)
		require.Len(t, expr.Attributes(), 2)
		assert.Equal(t, "hi", expr.Attributes()["note"].(*Literal).Value())
		assert.IsType(t, &BooleanAttribute{}, expr.Attributes()["flag"])
	})

	t.Run("markup kinds", func(t *testing.T) {
		msg := lower(t, "{#b}x{/b}{#hr/}")
		elems := msg.(*PatternMessage).Pattern().Elements()
		assert.Equal(t, "open", elems[0].(*Markup).Kind())
		assert.Equal(t, "close", elems[2].(*Markup).Kind())
		assert.Equal(t, "standalone", elems[3].(*Markup).Kind())
	})

	t.Run("syntax errors surface from the CST", func(t *testing.T) {
		_, err := FromCST(cst.Parse("{unclosed", false))
		require.Error(t, err)
	})
}

func TestFromCSTDeclarations(t *testing.T) {
	msg := lower(t, ".input {$count :number}\n.local $double = {$count :number}\n{{{$double}}}")
	decls := msg.Declarations()
	require.Len(t, decls, 2)

	input := decls[0].(*InputDeclaration)
	assert.Equal(t, "count", input.Name())
	vre := input.Value().(*VariableRefExpression)
	assert.Equal(t, "count", vre.Arg().Name())
	assert.Equal(t, "number", vre.FunctionRef().Name())

	local := decls[1].(*LocalDeclaration)
	assert.Equal(t, "double", local.Name())
	expr := local.Value().(*Expression)
	assert.Equal(t, "count", expr.Arg().(*VariableRef).Name())
}

func TestFromCSTSelectMessage(t *testing.T) {
	msg := lower(t, ".input {$n :number}\n.match $n\n0 {{zero}}\none {{one}}\n* {{many}}")
	sm, ok := msg.(*SelectMessage)
	require.True(t, ok)

	require.Len(t, sm.Selectors(), 1)
	assert.Equal(t, "n", sm.Selectors()[0].Name())

	require.Len(t, sm.Variants(), 3)
	assert.Equal(t, "0", sm.Variants()[0].Keys()[0].(*Literal).Value())
	assert.True(t, IsCatchallKey(sm.Variants()[2].Keys()[0]))
}

func TestStringifyRoundTrip(t *testing.T) {
	sources := []string{
		"Hello world",
		"Hello {$name}!",
		"{$count :number minimumFractionDigits=2}",
		"{|quoted literal|}",
		".input {$count :number}\n{{You have {$count}}}",
		".local $x = {$y :string}\n{{{$x}}}",
		".input {$n :number}\n.match $n\n0 {{zero}}\n* {{{$n}}}",
		"{#b}bold{/b}",
	}

	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			first := lower(t, source)
			canonical := StringifyMessage(first)

			// The canonical form must parse back to an equivalent message.
			second, err := FromCST(cst.Parse(canonical, false))
			require.NoError(t, err, "canonical form %q does not re-parse", canonical)
			assert.Equal(t, canonical, StringifyMessage(second))
		})
	}
}

func TestStringifyQuotesDotLeadingText(t *testing.T) {
	msg := NewPatternMessage(nil, NewPattern([]PatternElement{
		NewTextElement(".local looks like a keyword"),
	}), "")
	out := StringifyMessage(msg)
	assert.Equal(t, "{{.local looks like a keyword}}", out)
}

func TestStringifyLiteralQuoting(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"simple", "simple"},
		{"4.2", "4.2"},
		{"two words", "|two words|"},
		{"pipe|char", `|pipe\|char|`},
		{`back\slash`, `|back\\slash|`},
		{"", "||"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, literalSource(NewLiteral(tt.value)), "value %q", tt.value)
	}
}

func TestValidateMessage(t *testing.T) {
	t.Run("valid select passes", func(t *testing.T) {
		msg := lower(t, ".input {$n :number}\n.match $n\none {{one}}\n* {{other}}")
		_, errs := ValidateMessageAll(msg, nil)
		assert.Empty(t, errs)
	})

	t.Run("missing fallback variant", func(t *testing.T) {
		msg := NewSelectMessage(
			[]Declaration{NewInputDeclaration("n", NewVariableRefExpression(NewVariableRef("n"), NewFunctionRef("number", nil), nil))},
			[]VariableRef{*NewVariableRef("n")},
			[]Variant{*NewVariant([]VariantKey{NewLiteral("one")}, NewPattern(nil))},
			"",
		)
		_, errs := ValidateMessageAll(msg, nil)
		require.NotEmpty(t, errs)
	})

	t.Run("duplicate declaration", func(t *testing.T) {
		decl := func() Declaration {
			return NewLocalDeclaration("x", NewExpression(NewLiteral("1"), nil, nil))
		}
		msg := NewPatternMessage([]Declaration{decl(), decl()}, NewPattern(nil), "")
		_, errs := ValidateMessageAll(msg, nil)
		require.NotEmpty(t, errs)
	})

	t.Run("key count mismatch", func(t *testing.T) {
		msg := NewSelectMessage(
			[]Declaration{NewInputDeclaration("n", NewVariableRefExpression(NewVariableRef("n"), NewFunctionRef("number", nil), nil))},
			[]VariableRef{*NewVariableRef("n")},
			[]Variant{
				*NewVariant([]VariantKey{NewLiteral("a"), NewLiteral("b")}, NewPattern(nil)),
				*NewVariant([]VariantKey{NewCatchallKey("*")}, NewPattern(nil)),
			},
			"",
		)
		_, errs := ValidateMessageAll(msg, nil)
		require.NotEmpty(t, errs)
	})

	t.Run("missing selector annotation", func(t *testing.T) {
		msg := NewSelectMessage(
			nil,
			[]VariableRef{*NewVariableRef("loose")},
			[]Variant{*NewVariant([]VariantKey{NewCatchallKey("*")}, NewPattern(nil))},
			"",
		)
		_, errs := ValidateMessageAll(msg, nil)
		require.NotEmpty(t, errs)
	})
}

func TestGuards(t *testing.T) {
	assert.True(t, IsLiteral(NewLiteral("x")))
	assert.True(t, IsVariableRef(NewVariableRef("x")))
	assert.True(t, IsCatchallKey(NewCatchallKey("*")))
	assert.True(t, IsMarkup(NewMarkup("open", "b", nil, nil)))
	assert.True(t, IsExpression(NewExpression(NewLiteral("x"), nil, nil)))
	assert.True(t, IsBooleanAttribute(NewBooleanAttribute()))

	assert.False(t, IsLiteral(NewVariableRef("x")))
	assert.False(t, IsCatchallKey(NewLiteral("*")))

	pattern := NewPatternMessage(nil, NewPattern(nil), "")
	sel := NewSelectMessage(nil, nil, nil, "")
	assert.True(t, IsPatternMessage(pattern))
	assert.False(t, IsSelectMessage(pattern))
	assert.True(t, IsSelectMessage(sel))
	assert.True(t, IsMessage(pattern))

	input := NewInputDeclaration("x", nil)
	local := NewLocalDeclaration("y", nil)
	assert.True(t, IsInputDeclaration(input))
	assert.False(t, IsInputDeclaration(local))
	assert.True(t, IsLocalDeclaration(local))
}

func TestParseMessage(t *testing.T) {
	msg, err := ParseMessage("Hello {$name}")
	require.NoError(t, err)
	assert.Equal(t, "message", msg.Type())

	_, err = ParseMessage("{broken")
	require.Error(t, err)
}
