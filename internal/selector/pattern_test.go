package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mf2compile/messageformat/internal/env"
	"github.com/mf2compile/messageformat/internal/resolve"
	"github.com/mf2compile/messageformat/pkg/datamodel"
	"github.com/mf2compile/messageformat/pkg/functions"
)

// buildSelect assembles a SelectMessage whose selectors are .input-declared
// with the given annotation, plus a context binding the arguments.
func buildSelect(t *testing.T, annotation string, selectorNames []string, variants []datamodel.Variant, args map[string]interface{}) (*resolve.Context, *datamodel.SelectMessage) {
	t.Helper()

	var decls []datamodel.Declaration
	selectors := make([]datamodel.VariableRef, len(selectorNames))

	funcs := map[string]functions.MessageFunction{
		"number": functions.NumberFunction,
		"string": functions.StringFunction,
	}
	ctx := resolve.NewContext([]string{"en"}, funcs, args, nil)

	for i, name := range selectorNames {
		selectors[i] = *datamodel.NewVariableRef(name)
		declExpr := datamodel.NewExpression(
			datamodel.NewVariableRef(name),
			datamodel.NewFunctionRef(annotation, nil),
			nil,
		)
		decls = append(decls, datamodel.NewLocalDeclaration(name, declExpr))
		ctx.Env = ctx.Env.Extend(name, env.NewClosure(declExpr, env.Empty()))
	}

	msg := datamodel.NewSelectMessage(decls, selectors, variants, "")
	return ctx, msg
}

func variant(pattern string, keys ...datamodel.VariantKey) datamodel.Variant {
	return *datamodel.NewVariant(keys, datamodel.NewPattern([]datamodel.PatternElement{
		datamodel.NewTextElement(pattern),
	}))
}

func patternText(t *testing.T, p datamodel.Pattern) string {
	t.Helper()
	require.Equal(t, 1, p.Len())
	return p.Elements()[0].(*datamodel.TextElement).Value()
}

func lit(v string) datamodel.VariantKey      { return datamodel.NewLiteral(v) }
func catchall() datamodel.VariantKey         { return datamodel.NewCatchallKey("*") }

func TestSelectPatternMessage(t *testing.T) {
	pm := datamodel.NewPatternMessage(nil, datamodel.NewPattern([]datamodel.PatternElement{
		datamodel.NewTextElement("plain"),
	}), "")
	ctx := resolve.NewContext([]string{"en"}, nil, nil, nil)

	assert.Equal(t, "plain", patternText(t, SelectPattern(ctx, pm)))
}

func TestSelectExactMatch(t *testing.T) {
	variants := []datamodel.Variant{
		variant("zero", lit("0")),
		variant("one", lit("one")),
		variant("other", catchall()),
	}

	ctx, msg := buildSelect(t, "number", []string{"n"}, variants, map[string]interface{}{"n": 0})
	assert.Equal(t, "zero", patternText(t, SelectPattern(ctx, msg)))
}

func TestSelectExactBeatsCategory(t *testing.T) {
	variants := []datamodel.Variant{
		variant("exact", lit("1")),
		variant("category", lit("one")),
		variant("other", catchall()),
	}

	ctx, msg := buildSelect(t, "number", []string{"n"}, variants, map[string]interface{}{"n": 1})
	assert.Equal(t, "exact", patternText(t, SelectPattern(ctx, msg)))
}

func TestSelectPluralCategory(t *testing.T) {
	variants := []datamodel.Variant{
		variant("one", lit("one")),
		variant("other", catchall()),
	}

	ctx, msg := buildSelect(t, "number", []string{"n"}, variants, map[string]interface{}{"n": 1})
	assert.Equal(t, "one", patternText(t, SelectPattern(ctx, msg)))

	ctx, msg = buildSelect(t, "number", []string{"n"}, variants, map[string]interface{}{"n": 5})
	assert.Equal(t, "other", patternText(t, SelectPattern(ctx, msg)))
}

func TestSelectCatchallFallback(t *testing.T) {
	variants := []datamodel.Variant{
		variant("specific", lit("online")),
		variant("unknown", catchall()),
	}

	ctx, msg := buildSelect(t, "string", []string{"s"}, variants, map[string]interface{}{"s": "offline"})
	assert.Equal(t, "unknown", patternText(t, SelectPattern(ctx, msg)))
}

func TestSelectMultipleSelectors(t *testing.T) {
	variants := []datamodel.Variant{
		variant("both", lit("a"), lit("x")),
		variant("first", lit("a"), catchall()),
		variant("second", catchall(), lit("x")),
		variant("neither", catchall(), catchall()),
	}

	cases := []struct {
		p, q string
		want string
	}{
		{"a", "x", "both"},
		{"a", "y", "first"},
		{"b", "x", "second"},
		{"b", "y", "neither"},
	}

	for _, tc := range cases {
		args := map[string]interface{}{"p": tc.p, "q": tc.q}
		ctx, msg := buildSelect(t, "string", []string{"p", "q"}, variants, args)
		assert.Equal(t, tc.want, patternText(t, SelectPattern(ctx, msg)), "p=%s q=%s", tc.p, tc.q)
	}
}

func TestSelectSpecificBeatsCatchall(t *testing.T) {
	// Source order puts the catch-all first; the specific variant must
	// still win because concrete matches rank ahead of `*`.
	variants := []datamodel.Variant{
		variant("wild", catchall()),
		variant("exact", lit("yes")),
	}

	ctx, msg := buildSelect(t, "string", []string{"s"}, variants, map[string]interface{}{"s": "yes"})
	assert.Equal(t, "exact", patternText(t, SelectPattern(ctx, msg)))
}
