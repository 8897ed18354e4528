package messageformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mf2compile/messageformat/pkg/datamodel"
	"github.com/mf2compile/messageformat/pkg/functions"
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

func format(t *testing.T, source string, args map[string]interface{}, opts ...Option) string {
	t.Helper()
	params := make([]interface{}, len(opts))
	for i, o := range opts {
		params[i] = o
	}
	mf, err := New("en", source, params...)
	require.NoError(t, err)
	result, err := mf.Format(args)
	require.NoError(t, err)
	return result
}

func plain(t *testing.T, source string, args map[string]interface{}) string {
	t.Helper()
	return format(t, source, args, WithBidiIsolation("none"))
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		mf, err := New("en", "Hello")
		require.NoError(t, err)
		assert.Equal(t, "ltr", mf.Dir())
		assert.True(t, mf.BidiIsolation())
	})

	t.Run("locale list", func(t *testing.T) {
		mf, err := New([]string{"fr", "en"}, "Bonjour")
		require.NoError(t, err)
		assert.Equal(t, "ltr", mf.Dir())
	})

	t.Run("nil locale", func(t *testing.T) {
		mf, err := New(nil, "Hello")
		require.NoError(t, err)
		assert.Equal(t, "auto", mf.Dir())
	})

	t.Run("rtl locale", func(t *testing.T) {
		mf, err := New("ar", "مرحبا")
		require.NoError(t, err)
		assert.Equal(t, "rtl", mf.Dir())
	})

	t.Run("invalid locale type", func(t *testing.T) {
		_, err := New(7, "Hello")
		require.Error(t, err)
	})

	t.Run("invalid source type", func(t *testing.T) {
		_, err := New("en", 7)
		require.Error(t, err)
	})

	t.Run("syntax error carries position", func(t *testing.T) {
		_, err := New("en", "{unclosed")
		require.Error(t, err)
		assert.EqualError(t, err, "parse-error at 9")
	})

	t.Run("data model source", func(t *testing.T) {
		msg, err := datamodel.ParseMessage("Hello {$name}")
		require.NoError(t, err)

		mf, err := New("en", msg, WithBidiIsolation("none"))
		require.NoError(t, err)
		out, err := mf.Format(map[string]interface{}{"name": "direct"})
		require.NoError(t, err)
		assert.Equal(t, "Hello direct", out)
	})

	t.Run("validation rejects bad select", func(t *testing.T) {
		// One selector, two keys on a variant.
		msg := datamodel.NewSelectMessage(
			[]datamodel.Declaration{datamodel.NewInputDeclaration("n",
				datamodel.NewVariableRefExpression(datamodel.NewVariableRef("n"), datamodel.NewFunctionRef("number", nil), nil))},
			[]datamodel.VariableRef{*datamodel.NewVariableRef("n")},
			[]datamodel.Variant{
				*datamodel.NewVariant([]datamodel.VariantKey{datamodel.NewLiteral("a"), datamodel.NewLiteral("b")}, datamodel.NewPattern(nil)),
				*datamodel.NewVariant([]datamodel.VariantKey{datamodel.NewCatchallKey("*")}, datamodel.NewPattern(nil)),
			},
			"",
		)
		_, err := New("en", msg)
		require.Error(t, err)
	})

	t.Run("MustNew panics on error", func(t *testing.T) {
		assert.Panics(t, func() { MustNew("en", "{") })
		assert.NotPanics(t, func() { MustNew("en", "fine") })
	})
}

func TestOptionsSurface(t *testing.T) {
	t.Run("struct options", func(t *testing.T) {
		mf, err := New("en", "Hello", &MessageFormatOptions{
			BidiIsolation: BidiNone,
			Dir:           DirRTL,
			LocaleMatcher: LocaleLookup,
		})
		require.NoError(t, err)
		assert.False(t, mf.BidiIsolation())
		assert.Equal(t, "rtl", mf.Dir())
	})

	t.Run("functional options", func(t *testing.T) {
		mf, err := New("en", "Hello", WithBidiIsolation("none"), WithDir("rtl"), WithLocaleMatcher("lookup"))
		require.NoError(t, err)
		assert.False(t, mf.BidiIsolation())
		assert.Equal(t, "rtl", mf.Dir())
	})

	t.Run("resolved options", func(t *testing.T) {
		mf, err := New("en", "Hello", WithBidiIsolation("none"))
		require.NoError(t, err)
		resolved := mf.ResolvedOptions()
		assert.Equal(t, BidiNone, resolved.BidiIsolation)
		assert.Equal(t, DirLTR, resolved.Dir)
		assert.Contains(t, resolved.Functions, "number")
	})
}

func TestFormatBasics(t *testing.T) {
	t.Run("plain text", func(t *testing.T) {
		assert.Equal(t, "Hello World", plain(t, "Hello World", nil))
	})

	t.Run("variable substitution", func(t *testing.T) {
		assert.Equal(t, "Hello Alice", plain(t, "Hello {$name}", map[string]interface{}{"name": "Alice"}))
	})

	t.Run("default bidi isolation wraps strings", func(t *testing.T) {
		got := format(t, "Hello {$name}", map[string]interface{}{"name": "Alice"})
		assert.Equal(t, "Hello \u2068Alice\u2069", got)
	})

	t.Run("ltr numbers skip isolation", func(t *testing.T) {
		got := format(t, "n = {$n :number}", map[string]interface{}{"n": 7})
		assert.Equal(t, "n = 7", got)
	})

	t.Run("missing variable falls back", func(t *testing.T) {
		assert.Equal(t, "Hello {$name}", plain(t, "Hello {$name}", nil))
	})

	t.Run("literal operand", func(t *testing.T) {
		assert.Equal(t, "pi is 3.14", plain(t, "pi is {|3.14|}", nil))
	})
}

func TestFormatToParts(t *testing.T) {
	mf, err := New("en", "Hi {$name}!", WithBidiIsolation("none"))
	require.NoError(t, err)

	parts, err := mf.FormatToParts(map[string]interface{}{"name": "Ada"})
	require.NoError(t, err)
	require.Len(t, parts, 3)

	assert.Equal(t, "text", parts[0].Type())
	assert.Equal(t, "Hi ", parts[0].Value())
	assert.Equal(t, "string", parts[1].Type())
	assert.Equal(t, "Ada", parts[1].Value())
	assert.Equal(t, "!", parts[2].Value())
}

func TestFormatErrorHandler(t *testing.T) {
	mf, err := New("en", "Hello {$missing}", WithBidiIsolation("none"))
	require.NoError(t, err)

	var seen []error
	out, err := mf.Format(nil, func(e error) { seen = append(seen, e) })
	require.NoError(t, err)
	assert.Equal(t, "Hello {$missing}", out)
	require.Len(t, seen, 1)
}

func TestFormatWithReport(t *testing.T) {
	t.Run("collects dynamic errors", func(t *testing.T) {
		mf, err := New("en", "{$a} and {$b}", WithBidiIsolation("none"))
		require.NoError(t, err)

		out, report := mf.FormatWithReport(map[string]interface{}{})
		assert.Equal(t, "{$a} and {$b}", out)
		assert.Empty(t, report.Static)
		assert.Len(t, report.Dynamic, 2)
	})

	t.Run("clean message reports nothing", func(t *testing.T) {
		mf, err := New("en", "Hello {$name}", WithBidiIsolation("none"))
		require.NoError(t, err)

		out, report := mf.FormatWithReport(map[string]interface{}{"name": "Sam"})
		assert.Equal(t, "Hello Sam", out)
		assert.Empty(t, report.Static)
		assert.Empty(t, report.Dynamic)
	})
}

func TestSourceCanonicalForm(t *testing.T) {
	mf, err := New("en", ".local  $x  =  {$y :number}\n{{value: {$x}}}")
	require.NoError(t, err)

	canonical := mf.Source()
	assert.Equal(t, ".local $x = {$y :number}\n{{value: {$x}}}", canonical)

	// The canonical form compiles to an equivalent formatter.
	mf2, err := New("en", canonical, WithBidiIsolation("none"))
	require.NoError(t, err)
	out, err := mf2.Format(map[string]interface{}{"y": 9})
	require.NoError(t, err)
	assert.Equal(t, "value: 9", out)
}

func TestCustomFunctionOption(t *testing.T) {
	shout := func(ctx functions.MessageFunctionContext, options map[string]interface{}, operand interface{}) messagevalue.MessageValue {
		s := messagevalue.ToString(operand)
		return messagevalue.NewStringValue(s+"!", "en", ctx.Source())
	}

	mf, err := New("en", "{$word :shout}", WithBidiIsolation("none"), WithFunction("shout", shout))
	require.NoError(t, err)
	out, err := mf.Format(map[string]interface{}{"word": "go"})
	require.NoError(t, err)
	assert.Equal(t, "go!", out)
}

func TestExports(t *testing.T) {
	assert.NotNil(t, NewMessageFormat)
	assert.NotNil(t, ValidateMessage)
	assert.True(t, IsLiteral(datamodel.NewLiteral("x")))
	assert.True(t, IsCatchallKey(datamodel.NewCatchallKey("*")))
	assert.Contains(t, DefaultFunctions, "number")
	assert.Contains(t, DraftFunctions, "currency")
}
