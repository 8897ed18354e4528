package functions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

func customFn(ctx MessageFunctionContext, options map[string]interface{}, operand interface{}) messagevalue.MessageValue {
	return messagevalue.NewStringValue("custom", "en", ctx.Source())
}

func TestBuiltinSplitRegistry(t *testing.T) {
	t.Run("required and draft formatters are registered", func(t *testing.T) {
		for name := range DefaultFunctions {
			assert.Contains(t, BuiltinSplitRegistry.Formatters, name)
		}
		for name := range DraftFunctions {
			assert.Contains(t, BuiltinSplitRegistry.Formatters, name)
		}
	})

	t.Run("selector-only names are registered as selectors", func(t *testing.T) {
		for _, name := range []string{"plural", "selectordinal", "select", "gender"} {
			assert.Contains(t, BuiltinSplitRegistry.Selectors, name)
			assert.NotContains(t, BuiltinSplitRegistry.Formatters, name)
		}
	})
}

func TestResolveFormatterSite(t *testing.T) {
	custom := NewSplitRegistry()
	custom.RegisterFormatter("shout", AsFormatterFactory(customFn))
	custom.RegisterSelector("mood", AsSelectorFactory(customFn, nil))

	t.Run("builtin formatter wins", func(t *testing.T) {
		factory, result := Resolve(BuiltinSplitRegistry, custom, "number", KindFormatter)
		assert.Equal(t, ResultOK, result)
		assert.NotNil(t, factory)
	})

	t.Run("builtin selector used as formatter", func(t *testing.T) {
		factory, result := Resolve(BuiltinSplitRegistry, custom, "plural", KindFormatter)
		assert.Equal(t, ResultWrongKind, result)
		assert.Nil(t, factory)
	})

	t.Run("custom formatter resolves", func(t *testing.T) {
		factory, result := Resolve(BuiltinSplitRegistry, custom, "shout", KindFormatter)
		assert.Equal(t, ResultOK, result)
		assert.NotNil(t, factory)
	})

	t.Run("custom selector used as formatter", func(t *testing.T) {
		_, result := Resolve(BuiltinSplitRegistry, custom, "mood", KindFormatter)
		assert.Equal(t, ResultWrongKind, result)
	})

	t.Run("unknown in both registries", func(t *testing.T) {
		_, result := Resolve(BuiltinSplitRegistry, custom, "nope", KindFormatter)
		assert.Equal(t, ResultUnknownFunction, result)
	})

	t.Run("nil custom registry", func(t *testing.T) {
		_, result := Resolve(BuiltinSplitRegistry, nil, "shout", KindFormatter)
		assert.Equal(t, ResultUnknownFunction, result)
	})
}

func TestResolveSelectorSite(t *testing.T) {
	custom := NewSplitRegistry()
	custom.RegisterFormatter("shout", AsFormatterFactory(customFn))
	custom.RegisterSelector("mood", AsSelectorFactory(customFn, nil))

	t.Run("builtin selector wins", func(t *testing.T) {
		factory, result := Resolve(BuiltinSplitRegistry, custom, "select", KindSelector)
		assert.Equal(t, ResultOK, result)
		assert.NotNil(t, factory)
	})

	t.Run("builtin formatter used as selector", func(t *testing.T) {
		factory, result := Resolve(BuiltinSplitRegistry, custom, "datetime", KindSelector)
		assert.Equal(t, ResultWrongKind, result)
		assert.Nil(t, factory)
	})

	t.Run("custom selector resolves", func(t *testing.T) {
		factory, result := Resolve(BuiltinSplitRegistry, custom, "mood", KindSelector)
		assert.Equal(t, ResultOK, result)
		assert.NotNil(t, factory)
	})

	t.Run("custom formatter used as selector", func(t *testing.T) {
		_, result := Resolve(BuiltinSplitRegistry, custom, "shout", KindSelector)
		assert.Equal(t, ResultWrongKind, result)
	})

	t.Run("unknown in both registries", func(t *testing.T) {
		_, result := Resolve(BuiltinSplitRegistry, custom, "nope", KindSelector)
		assert.Equal(t, ResultUnknownFunction, result)
	})
}

type countingFactory struct {
	created int
}

func (f *countingFactory) CreateFormatter(locale string) Formatter {
	f.created++
	return funcFormatter{fn: customFn}
}

func TestFormatterCache(t *testing.T) {
	t.Run("first use builds, later uses reuse", func(t *testing.T) {
		cache := NewFormatterCache("en")
		factory := &countingFactory{}

		first := cache.GetOrCreate("shout", factory)
		second := cache.GetOrCreate("shout", factory)

		assert.Equal(t, 1, factory.created)
		assert.Equal(t, first, second)
	})

	t.Run("distinct names build distinct formatters", func(t *testing.T) {
		cache := NewFormatterCache("en")
		a := &countingFactory{}
		b := &countingFactory{}

		cache.GetOrCreate("a", a)
		cache.GetOrCreate("b", b)

		assert.Equal(t, 1, a.created)
		assert.Equal(t, 1, b.created)
	})
}

func TestSelectordinalForcesOrdinalMode(t *testing.T) {
	factory, result := Resolve(BuiltinSplitRegistry, nil, "selectordinal", KindSelector)
	require.Equal(t, ResultOK, result)

	selectorFactory, ok := factory.(SelectorFactory)
	require.True(t, ok)

	sel := selectorFactory.CreateSelector("en")
	msgCtx := NewMessageFunctionContext([]string{"en"}, "$n", "best fit", nil, nil, "", "")

	// 1 is "one" under cardinal rules but "one" under English ordinal rules
	// too (1st); 2 is "two" under ordinal (2nd) and "other" under cardinal.
	keys, err := sel.SelectKeys(msgCtx, 2, map[string]interface{}{}, []string{"two", "other"})
	require.NoError(t, err)
	require.NotEmpty(t, keys)
	assert.Equal(t, "two", keys[0])
}
