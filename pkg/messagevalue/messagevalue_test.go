package messagevalue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringValue(t *testing.T) {
	sv := NewStringValue("hello", "en", "$greeting")

	s, err := sv.ToString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	v, err := sv.ValueOf()
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	parts, err := sv.ToParts()
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "string", parts[0].Type())
	assert.Equal(t, "hello", parts[0].Value())
	assert.Equal(t, "$greeting", parts[0].Source())
}

func TestStringValueSelection(t *testing.T) {
	sv := NewStringValue("online", "en", "$status")

	keys, err := sv.SelectKeys([]string{"offline", "online", "away"})
	require.NoError(t, err)
	assert.Equal(t, []string{"online"}, keys)

	keys, err = sv.SelectKeys([]string{"busy"})
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStringValueSelectionNormalizes(t *testing.T) {
	// Precomposed U+00E9 versus decomposed e + U+0301: NFC normalization
	// makes them match.
	sv := NewStringValue("caf\u00e9", "fr", "$word")
	keys, err := sv.SelectKeys([]string{"cafe\u0301"})
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestNumberValueFormatting(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		options map[string]interface{}
		want    string
	}{
		{"integer with grouping", 1234567, nil, "1,234,567"},
		{"min fraction digits pad", 4.2, map[string]interface{}{"minimumFractionDigits": 2}, "4.20"},
		{"max fraction digits truncate", 3.14159, map[string]interface{}{"maximumFractionDigits": 2, "useGrouping": false}, "3.14"},
		{"percent style", 0.85, map[string]interface{}{"style": "percent"}, "85%"},
		{"unit style", 5.0, map[string]interface{}{"style": "unit", "unit": "kilometer", "maximumFractionDigits": 0}, "5 km"},
		{"unit long display", 5.0, map[string]interface{}{"style": "unit", "unit": "hour", "unitDisplay": "long", "maximumFractionDigits": 0}, "5 hours"},
		{"sign always", 3.0, map[string]interface{}{"signDisplay": "always", "useGrouping": false, "maximumFractionDigits": 0}, "+3"},
		{"sign never", -3.0, map[string]interface{}{"signDisplay": "never", "useGrouping": false, "maximumFractionDigits": 0}, "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nv := NewNumberValue(tt.value, "en", "$n", tt.options)
			got, err := nv.ToString()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumberValueCurrency(t *testing.T) {
	nv := NewNumberValue(29.99, "en", "$price", map[string]interface{}{
		"style":    "currency",
		"currency": "USD",
	})
	got, err := nv.ToString()
	require.NoError(t, err)
	assert.Equal(t, "$29.99", got)
}

func TestNumberValueSelection(t *testing.T) {
	t.Run("exact =N key wins over category", func(t *testing.T) {
		nv := NewNumberValue(1, "en", "$n", nil)
		keys, err := nv.SelectKeys([]string{"=1", "one", "other"})
		require.NoError(t, err)
		assert.Equal(t, []string{"=1"}, keys)
	})

	t.Run("digit string beats plural category", func(t *testing.T) {
		nv := NewNumberValue(1, "en", "$n", nil)
		keys, err := nv.SelectKeys([]string{"1", "one", "other"})
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, keys)
	})

	t.Run("cardinal categories", func(t *testing.T) {
		one := NewNumberValue(1, "en", "$n", nil)
		keys, err := one.SelectKeys([]string{"one", "other"})
		require.NoError(t, err)
		assert.Equal(t, []string{"one"}, keys)

		many := NewNumberValue(7, "en", "$n", nil)
		keys, err = many.SelectKeys([]string{"one", "other"})
		require.NoError(t, err)
		assert.Equal(t, []string{"other"}, keys)
	})

	t.Run("ordinal categories", func(t *testing.T) {
		opts := map[string]interface{}{"select": "ordinal"}
		for n, want := range map[int]string{1: "one", 2: "two", 3: "few", 4: "other", 11: "other", 22: "two"} {
			nv := NewNumberValue(n, "en", "$n", opts)
			keys, err := nv.SelectKeys([]string{"one", "two", "few", "other"})
			require.NoError(t, err)
			require.NotEmpty(t, keys, "n=%d", n)
			assert.Equal(t, want, keys[0], "n=%d", n)
		}
	})

	t.Run("select=exact suppresses categories", func(t *testing.T) {
		nv := NewNumberValue(1, "en", "$n", map[string]interface{}{"select": "exact"})
		keys, err := nv.SelectKeys([]string{"one", "other"})
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("percent selects on scaled value", func(t *testing.T) {
		nv := NewNumberValue(0.85, "en", "$p", map[string]interface{}{"style": "percent"})
		keys, err := nv.SelectKeys([]string{"85", "other"})
		require.NoError(t, err)
		assert.Equal(t, []string{"85"}, keys)
	})

	t.Run("disabled selection errors", func(t *testing.T) {
		nv := NewNumberValueWithSelection(1, "en", "$n", "auto", nil, false)
		_, err := nv.SelectKeys([]string{"one"})
		assert.ErrorIs(t, err, ErrNumberNotSelectable)
	})
}

func TestNumberValueParts(t *testing.T) {
	nv := NewNumberValue(1234.5, "en", "$n", map[string]interface{}{"minimumFractionDigits": 1})
	parts, err := nv.ToParts()
	require.NoError(t, err)
	require.Len(t, parts, 1)

	np, ok := parts[0].(*NumberPart)
	require.True(t, ok)
	assert.Equal(t, "number", np.Type())

	var kinds []string
	for _, sub := range np.Parts() {
		kinds = append(kinds, sub.Type())
	}
	assert.Equal(t, []string{"integer", "decimal", "fraction"}, kinds)
}

func TestFallbackValue(t *testing.T) {
	fv := NewFallbackValue("$missing", "en")

	s, err := fv.ToString()
	require.NoError(t, err)
	assert.Equal(t, "{$missing}", s)

	parts, err := fv.ToParts()
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "fallback", parts[0].Type())
	assert.Equal(t, "{$missing}", parts[0].Value())

	keys, err := fv.SelectKeys([]string{"one", "*"})
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestUnknownValue(t *testing.T) {
	uv := NewUnknownValue("$obj", []int{1, 2}, "en")

	s, err := uv.ToString()
	require.NoError(t, err)
	assert.Equal(t, "[1 2]", s)

	v, err := uv.ValueOf()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, v)

	parts, err := uv.ToParts()
	require.NoError(t, err)
	assert.Equal(t, "unknown", parts[0].Type())
}

func TestDateTimeValue(t *testing.T) {
	moment := time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC)

	t.Run("date style", func(t *testing.T) {
		dv := NewDateTimeValue(moment, "en", "$when", map[string]any{"dateStyle": "medium"})
		s, err := dv.ToString()
		require.NoError(t, err)
		assert.Equal(t, "Jan 2, 2006", s)
	})

	t.Run("time style", func(t *testing.T) {
		dv := NewDateTimeValue(moment, "en", "$when", map[string]any{"timeStyle": "short"})
		s, err := dv.ToString()
		require.NoError(t, err)
		assert.Equal(t, "3:04 PM", s)
	})

	t.Run("parts carry the rendered value", func(t *testing.T) {
		dv := NewDateTimeValue(moment, "en", "$when", map[string]any{"dateStyle": "short"})
		parts, err := dv.ToParts()
		require.NoError(t, err)
		require.Len(t, parts, 1)
		assert.Equal(t, "datetime", parts[0].Type())
		assert.Equal(t, "1/2/06", parts[0].Value())
	})

	t.Run("datetimes do not select", func(t *testing.T) {
		dv := NewDateTimeValue(moment, "en", "$when", nil)
		keys, err := dv.SelectKeys([]string{"x"})
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "true", ToString(true))
	assert.Equal(t, "42", ToString(42))
	assert.Equal(t, "1.5", ToString(1.5))

	assert.Equal(t, 0.0, ToNumber(nil))
	assert.Equal(t, 42.0, ToNumber(42))
	assert.Equal(t, 1.5, ToNumber("1.5"))
	assert.Equal(t, 1.0, ToNumber(true))
	assert.Equal(t, 0.0, ToNumber("not a number"))
}
