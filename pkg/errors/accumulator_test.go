package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulatorOrdering(t *testing.T) {
	t.Run("static errors keep first-seen order", func(t *testing.T) {
		acc := NewAccumulator()
		first := NewMessageSyntaxError(ErrorTypeParseError, 3, nil, nil)
		second := NewMessageSyntaxError(ErrorTypeDuplicateOptionName, 7, nil, nil)

		acc.AddStatic(first)
		acc.AddStatic(second)

		require.Len(t, acc.Static, 2)
		assert.Same(t, first, acc.Static[0])
		assert.Same(t, second, acc.Static[1])
	})

	t.Run("nil errors are ignored", func(t *testing.T) {
		acc := NewAccumulator()
		acc.AddStatic(nil)
		acc.AddDynamic(nil)
		assert.Empty(t, acc.Static)
		assert.Empty(t, acc.Dynamic)
	})

	t.Run("dynamic errors reset per call", func(t *testing.T) {
		acc := NewAccumulator()
		acc.AddDynamic(NewMessageResolutionError(ErrorTypeUnresolvedVariable, "missing", "$x"))
		require.Len(t, acc.Dynamic, 1)
		assert.True(t, acc.HasDynamic(CodeUnresolvedVariable))

		acc.ResetDynamic()
		assert.Empty(t, acc.Dynamic)
		assert.False(t, acc.HasDynamic(CodeUnresolvedVariable))
	})
}

func TestAccumulatorFirstError(t *testing.T) {
	t.Run("static wins over dynamic", func(t *testing.T) {
		acc := NewAccumulator()
		dynamic := NewMessageResolutionError(ErrorTypeUnknownFunction, "unknown", ":nope")
		static := NewMessageSyntaxError(ErrorTypeKeyMismatch, 0, nil, nil)

		acc.AddDynamic(dynamic)
		acc.AddStatic(static)

		assert.Same(t, static, acc.FirstError().(*MessageSyntaxError))
	})

	t.Run("dynamic when no static", func(t *testing.T) {
		acc := NewAccumulator()
		dynamic := NewMessageResolutionError(ErrorTypeBadOperand, "bad", "$x")
		acc.AddDynamic(dynamic)
		assert.Same(t, dynamic, acc.FirstError().(*MessageResolutionError))
	})

	t.Run("nil when empty", func(t *testing.T) {
		assert.Nil(t, NewAccumulator().FirstError())
	})
}

func TestAccumulatorCheckErrors(t *testing.T) {
	source := "line one\nline two {"

	acc := NewAccumulator()
	acc.AddStatic(NewMessageSyntaxError(ErrorTypeParseError, 18, nil, nil))

	var out ParseError
	require.True(t, acc.CheckErrors(source, &out))
	assert.Equal(t, 18, out.Offset)
	assert.Equal(t, 1, out.Line)
}

func TestLineOf(t *testing.T) {
	tests := []struct {
		name   string
		source string
		offset int
		want   int
	}{
		{"no newlines", "hello", 3, 0},
		{"offset before first newline", "ab\ncd", 1, 0},
		{"offset after first newline", "ab\ncd", 4, 1},
		{"offset past end is clamped", "ab\ncd", 99, 1},
		{"negative offset", "ab\ncd", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineOf(tt.source, tt.offset))
		})
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"parse error", NewMessageSyntaxError(ErrorTypeParseError, 0, nil, nil), CodeSyntax},
		{"duplicate option", NewMessageSyntaxError(ErrorTypeDuplicateOptionName, 0, nil, nil), CodeDuplicateOptionName},
		{"key mismatch", NewMessageSyntaxError(ErrorTypeKeyMismatch, 0, nil, nil), CodeVariantKeyMismatch},
		{"missing fallback", NewMessageSyntaxError(ErrorTypeMissingFallback, 0, nil, nil), CodeNonexhaustivePattern},
		{"missing selector annotation", NewMessageSyntaxError(ErrorTypeMissingSelectorAnnotation, 0, nil, nil), CodeMissingSelectorAnnotation},
		{"unresolved variable", NewMessageResolutionError(ErrorTypeUnresolvedVariable, "m", "$x"), CodeUnresolvedVariable},
		{"unknown function", NewMessageResolutionError(ErrorTypeUnknownFunction, "m", ":f"), CodeUnknownFunction},
		{"bad operand", NewMessageResolutionError(ErrorTypeBadOperand, "m", "$x"), CodeFormattingError},
		{"unsupported operation", NewMessageResolutionError(ErrorTypeUnsupportedOperation, "m", "$x"), CodeReserved},
		{"bad selector", NewMessageSelectionError(ErrorTypeBadSelector, nil), CodeSelectorError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}

	t.Run("foreign error maps to empty code", func(t *testing.T) {
		assert.Equal(t, Code(""), CodeOf(assert.AnError))
	})
}

func TestCodeIsStatic(t *testing.T) {
	staticCodes := []Code{
		CodeSyntax, CodeDuplicateOptionName, CodeVariantKeyMismatch,
		CodeNonexhaustivePattern, CodeMissingSelectorAnnotation,
	}
	for _, code := range staticCodes {
		assert.True(t, code.IsStatic(), "expected %s to be static", code)
	}

	dynamicCodes := []Code{
		CodeUnknownFunction, CodeUnresolvedVariable,
		CodeFormattingError, CodeSelectorError, CodeReserved,
	}
	for _, code := range dynamicCodes {
		assert.False(t, code.IsStatic(), "expected %s to be dynamic", code)
	}
}
