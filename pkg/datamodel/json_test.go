package datamodel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// astComparer lets cmp.Diff walk the data model's unexported fields so
// round-trip tests compare structure, not just stringified source. Nil and
// empty option/attribute maps are interchangeable on the wire.
var astComparer = cmp.Options{
	cmp.AllowUnexported(
		PatternMessage{}, SelectMessage{},
		InputDeclaration{}, LocalDeclaration{}, VariableRefExpression{},
		Variant{}, CatchallKey{},
		TextElement{}, Expression{}, Markup{},
		Literal{}, VariableRef{}, FunctionRef{},
		BooleanAttribute{},
	),
	cmpopts.EquateEmpty(),
}

func TestMarshalUnmarshalMessage_PatternMessage(t *testing.T) {
	msg := NewPatternMessage(
		[]Declaration{
			NewInputDeclaration(
				"count",
				NewVariableRefExpression(NewVariableRef("count"), NewFunctionRef("number", nil), nil),
			),
		},
		NewPattern([]PatternElement{
			NewTextElement("Hello "),
			NewExpression(NewVariableRef("name"), nil, nil),
			NewTextElement(", you have "),
			NewExpression(NewVariableRef("count"), NewFunctionRef("number", nil), nil),
			NewTextElement(" messages."),
		}),
		"",
	)

	data, err := MarshalMessage(msg)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	restored, err := UnmarshalMessage(data)
	require.NoError(t, err)
	if diff := cmp.Diff(msg, restored, astComparer); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalUnmarshalMessage_SelectMessage(t *testing.T) {
	msg := NewSelectMessage(
		[]Declaration{
			NewInputDeclaration(
				"count",
				NewVariableRefExpression(NewVariableRef("count"), NewFunctionRef("number", nil), nil),
			),
		},
		[]VariableRef{*NewVariableRef("count")},
		[]Variant{
			*NewVariant(
				[]VariantKey{NewLiteral("0")},
				NewPattern([]PatternElement{NewTextElement("no messages")}),
			),
			*NewVariant(
				[]VariantKey{NewLiteral("one")},
				NewPattern([]PatternElement{NewTextElement("one message")}),
			),
			*NewVariant(
				[]VariantKey{NewCatchallKey("*")},
				NewPattern([]PatternElement{
					NewExpression(NewVariableRef("count"), nil, nil),
					NewTextElement(" messages"),
				}),
			),
		},
		"",
	)

	data, err := MarshalMessage(msg)
	require.NoError(t, err)

	restored, err := UnmarshalMessage(data)
	require.NoError(t, err)
	if diff := cmp.Diff(msg, restored, astComparer); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}

	selectMsg, ok := restored.(*SelectMessage)
	require.True(t, ok)
	assert.Len(t, selectMsg.Selectors(), 1)
	assert.Len(t, selectMsg.Variants(), 3)
}

func TestMarshalUnmarshalMessage_MarkupAndOptions(t *testing.T) {
	msg := NewPatternMessage(
		nil,
		NewPattern([]PatternElement{
			NewMarkup("open", "b", nil, Attributes{"emphasis": NewBooleanAttribute()}),
			NewExpression(
				NewVariableRef("name"),
				NewFunctionRef("string", Options{"case": NewLiteral("upper")}),
				nil,
			),
			NewMarkup("close", "b", nil, nil),
		}),
		"a markup round-trip",
	)

	data, err := MarshalMessage(msg)
	require.NoError(t, err)

	restored, err := UnmarshalMessage(data)
	require.NoError(t, err)
	if diff := cmp.Diff(msg, restored, astComparer); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, msg.Comment(), restored.Comment())
}

func TestUnmarshalMessage_InvalidJSON(t *testing.T) {
	_, err := UnmarshalMessage([]byte("not json"))
	assert.Error(t, err)
}
