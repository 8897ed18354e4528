// Package errors defines the error taxonomy of the MessageFormat engine:
// syntax and data-model errors raised at compile time, resolution and
// selection errors raised per format call, plus the accumulator and stable
// error codes layered on top (accumulator.go, codes.go).
package errors

import (
	"fmt"
	"strings"
)

// Fine-grained error types. Every error this package constructs carries one
// of these strings; codes.go collapses them onto the closed external Code
// set.
const (
	// syntax
	ErrorTypeEmptyToken                = "empty-token"
	ErrorTypeBadEscape                 = "bad-escape"
	ErrorTypeBadInputExpression        = "bad-input-expression"
	ErrorTypeDuplicateAttribute        = "duplicate-attribute"
	ErrorTypeDuplicateDeclaration      = "duplicate-declaration"
	ErrorTypeDuplicateOptionName       = "duplicate-option-name"
	ErrorTypeDuplicateVariant          = "duplicate-variant"
	ErrorTypeExtraContent              = "extra-content"
	ErrorTypeKeyMismatch               = "key-mismatch"
	ErrorTypeParseError                = "parse-error"
	ErrorTypeMissingFallback           = "missing-fallback"
	ErrorTypeMissingSelectorAnnotation = "missing-selector-annotation"
	ErrorTypeMissingSyntax             = "missing-syntax"

	// resolution
	ErrorTypeBadFunctionResult    = "bad-function-result"
	ErrorTypeBadOperand           = "bad-operand"
	ErrorTypeBadOption            = "bad-option"
	ErrorTypeUnresolvedVariable   = "unresolved-variable"
	ErrorTypeUnsupportedOperation = "unsupported-operation"

	// selection
	ErrorTypeBadSelector = "bad-selector"
	ErrorTypeNoMatch     = "no-match"

	// function dispatch
	ErrorTypeNotFormattable  = "not-formattable"
	ErrorTypeUnknownFunction = "unknown-function"
)

// MessageError is the root of the error hierarchy: a type string from the
// constants above plus a human-readable message. The concrete subtypes add
// position or source information.
type MessageError struct {
	Type    string
	Message string
}

func (e *MessageError) Error() string { return e.Message }

// ErrorType returns the fine-grained type string; codes.go keys off it.
func (e *MessageError) ErrorType() string { return e.Type }

// Is matches two message errors by type, so errors.Is can test for a kind
// without holding the identical instance.
func (e *MessageError) Is(target error) bool {
	t, ok := target.(*MessageError)
	return ok && e.Type == t.Type
}

// NewMessageError builds a bare message error. Prefer the typed
// constructors below; this exists for custom function authors.
func NewMessageError(errorType, message string) *MessageError {
	return &MessageError{Type: errorType, Message: message}
}

// MessageSyntaxError is a compile-time error with a character position in
// the source text. Start/End are byte offsets; End defaults to Start+1.
type MessageSyntaxError struct {
	*MessageError
	Start int
	End   int
}

// NewMessageSyntaxError builds a syntax error at start. A non-nil expected
// names the token the parser was looking for; a non-nil end overrides the
// one-character default span.
func NewMessageSyntaxError(errorType string, start int, end *int, expected *string) *MessageSyntaxError {
	msg := errorType
	if expected != nil {
		msg = "missing " + *expected
	}
	if start >= 0 {
		msg = fmt.Sprintf("%s at %d", msg, start)
	}

	span := start + 1
	if end != nil {
		span = *end
	}

	return &MessageSyntaxError{
		MessageError: NewMessageError(errorType, msg),
		Start:        start,
		End:          span,
	}
}

// NewCustomSyntaxError builds a syntax error whose message is not derived
// from a type constant — invalid constructor arguments and similar
// API-misuse cases.
func NewCustomSyntaxError(message string) *MessageSyntaxError {
	return &MessageSyntaxError{
		MessageError: NewMessageError(ErrorTypeParseError, message),
		Start:        0,
		End:          1,
	}
}

// Node is the minimal view of a data-model node this package needs to
// position an error; declared here rather than importing pkg/datamodel,
// which itself imports this package.
type Node interface {
	GetPosition() (start, end int)
}

// MessageDataModelError is a static error found by validation rather than
// parsing: duplicate declarations or variants, key-count mismatches,
// missing fallback variants, missing selector annotations.
type MessageDataModelError struct {
	*MessageSyntaxError
}

// NewMessageDataModelError positions the error at node's source span, or
// at -1 when the node carries no CST backing.
func NewMessageDataModelError(errorType string, node Node) *MessageDataModelError {
	start, end := -1, -1
	if node != nil {
		start, end = node.GetPosition()
	}
	return &MessageDataModelError{
		MessageSyntaxError: NewMessageSyntaxError(errorType, start, &end, nil),
	}
}

// MessageResolutionError is a per-format-call error raised while resolving
// an operand, option, or function reference. Source holds the fallback
// surface form of the failing expression ("$name", ":fn", "|lit|").
type MessageResolutionError struct {
	*MessageError
	Source string
}

func NewMessageResolutionError(errorType, message, source string) *MessageResolutionError {
	if !strings.Contains(message, errorType) {
		message = errorType + ": " + message
	}
	return &MessageResolutionError{
		MessageError: NewMessageError(errorType, message),
		Source:       source,
	}
}

// MessageSelectionError is raised during .match variant ranking: a value
// that cannot select, or no variant matching at all.
type MessageSelectionError struct {
	*MessageError
	Cause error
}

func NewMessageSelectionError(errorType string, cause error) *MessageSelectionError {
	return &MessageSelectionError{
		MessageError: NewMessageError(errorType, "Selection error: "+errorType),
		Cause:        cause,
	}
}

func (e *MessageSelectionError) Unwrap() error { return e.Cause }

// MessageFunctionError is the error form custom functions raise; Source
// defaults to U+FFFD until the engine attributes it to an expression.
type MessageFunctionError struct {
	*MessageError
	Source string
	Cause  error
}

func NewMessageFunctionError(errorType, message string) *MessageFunctionError {
	return &MessageFunctionError{
		MessageError: NewMessageError(errorType, message),
		Source:       "�",
	}
}

func (e *MessageFunctionError) SetSource(source string) { e.Source = source }
func (e *MessageFunctionError) SetCause(cause error)    { e.Cause = cause }
func (e *MessageFunctionError) Unwrap() error           { return e.Cause }

// Shorthand constructors for the errors the evaluator raises on its hot
// paths.

func NewUnknownFunctionError(functionName, source string) *MessageResolutionError {
	return NewMessageResolutionError(ErrorTypeUnknownFunction,
		fmt.Sprintf("unknown function :%s", functionName), source)
}

func NewUnresolvedVariableError(variableName, source string) *MessageResolutionError {
	return NewMessageResolutionError(ErrorTypeUnresolvedVariable,
		fmt.Sprintf("unresolved variable $%s", variableName), source)
}

func NewBadOperandError(message, source string) *MessageResolutionError {
	return NewMessageResolutionError(ErrorTypeBadOperand, message, source)
}

func NewBadOptionError(message, source string) *MessageResolutionError {
	return NewMessageResolutionError(ErrorTypeBadOption, message, source)
}

func NewBadFunctionResultError(message, source string) *MessageResolutionError {
	return NewMessageResolutionError(ErrorTypeBadFunctionResult, message, source)
}

func NewBadSelectorError(cause error) *MessageSelectionError {
	return NewMessageSelectionError(ErrorTypeBadSelector, cause)
}

func NewNoMatchError(cause error) *MessageSelectionError {
	return NewMessageSelectionError(ErrorTypeNoMatch, cause)
}

func NewDuplicateDeclarationError(node Node) *MessageDataModelError {
	return NewMessageDataModelError(ErrorTypeDuplicateDeclaration, node)
}

func NewMissingFallbackError(node Node) *MessageDataModelError {
	return NewMessageDataModelError(ErrorTypeMissingFallback, node)
}
