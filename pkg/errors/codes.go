package errors

// Code is one of the stable, external error identifiers a MessageFormat
// engine reports to callers. Internal error types carry a much finer-grained
// Type (see the ErrorType* constants); Code collapses them onto the closed
// set a caller is expected to switch on.
type Code string

const (
	CodeSyntax                    Code = "SYNTAX"
	CodeDuplicateOptionName       Code = "DUPLICATE_OPTION_NAME"
	CodeVariantKeyMismatch        Code = "VARIANT_KEY_MISMATCH"
	CodeNonexhaustivePattern      Code = "NONEXHAUSTIVE_PATTERN"
	CodeMissingSelectorAnnotation Code = "MISSING_SELECTOR_ANNOTATION"
	CodeUnknownFunction           Code = "UNKNOWN_FUNCTION"
	CodeUnresolvedVariable        Code = "UNRESOLVED_VARIABLE"
	CodeFormattingError           Code = "FORMATTING_ERROR"
	CodeSelectorError              Code = "SELECTOR_ERROR"
	CodeReserved                  Code = "RESERVED"
)

// codeForType maps the fine-grained internal error Type strings (as set by
// MessageSyntaxError/MessageDataModelError/MessageResolutionError/
// MessageSelectionError/MessageFunctionError constructors) onto the closed
// external Code set.
var codeForType = map[string]Code{
	// static / syntax
	ErrorTypeParseError:                CodeSyntax,
	ErrorTypeEmptyToken:                CodeSyntax,
	ErrorTypeBadEscape:                 CodeSyntax,
	ErrorTypeBadInputExpression:        CodeSyntax,
	ErrorTypeExtraContent:              CodeSyntax,
	ErrorTypeMissingSyntax:             CodeSyntax,
	ErrorTypeDuplicateAttribute:        CodeSyntax,
	ErrorTypeDuplicateDeclaration:      CodeSyntax,
	ErrorTypeDuplicateVariant:          CodeSyntax,
	ErrorTypeDuplicateOptionName:       CodeDuplicateOptionName,
	ErrorTypeKeyMismatch:               CodeVariantKeyMismatch,
	ErrorTypeMissingSelectorAnnotation: CodeMissingSelectorAnnotation,
	// A message with no variant whose keys are all catch-all (`*`) cannot
	// guarantee a match for every input — NONEXHAUSTIVE_PATTERN.
	ErrorTypeMissingFallback: CodeNonexhaustivePattern,

	// dynamic
	ErrorTypeUnresolvedVariable:   CodeUnresolvedVariable,
	ErrorTypeUnknownFunction:      CodeUnknownFunction,
	ErrorTypeBadOperand:           CodeFormattingError,
	ErrorTypeBadOption:            CodeFormattingError,
	ErrorTypeBadFunctionResult:    CodeFormattingError,
	ErrorTypeNotFormattable:       CodeFormattingError,
	ErrorTypeUnsupportedOperation: CodeReserved,
	ErrorTypeBadSelector:          CodeSelectorError,
	ErrorTypeNoMatch:              CodeSelectorError,
}

// typed is implemented by every error type this package defines.
type typed interface {
	ErrorType() string
}

// CodeOf maps any error raised by this package to its external Code. Errors
// not produced by this package (or not recognized) map to the empty Code.
func CodeOf(err error) Code {
	t, ok := err.(typed)
	if !ok {
		return ""
	}
	if code, ok := codeForType[t.ErrorType()]; ok {
		return code
	}
	return ""
}

// IsStatic reports whether Code belongs to the static (compile-time)
// taxonomy.
// RESERVED is classified dynamic here rather than static: reserved syntax
// parses cleanly (it is valid CST/AST), so the error can only be raised
// once evaluation reaches that expression.
func (c Code) IsStatic() bool {
	switch c {
	case CodeSyntax, CodeDuplicateOptionName, CodeVariantKeyMismatch,
		CodeNonexhaustivePattern, CodeMissingSelectorAnnotation:
		return true
	default:
		return false
	}
}
