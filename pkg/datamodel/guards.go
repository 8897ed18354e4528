package datamodel

// Type guards over the data model's interface-typed positions. Each is a
// plain type check; the message-level guards also accept the interface
// form so callers holding a Message needn't assert first.

func IsCatchallKey(key any) bool {
	_, ok := key.(*CatchallKey)
	return ok
}

func IsExpression(part any) bool {
	_, ok := part.(*Expression)
	return ok
}

func IsFunctionRef(part any) bool {
	_, ok := part.(*FunctionRef)
	return ok
}

func IsLiteral(part any) bool {
	_, ok := part.(*Literal)
	return ok
}

func IsMarkup(part any) bool {
	_, ok := part.(*Markup)
	return ok
}

func IsVariableRef(part any) bool {
	_, ok := part.(*VariableRef)
	return ok
}

func IsBooleanAttribute(attr any) bool {
	_, ok := attr.(*BooleanAttribute)
	return ok
}

func IsVariableRefExpression(expr any) bool {
	_, ok := expr.(*VariableRefExpression)
	return ok
}

func IsMessage(msg any) bool {
	m, ok := msg.(Message)
	return ok && (m.Type() == "message" || m.Type() == "select")
}

func IsPatternMessage(msg Message) bool {
	return msg != nil && msg.Type() == "message"
}

func IsSelectMessage(msg Message) bool {
	return msg != nil && msg.Type() == "select"
}

func IsInputDeclaration(decl Declaration) bool {
	return decl != nil && decl.Type() == "input"
}

func IsLocalDeclaration(decl Declaration) bool {
	return decl != nil && decl.Type() == "local"
}

func IsTextElement(elem PatternElement) bool {
	return elem != nil && elem.Type() == "text"
}

func IsVariantKey(key any) bool {
	return IsLiteral(key) || IsCatchallKey(key)
}
