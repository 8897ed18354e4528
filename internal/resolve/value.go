package resolve

import (
	"fmt"
	"strings"

	"github.com/mf2compile/messageformat/pkg/datamodel"
)

// resolveValue resolves an operand or option node to its runtime value: a
// literal to its string, a variable reference through the lookup chain.
func resolveValue(ctx *Context, value datamodel.Node) (interface{}, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *datamodel.Literal:
		return v.Value(), nil
	case *datamodel.VariableRef:
		return lookupVariableRef(ctx, v), nil
	}

	log.Warn("unsupported value type", "type", value.Type())
	return nil, fmt.Errorf("unsupported value: %s", value.Type())
}

// getValueSource renders a node's fallback surface form: `|literal|` with
// its escapes restored, or `$name`.
func getValueSource(value datamodel.Node) string {
	switch v := value.(type) {
	case *datamodel.Literal:
		quoted := strings.ReplaceAll(v.Value(), `\`, `\\`)
		quoted = strings.ReplaceAll(quoted, "|", `\|`)
		return "|" + quoted + "|"
	case *datamodel.VariableRef:
		return "$" + v.Name()
	}
	return ""
}
