package resolve

import (
	"fmt"

	"github.com/mf2compile/messageformat/pkg/datamodel"
	"github.com/mf2compile/messageformat/pkg/errors"
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

// FormatMarkup renders a markup element to its structural part: kind,
// name, and resolved options. Markup carries no text of its own, and the
// engine-level u:dir option is rejected here — direction belongs to
// placeholders, not markup.
func FormatMarkup(ctx *Context, markup *datamodel.Markup) messagevalue.MessagePart {
	resolved := make(map[string]interface{}, len(markup.Options()))

	for name, value := range markup.Options() {
		if name == "u:dir" {
			if ctx.OnError != nil {
				ctx.OnError(errors.NewBadOptionError(
					fmt.Sprintf("The option %s is not valid for markup", name),
					markupOptionSource(value)))
			}
			continue
		}
		resolved[name] = resolveMarkupOption(ctx, value)
	}

	return messagevalue.NewMarkupPart(markup.Kind(), markup.Name(), "", resolved)
}

func markupOptionSource(value interface{}) string {
	if node, ok := value.(datamodel.Node); ok {
		return getValueSource(node)
	}
	return fmt.Sprintf("%v", value)
}

// resolveMarkupOption resolves one markup option to a plain value; a
// resolution failure degrades the option to nil after reporting.
func resolveMarkupOption(ctx *Context, value interface{}) interface{} {
	if node, ok := value.(datamodel.Node); ok {
		inner, err := resolveValue(ctx, node)
		if err != nil {
			log.Warn("failed to resolve value in markup", "error", err)
			if ctx.OnError != nil {
				ctx.OnError(errors.NewMessageResolutionError(
					errors.ErrorTypeUnsupportedOperation, err.Error(), getValueSource(node)))
			}
			return nil
		}
		value = inner
	}

	if mv, ok := value.(messagevalue.MessageValue); ok {
		if inner, err := mv.ValueOf(); err == nil && inner != nil {
			return inner
		}
	}
	return value
}
