package functions

// FormatterCache memoizes one instantiated Formatter per function name for
// the lifetime of a single compiled message. The first call under a given
// name builds the formatter via its factory; every later call for that
// name, across any number of format() calls on the same compiled message,
// reuses it. Selectors are deliberately absent: a fresh selector is built
// per `match` since a selector may be stateful with respect to the
// candidate keys and operand it just saw.
//
// A FormatterCache is owned by exactly one compiled message (one
// MessageFormat) and must not be shared across instances — doing so would
// break the single-threaded, non-concurrent-formatting model those
// instances assume.
type FormatterCache struct {
	locale     string
	formatters map[string]Formatter
}

// NewFormatterCache creates an empty cache for a compiled message bound to
// locale (the primary locale a Formatter is instantiated against).
func NewFormatterCache(locale string) *FormatterCache {
	return &FormatterCache{locale: locale, formatters: make(map[string]Formatter)}
}

// GetOrCreate returns the cached Formatter for name, building and storing
// one from factory on first use.
func (c *FormatterCache) GetOrCreate(name string, factory FormatterFactory) Formatter {
	if f, ok := c.formatters[name]; ok {
		return f
	}
	f := factory.CreateFormatter(c.locale)
	c.formatters[name] = f
	return f
}
