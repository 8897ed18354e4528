// Package messageformat provides functional options for MessageFormat configuration
package messageformat

import (
	"github.com/mf2compile/messageformat/pkg/functions"
)

// Option represents a functional option for MessageFormat constructor
type Option func(*MessageFormatOptions)

// FormatOption represents a functional option for Format methods
type FormatOption func(*FormatOptions)

// FormatOptions represents options for Format and FormatToParts methods
type FormatOptions struct {
	OnError func(error)
}

// WithBidiIsolation sets the bidi isolation strategy
func WithBidiIsolation(strategy string) Option {
	return func(opts *MessageFormatOptions) {
		opts.BidiIsolation = BidiIsolation(strategy)
	}
}

// WithDir sets the message's base direction
func WithDir(direction string) Option {
	return func(opts *MessageFormatOptions) {
		opts.Dir = Direction(direction)
	}
}

// WithLocaleMatcher sets the locale matching algorithm
func WithLocaleMatcher(matcher string) Option {
	return func(opts *MessageFormatOptions) {
		opts.LocaleMatcher = LocaleMatcher(matcher)
	}
}

// WithFunction adds a single custom function
func WithFunction(name string, fn functions.MessageFunction) Option {
	return func(opts *MessageFormatOptions) {
		if opts.Functions == nil {
			opts.Functions = make(map[string]functions.MessageFunction)
		}
		opts.Functions[name] = fn
	}
}

// WithFunctions adds multiple custom functions
func WithFunctions(funcs map[string]functions.MessageFunction) Option {
	return func(opts *MessageFormatOptions) {
		if opts.Functions == nil {
			opts.Functions = make(map[string]functions.MessageFunction)
		}
		for name, fn := range funcs {
			opts.Functions[name] = fn
		}
	}
}

// WithErrorHandler sets an error handler for Format methods
func WithErrorHandler(handler func(error)) FormatOption {
	return func(opts *FormatOptions) {
		opts.OnError = handler
	}
}

// applyOptions applies functional options to MessageFormatOptions
func applyOptions(options ...Option) *MessageFormatOptions {
	opts := &MessageFormatOptions{}
	for _, option := range options {
		option(opts)
	}
	return opts
}

// applyFormatOptions applies functional options to FormatOptions
func applyFormatOptions(options ...FormatOption) *FormatOptions {
	opts := &FormatOptions{}
	for _, option := range options {
		option(opts)
	}
	return opts
}
