// Package logger holds the process-wide slog logger the MessageFormat
// pipeline reports through. Resolution and selection log through
// Component loggers taken from it when their packages initialize, so a
// later SetLogger does not reach them; parsing does not log. A
// MessageFormat instance logs its own format errors through
// MessageFormatOptions.Logger when set, else through the global logger
// current at construction.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// global is the package logger; text to stderr at Info until reconfigured.
var global = newText(os.Stderr, slog.LevelInfo)

func newText(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Component returns a logger tagging every record with a "component"
// attribute, so resolver and selector output can be told apart
// without each call site repeating it.
func Component(name string) *slog.Logger {
	return global.With("component", name)
}

// SetLogger replaces the global logger outright.
func SetLogger(logger *slog.Logger) { global = logger }

// GetLogger returns the current global logger.
func GetLogger() *slog.Logger { return global }

// SetLevel reinstalls the default text handler at the given level.
func SetLevel(level slog.Level) { global = newText(os.Stderr, level) }

// SetJSON switches the global logger to JSON output.
func SetJSON() {
	global = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// SetOutput redirects the default text handler to w.
func SetOutput(w io.Writer) { global = newText(w, slog.LevelInfo) }

// Package-level shorthands for the global logger.

func Debug(msg string, args ...any) { global.Debug(msg, args...) }
func Info(msg string, args ...any)  { global.Info(msg, args...) }
func Warn(msg string, args ...any)  { global.Warn(msg, args...) }
func Error(msg string, args ...any) { global.Error(msg, args...) }
