package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetOutputAndGlobalLogging(t *testing.T) {
	defer SetLogger(GetLogger())

	var buf bytes.Buffer
	SetOutput(&buf)

	Info("formatting started", "locale", "en")
	out := buf.String()
	assert.Contains(t, out, "formatting started")
	assert.Contains(t, out, "locale=en")
}

func TestComponentTagsRecords(t *testing.T) {
	defer SetLogger(GetLogger())

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	Component("resolve").Warn("unknown function")
	assert.Contains(t, buf.String(), "component=resolve")
}

func TestShorthandsHonourHandlerLevel(t *testing.T) {
	defer SetLogger(GetLogger())

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	Debug("invisible")
	Warn("visible")

	out := buf.String()
	assert.False(t, strings.Contains(out, "invisible"))
	assert.Contains(t, out, "visible")
}
