package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var (
	_ Logger = (*SlogAdapter)(nil)
	_ Logger = (*CoreLogger)(nil)
	_ Logger = (*ZapAdapter)(nil)
	_ Logger = NoOpLogger{}
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{" WARN ", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"info", LogLevelInfo},
		{"bogus", LogLevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestCoreLogger_JSONAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: LogLevelDebug, Format: "json", Output: &buf})
	l.WithComponent("undo").WithContext("registry", "r1").Debug("stack.push", "label", "set a")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "stack.push", entry["msg"])
	assert.Equal(t, "undo", entry["component"])
	assert.Equal(t, "r1", entry["registry"])
	assert.Equal(t, "set a", entry["label"])
}

func TestCoreLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: LogLevelWarn, Format: "text", Output: &buf})
	l.Debug("hidden")
	l.Info("hidden")
	assert.Empty(t, buf.String())
	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestCoreLogger_WithIsolation(t *testing.T) {
	base := NewSlogLogger(LogLevelInfo, "json", false)
	child := base.WithContext("k", "v")
	assert.Empty(t, base.context)
	assert.Equal(t, "v", child.context["k"])
}

func TestCoreLogger_LogCommand(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: LogLevelDebug, Format: "json", Output: &buf})
	l.LogCommand("undo", "a changed", time.Millisecond, errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Command failed", entry["msg"])
	assert.Equal(t, false, entry["success"])
	assert.Equal(t, "boom", entry["error"])
}

func TestZapAdapter_ForwardsKeyValues(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	z := NewZapAdapter(zap.New(core))
	z.Info("script.append", "entry", "a_0.value = 1")

	require.Equal(t, 1, logs.Len())
	e := logs.All()[0]
	assert.Equal(t, "script.append", e.Message)
	assert.Equal(t, "a_0.value = 1", e.ContextMap()["entry"])
}

func TestZapAdapter_NilLogger(t *testing.T) {
	z := NewZapAdapter(nil)
	assert.NotPanics(t, func() { z.Error("ignored", "k", 1) })
}
