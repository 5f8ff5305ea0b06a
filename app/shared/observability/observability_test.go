package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionLogsJSON(t *testing.T) {
	var buf bytes.Buffer
	obs, err := New(Config{Environment: "production", LogLevel: "info", Output: &buf})
	require.NoError(t, err)

	obs.Logger.Info("hello", slog.String("k", "v"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, ServiceName, line["service"])
	assert.Equal(t, "v", line["k"])
	assert.NotNil(t, obs.Tracer)
	assert.NotNil(t, obs.Metrics)
}

func TestNew_DebugFilteredAtInfo(t *testing.T) {
	var buf bytes.Buffer
	obs, err := New(Config{Environment: "development", Output: &buf})
	require.NoError(t, err)

	obs.Logger.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}
