package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", true)

	logger.Info("dropped")
	logger.Warn("kept", slog.String("pool_id", "p1"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "p1", line["pool_id"])
}

func TestNew_DevelopmentHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "error", false)

	assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
	logger.Error("boom")
	assert.Contains(t, buf.String(), "boom")
}
