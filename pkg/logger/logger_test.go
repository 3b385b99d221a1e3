package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, getLogLevel(in), in)
	}
}

func TestDrawCompletedWritesJSON(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")
	log.LogDrawCompleted(context.Background(), "s1", 3, []string{"Alice", "Bob"}, false)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "s1", line["session_id"])
	assert.EqualValues(t, 3, line["pool_size"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "error")
	log.Info("hidden")
	assert.Zero(t, buf.Len())

	log.ErrorWithContext(context.Background(), "boom", errors.New("db down"), map[string]interface{}{"table": "cards"})
	assert.Contains(t, buf.String(), "db down")
	assert.Contains(t, buf.String(), "cards")
}
