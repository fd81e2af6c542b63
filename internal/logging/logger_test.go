package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelInfo)

	logger.Info("copy failed", "error", errors.New("disk full"))

	out := buf.String()
	assert.Contains(t, out, `err="disk full"`)
	assert.NotContains(t, out, "error=")
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestForDebug(t *testing.T) {
	ctx := context.Background()
	assert.False(t, ForDebug(false).Enabled(ctx, slog.LevelDebug))
	assert.True(t, ForDebug(true).Enabled(ctx, slog.LevelDebug))
}
