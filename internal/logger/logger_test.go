package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habittrack/habittrack/internal/logger"
)

func TestNewWithOutput(t *testing.T) {
	t.Parallel()

	t.Run("json format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithOutput(logger.Config{Level: "info", Format: logger.FormatJSON}, &buf)
		log.Info("hello", logger.Component("test"))

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "hello", record["msg"])
		assert.Equal(t, "test", record["component"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithOutput(logger.Config{Level: "info", Format: logger.FormatText}, &buf)
		log.Info("hello")

		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithOutput(logger.Config{Level: "error", Format: logger.FormatJSON}, &buf)
		log.Info("dropped")
		log.Error("kept")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "kept")
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithOutput(logger.Config{Level: "bogus"}, &buf)
		log.Debug("dropped")
		log.Info("kept")

		assert.Contains(t, buf.String(), "kept")
		assert.NotContains(t, buf.String(), "dropped")
	})
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Format: logger.FormatJSON}, &buf)
	log.Info("failed",
		logger.Error(errors.New("boom")),
		logger.UserID("u-1"),
		logger.Provider("google"),
	)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "boom", record["error"])
	assert.Equal(t, "u-1", record["user_id"])
	assert.Equal(t, "google", record["provider"])
}

func TestNewDiscard(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		logger.NewDiscard().Info("dropped", logger.Error(nil), logger.UserID(nil))
	})
}
