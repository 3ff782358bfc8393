package comm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SlogHandlerJSONEmitsDebugWithoutVerbose(t *testing.T) {
	output := captureJSONLogs(t, func() {
		logger := slog.New(NewSlogHandler(slog.LevelDebug))
		logger.Debug("storage transaction",
			slog.String("query", "SELECT value FROM local_storage"),
			slog.Any("args", []any{"token", 1}),
			slog.Duration("duration", 2500*time.Microsecond),
		)
	})

	require.Len(t, output, 1)
	logObj := output[0]

	assert.EqualValues(t, "log", logObj["type"])
	assert.EqualValues(t, "debug", logObj["level"])
	assert.EqualValues(t, "storage transaction", logObj["message"])
	assert.EqualValues(t, "SELECT value FROM local_storage", logObj["query"])
	assert.EqualValues(t, "2.5ms", logObj["duration"])
	assert.Contains(t, logObj, "time")
	assert.Len(t, logObj["args"], 2)
}

func Test_SlogHandlerJSONGroups(t *testing.T) {
	output := captureJSONLogs(t, func() {
		logger := slog.New(NewSlogHandler(slog.LevelDebug)).
			WithGroup("db").
			With("component", "models")
		logger.Debug("query", slog.String("sql", "PRAGMA foreign_keys = 0"))
	})

	require.Len(t, output, 1)
	assert.EqualValues(t, "models", output[0]["db.component"])
	assert.EqualValues(t, "PRAGMA foreign_keys = 0", output[0]["db.sql"])
}

func Test_SlogHandlerJSONAttrsOverrideReservedKeys(t *testing.T) {
	output := captureJSONLogs(t, func() {
		logger := slog.New(NewSlogHandler(slog.LevelDebug))
		logger.Debug("original",
			slog.String("message", "override"),
			slog.String("type", "custom"),
			slog.Int64("time", 123),
		)
	})

	require.Len(t, output, 1)
	assert.EqualValues(t, "override", output[0]["message"])
	assert.EqualValues(t, "custom", output[0]["type"])
	assert.EqualValues(t, 123, output[0]["time"])
}

func Test_SlogHandlerText(t *testing.T) {
	logger := slog.New(NewSlogHandler(slog.LevelDebug)).With("component", "database")

	lines := captureTextLogs(t, false, func() {
		logger.Info("storage transaction", "ok", true)
		logger.Debug("hidden without verbose")
		logger.Warn("slow", "duration", 3*time.Second)
	})
	assert.EqualValues(t, []string{
		"[database] storage transaction ok=true",
		"warning: [database] slow duration=3s",
	}, lines)

	lines = captureTextLogs(t, true, func() {
		logger.Debug("shown with verbose")
	})
	assert.EqualValues(t, []string{"[database] shown with verbose"}, lines)
}

func Test_SlogHandlerLevel(t *testing.T) {
	h := NewSlogHandler(nil)
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))

	h = NewSlogHandler(slog.LevelWarn)
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func withSettings(t *testing.T, quiet, verbose, json, assumeYes bool) {
	t.Helper()
	oldSettings := *settings
	t.Cleanup(func() {
		*settings = oldSettings
	})
	Configure(quiet, verbose, json, assumeYes)
}

func captureTextLogs(t *testing.T, verbose bool, fn func()) []string {
	t.Helper()
	withSettings(t, false, verbose, false, false)

	var buf bytes.Buffer
	oldFlags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(oldFlags)
	}()

	fn()

	var lines []string
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte{'\n'}) {
		if len(line) > 0 {
			lines = append(lines, string(line))
		}
	}
	return lines
}

func captureJSONLogs(t *testing.T, fn func()) []map[string]any {
	t.Helper()
	withSettings(t, false, false, true, false)

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() {
		os.Stdout = oldStdout
	}()

	fn()

	require.NoError(t, w.Close())
	outBytes, err := io.ReadAll(r)
	require.NoError(t, err)

	var output []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(outBytes), []byte{'\n'}) {
		if len(line) == 0 {
			continue
		}
		var obj map[string]any
		require.NoError(t, json.Unmarshal(line, &obj), "line %q", string(line))
		output = append(output, obj)
	}
	return output
}
