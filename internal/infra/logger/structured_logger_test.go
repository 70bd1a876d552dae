package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level string) (Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewStructuredLogger(LoggerConfig{
		Level:       level,
		Format:      "json",
		ServiceName: "sentinel-test",
		Output:      buf,
	}), buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	return entry
}

func TestStructuredLogger_InfoWritesFieldsAndCorrelationID(t *testing.T) {
	log, buf := newBufferLogger("info")
	ctx := ContextWithCorrelationID(context.Background(), "cid-123")

	log.Info(ctx, "incident created", map[string]interface{}{"incident_id": "inc-1"})

	entry := decodeLine(t, buf)
	assert.Equal(t, "incident created", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "inc-1", entry["incident_id"])
	assert.Equal(t, "cid-123", entry["correlation_id"])
	assert.Equal(t, "sentinel-test", entry["service"])
}

func TestStructuredLogger_ErrorIncludesError(t *testing.T) {
	log, buf := newBufferLogger("info")

	log.Error(context.Background(), "persist failed", errors.New("redis down"), nil)

	entry := decodeLine(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "redis down", entry["error"])
}

func TestStructuredLogger_LevelFilters(t *testing.T) {
	log, buf := newBufferLogger("warn")

	log.Debug(context.Background(), "hidden", nil)
	log.Info(context.Background(), "hidden", nil)

	assert.Empty(t, buf.String())
}

func TestStructuredLogger_WithFieldsDoesNotLeak(t *testing.T) {
	log, buf := newBufferLogger("info")

	child := log.WithFields(map[string]interface{}{"component": "store"})
	log.Info(context.Background(), "parent", nil)

	entry := decodeLine(t, buf)
	assert.NotContains(t, entry, "component")

	buf.Reset()
	child.Info(context.Background(), "child", nil)
	entry = decodeLine(t, buf)
	assert.Equal(t, "store", entry["component"])
}

func TestStructuredLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, buf := newBufferLogger("loud")

	log.Debug(context.Background(), "hidden", nil)
	assert.Empty(t, buf.String())

	log.Info(context.Background(), "shown", nil)
	assert.NotEmpty(t, buf.String())
}

func TestLogAuthEvent(t *testing.T) {
	log, buf := newBufferLogger("info")

	LogAuthEvent(context.Background(), log, "logout", "u1", false, nil)

	entry := decodeLine(t, buf)
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "Auth event failed: logout", entry["msg"])
	assert.Equal(t, "u1", entry["user_id"])
}

func TestLogPerformance(t *testing.T) {
	log, buf := newBufferLogger("info")

	LogPerformance(context.Background(), log, "suggest_resolution", 1500*time.Millisecond, nil)

	entry := decodeLine(t, buf)
	assert.Equal(t, float64(1500), entry["duration_ms"])
	assert.Equal(t, "suggest_resolution", entry["operation"])
}

func TestCorrelationIDFromContext_Missing(t *testing.T) {
	assert.Equal(t, "", CorrelationIDFromContext(context.Background()))
}
