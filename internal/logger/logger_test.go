package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	return entry
}

func TestNewLogger_EntryFields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "video-fetcher-server")

	l.Info().Msg("started")

	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "video-fetcher-server", entry[FieldRole])
	assert.Equal(t, "started", entry["message"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNewLogger_EntryFields")
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  zerolog.Level
	}{
		{name: "unset", value: "", want: zerolog.DebugLevel},
		{name: "info", value: "info", want: zerolog.InfoLevel},
		{name: "upper case", value: " WARN ", want: zerolog.WarnLevel},
		{name: "unknown", value: "chatty", want: zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(LevelEnv, tt.value)
			NewLogger("level")
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}

	t.Setenv(LevelEnv, "")
	NewLogger("reset")
}

func TestNewClientLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vfetch", "vfetch.log")

	l := NewClientLogger("vfetch", path)
	l.Info().Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	entry := decodeEntry(t, data)
	assert.Equal(t, "vfetch", entry[FieldRole])
	assert.Equal(t, "to file", entry["message"])
}

func TestNewClientLogger_Unwritable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	for _, path := range []string{"", filepath.Join(blocker, "nested", "vfetch.log")} {
		l := NewClientLogger("vfetch", path)
		require.NotNil(t, l)
		assert.NotPanics(t, func() { l.Info().Msg("discarded") })
	}
}

func TestDefaultClientLogPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("cache dir layout checked on linux only")
	}
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")

	assert.Equal(t, "/tmp/cache/vfetch/vfetch.log", DefaultClientLogPath())
}

func TestLogger_ChildFields(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf)}

	parent.WithTask("a1b2c3d4").WithTraceID("trace-1").Info().Msg("task message")
	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "a1b2c3d4", entry[FieldTaskID])
	assert.Equal(t, "trace-1", entry[FieldTraceID])

	buf.Reset()
	parent.Info().Msg("parent message")
	entry = decodeEntry(t, buf.Bytes())
	assert.NotContains(t, entry, FieldTaskID)
	assert.NotContains(t, entry, FieldTraceID)
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str(FieldTraceID, "from-ctx").Logger()
	ctx := zl.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from context")

	assert.Equal(t, "from-ctx", decodeEntry(t, buf.Bytes())[FieldTraceID])
	require.NotNil(t, FromContext(context.Background()))
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str(FieldTraceID, "from-req").Logger()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "from-req", decodeEntry(t, buf.Bytes())[FieldTraceID])
	require.NotNil(t, FromRequest(httptest.NewRequest(http.MethodGet, "/", nil)))
}
