package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/splitkit/types"
)

func newBufferedSlog(level slog.Level) (*SlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})

	return NewSlog(slog.New(handler)), buf
}

func TestNewSlog(t *testing.T) {
	logger, _ := newBufferedSlog(slog.LevelDebug)
	require.NotNil(t, logger.logger)

	require.NotNil(t, NewSlog(nil).logger, "nil falls back to slog.Default")
	require.NotNil(t, NewSlogDefault().logger)
}

func TestSlogLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(l types.Logger)
		msg   string
		field string
		level string
	}{
		{"debug", func(l types.Logger) { l.Debug("chunk emitted", "key", "crust") }, "chunk emitted", "key=crust", "level=DEBUG"},
		{"info", func(l types.Logger) { l.Info("index built", "sites", 10) }, "index built", "sites=10", "level=INFO"},
		{"warn", func(l types.Logger) { l.Warn("hint clamped", "hint", 1) }, "hint clamped", "hint=1", "level=WARN"},
		{"error", func(l types.Logger) { l.Error("worker failed", "worker", "w-1") }, "worker failed", "worker=w-1", "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferedSlog(slog.LevelDebug)
			tt.log(logger)

			output := buf.String()
			assert.Contains(t, output, tt.msg)
			assert.Contains(t, output, tt.field)
			assert.Contains(t, output, tt.level)
		})
	}
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferedSlog(slog.LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	assert.Empty(t, buf.String())

	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestSlogLogger_With(t *testing.T) {
	logger, buf := newBufferedSlog(slog.LevelInfo)

	logger.With("component", "filter").Info("source dropped", "source_id", "src-1")

	output := buf.String()
	assert.Contains(t, output, "component=filter")
	assert.Contains(t, output, "source_id=src-1")
}

func TestNopLogger(t *testing.T) {
	logger := NewNop()

	require.NotPanics(t, func() {
		logger.Debug("test message", "key", "value")
		logger.Info("test message")
		logger.Warn("test message", "odd")
		logger.Error("test message", nil, nil)
		logger.Fatal("test message", "key", "value") // must not exit
	})
}

func TestOrNop(t *testing.T) {
	require.IsType(t, &NopLogger{}, OrNop(nil))

	logger := NewTest(t)
	require.Same(t, logger, OrNop(logger))
}

func TestFormatKeyValues(t *testing.T) {
	require.Equal(t, "", formatKeyValues(nil))
	require.Equal(t, "a=1 b=2", formatKeyValues([]any{"a", 1, "b", 2}))
	require.Equal(t, "a=1 b=<missing>", formatKeyValues([]any{"a", 1, "b"}))
}
