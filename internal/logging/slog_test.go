package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  slog.Level
	}{
		{name: "debug", level: "debug", want: slog.LevelDebug},
		{name: "info", level: "info", want: slog.LevelInfo},
		{name: "warn", level: "warn", want: slog.LevelWarn},
		{name: "warning alias", level: "warning", want: slog.LevelWarn},
		{name: "error", level: "error", want: slog.LevelError},
		{name: "uppercase", level: "DEBUG", want: slog.LevelDebug},
		{name: "unknown falls back to info", level: "verbose", want: slog.LevelInfo},
		{name: "empty falls back to info", level: "", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.level))
		})
	}
}

func TestErr(t *testing.T) {
	t.Run("nil error produces empty group", func(t *testing.T) {
		attr := Err(nil)
		assert.Equal(t, slog.KindGroup, attr.Value.Kind())
		assert.Empty(t, attr.Key)
	})

	t.Run("non-nil error produces error attribute", func(t *testing.T) {
		attr := Err(assert.AnError)
		assert.Equal(t, KeyError, attr.Key)
		assert.Equal(t, assert.AnError.Error(), attr.Value.String())
	})
}

func TestWithOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	WithOperation(logger, "bc.create_order").Info("created")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"operation":"bc.create_order"`)
	assert.Contains(t, out, `"msg":"created"`)
}
