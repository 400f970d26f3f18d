package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"Warning": zapcore.WarnLevel,
		" error ": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestAdapterFor_WritesThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a := NewAdapterFor(l)

	a.Info("scan finished", "run_id", "r1")
	a.Debug("detail")
	a.Warn("skipped", "query", "ai")
	a.Error("boom")

	out := buf.String()
	assert.Contains(t, out, "msg=\"scan finished\" run_id=r1")
	assert.Contains(t, out, "level=DEBUG msg=detail")
	assert.Contains(t, out, "query=ai")
	assert.Contains(t, out, "level=ERROR msg=boom")
}

func TestZap_NopBeforeInit(t *testing.T) {
	assert.NotNil(t, Zap())
}
