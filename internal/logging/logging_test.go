package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vango-dev/vtree/internal/config"
)

func TestDefaultIsNop(t *testing.T) {
	assert.False(t, L().Core().Enabled(zapcore.ErrorLevel))
}

func TestSet(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	Named("server").Info("started", zap.Int("port", 7070))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "server", entries[0].LoggerName)
	assert.Equal(t, "started", entries[0].Message)
	assert.Equal(t, int64(7070), entries[0].ContextMap()["port"])

	Set(nil)
	assert.False(t, L().Core().Enabled(zapcore.ErrorLevel))
}

func TestNew(t *testing.T) {
	l, err := New(config.LogConfig{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = New(config.LogConfig{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = New(config.LogConfig{Level: "chatty"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)

	lvl, err = ParseLevel("error")
	require.NoError(t, err)
	assert.Equal(t, zapcore.ErrorLevel, lvl)
}
