package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGet_DefaultsToNop(t *testing.T) {
	SetRoot(nil)
	logger := Get(CategoryScanner)
	require.NotNil(t, logger)
	logger.Info("silent")
}

func TestGet_NamesCategory(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetRoot(zap.New(core))
	t.Cleanup(func() { SetRoot(nil) })

	Get(CategorySentinel).Info("verdict", zap.Bool("real", true))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "sentinel", entries[0].LoggerName)
	assert.Equal(t, "verdict", entries[0].Message)
	assert.Equal(t, true, entries[0].ContextMap()["real"])
}

func TestInit_InvalidLevel(t *testing.T) {
	_, err := Init(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestInit_Verbose(t *testing.T) {
	logger, err := Init(Options{Level: "warn", Format: "console", Verbose: true})
	require.NoError(t, err)
	t.Cleanup(func() { SetRoot(nil) })
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}
