package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"edunest/internal/config"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		log, err := New(&config.LogConfig{Level: "warn", Format: format})
		require.NoError(t, err, format)
		assert.False(t, log.Core().Enabled(zap.InfoLevel), format)
		assert.True(t, log.Core().Enabled(zap.WarnLevel), format)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&config.LogConfig{Level: "chatty", Format: "json"})
	assert.ErrorContains(t, err, "chatty")
}
