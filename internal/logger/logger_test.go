package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRejectsBadLevel(t *testing.T) {
	_, err := Init(Config{Level: "chatty"})
	assert.Error(t, err)
}

func TestInitFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.log")

	closer, err := Init(Config{Level: "debug", Output: path})
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.InfoLevel)

	log := WithComponent("scheduler")
	log.Info().Msg("tick")
	log.Debug().Msg("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scheduler", entry["component"])
	assert.Equal(t, "tick", entry["message"])
	assert.Equal(t, "info", entry["level"])
}
