package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNewWritesJSONWithTimestamp(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "info", Writer: &buf})

	logger.Debug().Msg("hidden")
	logger.Info().Str("table", "about_content").Msg("loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "loaded", entry["message"])
	assert.Equal(t, "about_content", entry["table"])
	assert.Contains(t, entry, "time")
}
