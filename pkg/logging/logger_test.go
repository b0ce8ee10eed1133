package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Output: &buf})
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("title", "Episode 2").Msg("adding episode to wiki")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "adding episode to wiki", line["message"])
	assert.Equal(t, "Episode 2", line["title"])
	assert.Equal(t, "podwiki", line["app"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	require.NoError(t, err)

	logger.Info().Msg("done")
	assert.Contains(t, buf.String(), "done")
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Options{Format: "xml"})
	assert.Error(t, err)
}
