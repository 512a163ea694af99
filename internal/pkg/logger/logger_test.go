package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
}

func TestComponentLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: zerolog.InfoLevel, Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: zerolog.InfoLevel, Pretty: true}) })

	scanner := Component("scanner")
	scanner.Info().Int("sent", 2).Msg("sweep finished")
	Debug().Msg("hidden")

	out := buf.String()
	assert.Contains(t, out, `"component":"scanner"`)
	assert.Contains(t, out, `"sent":2`)
	assert.NotContains(t, out, "hidden")
}

func TestConfigureLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: zerolog.ErrorLevel, Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: zerolog.InfoLevel, Pretty: true}) })

	Warn().Msg("quiet")
	Error().Msg("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}
