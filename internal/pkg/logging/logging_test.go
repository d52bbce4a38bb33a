package logging_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"github.com/Antles/FinalCS340/internal/config"
	"github.com/Antles/FinalCS340/internal/pkg/logging"
	"github.com/Antles/FinalCS340/internal/testutils"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{in: "debug", want: zerolog.DebugLevel},
		{in: " WARN ", want: zerolog.WarnLevel},
		{in: "error", want: zerolog.ErrorLevel},
		{in: "", want: zerolog.InfoLevel},
		{in: "verbose", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info().Msg("dropped")
	logger.Warn().Str("collection", "animals").Msg("kept")

	lines := testutils.LogLines(t, &buf)
	assert.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0]["message"])
	assert.Equal(t, "animals", lines[0]["collection"])
	assert.Contains(t, lines[0], "time")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(config.LogConfig{Level: "info", Format: "console"}, &buf)

	logger.Info().Msg("Successfully deleted 1 document(s).")

	out := buf.String()
	assert.Contains(t, out, "Successfully deleted 1 document(s).")
	assert.NotContains(t, out, `"message"`)
}

func TestSetup_ReplacesGlobalLogger(t *testing.T) {
	previous := log.Logger
	t.Cleanup(func() { log.Logger = previous })

	logger := logging.Setup(config.LogConfig{Level: "error"})

	assert.Equal(t, zerolog.ErrorLevel, logger.GetLevel())
	assert.Equal(t, zerolog.ErrorLevel, log.Logger.GetLevel())
}
