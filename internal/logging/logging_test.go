package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mohammadpnp/cohort-sync/internal/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, logging.ParseLevel(in), "level %q", in)
	}
}

func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("hidden")
	log.Warn().Str("run_id", "r1").Msg("visible")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var event map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &event))
	assert.Equal(t, "visible", event["message"])
	assert.Equal(t, "r1", event["run_id"])
	assert.Contains(t, event, "time")
}

func TestNewAutoFormatOnBufferIsJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: "info", Format: "auto"}, &buf)
	log.Info().Msg("hello")

	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNewConsoleLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: "info", Format: "console", NoColor: true}, &buf)
	log.Info().Msg("hello")

	assert.Contains(t, buf.String(), "INF")
	assert.Contains(t, buf.String(), "hello")
}

func TestLogTrace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	trace := logging.NewLogTrace(logging.New(logging.Config{Format: "json"}, &buf))

	trace.Output("connected !")
	trace.Finished()

	out := buf.String()
	assert.Contains(t, out, `"message":"connected !"`)
	assert.Contains(t, out, `"component":"trace"`)
	assert.Contains(t, out, `"message":"finished"`)
}

func TestWriterTrace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	trace := logging.NewWriterTrace(&buf)

	trace.Output("Starting cohort synchronisation...")
	trace.Finished()

	assert.Equal(t, "Starting cohort synchronisation...\n... finished\n", buf.String())
}
