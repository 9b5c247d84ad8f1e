package logger

import (
	"bytes"
	"testing"

	"github.com/phuslu/log"
	"github.com/stretchr/testify/assert"
)

func TestInitWriter_Level(t *testing.T) {
	saved := log.DefaultLogger
	t.Cleanup(func() { log.DefaultLogger = saved })

	var buf bytes.Buffer
	InitWriter(&buf, "info")

	log.Debug().Msg("hidden")
	log.Info().Str("path", "latest_log.txt").Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "latest_log.txt")
}

func TestInitWriter_UnknownLevelIsInfo(t *testing.T) {
	saved := log.DefaultLogger
	t.Cleanup(func() { log.DefaultLogger = saved })

	var buf bytes.Buffer
	InitWriter(&buf, "chatty")

	assert.Equal(t, log.InfoLevel, log.DefaultLogger.Level)
}
