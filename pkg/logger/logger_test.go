package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput route global logger vào buffer trong test
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	old := log.Logger
	oldLevel := zerolog.GlobalLevel()
	log.Logger = zerolog.New(buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = old
		zerolog.SetGlobalLevel(oldLevel)
	})
	return buf
}

func TestLevelsCarryFields(t *testing.T) {
	buf := captureOutput(t)

	Info("info msg", map[string]interface{}{"key": "v1"})
	Debug("debug msg", map[string]interface{}{"key": "v2"})
	Warn("warn msg", map[string]interface{}{"key": "v3"})
	Error("error msg", errors.New("boom"))

	out := buf.String()
	require.Contains(t, out, `"message":"info msg"`)
	assert.Contains(t, out, `"key":"v1"`)
	require.Contains(t, out, `"message":"debug msg"`)
	assert.Contains(t, out, `"key":"v2"`)
	require.Contains(t, out, `"message":"warn msg"`)
	assert.Contains(t, out, `"key":"v3"`)
	require.Contains(t, out, `"message":"error msg"`)
	assert.Contains(t, out, `"error":"boom"`)
}

func TestNilFieldsAccepted(t *testing.T) {
	buf := captureOutput(t)

	Info("bare info", nil)
	Debug("bare debug", nil)
	Warn("bare warn", nil)

	out := buf.String()
	assert.Contains(t, out, `"message":"bare info"`)
	assert.Contains(t, out, `"message":"bare debug"`)
	assert.Contains(t, out, `"message":"bare warn"`)
}
