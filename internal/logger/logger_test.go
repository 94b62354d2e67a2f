package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })
	return &buf
}

func TestInfo_WritesJSONWithFields(t *testing.T) {
	buf := captureLogs(t)

	Info("cache miss", map[string]any{"key": "properties:goa", "attempt": 1})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "cache miss", line["msg"])
	assert.Equal(t, "properties:goa", line["key"])
	assert.EqualValues(t, 1, line["attempt"])
}

func TestError_RendersErrorValuesAsStrings(t *testing.T) {
	buf := captureLogs(t)

	Error("upstream failed", map[string]any{"error": errors.New("connection refused")})

	assert.Contains(t, buf.String(), `"error":"connection refused"`)
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}

func TestDebug_FilteredAtInfoLevel(t *testing.T) {
	buf := captureLogs(t)
	level.Set(parseLevel("info"))

	Debug("hidden", nil)
	Warn("shown", nil)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, `"msg":"shown"`))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		"WARN":    "WARN",
		"warning": "WARN",
		"error":   "ERROR",
		"":        "INFO",
		"verbose": "INFO",
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in).String(), in)
	}
}
