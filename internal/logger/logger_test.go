package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyFileDiscards(t *testing.T) {
	l, err := New(Options{})
	require.NoError(t, err)
	l.Info("nothing to see")
	l.Sync()
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visiontour.log")

	l, err := New(Options{Mode: "prod", File: path})
	require.NoError(t, err)
	l.With("component", "test").Info("slide shown", "index", 3, "api_key", "AIza-secret")
	l.Debug("hidden at info level")
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "slide shown")
	assert.Contains(t, out, `"component":"test"`)
	assert.Contains(t, out, `"index":3`)
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, "AIza-secret")
	assert.NotContains(t, out, "hidden at info level")
}

func TestNew_DebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	l, err := New(Options{File: path, Level: "debug"})
	require.NoError(t, err)
	l.Debug("visible")
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "visible"))
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(Options{File: filepath.Join(t.TempDir(), "x.log"), Level: "loud"})
	assert.Error(t, err)
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	out := sanitizeKVs([]any{"secret_token", "x", "dangling"})
	assert.Equal(t, []any{"secret_token", "[REDACTED]", "dangling"}, out)
}
