package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/visiontour/internal/deck"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("VISIONTOUR_DB", filepath.Join(dir, "tour.db"))

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "visiontour")
}

func TestDeckList(t *testing.T) {
	out, err := execute(t, "deck", "list")
	require.NoError(t, err)
	for _, s := range deck.Default().Slides() {
		assert.Contains(t, out, s.Title)
	}
}

func TestDeckShow(t *testing.T) {
	out, err := execute(t, "deck", "show", "2")
	require.NoError(t, err)
	assert.Contains(t, out, deck.Default().At(1).Title)

	_, err = execute(t, "deck", "show", "99")
	assert.Error(t, err)
}

func TestDeckExport(t *testing.T) {
	out, err := execute(t, "deck", "export")
	require.NoError(t, err)

	var slides []deck.Slide
	require.NoError(t, json.Unmarshal([]byte(out), &slides))
	assert.Len(t, slides, deck.Default().Len())
}

func TestToursEmpty(t *testing.T) {
	out, err := execute(t, "tours")
	require.NoError(t, err)
	assert.Contains(t, out, "No tours recorded yet.")
}

func TestAskWithMockProvider(t *testing.T) {
	t.Setenv("VISIONTOUR_RETRY_MAX_ATTEMPTS", "1")
	_, err := execute(t, "--provider", "mock", "ask", "¿Qué", "es", "una", "CNN?")
	// The mock provider has no scripted reply, so the tutor call fails.
	assert.Error(t, err)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "(unset)", mask(""))
	assert.Equal(t, "****", mask("abc"))
	assert.Equal(t, "****6789", mask("sk-123456789"))
}
