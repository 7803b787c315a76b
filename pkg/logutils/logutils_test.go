package logutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AppendsToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "vgrid.log")

	for _, msg := range []string{"first", "second"} {
		l, closer, err := New("debug", file)
		require.NoError(t, err)
		l.Info().Msg(msg)
		closer()
	}

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"first"`)
	assert.Contains(t, string(data), `"message":"second"`)
}

func TestNew_Level(t *testing.T) {
	file := filepath.Join(t.TempDir(), "vgrid.log")

	l, closer, err := New("warn", file)
	require.NoError(t, err)
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNew_DefaultsToInfo(t *testing.T) {
	l, closer, err := New("", "")
	require.NoError(t, err)
	defer closer()
	assert.Equal(t, "info", l.GetLevel().String())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New("loud", "")
	require.Error(t, err)
}
