package iojson

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, WriteWith(&out, &errOut, map[string]int{"rows": 3}))
	assert.Equal(t, "{\n  \"rows\": 3\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalFailure(t *testing.T) {
	var out, errOut bytes.Buffer
	err := WriteWith(&out, &errOut, map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "json_error")
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	rc, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	_, err = Open(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
