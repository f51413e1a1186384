package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0644))

	hash, err := FileHash(path)
	require.NoError(t, err)
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", hash)
}

func TestFileHashDeterministic(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.bin")
	b := filepath.Join(dir, "b.bin")
	require.NoError(t, os.WriteFile(a, []byte("same content"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("same content"), 0644))

	hashA, err := FileHash(a)
	require.NoError(t, err)
	hashB, err := FileHash(b)
	require.NoError(t, err)

	assert.Equal(t, hashA, hashB)

	require.NoError(t, os.WriteFile(b, []byte("different content"), 0644))
	hashC, err := FileHash(b)
	require.NoError(t, err)
	assert.NotEqual(t, hashA, hashC)
}

func TestFileHashMissingFile(t *testing.T) {
	_, err := FileHash(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}
