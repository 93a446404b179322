package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("a();\n"), 0o644))
	return path
}

func TestCollectSourceFiles(t *testing.T) {
	reader := NewFileReader()

	t.Run("DirectoryWalkWithDefaultPatterns", func(t *testing.T) {
		dir := t.TempDir()
		a := writeFile(t, dir, "a.src")
		b := writeFile(t, dir, filepath.Join("sub", "b.src"))
		writeFile(t, dir, "notes.txt")

		files, err := reader.CollectSourceFiles([]string{dir}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{a, b}, files)
	})

	t.Run("ExplicitFileBypassesPatterns", func(t *testing.T) {
		dir := t.TempDir()
		notes := writeFile(t, dir, "notes.txt")

		files, err := reader.CollectSourceFiles([]string{notes}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{notes}, files)
	})

	t.Run("ExcludePatterns", func(t *testing.T) {
		dir := t.TempDir()
		keep := writeFile(t, dir, "keep.src")
		writeFile(t, dir, filepath.Join("vendor", "skip.src"))

		files, err := reader.CollectSourceFiles([]string{dir}, []string{"**/*.src"}, []string{"vendor/**"})
		require.NoError(t, err)
		assert.Equal(t, []string{keep}, files)
	})

	t.Run("CustomIncludePatterns", func(t *testing.T) {
		dir := t.TempDir()
		prog := writeFile(t, dir, "main.prog")
		writeFile(t, dir, "main.src")

		files, err := reader.CollectSourceFiles([]string{dir}, []string{"**/*.prog"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{prog}, files)
	})

	t.Run("Deduplicates", func(t *testing.T) {
		dir := t.TempDir()
		a := writeFile(t, dir, "a.src")

		files, err := reader.CollectSourceFiles([]string{a, a, dir}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{a}, files)
	})

	t.Run("MissingPath", func(t *testing.T) {
		_, err := reader.CollectSourceFiles([]string{filepath.Join(t.TempDir(), "nope")}, nil, nil)
		assert.Error(t, err)
	})
}

func TestReadFile(t *testing.T) {
	reader := NewFileReader()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.src")

	data, err := reader.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a();\n", string(data))

	_, err = reader.ReadFile(filepath.Join(dir, "nope.src"))
	assert.Error(t, err)
}
