package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.sql", "SELECT 1")
	writeFile(t, dir, "a.txt", "SELECT 2")
	writeFile(t, dir, "c.csv", "SELECT 3")
	writeFile(t, dir, "notes.md", "not sql")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0750))
	writeFile(t, filepath.Join(dir, "sub"), "d.SQL", "SELECT 4")

	files, err := Discover(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		rel, relErr := filepath.Rel(dir, f)
		require.NoError(t, relErr)
		names = append(names, rel)
	}
	assert.Equal(t, []string{"a.txt", "b.sql", "c.csv", filepath.Join("sub", "d.SQL")}, names)
}

func TestDiscoverSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "q.sql", "SELECT 1")

	files, err := Discover(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestDiscoverMissingPath(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadTextFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "q.sql", "SELECT 1; SELECT 2;")

	blobs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, blobs, 1)
	assert.Equal(t, "SELECT 1; SELECT 2;", blobs[0].Text)
	assert.Equal(t, path, blobs[0].Origin)
	assert.Equal(t, path, blobs[0].File)
}

func TestLoadCSVCells(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "queries.csv",
		"\"SELECT a FROM t1\",\"SELECT b FROM t2\"\n\"\",\"SELECT c FROM t3; SELECT d FROM t4\"\n")

	blobs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, blobs, 3)

	assert.Equal(t, "SELECT a FROM t1", blobs[0].Text)
	assert.Equal(t, path+":1:1", blobs[0].Origin)
	assert.Equal(t, "SELECT b FROM t2", blobs[1].Text)
	assert.Equal(t, path+":1:2", blobs[1].Origin)
	// Empty cell skipped; one cell may hold several statements.
	assert.Equal(t, "SELECT c FROM t3; SELECT d FROM t4", blobs[2].Text)
	assert.Equal(t, path+":2:2", blobs[2].Origin)
	assert.Equal(t, path, blobs[2].File)
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sql", "SELECT 1")
	writeFile(t, dir, "b.csv", "\"SELECT 2\",\"SELECT 3\"\n")

	blobs, err := LoadAll(dir)
	require.NoError(t, err)
	assert.Len(t, blobs, 3)
}
