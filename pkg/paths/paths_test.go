package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTempDir(t *testing.T, baseDir, subPath string) string {
	t.Helper()
	dir := filepath.Join(baseDir, subPath)
	err := os.MkdirAll(dir, 0755)
	require.NoError(t, err, "Failed to create temp dir: %s", subPath)
	return dir
}

func createTempFile(t *testing.T, targetDir, fileName string, content string) string {
	t.Helper()
	filePath := filepath.Join(targetDir, fileName)
	err := os.WriteFile(filePath, []byte(content), 0644)
	require.NoError(t, err, "Failed to create temp file: %s", fileName)
	return filePath
}

func TestEntries(t *testing.T) {
	base := t.TempDir()

	partFile := createTempFile(t, base, "a.iso.part", "12345")
	folder := createTempDir(t, base, "Album")
	createTempFile(t, folder, "01.flac", "1234567890")
	nested := createTempDir(t, folder, "cover")
	createTempFile(t, nested, "front.jpg", "123")

	entries, err := Entries(base + string(filepath.Separator))
	require.NoError(t, err)
	require.Len(t, entries, 2, "only direct children are listed")

	assert.Equal(t, folder, entries[0].Path)
	assert.True(t, entries[0].IsDir)
	assert.NoError(t, entries[0].Err)

	assert.Equal(t, partFile, entries[1].Path)
	assert.Equal(t, "a.iso.part", entries[1].FileName)
	assert.False(t, entries[1].IsDir)
	assert.Equal(t, int64(5), entries[1].Size)

	assert.Equal(t, int64(13), Size(entries[0]))
	assert.Equal(t, int64(5), Size(entries[1]))
}

func TestEntriesEmpty(t *testing.T) {
	entries, err := Entries(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntriesMissingFolder(t *testing.T) {
	base := t.TempDir()

	_, err := Entries(filepath.Join(base, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	file := createTempFile(t, base, "file.txt", "x")
	_, err = Entries(file)
	assert.Error(t, err)
}

func TestSizeNested(t *testing.T) {
	base := t.TempDir()
	createTempFile(t, base, "a", "12")
	sub := createTempDir(t, base, "sub")
	createTempFile(t, sub, "b", "345")
	createTempDir(t, sub, "empty")

	assert.Equal(t, uint64(5), folderSize(base))
	assert.Equal(t, int64(5), Size(Path{Path: base, IsDir: true}))
	assert.Equal(t, uint64(0), folderSize(filepath.Join(base, "missing")))
}
