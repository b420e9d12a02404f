package files

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memo2vec/internal/app/errors"
	"memo2vec/internal/app/model"
)

func writeFile(t *testing.T, dir, name string, size int, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestGetAllFiles(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	writeFile(t, dir, "b.m4a", 10, base.Add(2*time.Hour))
	writeFile(t, dir, "a.M4A", 20, base.Add(time.Hour))
	writeFile(t, dir, "c.m4a", 30, base.Add(time.Hour))
	writeFile(t, dir, "notes.txt", 5, base)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.m4a"), 0o755))

	got, err := GetAllFiles(dir, ".m4a")
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, f := range got {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a.M4A", "c.m4a", "b.m4a"}, names)
	assert.Equal(t, int64(20), got[0].Size)
	assert.True(t, filepath.IsAbs(got[0].FullPath))
}

func TestGetAllFiles_MissingDirectory(t *testing.T) {
	_, err := GetAllFiles(filepath.Join(t.TempDir(), "missing"), ".m4a")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInputDirNotFound))
}

func TestGetAllFiles_PathIsFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "memo.m4a", 1, time.Now())
	_, err := GetAllFiles(path, ".m4a")
	assert.True(t, stderrors.Is(err, errors.ErrInputDirNotFound))
}

func TestFilterBySize(t *testing.T) {
	limit := int64(25 * 1024 * 1024)
	in := []model.FileInfo{
		{Name: "small.m4a", Size: 1024},
		{Name: "exact.m4a", Size: limit},
		{Name: "large.m4a", Size: limit + 1},
	}

	got := FilterBySize(in, limit)
	require.Len(t, got, 2)
	assert.Equal(t, "small.m4a", got[0].Name)
	assert.Equal(t, "exact.m4a", got[1].Name)
}

func TestTrimExt(t *testing.T) {
	tests := map[string]string{
		"/memos/Morning walk.m4a": "Morning walk",
		"memo.2024.01.txt":        "memo.2024.01",
		"noext":                   "noext",
	}
	for in, want := range tests {
		assert.Equal(t, want, TrimExt(in), in)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "transcripts")

	created, err := EnsureDir(dir)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, Exists(dir))

	created, err = EnsureDir(dir)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestReadTextFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteTextFile(filepath.Join(dir, "zebra.txt"), "last one"))
	require.NoError(t, WriteTextFile(filepath.Join(dir, "apple.txt"), ""))
	require.NoError(t, WriteTextFile(filepath.Join(dir, "ignored.md"), "nope"))

	got, err := ReadTextFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []model.Transcription{
		{Name: "apple", Content: ""},
		{Name: "zebra", Content: "last one"},
	}, got)
}

func TestWriteTextFile_MissingParent(t *testing.T) {
	err := WriteTextFile(filepath.Join(t.TempDir(), "missing", "x.txt"), "x")
	assert.True(t, stderrors.Is(err, errors.ErrFileWriteFailed))
}

func TestCountWords(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteTextFile(filepath.Join(dir, "a.txt"), "buy milk and eggs"))
	require.NoError(t, WriteTextFile(filepath.Join(dir, "b.txt"), "  call\nmom  "))
	require.NoError(t, WriteTextFile(filepath.Join(dir, "c.txt"), ""))

	count, words, err := CountWords(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 6, words)
}
