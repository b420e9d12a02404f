package files

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"

	"memo2vec/internal/app/errors"
	"memo2vec/internal/app/model"
)

// TranscriptExt is the extension of transcript artifacts.
const TranscriptExt = ".txt"

// GetAbsolutePath resolves dir and checks that it is an existing directory.
func GetAbsolutePath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(errors.ErrInputDirNotFound, "%s", dir)
		}
		return "", err
	}
	if !info.IsDir() {
		return "", errors.Wrapf(errors.ErrInputDirNotFound, "%s is not a directory", dir)
	}
	return abs, nil
}

// GetAllFiles lists the regular files directly under inputDir whose extension
// matches ext (case-insensitive), oldest first.
func GetAllFiles(inputDir string, ext string) ([]model.FileInfo, error) {
	dir, err := GetAbsolutePath(inputDir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var fileInfos []model.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		fileInfos = append(fileInfos, model.FileInfo{
			FullPath: filepath.Join(dir, entry.Name()),
			ModTime:  info.ModTime(),
			Name:     entry.Name(),
			Size:     info.Size(),
		})
	}

	slices.SortStableFunc(fileInfos, func(a, b model.FileInfo) int {
		if c := a.ModTime.Compare(b.ModTime); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	return fileInfos, nil
}

// FilterBySize keeps files no larger than maxBytes.
func FilterBySize(fileInfos []model.FileInfo, maxBytes int64) []model.FileInfo {
	return lo.Filter(fileInfos, func(f model.FileInfo, _ int) bool {
		return f.Size <= maxBytes
	})
}

// TrimExt returns the file name of path without directory or extension.
func TrimExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dir when missing and reports whether it did.
func EnsureDir(dir string) (bool, error) {
	if Exists(dir) {
		return false, nil
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return true, nil
}

// ReadTextFiles reads every transcript in dir, ordered by name.
func ReadTextFiles(dir string) ([]model.Transcription, error) {
	fileInfos, err := GetAllFiles(dir, TranscriptExt)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(fileInfos, func(a, b model.FileInfo) int {
		return cmp.Compare(a.Name, b.Name)
	})

	transcripts := make([]model.Transcription, 0, len(fileInfos))
	for _, f := range fileInfos {
		content, err := os.ReadFile(f.FullPath)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrFileReadFailed, "%s: %v", f.FullPath, err)
		}
		transcripts = append(transcripts, model.Transcription{
			Name:    TrimExt(f.Name),
			Content: string(content),
		})
	}
	return transcripts, nil
}

// WriteTextFile writes content to path, replacing any existing file.
func WriteTextFile(path string, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(errors.ErrFileWriteFailed, "%s: %v", path, err)
	}
	return nil
}

// CountWords returns the number of transcripts in dir and the total number
// of whitespace-separated words across them.
func CountWords(dir string) (int, int, error) {
	transcripts, err := ReadTextFiles(dir)
	if err != nil {
		return 0, 0, err
	}
	words := lo.SumBy(transcripts, func(t model.Transcription) int {
		return len(strings.Fields(t.Content))
	})
	return len(transcripts), words, nil
}
