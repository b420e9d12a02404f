package table

import (
	"context"
	"os"
	"path/filepath"

	"memo2vec/internal/app/errors"
)

// FileStore keeps the table in a local JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a store for path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Location returns the file path.
func (s *FileStore) Location() string {
	return s.path
}

// Load reads the table, or returns nil when the file does not exist.
func (s *FileStore) Load(ctx context.Context) (*Table, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrTableLoadFailed, "%s: %v", s.path, err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", s.path)
	}
	return t, nil
}

// Save replaces the file with t. The new content is written next to the
// target and renamed over it.
func (s *FileStore) Save(ctx context.Context, t *Table) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return errors.Wrapf(errors.ErrTableSaveFailed, "%s: %v", s.path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(errors.ErrTableSaveFailed, "%s: %v", s.path, err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, t); err != nil {
		tmp.Close()
		return errors.Wrapf(errors.ErrTableSaveFailed, "%s: %v", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(errors.ErrTableSaveFailed, "%s: %v", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrapf(errors.ErrTableSaveFailed, "%s: %v", s.path, err)
	}
	return nil
}
