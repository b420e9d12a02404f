package table

import (
	"context"
	"strings"
)

// Store loads and saves a whole table. Load returns a nil table when nothing
// has been saved at the location yet.
type Store interface {
	Load(ctx context.Context) (*Table, error)
	Save(ctx context.Context, t *Table) error
	Location() string
}

// MinioOptions holds the connection settings for s3:// locations.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// ParseS3URL splits s3://bucket/key. ok is false for other locations.
func ParseS3URL(location string) (bucket string, key string, ok bool) {
	rest, found := strings.CutPrefix(location, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// Open returns the store for location: an object store for s3://bucket/key
// and a local file otherwise.
func Open(location string, opts MinioOptions) (Store, error) {
	if strings.HasPrefix(location, "s3://") {
		return NewMinioStore(location, opts)
	}
	return NewFileStore(location), nil
}
