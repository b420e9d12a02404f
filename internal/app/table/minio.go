package table

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"memo2vec/internal/app/errors"
)

// MinioStore keeps the table as one object in an S3-compatible bucket.
type MinioStore struct {
	client   *minio.Client
	bucket   string
	key      string
	location string
}

// NewMinioStore returns a store for location (s3://bucket/key).
func NewMinioStore(location string, opts MinioOptions) (*MinioStore, error) {
	bucket, key, ok := ParseS3URL(location)
	if !ok {
		return nil, errors.InvalidField("table location", fmt.Sprintf("%q is not s3://bucket/key", location))
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinioStore{client: client, bucket: bucket, key: key, location: location}, nil
}

// Location returns the s3:// URL.
func (s *MinioStore) Location() string {
	return s.location
}

// Load downloads the table, or returns nil when the bucket or object does
// not exist.
func (s *MinioStore) Load(ctx context.Context) (*Table, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.loadErr(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.loadErr(err)
	}

	t, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", s.location)
	}
	return t, nil
}

func (s *MinioStore) loadErr(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return nil
	}
	return errors.Wrapf(errors.ErrTableLoadFailed, "%s: %v", s.location, err)
}

// Save uploads t, creating the bucket when needed.
func (s *MinioStore) Save(ctx context.Context, t *Table) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.Wrapf(errors.ErrTableSaveFailed, "check bucket %s: %v", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return errors.Wrapf(errors.ErrTableSaveFailed, "create bucket %s: %v", s.bucket, err)
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, t); err != nil {
		return errors.Wrapf(errors.ErrTableSaveFailed, "%s: %v", s.location, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.key, bytes.NewReader(buf.Bytes()), int64(buf.Len()),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return errors.Wrapf(errors.ErrTableSaveFailed, "%s: %v", s.location, err)
	}
	return nil
}
