package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// ErrObjectNotFound is returned when a requested object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ContentTypeCSV is used for every table uploaded by the service.
const ContentTypeCSV = "text/csv; charset=utf-8"

// Object is a downloaded object with the version it was read at.
type Object struct {
	Key  string
	ETag string
	Data []byte
}

// IsNotFound reports whether err is a missing bucket or object response.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrObjectNotFound) {
		return true
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return true
	}
	return false
}

// Stat returns the object's metadata, mapping missing objects to ErrObjectNotFound.
func Stat(ctx context.Context, c Client, bucket, key string) (minio.ObjectInfo, error) {
	info, err := c.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if IsNotFound(err) {
			return minio.ObjectInfo{}, fmt.Errorf("%w: %s/%s", ErrObjectNotFound, bucket, key)
		}
		return minio.ObjectInfo{}, fmt.Errorf("failed to stat %s/%s: %w", bucket, key, err)
	}
	return info, nil
}

// Download reads a whole object together with its ETag.
func Download(ctx context.Context, c Client, bucket, key string) (*Object, error) {
	info, err := Stat(ctx, c, bucket, key)
	if err != nil {
		return nil, err
	}

	rc, err := c.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", bucket, key, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", bucket, key, err)
	}
	return &Object{Key: key, ETag: info.ETag, Data: data}, nil
}

// Upload writes data as a single object.
func Upload(ctx context.Context, c Client, bucket, key string, data []byte, contentType string) error {
	_, err := c.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Copy duplicates an object within a bucket.
func Copy(ctx context.Context, c Client, bucket, src, dst string) error {
	_, err := c.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: bucket, Object: dst},
		minio.CopySrcOptions{Bucket: bucket, Object: src},
	)
	if err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return nil
}

// List returns the keys under prefix.
func List(ctx context.Context, c Client, bucket, prefix string) ([]string, error) {
	var keys []string
	for obj := range c.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s/%s: %w", bucket, prefix, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}
