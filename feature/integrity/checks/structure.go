package checks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"elternaccounts/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrBucketMissing is returned when the configured bucket does not exist.
var ErrBucketMissing = errors.New("bucket does not exist")

// CheckBucket returns ErrBucketMissing when the bucket is absent.
func CheckBucket(ctx context.Context, client storage.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrBucketMissing, bucket)
	}
	return nil
}

// FixBucket creates the bucket.
func FixBucket(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger) error {
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	logger.Info("Created missing bucket", zap.String("bucket", bucket))
	return nil
}

// Folders returns the distinct folder prefixes of the given object keys, in order.
func Folders(keys ...string) []string {
	seen := make(map[string]bool)
	var folders []string
	for _, key := range keys {
		i := strings.LastIndex(key, "/")
		if i <= 0 {
			continue
		}
		folder := key[:i]
		if !seen[folder] {
			seen[folder] = true
			folders = append(folders, folder)
		}
	}
	return folders
}

// CheckStructure returns the folders without any object.
func CheckStructure(ctx context.Context, client storage.Client, bucket string, folders []string) ([]string, error) {
	if err := CheckBucket(ctx, client, bucket); err != nil {
		return nil, err
	}

	var missing []string
	for _, folder := range folders {
		opts := minio.ListObjectsOptions{
			Prefix:    strings.TrimSuffix(folder, "/") + "/",
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for range client.ListObjects(ctx, bucket, opts) {
			found = true
			break
		}

		if !found {
			missing = append(missing, folder)
		}
	}

	return missing, nil
}

// FixStructure creates placeholder objects for the missing folders.
func FixStructure(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		folderPath := strings.TrimSuffix(folder, "/") + "/"

		_, err := client.PutObject(ctx, bucket, folderPath, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}
