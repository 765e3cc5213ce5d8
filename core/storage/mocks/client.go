// Package mocks provides a testify mock of storage.Client plus helpers for the object
// calls a reconciliation run makes.
package mocks

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client
type Client struct {
	mock.Mock
}

// ExpectStat answers StatObject for key with the given ETag.
func (m *Client) ExpectStat(bucket, key, etag string) *mock.Call {
	return m.On("StatObject", mock.Anything, bucket, key, minio.StatObjectOptions{}).
		Return(minio.ObjectInfo{Key: key, ETag: etag}, nil)
}

// ExpectDownload answers a single GetObject for key with content.
func (m *Client) ExpectDownload(bucket, key, content string) *mock.Call {
	return m.On("GetObject", mock.Anything, bucket, key, minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader(content)), nil).Once()
}

// CaptureUploads accepts every PutObject into bucket and records the body per key.
func (m *Client) CaptureUploads(bucket string, captured map[string]string) *mock.Call {
	return m.On("PutObject", mock.Anything, bucket, mock.AnythingOfType("string"), mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			data, _ := io.ReadAll(args.Get(3).(io.Reader))
			captured[args.String(2)] = string(data)
		}).
		Return(minio.UploadInfo{}, nil)
}

func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *Client) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return m.Called(ctx, bucketName, opts).Error(0)
}

func (m *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *Client) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *Client) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

func (m *Client) CopyObject(ctx context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, dst, src)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

// ListObjects returns the configured channel, or a closed one when the call returns nil.
func (m *Client) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	if ch, ok := m.Called(ctx, bucketName, opts).Get(0).(<-chan minio.ObjectInfo); ok {
		return ch
	}
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}
