// Package storage provides an abstraction layer for object storage services.
//
// The submission sheet, the registry export, the generated audit and accounts files and
// the sheet backups all live in one S3 compatible bucket (MinIO or AWS S3).
//
// # Client Interface
//
// Client is the subset of the MinIO client the service needs. It is mocked in
// core/storage/mocks for unit tests.
//
// # Helpers
//
//   - Download: reads a whole object and its ETag. The ETag versions the roster index cache.
//   - Upload: writes a byte slice as one object.
//   - Copy: server side copy, used for sheet backups.
//   - Stat, List, IsNotFound: lookups used by the integrity checks.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	obj, err := storage.Download(ctx, client, config.Bucket, "registry/export.csv")
package storage
