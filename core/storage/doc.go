// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client and is used to keep copies of the terminal
// settings file before each write. Both AWS S3 and self-hosted MinIO work.
//
// # Client Interface
//
// The Client interface exposes only what backups need, making it easy to
// mock storage interactions in unit tests (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: ensure the backup bucket is present.
//   - PutObject: upload a settings snapshot.
//   - ListObjects: enumerate existing snapshots.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Backup)
//	exists, err := client.BucketExists(ctx, cfg.Backup.Bucket)
package storage
