package profiles

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"ssh-to-terminal/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

var (
	// ErrBackupDisabled is returned when no storage client is configured.
	ErrBackupDisabled = errors.New("settings backup is disabled")
	// ErrJournalDisabled is returned when no journal store is configured.
	ErrJournalDisabled = errors.New("run journal is disabled")
)

const backupTimeLayout = "20060102T150405.000Z"

// BackupObject describes a stored settings snapshot.
type BackupObject struct {
	Key          string    `json:"key" yaml:"key"`
	Size         int64     `json:"size" yaml:"size"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified"`
}

// Backup uploads a settings snapshot and returns its object name. The bucket
// is created when missing.
func (s *Service) Backup(ctx context.Context, data []byte) (string, error) {
	if s.client == nil {
		return "", ErrBackupDisabled
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
		s.logger.Info("Created backup bucket", zap.String("bucket", s.bucket))
	}

	name := s.backupName(s.now())
	_, err = s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload settings backup: %w", err)
	}
	return name, nil
}

// ListBackups returns the stored snapshots, newest first.
func (s *Service) ListBackups(ctx context.Context) ([]BackupObject, error) {
	if s.client == nil {
		return nil, ErrBackupDisabled
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return []BackupObject{}, nil
	}

	opts := minio.ListObjectsOptions{Prefix: storage.ListPrefix(s.prefix), Recursive: true}

	backups := []BackupObject{}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list backups: %w", obj.Err)
		}
		backups = append(backups, BackupObject{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Key > backups[j].Key
	})
	return backups, nil
}

func (s *Service) backupName(t time.Time) string {
	return storage.ObjectKey(s.prefix, t.UTC().Format(backupTimeLayout)+"-settings.json")
}
