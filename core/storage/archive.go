package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
)

// ArchiveSnapshot uploads the snapshot file to the configured bucket under a
// timestamped object name, creating the bucket on first use. It returns the
// object name.
func ArchiveSnapshot(ctx context.Context, client Client, cfg Config, snapshotPath string) (string, error) {
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return "", fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return "", fmt.Errorf("create bucket: %w", err)
		}
	}

	file, err := os.Open(snapshotPath)
	if err != nil {
		return "", fmt.Errorf("open snapshot for archive: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat snapshot: %w", err)
	}

	objectName := fmt.Sprintf("%s/%s",
		time.Now().UTC().Format("2006-01-02T15-04-05Z"),
		filepath.Base(snapshotPath),
	)
	_, err = client.PutObject(ctx, cfg.Bucket, objectName, file, info.Size(), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("upload snapshot archive: %w", err)
	}
	return objectName, nil
}
