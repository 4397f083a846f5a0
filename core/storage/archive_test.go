package storage_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fansly-utils/core/storage"
	"fansly-utils/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeSnapshotFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fansly-backup.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"accounts": []}`), 0o644))
	return path
}

func TestArchiveSnapshot(t *testing.T) {
	cfg := storage.Config{Bucket: "fansly-backups", Region: "us-east-1"}

	t.Run("Uploads To Existing Bucket", func(t *testing.T) {
		path := writeSnapshotFile(t)

		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "fansly-backups").Return(true, nil)
		client.On("PutObject", mock.Anything, "fansly-backups", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)

		object, err := storage.ArchiveSnapshot(context.Background(), client, cfg, path)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(object, "/fansly-backup.json"))
		client.AssertExpectations(t)
		client.AssertNotCalled(t, "MakeBucket")
	})

	t.Run("Creates Missing Bucket", func(t *testing.T) {
		path := writeSnapshotFile(t)

		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "fansly-backups").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "fansly-backups", minio.MakeBucketOptions{Region: "us-east-1"}).
			Return(nil)
		client.On("PutObject", mock.Anything, "fansly-backups", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)

		_, err := storage.ArchiveSnapshot(context.Background(), client, cfg, path)
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("Bucket Check Failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "fansly-backups").
			Return(false, fmt.Errorf("connection refused"))

		_, err := storage.ArchiveSnapshot(context.Background(), client, cfg, writeSnapshotFile(t))
		assert.Error(t, err)
	})

	t.Run("Missing Snapshot File", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "fansly-backups").Return(true, nil)

		_, err := storage.ArchiveSnapshot(context.Background(), client, cfg, "/nope/missing.json")
		assert.Error(t, err)
	})
}
