package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "https://apiv3.fansly.com/api/v1", cfg.API.BaseURL)
		assert.Equal(t, "fansly-backup.json", cfg.Backup.File)
		assert.Equal(t, "json", cfg.Database.Driver)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "fansly-backups", cfg.Storage.Bucket)
	})

	t.Run("Environment Overrides", func(t *testing.T) {
		t.Setenv("API_TOKEN", "secret")
		t.Setenv("DATABASE_DRIVER", "sqlite")
		t.Setenv("BACKUP_FILE", "other.json")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "secret", cfg.API.Token)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "other.json", cfg.Backup.File)
	})
}
