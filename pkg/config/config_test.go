package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("IMPORT_CONCURRENCY", "0")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("DEFAULT_OWNER_ID", "owner-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 1, cfg.ImportConcurrency)
	assert.True(t, cfg.MinioUseSSL)
	assert.Equal(t, "owner-1", cfg.DefaultOwnerID)
	assert.Equal(t, int64(5), cfg.MaxUploadSizeMB)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MAX_UPLOAD_SIZE_MB", "lots")
	t.Setenv("IMPORT_CONCURRENCY", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(5), cfg.MaxUploadSizeMB)
	assert.Equal(t, 4, cfg.ImportConcurrency)
}
