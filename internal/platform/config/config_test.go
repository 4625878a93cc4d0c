package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "usd", cfg.Currency)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, "pet-store", cfg.MongoDatabase)
	assert.Equal(t, "/uploads", cfg.UploadsBaseURL())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "port: \"9000\"\ncurrency: EUR\ndb_dsn: postgres://file\npublic_base_url: http://localhost:9000/\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("PORT", "7000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "eur", cfg.Currency)
	assert.Equal(t, BackendPostgres, cfg.StorageBackend)
	assert.Equal(t, "http://localhost:9000/uploads", cfg.UploadsBaseURL())
}

func TestLoad_MongoWinsInAutoMode(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://x")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendMongo, cfg.StorageBackend)
}

func TestLoad_ExplicitBackendNeedsConnection(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "redis")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
