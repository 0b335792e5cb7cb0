package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("NOTICE_TTL", "5s")
	t.Setenv("JWT_EXPIRATION_TIME", "1h")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, 5*time.Second, cfg.NoticeTTL)
	assert.Equal(t, time.Hour, cfg.JWTExpirationTime)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_YAMLFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "tasks_collection: items\ntimezone: UTC\nstorage_driver: postgres\npostgres_dsn: postgres://localhost/tasks\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("CELEBRATION_TTL", "10s")
	t.Setenv("STORAGE_DRIVER", "postgres")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "postgres://localhost/tasks", cfg.PostgresDSN)
	assert.Equal(t, 10*time.Second, cfg.CelebrationTTL)
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
}

func TestValidate(t *testing.T) {
	base := Config{StorageDriver: DriverMemory, Timezone: "UTC"}
	assert.NoError(t, base.Validate())

	mongo := base
	mongo.StorageDriver = DriverMongo
	assert.Error(t, mongo.Validate())
	mongo.Database.URI = "mongodb://localhost:27017"
	assert.NoError(t, mongo.Validate())

	pg := base
	pg.StorageDriver = DriverPostgres
	assert.Error(t, pg.Validate())

	unknown := base
	unknown.StorageDriver = "sqlite"
	assert.Error(t, unknown.Validate())

	badZone := base
	badZone.Timezone = "Not/AZone"
	assert.Error(t, badZone.Validate())
}

func TestClockUsesConfiguredZone(t *testing.T) {
	clock, err := Config{Timezone: "UTC"}.Clock()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, clock().Location())
}

func TestDatabaseClientOptions(t *testing.T) {
	opts := DatabaseConfig{
		URI:             "mongodb://localhost:27017",
		MaxPoolSize:     20,
		MinPoolSize:     2,
		MaxConnIdleTime: time.Minute,
		RetryWrites:     true,
	}.ClientOptions()

	require.NotNil(t, opts.MaxPoolSize)
	assert.Equal(t, uint64(20), *opts.MaxPoolSize)
	assert.Equal(t, uint64(2), *opts.MinPoolSize)
	assert.Equal(t, time.Minute, *opts.MaxConnIdleTime)
	assert.True(t, *opts.RetryWrites)
}
