package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, StorageBackendDatabase, cfg.Storage.Backend)
	assert.Equal(t, "0 8 * * MON", cfg.Email.DigestSchedule)
	assert.Equal(t, 5, cfg.Limits.LoginAttempts)
	assert.False(t, cfg.S3.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 12, cfg.JWT.BcryptCost)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("LEDGER_STORAGE", StorageBackendRedis)
	t.Setenv("LEDGER_SAVE_TIMEOUT", "3s")
	t.Setenv("BACKUPS_ENABLED", "true")
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("JWT_REFRESH_TTL", "48h")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, StorageBackendRedis, cfg.Storage.Backend)
	assert.Equal(t, 3*time.Second, cfg.Storage.SaveTimeout)
	assert.True(t, cfg.S3.Enabled)
	assert.Equal(t, 48*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, 8080, cfg.Server.Port, "invalid values fall back to the default")
}
