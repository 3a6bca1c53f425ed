package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // 確保不會讀到工作目錄下的 .env

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.False(t, cfg.IsProduction)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "Nu.", cfg.CurrencySymbol)
	assert.Equal(t, int64(100), cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Period)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("CURRENCY_SYMBOL", "$")
	t.Setenv("RATE_LIMIT", "5-S")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "$", cfg.CurrencySymbol)
	assert.Equal(t, int64(5), cfg.RateLimit.Limit)
	assert.Equal(t, time.Second, cfg.RateLimit.Period)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadInvalid(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("RATE_LIMIT", "lots")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("RATE_LIMIT", "1-M")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	_, err = Load()
	assert.Error(t, err)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
