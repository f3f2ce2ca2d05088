package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "data", cfg.DataRoot)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.RetryCount)
	assert.Equal(t, 2500*time.Millisecond, cfg.RetryWait)
	assert.Equal(t, 500*time.Millisecond, cfg.ListDelay)
	assert.Equal(t, time.Second, cfg.DetailDelay)
	assert.Equal(t, "https://kokkai.ndl.go.jp/api", cfg.MinutesAPIURL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("DATA_ROOT", "/tmp/harvest")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "10")
	t.Setenv("DETAIL_DELAY_MS", "250")

	cfg := LoadConfig()
	assert.Equal(t, "/tmp/harvest", cfg.DataRoot)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.DetailDelay)
}

func TestValidate(t *testing.T) {
	cfg := LoadConfig()

	cfg.DataRoot = ""
	assert.Error(t, cfg.Validate())

	cfg = LoadConfig()
	cfg.RequestTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg = LoadConfig()
	cfg.DetailDelay = 0
	assert.Error(t, cfg.Validate())
}
