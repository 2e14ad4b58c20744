package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"STOREFRONT_STORAGE_BACKEND", "STOREFRONT_ITEMS_PER_PAGE", "STOREFRONT_PAGINATION_SIBLINGS",
		"STOREFRONT_HISTORY_MODE", "STOREFRONT_SESSION_IDLE_TTL", "STOREFRONT_DEFAULT_TAB",
		"STOREFRONT_CATALOG_PATH", "STOREFRONT_ALLOWED_ORIGINS", "JWT_SECRET",
		"STOREFRONT_STORAGE_BREAKER_THRESHOLD", "STOREFRONT_STORAGE_BREAKER_COOLDOWN",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storefront.StorageBackend)
	assert.Equal(t, 5, cfg.Storefront.BreakerThreshold)
	assert.Equal(t, 30*time.Second, cfg.Storefront.BreakerCooldown)
	assert.Equal(t, 9, cfg.Storefront.ItemsPerPage)
	assert.Equal(t, 1, cfg.Storefront.PaginationSiblings)
	assert.Equal(t, "replace", cfg.Storefront.HistoryMode)
	assert.Equal(t, 30*time.Minute, cfg.Storefront.SessionIdleTTL)
	assert.Equal(t, "description", cfg.Storefront.DefaultTab)
	assert.Equal(t, []string{"*"}, cfg.Storefront.AllowedOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STOREFRONT_STORAGE_BACKEND", "Redis")
	t.Setenv("STOREFRONT_ITEMS_PER_PAGE", "12")
	t.Setenv("STOREFRONT_HISTORY_MODE", "push")
	t.Setenv("STOREFRONT_SESSION_IDLE_TTL", "5m")
	t.Setenv("STOREFRONT_ALLOWED_ORIGINS", "https://a.test, https://b.test")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Storefront.StorageBackend)
	assert.Equal(t, 12, cfg.Storefront.ItemsPerPage)
	assert.Equal(t, "push", cfg.Storefront.HistoryMode)
	assert.Equal(t, 5*time.Minute, cfg.Storefront.SessionIdleTTL)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.Storefront.AllowedOrigins)
	assert.Equal(t, "localhost:6380", cfg.RedisAddress())
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("STOREFRONT_ITEMS_PER_PAGE", "many")
	t.Setenv("STOREFRONT_SESSION_IDLE_TTL", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Storefront.ItemsPerPage)
	assert.Equal(t, 30*time.Minute, cfg.Storefront.SessionIdleTTL)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			JWT: JWTConfig{Secret: "s"},
			Storefront: StorefrontConfig{
				StorageBackend: "memory",
				HistoryMode:    "replace",
				ItemsPerPage:   9,
			},
		}
	}
	require.NoError(t, base().Validate())

	c := base()
	c.Storefront.StorageBackend = "sqlite"
	assert.Error(t, c.Validate())

	c = base()
	c.Storefront.HistoryMode = "jump"
	assert.Error(t, c.Validate())

	c = base()
	c.Storefront.ItemsPerPage = 0
	assert.Error(t, c.Validate())

	c = base()
	c.JWT.Secret = ""
	assert.Error(t, c.Validate())
}
