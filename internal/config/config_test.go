package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_DRIVER", "")

	cfg := Load()

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "mongo", cfg.StoreDriver)
	require.Equal(t, 5*time.Minute, cfg.ProfileCacheTTL)
	require.Equal(t, 24, cfg.JWTExpireHours)
	require.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", " Memory ")
	t.Setenv("APP_ENV", "production")
	t.Setenv("WRITE_RATE_BURST", "3")

	cfg := Load()

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "memory", cfg.StoreDriver)
	require.Equal(t, 3, cfg.WriteRateBurst)
	require.True(t, cfg.IsProduction())
}
