package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tiendacr/backend-tienda/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"DATABASE_URL":                "postgres://localhost/tienda",
		"REDIS_URL":                   "redis://localhost:6379",
		"PORT":                        "",
		"BREAKDOWN_CACHE_TTL":         "",
		"QUOTE_RATE_LIMIT_WINDOW":     "",
		"QUOTE_RATE_LIMIT_MAX":        "",
		"PRICING_LEGACY_SHIPPING_FEE": "",
	})
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, 10*time.Minute, cfg.BreakdownCacheTTL)
	require.Equal(t, time.Minute, cfg.QuoteRateLimitWindow)
	require.Equal(t, 120, cfg.QuoteRateLimitMax)
	require.Equal(t, int64(3450), cfg.LegacyShippingFee)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"DATABASE_URL":                "postgres://localhost/tienda",
		"REDIS_URL":                   "redis://localhost:6379",
		"PORT":                        "9090",
		"BREAKDOWN_CACHE_TTL":         "30s",
		"PRICING_LEGACY_SHIPPING_FEE": "4000",
		"CORS_ALLOWED_ORIGINS":        "https://admin.tienda.cr, https://tienda.cr",
	})
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, 30*time.Second, cfg.BreakdownCacheTTL)
	require.Equal(t, int64(4000), cfg.LegacyShippingFee)
	require.Equal(t, []string{"https://admin.tienda.cr", "https://tienda.cr"}, cfg.CORSAllowedOrigins)
}

func TestLoadRequiresDatabase(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{
		"DATABASE_URL": "",
		"REDIS_URL":    "redis://localhost:6379",
	})
	require.Error(t, err)
}
