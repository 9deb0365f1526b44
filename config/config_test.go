package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gatekey/gatekey-go/rpc"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, uint64(1), cfg.ChainID)
	assert.Equal(t, rpc.KindNamed, cfg.RPC.Kind)
	assert.Equal(t, rpc.ProviderAlchemy, cfg.RPC.ProviderName)
	assert.Equal(t, rpc.DefaultRetryAttempts, cfg.RPC.RetryAttempts)
	assert.Equal(t, rpc.DefaultTimeout, cfg.RPC.Timeout)
	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
}

func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("GATEKEY_CHAIN_ID", "137")
	t.Setenv("GATEKEY_RPC_KIND", "custom")
	t.Setenv("GATEKEY_RPC_URL", "https://rpc.example.com")
	t.Setenv("GATEKEY_RPC_FALLBACK_URLS", "https://fb1.example.com,https://fb2.example.com")
	t.Setenv("GATEKEY_RPC_RETRY_ATTEMPTS", "5")
	t.Setenv("GATEKEY_RPC_TIMEOUT", "10s")
	t.Setenv("GATEKEY_LICENSE_CONTRACT", "0x1234567890123456789012345678901234567890")
	t.Setenv("GATEKEY_CACHE_BACKEND", "redis")

	cfg := NewConfig()

	assert.Equal(t, uint64(137), cfg.ChainID)
	assert.Equal(t, rpc.KindCustom, cfg.RPC.Kind)
	assert.Equal(t, "https://rpc.example.com", cfg.RPC.CustomURL)
	assert.Len(t, cfg.RPC.FallbackURLs, 2)
	assert.Equal(t, 5, cfg.RPC.RetryAttempts)
	assert.Equal(t, 10*time.Second, cfg.RPC.Timeout)
	assert.Equal(t, "0x1234567890123456789012345678901234567890", cfg.LicenseContract)
	assert.Equal(t, "redis", cfg.CacheBackend)
}

func TestConfigResolvesIntoPool(t *testing.T) {
	t.Setenv("GATEKEY_CHAIN_ID", "137")
	t.Setenv("GATEKEY_RPC_KIND", "named")
	t.Setenv("GATEKEY_RPC_PROVIDER", "alchemy")
	t.Setenv("GATEKEY_RPC_API_KEY", "k")

	cfg := NewConfig()
	pool, err := rpc.ResolvePool(cfg.RPC, cfg.ChainID)

	assert.NoError(t, err)
	assert.Equal(t, 1, pool.Size())
	assert.Contains(t, pool.Primary().URL(), "polygon")
	assert.Contains(t, pool.Primary().URL(), "k")
}
