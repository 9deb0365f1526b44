// Package config builds SDK configuration from the environment.
package config

import (
	"time"

	"github.com/gatekey/gatekey-go/cache"
	"github.com/gatekey/gatekey-go/rpc"
	"github.com/gatekey/gatekey-go/shared/env"
	"github.com/gatekey/gatekey-go/shared/monitoring"
)

// Config is the full SDK configuration.
type Config struct {
	ChainID         uint64
	LicenseContract string

	RPC rpc.Config

	CacheBackend     string // "memory", "redis", or "postgres"
	CacheTTL         time.Duration
	CacheNegativeTTL time.Duration
	Redis            cache.RedisConfig
	Postgres         cache.PostgresConfig

	Sentry monitoring.SentryConfig

	LogLevel string
}

// NewConfig reads configuration from the environment, loading a .env
// file when present.
func NewConfig() *Config {
	env.Load()

	return &Config{
		ChainID:         env.GetUint64("GATEKEY_CHAIN_ID", 1),
		LicenseContract: env.GetString("GATEKEY_LICENSE_CONTRACT", ""),
		RPC: rpc.Config{
			Kind:          rpc.ProviderKind(env.GetString("GATEKEY_RPC_KIND", string(rpc.KindNamed))),
			ProviderName:  env.GetString("GATEKEY_RPC_PROVIDER", rpc.ProviderAlchemy),
			APIKey:        env.GetString("GATEKEY_RPC_API_KEY", ""),
			CustomURL:     env.GetString("GATEKEY_RPC_URL", ""),
			FallbackURLs:  env.GetStringSlice("GATEKEY_RPC_FALLBACK_URLS", nil),
			RetryAttempts: env.GetInt("GATEKEY_RPC_RETRY_ATTEMPTS", rpc.DefaultRetryAttempts),
			Timeout:       env.GetDuration("GATEKEY_RPC_TIMEOUT", rpc.DefaultTimeout),
		},
		CacheBackend:     env.GetString("GATEKEY_CACHE_BACKEND", "memory"),
		CacheTTL:         env.GetDuration("GATEKEY_CACHE_TTL", 10*time.Minute),
		CacheNegativeTTL: env.GetDuration("GATEKEY_CACHE_NEGATIVE_TTL", 30*time.Second),
		Redis: cache.RedisConfig{
			Host:     env.GetString("GATEKEY_REDIS_HOST", "localhost"),
			Port:     env.GetInt("GATEKEY_REDIS_PORT", 6379),
			Password: env.GetString("GATEKEY_REDIS_PASSWORD", ""),
			DB:       env.GetInt("GATEKEY_REDIS_DB", 0),
		},
		Postgres: cache.PostgresConfig{
			Host:     env.GetString("GATEKEY_POSTGRES_HOST", "localhost"),
			Port:     env.GetInt("GATEKEY_POSTGRES_PORT", 5432),
			User:     env.GetString("GATEKEY_POSTGRES_USER", "postgres"),
			Password: env.GetString("GATEKEY_POSTGRES_PASSWORD", ""),
			Database: env.GetString("GATEKEY_POSTGRES_DATABASE", "gatekey"),
			SSLMode:  env.GetString("GATEKEY_POSTGRES_SSL_MODE", "disable"),
		},
		Sentry: monitoring.SentryConfig{
			DSN:         env.GetString("SENTRY_DSN", ""),
			Environment: env.GetString("ENVIRONMENT", "development"),
			Release:     env.GetString("RELEASE_VERSION", ""),
		},
		LogLevel: env.GetString("GATEKEY_LOG_LEVEL", "info"),
	}
}
