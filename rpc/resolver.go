package rpc

import (
	"fmt"
	"time"

	"github.com/gatekey/gatekey-go/shared/errors"
)

// ProviderKind tags the two supported provider configurations.
type ProviderKind string

const (
	KindNamed  ProviderKind = "named"
	KindCustom ProviderKind = "custom"
)

// Defaults applied when the corresponding Config fields are zero.
const (
	DefaultRetryAttempts = 3
	DefaultTimeout       = 30 * time.Second
)

// Config describes how to reach a chain. Either a named provider with an
// API key, or an explicit URL, plus optional fallback URLs tried in order
// after the primary.
type Config struct {
	Kind         ProviderKind
	ProviderName string
	APIKey       string
	CustomURL    string
	FallbackURLs []string

	// RetryAttempts is the per-endpoint attempt budget (default 3).
	RetryAttempts int
	// Timeout bounds each individual attempt (default 30s).
	Timeout time.Duration
}

func (c Config) retryAttempts() int {
	if c.RetryAttempts <= 0 {
		return DefaultRetryAttempts
	}
	return c.RetryAttempts
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// ResolvePool turns a provider configuration into an ordered endpoint
// pool for the given chain: resolved primary first, then the fallback
// URLs in the order supplied. Pure URL construction and table lookup; no
// network I/O, so failures here are immediate and never retried.
func ResolvePool(cfg Config, chainID uint64) (*Pool, error) {
	if chainID == 0 {
		return nil, errors.Config("INVALID_CHAIN_ID", "chain id must be a positive integer")
	}

	primary, err := resolvePrimaryURL(cfg, chainID)
	if err != nil {
		return nil, err
	}

	endpoints := make([]*Endpoint, 0, 1+len(cfg.FallbackURLs))
	endpoints = append(endpoints, NewEndpoint(primary, chainID))
	for _, url := range cfg.FallbackURLs {
		if url == "" {
			return nil, errors.Config("INVALID_FALLBACK_URL", "fallback URL must not be empty")
		}
		endpoints = append(endpoints, NewEndpoint(url, chainID))
	}

	return NewPool(endpoints)
}

func resolvePrimaryURL(cfg Config, chainID uint64) (string, error) {
	switch cfg.Kind {
	case KindNamed:
		if cfg.ProviderName == "" {
			return "", errors.Config("MISSING_PROVIDER_NAME", "provider name is required for a named provider")
		}
		if !knownProvider(cfg.ProviderName) {
			return "", errors.Config("UNKNOWN_PROVIDER",
				fmt.Sprintf("unsupported provider %q", cfg.ProviderName)).
				WithDetails("provider", cfg.ProviderName)
		}
		if cfg.APIKey == "" {
			return "", errors.Config("MISSING_API_KEY",
				fmt.Sprintf("API key is required for provider %q", cfg.ProviderName))
		}
		url, ok := namedProviderURL(cfg.ProviderName, chainID, cfg.APIKey)
		if !ok {
			return "", errors.Config("UNSUPPORTED_CHAIN",
				fmt.Sprintf("provider %q has no endpoint for chain %d", cfg.ProviderName, chainID)).
				WithDetails("provider", cfg.ProviderName).
				WithDetails("chain_id", chainID)
		}
		return url, nil
	case KindCustom:
		if cfg.CustomURL == "" {
			return "", errors.Config("MISSING_CUSTOM_URL", "custom URL is required for a custom provider")
		}
		return cfg.CustomURL, nil
	default:
		return "", errors.Config("INVALID_PROVIDER_KIND",
			fmt.Sprintf("provider kind must be %q or %q, got %q", KindNamed, KindCustom, cfg.Kind))
	}
}
