package rpc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatekey/gatekey-go/shared/errors"
)

func TestResolvePoolNamedProvider(t *testing.T) {
	cfg := Config{
		Kind:         KindNamed,
		ProviderName: ProviderAlchemy,
		APIKey:       "k",
	}

	pool, err := ResolvePool(cfg, 137)
	require.NoError(t, err)
	require.Equal(t, 1, pool.Size())

	url := pool.Primary().URL()
	assert.Contains(t, url, "polygon")
	assert.True(t, strings.HasSuffix(url, "/k"))
	assert.Equal(t, uint64(137), pool.Primary().ChainID())
}

func TestResolvePoolInfura(t *testing.T) {
	cfg := Config{
		Kind:         KindNamed,
		ProviderName: ProviderInfura,
		APIKey:       "secret",
	}

	pool, err := ResolvePool(cfg, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://mainnet.infura.io/v3/secret", pool.Primary().URL())
}

func TestResolvePoolUnsupportedChain(t *testing.T) {
	cfg := Config{
		Kind:         KindNamed,
		ProviderName: ProviderAlchemy,
		APIKey:       "k",
	}

	_, err := ResolvePool(cfg, 999999)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfiguration))
	assert.Contains(t, err.Error(), "999999")
}

func TestResolvePoolMissingAPIKey(t *testing.T) {
	cfg := Config{
		Kind:         KindNamed,
		ProviderName: ProviderAlchemy,
	}

	_, err := ResolvePool(cfg, 1)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfiguration))
}

func TestResolvePoolUnknownProvider(t *testing.T) {
	cfg := Config{
		Kind:         KindNamed,
		ProviderName: "quicknode",
		APIKey:       "k",
	}

	_, err := ResolvePool(cfg, 1)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfiguration))
}

func TestResolvePoolCustomProvider(t *testing.T) {
	cfg := Config{
		Kind:      KindCustom,
		CustomURL: "https://rpc.example.com",
	}

	pool, err := ResolvePool(cfg, 8453)
	require.NoError(t, err)
	assert.Equal(t, "https://rpc.example.com", pool.Primary().URL())
}

func TestResolvePoolMissingCustomURL(t *testing.T) {
	_, err := ResolvePool(Config{Kind: KindCustom}, 1)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfiguration))
}

func TestResolvePoolInvalidKind(t *testing.T) {
	_, err := ResolvePool(Config{Kind: "websocket"}, 1)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfiguration))
}

func TestResolvePoolZeroChainID(t *testing.T) {
	cfg := Config{Kind: KindCustom, CustomURL: "https://rpc.example.com"}
	_, err := ResolvePool(cfg, 0)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfiguration))
}

func TestResolvePoolFallbackOrder(t *testing.T) {
	cfg := Config{
		Kind:         KindCustom,
		CustomURL:    "https://primary.example.com",
		FallbackURLs: []string{"https://fb1.example.com", "https://fb2.example.com"},
	}

	pool, err := ResolvePool(cfg, 1)
	require.NoError(t, err)
	require.Equal(t, 3, pool.Size())

	endpoints := pool.Endpoints()
	assert.Equal(t, "https://primary.example.com", endpoints[0].URL())
	assert.Equal(t, "https://fb1.example.com", endpoints[1].URL())
	assert.Equal(t, "https://fb2.example.com", endpoints[2].URL())
}

func TestResolvePoolEmptyFallbackRejected(t *testing.T) {
	cfg := Config{
		Kind:         KindCustom,
		CustomURL:    "https://primary.example.com",
		FallbackURLs: []string{""},
	}

	_, err := ResolvePool(cfg, 1)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfiguration))
}

func TestResolvePoolIdempotent(t *testing.T) {
	cfg := Config{
		Kind:         KindNamed,
		ProviderName: ProviderAlchemy,
		APIKey:       "k",
		FallbackURLs: []string{"https://fb.example.com"},
	}

	first, err := ResolvePool(cfg, 137)
	require.NoError(t, err)
	second, err := ResolvePool(cfg, 137)
	require.NoError(t, err)

	require.Equal(t, first.Size(), second.Size())
	for i := range first.Endpoints() {
		assert.Equal(t, first.Endpoints()[i].URL(), second.Endpoints()[i].URL())
	}
}
