package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoolRejectsEmpty(t *testing.T) {
	_, err := NewPool(nil)
	require.Error(t, err)
}

func TestPoolOrderAndPrimary(t *testing.T) {
	a := NewEndpoint("https://a.example.com", 1)
	b := NewEndpoint("https://b.example.com", 1)

	pool, err := NewPool([]*Endpoint{a, b})
	require.NoError(t, err)

	assert.Same(t, a, pool.Primary())
	assert.Equal(t, 2, pool.Size())

	endpoints := pool.Endpoints()
	require.Len(t, endpoints, 2)
	assert.Same(t, a, endpoints[0])
	assert.Same(t, b, endpoints[1])
}

func TestPoolEndpointsReturnsFreshSlice(t *testing.T) {
	a := NewEndpoint("https://a.example.com", 1)
	b := NewEndpoint("https://b.example.com", 1)
	pool, err := NewPool([]*Endpoint{a, b})
	require.NoError(t, err)

	first := pool.Endpoints()
	first[0], first[1] = first[1], first[0]

	second := pool.Endpoints()
	assert.Same(t, a, second[0])
	assert.Same(t, b, second[1])
}
