// Package rpc implements the RPC execution reliability engine: endpoint
// resolution, per-attempt timeout enforcement, exponential-backoff retry,
// and ordered failover across a primary endpoint and its fallbacks.
package rpc

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// Endpoint is an opaque handle to one blockchain node connection. Its
// identity (URL and chain id) is immutable after construction; the
// underlying connection is established lazily on first use and reused
// across calls.
type Endpoint struct {
	url     string
	chainID uint64

	mu        sync.Mutex
	rpcClient *gethrpc.Client
	ethClient *ethclient.Client
}

// NewEndpoint creates an endpoint handle for the given URL and chain id.
// No network I/O happens here.
func NewEndpoint(url string, chainID uint64) *Endpoint {
	return &Endpoint{url: url, chainID: chainID}
}

// URL returns the endpoint URL.
func (e *Endpoint) URL() string {
	return e.url
}

// ChainID returns the chain id this endpoint was configured for.
func (e *Endpoint) ChainID() uint64 {
	return e.chainID
}

// Eth returns the ethclient handle for this endpoint, dialing on first
// use. Dial failures surface as ordinary attempt failures to the executor.
func (e *Endpoint) Eth(ctx context.Context) (*ethclient.Client, error) {
	client, err := e.raw(ctx)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ethClient == nil {
		e.ethClient = ethclient.NewClient(client)
	}
	return e.ethClient, nil
}

// Raw returns the low-level JSON-RPC client for collaborators that need
// direct access, dialing on first use.
func (e *Endpoint) Raw(ctx context.Context) (*gethrpc.Client, error) {
	return e.raw(ctx)
}

func (e *Endpoint) raw(ctx context.Context) (*gethrpc.Client, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rpcClient != nil {
		return e.rpcClient, nil
	}
	client, err := gethrpc.DialContext(ctx, e.url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", e.url, err)
	}
	e.rpcClient = client
	return client, nil
}

// Close releases the underlying connection if one was established.
func (e *Endpoint) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rpcClient != nil {
		e.rpcClient.Close()
		e.rpcClient = nil
		e.ethClient = nil
	}
}
