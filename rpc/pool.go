package rpc

import "github.com/gatekey/gatekey-go/shared/errors"

// Pool is an immutable, ordered sequence of endpoints: one primary
// followed by zero or more fallbacks. The order is significant and never
// changes after construction.
type Pool struct {
	endpoints []*Endpoint
}

// NewPool creates a pool from the given endpoints. The pool must be
// non-empty; the first endpoint is the primary.
func NewPool(endpoints []*Endpoint) (*Pool, error) {
	if len(endpoints) == 0 {
		return nil, errors.Config("EMPTY_POOL", "endpoint pool must contain at least one endpoint")
	}
	owned := make([]*Endpoint, len(endpoints))
	copy(owned, endpoints)
	return &Pool{endpoints: owned}, nil
}

// Endpoints returns the endpoints in failover order. Each call returns a
// fresh slice so a failover pass always starts from the primary.
func (p *Pool) Endpoints() []*Endpoint {
	out := make([]*Endpoint, len(p.endpoints))
	copy(out, p.endpoints)
	return out
}

// Primary returns the first endpoint in the pool.
func (p *Pool) Primary() *Endpoint {
	return p.endpoints[0]
}

// Size returns the number of endpoints in the pool.
func (p *Pool) Size() int {
	return len(p.endpoints)
}

// Close releases every endpoint connection that was established.
func (p *Pool) Close() {
	for _, ep := range p.endpoints {
		ep.Close()
	}
}
