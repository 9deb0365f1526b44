package rpc

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/gatekey/gatekey-go/shared/errors"
	"github.com/gatekey/gatekey-go/shared/metrics"
	"github.com/gatekey/gatekey-go/shared/monitoring"
)

// Provider lifecycle states. The failed state is terminal; construct a
// new provider to retry initialization.
type state int32

const (
	stateUninitialized state = iota
	stateInitializing
	stateReady
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateInitializing:
		return "initializing"
	case stateReady:
		return "ready"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Provider drives operations across an endpoint pool: primary first, each
// endpoint retried under the configured policy, first success wins. The
// pool and policy are read-only after construction, so concurrent calls
// need no locking.
type Provider struct {
	chainID uint64
	pool    *Pool
	policy  Policy
	exec    *executor

	logger   zerolog.Logger
	recorder metrics.Recorder
	reporter monitoring.Reporter

	state atomic.Int32
}

// ProviderOption customizes a Provider.
type ProviderOption func(*providerOptions)

type providerOptions struct {
	logger   zerolog.Logger
	recorder metrics.Recorder
	reporter monitoring.Reporter
	limiter  *rate.Limiter
	backoff  time.Duration
}

// WithLogger injects a structured logger.
func WithLogger(logger zerolog.Logger) ProviderOption {
	return func(o *providerOptions) { o.logger = logger }
}

// WithMetrics injects a metrics recorder.
func WithMetrics(recorder metrics.Recorder) ProviderOption {
	return func(o *providerOptions) { o.recorder = recorder }
}

// WithReporter injects an error reporter.
func WithReporter(reporter monitoring.Reporter) ProviderOption {
	return func(o *providerOptions) { o.reporter = reporter }
}

// WithRateLimiter gates every attempt behind a client-side rate limiter,
// shared across all endpoints in the pool.
func WithRateLimiter(limiter *rate.Limiter) ProviderOption {
	return func(o *providerOptions) { o.limiter = limiter }
}

// WithBackoffBase overrides the base backoff delay between attempts.
func WithBackoffBase(d time.Duration) ProviderOption {
	return func(o *providerOptions) { o.backoff = d }
}

// NewProvider resolves the configuration into an endpoint pool. No
// network I/O happens until Initialize.
func NewProvider(cfg Config, chainID uint64, opts ...ProviderOption) (*Provider, error) {
	pool, err := ResolvePool(cfg, chainID)
	if err != nil {
		return nil, err
	}

	options := providerOptions{
		logger:   zerolog.Nop(),
		recorder: metrics.Noop{},
		reporter: monitoring.NopReporter{},
	}
	for _, opt := range opts {
		opt(&options)
	}

	policy := Policy{
		MaxAttempts: cfg.retryAttempts(),
		Timeout:     cfg.timeout(),
	}

	logger := options.logger.With().Uint64("chain_id", chainID).Logger()

	return &Provider{
		chainID:  chainID,
		pool:     pool,
		policy:   policy,
		exec:     newExecutor(policy, options.backoff, options.limiter, logger, options.recorder),
		logger:   logger,
		recorder: options.recorder,
		reporter: options.reporter,
	}, nil
}

// Initialize probes connectivity by fetching the current block number
// through the full failover sequence. The provider accepts calls only
// after the probe succeeds; a failed probe leaves it permanently failed.
func (p *Provider) Initialize(ctx context.Context) error {
	if !p.state.CompareAndSwap(int32(stateUninitialized), int32(stateInitializing)) {
		return errors.Config("ALREADY_INITIALIZED",
			fmt.Sprintf("provider is %s, expected uninitialized", state(p.state.Load())))
	}

	_, err := p.failover(ctx, blockNumberOp)
	if err != nil {
		p.state.Store(int32(stateFailed))
		p.recorder.Probe(false)
		p.logger.Error().Err(err).Msg("connectivity probe failed")
		return errors.RPC("CONNECT_FAILED", "failed to connect").WithCause(err)
	}

	p.state.Store(int32(stateReady))
	p.recorder.Probe(true)
	p.logger.Info().Int("endpoints", p.pool.Size()).Msg("provider ready")
	return nil
}

// CallContext runs the operation through the failover sequence and
// returns its result. It fails fast with a configuration error when the
// provider is not ready, without any network I/O.
func (p *Provider) CallContext(ctx context.Context, op Operation) (interface{}, error) {
	if state(p.state.Load()) != stateReady {
		return nil, errors.Config("NOT_INITIALIZED", "provider not initialized")
	}
	return p.failover(ctx, op)
}

// failover iterates the pool in order, delegating each endpoint to the
// executor. The first success short-circuits the sequence; total
// exhaustion yields one aggregated error carrying the last underlying
// failure.
func (p *Provider) failover(ctx context.Context, op Operation) (interface{}, error) {
	var lastErr error

	for _, ep := range p.pool.Endpoints() {
		outcome := p.exec.execute(ctx, ep, op)
		if outcome.Err == nil {
			return outcome.Result, nil
		}
		lastErr = outcome.Err
		p.recorder.Failover(ep.URL())
		p.logger.Warn().
			Str("endpoint", ep.URL()).
			Int("attempts", outcome.Attempts).
			Err(outcome.Err).
			Msg("endpoint exhausted, failing over")
	}

	err := errors.RPC("CALL_FAILED",
		fmt.Sprintf("RPC call failed after %d attempts: %s", p.policy.MaxAttempts, lastErr)).
		WithCause(lastErr)
	p.reporter.CaptureError(err, map[string]string{
		"chain_id": fmt.Sprintf("%d", p.chainID),
	})
	return nil, err
}

// BlockNumber returns the current chain height.
func (p *Provider) BlockNumber(ctx context.Context) (uint64, error) {
	result, err := p.CallContext(ctx, blockNumberOp)
	if err != nil {
		return 0, err
	}
	return result.(uint64), nil
}

// ChainID returns the configured chain id. No network I/O.
func (p *Provider) ChainID() uint64 {
	return p.chainID
}

// Endpoint returns the primary endpoint handle for collaborators that
// need direct low-level access.
func (p *Provider) Endpoint() *Endpoint {
	return p.pool.Primary()
}

// Ready reports whether the provider accepts calls.
func (p *Provider) Ready() bool {
	return state(p.state.Load()) == stateReady
}

// Close releases all endpoint connections.
func (p *Provider) Close() {
	p.pool.Close()
}

func blockNumberOp(ctx context.Context, ep *Endpoint) (interface{}, error) {
	client, err := ep.Eth(ctx)
	if err != nil {
		return nil, err
	}
	return client.BlockNumber(ctx)
}
