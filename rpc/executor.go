package rpc

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/gatekey/gatekey-go/shared/metrics"
)

// backoffBase is the delay before the second attempt; attempt n waits
// backoffBase * 2^(n-1).
const backoffBase = 1 * time.Second

// Operation is one logical read against a connected endpoint. The engine
// decides where and how often it runs; the operation decides what it does.
type Operation func(ctx context.Context, ep *Endpoint) (interface{}, error)

// Policy bounds the executor's work on a single endpoint.
type Policy struct {
	// MaxAttempts is the attempt budget per endpoint.
	MaxAttempts int
	// Timeout bounds each individual attempt.
	Timeout time.Duration
}

// Outcome is the result of executing one operation against one endpoint:
// either a result, or the last error after the attempt budget is spent.
type Outcome struct {
	Result   interface{}
	Err      error
	Attempts int
}

// executor runs one operation against one endpoint with timeout
// enforcement and bounded exponential-backoff retry.
type executor struct {
	policy  Policy
	backoff time.Duration
	limiter *rate.Limiter
	logger  zerolog.Logger
	metrics metrics.Recorder
}

func newExecutor(policy Policy, backoff time.Duration, limiter *rate.Limiter, logger zerolog.Logger, recorder metrics.Recorder) *executor {
	if backoff <= 0 {
		backoff = backoffBase
	}
	return &executor{
		policy:  policy,
		backoff: backoff,
		limiter: limiter,
		logger:  logger,
		metrics: recorder,
	}
}

// execute runs op against ep until it succeeds or the attempt budget is
// exhausted. Backoff is never applied after the final attempt, so moving
// to the next endpoint carries no trailing wait.
func (e *executor) execute(ctx context.Context, ep *Endpoint, op Operation) Outcome {
	var lastErr error

	for attempt := 0; attempt < e.policy.MaxAttempts; attempt++ {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return Outcome{Err: err, Attempts: attempt}
			}
		}

		start := time.Now()
		result, err := e.attempt(ctx, ep, op)
		e.metrics.RPCAttempt(ep.URL(), err == nil, time.Since(start))

		if err == nil {
			return Outcome{Result: result, Attempts: attempt + 1}
		}
		lastErr = err

		e.logger.Warn().
			Str("endpoint", ep.URL()).
			Int("attempt", attempt+1).
			Int("max_attempts", e.policy.MaxAttempts).
			Err(err).
			Msg("rpc attempt failed")

		if ctx.Err() != nil {
			return Outcome{Err: lastErr, Attempts: attempt + 1}
		}

		if attempt < e.policy.MaxAttempts-1 {
			delay := e.backoff * (1 << attempt)
			select {
			case <-ctx.Done():
				return Outcome{Err: lastErr, Attempts: attempt + 1}
			case <-time.After(delay):
			}
		}
	}

	return Outcome{Err: lastErr, Attempts: e.policy.MaxAttempts}
}

// attempt races the operation against the per-attempt timeout. The result
// channel is buffered so a late completion is discarded without blocking
// the abandoned goroutine; the attempt context lets a well-behaved
// operation stop early, but the engine does not wait for it.
func (e *executor) attempt(ctx context.Context, ep *Endpoint, op Operation) (interface{}, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, e.policy.Timeout)
	defer cancel()

	type callResult struct {
		result interface{}
		err    error
	}
	resultCh := make(chan callResult, 1)

	go func() {
		result, err := op(attemptCtx, ep)
		resultCh <- callResult{result, err}
	}()

	select {
	case r := <-resultCh:
		return r.result, r.err
	case <-attemptCtx.Done():
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("timed out after %dms", e.policy.Timeout.Milliseconds())
	}
}
