// Package license checks ownership of a license token for a player
// wallet against an EVM chain, going through the RPC reliability engine
// for every read.
package license

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/sha3"

	"github.com/gatekey/gatekey-go/cache"
	"github.com/gatekey/gatekey-go/rpc"
	"github.com/gatekey/gatekey-go/shared/errors"
	"github.com/gatekey/gatekey-go/shared/metrics"
	"github.com/gatekey/gatekey-go/shared/monitoring"
)

// balanceOf is the only ERC-721 read the verifier needs.
const erc721ABI = `[{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`

// Caller is the slice of the RPC provider the verifier depends on.
type Caller interface {
	CallContext(ctx context.Context, op rpc.Operation) (interface{}, error)
	ChainID() uint64
}

// Verification is the outcome of a license check.
type Verification struct {
	Licensed  bool      `json:"licensed"`
	Balance   string    `json:"balance"`
	CheckedAt time.Time `json:"checked_at"`
}

// Verifier checks license ownership via balanceOf on the license
// contract. Results are cached; a negative result uses a shorter TTL so a
// fresh mint is picked up quickly.
type Verifier struct {
	caller   Caller
	contract common.Address
	parsed   abi.ABI

	cache       cache.Cache
	ttl         time.Duration
	negativeTTL time.Duration

	logger   zerolog.Logger
	recorder metrics.Recorder
	reporter monitoring.Reporter
}

// VerifierOption customizes a Verifier.
type VerifierOption func(*Verifier)

// WithCache enables result caching with the given TTLs.
func WithCache(c cache.Cache, ttl, negativeTTL time.Duration) VerifierOption {
	return func(v *Verifier) {
		v.cache = c
		v.ttl = ttl
		v.negativeTTL = negativeTTL
	}
}

// WithLogger injects a structured logger.
func WithLogger(logger zerolog.Logger) VerifierOption {
	return func(v *Verifier) { v.logger = logger }
}

// WithMetrics injects a metrics recorder.
func WithMetrics(recorder metrics.Recorder) VerifierOption {
	return func(v *Verifier) { v.recorder = recorder }
}

// WithReporter injects an error reporter.
func WithReporter(reporter monitoring.Reporter) VerifierOption {
	return func(v *Verifier) { v.reporter = reporter }
}

// NewVerifier creates a verifier for the given license contract address.
func NewVerifier(caller Caller, contract string, opts ...VerifierOption) (*Verifier, error) {
	if !common.IsHexAddress(contract) {
		return nil, errors.Config("INVALID_CONTRACT_ADDRESS",
			fmt.Sprintf("invalid license contract address %q", contract))
	}

	parsed, err := abi.JSON(strings.NewReader(erc721ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC-721 ABI: %w", err)
	}

	v := &Verifier{
		caller:   caller,
		contract: common.HexToAddress(contract),
		parsed:   parsed,
		logger:   zerolog.Nop(),
		recorder: metrics.Noop{},
		reporter: monitoring.NopReporter{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Verify reports whether the wallet holds at least one license token.
func (v *Verifier) Verify(ctx context.Context, wallet string) (Verification, error) {
	if !common.IsHexAddress(wallet) {
		return Verification{}, errors.Config("INVALID_WALLET_ADDRESS",
			fmt.Sprintf("invalid wallet address %q", wallet))
	}
	owner := common.HexToAddress(wallet)

	key := v.cacheKey(owner)
	if v.cache != nil {
		if cached, ok := v.lookupCache(ctx, key); ok {
			return cached, nil
		}
	}

	balance, err := v.balanceOf(ctx, owner)
	if err != nil {
		v.reporter.CaptureError(err, map[string]string{
			"contract": v.contract.Hex(),
			"wallet":   owner.Hex(),
		})
		return Verification{}, err
	}

	verification := Verification{
		Licensed:  balance.Sign() > 0,
		Balance:   balance.String(),
		CheckedAt: time.Now().UTC(),
	}

	v.logger.Info().
		Str("wallet", owner.Hex()).
		Bool("licensed", verification.Licensed).
		Str("balance", verification.Balance).
		Msg("license verified")

	if v.cache != nil {
		v.storeCache(ctx, key, verification)
	}
	return verification, nil
}

func (v *Verifier) balanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	data, err := v.parsed.Pack("balanceOf", owner)
	if err != nil {
		return nil, fmt.Errorf("failed to pack balanceOf call: %w", err)
	}

	msg := ethereum.CallMsg{To: &v.contract, Data: data}
	raw, err := v.caller.CallContext(ctx, func(ctx context.Context, ep *rpc.Endpoint) (interface{}, error) {
		client, err := ep.Eth(ctx)
		if err != nil {
			return nil, err
		}
		return client.CallContract(ctx, msg, nil)
	})
	if err != nil {
		return nil, err
	}

	results, err := v.parsed.Unpack("balanceOf", raw.([]byte))
	if err != nil {
		return nil, fmt.Errorf("failed to unpack balanceOf result: %w", err)
	}
	balance, ok := results[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected balanceOf result type %T", results[0])
	}
	return balance, nil
}

func (v *Verifier) lookupCache(ctx context.Context, key string) (Verification, bool) {
	value, ok, err := v.cache.Get(ctx, key)
	if err != nil {
		v.logger.Warn().Err(err).Msg("cache lookup failed")
		return Verification{}, false
	}
	v.recorder.CacheLookup(ok)
	if !ok {
		return Verification{}, false
	}
	var verification Verification
	if err := json.Unmarshal([]byte(value), &verification); err != nil {
		v.logger.Warn().Err(err).Msg("discarding undecodable cache entry")
		return Verification{}, false
	}
	return verification, true
}

func (v *Verifier) storeCache(ctx context.Context, key string, verification Verification) {
	encoded, err := json.Marshal(verification)
	if err != nil {
		return
	}
	ttl := v.ttl
	if !verification.Licensed {
		ttl = v.negativeTTL
	}
	if err := v.cache.Set(ctx, key, string(encoded), ttl); err != nil {
		v.logger.Warn().Err(err).Msg("cache store failed")
	}
}

// cacheKey hashes chain id, contract, and wallet so keys stay fixed-size
// and never leak addresses into cache backends in clear text.
func (v *Verifier) cacheKey(owner common.Address) string {
	sum := sha3.Sum256([]byte(fmt.Sprintf("%d|%s|%s", v.caller.ChainID(), v.contract.Hex(), owner.Hex())))
	return "license:v1:" + hex.EncodeToString(sum[:])
}
