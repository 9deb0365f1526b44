package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigErrorNotRecoverable(t *testing.T) {
	err := Config("MISSING_API_KEY", "API key is required")

	assert.Equal(t, KindConfiguration, err.Kind)
	assert.False(t, err.Recoverable)
	assert.True(t, IsKind(err, KindConfiguration))
	assert.False(t, IsRecoverable(err))
}

func TestRPCErrorRecoverable(t *testing.T) {
	err := RPC("CALL_FAILED", "RPC call failed after 3 attempts: boom")

	assert.Equal(t, KindRPC, err.Kind)
	assert.True(t, err.Recoverable)
	assert.True(t, IsRecoverable(err))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := RPC("CONNECT_FAILED", "failed to connect").WithCause(cause)

	assert.Contains(t, err.Error(), "CONNECT_FAILED")
	assert.Contains(t, err.Error(), "failed to connect")
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestIsKindThroughWrapping(t *testing.T) {
	inner := RPC("CALL_FAILED", "exhausted")
	wrapped := fmt.Errorf("verify license: %w", inner)

	assert.True(t, IsKind(wrapped, KindRPC))
	assert.True(t, IsRecoverable(wrapped))
	assert.False(t, IsKind(wrapped, KindConfiguration))
}

func TestIsKindPlainError(t *testing.T) {
	assert.False(t, IsKind(stderrors.New("plain"), KindRPC))
	assert.False(t, IsRecoverable(stderrors.New("plain")))
}

func TestWithDetails(t *testing.T) {
	err := Config("UNSUPPORTED_CHAIN", "no endpoint for chain").
		WithDetails("chain_id", uint64(999)).
		WithDetails("provider", "alchemy")

	assert.Equal(t, uint64(999), err.Details["chain_id"])
	assert.Equal(t, "alchemy", err.Details["provider"])
}
