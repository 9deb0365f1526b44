// Package mint defines the minting-portal collaborator. The on-screen
// minting flow (iframe, redirect, or native UI) lives outside the SDK;
// integrators supply an implementation of Portal.
package mint

import "context"

// Request describes the mint flow to open for a wallet.
type Request struct {
	Wallet   string
	ChainID  uint64
	Contract string
}

// Status enumerates mint flow outcomes.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusDismissed Status = "dismissed"
	StatusFailed    Status = "failed"
)

// Result is the outcome of a mint flow.
type Result struct {
	Status Status
	TxHash string
	Err    error
}

// Portal abstracts the minting flow.
type Portal interface {
	// OpenMint hands the user to the minting flow and blocks until it
	// resolves or ctx is cancelled.
	OpenMint(ctx context.Context, req Request) (Result, error)
}
