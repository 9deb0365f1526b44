// Package wallet defines the wallet-connection collaborator. Discovery
// and connection of browser or embedded wallets live outside the SDK;
// integrators supply an implementation of Connector.
package wallet

import "context"

// Account is one connected wallet account.
type Account struct {
	Address string
	ChainID uint64
}

// Event signals a change in the connected wallet.
type Event struct {
	Kind    EventKind
	Account Account
}

// EventKind enumerates wallet events.
type EventKind string

const (
	EventConnected    EventKind = "connected"
	EventDisconnected EventKind = "disconnected"
	EventChainChanged EventKind = "chain_changed"
)

// Connector abstracts a wallet provider.
type Connector interface {
	// Connect prompts the user to connect a wallet and returns the
	// selected account.
	Connect(ctx context.Context) (Account, error)
	// Accounts returns the currently connected accounts.
	Accounts(ctx context.Context) ([]Account, error)
	// SwitchChain asks the wallet to switch to the given chain.
	SwitchChain(ctx context.Context, chainID uint64) error
	// Disconnect ends the session.
	Disconnect(ctx context.Context) error
	// Events returns a channel of wallet events, closed on disconnect.
	Events() <-chan Event
}
