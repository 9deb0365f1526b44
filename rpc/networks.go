package rpc

import "fmt"

// Named provider identifiers accepted in Config.ProviderName.
const (
	ProviderAlchemy = "alchemy"
	ProviderInfura  = "infura"
)

// alchemyNetworks maps chain ids to Alchemy network segments.
var alchemyNetworks = map[uint64]string{
	1:        "eth-mainnet",
	11155111: "eth-sepolia",
	137:      "polygon-mainnet",
	80002:    "polygon-amoy",
	42161:    "arb-mainnet",
	421614:   "arb-sepolia",
	10:       "opt-mainnet",
	8453:     "base-mainnet",
	84532:    "base-sepolia",
}

// infuraNetworks maps chain ids to Infura network segments.
var infuraNetworks = map[uint64]string{
	1:        "mainnet",
	11155111: "sepolia",
	137:      "polygon-mainnet",
	80002:    "polygon-amoy",
	42161:    "arbitrum-mainnet",
	421614:   "arbitrum-sepolia",
	10:       "optimism-mainnet",
	8453:     "base-mainnet",
	84532:    "base-sepolia",
}

// namedProviderURL builds the endpoint URL for a named provider. The
// lookup tables are static; an absent entry means the provider does not
// serve that chain.
func namedProviderURL(provider string, chainID uint64, apiKey string) (string, bool) {
	switch provider {
	case ProviderAlchemy:
		segment, ok := alchemyNetworks[chainID]
		if !ok {
			return "", false
		}
		return fmt.Sprintf("https://%s.g.alchemy.com/v2/%s", segment, apiKey), true
	case ProviderInfura:
		segment, ok := infuraNetworks[chainID]
		if !ok {
			return "", false
		}
		return fmt.Sprintf("https://%s.infura.io/v3/%s", segment, apiKey), true
	default:
		return "", false
	}
}

// knownProvider reports whether the name is a supported named provider.
func knownProvider(provider string) bool {
	return provider == ProviderAlchemy || provider == ProviderInfura
}
