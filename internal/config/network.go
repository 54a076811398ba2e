package config

import "fmt"

// Network holds the fixed per-chain constants.
type Network struct {
	Name         string
	ChainID      int64
	RPCURL       string
	TokenAddress string // USDC contract
	ExplorerHost string
}

var networks = map[string]Network{
	"base": {
		Name:         "base",
		ChainID:      8453,
		RPCURL:       "https://mainnet.base.org",
		TokenAddress: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
		ExplorerHost: "basescan.org",
	},
	"base-sepolia": {
		Name:         "base-sepolia",
		ChainID:      84532,
		RPCURL:       "https://sepolia.base.org",
		TokenAddress: "0x036CbD53842c5426634e7929541eC2318f3dCF7e",
		ExplorerHost: "sepolia.basescan.org",
	},
}

// LookupNetwork returns the constants for a supported network name.
func LookupNetwork(name string) (Network, error) {
	n, ok := networks[name]
	if !ok {
		return Network{}, fmt.Errorf("unsupported network %q: use base or base-sepolia", name)
	}
	return n, nil
}

// TxURL returns the block explorer link for a transaction.
func (n Network) TxURL(txID string) string {
	return fmt.Sprintf("https://%s/tx/%s", n.ExplorerHost, txID)
}

// AddressURL returns the block explorer link for an address.
func (n Network) AddressURL(address string) string {
	return fmt.Sprintf("https://%s/address/%s", n.ExplorerHost, address)
}
