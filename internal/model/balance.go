package model

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/AlexZinkM/cdp-wallet/internal/common"
)

// Asset identifies which of the two supported assets a value refers to.
type Asset string

const (
	AssetNative Asset = "ETH"
	AssetToken  Asset = "USDC"
)

// ParseAsset accepts the asset symbol in any case.
func ParseAsset(s string) (Asset, error) {
	switch Asset(strings.ToUpper(strings.TrimSpace(s))) {
	case AssetNative:
		return AssetNative, nil
	case AssetToken:
		return AssetToken, nil
	default:
		return "", fmt.Errorf("unknown asset %q: use ETH or USDC", s)
	}
}

// Decimals returns the fixed decimal scale of the asset.
func (a Asset) Decimals() int {
	if a == AssetNative {
		return common.NativeDecimals
	}
	return common.TokenDecimals
}

// Balance is a freshly read on-chain balance in raw units.
type Balance struct {
	Asset Asset
	Raw   *big.Int
}

// Decimals returns the scale of Raw.
func (b Balance) Decimals() int {
	return b.Asset.Decimals()
}

// Human renders the balance in asset units without float arithmetic.
func (b Balance) Human() string {
	return common.FormatUnits(b.Raw, b.Decimals())
}

// BalanceResponse represents response for GET /wallet/balance
type BalanceResponse struct {
	Address string `json:"address"`
	Network string `json:"network"`
	USDC    string `json:"usdc"`
	ETH     string `json:"eth"`
	ETHRate string `json:"eth_usd_rate,omitempty"`
	ETHUSD  string `json:"eth_amount_in_usd,omitempty"`
}
