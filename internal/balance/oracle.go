package balance

import (
	"context"
	"math/big"
	"time"

	"github.com/AlexZinkM/cdp-wallet/internal/erc20"
	"github.com/AlexZinkM/cdp-wallet/internal/metrics"
	"github.com/AlexZinkM/cdp-wallet/internal/model"
	"github.com/AlexZinkM/cdp-wallet/internal/walleterr"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// ChainReader is the read-only part of the chain RPC the oracle needs.
// *ethclient.Client satisfies it.
type ChainReader interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Oracle reads native and token balances at the latest block.
// It never retries and never caches.
type Oracle struct {
	chain   ChainReader
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewOracle creates a balance oracle on top of a chain reader.
func NewOracle(chain ChainReader, logger *zap.Logger, m *metrics.Metrics) *Oracle {
	return &Oracle{chain: chain, logger: logger, metrics: m}
}

// NativeBalance returns the owner's ETH balance in wei.
func (o *Oracle) NativeBalance(ctx context.Context, owner common.Address) (*big.Int, error) {
	start := time.Now()
	balance, err := o.chain.BalanceAt(ctx, owner, nil)
	o.metrics.ObserveBalanceQuery(model.AssetNative, start, err)
	if err != nil {
		return nil, walleterr.Wrap(walleterr.KindTransport, "failed to get ETH balance", err)
	}
	if balance == nil {
		balance = new(big.Int)
	}

	o.logger.Debug("ETH balance retrieved",
		zap.String("address", owner.Hex()),
		zap.String("balance", balance.String()))
	return balance, nil
}

// TokenBalance returns the owner's balance of token in raw units
// by calling balanceOf(owner) on the token contract.
func (o *Oracle) TokenBalance(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	msg := ethereum.CallMsg{
		To:   &token,
		Data: erc20.EncodeBalanceOf(owner),
	}

	start := time.Now()
	result, err := o.chain.CallContract(ctx, msg, nil)
	o.metrics.ObserveBalanceQuery(model.AssetToken, start, err)
	if err != nil {
		return nil, walleterr.Wrap(walleterr.KindTransport, "failed to call balanceOf", err)
	}

	if len(result) == 0 {
		o.logger.Debug("Empty result from balanceOf call (address likely has no tokens)",
			zap.String("address", owner.Hex()),
			zap.String("token", token.Hex()))
	}

	balance, err := erc20.DecodeUint256(result)
	if err != nil {
		return nil, walleterr.Wrap(walleterr.KindTransport, "failed to decode balanceOf result", err)
	}

	o.logger.Debug("ERC-20 balance retrieved",
		zap.String("address", owner.Hex()),
		zap.String("token", token.Hex()),
		zap.String("balance", balance.String()))
	return balance, nil
}

// Balance reads the balance of one asset for owner.
func (o *Oracle) Balance(ctx context.Context, asset model.Asset, token, owner common.Address) (model.Balance, error) {
	var (
		raw *big.Int
		err error
	)
	switch asset {
	case model.AssetNative:
		raw, err = o.NativeBalance(ctx, owner)
	case model.AssetToken:
		raw, err = o.TokenBalance(ctx, token, owner)
	default:
		return model.Balance{}, walleterr.Newf(walleterr.KindInternal, "unsupported asset %q", asset)
	}
	if err != nil {
		return model.Balance{}, err
	}
	return model.Balance{Asset: asset, Raw: raw}, nil
}
