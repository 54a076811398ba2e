package evm

import (
	"context"
	"fmt"
	"strconv"

	"github.com/AlexZinkM/cdp-wallet/internal/model"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// GetBalance gets USDC and ETH balances of the managed account, with an
// optional USD estimate of the ETH balance.
func (w *Wallet) GetBalance(ctx context.Context) (*model.BalanceResponse, error) {
	account, err := w.accounts.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}
	owner := ethcommon.HexToAddress(account.Address)

	usdc, err := w.balances.Balance(ctx, model.AssetToken, w.token, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get USDC balance: %w", err)
	}
	eth, err := w.balances.Balance(ctx, model.AssetNative, w.token, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get ETH balance: %w", err)
	}

	resp := &model.BalanceResponse{
		Address: account.Address,
		Network: w.chain.Name,
		USDC:    usdc.Human(),
		ETH:     eth.Human(),
	}

	if w.rates != nil {
		rate, err := w.rates.GetETHtoUSDrate(ctx)
		if err != nil {
			// the estimate is optional, balances are still valid
			w.logger.Warn("Failed to get ETH/USD rate", zap.Error(err))
			return resp, nil
		}

		// Calculate USD (use float only for display, not for critical operations)
		ethFloat, _ := strconv.ParseFloat(resp.ETH, 64)
		rateFloat, _ := strconv.ParseFloat(rate, 64)
		resp.ETHRate = rate
		resp.ETHUSD = fmt.Sprintf("%.2f", ethFloat*rateFloat)
	}

	return resp, nil
}
