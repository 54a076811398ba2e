package evm

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/AlexZinkM/cdp-wallet/internal/common"
	"github.com/AlexZinkM/cdp-wallet/internal/config"
	"github.com/AlexZinkM/cdp-wallet/internal/model"

	"go.uber.org/zap"
)

// GetTransactions gets the agent's journaled transfers with filtering.
// Totals count submitted transfers only.
func (w *Wallet) GetTransactions(ctx context.Context, req *model.LogRequest) (*model.LogResponse, error) {
	account, err := w.accounts.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	txs, err := w.journal.Query(w.cfg.Agent, req)
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	// Integer sums, no float precision loss
	sentWei, sentMicro := new(big.Int), new(big.Int)
	for _, tx := range txs {
		if tx.Status != model.TransactionStatusSubmitted {
			continue
		}
		raw, ok := new(big.Int).SetString(tx.RawAmount, 10)
		if !ok {
			w.logger.Warn("Skipping transaction with bad raw amount", zap.String("id", tx.ID))
			continue
		}
		switch tx.Asset {
		case model.AssetNative:
			sentWei.Add(sentWei, raw)
		case model.AssetToken:
			sentMicro.Add(sentMicro, raw)
		}
	}

	return &model.LogResponse{
		Address:      account.Address,
		Agent:        w.cfg.Agent,
		TotalSentETH: common.WeiToETH(sentWei),
		TotalSentUSD: common.MicroToUSDC(sentMicro),
		Transactions: txs,
	}, nil
}

// DailyReport aggregates every agent's journal for the UTC day of day.
func (w *Wallet) DailyReport(day time.Time) (*model.DailyReport, error) {
	report, err := w.journal.Report(day, config.Agents)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	return report, nil
}
