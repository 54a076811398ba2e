package evm

import (
	"context"
	"fmt"
	"time"

	"github.com/AlexZinkM/cdp-wallet/internal/common"
	"github.com/AlexZinkM/cdp-wallet/internal/model"
	"github.com/AlexZinkM/cdp-wallet/internal/walleterr"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
)

// Check runs every validation of a transfer against fresh balances and returns
// the payload that would be submitted. Nothing is signed or sent.
func (w *Wallet) Check(ctx context.Context, req model.TransferRequest) (*model.CheckResponse, error) {
	account, balance, payload, err := w.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	return checkResponse(account, req, balance, payload), nil
}

// Transfer validates and submits a transfer from the managed account.
// The custody provider is called at most once; every call that reached it is
// journaled with its outcome.
func (w *Wallet) Transfer(ctx context.Context, req model.TransferRequest) (resp *model.PayResponse, err error) {
	defer func() { w.metrics.ObserveTransfer(req.Asset, err) }()

	if err := w.cfg.RequireCredentials(); err != nil {
		return nil, err
	}

	w.payMutex.Lock()
	defer w.payMutex.Unlock()

	if err := w.checkCooldown(); err != nil {
		return nil, err
	}

	account, _, payload, err := w.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	record := model.Transaction{
		Agent:     w.cfg.Agent,
		From:      account.Address,
		To:        req.Recipient,
		Asset:     req.Asset,
		Amount:    req.Amount,
		RawAmount: rawAmount(req, payload),
		Network:   w.chain.Name,
	}

	w.logger.Info("Submitting transfer",
		zap.String("from", account.Address),
		zap.String("to", req.Recipient),
		zap.String("asset", string(req.Asset)),
		zap.String("amount", req.Amount))

	txID, submitErr := w.submitter.Submit(ctx, account, payload)
	record.Timestamp = w.now().UTC()
	if submitErr != nil {
		record.Status = model.TransactionStatusFailed
		record.Error = submitErr.Error()
		w.record(record)
		return nil, fmt.Errorf("failed to send transaction: %w", submitErr)
	}

	record.TxID = txID
	record.Status = model.TransactionStatusSubmitted
	record.ExplorerURL = w.chain.TxURL(txID)
	w.record(record)

	w.logger.Info("Transfer submitted",
		zap.String("tx_id", txID),
		zap.String("explorer", record.ExplorerURL))

	return &model.PayResponse{
		TxID:        txID,
		ExplorerURL: record.ExplorerURL,
	}, nil
}

// prepare checks the request, resolves the account, reads the balance of the
// requested asset and validates the request against it.
func (w *Wallet) prepare(ctx context.Context, req model.TransferRequest) (model.Account, model.Balance, *model.CallPayload, error) {
	if req.Asset != model.AssetNative && req.Asset != model.AssetToken {
		return model.Account{}, model.Balance{}, nil, walleterr.Newf(walleterr.KindInvalidAmount, "unsupported asset %q", req.Asset)
	}

	// Request checks first: resolving may create the account.
	if _, err := w.guard.CheckRequest(req); err != nil {
		w.rejected(req, err)
		return model.Account{}, model.Balance{}, nil, err
	}

	account, err := w.accounts.Resolve(ctx)
	if err != nil {
		return model.Account{}, model.Balance{}, nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	// Check balance (raw units: USDC micro, ETH wei)
	balance, err := w.balances.Balance(ctx, req.Asset, w.token, ethcommon.HexToAddress(account.Address))
	if err != nil {
		return model.Account{}, model.Balance{}, nil, fmt.Errorf("failed to check balance: %w", err)
	}

	payload, err := w.guard.Validate(req, balance)
	if err != nil {
		w.rejected(req, err)
		return model.Account{}, model.Balance{}, nil, err
	}

	return account, balance, payload, nil
}

func (w *Wallet) rejected(req model.TransferRequest, err error) {
	w.logger.Warn("Transfer rejected",
		zap.String("to", req.Recipient),
		zap.String("asset", string(req.Asset)),
		zap.String("amount", req.Amount),
		zap.Error(err))
}

func (w *Wallet) checkCooldown() error {
	cooldown := w.cfg.Cooldown()
	if cooldown <= 0 {
		return nil
	}

	last, err := w.journal.Last(w.cfg.Agent, model.TransactionStatusSubmitted)
	if err != nil {
		return walleterr.Wrap(walleterr.KindInternal, "failed to read transaction journal", err)
	}
	if last == nil {
		return nil
	}

	elapsed := w.now().Sub(last.Timestamp)
	if elapsed < cooldown {
		remaining := cooldown - elapsed
		return walleterr.Newf(walleterr.KindCooldown, "cooldown active, please wait %v", remaining.Round(time.Second))
	}
	return nil
}

// record journals a submission attempt. The transfer outcome is already
// decided, so a journal failure is only logged.
func (w *Wallet) record(tx model.Transaction) {
	if _, err := w.journal.Append(tx); err != nil {
		w.logger.Error("Failed to journal transaction",
			zap.String("tx_id", tx.TxID),
			zap.String("status", string(tx.Status)),
			zap.Error(err))
	}
}

func rawAmount(req model.TransferRequest, payload *model.CallPayload) string {
	if req.Asset == model.AssetNative {
		return payload.Value.String()
	}
	raw, err := common.ParseUnits(req.Amount, req.Asset.Decimals())
	if err != nil {
		return ""
	}
	return raw.String()
}

func checkResponse(account model.Account, req model.TransferRequest, balance model.Balance, payload *model.CallPayload) *model.CheckResponse {
	return &model.CheckResponse{
		From:      account.Address,
		To:        req.Recipient,
		Asset:     req.Asset,
		Amount:    req.Amount,
		RawAmount: rawAmount(req, payload),
		Balance:   balance.Human(),
		Target:    payload.Target.Hex(),
		Data:      hexutil.Encode(payload.Data),
		Value:     payload.Value.String(),
	}
}
