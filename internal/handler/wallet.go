package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AlexZinkM/cdp-wallet/internal/model"
	"github.com/AlexZinkM/cdp-wallet/internal/walleterr"

	"go.uber.org/zap"
)

// WalletService is the set of wallet use cases exposed over HTTP.
// *evm.Wallet satisfies it.
type WalletService interface {
	Account(ctx context.Context) (*model.AccountResponse, error)
	GetBalance(ctx context.Context) (*model.BalanceResponse, error)
	Check(ctx context.Context, req model.TransferRequest) (*model.CheckResponse, error)
	Transfer(ctx context.Context, req model.TransferRequest) (*model.PayResponse, error)
	GetTransactions(ctx context.Context, req *model.LogRequest) (*model.LogResponse, error)
}

// WalletHandler serves the wallet endpoints
type WalletHandler struct {
	wallet WalletService
	logger *zap.Logger
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(wallet WalletService, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{wallet: wallet, logger: logger}
}

// GetAccount handles GET /wallet/account
// @Summary      Get managed account
// @Description  Returns the custodial account address (created on first use), network and an address QR code
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.AccountResponse
// @Failure      503  {object}  model.ErrorResponse
// @Router       /wallet/account [get]
func (h *WalletHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	account, err := h.wallet.Account(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// GetBalance handles GET /wallet/balance
// @Summary      Get wallet balance (USD = ETH * rate)
// @Description  Gets USDC and ETH balance of the managed account with an ETH/USD estimate
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /wallet/balance [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	balance, err := h.wallet.GetBalance(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

// PayToken handles POST /wallet/pay/token
// @Summary      Send USDC
// @Description  Validates and submits a USDC transfer; the amount must be within the configured range
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.PayRequest  true  "Payment data"
// @Success      200      {object}  model.PayResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      422      {object}  model.ErrorResponse
// @Failure      429      {object}  model.ErrorResponse
// @Router       /wallet/pay/token [post]
func (h *WalletHandler) PayToken(w http.ResponseWriter, r *http.Request) {
	h.pay(w, r, model.AssetToken)
}

// PayNative handles POST /wallet/pay/native
// @Summary      Send ETH
// @Description  Validates and submits a native ETH transfer
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.PayRequest  true  "Payment data"
// @Success      200      {object}  model.PayResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      422      {object}  model.ErrorResponse
// @Failure      429      {object}  model.ErrorResponse
// @Router       /wallet/pay/native [post]
func (h *WalletHandler) PayNative(w http.ResponseWriter, r *http.Request) {
	h.pay(w, r, model.AssetNative)
}

func (h *WalletHandler) pay(w http.ResponseWriter, r *http.Request, asset model.Asset) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	payResp, err := h.wallet.Transfer(r.Context(), model.TransferRequest{
		Recipient: req.ToAddress,
		Amount:    req.Amount,
		Asset:     asset,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payResp)
}

// Check handles POST /wallet/check
// @Summary      Dry-run a transfer
// @Description  Runs every transfer check against fresh balances and returns the call payload without submitting it
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        asset    query     string            false  "ETH or USDC (default USDC)"
// @Param        request  body      model.PayRequest  true   "Payment data"
// @Success      200      {object}  model.CheckResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      422      {object}  model.ErrorResponse
// @Router       /wallet/check [post]
func (h *WalletHandler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	asset := model.AssetToken
	if s := r.URL.Query().Get("asset"); s != "" {
		parsed, err := model.ParseAsset(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
			return
		}
		asset = parsed
	}

	var req model.PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	check, err := h.wallet.Check(r.Context(), model.TransferRequest{
		Recipient: req.ToAddress,
		Amount:    req.Amount,
		Asset:     asset,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, check)
}

// TransactionHistory handles GET /wallet/transactions
// @Summary      Get journaled transfers
// @Description  Gets the agent's submitted and failed transfers with filtering capability (USDC and ETH)
// @Tags         wallet
// @Produce      json
// @Param        status  query     string  false  "Status: submitted or failed"
// @Param        txId    query     string  false  "Transaction ID"
// @Param        from    query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to      query     string  false  "End date (YYYY-MM-DD)"
// @Param        asset   query     string  false  "Filter by asset: USDC or ETH"
// @Success      200  {object}  model.LogResponse
// @Failure      400  {object}  model.ErrorResponse
// @Router       /wallet/transactions [get]
func (h *WalletHandler) TransactionHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	req, err := ParseLogRequest(r.URL.Query().Get)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	logResp, err := h.wallet.GetTransactions(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logResp)
}

// ParseLogRequest builds a journal filter from named string parameters.
// get returns "" for absent parameters.
func ParseLogRequest(get func(string) string) (*model.LogRequest, error) {
	var req model.LogRequest

	// Parse date parameters (YYYY-MM-DD)
	const dateLayout = "2006-01-02"
	if fromStr := get("from"); fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return nil, errors.New("invalid from date: use YYYY-MM-DD (e.g. 2006-01-02)")
		}
		req.From = &t
	}
	if toStr := get("to"); toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return nil, errors.New("invalid to date: use YYYY-MM-DD (e.g. 2006-01-02)")
		}
		// End of day so filter is inclusive
		t = t.Add(24*time.Hour - time.Nanosecond)
		req.To = &t
	}

	if statusStr := get("status"); statusStr != "" {
		status := model.TransactionStatus(strings.ToLower(statusStr))
		req.Status = &status
	}

	if txID := get("txId"); txID != "" {
		req.TxID = &txID
	}

	if assetStr := get("asset"); assetStr != "" {
		asset := model.Asset(strings.ToUpper(assetStr))
		req.Asset = &asset
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *WalletHandler) writeError(w http.ResponseWriter, err error) {
	status := walleterr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, model.ErrorResponse{
		Error: err.Error(),
		Code:  string(walleterr.KindOf(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
