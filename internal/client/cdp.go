package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AlexZinkM/cdp-wallet/internal/model"
	"github.com/AlexZinkM/cdp-wallet/internal/walleterr"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	cdpAccountsPath = "/platform/v2/evm/accounts"
	// CDPProvider names the custody provider in reports.
	CDPProvider = "Coinbase CDP"
)

// CDPConfig holds what the custody client needs from the app config.
type CDPConfig struct {
	BaseURL      string
	APIKeyID     string
	APIKeySecret string
	WalletSecret string
	Network      string
	ChainID      int64
}

// CDPClient talks to the Coinbase Developer Platform server wallet API.
// Keys never leave CDP: it creates accounts and signs and broadcasts
// transactions on our behalf.
type CDPClient struct {
	baseURL    string
	host       string
	network    string
	chainID    *big.Int
	api        *apiSigner
	wallet     *walletSigner
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

// NewCDPClient creates a CDP client. Missing credentials are not an error
// here; calls that need them fail with a configuration error instead.
func NewCDPClient(cfg CDPConfig, logger *zap.Logger) (*CDPClient, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Host == "" {
		return nil, walleterr.Newf(walleterr.KindConfiguration, "invalid CDP_API_URL %q", cfg.BaseURL)
	}

	c := &CDPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		host:       u.Host,
		network:    cfg.Network,
		chainID:    big.NewInt(cfg.ChainID),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		now:        time.Now,
	}

	if cfg.APIKeyID != "" && cfg.APIKeySecret != "" {
		c.api, err = parseAPIKey(cfg.APIKeyID, cfg.APIKeySecret)
		if err != nil {
			return nil, walleterr.Wrap(walleterr.KindConfiguration, "invalid CDP_API_KEY_SECRET", err)
		}
	}
	if cfg.WalletSecret != "" {
		c.wallet, err = parseWalletSecret(cfg.WalletSecret)
		if err != nil {
			return nil, walleterr.Wrap(walleterr.KindConfiguration, "invalid CDP_WALLET_SECRET", err)
		}
	}

	return c, nil
}

// ============================================================================
// ACCOUNT OPERATIONS
// ============================================================================

// CreateAccount creates a new EVM server account and returns its address.
func (c *CDPClient) CreateAccount(ctx context.Context) (string, error) {
	if err := c.requireCredentials(); err != nil {
		return "", err
	}

	var result EVMAccount
	if err := c.post(ctx, cdpAccountsPath, map[string]any{}, &result); err != nil {
		return "", err
	}

	c.logger.Info("CDP account created", zap.String("address", result.Address))
	return result.Address, nil
}

// SendTransaction asks CDP to sign and broadcast an unsigned EIP-1559
// transaction from address. CDP fills nonce and gas.
func (c *CDPClient) SendTransaction(ctx context.Context, address string, tx *types.Transaction) (string, error) {
	if err := c.requireCredentials(); err != nil {
		return "", err
	}

	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", walleterr.Wrap(walleterr.KindInternal, "failed to serialize transaction", err)
	}

	payload := map[string]any{
		"network":     c.network,
		"transaction": hexutil.Encode(raw),
	}

	var result SendTransactionResult
	path := fmt.Sprintf("%s/%s/send/transaction", cdpAccountsPath, address)
	if err := c.post(ctx, path, payload, &result); err != nil {
		return "", err
	}
	if result.TransactionHash == "" {
		return "", walleterr.New(walleterr.KindTransport, "CDP returned no transaction hash")
	}

	return result.TransactionHash, nil
}

// Submit signs and broadcasts payload from account through CDP.
// It is a single call: it is never retried here.
func (c *CDPClient) Submit(ctx context.Context, account model.Account, payload *model.CallPayload) (string, error) {
	value := payload.Value
	if value == nil {
		value = new(big.Int)
	}
	to := payload.Target

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID: c.chainID,
		To:      &to,
		Value:   value,
		Data:    payload.Data,
	})

	c.logger.Info("Submitting transaction to CDP",
		zap.String("from", account.Address),
		zap.String("to", to.Hex()),
		zap.String("value", value.String()),
		zap.Int("data_len", len(payload.Data)),
		zap.String("network", c.network))

	return c.SendTransaction(ctx, account.Address, tx)
}

func (c *CDPClient) requireCredentials() error {
	if c.api == nil || c.wallet == nil {
		return walleterr.New(walleterr.KindConfiguration,
			"missing CDP credentials: set CDP_API_KEY_ID, CDP_API_KEY_SECRET and CDP_WALLET_SECRET")
	}
	return nil
}

// ============================================================================
// HTTP HELPERS
// ============================================================================

func (c *CDPClient) post(ctx context.Context, path string, payload, result any) error {
	return c.request(ctx, http.MethodPost, path, payload, result)
}

func (c *CDPClient) request(ctx context.Context, method, path string, payload, result any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return walleterr.Wrap(walleterr.KindInternal, "failed to marshal request", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return walleterr.Wrap(walleterr.KindInternal, "failed to create request", err)
	}

	uri := fmt.Sprintf("%s %s%s", method, c.host, path)
	now := c.now()

	bearer, err := c.api.token(uri, now)
	if err != nil {
		return walleterr.Wrap(walleterr.KindConfiguration, "failed to authenticate", err)
	}
	walletAuth, err := c.wallet.token(uri, body, now)
	if err != nil {
		return walleterr.Wrap(walleterr.KindConfiguration, "failed to authenticate", err)
	}

	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("X-Wallet-Auth", walletAuth)
	req.Header.Set("X-Idempotency-Key", uuid.NewString())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("CDP API request",
		zap.String("method", method),
		zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return walleterr.Wrap(walleterr.KindTransport, "CDP request failed", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return walleterr.Wrap(walleterr.KindTransport, "failed to read CDP response", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Error("CDP API error",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(bodyBytes)))
		return walleterr.Wrap(walleterr.KindTransport, "CDP request failed", parseAPIError(resp.StatusCode, bodyBytes))
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			return walleterr.Wrap(walleterr.KindTransport, "failed to decode CDP response", err)
		}
	}

	return nil
}

// APIError is the error body returned by CDP.
type APIError struct {
	Status        int    `json:"-"`
	ErrorType     string `json:"errorType"`
	ErrorMessage  string `json:"errorMessage"`
	CorrelationID string `json:"correlationId"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("API error (%d)", e.Status)
	if e.ErrorType != "" {
		msg += " " + e.ErrorType
	}
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	if e.CorrelationID != "" {
		msg += " (correlation id " + e.CorrelationID + ")"
	}
	return msg
}

func parseAPIError(status int, body []byte) error {
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(body, apiErr); err != nil || (apiErr.ErrorType == "" && apiErr.ErrorMessage == "") {
		apiErr.ErrorMessage = strings.TrimSpace(string(body))
	}
	return apiErr
}

// ============================================================================
// RESPONSE TYPES
// ============================================================================

type EVMAccount struct {
	Address   string `json:"address"`
	Name      string `json:"name,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type SendTransactionResult struct {
	TransactionHash string `json:"transactionHash"`
}
