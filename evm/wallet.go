package evm

import (
	"context"
	"sync"
	"time"

	"github.com/AlexZinkM/cdp-wallet/internal/config"
	"github.com/AlexZinkM/cdp-wallet/internal/guard"
	"github.com/AlexZinkM/cdp-wallet/internal/metrics"
	"github.com/AlexZinkM/cdp-wallet/internal/model"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// AccountResolver returns the managed account, creating it on first use.
type AccountResolver interface {
	Resolve(ctx context.Context) (model.Account, error)
}

// BalanceReader reads one asset balance of owner.
type BalanceReader interface {
	Balance(ctx context.Context, asset model.Asset, token, owner ethcommon.Address) (model.Balance, error)
}

// Submitter signs and broadcasts a call payload from the managed account.
type Submitter interface {
	Submit(ctx context.Context, account model.Account, payload *model.CallPayload) (string, error)
}

// Journal records submission attempts.
type Journal interface {
	Append(tx model.Transaction) (model.Transaction, error)
	Query(agent string, req *model.LogRequest) ([]model.Transaction, error)
	Last(agent string, status model.TransactionStatus) (*model.Transaction, error)
	Report(day time.Time, agents []string) (*model.DailyReport, error)
}

// RateSource provides the display-only ETH/USD rate.
type RateSource interface {
	GetETHtoUSDrate(ctx context.Context) (string, error)
}

// Deps are the collaborators of a Wallet. Rates and Metrics are optional.
type Deps struct {
	Accounts  AccountResolver
	Balances  BalanceReader
	Submitter Submitter
	Journal   Journal
	Rates     RateSource
	Metrics   *metrics.Metrics
	Provider  string
	Logger    *zap.Logger
}

// Wallet runs the wallet use cases for one agent on top of the managed account.
type Wallet struct {
	cfg       *config.Config
	chain     config.Network
	token     ethcommon.Address
	guard     *guard.Guard
	accounts  AccountResolver
	balances  BalanceReader
	submitter Submitter
	journal   Journal
	rates     RateSource
	metrics   *metrics.Metrics
	provider  string
	logger    *zap.Logger

	// payMutex serialises transfers so the cooldown check and the
	// journal write cannot interleave within one process.
	payMutex sync.Mutex
	now      func() time.Time
}

// NewWallet wires a wallet from the config and its collaborators.
func NewWallet(cfg *config.Config, deps Deps) *Wallet {
	chain := cfg.Chain()
	token := ethcommon.HexToAddress(chain.TokenAddress)
	min, max := cfg.TransferBounds()

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Wallet{
		cfg:       cfg,
		chain:     chain,
		token:     token,
		guard:     guard.New(guard.Policy{Token: token, Min: min, Max: max}),
		accounts:  deps.Accounts,
		balances:  deps.Balances,
		submitter: deps.Submitter,
		journal:   deps.Journal,
		rates:     deps.Rates,
		metrics:   deps.Metrics,
		provider:  deps.Provider,
		logger:    logger.With(zap.String("agent", cfg.Agent)),
		now:       time.Now,
	}
}

// Agent returns the logical identity this wallet acts for.
func (w *Wallet) Agent() string {
	return w.cfg.Agent
}

// Chain returns the network the wallet operates on.
func (w *Wallet) Chain() config.Network {
	return w.chain
}
