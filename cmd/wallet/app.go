package main

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/cdp-wallet/evm"
	"github.com/AlexZinkM/cdp-wallet/internal/balance"
	"github.com/AlexZinkM/cdp-wallet/internal/client"
	"github.com/AlexZinkM/cdp-wallet/internal/config"
	"github.com/AlexZinkM/cdp-wallet/internal/logging"
	"github.com/AlexZinkM/cdp-wallet/internal/metrics"
	"github.com/AlexZinkM/cdp-wallet/internal/store"
	"github.com/AlexZinkM/cdp-wallet/internal/txlog"

	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// app is everything a command needs, built once per invocation.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
	accounts *store.AccountStore
	wallet   *evm.Wallet
	chain    *ethclient.Client
}

// appOptions select the optional parts of the wiring.
type appOptions struct {
	// chain dials the RPC; journal-only commands work offline without it.
	chain bool
	// credentials fails early, before any network call, when CDP credentials are missing.
	credentials bool
}

// newApp loads the config and wires the wallet.
func newApp(ctx context.Context, agent string, opts appOptions) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if agent != "" {
		if cfg, err = cfg.WithAgent(agent); err != nil {
			return nil, err
		}
	}

	if opts.credentials {
		if err := cfg.RequireCredentials(); err != nil {
			return nil, err
		}
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger.Debug("Config loaded", zap.Stringer("config", cfg))

	chain := cfg.Chain()
	cdp, err := client.NewCDPClient(client.CDPConfig{
		BaseURL:      cfg.CDPURL,
		APIKeyID:     cfg.APIKeyID,
		APIKeySecret: cfg.APIKeySecret,
		WalletSecret: cfg.WalletSecret,
		Network:      chain.Name,
		ChainID:      chain.ChainID,
	}, logger)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics.New(),
		accounts: store.NewAccountStore(cfg.AddressFilePath, cdp, logger),
	}

	deps := evm.Deps{
		Accounts:  a.accounts,
		Submitter: cdp,
		Journal:   txlog.New(cfg.TxLogDir, logger),
		Rates:     client.NewCoinGeckoClient(),
		Metrics:   a.metrics,
		Provider:  client.CDPProvider,
		Logger:    logger,
	}

	if opts.chain {
		a.chain, err = client.DialChain(ctx, cfg.RPCURL, chain.ChainID, logger)
		if err != nil {
			return nil, err
		}
		deps.Balances = balance.NewOracle(a.chain, logger, a.metrics)
	}

	a.wallet = evm.NewWallet(cfg, deps)
	return a, nil
}

func (a *app) close() {
	if a.chain != nil {
		a.chain.Close()
	}
	_ = a.logger.Sync()
}
