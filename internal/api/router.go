package api

import (
	"net/http"

	"github.com/AlexZinkM/cdp-wallet/internal/handler"
	"github.com/AlexZinkM/cdp-wallet/internal/metrics"

	_ "github.com/AlexZinkM/cdp-wallet/docs"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

//go:generate swag init -g router.go -d .,../handler,../model -o ../../docs --outputTypes go

// SetupRouter sets up router with handlers
//
// @title        CDP Wallet API
// @version      1.0
// @description  Custodial USDC/ETH wallet on Base backed by Coinbase Developer Platform server accounts.
// @BasePath     /
func SetupRouter(wallet handler.WalletService, m *metrics.Metrics, logger *zap.Logger) http.Handler {
	walletHandler := handler.NewWalletHandler(wallet, logger)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Prometheus
	if m != nil {
		mux.Handle("/metrics", m.Handler())
	}

	// Wallet endpoints
	mux.HandleFunc("/wallet/account", walletHandler.GetAccount)
	mux.HandleFunc("/wallet/balance", walletHandler.GetBalance)
	mux.HandleFunc("/wallet/check", walletHandler.Check)
	mux.HandleFunc("/wallet/transactions", walletHandler.TransactionHistory)
	mux.HandleFunc("/wallet/pay/token", walletHandler.PayToken)
	mux.HandleFunc("/wallet/pay/native", walletHandler.PayNative)

	return mux
}
