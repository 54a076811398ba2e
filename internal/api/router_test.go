package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AlexZinkM/cdp-wallet/internal/metrics"
	"github.com/AlexZinkM/cdp-wallet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubWallet struct{}

func (stubWallet) Account(context.Context) (*model.AccountResponse, error) {
	return &model.AccountResponse{Address: "0x145177cd8f0AD7aDE30de1CF65B13f5f45E19e91"}, nil
}

func (stubWallet) GetBalance(context.Context) (*model.BalanceResponse, error) {
	return &model.BalanceResponse{}, nil
}

func (stubWallet) Check(context.Context, model.TransferRequest) (*model.CheckResponse, error) {
	return &model.CheckResponse{}, nil
}

func (stubWallet) Transfer(context.Context, model.TransferRequest) (*model.PayResponse, error) {
	return &model.PayResponse{}, nil
}

func (stubWallet) GetTransactions(context.Context, *model.LogRequest) (*model.LogResponse, error) {
	return &model.LogResponse{}, nil
}

func TestSetupRouter(t *testing.T) {
	srv := httptest.NewServer(SetupRouter(stubWallet{}, metrics.New(), zap.NewNop()))
	defer srv.Close()

	for _, path := range []string{"/wallet/account", "/wallet/balance", "/wallet/transactions", "/metrics", "/swagger/doc.json"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp, err := http.Get(srv.URL + "/unknown")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
