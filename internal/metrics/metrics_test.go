package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AlexZinkM/cdp-wallet/internal/model"
	"github.com/AlexZinkM/cdp-wallet/internal/walleterr"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveTransfer(t *testing.T) {
	m := New()
	m.ObserveTransfer(model.AssetToken, nil)
	m.ObserveTransfer(model.AssetToken, walleterr.New(walleterr.KindInsufficientBalance, "short"))
	m.ObserveTransfer(model.AssetToken, walleterr.New(walleterr.KindInsufficientBalance, "short"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.transfers.WithLabelValues("USDC", "submitted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.transfers.WithLabelValues("USDC", "insufficient_balance")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveTransfer(model.AssetNative, nil)
	m.ObserveBalanceQuery(model.AssetNative, time.Now(), errors.New("x"))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveBalanceQuery(model.AssetNative, time.Now(), nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wallet_balance_query_seconds")
}
