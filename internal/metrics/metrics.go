package metrics

import (
	"net/http"
	"time"

	"github.com/AlexZinkM/cdp-wallet/internal/model"
	"github.com/AlexZinkM/cdp-wallet/internal/walleterr"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the wallet collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	transfers      *prometheus.CounterVec
	balanceQueries *prometheus.HistogramVec
}

// New creates the collectors and registers them with a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wallet",
			Name:      "transfers_total",
			Help:      "Transfer attempts by asset and outcome.",
		}, []string{"asset", "outcome"}),
		balanceQueries: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wallet",
			Name:      "balance_query_seconds",
			Help:      "Latency of read-only balance queries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"asset", "result"}),
	}
	m.registry.MustRegister(
		m.transfers,
		m.balanceQueries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveTransfer counts a transfer outcome; err == nil means submitted.
func (m *Metrics) ObserveTransfer(asset model.Asset, err error) {
	if m == nil {
		return
	}
	outcome := "submitted"
	if err != nil {
		outcome = string(walleterr.KindOf(err))
	}
	m.transfers.WithLabelValues(string(asset), outcome).Inc()
}

// ObserveBalanceQuery records the latency of one balance query.
func (m *Metrics) ObserveBalanceQuery(asset model.Asset, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.balanceQueries.WithLabelValues(string(asset), result).Observe(time.Since(start).Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
