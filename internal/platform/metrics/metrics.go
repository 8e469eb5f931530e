package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Metrics holds all Prometheus metrics for the treasury
type Metrics struct {
	// Treasury metrics
	poolsCreated    prometheus.Counter
	contributions   *prometheus.CounterVec
	claimsSubmitted prometheus.Counter
	votesCast       *prometheus.CounterVec
	settlements     *prometheus.CounterVec
	payoutAmount    *prometheus.CounterVec
	ledgerMismatch  prometheus.Counter

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics instance on a private registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		poolsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "treasury_pools_created_total",
			Help: "Total number of pools created",
		}),
		contributions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treasury_contributions_total",
				Help: "Total contributed amount by currency",
			},
			[]string{"currency"},
		),
		claimsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "treasury_claims_submitted_total",
			Help: "Total number of claims submitted",
		}),
		votesCast: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treasury_votes_total",
				Help: "Total number of ballots by decision",
			},
			[]string{"decision"},
		),
		settlements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treasury_settlements_total",
				Help: "Settlement attempts by result",
			},
			[]string{"result"},
		),
		payoutAmount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treasury_payouts_total",
				Help: "Total paid out amount by currency",
			},
			[]string{"currency"},
		),
		ledgerMismatch: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "treasury_ledger_mismatches_total",
			Help: "Ledger reads whose entries did not replay to their recorded balances",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treasury_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "treasury_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.poolsCreated,
		m.contributions,
		m.claimsSubmitted,
		m.votesCast,
		m.settlements,
		m.payoutAmount,
		m.ledgerMismatch,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RecordPoolCreated counts a new pool.
func (m *Metrics) RecordPoolCreated() {
	if m == nil {
		return
	}
	m.poolsCreated.Inc()
}

// RecordContribution adds a funded amount.
func (m *Metrics) RecordContribution(currency string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.contributions.WithLabelValues(currency).Add(amount.InexactFloat64())
}

// RecordClaimSubmitted counts a new claim.
func (m *Metrics) RecordClaimSubmitted() {
	if m == nil {
		return
	}
	m.claimsSubmitted.Inc()
}

// RecordVote counts a ballot.
func (m *Metrics) RecordVote(decision bool) {
	if m == nil {
		return
	}
	m.votesCast.WithLabelValues(strconv.FormatBool(decision)).Inc()
}

// RecordSettlement counts a settlement attempt. result is "paid", "insufficient_funds" or "failed".
func (m *Metrics) RecordSettlement(result string) {
	if m == nil {
		return
	}
	m.settlements.WithLabelValues(result).Inc()
}

// RecordPayout adds a paid out amount.
func (m *Metrics) RecordPayout(currency string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.payoutAmount.WithLabelValues(currency).Add(amount.InexactFloat64())
}

// RecordLedgerMismatch counts a ledger read that failed reconciliation.
func (m *Metrics) RecordLedgerMismatch() {
	if m == nil {
		return
	}
	m.ledgerMismatch.Inc()
}

// RecordHTTPRequest records HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Handler returns the HTTP handler for metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// GinMiddleware records request counts and latency keyed by route template, not raw path.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
