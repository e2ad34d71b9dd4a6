// Package metrics provides Prometheus metrics for the FOIL ticket service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the FOIL service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Economy metrics
	ticketsPurchased *prometheus.CounterVec
	ticketsClaimed   *prometheus.CounterVec
	spendTotal       prometheus.Counter
	payoutTotal      prometheus.Counter
	tokensGranted    prometheus.Counter
	backstopConsumed prometheus.Counter

	// Progression metrics
	levelUps     prometheus.Counter
	vendorLevel  prometheus.Gauge
	badgeCount   prometheus.Gauge
	moneyBalance prometheus.Gauge
	tokenBalance prometheus.Gauge

	// Persistence metrics
	saveErrors  prometheus.Counter
	saveLatency prometheus.Histogram

	// Event bus metrics
	eventsPublished *prometheus.CounterVec
	eventsDropped   *prometheus.CounterVec

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "foil",
		subsystem:        "game",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.ticketsPurchased = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "tickets_purchased_total",
			Help:      "Total number of tickets purchased by tier",
		},
		[]string{"tier"},
	)

	m.ticketsClaimed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "tickets_claimed_total",
			Help:      "Total number of tickets claimed by tier",
		},
		[]string{"tier"},
	)

	m.spendTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "spend_total",
		Help:      "Total currency spent on tickets",
	})

	m.payoutTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "payout_total",
		Help:      "Total currency paid out on claims",
	})

	m.tokensGranted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tokens_granted_total",
		Help:      "Total tokens granted through claims",
	})

	m.backstopConsumed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "backstop_consumed_total",
		Help:      "Total number of pity backstops applied to tickets",
	})

	m.levelUps = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "level_ups_total",
		Help:      "Total vendor level-ups",
	})

	m.vendorLevel = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "vendor_level",
		Help:      "Current vendor level",
	})

	m.badgeCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "badges_earned",
		Help:      "Number of badges earned",
	})

	m.moneyBalance = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "money_balance",
		Help:      "Current money balance",
	})

	m.tokenBalance = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "token_balance",
		Help:      "Current token balance",
	})

	m.saveErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "save_errors_total",
		Help:      "Total number of failed save writes",
	})

	m.saveLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "save_latency_milliseconds",
		Help:      "Save write latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.eventsPublished = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "events_published_total",
			Help:      "Total events published to the bus by kind",
		},
		[]string{"kind"},
	)

	m.eventsDropped = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "events_dropped_total",
			Help:      "Total events dropped by the bus by kind",
		},
		[]string{"kind"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordTicketsPurchased adds purchased tickets for a tier.
func RecordTicketsPurchased(tierID string, qty int) {
	globalManager.ticketsPurchased.WithLabelValues(tierID).Add(float64(qty))
}

// RecordTicketClaimed increments the claimed counter for a tier.
func RecordTicketClaimed(tierID string) {
	globalManager.ticketsClaimed.WithLabelValues(tierID).Inc()
}

// AddSpend accumulates currency spent on tickets.
func AddSpend(amount int) {
	if amount > 0 {
		globalManager.spendTotal.Add(float64(amount))
	}
}

// AddPayout accumulates currency paid out on claims.
func AddPayout(amount int) {
	if amount > 0 {
		globalManager.payoutTotal.Add(float64(amount))
	}
}

// RecordTokensGranted accumulates tokens granted through claims.
func RecordTokensGranted(n int) {
	if n > 0 {
		globalManager.tokensGranted.Add(float64(n))
	}
}

// RecordBackstopConsumed increments the backstop counter.
func RecordBackstopConsumed() {
	globalManager.backstopConsumed.Inc()
}

// RecordLevelUp increments the level-up counter.
func RecordLevelUp() {
	globalManager.levelUps.Inc()
}

// UpdateVendorLevel sets the current vendor level.
func UpdateVendorLevel(level int) {
	globalManager.vendorLevel.Set(float64(level))
}

// UpdateBadgeCount sets the number of earned badges.
func UpdateBadgeCount(n int) {
	globalManager.badgeCount.Set(float64(n))
}

// UpdateBalances sets the money and token balance gauges.
func UpdateBalances(money, tokens int) {
	globalManager.moneyBalance.Set(float64(money))
	globalManager.tokenBalance.Set(float64(tokens))
}

// RecordSaveError increments the failed-save counter.
func RecordSaveError() {
	globalManager.saveErrors.Inc()
}

// RecordSaveLatency records save write latency in milliseconds.
func RecordSaveLatency(latencyMs float64) {
	globalManager.saveLatency.Observe(latencyMs)
}

// RecordEventPublished increments the published counter for a kind.
func RecordEventPublished(kind string) {
	globalManager.eventsPublished.WithLabelValues(kind).Inc()
}

// RecordEventDropped increments the dropped counter for a kind.
func RecordEventDropped(kind string) {
	globalManager.eventsDropped.WithLabelValues(kind).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
