package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Loot and share metrics
var (
	LootGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLootGenerated,
			Help: HelpTextLootGenerated,
		},
		[]string{LabelRarity, LabelClass},
	)

	SharesEncoded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSharesEncoded,
			Help: HelpTextSharesEncoded,
		},
	)

	SharesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSharesReceived,
			Help: HelpTextSharesReceived,
		},
	)

	ShareFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameShareFailures,
			Help: HelpTextShareFailures,
		},
		[]string{LabelReason},
	)
)

// Scan metrics
var (
	ScanSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameScanSessionsActive,
			Help: HelpTextScanSessionsActive,
		},
	)

	ScanFrames = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameScanFrames,
			Help: HelpTextScanFrames,
		},
		[]string{LabelOutcome},
	)
)

// Persistence metrics
var (
	SavesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSavesWritten,
			Help: HelpTextSavesWritten,
		},
		[]string{LabelOutcome},
	)

	SavesCoalesced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSavesCoalesced,
			Help: HelpTextSavesCoalesced,
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheLookups,
			Help: HelpTextCacheLookups,
		},
		[]string{LabelResult},
	)
)
