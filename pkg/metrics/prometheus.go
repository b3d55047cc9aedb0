package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	ingests      *prometheus.CounterVec
	rowsUpserted *prometheus.CounterVec
	faults       *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	cacheSymbols prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		ingests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seriesvault_ingests_total",
				Help: "Total number of ingestion requests by asset class and outcome",
			},
			[]string{"class", "status"},
		),
		rowsUpserted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seriesvault_rows_upserted_total",
				Help: "Total number of observation rows inserted or overwritten",
			},
			[]string{"class"},
		),
		faults: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seriesvault_faults_total",
				Help: "Total number of pipeline faults by kind",
			},
			[]string{"kind"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seriesvault_operation_duration_seconds",
				Help:    "Duration of pipeline operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		cacheSymbols: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "seriesvault_cache_symbols",
				Help: "Number of symbols in the last materialized cache document",
			},
		),
	}
}

// RecordIngest records one ingestion outcome.
func (r *Recorder) RecordIngest(class, status string) {
	r.ingests.WithLabelValues(class, status).Inc()
}

// RecordRowsUpserted records rows written to a store.
func (r *Recorder) RecordRowsUpserted(class string, n int) {
	r.rowsUpserted.WithLabelValues(class).Add(float64(n))
}

// RecordFault records a pipeline fault by kind.
func (r *Recorder) RecordFault(kind string) {
	r.faults.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordCacheBuild records the size of a finished cache materialization.
func (r *Recorder) RecordCacheBuild(symbols int) {
	r.cacheSymbols.Set(float64(symbols))
}
