package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// suitability pipeline.
type Metrics struct {
	GridsConsumed    prometheus.Counter
	ProductsProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	CellsEvaluated   prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Influx summary sink metrics.
	SummaryWrites        *prometheus.CounterVec // labels: outcome={success,error}
	SummaryWriteDuration prometheus.Histogram
	InfluxEnabled        prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		GridsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "suitability_etl",
			Name:      "grids_consumed_total",
			Help:      "Total raw temperature grids read from the source topic.",
		}),
		ProductsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "suitability_etl",
			Name:      "products_produced_total",
			Help:      "Total suitability products written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "suitability_etl",
			Name:      "transform_errors_total",
			Help:      "Total grid transformation failures.",
		}),
		CellsEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "suitability_etl",
			Name:      "cells_evaluated_total",
			Help:      "Total grid cells passed through the reaction-norm evaluator.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "suitability_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "suitability_etl",
			Name:      "batch_size",
			Help:      "Number of raw grids per batch extracted from Kafka.",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 50},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "suitability_etl",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		SummaryWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "suitability_etl",
			Name:      "summary_writes_total",
			Help:      "InfluxDB summary write attempts by outcome.",
		}, []string{"outcome"}),
		SummaryWriteDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "suitability_etl",
			Name:      "summary_write_duration_seconds",
			Help:      "InfluxDB summary write duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		InfluxEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "suitability_etl",
			Name:      "influx_enabled",
			Help:      "1 when the InfluxDB summary sink is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.GridsConsumed,
		m.ProductsProduced,
		m.TransformErrors,
		m.CellsEvaluated,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.SummaryWrites,
		m.SummaryWriteDuration,
		m.InfluxEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		GridsConsumed:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "suitability_etl", Name: "grids_consumed_total"}),
		ProductsProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "suitability_etl", Name: "products_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "suitability_etl", Name: "transform_errors_total"}),
		CellsEvaluated:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "suitability_etl", Name: "cells_evaluated_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "suitability_etl", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "suitability_etl", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "suitability_etl", Name: "batch_processing_duration_seconds"}),
		SummaryWrites:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "suitability_etl", Name: "summary_writes_total"}, []string{"outcome"}),
		SummaryWriteDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "suitability_etl", Name: "summary_write_duration_seconds"}),
		InfluxEnabled:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "suitability_etl", Name: "influx_enabled"}),
	}
}
