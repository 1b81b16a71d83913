// Package influx records per-layer regional suitability summaries as
// time-series points, so seasonal suitability curves can be charted per
// species and region without replaying the Kafka sink topic.
package influx

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/sony/gobreaker"

	"github.com/couchcryptid/vector-suitability-etl/internal/config"
	"github.com/couchcryptid/vector-suitability-etl/internal/domain"
	"github.com/couchcryptid/vector-suitability-etl/internal/observability"
)

const measurement = "development_rate_summary"

// Recorder writes layer summaries to InfluxDB. It implements
// pipeline.BatchLoader but is best-effort: a failing Influx never fails the
// batch, since the Kafka sink remains the source of truth. A circuit breaker
// keeps a dead Influx from slowing every batch down.
type Recorder struct {
	client  influxdb2.Client
	write   api.WriteAPIBlocking
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewRecorder creates an InfluxDB summary recorder from config.
func NewRecorder(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Recorder {
	client := influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
	return &Recorder{
		client:  client,
		write:   client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		breaker: newBreaker(logger),
		logger:  logger,
		metrics: metrics,
	}
}

func newBreaker(logger *slog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "influx-summary",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// LoadBatch records one point per product per layer. Errors are absorbed
// after logging; the pipeline's Kafka loader decides batch success.
func (r *Recorder) LoadBatch(ctx context.Context, products []domain.SuitabilityProduct) error {
	points := make([]*write.Point, 0, len(products)*12)
	for _, product := range products {
		points = append(points, summaryPoints(product)...)
	}
	if len(points) == 0 {
		return nil
	}

	start := time.Now()
	_, err := r.breaker.Execute(func() (any, error) {
		return nil, r.writeWithRetry(ctx, points)
	})
	r.metrics.SummaryWriteDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		r.metrics.SummaryWrites.WithLabelValues("error").Inc()
		r.logger.Warn("influx summary write failed", "error", err, "points", len(points))
		return nil
	}
	r.metrics.SummaryWrites.WithLabelValues("success").Inc()
	return nil
}

// writeWithRetry retries transient write failures with exponential backoff
// before the circuit breaker counts the attempt as a failure.
func (r *Recorder) writeWithRetry(ctx context.Context, points []*write.Point) error {
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	return backoff.Retry(func() error {
		return r.write.WritePoint(ctx, points...)
	}, bo)
}

func (r *Recorder) Close() {
	r.client.Close()
}

// summaryPoints converts a product's layer summaries into Influx points,
// tagged for per-species per-region querying.
func summaryPoints(product domain.SuitabilityProduct) []*write.Point {
	points := make([]*write.Point, 0, len(product.Summaries))
	for _, s := range product.Summaries {
		points = append(points, influxdb2.NewPoint(
			measurement,
			map[string]string{
				"species": product.Species.Name,
				"dataset": product.Rates.Dataset,
				"region":  product.Rates.Region,
				"layer":   s.Label,
			},
			map[string]any{
				"mean_rate":         s.MeanRate,
				"max_rate":          s.MaxRate,
				"suitable_fraction": s.SuitableFraction,
			},
			product.ProcessedAt,
		))
	}
	return points
}
