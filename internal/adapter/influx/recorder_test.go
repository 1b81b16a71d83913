package influx

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/vector-suitability-etl/internal/domain"
	"github.com/couchcryptid/vector-suitability-etl/internal/observability"
)

// fakeWriteAPI implements api.WriteAPIBlocking for tests.
type fakeWriteAPI struct {
	points []*write.Point
	errs   int // fail this many calls before succeeding
	calls  int
}

func (f *fakeWriteAPI) WriteRecord(_ context.Context, _ ...string) error { return nil }

func (f *fakeWriteAPI) WritePoint(_ context.Context, points ...*write.Point) error {
	f.calls++
	if f.errs > 0 {
		f.errs--
		return errors.New("influx unavailable")
	}
	f.points = append(f.points, points...)
	return nil
}

func (f *fakeWriteAPI) EnableBatching() {}

func (f *fakeWriteAPI) Flush(_ context.Context) error { return nil }

func newTestRecorder(fake *fakeWriteAPI) *Recorder {
	logger := slog.Default()
	return &Recorder{
		write:   fake,
		breaker: newBreaker(logger),
		logger:  logger,
		metrics: observability.NewMetricsForTesting(),
	}
}

func makeProduct(speciesName string) domain.SuitabilityProduct {
	return domain.SuitabilityProduct{
		ID:      speciesName + "-0011223344556677",
		Species: domain.SpeciesParams{Name: speciesName, TminC: 8.7, TmaxC: 39.6, Scale: 6.33e-5},
		Rates: domain.Grid{
			Dataset: "worldclim",
			Region:  "po-valley",
			Rows:    1, Cols: 1,
			Layers: []domain.Layer{{Label: "jul", Values: []float64{0.09}}},
		},
		Summaries: []domain.LayerSummary{
			{Label: "jul", MeanRate: 0.09, MaxRate: 0.09, SuitableFraction: 1},
		},
		ProcessedAt: time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC),
	}
}

func TestLoadBatch_WritesOnePointPerLayer(t *testing.T) {
	fake := &fakeWriteAPI{}
	r := newTestRecorder(fake)

	products := []domain.SuitabilityProduct{makeProduct("aedes_albopictus"), makeProduct("culex_pipiens")}
	require.NoError(t, r.LoadBatch(context.Background(), products))

	assert.Len(t, fake.points, 2)
}

func TestLoadBatch_EmptyBatchIsNoop(t *testing.T) {
	fake := &fakeWriteAPI{}
	r := newTestRecorder(fake)

	require.NoError(t, r.LoadBatch(context.Background(), nil))
	assert.Zero(t, fake.calls)
}

func TestLoadBatch_RetriesTransientFailure(t *testing.T) {
	fake := &fakeWriteAPI{errs: 2}
	r := newTestRecorder(fake)

	require.NoError(t, r.LoadBatch(context.Background(), []domain.SuitabilityProduct{makeProduct("culex_pipiens")}))

	assert.GreaterOrEqual(t, fake.calls, 3, "two failures then a success")
	assert.Len(t, fake.points, 1)
}

func TestLoadBatch_AbsorbsPersistentFailure(t *testing.T) {
	fake := &fakeWriteAPI{errs: 100}
	r := newTestRecorder(fake)

	// Best-effort sink: the batch must not fail even when Influx is down.
	err := r.LoadBatch(context.Background(), []domain.SuitabilityProduct{makeProduct("culex_pipiens")})
	assert.NoError(t, err)
	assert.Empty(t, fake.points)
}

func TestSummaryPoints_Tags(t *testing.T) {
	points := summaryPoints(makeProduct("aedes_albopictus"))
	require.Len(t, points, 1)

	p := points[0]
	assert.Equal(t, measurement, p.Name())

	tags := map[string]string{}
	for _, tag := range p.TagList() {
		tags[tag.Key] = tag.Value
	}
	assert.Equal(t, "aedes_albopictus", tags["species"])
	assert.Equal(t, "worldclim", tags["dataset"])
	assert.Equal(t, "po-valley", tags["region"])
	assert.Equal(t, "jul", tags["layer"])
}
