package kafka

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/vector-suitability-etl/internal/domain"
)

func TestMapMessageToRaw(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("key-1"),
		Value:     []byte(`{"dataset":"worldclim"}`),
		Topic:     "raw-temperature-grids",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("collector")},
		},
	}

	raw := mapMessageToRaw(msg)

	assert.Equal(t, []byte("key-1"), raw.Key)
	assert.JSONEq(t, `{"dataset":"worldclim"}`, string(raw.Value))
	assert.Equal(t, "raw-temperature-grids", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "collector", raw.Headers["source"])
	assert.Nil(t, raw.Commit, "commit closure is attached by the reader, not the mapper")
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	product := domain.SuitabilityProduct{
		ID:      "aedes_albopictus-deadbeef01234567",
		Species: domain.SpeciesParams{Name: "aedes_albopictus", TminC: 8.7, TmaxC: 39.6, Scale: 6.33e-5},
		Rates: domain.Grid{
			Rows: 1, Cols: 1,
			Layers: []domain.Layer{
				{Label: "jan", Values: []float64{0}},
				{Label: "jul", Values: []float64{0.09}},
			},
		},
		ProcessedAt: now,
	}

	msg, err := serializeToMessage(product)
	require.NoError(t, err)

	assert.Equal(t, []byte("aedes_albopictus-deadbeef01234567"), msg.Key)
	assert.Contains(t, string(msg.Value), `"name":"aedes_albopictus"`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "species", msg.Headers[0].Key)
	assert.Equal(t, []byte("aedes_albopictus"), msg.Headers[0].Value)
	assert.Equal(t, "layers", msg.Headers[1].Key)
	assert.Equal(t, []byte("2"), msg.Headers[1].Value)
	assert.Equal(t, "processed_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)
}
