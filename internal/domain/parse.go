package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RawGridRecord represents the flat JSON structure produced by the climate
// collector: one record per region, carrying a stack of monthly temperature
// layers. JSON cannot encode NaN, so missing cells arrive as null.
type RawGridRecord struct {
	Dataset     string         `json:"dataset"`
	Region      string         `json:"region"`
	Rows        int            `json:"rows"`
	Cols        int            `json:"cols"`
	OriginLat   float64        `json:"origin_lat"`
	OriginLon   float64        `json:"origin_lon"`
	CellSizeDeg float64        `json:"cell_size_deg"`
	Layers      []RawGridLayer `json:"layers"`
}

// RawGridLayer is one monthly slice of a raw record. A nil entry in Values
// is a missing cell.
type RawGridLayer struct {
	Label  string     `json:"label"`
	Values []*float64 `json:"values"`
}

// RawMessage represents an unprocessed message from the source topic.
type RawMessage struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// ParseRawGrid deserializes a RawMessage's value into a temperature Grid,
// converting null cells to NaN. The grid shape is validated; cell values are
// not range-checked, since the evaluator's clamping policy handles any real
// temperature.
func ParseRawGrid(raw RawMessage) (Grid, error) {
	var rec RawGridRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return Grid{}, fmt.Errorf("parse raw grid: %w", err)
	}

	g := Grid{
		Dataset:     rec.Dataset,
		Region:      rec.Region,
		Rows:        rec.Rows,
		Cols:        rec.Cols,
		OriginLat:   rec.OriginLat,
		OriginLon:   rec.OriginLon,
		CellSizeDeg: rec.CellSizeDeg,
		Layers:      make([]Layer, len(rec.Layers)),
	}
	for i, rl := range rec.Layers {
		values := make([]float64, len(rl.Values))
		for j, v := range rl.Values {
			if v == nil {
				values[j] = missingValue
				continue
			}
			values[j] = *v
		}
		g.Layers[i] = Layer{Label: rl.Label, Values: values}
	}

	if err := g.Validate(); err != nil {
		return Grid{}, fmt.Errorf("parse raw grid: %w", err)
	}
	return g, nil
}
