package domain

import (
	"fmt"
	"math"
)

// Grid is a stack of equally shaped raster layers over one region. Cell
// values are row-major (index r*Cols + c); NaN marks a missing cell in
// temperature grids. Rate grids produced by EvaluateGrid are NaN-free by
// construction.
type Grid struct {
	Dataset     string  `json:"dataset"`
	Region      string  `json:"region"`
	Rows        int     `json:"rows"`
	Cols        int     `json:"cols"`
	OriginLat   float64 `json:"origin_lat"`
	OriginLon   float64 `json:"origin_lon"`
	CellSizeDeg float64 `json:"cell_size_deg"`
	Layers      []Layer `json:"layers"`
}

// Layer is one time slice of a grid, typically one month.
type Layer struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// Validate checks that the grid shape is internally consistent.
func (g Grid) Validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("invalid grid shape %dx%d", g.Rows, g.Cols)
	}
	if len(g.Layers) == 0 {
		return fmt.Errorf("grid has no layers")
	}
	for i, l := range g.Layers {
		if len(l.Values) != g.Rows*g.Cols {
			return fmt.Errorf("layer %d (%q) has %d cells, want %d", i, l.Label, len(l.Values), g.Rows*g.Cols)
		}
	}
	return nil
}

// At returns the cell value at (row, col) of the given layer. Callers are
// expected to stay in bounds; this is an internal convenience, not an API
// with error reporting.
func (g Grid) At(layer, row, col int) float64 {
	return g.Layers[layer].Values[row*g.Cols+col]
}

// EvaluateGrid maps DevelopmentRate over every cell of every layer,
// independently, returning a fresh rate grid of identical shape with all
// coordinate metadata preserved. Pure: the input grid is never modified, and
// out-of-range temperatures clamp to zero rather than failing.
func EvaluateGrid(g Grid, p SpeciesParams) Grid {
	out := Grid{
		Dataset:     g.Dataset,
		Region:      g.Region,
		Rows:        g.Rows,
		Cols:        g.Cols,
		OriginLat:   g.OriginLat,
		OriginLon:   g.OriginLon,
		CellSizeDeg: g.CellSizeDeg,
		Layers:      make([]Layer, len(g.Layers)),
	}
	for i, l := range g.Layers {
		rates := make([]float64, len(l.Values))
		for j, t := range l.Values {
			rates[j] = DevelopmentRate(t, p)
		}
		out.Layers[i] = Layer{Label: l.Label, Values: rates}
	}
	return out
}

// LayerSummary holds regional aggregates for one rate layer, used for the
// sink product and the time-series summary sink.
type LayerSummary struct {
	Label            string  `json:"label"`
	MeanRate         float64 `json:"mean_rate"`         // 1/day, averaged over present cells
	MaxRate          float64 `json:"max_rate"`          // 1/day
	SuitableFraction float64 `json:"suitable_fraction"` // share of present cells with rate > 0
}

// SummarizeLayer aggregates a rate layer against its source temperature
// layer. The rate layer is NaN-free (missing cells were clamped to zero by
// the evaluator), so the temperature layer carries the missing mask: cells
// with a NaN temperature are excluded from the mean and the suitable
// fraction, keeping gappy regions (ocean, sensor dropout) from diluting the
// aggregates. Both layers must share the grid's shape.
func SummarizeLayer(rates, temps Layer) LayerSummary {
	s := LayerSummary{Label: rates.Label}
	var sum float64
	var present, suitable int
	for i, v := range rates.Values {
		if math.IsNaN(temps.Values[i]) {
			continue
		}
		present++
		sum += v
		if v > s.MaxRate {
			s.MaxRate = v
		}
		if v > 0 {
			suitable++
		}
	}
	if present == 0 {
		return s
	}
	s.MeanRate = sum / float64(present)
	s.SuitableFraction = float64(suitable) / float64(present)
	return s
}

// missingValue is the in-memory marker for cells absent from the source data.
var missingValue = math.NaN()
