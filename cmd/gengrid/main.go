// Command gengrid generates a synthetic monthly temperature grid fixture in
// the raw source-topic JSON format. It is the test-data counterpart of the
// collector service: a seasonal cycle plus a latitudinal gradient plus
// noise, with a configurable fraction of missing cells (JSON null), which is
// how real gridded climate products arrive with ocean or sensor gaps.
//
// Usage:
//
//	go run ./cmd/gengrid -out data/mock/po_valley_grid.json \
//	  -region po-valley -rows 40 -cols 60 -missing 0.02
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
)

var monthLabels = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// rawGrid mirrors domain.RawGridRecord. Declared locally so the fixture
// format is spelled out where the fixture is produced.
type rawGrid struct {
	Dataset     string     `json:"dataset"`
	Region      string     `json:"region"`
	Rows        int        `json:"rows"`
	Cols        int        `json:"cols"`
	OriginLat   float64    `json:"origin_lat"`
	OriginLon   float64    `json:"origin_lon"`
	CellSizeDeg float64    `json:"cell_size_deg"`
	Layers      []rawLayer `json:"layers"`
}

type rawLayer struct {
	Label  string     `json:"label"`
	Values []*float64 `json:"values"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the raw grid JSON fixture")
	dataset := flag.String("dataset", "synthetic", "dataset name")
	region := flag.String("region", "po-valley", "region name")
	rows := flag.Int("rows", 40, "grid rows")
	cols := flag.Int("cols", 60, "grid columns")
	originLat := flag.Float64("origin-lat", 44.0, "latitude of the grid's south-west corner")
	originLon := flag.Float64("origin-lon", 8.0, "longitude of the grid's south-west corner")
	cellSize := flag.Float64("cell-size", 0.05, "cell size in degrees")
	missing := flag.Float64("missing", 0.02, "fraction of cells marked missing per layer")
	seed := flag.Int64("seed", 1, "random seed, fixed for reproducible fixtures")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *rows <= 0 || *cols <= 0 {
		return fmt.Errorf("grid shape must be positive, got %dx%d", *rows, *cols)
	}

	rng := rand.New(rand.NewSource(*seed))

	grid := rawGrid{
		Dataset:     *dataset,
		Region:      *region,
		Rows:        *rows,
		Cols:        *cols,
		OriginLat:   *originLat,
		OriginLon:   *originLon,
		CellSizeDeg: *cellSize,
		Layers:      make([]rawLayer, len(monthLabels)),
	}

	for m, label := range monthLabels {
		values := make([]*float64, *rows**cols)
		for r := 0; r < *rows; r++ {
			for c := 0; c < *cols; c++ {
				if rng.Float64() < *missing {
					continue // leave nil: missing cell
				}
				t := monthlyTemp(m, r, *cellSize, rng)
				values[r**cols+c] = &t
			}
		}
		grid.Layers[m] = rawLayer{Label: label, Values: values}
	}

	data, err := json.MarshalIndent(grid, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal grid: %w", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	log.Printf("wrote %s: %dx%d cells, %d layers", *out, *rows, *cols, len(grid.Layers))
	return nil
}

// monthlyTemp models a northern-hemisphere seasonal cycle (July peak)
// with a mild north-south gradient across the grid and per-cell noise.
func monthlyTemp(month, row int, cellSize float64, rng *rand.Rand) float64 {
	seasonal := 14 + 11*math.Cos(2*math.Pi*float64(month-6)/12)
	gradient := -6.5 * float64(row) * cellSize // cooler northwards, ~lapse-like
	noise := rng.NormFloat64() * 1.5
	return seasonal + gradient + noise
}
