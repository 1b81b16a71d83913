// Command compare runs the suitability evaluation offline over a raw grid
// fixture and prints a per-month comparison table across species: regional
// mean development rate and the fraction of cells with any development at
// all. This is the quickest way to eyeball how two species' thermal windows
// diverge over a region without standing up Kafka.
//
// Usage:
//
//	go run ./cmd/compare -grid data/mock/po_valley_grid.json
//	go run ./cmd/compare -grid grid.json -species-file species.hcl
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/couchcryptid/vector-suitability-etl/internal/domain"
	"github.com/couchcryptid/vector-suitability-etl/internal/species"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	gridPath := flag.String("grid", "", "path to a raw grid JSON file")
	speciesFile := flag.String("species-file", "", "optional HCL species parameter file")
	flag.Parse()

	if *gridPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -grid")
	}

	params, err := species.Load(*speciesFile)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(*gridPath)
	if err != nil {
		return fmt.Errorf("read grid file: %w", err)
	}
	grid, err := domain.ParseRawGrid(domain.RawMessage{Value: data})
	if err != nil {
		return err
	}

	products := make([]domain.SuitabilityProduct, len(params))
	for i, p := range params {
		products[i] = domain.BuildProduct(grid, p)
	}

	fmt.Printf("region %s (%s), %dx%d cells, %d layers\n\n",
		grid.Region, grid.Dataset, grid.Rows, grid.Cols, len(grid.Layers))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprint(w, "month")
	for _, p := range params {
		fmt.Fprintf(w, "\t%s mean [1/day]\t%s suitable", p.Name, p.Name)
	}
	fmt.Fprintln(w)

	for i := range grid.Layers {
		fmt.Fprint(w, grid.Layers[i].Label)
		for _, product := range products {
			s := product.Summaries[i]
			fmt.Fprintf(w, "\t%.5f\t%.0f%%", s.MeanRate, s.SuitableFraction*100)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
