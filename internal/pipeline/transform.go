package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/vector-suitability-etl/internal/domain"
)

// GridTransformer implements Transformer by evaluating every configured
// species' reaction norm over each incoming temperature grid.
type GridTransformer struct {
	species []domain.SpeciesParams
	logger  *slog.Logger
}

// NewTransformer creates a GridTransformer for the given species parameter
// sets. The sets are assumed validated (species.Load does that).
func NewTransformer(species []domain.SpeciesParams, logger *slog.Logger) *GridTransformer {
	return &GridTransformer{
		species: species,
		logger:  logger,
	}
}

// Transform parses a raw grid message and builds one suitability product per
// species. Out-of-range and missing temperatures are not errors; they clamp
// to zero inside the evaluator. Only malformed messages fail.
func (t *GridTransformer) Transform(_ context.Context, raw domain.RawMessage) ([]domain.SuitabilityProduct, error) {
	grid, err := domain.ParseRawGrid(raw)
	if err != nil {
		return nil, err
	}

	products := make([]domain.SuitabilityProduct, 0, len(t.species))
	for _, sp := range t.species {
		products = append(products, domain.BuildProduct(grid, sp))
	}
	return products, nil
}
