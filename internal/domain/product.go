package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// SuitabilityProduct is the per-species output of one grid evaluation: the
// rate grid, its per-layer regional summaries, and provenance metadata.
type SuitabilityProduct struct {
	ID        string         `json:"id"`
	Species   SpeciesParams  `json:"species"`
	Rates     Grid           `json:"rates"`
	Summaries []LayerSummary `json:"summaries"`

	ProcessedAt time.Time `json:"processed_at"`
}

// BuildProduct evaluates the reaction norm for one species over a
// temperature grid and assembles the sink product. The input grid is
// read-only; the product owns fresh rate layers.
func BuildProduct(g Grid, p SpeciesParams) SuitabilityProduct {
	rates := EvaluateGrid(g, p)

	summaries := make([]LayerSummary, len(rates.Layers))
	for i := range rates.Layers {
		summaries[i] = SummarizeLayer(rates.Layers[i], g.Layers[i])
	}

	return SuitabilityProduct{
		ID:          generateID(g, p),
		Species:     p,
		Rates:       rates,
		Summaries:   summaries,
		ProcessedAt: clock.Now(),
	}
}

// generateID produces a deterministic ID from the grid's provenance and the
// species name. Deterministic IDs keep downstream upserts idempotent:
// replaying the same raw grid yields the same product ID.
func generateID(g Grid, p SpeciesParams) string {
	labels := make([]string, len(g.Layers))
	for i, l := range g.Layers {
		labels[i] = l.Label
	}
	input := fmt.Sprintf("%s|%s|%s|%dx%d|%s",
		g.Dataset, g.Region, p.Name, g.Rows, g.Cols, strings.Join(labels, ","))
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if p.Name == "" {
		return short
	}
	return p.Name + "-" + short
}
