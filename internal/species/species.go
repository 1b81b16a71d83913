// Package species loads mosquito reaction-norm parameter sets.
//
// Two parameter sets ship built in (Aedes albopictus and Culex pipiens,
// published Briere development-rate fits). An optional HCL file replaces
// them, so additional species or alternative fits can be compared without
// rebuilding:
//
//	species "aedes_albopictus" {
//	  tmin_c = 8.7
//	  tmax_c = 39.6
//	  scale  = 6.33e-5
//	}
//
// Parameter validation happens here, at configuration time. The evaluator
// in the domain package assumes validated parameters and performs no
// runtime checks of its own.
package species

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/couchcryptid/vector-suitability-etl/internal/domain"
)

// Defaults returns the built-in parameter sets.
func Defaults() []domain.SpeciesParams {
	return []domain.SpeciesParams{
		{Name: "aedes_albopictus", TminC: 8.7, TmaxC: 39.6, Scale: 6.33e-5},
		{Name: "culex_pipiens", TminC: 0.1, TmaxC: 38.5, Scale: 3.76e-5},
	}
}

// hclFile is the top-level structure of a species parameter file.
type hclFile struct {
	Species []hclSpeciesBlock `hcl:"species,block"`
}

type hclSpeciesBlock struct {
	Name  string  `hcl:"name,label"`
	TminC float64 `hcl:"tmin_c"`
	TmaxC float64 `hcl:"tmax_c"`
	Scale float64 `hcl:"scale"`
}

// Load reads species parameters from an HCL file. An empty path returns the
// built-in defaults.
func Load(path string) ([]domain.SpeciesParams, error) {
	if path == "" {
		return Defaults(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse species file %s: %w", path, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode species file %s: %w", path, diags)
	}

	if len(parsed.Species) == 0 {
		return nil, fmt.Errorf("species file %s defines no species blocks", path)
	}

	params := make([]domain.SpeciesParams, 0, len(parsed.Species))
	seen := make(map[string]bool, len(parsed.Species))
	for _, b := range parsed.Species {
		p := domain.SpeciesParams{Name: b.Name, TminC: b.TminC, TmaxC: b.TmaxC, Scale: b.Scale}
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("species %q: %w", b.Name, err)
		}
		if seen[b.Name] {
			return nil, fmt.Errorf("species %q defined twice", b.Name)
		}
		seen[b.Name] = true
		params = append(params, p)
	}
	return params, nil
}

func validate(p domain.SpeciesParams) error {
	if p.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if p.TminC >= p.TmaxC {
		return fmt.Errorf("tmin_c (%g) must be below tmax_c (%g)", p.TminC, p.TmaxC)
	}
	if p.Scale <= 0 {
		return fmt.Errorf("scale (%g) must be positive", p.Scale)
	}
	return nil
}
