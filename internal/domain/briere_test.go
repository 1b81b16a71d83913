package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	albopictus = SpeciesParams{Name: "aedes_albopictus", TminC: 8.7, TmaxC: 39.6, Scale: 6.33e-5}
	pipiens    = SpeciesParams{Name: "culex_pipiens", TminC: 0.1, TmaxC: 38.5, Scale: 3.76e-5}
)

func TestDevelopmentRate_ClampsToZero(t *testing.T) {
	tests := []struct {
		name   string
		temp   float64
		params SpeciesParams
	}{
		{"zero degrees", 0, albopictus},
		{"deep freeze", -40, albopictus},
		{"exactly Tmin", 8.7, albopictus},
		{"just below Tmin", 8.69, albopictus},
		{"exactly Tmax", 39.6, albopictus},
		{"above Tmax", 45, albopictus},
		{"missing cell", math.NaN(), albopictus},
		{"pipiens exactly Tmin", 0.1, pipiens},
		{"pipiens above Tmax", 40, pipiens},
		{"pipiens missing cell", math.NaN(), pipiens},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := DevelopmentRate(tt.temp, tt.params)
			assert.Zero(t, rate)
			assert.False(t, math.IsNaN(rate), "rate must never be NaN")
		})
	}
}

func TestDevelopmentRate_PositiveInsideThresholds(t *testing.T) {
	for _, p := range []SpeciesParams{albopictus, pipiens} {
		t.Run(p.Name, func(t *testing.T) {
			for temp := p.TminC + 0.05; temp < p.TmaxC; temp += 0.5 {
				rate := DevelopmentRate(temp, p)
				assert.Greater(t, rate, 0.0, "temp %.2f", temp)
			}
		})
	}
}

func TestDevelopmentRate_KnownValue(t *testing.T) {
	// Closed-form check at 25 C for Aedes albopictus.
	want := 6.33e-5 * 25 * (25 - 8.7) * math.Sqrt(39.6-25)
	require.Greater(t, want, 0.0)

	assert.InDelta(t, want, DevelopmentRate(25, albopictus), 1e-12)
}

func TestDevelopmentRate_InteriorMaximum(t *testing.T) {
	// The curve must peak strictly inside (Tmin, Tmax), above its values
	// near either threshold.
	for _, p := range []SpeciesParams{albopictus, pipiens} {
		t.Run(p.Name, func(t *testing.T) {
			var peak, argmax float64
			for temp := p.TminC; temp <= p.TmaxC; temp += 0.01 {
				if r := DevelopmentRate(temp, p); r > peak {
					peak, argmax = r, temp
				}
			}

			require.Greater(t, peak, 0.0)
			assert.Greater(t, argmax, p.TminC+0.01)
			assert.Less(t, argmax, p.TmaxC-0.01)
			assert.Greater(t, peak, DevelopmentRate(p.TminC+0.01, p))
			assert.Greater(t, peak, DevelopmentRate(p.TmaxC-0.01, p))
		})
	}
}

func TestDevelopmentRate_GuardOrderWithNaNParams(t *testing.T) {
	// A NaN raw value must clamp to zero even when the temperature itself
	// is a plain real, e.g. parameters that push sqrt out of domain.
	p := SpeciesParams{Name: "degenerate", TminC: 10, TmaxC: 20, Scale: 1}
	assert.Zero(t, DevelopmentRate(25, p))
}
