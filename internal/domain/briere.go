package domain

import "math"

// SpeciesParams holds the fitted Briere coefficients for one species'
// development-rate reaction norm. Created once at configuration time and
// never mutated; validation (TminC < TmaxC, Scale > 0) happens at load time
// in the species package, not here.
type SpeciesParams struct {
	Name  string  `json:"name"`
	TminC float64 `json:"tmin_c"` // lower developmental threshold, degrees C
	TmaxC float64 `json:"tmax_c"` // upper developmental threshold, degrees C
	Scale float64 `json:"scale"`  // rate-scaling coefficient, 1/day per unit curve
}

// DevelopmentRate evaluates the Briere thermal response
//
//	scale * T * (T - Tmin) * sqrt(Tmax - T)
//
// for a single temperature sample, in 1/day. Out-of-domain input is never an
// error: it is absorbed into the output as zero. The guards run in a fixed
// order and each clamps to exactly 0:
//
//  1. NaN temperature (missing cell) -> 0
//  2. temperature at or below TminC -> 0
//  3. NaN raw value -> 0 (above TmaxC the sqrt argument is negative)
//  4. non-positive raw value -> 0 (exactly TmaxC lands here, sqrt(0) == 0)
//
// Downstream summaries and sinks assume missing cells carry a zero rate, so
// NaN must not propagate.
func DevelopmentRate(tempC float64, p SpeciesParams) float64 {
	if math.IsNaN(tempC) {
		return 0
	}
	if tempC <= p.TminC {
		return 0
	}

	raw := p.Scale * tempC * (tempC - p.TminC) * math.Sqrt(p.TmaxC-tempC)
	if math.IsNaN(raw) {
		return 0
	}
	if raw <= 0 {
		return 0
	}
	return raw
}
