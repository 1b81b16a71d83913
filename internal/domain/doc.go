// Package domain models temperature-dependent development of disease-vector
// mosquitoes over gridded monthly climate data.
//
// # Reaction norms
//
// Insect development rate responds unimodally to temperature: zero below a
// lower threshold, rising to an interior optimum, collapsing to zero at an
// upper threshold. The Briere (1999) form captures this with three fitted
// coefficients per species:
//
//	rate(T) = scale * T * (T - Tmin) * sqrt(Tmax - T)
//
// The function is only defined on (Tmin, Tmax). Everywhere outside that
// interval, including exactly at Tmax where the square-root term is zero,
// the rate is clamped to 0 rather than surfaced as an error or a NaN. See
// [DevelopmentRate] for the exact guard ordering; the ordering is part of
// the output contract because downstream consumers render missing cells as
// zero development rate.
//
// # Species coefficients
//
// The built-in parameter sets (see the species package) are published
// mosquito development-rate fits:
//
//	Aedes albopictus: Tmin = 8.7 C, Tmax = 39.6 C, scale = 6.33e-5
//	Culex pipiens:    Tmin = 0.1 C, Tmax = 38.5 C, scale = 3.76e-5
//
// The wide spread in Tmin (8.7 vs 0.1) is what makes the side-by-side
// comparison interesting: Culex pipiens accrues development through mild
// winters where Aedes albopictus is fully arrested.
//
// # Grid conventions
//
// A [Grid] is a stack of equally shaped raster layers over one region, one
// layer per month. Values are row-major float64; NaN marks a missing cell in
// temperature grids (the wire format uses JSON null, converted on parse).
// Every cell is evaluated independently, with no cross-cell coupling, so
// [EvaluateGrid] is a plain map over the stack, preserving shape, layer
// labels, and coordinate metadata (origin, cell size).
//
// Units: temperatures in degrees Celsius, rates in 1/day.
//
// # ID generation
//
// Product IDs are deterministic SHA-256 hashes of
// dataset|region|species|shape|layer-labels. Replaying the same raw grid
// produces the same ID, keeping downstream upserts idempotent. See
// [BuildProduct].
package domain
