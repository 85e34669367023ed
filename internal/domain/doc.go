// Package domain models asteroid impact scenarios and the closed-form effects
// estimator that turns them into impact reports.
//
// # Model
//
// The estimator is a simplified scaling-law approximation intended for
// illustrative output. It is not a validated impact model; the coefficients
// and exponents below are fixed constants of the model and are applied as-is.
//
// Kinetic energy:
//
//	V = (4/3)·π·(d/2)³           d in metres
//	m = ρ·V                      ρ in kg/m³
//	E = ½·m·(v·1000)²            v in km/s, E in joules
//	energyMT = E / 4.184e15      megatons of TNT
//
// Crater (land only, water targets produce no crater):
//
//	D = 1.16 · (ρ/ρt)^(1/3) · (d/1000)^0.78 · v^0.44 · sin(θ)^(1/3)   km
//	depth = 0.2 · D
//
// where ρt is 2500 kg/m³ for land and θ is the impact angle from horizontal.
//
// Seismic magnitude couples 1e-4 of the kinetic energy into seismic waves:
//
//	M = max(0, (log10(max(1, E·1e-4)) − 4.8) / 1.5)
//
// Thermal radiation radius (severe burns):
//
//	R = energyMT^0.45 · 1.5      km
//
// # Population exposure
//
// A deterministic heuristic, not a demographic model. The baseline density
// is cos(lat)·50 people/km², raised by the strongest nearby reference city
// (weight pop/(1+distance) for cities closer than 5 degrees) and floored at
// 5 on land. Water targets have zero density. Casualty counts use
// [math.Round], which rounds half away from zero.
//
// # Validation
//
// [Estimator.Estimate] rejects non-finite values, coordinates outside the
// WGS-84 ranges, non-positive diameter, velocity and density, and angles
// outside (0, 90]. [Compute] runs the model without validation; at angle 0 it
// yields a zero-diameter crater.
//
// # Report IDs
//
// Report IDs are UUIDv5 hashes of the effective parameters, so replaying the
// same scenario produces the same ID. See [generateID].
package domain
