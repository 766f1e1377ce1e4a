package service

import "math"

// RoundingPrecision is the multiplier used for two-decimal rounding of
// monetary values at the response boundary.
const RoundingPrecision = 100.0

// round rounds a float64 value to two decimal places using the package
// RoundingPrecision constant. Responses round; the calculation engine itself
// works on unrounded values so aggregate invariants hold exactly.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// PercentOrZero coalesces an optional percentage field to 0.
// Every formula in the engine goes through this helper so the zero-default
// behavior of missing percentages is a single tested unit instead of a
// convention repeated at each call site.
func PercentOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// AmountOrZero coalesces an optional monetary field to 0.
func AmountOrZero(m *float64) float64 {
	if m == nil {
		return 0
	}
	return *m
}
