// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/plan-pricing/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZeroWithin checks if a value is within tolerance of zero
func IsZeroWithin(val, tolerance float64) bool {
	return math.Abs(val) <= tolerance
}

// IsFinite reports whether val is neither NaN nor infinite
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// NonNegative clamps negative values to zero
func NonNegative(val float64) float64 {
	if val < 0 {
		return 0
	}
	return val
}

// Clamp bounds val to [lo, hi]
func Clamp(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// Discount returns value reduced by percentage
func Discount(value, percentage float64) float64 {
	return value * (1 - percentage/constants.PercentageMultiplier)
}

// DiscountFactor returns 1/(1+rate)^months
func DiscountFactor(rate float64, months int) float64 {
	return 1 / math.Pow(1+rate, float64(months))
}
