package readable

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DampeningFactor divides the raw negative sum before comparison. Negative
// keywords occur more often in ordinary text than positive ones.
const DampeningFactor = 2.4

// Sum returns the total of all counts in r. Counts that are negative, NaN or
// infinite contribute zero.
func Sum(r FrequencyResult) float64 {
	values := r.Values()
	for i, v := range values {
		values[i] = sanitizeCount(v)
	}
	return floats.Sum(values)
}

// PositiveScore is the plain sum of r.
func PositiveScore(r FrequencyResult) Score {
	return Score(Sum(r))
}

// NegativeScore is the dampened sum of r.
func NegativeScore(r FrequencyResult) Score {
	return Dampen(Sum(r))
}

// Dampen divides a raw negative sum by DampeningFactor and floors the result.
func Dampen(raw float64) Score {
	return Score(math.Floor(sanitizeCount(raw) / DampeningFactor))
}

func sanitizeCount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
