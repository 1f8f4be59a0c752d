package stats

import "math"

// zScores maps supported confidence levels to normal-distribution z values.
// Built once at init, never mutated.
var zScores = map[float64]float64{
	0.90: 1.645,
	0.95: 1.96,
	0.99: 2.576,
}

// defaultZScore backs any unrecognized confidence level (treated as 95%).
const defaultZScore = 1.96

// ZScore returns the z value for a confidence level, defaulting to the 95%
// value for unrecognized levels.
func ZScore(confidenceLevel float64) float64 {
	if z, ok := zScores[confidenceLevel]; ok {
		return z
	}
	return defaultZScore
}

// StandardError returns the sample standard deviation of a residual series.
// Fewer than 2 points or constant input yields 0.
func StandardError(errors []float64) float64 {
	n := len(errors)
	if n < 2 {
		return 0
	}

	var sum float64
	for _, e := range errors {
		sum += e
	}
	mean := sum / float64(n)

	var ss float64
	for _, e := range errors {
		ss += (e - mean) * (e - mean)
	}

	return math.Sqrt(ss / float64(n-1))
}

// ConfidenceInterval returns the lower and upper bound around a forecast
// given a standard error. The lower bound is clamped at zero because demand
// cannot be negative.
func ConfidenceInterval(forecast, stdErr, confidenceLevel float64) (lower, upper float64) {
	margin := ZScore(confidenceLevel) * stdErr
	lower = forecast - margin
	if lower < 0 {
		lower = 0
	}
	upper = forecast + margin

	return lower, upper
}
