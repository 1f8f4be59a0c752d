package stats

import (
	"math"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

// trendMaterialityRatio is the fraction of the mean magnitude a slope must
// exceed before it is classified as a real direction rather than noise.
const trendMaterialityRatio = 0.05

// TrendResult is an ordinary least-squares fit of quantity against a
// sequential time index.
type TrendResult struct {
	Slope             float64
	Intercept         float64
	RSquared          float64
	MonthlyGrowthRate float64
	Direction         domain.TrendDirection
}

// ValueAt projects the fitted line at time index t.
func (r TrendResult) ValueAt(t float64) float64 {
	return r.Intercept + r.Slope*t
}

// FitTrend regresses values against their indices 0..n-1. Fewer than 3 points
// yields a neutral fit: zero slope, intercept at the last value (or 0), and a
// stable direction.
func FitTrend(values []float64) TrendResult {
	n := len(values)
	if n < 3 {
		res := TrendResult{Direction: domain.TrendStable}
		if n > 0 {
			res.Intercept = values[n-1]
		}
		return res
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return TrendResult{Intercept: values[n-1], Direction: domain.TrendStable}
	}

	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn
	meanY := sumY / fn

	var ssTot, ssRes float64
	for i, y := range values {
		pred := intercept + slope*float64(i)
		ssRes += (y - pred) * (y - pred)
		ssTot += (y - meanY) * (y - meanY)
	}

	rSquared := 0.0
	if ssTot > 0 {
		rSquared = 1 - ssRes/ssTot
	}

	growth := 0.0
	if meanY != 0 {
		growth = slope / meanY
	}

	return TrendResult{
		Slope:             slope,
		Intercept:         intercept,
		RSquared:          rSquared,
		MonthlyGrowthRate: growth,
		Direction:         classifyDirection(slope, meanY),
	}
}

// classifyDirection requires the slope to be material relative to the scale
// of the data, so noise around a flat mean stays stable.
func classifyDirection(slope, mean float64) domain.TrendDirection {
	threshold := trendMaterialityRatio * math.Abs(mean)
	if threshold == 0 {
		threshold = trendMaterialityRatio
	}

	switch {
	case slope > threshold:
		return domain.TrendUp
	case slope < -threshold:
		return domain.TrendDown
	default:
		return domain.TrendStable
	}
}
