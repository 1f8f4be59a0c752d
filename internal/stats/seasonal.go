package stats

import (
	"math"
	"time"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

// minSeasonalPoints is the minimum number of monthly observations (two full
// years) required before seasonal factors are derived.
const minSeasonalPoints = 24

// SeasonalResult holds the 12 multiplicative monthly factors plus a score for
// how pronounced the repeating pattern is.
type SeasonalResult struct {
	Factors         domain.MonthlyFactors
	PatternStrength float64
	Calculated      bool
}

// SeasonalFactors derives one factor per calendar month from aggregated
// monthly points, using the ratio of each month's mean to the grand mean,
// normalized so the factors center near 1.0. With fewer than two full years
// of points it returns neutral factors and Calculated=false.
func SeasonalFactors(points []domain.DemandPoint) SeasonalResult {
	res := SeasonalResult{Factors: domain.NeutralFactors()}
	if len(points) < minSeasonalPoints {
		return res
	}

	var sums [12]float64
	var counts [12]int
	var total float64
	for _, p := range points {
		m := int(p.Date.Month()) - int(time.January)
		sums[m] += p.Quantity
		counts[m]++
		total += p.Quantity
	}

	grandMean := total / float64(len(points))
	if grandMean == 0 {
		return res
	}

	for m := 0; m < 12; m++ {
		if counts[m] == 0 {
			res.Factors[m] = 1.0
			continue
		}
		monthMean := sums[m] / float64(counts[m])
		res.Factors[m] = monthMean / grandMean
	}

	// Re-center so the factors average to 1.0 even when some months are
	// missing observations.
	var factorSum float64
	for _, f := range res.Factors {
		factorSum += f
	}
	if factorSum > 0 {
		scale := 12.0 / factorSum
		for m := range res.Factors {
			res.Factors[m] *= scale
		}
	}

	res.PatternStrength = patternStrength(res.Factors)
	res.Calculated = true

	return res
}

// patternStrength measures the dispersion of the factors around 1.0. Flat
// data scores near zero; a strong single-month spike or multi-month cycle
// scores materially above zero.
func patternStrength(factors domain.MonthlyFactors) float64 {
	var ss float64
	for _, f := range factors {
		d := f - 1.0
		ss += d * d
	}

	return math.Sqrt(ss / 12.0)
}
