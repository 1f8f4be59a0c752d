package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

func monthlySeries(start time.Time, quantities []float64) []domain.DemandPoint {
	points := make([]domain.DemandPoint, len(quantities))
	for i, q := range quantities {
		points[i] = domain.DemandPoint{
			Date:     start.AddDate(0, i, 0),
			Quantity: q,
		}
	}
	return points
}

func TestSeasonalFactors_TooLittleHistory(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	points := monthlySeries(start, make([]float64, 23))

	res := SeasonalFactors(points)

	assert.False(t, res.Calculated)
	assert.Equal(t, domain.NeutralFactors(), res.Factors)
	assert.Zero(t, res.PatternStrength)
}

func TestSeasonalFactors_FlatHistoryIsNeutral(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	quantities := make([]float64, 24)
	for i := range quantities {
		quantities[i] = 100
	}

	res := SeasonalFactors(monthlySeries(start, quantities))

	assert.True(t, res.Calculated)
	for m := 0; m < 12; m++ {
		assert.InDelta(t, 1.0, res.Factors[m], 1e-9)
	}
	assert.InDelta(t, 0.0, res.PatternStrength, 1e-9)
}

func TestSeasonalFactors_DecemberSpike(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	quantities := make([]float64, 24)
	for i := range quantities {
		quantities[i] = 100
	}
	// Both Decembers doubled.
	quantities[11] = 200
	quantities[23] = 200

	res := SeasonalFactors(monthlySeries(start, quantities))

	assert.True(t, res.Calculated)
	assert.InDelta(t, 24.0/13.0, res.Factors[11], 1e-9)
	assert.InDelta(t, 12.0/13.0, res.Factors[0], 1e-9)

	// factors still average 1.0
	var sum float64
	for _, f := range res.Factors {
		sum += f
	}
	assert.InDelta(t, 12.0, sum, 1e-9)

	assert.Greater(t, res.PatternStrength, 0.2)
}
