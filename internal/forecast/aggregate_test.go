package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

func TestAggregateMonthly(t *testing.T) {
	points := []domain.DemandPoint{
		{Date: time.Date(2026, time.February, 3, 9, 0, 0, 0, time.UTC), Quantity: 50, ProductID: 7},
		{Date: time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC), Quantity: 10, ProductID: 7},
		{Date: time.Date(2026, time.January, 20, 8, 0, 0, 0, time.UTC), Quantity: 50, ProductID: 7},
	}

	out := AggregateMonthly(points)

	require.Len(t, out, 2)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), out[0].Date)
	assert.Equal(t, 60.0, out[0].Quantity)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), out[1].Date)
	assert.Equal(t, 50.0, out[1].Quantity)
	assert.Equal(t, int64(7), out[0].ProductID)
}

func TestAggregateMonthly_SameDayObservationsSum(t *testing.T) {
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	out := AggregateMonthly([]domain.DemandPoint{
		{Date: day, Quantity: 5},
		{Date: day, Quantity: 7},
	})

	require.Len(t, out, 1)
	assert.Equal(t, 12.0, out[0].Quantity)
}

func TestAggregateMonthly_Empty(t *testing.T) {
	assert.Nil(t, AggregateMonthly(nil))
}

func TestGroupByProduct(t *testing.T) {
	points := []domain.DemandPoint{
		{ProductID: 1, Quantity: 10},
		{ProductID: 2, Quantity: 20},
		{ProductID: 1, Quantity: 30},
	}

	grouped := GroupByProduct(points)

	assert.Len(t, grouped, 2)
	assert.Len(t, grouped[1], 2)
	assert.Len(t, grouped[2], 1)
}
