package planner

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

func plannerConfig() *domain.ForecastConfig {
	cfg := domain.NewDefaultConfig(1)
	cfg.ID = 10
	cfg.SafetyStockDays = 10
	cfg.LeadTimeDays = 20
	return cfg
}

// monthlyHistory builds a flat monthly series ending in the month before now.
func monthlyHistory(now time.Time, months int, qty float64) []domain.DemandPoint {
	points := make([]domain.DemandPoint, months)
	for i := 0; i < months; i++ {
		d := now.AddDate(0, -months+i, 0)
		points[i] = domain.DemandPoint{
			Date:     time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC),
			Quantity: qty,
		}
	}
	return points
}

func TestSuggest_WellStockedProductSkipped(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	cfg := plannerConfig()

	// 300/month = 10/day. Cover window 30 days needs 300 + 100 safety = 400.
	in := ProductInput{
		ProductID:     7,
		CurrentStock:  2000,
		RecentMonthly: monthlyHistory(now, 6, 300),
	}

	assert.Nil(t, Suggest(cfg, in, now))
}

func TestSuggest_OutOfStock(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	cfg := plannerConfig()

	in := ProductInput{
		ProductID:     7,
		UnitCost:      decimal.NewFromInt(25),
		CurrentStock:  0,
		RecentMonthly: monthlyHistory(now, 6, 300),
	}

	order := Suggest(cfg, in, now)
	require.NotNil(t, order)

	// 10/day over 30-day window + 100 safety stock
	assert.Equal(t, 400, order.SuggestedQty)
	assert.Equal(t, domain.PriorityCritical, order.Priority)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "out of stock", order.Reasoning.PrimaryReason)
	assert.Equal(t, domain.RiskHigh, order.Reasoning.RiskLevel)
	assert.Equal(t, 100.0, order.Reasoning.StockoutRiskPct)
	assert.True(t, decimal.NewFromInt(10000).Equal(order.EstimatedCost))
	assert.Equal(t, now, order.SuggestedOrderDate)
	assert.Equal(t, now.AddDate(0, 0, cfg.LeadTimeDays), order.ExpectedDelivery)
}

func TestSuggest_QuantityRespectsMultipleAndMinimum(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	cfg := plannerConfig()
	cfg.OrderMultiple = 50
	in := ProductInput{
		ProductID:     7,
		CurrentStock:  0,
		RecentMonthly: monthlyHistory(now, 6, 300),
	}

	order := Suggest(cfg, in, now)
	require.NotNil(t, order)
	assert.Equal(t, 400, order.SuggestedQty) // already a multiple of 50

	cfg.OrderMultiple = 150
	order = Suggest(cfg, in, now)
	require.NotNil(t, order)
	assert.Equal(t, 450, order.SuggestedQty)

	// tiny residual need still honors the configured minimum
	cfg = plannerConfig()
	cfg.MinimumOrderQty = 25
	in.CurrentStock = 395
	order = Suggest(cfg, in, now)
	require.NotNil(t, order)
	assert.Equal(t, 25, order.SuggestedQty)
}

func TestSuggest_PriorityBuckets(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	cfg := plannerConfig()
	cfg.ReorderMethod = domain.ReorderMinMax

	history := monthlyHistory(now, 6, 300) // 10/day

	cases := []struct {
		stock    float64
		priority domain.OrderPriority
	}{
		{100, domain.PriorityCritical}, // 10 days <= 20 lead
		{250, domain.PriorityHigh},     // 25 days <= 30 window
		{350, domain.PriorityNormal},   // 35 days <= 45
	}
	for _, tc := range cases {
		order := Suggest(cfg, ProductInput{ProductID: 7, CurrentStock: tc.stock, RecentMonthly: history}, now)
		require.NotNil(t, order, "stock %.0f", tc.stock)
		assert.Equal(t, tc.priority, order.Priority, "stock %.0f", tc.stock)
	}
}

func TestSuggest_FixedReorderPoint(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	cfg := plannerConfig()
	cfg.ReorderMethod = domain.ReorderFixed
	cfg.ReorderPoint = 500

	in := ProductInput{
		ProductID:     7,
		CurrentStock:  450,
		RecentMonthly: monthlyHistory(now, 6, 300),
	}

	order := Suggest(cfg, in, now)
	require.NotNil(t, order)
	assert.Equal(t, 500.0, order.ReorderPoint)
}

func TestSuggest_DynamicReorderPointAddsVarianceBuffer(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	cfg := plannerConfig()

	flat := Suggest(cfg, ProductInput{ProductID: 7, CurrentStock: 0, RecentMonthly: monthlyHistory(now, 6, 300)}, now)
	require.NotNil(t, flat)
	// flat history has no variance: reorder point is lead-time demand exactly
	assert.InDelta(t, 200.0, flat.ReorderPoint, 1e-6)

	noisy := monthlyHistory(now, 6, 300)
	noisy[1].Quantity = 600
	noisy[4].Quantity = 60
	noisyOrder := Suggest(cfg, ProductInput{ProductID: 7, CurrentStock: 0, RecentMonthly: noisy}, now)
	require.NotNil(t, noisyOrder)
	assert.Greater(t, noisyOrder.ReorderPoint, flat.ReorderPoint)
}

func TestSuggest_ForecastsDriveDemand(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	cfg := plannerConfig()

	forecasts := make([]*domain.DemandForecast, 3)
	for i := range forecasts {
		forecasts[i] = &domain.DemandForecast{
			PeriodStart:      time.Date(2026, time.August+time.Month(i), 1, 0, 0, 0, 0, time.UTC),
			ForecastedDemand: 600,
		}
	}

	in := ProductInput{ProductID: 7, CurrentStock: 0, Forecasts: forecasts}
	order := Suggest(cfg, in, now)
	require.NotNil(t, order)

	// 20/day over the 30-day window plus 200 safety stock
	assert.Equal(t, 800, order.SuggestedQty)
	assert.InDelta(t, 600.0, order.ProjectedDemand, 1e-6)
}

func TestSuggest_NoDemandNoStock(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	cfg := plannerConfig()

	order := Suggest(cfg, ProductInput{ProductID: 7, CurrentStock: 0}, now)
	require.NotNil(t, order)

	// nothing to project, but the minimum order still applies
	assert.Equal(t, cfg.MinimumOrderQty, order.SuggestedQty)
	assert.Equal(t, -1.0, order.Reasoning.DaysOfSupply)
}

func TestSuggest_EconomicOrderQtySurfaced(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	cfg := plannerConfig()
	eoq := 750.0
	cfg.EconomicOrderQty = &eoq

	order := Suggest(cfg, ProductInput{ProductID: 7, CurrentStock: 0, RecentMonthly: monthlyHistory(now, 6, 300)}, now)
	require.NotNil(t, order)
	require.NotNil(t, order.EconomicOrderQty)
	assert.Equal(t, eoq, *order.EconomicOrderQty)
}

func TestSortForPlan(t *testing.T) {
	orders := []*domain.SuggestedOrder{
		{ProductID: 1, Priority: domain.PriorityLow, SuggestedQty: 900},
		{ProductID: 2, Priority: domain.PriorityCritical, SuggestedQty: 10},
		{ProductID: 3, Priority: domain.PriorityHigh, SuggestedQty: 50},
		{ProductID: 4, Priority: domain.PriorityCritical, SuggestedQty: 40},
	}

	SortForPlan(orders)

	assert.Equal(t, int64(4), orders[0].ProductID)
	assert.Equal(t, int64(2), orders[1].ProductID)
	assert.Equal(t, int64(3), orders[2].ProductID)
	assert.Equal(t, int64(1), orders[3].ProductID)
}
