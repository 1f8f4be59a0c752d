package forecast

import (
	"math"
	"time"

	"github.com/dealerhub/forecast-engine/internal/domain"
	"github.com/dealerhub/forecast-engine/internal/stats"
)

// SeasonalSource is the resolved set of monthly factors a generation run
// applies. Disabled or unavailable seasonality uses neutral factors.
type SeasonalSource struct {
	Factors domain.MonthlyFactors
	Enabled bool
}

// Factor returns the multiplier for a calendar month.
func (s SeasonalSource) Factor(month time.Month) float64 {
	if !s.Enabled {
		return 1.0
	}
	return s.Factors.ForMonth(int(month))
}

// Generate produces one forecast per future period for a single product.
// rawHistory is the product's order-line events; marketAdjustment is the
// combined regional factor (already scaled by the dealer's local factor).
func Generate(
	cfg *domain.ForecastConfig,
	productID int64,
	rawHistory []domain.DemandPoint,
	seasonal SeasonalSource,
	marketAdjustment float64,
	now time.Time,
) []*domain.DemandForecast {
	monthly := AggregateMonthly(rawHistory)
	if cfg.HistoryMonths > 0 && len(monthly) > cfg.HistoryMonths {
		monthly = monthly[len(monthly)-cfg.HistoryMonths:]
	}

	quantities := make([]float64, len(monthly))
	for i, p := range monthly {
		quantities[i] = p.Quantity
	}

	// Clamp demand spikes to the IQR fences so one bulk order does not tilt
	// the fitted trend. Residuals below still use the raw actuals.
	if res := stats.DetectOutliers(quantities); len(res.Outliers) > 0 {
		for _, idx := range res.Indices {
			if quantities[idx] > res.UpperFence {
				quantities[idx] = res.UpperFence
			} else if quantities[idx] < res.LowerFence {
				quantities[idx] = res.LowerFence
			}
		}
	}

	trend := stats.FitTrend(quantities)
	stdErr := residualStdErr(monthly, trend, seasonal)

	// Monthly averages keyed by calendar month, and totals keyed by month
	// start, for historicalAverage and year-over-year lookups.
	monthMeans := historicalMonthMeans(monthly)
	overallMean := meanQuantity(monthly)
	actualByMonth := make(map[time.Time]float64, len(monthly))
	for _, p := range monthly {
		actualByMonth[p.Date] = p.Quantity
	}

	horizon := cfg.HorizonPeriods
	if horizon <= 0 {
		horizon = domain.DefaultHorizonPeriods
	}

	base := monthStart(now)
	out := make([]*domain.DemandForecast, 0, horizon)
	for i := 1; i <= horizon; i++ {
		periodStart := base.AddDate(0, i, 0)

		baseline := trend.ValueAt(float64(len(monthly) - 1 + i))
		growth := math.Pow(1+cfg.MarketGrowthRate, float64(i)/12.0)
		value := baseline * seasonal.Factor(periodStart.Month()) * marketAdjustment * growth
		if value < 0 {
			value = 0
		}

		lower, upper := stats.ConfidenceInterval(value, stdErr, cfg.ConfidenceLevel)

		fc := &domain.DemandForecast{
			ConfigID:         cfg.ID,
			ProductID:        productID,
			PeriodStart:      periodStart,
			PeriodType:       "month",
			ForecastedDemand: value,
			LowerBound:       lower,
			UpperBound:       upper,
		}

		if avg, ok := monthMeans[periodStart.Month()]; ok {
			fc.HistoricalAverage = avg
		} else {
			fc.HistoricalAverage = overallMean
		}

		if actual, ok := actualByMonth[periodStart.AddDate(-1, 0, 0)]; ok && actual != 0 {
			change := (value - actual) / actual * 100.0
			fc.YoYChange = &change
		}

		out = append(out, fc)
	}

	return out
}

// residualStdErr measures forecast error over the history itself: the spread
// of actuals around the seasonally adjusted trend line.
func residualStdErr(monthly []domain.DemandPoint, trend stats.TrendResult, seasonal SeasonalSource) float64 {
	if len(monthly) < 2 {
		return 0
	}

	residuals := make([]float64, len(monthly))
	for i, p := range monthly {
		fitted := trend.ValueAt(float64(i)) * seasonal.Factor(p.Date.Month())
		residuals[i] = p.Quantity - fitted
	}

	return stats.StandardError(residuals)
}

func historicalMonthMeans(monthly []domain.DemandPoint) map[time.Month]float64 {
	sums := make(map[time.Month]float64)
	counts := make(map[time.Month]int)
	for _, p := range monthly {
		sums[p.Date.Month()] += p.Quantity
		counts[p.Date.Month()]++
	}

	means := make(map[time.Month]float64, len(sums))
	for m, s := range sums {
		means[m] = s / float64(counts[m])
	}

	return means
}

func meanQuantity(points []domain.DemandPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Quantity
	}

	return sum / float64(len(points))
}
