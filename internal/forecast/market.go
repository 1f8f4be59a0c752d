package forecast

import (
	"time"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

// Adjustment factor bounds. A region with no usable indicators stays at 1.0.
const (
	minAdjustmentFactor = 0.1
	maxAdjustmentFactor = 3.0
)

// outlookThreshold is the per-indicator weighted contribution (in factor
// terms) beyond which an indicator counts as positive or negative.
const outlookThreshold = 0.005

// CombineIndicators folds a region's market indicators into one adjustment
// factor and an overall outlook. Each indicator contributes its percent
// change weighted by impact factor and confidence.
func CombineIndicators(region string, indicators []*domain.MarketIndicator, now time.Time) domain.MarketAnalysis {
	analysis := domain.MarketAnalysis{
		Region:           region,
		AdjustmentFactor: 1.0,
		OverallOutlook:   domain.OutlookNeutral,
		IndicatorCount:   len(indicators),
		GeneratedAt:      now,
	}
	if len(indicators) == 0 {
		return analysis
	}

	var total float64
	for _, ind := range indicators {
		weight := ind.ImpactFactor * ind.Confidence
		contribution := weight * ind.PercentChange / 100.0
		total += contribution

		switch {
		case contribution > outlookThreshold:
			analysis.PositiveCount++
		case contribution < -outlookThreshold:
			analysis.NegativeCount++
		}
	}

	factor := 1.0 + total
	if factor < minAdjustmentFactor {
		factor = minAdjustmentFactor
	}
	if factor > maxAdjustmentFactor {
		factor = maxAdjustmentFactor
	}
	analysis.AdjustmentFactor = factor

	switch {
	case analysis.PositiveCount > analysis.NegativeCount:
		analysis.OverallOutlook = domain.OutlookPositive
	case analysis.NegativeCount > analysis.PositiveCount:
		analysis.OverallOutlook = domain.OutlookNegative
	}

	return analysis
}
