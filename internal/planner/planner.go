// Package planner converts forecasts plus current stock into prioritized,
// quantity-and-timing-specific purchase-order suggestions.
package planner

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dealerhub/forecast-engine/internal/domain"
	"github.com/dealerhub/forecast-engine/internal/stats"
)

const daysPerMonth = 30.0

// ProductInput is everything the planner needs to evaluate one product.
type ProductInput struct {
	ProductID     int64
	UnitCost      decimal.Decimal
	CurrentStock  float64
	Forecasts     []*domain.DemandForecast // sorted ascending by period
	RecentMonthly []domain.DemandPoint     // aggregated monthly history
}

// Suggest evaluates one product against the dealer's reorder policy. It
// returns nil when current stock is above the reorder point and covers the
// projected window; otherwise a pending suggestion.
func Suggest(cfg *domain.ForecastConfig, in ProductInput, now time.Time) *domain.SuggestedOrder {
	daily := dailyDemand(in)
	coverDays := cfg.LeadTimeDays + cfg.SafetyStockDays

	projectedDemand := accumulateDemand(in.Forecasts, now, coverDays, daily)
	safetyStock := daily * float64(cfg.SafetyStockDays)
	reorderPoint := reorderPointFor(cfg, in, daily)

	needed := projectedDemand + safetyStock - in.CurrentStock
	if in.CurrentStock > reorderPoint && needed <= 0 {
		return nil
	}

	qty := roundUpToMultiple(needed, cfg.OrderMultiple)
	if qty < cfg.MinimumOrderQty {
		qty = cfg.MinimumOrderQty
	}

	daysOfSupply := math.Inf(1)
	if daily > 0 {
		daysOfSupply = in.CurrentStock / daily
	}

	leadDemand := accumulateDemand(in.Forecasts, now, cfg.LeadTimeDays, daily)
	stockoutRisk, overstockRisk := riskPercentages(in.CurrentStock, float64(qty), projectedDemand, safetyStock)

	order := &domain.SuggestedOrder{
		ConfigID:           cfg.ID,
		ProductID:          in.ProductID,
		SuggestedQty:       qty,
		EconomicOrderQty:   cfg.EconomicOrderQty,
		CurrentStock:       in.CurrentStock,
		ProjectedDemand:    projectedDemand,
		ReorderPoint:       reorderPoint,
		EstimatedCost:      in.UnitCost.Mul(decimal.NewFromInt(int64(qty))),
		Priority:           priorityFor(daysOfSupply, cfg),
		Status:             domain.OrderStatusPending,
		SuggestedOrderDate: now,
		ExpectedDelivery:   now.AddDate(0, 0, cfg.LeadTimeDays),
		Reasoning:          buildReasoning(in, daysOfSupply, leadDemand, safetyStock, stockoutRisk, overstockRisk),
	}

	return order
}

// dailyDemand derives average daily demand from the forecast when available,
// falling back to recent history.
func dailyDemand(in ProductInput) float64 {
	if len(in.Forecasts) > 0 {
		var sum float64
		for _, fc := range in.Forecasts {
			sum += fc.ForecastedDemand
		}
		return sum / float64(len(in.Forecasts)) / daysPerMonth
	}

	if len(in.RecentMonthly) > 0 {
		var sum float64
		for _, p := range in.RecentMonthly {
			sum += p.Quantity
		}
		return sum / float64(len(in.RecentMonthly)) / daysPerMonth
	}

	return 0
}

// accumulateDemand walks forecast periods and sums the demand expected over
// the next `days` days, prorating partial months. With no forecast rows it
// falls back to the flat daily rate.
func accumulateDemand(forecasts []*domain.DemandForecast, now time.Time, days int, fallbackDaily float64) float64 {
	if days <= 0 {
		return 0
	}
	if len(forecasts) == 0 {
		return fallbackDaily * float64(days)
	}

	byMonth := make(map[time.Time]float64, len(forecasts))
	for _, fc := range forecasts {
		byMonth[fc.PeriodStart] = fc.ForecastedDemand
	}

	var total float64
	remaining := float64(days)
	cursor := now
	for remaining > 0 {
		ms := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.UTC)
		monthDemand, ok := byMonth[ms]
		if !ok {
			monthDemand = fallbackDaily * daysPerMonth
		}
		span := math.Min(remaining, daysPerMonth)
		total += monthDemand / daysPerMonth * span
		remaining -= span
		cursor = ms.AddDate(0, 1, 0)
	}

	return total
}

// reorderPointFor computes the reorder point per the configured method. The
// match is exhaustive; an unknown method falls back to dynamic.
func reorderPointFor(cfg *domain.ForecastConfig, in ProductInput, daily float64) float64 {
	switch cfg.ReorderMethod {
	case domain.ReorderFixed:
		return cfg.ReorderPoint
	case domain.ReorderMinMax:
		// Min/max band: reorder at the safety floor.
		return daily * float64(cfg.SafetyStockDays)
	case domain.ReorderDynamic:
		fallthrough
	default:
		return dynamicReorderPoint(cfg, in.RecentMonthly, daily)
	}
}

// dynamicReorderPoint covers lead-time demand plus a variance buffer sized by
// the configured confidence level.
func dynamicReorderPoint(cfg *domain.ForecastConfig, monthly []domain.DemandPoint, daily float64) float64 {
	leadDays := float64(cfg.LeadTimeDays)
	base := daily * leadDays

	dailies := make([]float64, len(monthly))
	for i, p := range monthly {
		dailies[i] = p.Quantity / daysPerMonth
	}
	sigma := stats.StandardError(dailies)

	return base + stats.ZScore(cfg.ConfidenceLevel)*sigma*math.Sqrt(leadDays)
}

// priorityFor maps days of supply remaining onto a priority bucket relative
// to the replenishment window.
func priorityFor(daysOfSupply float64, cfg *domain.ForecastConfig) domain.OrderPriority {
	lead := float64(cfg.LeadTimeDays)
	window := lead + float64(cfg.SafetyStockDays)

	switch {
	case daysOfSupply <= lead:
		return domain.PriorityCritical
	case daysOfSupply <= window:
		return domain.PriorityHigh
	case daysOfSupply <= window*1.5:
		return domain.PriorityNormal
	default:
		return domain.PriorityLow
	}
}

// riskPercentages measures how far projected stock diverges from the safe
// band [safetyStock, safetyStock+projectedDemand]. Both values are clamped
// into [0, 100].
func riskPercentages(currentStock, orderQty, projectedDemand, safetyStock float64) (stockout, overstock float64) {
	floor := math.Max(safetyStock, 1)
	ceiling := safetyStock + projectedDemand

	endWithoutOrder := currentStock - projectedDemand
	stockout = clampPct((safetyStock - endWithoutOrder) / floor * 100)

	endWithOrder := currentStock + orderQty - projectedDemand
	overstock = clampPct((endWithOrder - ceiling) / math.Max(ceiling, 1) * 100)

	return stockout, overstock
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return math.Round(v*10) / 10
}

func buildReasoning(in ProductInput, daysOfSupply, leadDemand, safetyStock, stockoutRisk, overstockRisk float64) domain.OrderReasoning {
	reasoning := domain.OrderReasoning{
		RiskLevel:        riskLevelFor(stockoutRisk),
		StockoutRiskPct:  stockoutRisk,
		OverstockRiskPct: overstockRisk,
		DaysOfSupply:     roundDays(daysOfSupply),
	}

	switch {
	case in.CurrentStock <= 0:
		reasoning.PrimaryReason = "out of stock"
	case in.CurrentStock < leadDemand:
		reasoning.PrimaryReason = "stock will not cover lead-time demand"
	default:
		reasoning.PrimaryReason = "stock below reorder point"
	}

	reasoning.ContributingFactors = []string{
		fmt.Sprintf("expected lead-time demand %.1f units", leadDemand),
		fmt.Sprintf("safety stock target %.1f units", safetyStock),
		fmt.Sprintf("current stock %.1f units", in.CurrentStock),
	}

	return reasoning
}

func riskLevelFor(stockoutRisk float64) domain.RiskLevel {
	switch {
	case stockoutRisk >= 60:
		return domain.RiskHigh
	case stockoutRisk >= 30:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func roundDays(d float64) float64 {
	if math.IsInf(d, 1) {
		return -1 // no measurable demand; reported as unbounded supply
	}
	return math.Round(d*10) / 10
}

func roundUpToMultiple(v float64, multiple int) int {
	if v <= 0 {
		return 0
	}
	units := int(math.Ceil(v))
	if multiple <= 1 {
		return units
	}
	if rem := units % multiple; rem != 0 {
		units += multiple - rem
	}

	return units
}

// SortForPlan orders suggestions the way the plan is presented: most urgent
// first, largest quantity breaking ties.
func SortForPlan(orders []*domain.SuggestedOrder) {
	rank := map[domain.OrderPriority]int{
		domain.PriorityCritical: 0,
		domain.PriorityHigh:     1,
		domain.PriorityNormal:   2,
		domain.PriorityLow:      3,
	}
	sort.SliceStable(orders, func(i, j int) bool {
		if rank[orders[i].Priority] != rank[orders[j].Priority] {
			return rank[orders[i].Priority] < rank[orders[j].Priority]
		}
		return orders[i].SuggestedQty > orders[j].SuggestedQty
	})
}
