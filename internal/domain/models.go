// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dealer represents a dealer account the engine plans for
type Dealer struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Region    string    `json:"region" db:"region"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Product represents a sellable product
type Product struct {
	ID        int64           `json:"id" db:"id"`
	SKU       string          `json:"sku" db:"sku"`
	Name      string          `json:"name" db:"name"`
	UnitCost  decimal.Decimal `json:"unit_cost" db:"unit_cost"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// ForecastConfig holds the per-dealer tunables consumed by every stage of the
// engine. Exactly one row exists per dealer (get-or-create).
type ForecastConfig struct {
	ID                 int64           `json:"id" db:"id"`
	DealerID           int64           `json:"dealer_id" db:"dealer_id"`
	HorizonPeriods     int             `json:"horizon_periods" db:"horizon_periods"`
	HistoryMonths      int             `json:"history_months" db:"history_months"`
	ConfidenceLevel    float64         `json:"confidence_level" db:"confidence_level"`
	SeasonalityEnabled bool            `json:"seasonality_enabled" db:"seasonality_enabled"`
	SeasonalityType    SeasonalityType `json:"seasonality_type" db:"seasonality_type"`
	SafetyStockDays    int             `json:"safety_stock_days" db:"safety_stock_days"`
	LeadTimeDays       int             `json:"lead_time_days" db:"lead_time_days"`
	ReorderMethod      ReorderMethod   `json:"reorder_method" db:"reorder_method"`
	ReorderPoint       float64         `json:"reorder_point" db:"reorder_point"`
	MinimumOrderQty    int             `json:"minimum_order_qty" db:"minimum_order_qty"`
	OrderMultiple      int             `json:"order_multiple" db:"order_multiple"`
	EconomicOrderQty   *float64        `json:"economic_order_qty,omitempty" db:"economic_order_qty"`
	MarketGrowthRate   float64         `json:"market_growth_rate" db:"market_growth_rate"`
	LocalMarketFactor  float64         `json:"local_market_factor" db:"local_market_factor"`
	IsActive           bool            `json:"is_active" db:"is_active"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}

// ForecastConfigUpdate is a partial update; nil fields are left untouched.
type ForecastConfigUpdate struct {
	HorizonPeriods     *int             `json:"horizon_periods,omitempty"`
	HistoryMonths      *int             `json:"history_months,omitempty"`
	ConfidenceLevel    *float64         `json:"confidence_level,omitempty"`
	SeasonalityEnabled *bool            `json:"seasonality_enabled,omitempty"`
	SeasonalityType    *SeasonalityType `json:"seasonality_type,omitempty"`
	SafetyStockDays    *int             `json:"safety_stock_days,omitempty"`
	LeadTimeDays       *int             `json:"lead_time_days,omitempty"`
	ReorderMethod      *ReorderMethod   `json:"reorder_method,omitempty"`
	ReorderPoint       *float64         `json:"reorder_point,omitempty"`
	MinimumOrderQty    *int             `json:"minimum_order_qty,omitempty"`
	OrderMultiple      *int             `json:"order_multiple,omitempty"`
	EconomicOrderQty   *float64         `json:"economic_order_qty,omitempty"`
	MarketGrowthRate   *float64         `json:"market_growth_rate,omitempty"`
	LocalMarketFactor  *float64         `json:"local_market_factor,omitempty"`
	IsActive           *bool            `json:"is_active,omitempty"`
}

// Apply merges the non-nil fields into cfg.
func (u *ForecastConfigUpdate) Apply(cfg *ForecastConfig) {
	if u.HorizonPeriods != nil {
		cfg.HorizonPeriods = *u.HorizonPeriods
	}
	if u.HistoryMonths != nil {
		cfg.HistoryMonths = *u.HistoryMonths
	}
	if u.ConfidenceLevel != nil {
		cfg.ConfidenceLevel = *u.ConfidenceLevel
	}
	if u.SeasonalityEnabled != nil {
		cfg.SeasonalityEnabled = *u.SeasonalityEnabled
	}
	if u.SeasonalityType != nil {
		cfg.SeasonalityType = *u.SeasonalityType
	}
	if u.SafetyStockDays != nil {
		cfg.SafetyStockDays = *u.SafetyStockDays
	}
	if u.LeadTimeDays != nil {
		cfg.LeadTimeDays = *u.LeadTimeDays
	}
	if u.ReorderMethod != nil {
		cfg.ReorderMethod = *u.ReorderMethod
	}
	if u.ReorderPoint != nil {
		cfg.ReorderPoint = *u.ReorderPoint
	}
	if u.MinimumOrderQty != nil {
		cfg.MinimumOrderQty = *u.MinimumOrderQty
	}
	if u.OrderMultiple != nil {
		cfg.OrderMultiple = *u.OrderMultiple
	}
	if u.EconomicOrderQty != nil {
		cfg.EconomicOrderQty = u.EconomicOrderQty
	}
	if u.MarketGrowthRate != nil {
		cfg.MarketGrowthRate = *u.MarketGrowthRate
	}
	if u.LocalMarketFactor != nil {
		cfg.LocalMarketFactor = *u.LocalMarketFactor
	}
	if u.IsActive != nil {
		cfg.IsActive = *u.IsActive
	}
}

// DemandPoint is a raw or aggregated demand observation. Transient, never
// persisted on its own.
type DemandPoint struct {
	Date      time.Time `json:"date" db:"date"`
	Quantity  float64   `json:"quantity" db:"quantity"`
	ProductID int64     `json:"product_id" db:"product_id"`
}

// StockLevel is the current on-hand stock for a dealer/product
type StockLevel struct {
	DealerID  int64     `json:"dealer_id" db:"dealer_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Quantity  float64   `json:"quantity" db:"quantity"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DemandForecast is one forecasted period for a config/product. Unique per
// (config_id, product_id, period_start).
type DemandForecast struct {
	ID                int64     `json:"id" db:"id"`
	ConfigID          int64     `json:"config_id" db:"config_id"`
	ProductID         int64     `json:"product_id" db:"product_id"`
	PeriodStart       time.Time `json:"period_start" db:"period_start"`
	PeriodType        string    `json:"period_type" db:"period_type"`
	ForecastedDemand  float64   `json:"forecasted_demand" db:"forecasted_demand"`
	LowerBound        float64   `json:"lower_bound" db:"lower_bound"`
	UpperBound        float64   `json:"upper_bound" db:"upper_bound"`
	HistoricalAverage float64   `json:"historical_average" db:"historical_average"`
	YoYChange         *float64  `json:"yoy_change,omitempty" db:"yoy_change"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// SuggestedOrder is one purchase suggestion produced by the planner.
type SuggestedOrder struct {
	ID                 int64           `json:"id" db:"id"`
	ConfigID           int64           `json:"config_id" db:"config_id"`
	ProductID          int64           `json:"product_id" db:"product_id"`
	SuggestedQty       int             `json:"suggested_qty" db:"suggested_qty"`
	EconomicOrderQty   *float64        `json:"economic_order_qty,omitempty" db:"economic_order_qty"`
	CurrentStock       float64         `json:"current_stock" db:"current_stock"`
	ProjectedDemand    float64         `json:"projected_demand" db:"projected_demand"`
	ReorderPoint       float64         `json:"reorder_point" db:"reorder_point"`
	EstimatedCost      decimal.Decimal `json:"estimated_cost" db:"estimated_cost"`
	Priority           OrderPriority   `json:"priority" db:"priority"`
	Status             OrderStatus     `json:"status" db:"status"`
	SuggestedOrderDate time.Time       `json:"suggested_order_date" db:"suggested_order_date"`
	ExpectedDelivery   time.Time       `json:"expected_delivery" db:"expected_delivery"`
	Reasoning          OrderReasoning  `json:"reasoning" db:"reasoning"`
	AcceptedAt         *time.Time      `json:"accepted_at,omitempty" db:"accepted_at"`
	OrderedAt          *time.Time      `json:"ordered_at,omitempty" db:"ordered_at"`
	SkippedAt          *time.Time      `json:"skipped_at,omitempty" db:"skipped_at"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}

// SeasonalPattern is a reusable named set of 12 monthly factors. DealerID nil
// means the pattern is global.
type SeasonalPattern struct {
	ID        int64          `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	DealerID  *int64         `json:"dealer_id,omitempty" db:"dealer_id"`
	Factors   MonthlyFactors `json:"factors" db:"factors"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// MarketIndicator is an externally supplied regional observation. Unique per
// (region, name, period).
type MarketIndicator struct {
	ID            int64     `json:"id" db:"id"`
	Region        string    `json:"region" db:"region"`
	Name          string    `json:"name" db:"name"`
	Period        time.Time `json:"period" db:"period"`
	Value         float64   `json:"value" db:"value"`
	PriorValue    float64   `json:"prior_value" db:"prior_value"`
	PercentChange float64   `json:"percent_change" db:"percent_change"`
	ImpactFactor  float64   `json:"impact_factor" db:"impact_factor"`
	Confidence    float64   `json:"confidence" db:"confidence"`
	Source        string    `json:"source" db:"source"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// MarketAnalysis is the combined view of a region's indicators.
type MarketAnalysis struct {
	Region           string        `json:"region"`
	AdjustmentFactor float64       `json:"adjustment_factor"`
	OverallOutlook   MarketOutlook `json:"overall_outlook"`
	IndicatorCount   int           `json:"indicator_count"`
	PositiveCount    int           `json:"positive_count"`
	NegativeCount    int           `json:"negative_count"`
	GeneratedAt      time.Time     `json:"generated_at"`
}

// OrderPlanSummary aggregates a generated order plan.
type OrderPlanSummary struct {
	TotalOrders   int             `json:"total_orders"`
	TotalUnits    int             `json:"total_units"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	CriticalCount int             `json:"critical_count"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// OrderPlan is the result of a plan regeneration.
type OrderPlan struct {
	Orders  []*SuggestedOrder `json:"orders"`
	Summary OrderPlanSummary  `json:"summary"`
}

// ChartDataset is one line of the forecast chart payload.
type ChartDataset struct {
	Label  string     `json:"label"`
	Values []*float64 `json:"values"`
}

// ForecastChartData is the presentation-ready forecast aggregate.
type ForecastChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// TimelineProduct is the per-product breakdown inside one timeline month.
type TimelineProduct struct {
	ProductID int64  `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// TimelineMonth groups suggested orders that fall in one calendar month.
type TimelineMonth struct {
	Month         string            `json:"month"`
	TotalQuantity int               `json:"total_quantity"`
	OrderCount    int               `json:"order_count"`
	Products      []TimelineProduct `json:"products"`
}

// OrderTimelineData is the order timeline payload.
type OrderTimelineData struct {
	Months []TimelineMonth `json:"months"`
}
