package domain

// Defaults applied when a dealer's config is first created.
const (
	DefaultHorizonPeriods    = 18
	DefaultHistoryMonths     = 24
	DefaultConfidenceLevel   = 0.95
	DefaultSafetyStockDays   = 7
	DefaultLeadTimeDays      = 14
	DefaultMinimumOrderQty   = 1
	DefaultOrderMultiple     = 1
	DefaultLocalMarketFactor = 1.0
)

// NewDefaultConfig returns a fresh config for a dealer with the stated
// defaults. The caller persists it.
func NewDefaultConfig(dealerID int64) *ForecastConfig {
	return &ForecastConfig{
		DealerID:           dealerID,
		HorizonPeriods:     DefaultHorizonPeriods,
		HistoryMonths:      DefaultHistoryMonths,
		ConfidenceLevel:    DefaultConfidenceLevel,
		SeasonalityEnabled: true,
		SeasonalityType:    SeasonalityAuto,
		SafetyStockDays:    DefaultSafetyStockDays,
		LeadTimeDays:       DefaultLeadTimeDays,
		ReorderMethod:      ReorderDynamic,
		MinimumOrderQty:    DefaultMinimumOrderQty,
		OrderMultiple:      DefaultOrderMultiple,
		MarketGrowthRate:   0,
		LocalMarketFactor:  DefaultLocalMarketFactor,
		IsActive:           true,
	}
}
