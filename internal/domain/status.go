package domain

import "strings"

// OrderStatus is the lifecycle state of a suggested order.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusAccepted OrderStatus = "accepted"
	OrderStatusOrdered  OrderStatus = "ordered"
	OrderStatusSkipped  OrderStatus = "skipped"
)

var orderStatuses = map[string]OrderStatus{
	"pending":  OrderStatusPending,
	"accepted": OrderStatusAccepted,
	"ordered":  OrderStatusOrdered,
	"skipped":  OrderStatusSkipped,
}

// ParseOrderStatus returns the status for a given label (case-insensitive).
func ParseOrderStatus(label string) (OrderStatus, bool) {
	s, ok := orderStatuses[strings.ToLower(strings.TrimSpace(label))]

	return s, ok
}

// OrderPriority ranks how urgently a suggested order should be placed.
type OrderPriority string

const (
	PriorityCritical OrderPriority = "critical"
	PriorityHigh     OrderPriority = "high"
	PriorityNormal   OrderPriority = "normal"
	PriorityLow      OrderPriority = "low"
)

// ReorderMethod selects how the reorder point is computed.
type ReorderMethod string

const (
	ReorderFixed   ReorderMethod = "fixed"
	ReorderDynamic ReorderMethod = "dynamic"
	ReorderMinMax  ReorderMethod = "min_max"
)

var reorderMethods = map[string]ReorderMethod{
	"fixed":   ReorderFixed,
	"dynamic": ReorderDynamic,
	"min_max": ReorderMinMax,
}

// ParseReorderMethod returns the method for a given label (case-insensitive).
func ParseReorderMethod(label string) (ReorderMethod, bool) {
	m, ok := reorderMethods[strings.ToLower(strings.TrimSpace(label))]

	return m, ok
}

// SeasonalityType selects where monthly factors come from.
type SeasonalityType string

const (
	// SeasonalityAuto derives factors from the dealer's own history.
	SeasonalityAuto SeasonalityType = "auto"
	// SeasonalityPattern applies a stored named pattern.
	SeasonalityPattern SeasonalityType = "pattern"
	// SeasonalityNone disables seasonal adjustment.
	SeasonalityNone SeasonalityType = "none"
)

// TrendDirection classifies the slope of a fitted trend.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// MarketOutlook summarizes the balance of a region's indicators.
type MarketOutlook string

const (
	OutlookPositive MarketOutlook = "positive"
	OutlookNeutral  MarketOutlook = "neutral"
	OutlookNegative MarketOutlook = "negative"
)

// RiskLevel labels the stock risk attached to a suggestion.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)
