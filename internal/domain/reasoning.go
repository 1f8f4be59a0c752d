package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderReasoning explains why the planner suggested an order. It is stored as
// a JSON column but the planner only ever works with the structured value.
type OrderReasoning struct {
	PrimaryReason       string    `json:"primary_reason"`
	ContributingFactors []string  `json:"contributing_factors,omitempty"`
	RiskLevel           RiskLevel `json:"risk_level"`
	StockoutRiskPct     float64   `json:"stockout_risk_pct"`
	OverstockRiskPct    float64   `json:"overstock_risk_pct"`
	DaysOfSupply        float64   `json:"days_of_supply"`
}

// Value implements driver.Valuer for the JSON storage boundary.
func (r OrderReasoning) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for the JSON storage boundary.
func (r *OrderReasoning) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*r = OrderReasoning{}
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("cannot scan %T into OrderReasoning", src)
	}
}

// MonthlyFactors holds one multiplicative factor per calendar month, index 0
// being January. Stored as a JSON array.
type MonthlyFactors [12]float64

// NeutralFactors returns twelve factors of 1.0.
func NeutralFactors() MonthlyFactors {
	var f MonthlyFactors
	for i := range f {
		f[i] = 1.0
	}
	return f
}

// ForMonth returns the factor for a calendar month (time.January == 1).
func (f MonthlyFactors) ForMonth(month int) float64 {
	if month < 1 || month > 12 {
		return 1.0
	}
	return f[month-1]
}

// Value implements driver.Valuer for the JSON storage boundary.
func (f MonthlyFactors) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements sql.Scanner for the JSON storage boundary.
func (f *MonthlyFactors) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*f = NeutralFactors()
		return nil
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return fmt.Errorf("cannot scan %T into MonthlyFactors", src)
	}
}
