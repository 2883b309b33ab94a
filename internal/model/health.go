package model

import "github.com/shopspring/decimal"

// HealthMetrics holds the derived cash-flow safety indicators.
// DaysUntilDanger is nil when the projected balance never goes
// negative; MonthlyRunway is nil when runway is unbounded.
type HealthMetrics struct {
	HealthScore     int              `json:"health_score"`
	DaysUntilDanger *int             `json:"days_until_danger,omitempty"`
	MonthlyRunway   *decimal.Decimal `json:"monthly_runway,omitempty"`
	TrendDirection  decimal.Decimal  `json:"trend_direction"`
	MinBalance      decimal.Decimal  `json:"min_balance"`
	CurrentBalance  decimal.Decimal  `json:"current_balance"`
}
