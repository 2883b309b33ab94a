// Package pipeline turns a transaction snapshot into a scenario-adjusted
// balance timeline and derived health metrics.
package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashburn/internal/model"
)

// DefaultUpcomingDays is the alert lookahead used when none is configured.
const DefaultUpcomingDays = 7

// Params bundles everything a pipeline run needs beyond the snapshot itself.
type Params struct {
	Scenario     ScenarioParams
	Today        model.Date
	UpcomingDays int
}

// Result is one complete computation over a store snapshot. Each run is a
// pure function of its inputs; nothing here touches the store.
type Result struct {
	Transactions []model.Transaction
	Points       []model.ProjectionPoint
	Health       model.HealthMetrics
	Alerts       []Alert
}

// Run applies the scenario to the snapshot, then projects the daily balance
// and scores health over the result. The snapshot is never mutated.
func Run(txs []model.Transaction, startingBalance decimal.Decimal, p Params) Result {
	if p.Today.IsZero() {
		p.Today = model.Today()
	}
	if p.UpcomingDays <= 0 {
		p.UpcomingDays = DefaultUpcomingDays
	}

	applied := ApplyScenario(txs, p.Scenario, p.Today)
	points := Project(applied, startingBalance, p.Today)

	return Result{
		Transactions: applied,
		Points:       points,
		Health:       ScoreHealth(points, startingBalance, p.Today),
		Alerts:       CollectAlerts(applied, p.Today, p.UpcomingDays),
	}
}
