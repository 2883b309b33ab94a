package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashburn/internal/model"
)

// Scenario names a what-if transformation applied before projection.
type Scenario string

// Known scenarios. Anything else is treated as the base case.
const (
	ScenarioBase   Scenario = "base"
	ScenarioDelays Scenario = "payment-delays"
)

// whatIfID marks the synthetic what-if transaction. It exists only inside
// a scenario result and is never written to the store.
const whatIfID = 9999

// ScenarioParams carries the tunable knobs for a scenario run.
type ScenarioParams struct {
	Scenario      Scenario
	DelayDays     int
	WhatIfExpense decimal.Decimal
}

// ApplyScenario returns a transformed copy of txs, sorted ascending by date.
// The base case leaves content untouched. Payment delays shift every pending
// income transaction forward by DelayDays. A positive WhatIfExpense appends
// one synthetic projected expense dated three days from today, regardless of
// the selected scenario. The input slice is never mutated.
func ApplyScenario(txs []model.Transaction, p ScenarioParams, today model.Date) []model.Transaction {
	out := make([]model.Transaction, len(txs))
	copy(out, txs)

	if p.Scenario == ScenarioDelays {
		for i := range out {
			if out[i].Type == model.Income && out[i].Status == model.Pending {
				out[i].Date = out[i].Date.AddDays(p.DelayDays)
			}
		}
	}

	if p.WhatIfExpense.IsPositive() {
		out = append(out, model.Transaction{
			ID:          whatIfID,
			Type:        model.Expense,
			Amount:      p.WhatIfExpense,
			Date:        today.AddDays(3),
			Description: "What-If Expense",
			Status:      model.Projected,
			Probability: 100,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
