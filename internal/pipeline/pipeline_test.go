package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashburn/internal/model"
)

func TestRunEndToEnd(t *testing.T) {
	txs := []model.Transaction{
		tx(1, model.Income, 5000, "2025-01-01", model.Confirmed),
		tx(2, model.Expense, 2000, "2025-01-03", model.Confirmed),
	}
	start := decimal.NewFromInt(1000)

	res := Run(txs, start, Params{
		Scenario: ScenarioParams{Scenario: ScenarioBase},
		Today:    day("2025-01-01"),
	})

	if len(res.Points) != 4 {
		t.Fatalf("got %d points, want 4", len(res.Points))
	}
	final := res.Points[len(res.Points)-1]
	if !final.Balance.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("final balance = %s, want 4000", final.Balance)
	}
	if res.Health.HealthScore != 100 {
		t.Errorf("score = %d, want 100", res.Health.HealthScore)
	}
	if res.Health.DaysUntilDanger != nil {
		t.Errorf("days until danger = %v, want nil", *res.Health.DaysUntilDanger)
	}
	if !res.Health.MinBalance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("min balance = %s, want 1000", res.Health.MinBalance)
	}
	if len(res.Alerts) != 0 {
		t.Errorf("got %d alerts from confirmed-only snapshot, want 0", len(res.Alerts))
	}
}

func TestRunWhatIfLowersBalance(t *testing.T) {
	txs := []model.Transaction{
		tx(1, model.Income, 1000, "2025-01-01", model.Confirmed),
	}
	today := day("2025-01-01")
	start := decimal.NewFromInt(200)

	base := Run(txs, start, Params{Scenario: ScenarioParams{Scenario: ScenarioBase}, Today: today})
	whatIf := Run(txs, start, Params{
		Scenario: ScenarioParams{Scenario: ScenarioBase, WhatIfExpense: decimal.NewFromInt(400)},
		Today:    today,
	})

	baseFinal := base.Points[len(base.Points)-1].Balance
	whatIfFinal := whatIf.Points[len(whatIf.Points)-1].Balance

	if !whatIfFinal.Equal(baseFinal.Sub(decimal.NewFromInt(400))) {
		t.Errorf("what-if final = %s, want %s less 400", whatIfFinal, baseFinal)
	}
	// The synthetic expense stretches the range out to today+3.
	if got := whatIf.Points[len(whatIf.Points)-1].Date; !got.Equal(today.AddDays(3)) {
		t.Errorf("what-if range ends %s, want %s", got, today.AddDays(3))
	}
}

func TestRunDelaysCanCreateDanger(t *testing.T) {
	txs := []model.Transaction{
		tx(1, model.Income, 3000, "2025-01-05", model.Pending),
		tx(2, model.Expense, 1500, "2025-01-10", model.Confirmed),
	}
	today := day("2025-01-01")
	start := decimal.NewFromInt(100)

	base := Run(txs, start, Params{Scenario: ScenarioParams{Scenario: ScenarioBase}, Today: today})
	if base.Health.DaysUntilDanger != nil {
		t.Fatalf("base scenario already in danger at day %d", *base.Health.DaysUntilDanger)
	}

	// Delaying the income past the expense leaves the balance negative on the 10th.
	delayed := Run(txs, start, Params{
		Scenario: ScenarioParams{Scenario: ScenarioDelays, DelayDays: 10},
		Today:    today,
	})
	if delayed.Health.DaysUntilDanger == nil {
		t.Fatal("delayed scenario shows no danger, want danger on day 9")
	}
	if *delayed.Health.DaysUntilDanger != 9 {
		t.Errorf("days until danger = %d, want 9", *delayed.Health.DaysUntilDanger)
	}
	if delayed.Health.HealthScore != 18 {
		t.Errorf("score = %d, want 18", delayed.Health.HealthScore)
	}
}
