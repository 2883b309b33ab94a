package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashburn/internal/model"
)

func sampleSnapshot() []model.Transaction {
	return []model.Transaction{
		tx(1, model.Income, 3000, "2025-01-20", model.Pending),
		tx(2, model.Income, 5000, "2025-01-01", model.Confirmed),
		tx(3, model.Expense, 1200, "2025-01-05", model.Confirmed),
		tx(4, model.Expense, 800, "2025-01-15", model.Pending),
	}
}

func TestApplyScenarioBaseIsIdentity(t *testing.T) {
	in := sampleSnapshot()
	today := day("2025-01-01")

	out := ApplyScenario(in, ScenarioParams{Scenario: ScenarioBase}, today)

	if len(out) != len(in) {
		t.Fatalf("got %d transactions, want %d", len(out), len(in))
	}
	// Content-equal to the input, order aside.
	byID := make(map[int]model.Transaction, len(in))
	for _, tx := range in {
		byID[tx.ID] = tx
	}
	for _, got := range out {
		want, ok := byID[got.ID]
		if !ok {
			t.Fatalf("unexpected transaction id %d", got.ID)
		}
		if !got.Date.Equal(want.Date) || !got.Amount.Equal(want.Amount) || got.Status != want.Status {
			t.Errorf("id %d changed: got %+v, want %+v", got.ID, got, want)
		}
	}
}

func TestApplyScenarioSortsByDate(t *testing.T) {
	out := ApplyScenario(sampleSnapshot(), ScenarioParams{Scenario: ScenarioBase}, day("2025-01-01"))

	for i := 1; i < len(out); i++ {
		if out[i].Date.Before(out[i-1].Date) {
			t.Fatalf("output not sorted: %s before %s", out[i].Date, out[i-1].Date)
		}
	}
}

func TestApplyScenarioDoesNotMutateInput(t *testing.T) {
	in := sampleSnapshot()
	origDate := in[0].Date

	ApplyScenario(in, ScenarioParams{
		Scenario:      ScenarioDelays,
		DelayDays:     14,
		WhatIfExpense: decimal.NewFromInt(500),
	}, day("2025-01-01"))

	if !in[0].Date.Equal(origDate) {
		t.Errorf("input mutated: date now %s, want %s", in[0].Date, origDate)
	}
	if len(in) != 4 {
		t.Errorf("input length changed to %d", len(in))
	}
}

func TestApplyScenarioPaymentDelays(t *testing.T) {
	in := sampleSnapshot()
	today := day("2025-01-01")

	out := ApplyScenario(in, ScenarioParams{Scenario: ScenarioDelays, DelayDays: 10}, today)

	dates := make(map[int]model.Date, len(out))
	for _, tx := range out {
		dates[tx.ID] = tx.Date
	}

	// Only pending income moves.
	if got := dates[1]; !got.Equal(day("2025-01-30")) {
		t.Errorf("pending income date = %s, want 2025-01-30", got)
	}
	if got := dates[2]; !got.Equal(day("2025-01-01")) {
		t.Errorf("confirmed income date = %s, want unchanged 2025-01-01", got)
	}
	if got := dates[4]; !got.Equal(day("2025-01-15")) {
		t.Errorf("pending expense date = %s, want unchanged 2025-01-15", got)
	}
}

func TestApplyScenarioZeroDelayMatchesBase(t *testing.T) {
	in := sampleSnapshot()
	today := day("2025-01-01")

	base := ApplyScenario(in, ScenarioParams{Scenario: ScenarioBase}, today)
	delayed := ApplyScenario(in, ScenarioParams{Scenario: ScenarioDelays, DelayDays: 0}, today)

	if len(base) != len(delayed) {
		t.Fatalf("lengths differ: %d vs %d", len(base), len(delayed))
	}
	for i := range base {
		if base[i].ID != delayed[i].ID || !base[i].Date.Equal(delayed[i].Date) {
			t.Errorf("position %d differs: %+v vs %+v", i, base[i], delayed[i])
		}
	}
}

func TestApplyScenarioWhatIfInjection(t *testing.T) {
	today := day("2025-01-01")

	t.Run("zero amount adds nothing", func(t *testing.T) {
		out := ApplyScenario(sampleSnapshot(), ScenarioParams{Scenario: ScenarioBase}, today)
		if len(out) != 4 {
			t.Errorf("got %d transactions, want 4", len(out))
		}
	})

	t.Run("positive amount adds one synthetic expense", func(t *testing.T) {
		out := ApplyScenario(sampleSnapshot(), ScenarioParams{
			Scenario:      ScenarioBase,
			WhatIfExpense: decimal.NewFromInt(500),
		}, today)

		if len(out) != 5 {
			t.Fatalf("got %d transactions, want 5", len(out))
		}

		var synth []model.Transaction
		for _, tx := range out {
			if tx.Description == "What-If Expense" {
				synth = append(synth, tx)
			}
		}
		if len(synth) != 1 {
			t.Fatalf("got %d synthetic transactions, want 1", len(synth))
		}
		s := synth[0]
		if s.Type != model.Expense {
			t.Errorf("type = %s, want expense", s.Type)
		}
		if s.Status != model.Projected {
			t.Errorf("status = %s, want projected", s.Status)
		}
		if !s.Date.Equal(today.AddDays(3)) {
			t.Errorf("date = %s, want %s", s.Date, today.AddDays(3))
		}
		if !s.Amount.Equal(decimal.NewFromInt(500)) {
			t.Errorf("amount = %s, want 500", s.Amount)
		}
		if s.Probability != 100 {
			t.Errorf("probability = %d, want 100", s.Probability)
		}
	})

	t.Run("applies on top of delays", func(t *testing.T) {
		out := ApplyScenario(sampleSnapshot(), ScenarioParams{
			Scenario:      ScenarioDelays,
			DelayDays:     5,
			WhatIfExpense: decimal.NewFromInt(100),
		}, today)
		if len(out) != 5 {
			t.Errorf("got %d transactions, want 5", len(out))
		}
	})
}

func TestApplyScenarioEmptyInput(t *testing.T) {
	today := day("2025-01-01")

	if out := ApplyScenario(nil, ScenarioParams{Scenario: ScenarioDelays, DelayDays: 30}, today); len(out) != 0 {
		t.Errorf("got %d transactions from empty input, want 0", len(out))
	}

	out := ApplyScenario(nil, ScenarioParams{WhatIfExpense: decimal.NewFromInt(50)}, today)
	if len(out) != 1 {
		t.Errorf("got %d transactions, want the synthetic expense alone", len(out))
	}
}
