package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashburn/internal/model"
)

// genTransactions spreads count transactions over roughly two years,
// alternating income and expenses with drifting amounts.
func genTransactions(count int) []model.Transaction {
	start := model.NewDate(2024, time.January, 1)
	txs := make([]model.Transaction, 0, count)
	for i := 0; i < count; i++ {
		typ := model.Income
		if i%3 != 0 {
			typ = model.Expense
		}
		txs = append(txs, model.Transaction{
			ID:          i + 1,
			Type:        typ,
			Amount:      decimal.NewFromInt(int64(50 + i%900)),
			Date:        start.AddDays(i % 730),
			Description: fmt.Sprintf("entry %d", i+1),
			Status:      model.Confirmed,
			Probability: 100,
		})
	}
	return txs
}

func BenchmarkProject(b *testing.B) {
	txs := genTransactions(5000)
	today := model.NewDate(2024, time.June, 1)
	start := decimal.NewFromInt(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		points := Project(txs, start, today)
		if len(points) == 0 {
			b.Fatal("empty projection")
		}
	}
}

func BenchmarkRun(b *testing.B) {
	txs := genTransactions(5000)
	params := Params{
		Scenario: ScenarioParams{Scenario: ScenarioDelays, DelayDays: 7},
		Today:    model.NewDate(2024, time.June, 1),
	}
	start := decimal.NewFromInt(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res := Run(txs, start, params)
		if len(res.Points) == 0 {
			b.Fatal("empty projection")
		}
	}
}
