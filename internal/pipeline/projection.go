package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashburn/internal/model"
)

// Project walks the calendar range spanned by txs and produces one point per
// day, carrying a running balance seeded from startingBalance. The timeline
// always opens with a point for today holding the starting balance itself;
// when today falls inside the transaction range that date appears twice, once
// as the opener and once as a walked day. Transactions without a date are
// skipped; if none carry a date the opener is the whole timeline.
func Project(txs []model.Transaction, startingBalance decimal.Decimal, today model.Date) []model.ProjectionPoint {
	opener := model.ProjectionPoint{Date: today, Balance: startingBalance}

	var minDate, maxDate model.Date
	income := make(map[string]decimal.Decimal)
	expenses := make(map[string]decimal.Decimal)

	for _, tx := range txs {
		if tx.Date.IsZero() {
			continue
		}
		if minDate.IsZero() || tx.Date.Before(minDate) {
			minDate = tx.Date
		}
		if maxDate.IsZero() || tx.Date.After(maxDate) {
			maxDate = tx.Date
		}
		key := tx.Date.String()
		switch tx.Type {
		case model.Income:
			income[key] = income[key].Add(tx.Amount)
		case model.Expense:
			expenses[key] = expenses[key].Add(tx.Amount)
		}
	}

	if minDate.IsZero() {
		return []model.ProjectionPoint{opener}
	}

	points := make([]model.ProjectionPoint, 0, maxDate.DaysSince(minDate)+2)
	points = append(points, opener)

	balance := startingBalance
	for day := minDate; !day.After(maxDate); day = day.AddDays(1) {
		key := day.String()
		in, out := income[key], expenses[key]
		net := in.Sub(out)
		balance = balance.Add(net)
		points = append(points, model.ProjectionPoint{
			Date:          day,
			Balance:       balance,
			DailyIncome:   in,
			DailyExpenses: out,
			NetFlow:       net,
		})
	}

	return points
}
