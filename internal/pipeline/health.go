package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashburn/internal/model"
)

// thirty days per month keeps the runway math simple and predictable.
var daysPerMonth = decimal.NewFromInt(30)

// ScoreHealth derives summary metrics from a projection timeline. It never
// modifies its inputs and has no side effects.
func ScoreHealth(points []model.ProjectionPoint, currentBalance decimal.Decimal, today model.Date) model.HealthMetrics {
	m := model.HealthMetrics{
		CurrentBalance: currentBalance,
		MinBalance:     lowestBalance(points),
		TrendDirection: trend(points),
		MonthlyRunway:  monthlyRunway(points, currentBalance),
	}

	for _, p := range points {
		if p.Balance.IsNegative() {
			d := p.Date.DaysSince(today)
			m.DaysUntilDanger = &d
			break
		}
	}
	m.HealthScore = healthScore(m.DaysUntilDanger)

	return m
}

// healthScore maps days-until-danger onto a 0-100 score. A nil input means
// the projected balance never goes negative.
func healthScore(daysUntilDanger *int) int {
	if daysUntilDanger == nil {
		return 100
	}
	d := *daysUntilDanger
	switch {
	case d < 30:
		return max(0, d*2)
	case d < 60:
		return 60 + (d - 30)
	default:
		return 90
	}
}

// monthlyRunway estimates months of cover at the timeline's average burn
// rate. Nil means spending never depletes the balance: either the timeline
// is a lone opener or average expenses are zero.
func monthlyRunway(points []model.ProjectionPoint, currentBalance decimal.Decimal) *decimal.Decimal {
	if len(points) <= 1 {
		return nil
	}

	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.DailyExpenses)
	}
	monthly := total.Div(decimal.NewFromInt(int64(len(points)))).Mul(daysPerMonth)
	if !monthly.IsPositive() {
		return nil
	}

	r := currentBalance.Div(monthly)
	return &r
}

// trend is the balance change across the last five points of the timeline.
func trend(points []model.ProjectionPoint) decimal.Decimal {
	if len(points) < 2 {
		return decimal.Zero
	}
	tail := points
	if len(tail) > 5 {
		tail = tail[len(tail)-5:]
	}
	return tail[len(tail)-1].Balance.Sub(tail[0].Balance)
}

func lowestBalance(points []model.ProjectionPoint) decimal.Decimal {
	if len(points) == 0 {
		return decimal.Zero
	}
	low := points[0].Balance
	for _, p := range points[1:] {
		if p.Balance.LessThan(low) {
			low = p.Balance
		}
	}
	return low
}
