package pipeline

import (
	"sort"

	"github.com/theirongolddev/cashburn/internal/model"
)

// AlertKind classifies why a transaction is flagged.
type AlertKind string

// Alert kinds.
const (
	AlertOverdue  AlertKind = "overdue"
	AlertUpcoming AlertKind = "upcoming"
)

// Alert flags a transaction that needs attention on the dashboard.
// DaysOut is the distance from today in days, negative when past due.
type Alert struct {
	Kind        AlertKind
	DaysOut     int
	Transaction model.Transaction
}

// CollectAlerts reports pending income that is past due, plus any pending or
// projected transaction falling within upcomingDays of today. Confirmed
// transactions never alert. Results are ordered by date, overdue first.
func CollectAlerts(txs []model.Transaction, today model.Date, upcomingDays int) []Alert {
	var alerts []Alert
	horizon := today.AddDays(upcomingDays)

	for _, tx := range txs {
		if tx.Status == model.Confirmed || tx.Date.IsZero() {
			continue
		}
		switch {
		case tx.Type == model.Income && tx.Status == model.Pending && tx.Date.Before(today):
			alerts = append(alerts, Alert{
				Kind:        AlertOverdue,
				DaysOut:     tx.Date.DaysSince(today),
				Transaction: tx,
			})
		case !tx.Date.Before(today) && !tx.Date.After(horizon):
			alerts = append(alerts, Alert{
				Kind:        AlertUpcoming,
				DaysOut:     tx.Date.DaysSince(today),
				Transaction: tx,
			})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].DaysOut < alerts[j].DaysOut
	})
	return alerts
}
