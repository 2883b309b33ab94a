package pipeline

import (
	"testing"

	"github.com/theirongolddev/cashburn/internal/model"
)

func TestCollectAlerts(t *testing.T) {
	today := day("2025-02-10")
	txs := []model.Transaction{
		tx(1, model.Income, 2000, "2025-02-01", model.Pending),   // overdue
		tx(2, model.Income, 500, "2025-02-12", model.Pending),    // upcoming
		tx(3, model.Expense, 300, "2025-02-14", model.Projected), // upcoming
		tx(4, model.Expense, 100, "2025-02-11", model.Confirmed), // confirmed, silent
		tx(5, model.Expense, 900, "2025-03-15", model.Pending),   // beyond horizon
		tx(6, model.Expense, 50, "2025-02-01", model.Pending),    // past expense, silent
	}

	alerts := CollectAlerts(txs, today, 7)

	if len(alerts) != 3 {
		t.Fatalf("got %d alerts, want 3", len(alerts))
	}

	if alerts[0].Kind != AlertOverdue || alerts[0].Transaction.ID != 1 {
		t.Errorf("first alert = %s id %d, want overdue id 1", alerts[0].Kind, alerts[0].Transaction.ID)
	}
	if alerts[0].DaysOut != -9 {
		t.Errorf("overdue DaysOut = %d, want -9", alerts[0].DaysOut)
	}

	if alerts[1].Kind != AlertUpcoming || alerts[1].Transaction.ID != 2 {
		t.Errorf("second alert = %s id %d, want upcoming id 2", alerts[1].Kind, alerts[1].Transaction.ID)
	}
	if alerts[2].Kind != AlertUpcoming || alerts[2].Transaction.ID != 3 {
		t.Errorf("third alert = %s id %d, want upcoming id 3", alerts[2].Kind, alerts[2].Transaction.ID)
	}
}

func TestCollectAlertsHorizonBoundary(t *testing.T) {
	today := day("2025-02-10")
	txs := []model.Transaction{
		tx(1, model.Expense, 10, "2025-02-17", model.Pending), // exactly today+7
		tx(2, model.Expense, 10, "2025-02-18", model.Pending), // one past
		tx(3, model.Expense, 10, "2025-02-10", model.Pending), // due today
	}

	alerts := CollectAlerts(txs, today, 7)

	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(alerts))
	}
	if alerts[0].Transaction.ID != 3 || alerts[0].DaysOut != 0 {
		t.Errorf("first alert id %d DaysOut %d, want id 3 due today", alerts[0].Transaction.ID, alerts[0].DaysOut)
	}
	if alerts[1].Transaction.ID != 1 || alerts[1].DaysOut != 7 {
		t.Errorf("second alert id %d DaysOut %d, want id 1 at the horizon", alerts[1].Transaction.ID, alerts[1].DaysOut)
	}
}

func TestCollectAlertsEmpty(t *testing.T) {
	if alerts := CollectAlerts(nil, day("2025-02-10"), 7); len(alerts) != 0 {
		t.Errorf("got %d alerts from empty input, want 0", len(alerts))
	}
}
