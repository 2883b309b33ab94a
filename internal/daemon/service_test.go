package daemon

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashburn/internal/model"
	"github.com/theirongolddev/cashburn/internal/store"
)

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		Transactions: 10,
		Balance:      decimal.RequireFromString("1000.50"),
		HealthScore:  90,
		MinBalance:   decimal.RequireFromString("200.00"),
	}
	curr := Snapshot{
		Transactions: 12,
		Balance:      decimal.RequireFromString("1250.75"),
		HealthScore:  60,
		MinBalance:   decimal.RequireFromString("-100.00"),
	}

	delta := diffSnapshots(prev, curr)
	if delta.Transactions != 2 {
		t.Fatalf("Transactions delta = %d, want 2", delta.Transactions)
	}
	if !delta.Balance.Equal(decimal.RequireFromString("250.25")) {
		t.Fatalf("Balance delta = %s, want 250.25", delta.Balance)
	}
	if delta.HealthScore != -30 {
		t.Fatalf("HealthScore delta = %d, want -30", delta.HealthScore)
	}
	if !delta.MinBalance.Equal(decimal.RequireFromString("-300.00")) {
		t.Fatalf("MinBalance delta = %s, want -300.00", delta.MinBalance)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}

	if !diffSnapshots(prev, prev).isZero() {
		t.Fatal("self-diff not reported as zero")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		DataFile:     "cashflow.json",
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

// seedLedger writes a ledger file with a starting balance and one future
// income so poll results are deterministic for any wall-clock date.
func seedLedger(t *testing.T) (string, *store.Ledger) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cashflow.json")
	ledger := store.NewLedger(path)
	if err := ledger.SetStartingBalance(decimal.NewFromInt(1000)); err != nil {
		t.Fatalf("set balance: %v", err)
	}

	_, err := ledger.Add(model.Transaction{
		Type:        model.Income,
		Amount:      decimal.NewFromInt(500),
		Date:        model.Today().AddDays(3),
		Description: "Invoice",
		Status:      model.Pending,
		Probability: 100,
	})
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	return path, ledger
}

func TestPollOncePublishesOnChangeOnly(t *testing.T) {
	path, ledger := seedLedger(t)

	s := New(Config{DataFile: path, Interval: 10 * time.Second, EventsBuffer: 10})

	s.pollOnce()

	s.mu.RLock()
	if !s.hasSnapshot {
		t.Fatal("no snapshot after first poll")
	}
	if s.snapshot.Transactions != 1 {
		t.Fatalf("Transactions = %d, want 1", s.snapshot.Transactions)
	}
	if !s.snapshot.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("Balance = %s, want 1000", s.snapshot.Balance)
	}
	if s.snapshot.HealthScore != 100 {
		t.Fatalf("HealthScore = %d, want 100", s.snapshot.HealthScore)
	}
	if len(s.events) != 1 || s.events[0].Type != "snapshot" {
		t.Fatalf("events after first poll = %+v, want one snapshot event", s.events)
	}
	s.mu.RUnlock()

	// Unchanged file: poll counted, no new event.
	s.pollOnce()

	s.mu.RLock()
	if s.pollCount != 2 {
		t.Fatalf("pollCount = %d, want 2", s.pollCount)
	}
	if len(s.events) != 1 {
		t.Fatalf("events after idle poll = %d, want 1", len(s.events))
	}
	s.mu.RUnlock()

	// Ledger grows: next poll publishes a delta.
	_, err := ledger.Add(model.Transaction{
		Type:        model.Income,
		Amount:      decimal.NewFromInt(250),
		Date:        model.Today().AddDays(5),
		Description: "Retainer",
		Status:      model.Pending,
		Probability: 100,
	})
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}

	s.pollOnce()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.events) != 2 {
		t.Fatalf("events after change = %d, want 2", len(s.events))
	}
	ev := s.events[1]
	if ev.Type != "ledger_delta" {
		t.Fatalf("event type = %q, want ledger_delta", ev.Type)
	}
	if ev.Delta.Transactions != 1 {
		t.Fatalf("Delta.Transactions = %d, want 1", ev.Delta.Transactions)
	}
	if s.snapshot.Transactions != 2 {
		t.Fatalf("Transactions = %d, want 2", s.snapshot.Transactions)
	}
}

func TestPollOnceMissingFileServesEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "cashflow.json")

	s := New(Config{DataFile: path, Interval: 10 * time.Second})
	s.pollOnce()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasSnapshot {
		t.Fatal("no snapshot for missing ledger file")
	}
	if s.snapshot.Transactions != 0 {
		t.Fatalf("Transactions = %d, want 0", s.snapshot.Transactions)
	}
	if s.snapshot.HealthScore != 100 {
		t.Fatalf("HealthScore = %d, want 100", s.snapshot.HealthScore)
	}
	if s.lastError != "" {
		t.Fatalf("lastError = %q, want empty", s.lastError)
	}
}

func TestPollOnceRecordsCorruptLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cashflow.json")
	if err := os.WriteFile(path, []byte("{{{ not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := New(Config{DataFile: path, Interval: 10 * time.Second})
	s.pollOnce()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.hasSnapshot {
		t.Fatal("snapshot recorded from corrupt ledger")
	}
	if s.lastError == "" {
		t.Fatal("lastError empty after corrupt ledger poll")
	}
	if s.pollCount != 1 {
		t.Fatalf("pollCount = %d, want 1", s.pollCount)
	}
}

func TestHandleMetricsServesHealth(t *testing.T) {
	path, _ := seedLedger(t)

	s := New(Config{DataFile: path, Interval: 10 * time.Second})
	s.pollOnce()

	rec := httptest.NewRecorder()
	s.handleMetrics(rec, httptest.NewRequest("GET", "/v1/metrics", nil))

	var health model.HealthMetrics
	if err := json.NewDecoder(rec.Body).Decode(&health); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if health.HealthScore != 100 {
		t.Fatalf("HealthScore = %d, want 100", health.HealthScore)
	}
	if !health.CurrentBalance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("CurrentBalance = %s, want 1000", health.CurrentBalance)
	}
}

func TestHandleProjectionServesTimeline(t *testing.T) {
	path, _ := seedLedger(t)

	s := New(Config{DataFile: path, Interval: 10 * time.Second})
	s.pollOnce()

	rec := httptest.NewRecorder()
	s.handleProjection(rec, httptest.NewRequest("GET", "/v1/projection", nil))

	var points []model.ProjectionPoint
	if err := json.NewDecoder(rec.Body).Decode(&points); err != nil {
		t.Fatalf("decode projection: %v", err)
	}

	// Opener plus today..today+3 inclusive.
	if len(points) != 5 {
		t.Fatalf("points = %d, want 5", len(points))
	}
	if !points[0].Date.Equal(model.Today()) {
		t.Fatalf("first point date = %s, want today", points[0].Date)
	}
	last := points[len(points)-1]
	if !last.Balance.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("final balance = %s, want 1500", last.Balance)
	}
}
