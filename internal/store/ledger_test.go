package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashburn/internal/model"
)

func tempLedger(t *testing.T) *Ledger {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cashflow.json")
	l, err := OpenLedger(path)
	if err != nil {
		t.Fatalf("OpenLedger: %v", err)
	}
	return l
}

func sampleTx(desc string) model.Transaction {
	return model.Transaction{
		Type:        model.Income,
		Amount:      decimal.NewFromInt(100),
		Date:        model.NewDate(2025, time.January, 10),
		Description: desc,
		Status:      model.Confirmed,
		Probability: 100,
	}
}

func TestOpenLedgerMissingFileDefaults(t *testing.T) {
	l := tempLedger(t)

	txs, balance := l.Snapshot()
	if len(txs) != 0 {
		t.Errorf("got %d transactions, want 0", len(txs))
	}
	if !balance.IsZero() {
		t.Errorf("balance = %s, want 0", balance)
	}
	if l.NextID() != 1 {
		t.Errorf("next id = %d, want 1", l.NextID())
	}
}

func TestLedgerAddAssignsSequentialIDs(t *testing.T) {
	l := tempLedger(t)

	id1, err := l.Add(sampleTx("first"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	id2, err := l.Add(sampleTx("second"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if id1 != 1 || id2 != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", id1, id2)
	}
	if l.NextID() != 3 {
		t.Errorf("next id = %d, want 3", l.NextID())
	}
}

func TestLedgerAddRejectsInvalid(t *testing.T) {
	l := tempLedger(t)

	bad := sampleTx("   ")
	if _, err := l.Add(bad); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("Add(blank description) = %v, want ErrValidation", err)
	}
	if l.Count() != 0 {
		t.Errorf("count = %d after rejected add, want 0", l.Count())
	}
	if l.NextID() != 1 {
		t.Errorf("next id = %d after rejected add, want 1", l.NextID())
	}
}

func TestLedgerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cashflow.json")
	l, err := OpenLedger(path)
	if err != nil {
		t.Fatalf("OpenLedger: %v", err)
	}

	tx := sampleTx("Client payment")
	tx.Amount = decimal.NewFromFloat(1234.56)
	if _, err := l.Add(tx); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := l.SetStartingBalance(decimal.NewFromFloat(99.95)); err != nil {
		t.Fatalf("SetStartingBalance: %v", err)
	}

	reopened, err := OpenLedger(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	txs, balance := reopened.Snapshot()
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	got := txs[0]
	if got.ID != 1 || got.Description != "Client payment" {
		t.Errorf("transaction = %+v", got)
	}
	if !got.Amount.Equal(decimal.NewFromFloat(1234.56)) {
		t.Errorf("amount = %s, want 1234.56", got.Amount)
	}
	if !got.Date.Equal(model.NewDate(2025, time.January, 10)) {
		t.Errorf("date = %s, want 2025-01-10", got.Date)
	}
	if !balance.Equal(decimal.NewFromFloat(99.95)) {
		t.Errorf("balance = %s, want 99.95", balance)
	}
	if reopened.NextID() != 2 {
		t.Errorf("next id = %d, want 2", reopened.NextID())
	}
}

func TestLedgerUpdate(t *testing.T) {
	l := tempLedger(t)
	id, _ := l.Add(sampleTx("original"))

	upd := sampleTx("revised")
	upd.Amount = decimal.NewFromInt(250)
	if err := l.Update(id, upd); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := l.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Description != "revised" || !got.Amount.Equal(decimal.NewFromInt(250)) {
		t.Errorf("after update: %+v", got)
	}

	if err := l.Update(999, upd); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(999) = %v, want ErrNotFound", err)
	}
}

func TestLedgerDelete(t *testing.T) {
	l := tempLedger(t)
	id1, _ := l.Add(sampleTx("keep"))
	id2, _ := l.Add(sampleTx("drop"))

	if err := l.Delete(id2); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if l.Count() != 1 {
		t.Errorf("count = %d, want 1", l.Count())
	}
	if _, err := l.Get(id2); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(deleted) = %v, want ErrNotFound", err)
	}
	if _, err := l.Get(id1); err != nil {
		t.Errorf("Get(kept) = %v", err)
	}

	if err := l.Delete(id2); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete = %v, want ErrNotFound", err)
	}

	// Deleting never frees ids for reuse.
	id3, _ := l.Add(sampleTx("after"))
	if id3 != 3 {
		t.Errorf("id after delete = %d, want 3", id3)
	}
}

func TestLedgerClear(t *testing.T) {
	l := tempLedger(t)
	l.Add(sampleTx("one"))
	l.Add(sampleTx("two"))
	l.SetStartingBalance(decimal.NewFromInt(500))

	if err := l.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	txs, balance := l.Snapshot()
	if len(txs) != 0 || !balance.IsZero() || l.NextID() != 1 {
		t.Errorf("after clear: %d txs, balance %s, next id %d", len(txs), balance, l.NextID())
	}
}

func TestOpenLedgerRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{{{"},
		{"bad date", `{"transactions":[{"id":1,"type":"income","amount":"10","date":"01/05/2025","description":"x","status":"confirmed","probability":100}],"current_balance":"0","next_id":2}`},
		{"missing type", `{"transactions":[{"id":1,"amount":"10","date":"2025-01-05","description":"x","status":"confirmed","probability":100}],"current_balance":"0","next_id":2}`},
		{"stale next_id", `{"transactions":[{"id":5,"type":"income","amount":"10","date":"2025-01-05","description":"x","status":"confirmed","probability":100}],"current_balance":"0","next_id":2}`},
		{"duplicate ids", `{"transactions":[{"id":1,"type":"income","amount":"10","date":"2025-01-05","description":"x","status":"confirmed","probability":100},{"id":1,"type":"expense","amount":"5","date":"2025-01-06","description":"y","status":"confirmed","probability":100}],"current_balance":"0","next_id":2}`},
		{"missing next_id", `{"transactions":[],"current_balance":"0"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			if err := os.WriteFile(path, []byte(tt.body), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := OpenLedger(path); !errors.Is(err, ErrCorrupt) {
				t.Errorf("OpenLedger = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestLedgerSaveFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cashflow.json")
	l, err := OpenLedger(path)
	if err != nil {
		t.Fatalf("OpenLedger: %v", err)
	}
	if _, err := l.Add(sampleTx("kept")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Saves go through a temp file in the data dir; removing the dir
	// makes the next save fail after the in-memory mutation.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}

	if _, err := l.Add(sampleTx("lost")); err == nil {
		t.Fatal("Add succeeded with data dir gone, want error")
	}
	if l.Count() != 1 {
		t.Errorf("count = %d after failed add, want 1", l.Count())
	}
	if l.NextID() != 2 {
		t.Errorf("next id = %d after failed add, want 2", l.NextID())
	}

	if err := l.Delete(1); err == nil {
		t.Fatal("Delete succeeded with data dir gone, want error")
	}
	if l.Count() != 1 {
		t.Errorf("count = %d after failed delete, want 1", l.Count())
	}
}

func TestLedgerMergeExtracted(t *testing.T) {
	l := tempLedger(t)
	l.Add(sampleTx("existing"))

	batch := []model.Transaction{
		{
			Type:        model.Income,
			Amount:      decimal.NewFromFloat(2500),
			Date:        model.NewDate(2025, time.February, 1),
			Description: "Client Payment - ABC Corp",
			Status:      model.Pending, // overwritten by the merge
			Probability: 10,            // overwritten by the merge
		},
		{
			Type:        model.Expense,
			Amount:      decimal.NewFromFloat(-89.99), // sign folded away
			Date:        model.NewDate(2025, time.February, 3),
			Description: "Internet Bill",
		},
	}
	balance := decimal.NewFromFloat(4200.50)

	added, err := l.MergeExtracted(batch, &balance)
	if err != nil {
		t.Fatalf("MergeExtracted: %v", err)
	}
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}

	txs, gotBalance := l.Snapshot()
	if len(txs) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txs))
	}
	if !gotBalance.Equal(balance) {
		t.Errorf("balance = %s, want %s", gotBalance, balance)
	}

	first, second := txs[1], txs[2]
	if first.ID != 2 || second.ID != 3 {
		t.Errorf("merged ids = %d, %d, want 2, 3", first.ID, second.ID)
	}
	for _, tx := range []model.Transaction{first, second} {
		if tx.Status != model.Confirmed {
			t.Errorf("id %d status = %s, want confirmed", tx.ID, tx.Status)
		}
		if tx.Probability != 100 {
			t.Errorf("id %d probability = %d, want 100", tx.ID, tx.Probability)
		}
		if tx.Amount.IsNegative() {
			t.Errorf("id %d amount = %s, want absolute value", tx.ID, tx.Amount)
		}
	}
	if !second.Amount.Equal(decimal.NewFromFloat(89.99)) {
		t.Errorf("amount = %s, want 89.99", second.Amount)
	}
	if l.NextID() != 4 {
		t.Errorf("next id = %d, want 4", l.NextID())
	}
}

func TestLedgerMergeExtractedAllOrNothing(t *testing.T) {
	l := tempLedger(t)
	l.Add(sampleTx("existing"))

	batch := []model.Transaction{
		{
			Type:        model.Income,
			Amount:      decimal.NewFromInt(100),
			Date:        model.NewDate(2025, time.February, 1),
			Description: "good",
		},
		{
			Type:   model.Expense,
			Amount: decimal.NewFromInt(50),
			// missing date and description
		},
	}

	if _, err := l.MergeExtracted(batch, nil); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("MergeExtracted = %v, want ErrValidation", err)
	}
	if l.Count() != 1 {
		t.Errorf("count = %d after failed merge, want 1", l.Count())
	}
	if l.NextID() != 2 {
		t.Errorf("next id = %d after failed merge, want 2", l.NextID())
	}
}

func TestLedgerMergeExtractedNilBalanceKeepsExisting(t *testing.T) {
	l := tempLedger(t)
	l.SetStartingBalance(decimal.NewFromInt(777))

	batch := []model.Transaction{{
		Type:        model.Income,
		Amount:      decimal.NewFromInt(10),
		Date:        model.NewDate(2025, time.March, 1),
		Description: "Deposit",
	}}
	if _, err := l.MergeExtracted(batch, nil); err != nil {
		t.Fatalf("MergeExtracted: %v", err)
	}

	_, balance := l.Snapshot()
	if !balance.Equal(decimal.NewFromInt(777)) {
		t.Errorf("balance = %s, want 777 untouched", balance)
	}
}

func TestLedgerExportImportRoundTrip(t *testing.T) {
	src := tempLedger(t)
	src.SetStartingBalance(decimal.NewFromInt(2500))
	if _, err := src.Add(sampleTx("rent")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := src.Add(sampleTx("groceries")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	buf, err := src.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	dst := tempLedger(t)
	if _, err := dst.Add(sampleTx("stale entry")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	n, err := dst.ImportJSON(buf)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d transactions, want 2", n)
	}

	txs, balance := dst.Snapshot()
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}
	if txs[0].Description != "rent" || txs[1].Description != "groceries" {
		t.Errorf("descriptions = %q, %q", txs[0].Description, txs[1].Description)
	}
	if !balance.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("balance = %s, want 2500", balance)
	}
	if dst.NextID() != src.NextID() {
		t.Errorf("next id = %d, want %d", dst.NextID(), src.NextID())
	}

	// The replacement must be on disk, not just in memory
	reopened, err := OpenLedger(dst.Path())
	if err != nil {
		t.Fatalf("OpenLedger after import: %v", err)
	}
	if reopened.Count() != 2 {
		t.Errorf("reopened count = %d, want 2", reopened.Count())
	}
}

func TestLedgerImportJSONDerivesMissingNextID(t *testing.T) {
	l := tempLedger(t)

	raw := []byte(`{
  "transactions": [
    {"id": 3, "type": "income", "amount": "50", "date": "2025-02-01", "description": "Refund", "status": "confirmed", "probability": 100},
    {"id": 7, "type": "expense", "amount": "20", "date": "2025-02-02", "description": "Lunch", "status": "confirmed", "probability": 100}
  ],
  "current_balance": "100"
}`)

	if _, err := l.ImportJSON(raw); err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if l.NextID() != 8 {
		t.Errorf("next id = %d, want 8", l.NextID())
	}
}

func TestLedgerImportJSONRejectsBadData(t *testing.T) {
	l := tempLedger(t)
	if _, err := l.Add(sampleTx("keeper")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	cases := []struct {
		name string
		raw  string
	}{
		{"malformed json", `{"transactions": [`},
		{"duplicate ids", `{"transactions": [
			{"id": 1, "type": "income", "amount": "5", "date": "2025-01-01", "description": "a", "status": "confirmed", "probability": 100},
			{"id": 1, "type": "income", "amount": "5", "date": "2025-01-02", "description": "b", "status": "confirmed", "probability": 100}
		], "current_balance": "0", "next_id": 2}`},
		{"invalid transaction", `{"transactions": [
			{"id": 1, "type": "loan", "amount": "5", "date": "2025-01-01", "description": "a", "status": "confirmed", "probability": 100}
		], "current_balance": "0", "next_id": 2}`},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := l.ImportJSON([]byte(tt.raw)); !errors.Is(err, ErrCorrupt) {
				t.Fatalf("err = %v, want ErrCorrupt", err)
			}
		})
	}

	// Rejections leave the ledger untouched
	if l.Count() != 1 {
		t.Errorf("count = %d, want 1", l.Count())
	}
}
