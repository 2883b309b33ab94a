package statement

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashburn/internal/gemini"
	"github.com/theirongolddev/cashburn/internal/model"
	"github.com/theirongolddev/cashburn/internal/store"
)

type fakeExtractor struct {
	mu    sync.Mutex
	calls int
	fn    func(filename string) (*gemini.ExtractionResult, error)
}

func (f *fakeExtractor) ExtractTransactions(_ context.Context, filename, _ string) (*gemini.ExtractionResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.fn(filename)
}

func (f *fakeExtractor) Model() string { return "fake-model" }

func (f *fakeExtractor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func writeStatement(t *testing.T, dir, name string) string {
	t.Helper()
	body := strings.Repeat("01/02 ACH DEPOSIT ACME CORP 2,500.00\n", 4)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func testImporter(t *testing.T, fx *fakeExtractor) (*Importer, *store.Ledger, *store.Cache) {
	t.Helper()
	base := t.TempDir()

	ledger, err := store.OpenLedger(filepath.Join(base, "cashflow.json"))
	if err != nil {
		t.Fatalf("OpenLedger: %v", err)
	}
	cache, err := store.OpenCache(filepath.Join(base, "imports.db"))
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })

	return NewImporter(ledger, cache, fx), ledger, cache
}

func twoFileExtractor() *fakeExtractor {
	return &fakeExtractor{fn: func(filename string) (*gemini.ExtractionResult, error) {
		switch filename {
		case "a.txt":
			return &gemini.ExtractionResult{
				Transactions: []gemini.ExtractedTransaction{
					{Type: "income", Amount: decimal.NewFromInt(2500), Date: "2025-02-01", Description: "Client Payment"},
					{Type: "expense", Amount: decimal.NewFromFloat(-89.99), Date: "2025-02-03", Description: "Internet Bill"},
				},
				CurrentBalance: decPtr(1500),
			}, nil
		case "b.txt":
			return &gemini.ExtractionResult{
				Transactions: []gemini.ExtractedTransaction{
					{Type: "expense", Amount: decimal.NewFromInt(-400), Date: "2025-02-10", Description: "Office Rent"},
				},
			}, nil
		default:
			return nil, errors.New("unexpected file " + filename)
		}
	}}
}

func TestImportDirMergesBatches(t *testing.T) {
	fx := twoFileExtractor()
	im, ledger, cache := testImporter(t, fx)

	dir := t.TempDir()
	writeStatement(t, dir, "a.txt")
	writeStatement(t, dir, "b.txt")

	var mu sync.Mutex
	var maxCurrent, lastTotal int
	res, err := im.ImportDir(context.Background(), dir, false, func(current, total int) {
		mu.Lock()
		if current > maxCurrent {
			maxCurrent = current
		}
		lastTotal = total
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("ImportDir: %v", err)
	}

	if res.Imported != 2 || res.Failed != 0 || res.Skipped != 0 {
		t.Errorf("result = %+v, want 2 imported", res)
	}
	if res.Added != 3 {
		t.Errorf("added = %d, want 3", res.Added)
	}
	if !res.BalanceSet {
		t.Error("balance not flagged as set")
	}
	if maxCurrent != 2 || lastTotal != 2 {
		t.Errorf("progress reached %d/%d, want 2/2", maxCurrent, lastTotal)
	}

	txs, balance := ledger.Snapshot()
	if len(txs) != 3 {
		t.Fatalf("ledger has %d transactions, want 3", len(txs))
	}
	if !balance.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("balance = %s, want 1500", balance)
	}
	for _, tx := range txs {
		if tx.Status != model.Confirmed || tx.Probability != 100 {
			t.Errorf("merged tx %d status/probability = %s/%d", tx.ID, tx.Status, tx.Probability)
		}
		if tx.Amount.IsNegative() {
			t.Errorf("merged tx %d kept a negative amount: %s", tx.ID, tx.Amount)
		}
	}

	count, err := cache.ImportCount()
	if err != nil {
		t.Fatalf("ImportCount: %v", err)
	}
	if count != 2 {
		t.Errorf("recorded %d batches, want 2", count)
	}
}

func TestImportDirSkipsUnchanged(t *testing.T) {
	fx := twoFileExtractor()
	im, ledger, _ := testImporter(t, fx)

	dir := t.TempDir()
	writeStatement(t, dir, "a.txt")
	writeStatement(t, dir, "b.txt")

	if _, err := im.ImportDir(context.Background(), dir, false, nil); err != nil {
		t.Fatalf("first ImportDir: %v", err)
	}
	firstCalls := fx.callCount()

	res, err := im.ImportDir(context.Background(), dir, false, nil)
	if err != nil {
		t.Fatalf("second ImportDir: %v", err)
	}

	if res.Skipped != 2 || res.Imported != 0 {
		t.Errorf("second run = %+v, want everything skipped", res)
	}
	if fx.callCount() != firstCalls {
		t.Errorf("extractor called %d more times on unchanged files", fx.callCount()-firstCalls)
	}
	if ledger.Count() != 3 {
		t.Errorf("ledger count = %d after skip run, want 3", ledger.Count())
	}
}

func TestImportDirForceReimports(t *testing.T) {
	fx := twoFileExtractor()
	im, ledger, _ := testImporter(t, fx)

	dir := t.TempDir()
	writeStatement(t, dir, "a.txt")
	writeStatement(t, dir, "b.txt")

	if _, err := im.ImportDir(context.Background(), dir, false, nil); err != nil {
		t.Fatalf("first ImportDir: %v", err)
	}

	res, err := im.ImportDir(context.Background(), dir, true, nil)
	if err != nil {
		t.Fatalf("forced ImportDir: %v", err)
	}
	if res.Imported != 2 || res.Skipped != 0 {
		t.Errorf("forced run = %+v, want 2 imported", res)
	}
	// The merge is additive, so forcing duplicates the batch.
	if ledger.Count() != 6 {
		t.Errorf("ledger count = %d after force, want 6", ledger.Count())
	}
}

func TestImportDirTooShortIsolated(t *testing.T) {
	fx := twoFileExtractor()
	im, ledger, _ := testImporter(t, fx)

	dir := t.TempDir()
	writeStatement(t, dir, "a.txt")
	if err := os.WriteFile(filepath.Join(dir, "stub.txt"), []byte("n/a"), 0o600); err != nil {
		t.Fatal(err)
	}

	res, err := im.ImportDir(context.Background(), dir, false, nil)
	if err != nil {
		t.Fatalf("ImportDir: %v", err)
	}

	if res.TooShort != 1 || res.Imported != 1 || res.Failed != 0 {
		t.Errorf("result = %+v, want 1 imported and 1 too short", res)
	}
	if len(res.Errors) != 1 || !errors.Is(res.Errors[0].Err, ErrTooShort) {
		t.Errorf("errors = %+v, want one ErrTooShort", res.Errors)
	}
	if ledger.Count() != 2 {
		t.Errorf("ledger count = %d, want the good file's 2", ledger.Count())
	}
}

func TestImportDirExtractionFailureIsolated(t *testing.T) {
	boom := errors.New("model exploded")
	fx := &fakeExtractor{fn: func(filename string) (*gemini.ExtractionResult, error) {
		if filename == "b.txt" {
			return nil, boom
		}
		return &gemini.ExtractionResult{
			Transactions: []gemini.ExtractedTransaction{
				{Type: "income", Amount: decimal.NewFromInt(100), Date: "2025-03-01", Description: "Deposit"},
			},
		}, nil
	}}
	im, ledger, _ := testImporter(t, fx)

	dir := t.TempDir()
	writeStatement(t, dir, "a.txt")
	writeStatement(t, dir, "b.txt")

	res, err := im.ImportDir(context.Background(), dir, false, nil)
	if err != nil {
		t.Fatalf("ImportDir: %v", err)
	}

	if res.Imported != 1 || res.Failed != 1 {
		t.Errorf("result = %+v, want 1 imported and 1 failed", res)
	}
	if len(res.Errors) != 1 || !errors.Is(res.Errors[0].Err, boom) {
		t.Errorf("errors = %+v, want the extraction error", res.Errors)
	}
	if ledger.Count() != 1 {
		t.Errorf("ledger count = %d, want 1", ledger.Count())
	}
}

func TestImportDirRejectsBadBatch(t *testing.T) {
	fx := &fakeExtractor{fn: func(string) (*gemini.ExtractionResult, error) {
		return &gemini.ExtractionResult{
			Transactions: []gemini.ExtractedTransaction{
				{Type: "income", Amount: decimal.NewFromInt(100), Date: "2025-03-01", Description: "Good"},
				{Type: "transfer", Amount: decimal.NewFromInt(50), Date: "2025-03-02", Description: "Bad type"},
			},
		}, nil
	}}
	im, ledger, _ := testImporter(t, fx)

	dir := t.TempDir()
	writeStatement(t, dir, "a.txt")

	res, err := im.ImportDir(context.Background(), dir, false, nil)
	if err != nil {
		t.Fatalf("ImportDir: %v", err)
	}

	if res.Failed != 1 || res.Imported != 0 {
		t.Errorf("result = %+v, want the whole batch rejected", res)
	}
	if ledger.Count() != 0 {
		t.Errorf("ledger count = %d, want 0 (no partial merge)", ledger.Count())
	}
}

func TestImportFilesMissingPath(t *testing.T) {
	fx := twoFileExtractor()
	im, _, _ := testImporter(t, fx)

	dir := t.TempDir()
	good := writeStatement(t, dir, "a.txt")

	res, err := im.ImportFiles(context.Background(), []string{good, filepath.Join(dir, "gone.txt")}, false, nil)
	if err != nil {
		t.Fatalf("ImportFiles: %v", err)
	}
	if res.Imported != 1 || res.Failed != 1 {
		t.Errorf("result = %+v, want 1 imported and 1 failed", res)
	}
}

func TestImporterWithoutCache(t *testing.T) {
	fx := twoFileExtractor()
	base := t.TempDir()
	ledger, err := store.OpenLedger(filepath.Join(base, "cashflow.json"))
	if err != nil {
		t.Fatalf("OpenLedger: %v", err)
	}
	im := NewImporter(ledger, nil, fx)

	dir := t.TempDir()
	writeStatement(t, dir, "a.txt")

	for i := 0; i < 2; i++ {
		res, err := im.ImportDir(context.Background(), dir, false, nil)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if res.Skipped != 0 || res.Imported != 1 {
			t.Errorf("run %d = %+v, want no skip tracking without a cache", i, res)
		}
	}
	if ledger.Count() != 4 {
		t.Errorf("ledger count = %d, want 4", ledger.Count())
	}
}
