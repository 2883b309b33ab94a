package statement

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashburn/internal/gemini"
	"github.com/theirongolddev/cashburn/internal/model"
	"github.com/theirongolddev/cashburn/internal/store"
)

// Extractor turns statement text into a transaction batch. The production
// implementation is the Gemini client.
type Extractor interface {
	ExtractTransactions(ctx context.Context, filename, text string) (*gemini.ExtractionResult, error)
	Model() string
}

// ProgressFunc is called as files finish extraction.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// FileError pairs a statement path with the error that stopped it.
type FileError struct {
	Path string
	Err  error
}

// ImportResult summarizes one import run.
type ImportResult struct {
	TotalFiles int
	Imported   int
	Skipped    int // unchanged since their last import
	TooShort   int
	Failed     int
	Added      int // transactions merged into the ledger
	BalanceSet bool
	Errors     []FileError
}

// Importer drives statement files through text extraction, the model, and
// the ledger merge. The cache is optional; without it every file is
// processed on every run.
type Importer struct {
	ledger    *store.Ledger
	cache     *store.Cache
	extractor Extractor
}

// NewImporter wires an importer. cache may be nil.
func NewImporter(ledger *store.Ledger, cache *store.Cache, extractor Extractor) *Importer {
	return &Importer{ledger: ledger, cache: cache, extractor: extractor}
}

// ImportDir discovers statements under dir and imports them. With force
// set, files are re-imported even when unchanged since their last run.
func (im *Importer) ImportDir(ctx context.Context, dir string, force bool, progressFn ProgressFunc) (*ImportResult, error) {
	files, err := ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return im.importFiles(ctx, files, force, progressFn)
}

// ImportFiles imports the given statement paths directly.
func (im *Importer) ImportFiles(ctx context.Context, paths []string, force bool, progressFn ProgressFunc) (*ImportResult, error) {
	files := make([]DiscoveredFile, 0, len(paths))
	for _, p := range paths {
		files = append(files, DiscoveredFile{
			Path: p,
			Name: filepath.Base(p),
			Ext:  filepath.Ext(p),
		})
	}
	return im.importFiles(ctx, files, force, progressFn)
}

// fileOutcome is the per-file output of the extraction pool.
type fileOutcome struct {
	file    DiscoveredFile
	info    store.FileInfo
	batch   []model.Transaction
	balance *decimal.Decimal
	err     error
}

func (im *Importer) importFiles(ctx context.Context, files []DiscoveredFile, force bool, progressFn ProgressFunc) (*ImportResult, error) {
	result := &ImportResult{TotalFiles: len(files)}
	if len(files) == 0 {
		return result, nil
	}

	// Diff against the tracker so unchanged statements are skipped.
	tracked := map[string]store.FileInfo{}
	if im.cache != nil && !force {
		var err error
		tracked, err = im.cache.TrackedStatements()
		if err != nil {
			return nil, fmt.Errorf("reading import cache: %w", err)
		}
	}

	var toProcess []DiscoveredFile
	for _, f := range files {
		info, err := os.Stat(f.Path)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, FileError{Path: f.Path, Err: err})
			continue
		}
		cached, ok := tracked[f.Path]
		if ok && cached.MtimeNs == info.ModTime().UnixNano() && cached.SizeBytes == info.Size() {
			result.Skipped++
			continue
		}
		toProcess = append(toProcess, f)
	}

	if len(toProcess) == 0 {
		return result, nil
	}

	// Extraction runs in a bounded worker pool; the ledger merge below
	// stays serial so each file lands as one all-or-nothing batch.
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(toProcess) {
		numWorkers = len(toProcess)
	}

	work := make(chan int, len(toProcess))
	outcomes := make([]fileOutcome, len(toProcess))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range toProcess {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				outcomes[idx] = im.processFile(ctx, toProcess[idx])
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n)+result.Skipped, result.TotalFiles)
				}
			}
		}()
	}

	wg.Wait()

	for _, out := range outcomes {
		if out.err != nil {
			if errors.Is(out.err, ErrTooShort) {
				result.TooShort++
			} else {
				result.Failed++
			}
			result.Errors = append(result.Errors, FileError{Path: out.file.Path, Err: out.err})
			continue
		}

		added, err := im.ledger.MergeExtracted(out.batch, out.balance)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, FileError{Path: out.file.Path, Err: err})
			continue
		}

		result.Imported++
		result.Added += added
		if out.balance != nil {
			result.BalanceSet = true
		}

		if im.cache != nil {
			rec := store.ImportRecord{
				BatchID:     uuid.NewString(),
				FilePath:    out.file.Path,
				ImportedAt:  time.Now(),
				TxCount:     added,
				BalanceSeen: out.balance != nil,
				Model:       im.extractor.Model(),
			}
			if err := im.cache.RecordImport(rec, out.info); err != nil {
				result.Errors = append(result.Errors, FileError{Path: out.file.Path, Err: err})
			}
		}
	}

	return result, nil
}

// processFile reads one statement and runs extraction. The merge happens
// later, serially.
func (im *Importer) processFile(ctx context.Context, f DiscoveredFile) fileOutcome {
	out := fileOutcome{file: f}

	info, err := os.Stat(f.Path)
	if err != nil {
		out.err = err
		return out
	}
	out.info = store.FileInfo{MtimeNs: info.ModTime().UnixNano(), SizeBytes: info.Size()}

	text, err := ReadStatement(f.Path)
	if err != nil {
		out.err = err
		return out
	}

	res, err := im.extractor.ExtractTransactions(ctx, f.Name, text)
	if err != nil {
		out.err = err
		return out
	}

	out.batch, out.balance, out.err = mapBatch(res)
	return out
}

// mapBatch converts an extraction result into ledger transactions. Any
// non-conforming entry rejects the whole batch so a half-read statement
// never merges.
func mapBatch(res *gemini.ExtractionResult) ([]model.Transaction, *decimal.Decimal, error) {
	batch := make([]model.Transaction, 0, len(res.Transactions))
	for i, et := range res.Transactions {
		var typ model.TxType
		switch et.Type {
		case "income":
			typ = model.Income
		case "expense":
			typ = model.Expense
		default:
			return nil, nil, fmt.Errorf("statement: transaction %d: unknown type %q", i+1, et.Type)
		}

		date, err := model.ParseDate(et.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("statement: transaction %d: %w", i+1, err)
		}
		if et.Description == "" {
			return nil, nil, fmt.Errorf("statement: transaction %d: empty description", i+1)
		}

		batch = append(batch, model.Transaction{
			Type:        typ,
			Amount:      et.Amount,
			Date:        date,
			Description: et.Description,
		})
	}
	return batch, res.CurrentBalance, nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "cashburn")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "cashburn")
}

// CachePath returns the full path to the import cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "imports.db")
}
