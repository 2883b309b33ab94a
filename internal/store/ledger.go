// Package store persists the transaction ledger and tracks imported
// bank statements.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cashburn/internal/model"
)

// Sentinel errors surfaced by ledger operations.
var (
	ErrNotFound = errors.New("store: transaction not found")
	ErrCorrupt  = errors.New("store: data file corrupt")
)

// ledgerData is the on-disk shape of the ledger. Dates serialize as
// YYYY-MM-DD strings and amounts as decimal strings.
type ledgerData struct {
	Transactions   []model.Transaction `json:"transactions"`
	CurrentBalance decimal.Decimal     `json:"current_balance"`
	NextID         int                 `json:"next_id"`
}

func (d ledgerData) clone() ledgerData {
	out := d
	out.Transactions = make([]model.Transaction, len(d.Transactions))
	copy(out.Transactions, d.Transactions)
	return out
}

// Ledger is the durable transaction store. Every mutating operation
// persists before returning; a failed save leaves the in-memory state
// exactly as it was.
type Ledger struct {
	mu   sync.Mutex
	path string
	data ledgerData
}

// NewLedger returns an empty ledger bound to path. Nothing is written
// until the first mutation.
func NewLedger(path string) *Ledger {
	return &Ledger{
		path: path,
		data: ledgerData{NextID: 1},
	}
}

// OpenLedger loads the ledger at path. A missing file yields the empty
// default; an unreadable or invalid file is reported as an error wrapping
// ErrCorrupt so callers can choose to fall back.
func OpenLedger(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
	}

	l := NewLedger(path)
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var data ledgerData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if err := checkData(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}

	l.data = data
	return l, nil
}

// checkData enforces the stored invariants: valid transactions, unique ids,
// and an id counter above every existing id.
func checkData(d ledgerData) error {
	if d.NextID < 1 {
		return errors.New("next_id missing or below 1")
	}
	seen := make(map[int]struct{}, len(d.Transactions))
	for _, tx := range d.Transactions {
		if err := tx.Validate(); err != nil {
			return err
		}
		if _, dup := seen[tx.ID]; dup {
			return fmt.Errorf("duplicate transaction id %d", tx.ID)
		}
		seen[tx.ID] = struct{}{}
		if tx.ID >= d.NextID {
			return fmt.Errorf("next_id %d does not exceed transaction id %d", d.NextID, tx.ID)
		}
	}
	return nil
}

// Path returns the backing file path.
func (l *Ledger) Path() string {
	return l.path
}

// Snapshot returns a copy of the transactions and the current balance.
// Callers may freely modify the returned slice.
func (l *Ledger) Snapshot() ([]model.Transaction, decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	txs := make([]model.Transaction, len(l.data.Transactions))
	copy(txs, l.data.Transactions)
	return txs, l.data.CurrentBalance
}

// Get returns the transaction with the given id.
func (l *Ledger) Get(id int) (model.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if idx := l.indexOf(id); idx >= 0 {
		return l.data.Transactions[idx], nil
	}
	return model.Transaction{}, fmt.Errorf("get id %d: %w", id, ErrNotFound)
}

// Count returns the number of stored transactions.
func (l *Ledger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.data.Transactions)
}

// NextID returns the id the next Add would assign.
func (l *Ledger) NextID() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data.NextID
}

// Add validates tx and persists it under the next free id. The incoming
// ID field is ignored. Returns the assigned id.
func (l *Ledger) Add(tx model.Transaction) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx.ID = l.data.NextID
	if err := tx.Validate(); err != nil {
		return 0, err
	}

	prev := l.data.clone()
	l.data.Transactions = append(l.data.Transactions, tx)
	l.data.NextID++
	if err := l.saveLocked(); err != nil {
		l.data = prev
		return 0, err
	}
	return tx.ID, nil
}

// Update replaces the stored transaction with the given id. The ID field
// of tx is overwritten with id.
func (l *Ledger) Update(id int, tx model.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("update id %d: %w", id, ErrNotFound)
	}
	tx.ID = id
	if err := tx.Validate(); err != nil {
		return err
	}

	prev := l.data.clone()
	l.data.Transactions[idx] = tx
	if err := l.saveLocked(); err != nil {
		l.data = prev
		return err
	}
	return nil
}

// Delete removes the transaction with the given id outright.
func (l *Ledger) Delete(id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete id %d: %w", id, ErrNotFound)
	}

	prev := l.data.clone()
	l.data.Transactions = append(l.data.Transactions[:idx], l.data.Transactions[idx+1:]...)
	if err := l.saveLocked(); err != nil {
		l.data = prev
		return err
	}
	return nil
}

// SetStartingBalance records the user's actual current balance.
func (l *Ledger) SetStartingBalance(v decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := l.data.clone()
	l.data.CurrentBalance = v
	if err := l.saveLocked(); err != nil {
		l.data = prev
		return err
	}
	return nil
}

// Clear resets the ledger to its empty default and persists the reset.
func (l *Ledger) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := l.data.clone()
	l.data = ledgerData{NextID: 1}
	if err := l.saveLocked(); err != nil {
		l.data = prev
		return err
	}
	return nil
}

// MergeExtracted appends an extracted statement batch. Amounts are folded
// to their absolute value, status forced to confirmed, probability to 100,
// and ids assigned sequentially from the current counter. A non-nil balance
// overwrites the starting balance. The merge is all-or-nothing: any invalid
// batch entry or a failed save leaves the ledger untouched. Returns the
// number of transactions added.
func (l *Ledger) MergeExtracted(batch []model.Transaction, balance *decimal.Decimal) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.data.NextID
	staged := make([]model.Transaction, 0, len(batch))
	for _, tx := range batch {
		tx.ID = next
		tx.Amount = tx.Amount.Abs()
		tx.Status = model.Confirmed
		tx.Probability = 100
		if err := tx.Validate(); err != nil {
			return 0, err
		}
		staged = append(staged, tx)
		next++
	}

	prev := l.data.clone()
	l.data.Transactions = append(l.data.Transactions, staged...)
	l.data.NextID = next
	if balance != nil {
		l.data.CurrentBalance = *balance
	}
	if err := l.saveLocked(); err != nil {
		l.data = prev
		return 0, err
	}
	return len(staged), nil
}

// ExportJSON renders the full dataset in the on-disk ledger format.
func (l *Ledger) ExportJSON() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	buf, err := json.MarshalIndent(l.data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding ledger: %w", err)
	}
	return append(buf, '\n'), nil
}

// ImportJSON replaces the ledger contents wholesale with the dataset in
// raw, validated the same way OpenLedger validates a file. A missing
// next_id is derived from the highest transaction id. All-or-nothing.
// Returns the number of transactions imported.
func (l *Ledger) ImportJSON(raw []byte) (int, error) {
	var data ledgerData
	if err := json.Unmarshal(raw, &data); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if data.NextID == 0 {
		data.NextID = 1
		for _, tx := range data.Transactions {
			if tx.ID >= data.NextID {
				data.NextID = tx.ID + 1
			}
		}
	}
	if err := checkData(data); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	prev := l.data
	l.data = data
	if err := l.saveLocked(); err != nil {
		l.data = prev
		return 0, err
	}
	return len(data.Transactions), nil
}

// indexOf returns the slice index for id, or -1. Caller holds the lock.
func (l *Ledger) indexOf(id int) int {
	for i, tx := range l.data.Transactions {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

// saveLocked writes the ledger through a temp file and rename so a crash
// mid-write never leaves a torn file behind. Caller holds the lock.
func (l *Ledger) saveLocked() error {
	buf, err := json.MarshalIndent(l.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	buf = append(buf, '\n')

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o600); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing ledger: %w", err)
	}
	return nil
}
