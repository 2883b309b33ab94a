package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache tracks which statement files have already been imported so repeat
// runs can skip unchanged files, plus an audit row per import batch.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates the import cache database at the given path.
func OpenCache(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a statement file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// ImportRecord is one completed statement import.
type ImportRecord struct {
	BatchID     string
	FilePath    string
	ImportedAt  time.Time
	TxCount     int
	BalanceSeen bool
	Model       string
}

// TrackedStatements returns a map of file_path -> FileInfo for every
// statement the cache has seen.
func (c *Cache) TrackedStatements() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes FROM statements")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// RecordImport stores the batch audit row and updates the statement
// tracker in one transaction.
func (c *Cache) RecordImport(rec ImportRecord, info FileInfo) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	importedAt := rec.ImportedAt.UTC().Format(time.RFC3339)
	balanceSeen := 0
	if rec.BalanceSeen {
		balanceSeen = 1
	}

	_, err = tx.Exec(`INSERT INTO imports
		(batch_id, file_path, imported_at, tx_count, balance_seen, model)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.BatchID, rec.FilePath, importedAt, rec.TxCount, balanceSeen, rec.Model,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO statements
		(file_path, mtime_ns, size_bytes, batch_id, imported_at)
		VALUES (?, ?, ?, ?, ?)`,
		rec.FilePath, info.MtimeNs, info.SizeBytes, rec.BatchID, importedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ImportHistory returns the most recent import batches, newest first.
func (c *Cache) ImportHistory(limit int) ([]ImportRecord, error) {
	rows, err := c.db.Query(`SELECT
		batch_id, file_path, imported_at, tx_count, balance_seen, model
		FROM imports ORDER BY imported_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []ImportRecord
	for rows.Next() {
		var rec ImportRecord
		var importedAt string
		var balanceSeen int
		if err := rows.Scan(&rec.BatchID, &rec.FilePath, &importedAt, &rec.TxCount, &balanceSeen, &rec.Model); err != nil {
			return nil, err
		}
		rec.BalanceSeen = balanceSeen != 0
		rec.ImportedAt, _ = time.Parse(time.RFC3339, importedAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ForgetStatement drops a file from the tracker so the next import run
// processes it again.
func (c *Cache) ForgetStatement(filePath string) error {
	_, err := c.db.Exec("DELETE FROM statements WHERE file_path = ?", filePath)
	return err
}

// ImportCount returns the number of recorded import batches.
func (c *Cache) ImportCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM imports").Scan(&count)
	return count, err
}
