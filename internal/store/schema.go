package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS statements (
    file_path    TEXT PRIMARY KEY,
    mtime_ns     INTEGER NOT NULL,
    size_bytes   INTEGER NOT NULL,
    batch_id     TEXT NOT NULL,
    imported_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS imports (
    batch_id     TEXT PRIMARY KEY,
    file_path    TEXT NOT NULL,
    imported_at  TEXT NOT NULL,
    tx_count     INTEGER NOT NULL,
    balance_seen INTEGER NOT NULL DEFAULT 0,
    model        TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_imports_file ON imports(file_path);
CREATE INDEX IF NOT EXISTS idx_imports_time ON imports(imported_at);
`
