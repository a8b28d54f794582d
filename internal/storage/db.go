package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"itemgen/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  fingerprint TEXT NOT NULL,
  outputPath TEXT NOT NULL,
  itemCount INTEGER NOT NULL,
  warningCount INTEGER NOT NULL,
  durationMs REAL NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  position INTEGER NOT NULL,
  itemId INTEGER NOT NULL,
  fixedId INTEGER NOT NULL,
  label TEXT NOT NULL,
  namesJson TEXT NOT NULL,
  UNIQUE(runId, position),
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_items_fixedId ON items(fixedId);
CREATE INDEX IF NOT EXISTS idx_items_label ON items(label);

CREATE TABLE IF NOT EXISTS warnings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  kind TEXT NOT NULL,
  subject TEXT NOT NULL,
  detail TEXT,
  FOREIGN KEY(runId) REFERENCES runs(id)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) RecordRun(run internal.RunRecord, items []internal.ParsedItem, warnings []internal.Warning) (int64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	counts := map[string]int{"items": len(items), "warnings": len(warnings)}
	for _, w := range warnings {
		counts[string(w.Kind)]++
	}
	countsJSON, _ := json.Marshal(counts)

	result, err := tx.Exec(`
INSERT INTO runs (traceId, fingerprint, outputPath, itemCount, warningCount, durationMs, countsJson)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, run.TraceID, run.Fingerprint, run.OutputPath, len(items), len(warnings), run.DurationMs, string(countsJSON))
	if err != nil {
		return 0, err
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	itemStmt, err := tx.Prepare(`
INSERT INTO items (runId, position, itemId, fixedId, label, namesJson)
VALUES (?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return 0, err
	}
	defer itemStmt.Close()

	for i, item := range items {
		namesJSON, err := json.Marshal(item.Name)
		if err != nil {
			return 0, err
		}
		if _, err := itemStmt.Exec(runID, i, item.ID, item.FixedID, item.Label, string(namesJSON)); err != nil {
			return 0, err
		}
	}

	warnStmt, err := tx.Prepare(`INSERT INTO warnings (runId, kind, subject, detail) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer warnStmt.Close()

	for _, w := range warnings {
		if _, err := warnStmt.Exec(runID, string(w.Kind), w.Subject, w.Detail); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

func (d *DB) ListRuns(limit int) ([]internal.RunRecord, error) {
	rows, err := d.conn.Query(`
SELECT id, traceId, fingerprint, outputPath, itemCount, warningCount, durationMs, createdAt
FROM runs ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunRecord
	for rows.Next() {
		var run internal.RunRecord
		if err := rows.Scan(&run.ID, &run.TraceID, &run.Fingerprint, &run.OutputPath, &run.ItemCount, &run.WarnCount, &run.DurationMs, &run.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (d *DB) LatestRun() (*internal.RunRecord, error) {
	runs, err := d.ListRuns(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (d *DB) GetRunItems(runID int) ([]internal.ParsedItem, error) {
	rows, err := d.conn.Query(`
SELECT itemId, fixedId, label, namesJson
FROM items WHERE runId = ? ORDER BY position ASC
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ParsedItem
	for rows.Next() {
		var item internal.ParsedItem
		var namesJSON string
		if err := rows.Scan(&item.ID, &item.FixedID, &item.Label, &namesJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(namesJSON), &item.Name); err != nil {
			return nil, fmt.Errorf("run %d item %s: %w", runID, item.Label, err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (d *DB) GetRunWarnings(runID int) ([]internal.Warning, error) {
	rows, err := d.conn.Query(`SELECT kind, subject, COALESCE(detail, '') FROM warnings WHERE runId = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Warning
	for rows.Next() {
		var w internal.Warning
		var kind string
		if err := rows.Scan(&kind, &w.Subject, &w.Detail); err != nil {
			return nil, err
		}
		w.Kind = internal.WarningKind(kind)
		out = append(out, w)
	}
	return out, rows.Err()
}

func (d *DB) MustLatestRun() (internal.RunRecord, error) {
	run, err := d.LatestRun()
	if err != nil {
		return internal.RunRecord{}, err
	}
	if run == nil {
		return internal.RunRecord{}, errors.New("no generation runs recorded")
	}
	return *run, nil
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
