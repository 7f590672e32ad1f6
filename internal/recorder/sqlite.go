package recorder

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists fetch diagnostics to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *slog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *slog.Logger) (*SQLiteRecorder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets ad-hoc readers query while the service writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", "path", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetch_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			request_id  TEXT,
			ticker      TEXT,
			source      TEXT,
			provider    TEXT,
			status      TEXT,
			items       INTEGER,
			duration_ms INTEGER,
			error       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_ts ON fetch_events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_ticker ON fetch_events(ticker, source)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordFetch(evt *FetchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := evt.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO fetch_events
		(timestamp, request_id, ticker, source, provider, status, items, duration_ms, error)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		at.Unix(), evt.RequestID, evt.Ticker, evt.Source, evt.Provider,
		evt.Status, evt.Items, evt.Duration.Milliseconds(), evt.Error,
	)
	return err
}

// Prune deletes events recorded before the given time.
func (r *SQLiteRecorder) Prune(before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(`DELETE FROM fetch_events WHERE timestamp < ?`, before.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SourceStats summarizes recorded fetches for one source.
type SourceStats struct {
	Source      string `json:"source"`
	Total       int    `json:"total"`
	Unavailable int    `json:"unavailable"`
}

// Stats returns per-source totals of recorded fetches since the given time.
func (r *SQLiteRecorder) Stats(since time.Time) ([]SourceStats, error) {
	rows, err := r.db.Query(`SELECT source, COUNT(*),
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END)
		FROM fetch_events WHERE timestamp >= ?
		GROUP BY source ORDER BY source`, StatusUnavailable, since.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SourceStats
	for rows.Next() {
		var s SourceStats
		if err := rows.Scan(&s.Source, &s.Total, &s.Unavailable); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
