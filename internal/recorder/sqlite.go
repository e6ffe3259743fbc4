package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"marketscanner/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS signal_snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol TEXT NOT NULL,
	price REAL NOT NULL,
	change_pct REAL NOT NULL,
	rsi REAL NOT NULL,
	macd REAL NOT NULL,
	macd_signal REAL NOT NULL,
	macd_histogram REAL NOT NULL,
	classification TEXT NOT NULL,
	confidence REAL NOT NULL,
	at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_signal_symbol_at ON signal_snapshots(symbol, at);

CREATE TABLE IF NOT EXISTS alert_events (
	id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	previous TEXT NOT NULL,
	current TEXT NOT NULL,
	price REAL NOT NULL,
	confidence REAL NOT NULL,
	at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS scan_cycles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	symbols INTEGER NOT NULL,
	alerts INTEGER NOT NULL,
	duration_seconds REAL NOT NULL,
	at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLite persists scan history to a local SQLite database.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and applies the schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) RecordSignal(sig model.Signal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO signal_snapshots
		(symbol, price, change_pct, rsi, macd, macd_signal, macd_histogram, classification, confidence, at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sig.Symbol, sig.Price, sig.ChangePct24h, sig.RSI,
		sig.MACD, sig.MACDSignal, sig.MACDHistogram,
		string(sig.Classification), sig.Confidence, sig.At)
	if err != nil {
		return fmt.Errorf("insert signal snapshot: %w", err)
	}
	return nil
}

func (s *SQLite) RecordAlert(evt model.AlertEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO alert_events
		(id, symbol, previous, current, price, confidence, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		evt.ID, evt.Symbol, string(evt.Previous), string(evt.Current),
		evt.Price, evt.Confidence, evt.At)
	if err != nil {
		return fmt.Errorf("insert alert event: %w", err)
	}
	return nil
}

func (s *SQLite) RecordScanCycle(symbols, alerts int, duration float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO scan_cycles (symbols, alerts, duration_seconds) VALUES (?, ?, ?)`,
		symbols, alerts, duration)
	if err != nil {
		return fmt.Errorf("insert scan cycle: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
