package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketscanner/internal/model"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	rec, err := NewSQLite(filepath.Join(t.TempDir(), "scanner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { rec.Close() })
	return rec
}

func TestSQLite_RecordSignal(t *testing.T) {
	rec := openTestDB(t)

	err := rec.RecordSignal(model.Signal{
		Symbol:         "BTCUSDT",
		Price:          64250.5,
		ChangePct24h:   1.8,
		RSI:            42.3,
		MACD:           12.5,
		MACDSignal:     10.1,
		MACDHistogram:  2.4,
		Classification: model.ClassificationHold,
		Confidence:     0.5,
		At:             time.Now(),
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, rec.db.QueryRow("SELECT COUNT(*) FROM signal_snapshots").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSQLite_RecordAlert(t *testing.T) {
	rec := openTestDB(t)

	evt := model.AlertEvent{
		ID:         "evt-1",
		Symbol:     "AOT",
		Previous:   model.ClassificationHold,
		Current:    model.ClassificationBuy,
		Price:      58.25,
		Confidence: 0.75,
		At:         time.Now(),
	}
	require.NoError(t, rec.RecordAlert(evt))

	var current string
	require.NoError(t, rec.db.QueryRow("SELECT current FROM alert_events WHERE id = ?", evt.ID).Scan(&current))
	assert.Equal(t, "BUY", current)

	// Primary key rejects duplicate event IDs.
	assert.Error(t, rec.RecordAlert(evt))
}

func TestSQLite_RecordScanCycle(t *testing.T) {
	rec := openTestDB(t)

	require.NoError(t, rec.RecordScanCycle(5, 1, 2.34))

	var symbols, alerts int
	var duration float64
	require.NoError(t, rec.db.QueryRow("SELECT symbols, alerts, duration_seconds FROM scan_cycles").
		Scan(&symbols, &alerts, &duration))
	assert.Equal(t, 5, symbols)
	assert.Equal(t, 1, alerts)
	assert.InDelta(t, 2.34, duration, 1e-9)
}
