// Package recorder persists scan history. The SQLite implementation is
// optional; when no database is configured the noop recorder keeps the
// rest of the pipeline unchanged.
package recorder

import (
	"marketscanner/internal/model"
)

// Recorder persists signals, alerts and scan-cycle stats.
type Recorder interface {
	RecordSignal(sig model.Signal) error
	RecordAlert(evt model.AlertEvent) error
	RecordScanCycle(symbols, alerts int, duration float64) error
	Close() error
}
