package recorder

import "marketscanner/internal/model"

// Noop discards everything. Used when persistence is not configured.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (*Noop) RecordSignal(model.Signal) error         { return nil }
func (*Noop) RecordAlert(model.AlertEvent) error      { return nil }
func (*Noop) RecordScanCycle(int, int, float64) error { return nil }
func (*Noop) Close() error                            { return nil }
