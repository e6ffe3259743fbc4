package notifier

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"marketscanner/internal/model"
	"marketscanner/internal/recorder"
)

// sender delivers a formatted message to the user.
type sender interface {
	SendWithRetry(ctx context.Context, text string) error
}

// Dispatcher compares each symbol's classification against the previous
// scan and notifies on changes. The first observation of a symbol is
// recorded silently so that process restarts do not spam alerts.
type Dispatcher struct {
	sender   sender
	recorder recorder.Recorder
	logger   *zap.Logger

	mu   sync.Mutex
	last map[string]model.Classification
}

func NewDispatcher(s sender, rec recorder.Recorder, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sender:   s,
		recorder: rec,
		logger:   logger,
		last:     make(map[string]model.Classification),
	}
}

// Dispatch processes one scan cycle's signals and returns the alerts
// emitted for classification changes.
func (d *Dispatcher) Dispatch(ctx context.Context, signals []model.Signal) []model.AlertEvent {
	var events []model.AlertEvent

	for _, sig := range signals {
		evt, changed := d.track(sig)
		if !changed {
			continue
		}
		events = append(events, evt)

		d.logger.Info("classification changed",
			zap.String("symbol", evt.Symbol),
			zap.String("previous", string(evt.Previous)),
			zap.String("current", string(evt.Current)),
			zap.Float64("confidence", evt.Confidence))

		if err := d.recorder.RecordAlert(evt); err != nil {
			d.logger.Error("record alert", zap.String("symbol", evt.Symbol), zap.Error(err))
		}
		if d.sender != nil {
			if err := d.sender.SendWithRetry(ctx, FormatAlert(&evt)); err != nil {
				d.logger.Error("send alert", zap.String("symbol", evt.Symbol), zap.Error(err))
			}
		}
	}
	return events
}

// track updates the per-symbol state and reports whether the
// classification flipped since the last scan.
func (d *Dispatcher) track(sig model.Signal) (model.AlertEvent, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	prev, seen := d.last[sig.Symbol]
	d.last[sig.Symbol] = sig.Classification
	if !seen || prev == sig.Classification {
		return model.AlertEvent{}, false
	}

	return model.AlertEvent{
		ID:         uuid.NewString(),
		Symbol:     sig.Symbol,
		Previous:   prev,
		Current:    sig.Classification,
		Price:      sig.Price,
		Confidence: sig.Confidence,
		At:         sig.At,
	}, true
}
