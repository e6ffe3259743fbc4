// Package store holds the latest scan output in memory. Signals are
// derived state: the cache is repopulated on every cycle and is not a
// source of truth.
package store

import (
	"sort"
	"sync"
	"time"

	"marketscanner/internal/model"
)

// Entry is the cached state for one symbol.
type Entry struct {
	Signal model.Signal
	Closes []float64
}

// Latest is a concurrency-safe latest-value cache keyed by symbol,
// written by scan cycles and stream ticks, read by the HTTP API and
// the notification dispatcher.
type Latest struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewLatest creates an empty cache.
func NewLatest() *Latest {
	return &Latest{entries: make(map[string]Entry)}
}

// Put stores the signal and its closing-price history.
func (l *Latest) Put(signal model.Signal, closes []float64) {
	cp := make([]float64, len(closes))
	copy(cp, closes)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[signal.Symbol] = Entry{Signal: signal, Closes: cp}
}

// Get returns the cached entry for a symbol.
func (l *Latest) Get(symbol string) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[symbol]
	return e, ok
}

// All returns every cached signal ordered by symbol.
func (l *Latest) All() []model.Signal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	signals := make([]model.Signal, 0, len(l.entries))
	for _, e := range l.entries {
		signals = append(signals, e.Signal)
	}
	sort.Slice(signals, func(i, j int) bool { return signals[i].Symbol < signals[j].Symbol })
	return signals
}

// UpdatePrice refreshes the cached price from a live tick. Symbols that
// have not been scanned yet are ignored; the tick alone cannot produce a
// signal.
func (l *Latest) UpdatePrice(symbol string, price float64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[symbol]
	if !ok {
		return false
	}
	e.Signal.Price = price
	e.Signal.At = time.Now()
	l.entries[symbol] = e
	return true
}
