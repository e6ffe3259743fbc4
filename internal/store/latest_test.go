package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketscanner/internal/model"
)

func TestLatest_PutGet(t *testing.T) {
	l := NewLatest()
	l.Put(model.Signal{Symbol: "BTCUSDT", Price: 100}, []float64{98, 99, 100})

	e, ok := l.Get("BTCUSDT")
	require.True(t, ok)
	assert.Equal(t, 100.0, e.Signal.Price)
	assert.Equal(t, []float64{98, 99, 100}, e.Closes)

	_, ok = l.Get("MISSING")
	assert.False(t, ok)
}

func TestLatest_PutCopiesCloses(t *testing.T) {
	l := NewLatest()
	closes := []float64{1, 2, 3}
	l.Put(model.Signal{Symbol: "X"}, closes)

	closes[0] = 999
	e, _ := l.Get("X")
	assert.Equal(t, 1.0, e.Closes[0])
}

func TestLatest_AllSorted(t *testing.T) {
	l := NewLatest()
	l.Put(model.Signal{Symbol: "ETHUSDT"}, nil)
	l.Put(model.Signal{Symbol: "AOT"}, nil)
	l.Put(model.Signal{Symbol: "BTCUSDT"}, nil)

	signals := l.All()
	require.Len(t, signals, 3)
	assert.Equal(t, "AOT", signals[0].Symbol)
	assert.Equal(t, "BTCUSDT", signals[1].Symbol)
	assert.Equal(t, "ETHUSDT", signals[2].Symbol)
}

func TestLatest_UpdatePrice(t *testing.T) {
	l := NewLatest()
	l.Put(model.Signal{Symbol: "BTCUSDT", Price: 100}, nil)

	assert.True(t, l.UpdatePrice("BTCUSDT", 105))
	e, _ := l.Get("BTCUSDT")
	assert.Equal(t, 105.0, e.Signal.Price)

	assert.False(t, l.UpdatePrice("UNSEEN", 1), "ticks for unscanned symbols are ignored")
}
