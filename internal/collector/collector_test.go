package collector

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marketscanner/internal/model"
)

func TestCollectOne(t *testing.T) {
	c := NewCollector(200, zap.NewNop())
	c.Register(&MockFetcher{Price: 100, ChangePct: 2.5}, "BTCUSDT")

	res, err := c.CollectOne(context.Background(), "BTCUSDT")
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", res.Signal.Symbol)
	assert.Equal(t, 100.0, res.Signal.Price)
	assert.Equal(t, 2.5, res.Signal.ChangePct24h)
	assert.Len(t, res.Closes, 200)
	assert.Contains(t, []model.Classification{
		model.ClassificationBuy, model.ClassificationSell, model.ClassificationHold,
	}, res.Signal.Classification)
	assert.GreaterOrEqual(t, res.Signal.Confidence, 0.5)
	assert.LessOrEqual(t, res.Signal.Confidence, 0.95)
}

func TestCollectOne_UnknownSymbol(t *testing.T) {
	c := NewCollector(200, zap.NewNop())
	_, err := c.CollectOne(context.Background(), "NOPE")
	assert.Error(t, err)
}

func TestCollectOne_QuoteFallback(t *testing.T) {
	bars := generateMockBars(50, 40)
	c := NewCollector(200, zap.NewNop())
	c.Register(&MockFetcher{Bars: bars, QuoteErr: errors.New("ticker down")}, "PTT")

	res, err := c.CollectOne(context.Background(), "PTT")
	require.NoError(t, err)
	assert.Equal(t, bars[len(bars)-1].Close, res.Signal.Price, "price falls back to last close")
	assert.Zero(t, res.Signal.ChangePct24h)
}

func TestScan_SkipsFailedSymbols(t *testing.T) {
	c := NewCollector(200, zap.NewNop())
	c.Register(&MockFetcher{Price: 100}, "GOOD")
	c.Register(&MockFetcher{BarsErr: errors.New("feed down")}, "BAD")
	c.Register(&MockFetcher{Price: 30}, "ALSOGOOD")

	results := c.Scan(context.Background())
	require.Len(t, results, 2)
	assert.Equal(t, "GOOD", results[0].Signal.Symbol)
	assert.Equal(t, "ALSOGOOD", results[1].Signal.Symbol)
}

func TestRegister_KeepsOrderAndDedupes(t *testing.T) {
	c := NewCollector(200, zap.NewNop())
	f := &MockFetcher{Price: 1}
	c.Register(f, "A", "B")
	c.Register(f, "B", "C")
	assert.Equal(t, []string{"A", "B", "C"}, c.Symbols())
}
