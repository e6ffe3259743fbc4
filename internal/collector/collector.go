package collector

import (
	"context"
	"time"

	"go.uber.org/zap"

	"marketscanner/internal/indicator"
	"marketscanner/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars      []model.OHLCV
	Price     float64
	ChangePct float64
	BarsErr   error
	QuoteErr  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ context.Context, _ string, limit int) ([]model.OHLCV, error) {
	if m.BarsErr != nil {
		return nil, m.BarsErr
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return generateMockBars(m.Price, limit), nil
}

func (m *MockFetcher) FetchQuote(_ context.Context, symbol string) (model.Quote, error) {
	if m.QuoteErr != nil {
		return model.Quote{}, m.QuoteErr
	}
	return model.Quote{Symbol: symbol, Price: m.Price, ChangePct24h: m.ChangePct, At: time.Now()}, nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Result pairs a computed signal with the closing-price history that
// produced it, so downstream consumers (planner, probability estimator)
// can reuse the series without refetching.
type Result struct {
	Signal model.Signal
	Closes []float64
}

// Collector routes each configured symbol to its fetcher and turns price
// history into signals.
type Collector struct {
	fetchers    map[string]Fetcher
	symbols     []string
	historyBars int
	logger      *zap.Logger
}

// NewCollector creates a Collector fetching historyBars of history per symbol.
func NewCollector(historyBars int, logger *zap.Logger) *Collector {
	return &Collector{
		fetchers:    make(map[string]Fetcher),
		historyBars: historyBars,
		logger:      logger,
	}
}

// Register assigns symbols to a fetcher, preserving registration order.
func (c *Collector) Register(f Fetcher, symbols ...string) {
	for _, s := range symbols {
		if _, dup := c.fetchers[s]; !dup {
			c.symbols = append(c.symbols, s)
		}
		c.fetchers[s] = f
	}
}

// Symbols returns all registered symbols in registration order.
func (c *Collector) Symbols() []string {
	out := make([]string, len(c.symbols))
	copy(out, c.symbols)
	return out
}

// CollectOne fetches history and quote for one symbol and computes its signal.
func (c *Collector) CollectOne(ctx context.Context, symbol string) (*Result, error) {
	fetcher, ok := c.fetchers[symbol]
	if !ok {
		return nil, errNoFetcher(symbol)
	}

	bars, err := fetcher.FetchBars(ctx, symbol, c.historyBars)
	if err != nil {
		return nil, err
	}

	series := model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}
	closes := series.Closes()

	quote, err := fetcher.FetchQuote(ctx, symbol)
	if err != nil {
		// Degrade to the last close rather than failing the symbol.
		if len(closes) == 0 {
			return nil, err
		}
		c.logger.Warn("quote fetch failed, falling back to last close",
			zap.String("symbol", symbol), zap.Error(err))
		quote = model.Quote{Symbol: symbol, Price: closes[len(closes)-1], At: time.Now()}
	}

	summary := indicator.Compute(closes)

	return &Result{
		Signal: model.Signal{
			Symbol:         symbol,
			Price:          quote.Price,
			ChangePct24h:   quote.ChangePct24h,
			RSI:            summary.RSI,
			MACD:           summary.MACD.Line,
			MACDSignal:     summary.MACD.Signal,
			MACDHistogram:  summary.MACD.Histogram,
			Classification: summary.Classification,
			Confidence:     summary.Confidence,
			At:             time.Now(),
		},
		Closes: closes,
	}, nil
}

// Scan collects every registered symbol. Per-symbol failures are logged
// and skipped; a cycle never aborts because one feed is down.
func (c *Collector) Scan(ctx context.Context) []Result {
	results := make([]Result, 0, len(c.symbols))
	for _, symbol := range c.symbols {
		res, err := c.CollectOne(ctx, symbol)
		if err != nil {
			c.logger.Warn("collect failed, skipping symbol",
				zap.String("symbol", symbol), zap.Error(err))
			continue
		}
		results = append(results, *res)
	}
	return results
}

type errNoFetcher string

func (e errNoFetcher) Error() string { return "no fetcher registered for symbol " + string(e) }
