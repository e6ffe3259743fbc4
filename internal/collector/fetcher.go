package collector

import (
	"context"

	"marketscanner/internal/model"
)

// Fetcher defines the interface for fetching market data for one venue.
type Fetcher interface {
	// FetchBars returns up to limit daily bars, oldest first.
	FetchBars(ctx context.Context, symbol string, limit int) ([]model.OHLCV, error)
	// FetchQuote returns the latest price and 24h change percent.
	FetchQuote(ctx context.Context, symbol string) (model.Quote, error)
	Name() string
}
