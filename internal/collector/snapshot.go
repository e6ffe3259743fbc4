package collector

import (
	"context"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"marketscanner/internal/model"
)

// snapshotTTL bounds how often the full snapshot document is re-downloaded;
// one scan cycle touches every symbol, so the document is shared between
// those calls.
const snapshotTTL = 30 * time.Second

// snapshotRow is one instrument in the spreadsheet-like JSON snapshot.
type snapshotRow struct {
	Symbol       string    `json:"symbol"`
	Price        float64   `json:"price"`
	ChangePct24h float64   `json:"change_percent"`
	History      []float64 `json:"history"`
}

// SnapshotFetcher implements Fetcher for the static JSON snapshot API that
// publishes Thai-equity quotes and closing-price history as a single
// document.
type SnapshotFetcher struct {
	client *resty.Client

	mu        sync.Mutex
	rows      map[string]snapshotRow
	fetchedAt time.Time
}

// NewSnapshotFetcher creates a fetcher for the given snapshot endpoint.
// The proxy, when set, overrides any environment proxy configuration.
func NewSnapshotFetcher(baseURL, apiKey, proxyURL string) *SnapshotFetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &SnapshotFetcher{client: client}
}

func (f *SnapshotFetcher) Name() string { return "snapshot" }

func (f *SnapshotFetcher) FetchBars(ctx context.Context, symbol string, limit int) ([]model.OHLCV, error) {
	row, err := f.row(ctx, symbol)
	if err != nil {
		return nil, err
	}

	history := row.History
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	// The snapshot publishes closes only; synthesize flat bars so the
	// series shape matches the exchange fetchers.
	now := time.Now()
	bars := make([]model.OHLCV, len(history))
	for i, c := range history {
		bars[i] = model.OHLCV{
			Time:  now.AddDate(0, 0, -(len(history) - i)),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}
	return bars, nil
}

func (f *SnapshotFetcher) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	row, err := f.row(ctx, symbol)
	if err != nil {
		return model.Quote{}, err
	}
	return model.Quote{
		Symbol:       symbol,
		Price:        row.Price,
		ChangePct24h: row.ChangePct24h,
		At:           time.Now(),
	}, nil
}

func (f *SnapshotFetcher) row(ctx context.Context, symbol string) (snapshotRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.rows == nil || time.Since(f.fetchedAt) > snapshotTTL {
		if err := f.refreshLocked(ctx); err != nil {
			return snapshotRow{}, err
		}
	}

	row, ok := f.rows[symbol]
	if !ok {
		return snapshotRow{}, errors.Errorf("symbol %s not present in snapshot", symbol)
	}
	return row, nil
}

func (f *SnapshotFetcher) refreshLocked(ctx context.Context) error {
	var rows []snapshotRow
	resp, err := f.client.R().
		SetContext(ctx).
		SetResult(&rows).
		Get("/scan.json")
	if err != nil {
		return errors.Wrap(err, "fetch snapshot")
	}
	if resp.IsError() {
		return errors.Errorf("fetch snapshot: status %d, body: %s", resp.StatusCode(), resp.String())
	}

	indexed := make(map[string]snapshotRow, len(rows))
	for _, r := range rows {
		indexed[r.Symbol] = r
	}
	f.rows = indexed
	f.fetchedAt = time.Now()
	return nil
}
