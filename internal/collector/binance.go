package collector

import (
	"context"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"

	"marketscanner/internal/model"
	"marketscanner/pkg/retrier"
)

const dailyInterval = "1d"

// BinanceFetcher implements Fetcher for Binance spot markets.
type BinanceFetcher struct {
	client  *binance.Client
	retrier *retrier.Retrier
}

// NewBinanceFetcher creates a fetcher backed by the Binance REST API.
// Public market data needs no API credentials.
func NewBinanceFetcher(client *binance.Client) *BinanceFetcher {
	return &BinanceFetcher{
		client:  client,
		retrier: retrier.New(3, time.Second, 10*time.Second),
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// FetchBars fetches daily klines, oldest first.
func (f *BinanceFetcher) FetchBars(ctx context.Context, symbol string, limit int) ([]model.OHLCV, error) {
	klines, err := retrier.DoWithData(f.retrier, ctx, func(ctx context.Context) ([]*binance.Kline, error) {
		return f.client.NewKlinesService().
			Symbol(symbol).
			Interval(dailyInterval).
			Limit(limit).
			Do(ctx)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fetch klines for %s", symbol)
	}

	bars := make([]model.OHLCV, len(klines))
	for i, k := range klines {
		open, err := strconv.ParseFloat(k.Open, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse open price at index %d", i)
		}
		high, err := strconv.ParseFloat(k.High, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse high price at index %d", i)
		}
		low, err := strconv.ParseFloat(k.Low, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse low price at index %d", i)
		}
		closePrice, err := strconv.ParseFloat(k.Close, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse close price at index %d", i)
		}
		volume, err := strconv.ParseFloat(k.Volume, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse volume at index %d", i)
		}

		bars[i] = model.OHLCV{
			Time:   time.Unix(0, k.OpenTime*int64(time.Millisecond)),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		}
	}
	return bars, nil
}

// FetchQuote fetches the rolling 24h ticker for the symbol.
func (f *BinanceFetcher) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	stats, err := retrier.DoWithData(f.retrier, ctx, func(ctx context.Context) ([]*binance.PriceChangeStats, error) {
		return f.client.NewListPriceChangeStatsService().Symbol(symbol).Do(ctx)
	})
	if err != nil {
		return model.Quote{}, errors.Wrapf(err, "fetch 24h stats for %s", symbol)
	}
	if len(stats) == 0 {
		return model.Quote{}, errors.Errorf("no 24h stats returned for %s", symbol)
	}

	price, err := strconv.ParseFloat(stats[0].LastPrice, 64)
	if err != nil {
		return model.Quote{}, errors.Wrap(err, "parse last price")
	}
	changePct, err := strconv.ParseFloat(stats[0].PriceChangePercent, 64)
	if err != nil {
		return model.Quote{}, errors.Wrap(err, "parse price change percent")
	}

	return model.Quote{
		Symbol:       symbol,
		Price:        price,
		ChangePct24h: changePct,
		At:           time.Now(),
	}, nil
}
