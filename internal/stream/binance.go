// Package stream keeps cached prices fresh between scan cycles by
// subscribing to Binance miniTicker updates.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"marketscanner/internal/store"
)

const (
	combinedStreamURL = "wss://stream.binance.com:9443/stream?streams="
	reconnectDelay    = 5 * time.Second
)

// BinanceStream consumes the combined miniTicker stream for a set of
// symbols and pushes live prices into the store.
type BinanceStream struct {
	url    string
	store  *store.Latest
	logger *zap.Logger
}

// NewBinanceStream builds a stream for the given symbols (e.g. BTCUSDT).
func NewBinanceStream(symbols []string, st *store.Latest, logger *zap.Logger) *BinanceStream {
	streams := make([]string, 0, len(symbols))
	for _, s := range symbols {
		streams = append(streams, strings.ToLower(s)+"@miniTicker")
	}
	return &BinanceStream{
		url:    combinedStreamURL + strings.Join(streams, "/"),
		store:  st,
		logger: logger,
	}
}

// Run connects and consumes ticks until ctx is cancelled, reconnecting
// after a fixed delay on any failure.
func (b *BinanceStream) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := b.consume(ctx); err != nil && ctx.Err() == nil {
			b.logger.Warn("stream disconnected, reconnecting",
				zap.Error(err), zap.Duration("delay", reconnectDelay))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (b *BinanceStream) consume(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, b.url, nil)
	if err != nil {
		return fmt.Errorf("dial stream: %w", err)
	}
	defer conn.Close()
	b.logger.Info("stream connected", zap.String("url", b.url))

	// The watchdog must not outlive this call: when the connection dies
	// on its own, closing done releases it.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read stream: %w", err)
		}
		symbol, price, err := parseMiniTicker(message)
		if err != nil {
			b.logger.Debug("skip malformed tick", zap.Error(err))
			continue
		}
		b.store.UpdatePrice(symbol, price)
	}
}

type combinedEnvelope struct {
	Stream string `json:"stream"`
	Data   struct {
		Symbol string `json:"s"`
		Close  string `json:"c"`
	} `json:"data"`
}

// parseMiniTicker extracts symbol and last price from a combined-stream
// miniTicker payload.
func parseMiniTicker(message []byte) (string, float64, error) {
	var env combinedEnvelope
	if err := json.Unmarshal(message, &env); err != nil {
		return "", 0, fmt.Errorf("decode tick: %w", err)
	}
	if env.Data.Symbol == "" || env.Data.Close == "" {
		return "", 0, fmt.Errorf("incomplete tick: %s", env.Stream)
	}
	price, err := strconv.ParseFloat(env.Data.Close, 64)
	if err != nil {
		return "", 0, fmt.Errorf("parse tick price: %w", err)
	}
	return env.Data.Symbol, price, nil
}
