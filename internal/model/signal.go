package model

import "time"

// Classification is the action suggested by the indicator engine.
type Classification string

const (
	ClassificationBuy  Classification = "BUY"
	ClassificationSell Classification = "SELL"
	ClassificationHold Classification = "HOLD"
)

// Signal is the derived record for one symbol after a scan cycle.
// It is recomputed on every cycle; the market feed stays authoritative.
type Signal struct {
	Symbol         string         `json:"symbol"`
	Price          float64        `json:"price"`
	ChangePct24h   float64        `json:"change_pct_24h"`
	RSI            float64        `json:"rsi"`
	MACD           float64        `json:"macd"`
	MACDSignal     float64        `json:"macd_signal"`
	MACDHistogram  float64        `json:"macd_histogram"`
	Classification Classification `json:"classification"`
	Confidence     float64        `json:"confidence"`
	At             time.Time      `json:"at"`
}

// AlertEvent records a classification change between consecutive scans.
type AlertEvent struct {
	ID         string         `json:"id"`
	Symbol     string         `json:"symbol"`
	Previous   Classification `json:"previous"`
	Current    Classification `json:"current"`
	Price      float64        `json:"price"`
	Confidence float64        `json:"confidence"`
	At         time.Time      `json:"at"`
}
