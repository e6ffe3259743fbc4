package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalParams are the user-declared planning inputs.
type GoalParams struct {
	Capital      decimal.Decimal `json:"capital"`
	TargetProfit decimal.Decimal `json:"target_profit"`
	TargetEntry  decimal.Decimal `json:"target_entry"`
}

// EntryAlert is the planning view model layered on top of a signal:
// how many units the capital buys at the target entry, what exit price
// banks the target profit, and how reachable the entry looks.
type EntryAlert struct {
	Symbol       string          `json:"symbol"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	TargetEntry  decimal.Decimal `json:"target_entry"`
	Units        decimal.Decimal `json:"units"`
	ExitPrice    decimal.Decimal `json:"exit_price"`
	GapPercent   decimal.Decimal `json:"gap_percent"`
	Probability  float64         `json:"probability"`
	Patience     float64         `json:"patience"`
	Triggered    bool            `json:"triggered"`
	HorizonDays  int             `json:"horizon_days"`
	At           time.Time       `json:"at"`
}

// PotentialFactor is one weighted component of the potential score.
type PotentialFactor struct {
	Name       string  `json:"name"`
	RawScore   float64 `json:"raw_score"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
	Commentary string  `json:"commentary"`
}

// PotentialScore grades how much multiple-of-entry upside a symbol
// plausibly carries. Total is in [0, 100].
type PotentialScore struct {
	Symbol  string            `json:"symbol"`
	Factors []PotentialFactor `json:"factors"`
	Total   float64           `json:"total"`
	Grade   string            `json:"grade"`
}
