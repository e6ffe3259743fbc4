// Package planner builds the investment-planning view models: entry alerts
// derived from user goal parameters, the patience meter, and the upside
// potential score. These are presentation-oriented heuristics layered on
// top of signals; nothing here is persisted as a source of truth.
package planner

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"marketscanner/internal/model"
	"marketscanner/internal/probability"
)

var oneHundred = decimal.NewFromInt(100)

// Planner derives planning view models from price history and goal params.
type Planner struct {
	HorizonDays int
}

// New creates a Planner. A non-positive horizon falls back to the
// estimator's 14-day default.
func New(horizonDays int) *Planner {
	if horizonDays <= 0 {
		horizonDays = probability.DefaultHorizonDays
	}
	return &Planner{HorizonDays: horizonDays}
}

// BuildEntryAlert computes the entry plan for one symbol: units affordable
// at the target entry, the exit price that banks the target profit, the gap
// to the entry, its reachability within the horizon, and the patience meter.
func (p *Planner) BuildEntryAlert(symbol string, currentPrice float64, closes []float64, goal model.GoalParams) (*model.EntryAlert, error) {
	if currentPrice <= 0 {
		return nil, errors.New("current price must be positive")
	}
	if !goal.Capital.IsPositive() {
		return nil, errors.New("capital must be positive")
	}
	if !goal.TargetEntry.IsPositive() {
		return nil, errors.New("target entry must be positive")
	}
	if goal.TargetProfit.IsNegative() {
		return nil, errors.New("target profit must not be negative")
	}

	current := decimal.NewFromFloat(currentPrice)
	units := goal.Capital.Div(goal.TargetEntry)

	// Exit price that turns the capital into capital+profit:
	// entry * (1 + profit/capital).
	exit := goal.TargetEntry.Mul(decimal.NewFromInt(1).Add(goal.TargetProfit.Div(goal.Capital)))

	gapPct := current.Sub(goal.TargetEntry).Div(current).Mul(oneHundred)
	triggered := current.LessThanOrEqual(goal.TargetEntry)

	targetEntry, _ := goal.TargetEntry.Float64()
	prob := probability.EstimateEntry(currentPrice, targetEntry, closes, p.HorizonDays)

	gapFloat, _ := gapPct.Float64()
	patience := PatienceMeter(gapFloat, prob, triggered)

	return &model.EntryAlert{
		Symbol:       symbol,
		CurrentPrice: current,
		TargetEntry:  goal.TargetEntry,
		Units:        units,
		ExitPrice:    exit,
		GapPercent:   gapPct,
		Probability:  prob,
		Patience:     patience,
		Triggered:    triggered,
		HorizonDays:  p.HorizonDays,
		At:           time.Now(),
	}, nil
}

// PatienceMeter maps the entry gap and its reachability to [0, 1]:
// 0 means the entry is live, 1 means a long wait. A wide gap that the
// volatility is unlikely to close scores the most patience.
func PatienceMeter(gapPercent, prob float64, triggered bool) float64 {
	if triggered {
		return 0
	}
	if gapPercent < 0 {
		gapPercent = -gapPercent
	}
	patience := gapPercent / 10 * (1 - prob)
	if patience > 1 {
		return 1
	}
	if patience < 0 {
		return 0
	}
	return patience
}
