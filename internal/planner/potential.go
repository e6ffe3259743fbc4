package planner

import (
	"fmt"

	"marketscanner/internal/indicator"
	"marketscanner/internal/model"
	"marketscanner/internal/probability"
)

// Grade thresholds for the total potential score.
var grades = []struct {
	MinScore float64
	Label    string
}{
	{75, "HIGH"},
	{50, "MODERATE"},
	{25, "LOW"},
}

const defaultGrade = "MINIMAL"

func mapGrade(total float64) string {
	for _, g := range grades {
		if total >= g.MinScore {
			return g.Label
		}
	}
	return defaultGrade
}

// ScorePotential grades how much multiple-of-entry upside a symbol
// plausibly carries, from four weighted factors: drawdown from the period
// high, annualized volatility, an RSI basing zone, and price vs EMA12.
func ScorePotential(symbol string, closes []float64, price float64) *model.PotentialScore {
	if price <= 0 || len(closes) == 0 {
		return &model.PotentialScore{Symbol: symbol, Grade: defaultGrade}
	}

	f1 := scoreDrawdown(closes, price)
	f2 := scoreVolatility(closes)
	f3 := scoreBasing(closes)
	f4 := scoreTrend(closes, price)

	factors := []model.PotentialFactor{f1, f2, f3, f4}
	total := (f1.Weighted + f2.Weighted + f3.Weighted + f4.Weighted) * 100

	return &model.PotentialScore{
		Symbol:  symbol,
		Factors: factors,
		Total:   total,
		Grade:   mapGrade(total),
	}
}

// scoreDrawdown rewards depth below the period high: the further a symbol
// has fallen, the more room a recovery multiple has.
// Weight: 0.35
func scoreDrawdown(closes []float64, price float64) model.PotentialFactor {
	high := closes[0]
	for _, c := range closes {
		if c > high {
			high = c
		}
	}
	if price > high {
		high = price
	}

	dd := (high - price) / high * 100

	var score float64
	switch {
	case dd >= 60:
		score = 1.0
	case dd >= 40:
		score = 0.8
	case dd >= 25:
		score = 0.6
	case dd >= 15:
		score = 0.4
	case dd >= 5:
		score = 0.2
	default:
		score = 0
	}

	return model.PotentialFactor{
		Name:       "drawdown",
		RawScore:   score,
		Weight:     0.35,
		Weighted:   score * 0.35,
		Commentary: fmt.Sprintf("%.0f%% below period high", dd),
	}
}

// scoreVolatility rewards annualized volatility: large multiples need
// large moves.
// Weight: 0.25
func scoreVolatility(closes []float64) model.PotentialFactor {
	vol := probability.AnnualizedVolatility(closes)

	var score float64
	switch {
	case vol >= 1.2:
		score = 1.0
	case vol >= 0.8:
		score = 0.8
	case vol >= 0.5:
		score = 0.6
	case vol >= 0.3:
		score = 0.4
	case vol >= 0.15:
		score = 0.2
	default:
		score = 0.1
	}

	return model.PotentialFactor{
		Name:       "volatility",
		RawScore:   score,
		Weight:     0.25,
		Weighted:   score * 0.25,
		Commentary: fmt.Sprintf("annualized vol %.0f%%", vol*100),
	}
}

// scoreBasing rewards an RSI that is beaten down but no longer falling
// freely, the zone where bases tend to form.
// Weight: 0.25
func scoreBasing(closes []float64) model.PotentialFactor {
	rsi := indicator.RSI(closes, indicator.RSIPeriod)

	var score float64
	switch {
	case rsi >= 35 && rsi <= 55:
		score = 1.0
	case rsi >= 30 && rsi <= 60:
		score = 0.7
	case rsi >= 25 && rsi <= 65:
		score = 0.4
	default:
		score = 0.1
	}

	return model.PotentialFactor{
		Name:       "basing",
		RawScore:   score,
		Weight:     0.25,
		Weighted:   score * 0.25,
		Commentary: fmt.Sprintf("RSI=%.0f", rsi),
	}
}

// scoreTrend checks whether the price has reclaimed its short EMA, the
// first sign a drawdown has stopped.
// Weight: 0.15
func scoreTrend(closes []float64, price float64) model.PotentialFactor {
	ema := indicator.EMA(closes, indicator.MACDFastPeriod)

	score := 0.3
	commentary := "price below EMA12"
	if len(ema) > 0 && price > ema[len(ema)-1] {
		score = 1.0
		commentary = "price above EMA12"
	}

	return model.PotentialFactor{
		Name:       "trend",
		RawScore:   score,
		Weight:     0.15,
		Weighted:   score * 0.15,
		Commentary: commentary,
	}
}
