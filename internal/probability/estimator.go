// Package probability estimates how likely a price is to reach a target
// entry level within a bounded horizon, using a volatility-scaled
// random-walk approximation. Closed-form and stateless: no simulation, no
// fitting, no confidence intervals beyond the point estimate.
package probability

import "math"

const (
	tradingDaysPerYear = 252

	// DefaultHorizonDays is the reachability window used when the caller
	// does not supply one.
	DefaultHorizonDays = 14

	// maxProbability caps the estimate; the heuristic is never certain.
	maxProbability = 0.95

	// neutralProbability is returned when the history is too short to say
	// anything, mirroring the indicator engine's degrade-to-default rule.
	neutralProbability = 0.5

	pressureWeight = 0.1
)

// AnnualizedVolatility is the population standard deviation of daily
// returns scaled by sqrt(252). Returns 0 for fewer than two closes.
func AnnualizedVolatility(closes []float64) float64 {
	returns := dailyReturns(closes)
	if len(returns) == 0 {
		return 0
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns))

	return math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear)
}

// SellingPressure compares the average of the last 3 closes against the
// average of the 4 closes before them. Positive values mean the price has
// been drifting down recently. Scaled by 10 and clamped to [-1, 1]; fewer
// than 7 closes yields 0.
func SellingPressure(closes []float64) float64 {
	if len(closes) < 7 {
		return 0
	}
	n := len(closes)

	var recent float64
	for _, c := range closes[n-3:] {
		recent += c
	}
	recent /= 3

	var prior float64
	for _, c := range closes[n-7 : n-3] {
		prior += c
	}
	prior /= 4

	if prior == 0 {
		return 0
	}
	pressure := (prior - recent) / prior * 10
	if pressure > 1 {
		return 1
	}
	if pressure < -1 {
		return -1
	}
	return pressure
}

// EstimateEntry returns the probability of the price touching the target
// entry level within horizonDays, clamped to [0, 0.95].
//
// The gap between current and target is expressed as a z-score over the
// expected move (price x daily volatility x sqrt(horizon)); the touch
// probability of a driftless random walk is then 2*(1-CDF(z)), nudged by
// the selling-pressure momentum signal.
func EstimateEntry(current, target float64, closes []float64, horizonDays int) float64 {
	if current <= 0 || target <= 0 || len(closes) < 2 {
		return neutralProbability
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	gap := math.Abs(current - target)

	annualVol := AnnualizedVolatility(closes)
	dailyVol := annualVol / math.Sqrt(tradingDaysPerYear)
	expectedMove := current * dailyVol * math.Sqrt(float64(horizonDays))

	var estimate float64
	switch {
	case expectedMove == 0 && gap == 0:
		estimate = 1
	case expectedMove == 0:
		estimate = 0
	default:
		z := gap / expectedMove
		estimate = 2 * (1 - normalCDF(z))
	}

	estimate += pressureWeight * SellingPressure(closes)

	if estimate > maxProbability {
		return maxProbability
	}
	if estimate < 0 {
		return 0
	}
	return estimate
}

// normalCDF approximates the standard normal CDF with the 5-term
// Abramowitz-Stegun polynomial (26.2.17, |error| < 7.5e-8). Negative
// inputs use the symmetry cdf(-z) = 1 - cdf(z).
func normalCDF(z float64) float64 {
	if z < 0 {
		return 1 - normalCDF(-z)
	}
	t := 1 / (1 + 0.2316419*z)
	poly := t * (0.319381530 + t*(-0.356563782+t*(1.781477937+t*(-1.821255978+t*1.330274429))))
	return 1 - math.Exp(-z*z/2)/math.Sqrt(2*math.Pi)*poly
}

func dailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	return returns
}
