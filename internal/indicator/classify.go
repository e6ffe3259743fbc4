package indicator

import "marketscanner/internal/model"

// RSIPeriod is the lookback used by Compute.
const RSIPeriod = 14

// Confidence bounds for non-HOLD classifications.
const (
	minConfidence = 0.5
	maxConfidence = 0.95
)

// Summary is the full output of the indicator engine for one price series.
type Summary struct {
	RSI            float64
	MACD           MACDResult
	Classification model.Classification
	Confidence     float64
}

// Classify scores BUY and SELL points from three independent rules and
// derives a classification with confidence.
//
// Rules: RSI thresholds (<30 strong buy, <40 weak buy, >70 strong sell,
// >60 weak sell), MACD line vs signal line combined with histogram sign,
// and histogram sign alone.
func Classify(rsi float64, macd MACDResult) (model.Classification, float64) {
	var buyScore, sellScore int

	switch {
	case rsi < 30:
		buyScore += 2
	case rsi < 40:
		buyScore++
	}
	switch {
	case rsi > 70:
		sellScore += 2
	case rsi > 60:
		sellScore++
	}

	if macd.Line > macd.Signal {
		if macd.Histogram > 0 {
			buyScore += 2
		} else {
			buyScore++
		}
	} else if macd.Line < macd.Signal {
		if macd.Histogram < 0 {
			sellScore += 2
		} else {
			sellScore++
		}
	}

	if macd.Histogram > 0 {
		buyScore++
	} else if macd.Histogram < 0 {
		sellScore++
	}

	total := buyScore + sellScore
	switch {
	case buyScore > sellScore+1:
		return model.ClassificationBuy, clampConfidence(float64(buyScore) / float64(total))
	case sellScore > buyScore+1:
		return model.ClassificationSell, clampConfidence(float64(sellScore) / float64(total))
	default:
		return model.ClassificationHold, minConfidence
	}
}

// Compute is the single entry point of the indicator engine: RSI(14),
// MACD(12,26,9), and the derived classification with confidence. Pure and
// total: insufficient history falls back to neutral defaults, never errors.
func Compute(prices []float64) Summary {
	rsi := RSI(prices, RSIPeriod)
	macd := DefaultMACD(prices)
	classification, confidence := Classify(rsi, macd)
	return Summary{
		RSI:            rsi,
		MACD:           macd,
		Classification: classification,
		Confidence:     confidence,
	}
}

func clampConfidence(c float64) float64 {
	if c < minConfidence {
		return minConfidence
	}
	if c > maxConfidence {
		return maxConfidence
	}
	return c
}
