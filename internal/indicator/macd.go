package indicator

// Default MACD parameters.
const (
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
)

// MACDResult holds the latest MACD line, signal line, and histogram values.
type MACDResult struct {
	Line      float64
	Signal    float64
	Histogram float64
}

// MACD computes MACD(fast, slow, signal) over the closing prices. The fast
// and slow EMAs are aligned starting at price index slow-1, the MACD line is
// their difference, and the signal line is the EMA of the MACD line. Fewer
// than slow+signal prices degrades to an all-zero result.
func MACD(prices []float64, fast, slow, signal int) MACDResult {
	if fast <= 0 || slow <= fast || signal <= 0 {
		return MACDResult{}
	}
	if len(prices) < slow+signal {
		return MACDResult{}
	}

	emaFast := EMA(prices, fast)
	emaSlow := EMA(prices, slow)

	// emaSlow[0] corresponds to price index slow-1; drop the fast EMA's
	// earlier warmup values so both series start there.
	offset := slow - fast
	line := make([]float64, len(emaSlow))
	for i := range emaSlow {
		line[i] = emaFast[i+offset] - emaSlow[i]
	}

	signalLine := EMA(line, signal)
	if len(signalLine) == 0 {
		return MACDResult{}
	}

	last := line[len(line)-1]
	sig := signalLine[len(signalLine)-1]
	return MACDResult{
		Line:      last,
		Signal:    sig,
		Histogram: last - sig,
	}
}

// DefaultMACD computes MACD(12, 26, 9).
func DefaultMACD(prices []float64) MACDResult {
	return MACD(prices, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)
}
