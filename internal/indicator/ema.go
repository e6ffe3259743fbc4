package indicator

// EMA computes the Exponential Moving Average over the given period.
// The first output value is the simple mean of the first `period` prices,
// so the result has len(prices)-period+1 values. Fewer than `period`
// prices yields a nil result.
func EMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period {
		return nil
	}

	out := make([]float64, 0, len(prices)-period+1)

	var seed float64
	for i := 0; i < period; i++ {
		seed += prices[i]
	}
	seed /= float64(period)
	out = append(out, seed)

	multiplier := 2.0 / float64(period+1)
	prev := seed
	for i := period; i < len(prices); i++ {
		prev = (prices[i]-prev)*multiplier + prev
		out = append(out, prev)
	}
	return out
}
