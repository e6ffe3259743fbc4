package indicator

import (
	"testing"

	"marketscanner/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		rsi            float64
		macd           MACDResult
		want           model.Classification
		wantConfidence float64
	}{
		{
			name:           "oversold with bullish macd",
			rsi:            25,
			macd:           MACDResult{Line: 1.0, Signal: 0.5, Histogram: 0.5},
			want:           model.ClassificationBuy,
			wantConfidence: 0.95, // 5/5 clamped down
		},
		{
			name:           "overbought with bearish macd",
			rsi:            75,
			macd:           MACDResult{Line: -1.0, Signal: -0.5, Histogram: -0.5},
			want:           model.ClassificationSell,
			wantConfidence: 0.95,
		},
		{
			name:           "neutral everything holds",
			rsi:            50,
			macd:           MACDResult{},
			want:           model.ClassificationHold,
			wantConfidence: 0.5,
		},
		{
			name:           "weak sell rsi against strong bullish macd",
			rsi:            65,
			macd:           MACDResult{Line: 0.4, Signal: 0.1, Histogram: 0.3},
			want:           model.ClassificationBuy,
			wantConfidence: 0.75, // buy 3 of total 4
		},
		{
			name:           "weak buy rsi against bearish macd",
			rsi:            35,
			macd:           MACDResult{Line: -0.4, Signal: -0.1, Histogram: -0.3},
			want:           model.ClassificationSell,
			wantConfidence: 0.75,
		},
		{
			name:           "close scores stay on hold",
			rsi:            25,
			macd:           MACDResult{Line: -0.4, Signal: -0.1, Histogram: -0.3},
			want:           model.ClassificationHold,
			wantConfidence: 0.5, // buy 2 vs sell 3, margin of 1 is not enough
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, confidence := Classify(tt.rsi, tt.macd)
			assert.Equal(t, tt.want, got)
			assert.InDelta(t, tt.wantConfidence, confidence, 1e-12)
		})
	}
}

func TestCompute_InsufficientDataHolds(t *testing.T) {
	got := Compute([]float64{100, 101, 102})
	assert.Equal(t, 50.0, got.RSI)
	assert.Equal(t, MACDResult{}, got.MACD)
	assert.Equal(t, model.ClassificationHold, got.Classification)
	assert.Equal(t, 0.5, got.Confidence)
}

// Classification depends on relative moves, not absolute price level, so a
// uniformly scaled series must classify identically.
func TestCompute_ScaleInvariance(t *testing.T) {
	prices := make([]float64, 120)
	p := 100.0
	for i := range prices {
		// Deterministic zig-zag with a downward drift then recovery.
		switch {
		case i < 60 && i%3 == 0:
			p *= 0.985
		case i < 60:
			p *= 1.002
		case i%4 == 0:
			p *= 0.997
		default:
			p *= 1.006
		}
		prices[i] = p
	}

	scaled := make([]float64, len(prices))
	for i, v := range prices {
		scaled[i] = v * 10
	}

	base := Compute(prices)
	times10 := Compute(scaled)

	assert.Equal(t, base.Classification, times10.Classification)
	assert.InDelta(t, base.Confidence, times10.Confidence, 1e-9)
	assert.InDelta(t, base.RSI, times10.RSI, 1e-9)
}
