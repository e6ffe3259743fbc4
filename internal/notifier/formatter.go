package notifier

import (
	"fmt"
	"strings"
	"time"

	"marketscanner/internal/model"
)

func classificationEmoji(c model.Classification) string {
	switch c {
	case model.ClassificationBuy:
		return "🟢"
	case model.ClassificationSell:
		return "🔴"
	default:
		return "⚪"
	}
}

// FormatAlert formats a classification-change alert.
func FormatAlert(evt *model.AlertEvent) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>%s</b> flipped %s → %s\n\n",
		classificationEmoji(evt.Current), evt.Symbol, evt.Previous, evt.Current))
	b.WriteString(fmt.Sprintf("Price: %.4f\n", evt.Price))
	b.WriteString(fmt.Sprintf("Confidence: %.0f%%\n", evt.Confidence*100))
	b.WriteString(evt.At.Format("2006-01-02 15:04"))
	return b.String()
}

// FormatSignalDetail formats the full indicator readout for one symbol.
func FormatSignalDetail(sig *model.Signal) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>%s</b> — %s (%.0f%%)\n\n",
		classificationEmoji(sig.Classification), sig.Symbol, sig.Classification, sig.Confidence*100))
	b.WriteString(fmt.Sprintf("Price: %.4f (%+.2f%% 24h)\n", sig.Price, sig.ChangePct24h))
	b.WriteString(fmt.Sprintf("RSI(14): %.1f\n", sig.RSI))
	b.WriteString(fmt.Sprintf("MACD: %.4f | signal %.4f | hist %+.4f\n",
		sig.MACD, sig.MACDSignal, sig.MACDHistogram))
	return b.String()
}

// FormatScanReport formats a one-line-per-symbol summary of a scan cycle.
func FormatScanReport(signals []model.Signal) string {
	if len(signals) == 0 {
		return "No signals available yet."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Market scan</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))
	for _, sig := range signals {
		b.WriteString(fmt.Sprintf("%s %s  %.4f (%+.2f%%)  RSI %.0f  %s %.0f%%\n",
			classificationEmoji(sig.Classification), sig.Symbol, sig.Price,
			sig.ChangePct24h, sig.RSI, sig.Classification, sig.Confidence*100))
	}
	return b.String()
}
