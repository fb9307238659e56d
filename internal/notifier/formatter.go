package notifier

import (
	"fmt"
	"strings"

	"StockSeer/internal/model"
)

// Subject is the digest mail subject line.
const Subject = "Daily Stock Predictions"

// FormatDigest renders a plain-text digest of the given predictions.
func FormatDigest(records []model.PredictionRecord) string {
	var b strings.Builder
	b.WriteString("Stock Predictions:\n\n")
	for _, r := range records {
		b.WriteString(fmt.Sprintf("%-8s %s  %.2f\n", r.Symbol, r.DateString(), r.PredictedPrice))
	}
	return b.String()
}

// FilterForSubscriber returns the records whose symbol is in the followed
// set, preserving ledger order.
func FilterForSubscriber(records []model.PredictionRecord, followed []string) []model.PredictionRecord {
	set := make(map[string]bool, len(followed))
	for _, s := range followed {
		set[s] = true
	}
	var out []model.PredictionRecord
	for _, r := range records {
		if set[r.Symbol] {
			out = append(out, r)
		}
	}
	return out
}
