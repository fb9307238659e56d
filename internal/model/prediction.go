package model

import "time"

// PredictionRecord is one forecast output: the next trading day's predicted
// close for a symbol. PredictedPrice carries two fractional digits.
type PredictionRecord struct {
	Symbol         string
	Date           time.Time
	PredictedPrice float64
}

// DateString formats the prediction date the way the ledger stores it.
func (r PredictionRecord) DateString() string {
	return r.Date.Format("2006-01-02")
}
