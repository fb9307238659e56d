package model

import "time"

// PricePoint represents one daily observation for a symbol.
type PricePoint struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// HistoricalSeries is a symbol's recent daily history, ordered by date ascending.
type HistoricalSeries struct {
	Symbol    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Latest returns the most recent point. Callers must check Len first.
func (s *HistoricalSeries) Latest() PricePoint {
	return s.Points[len(s.Points)-1]
}

func (s *HistoricalSeries) Len() int { return len(s.Points) }
