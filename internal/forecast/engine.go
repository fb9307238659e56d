package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"StockSeer/internal/model"
)

// ErrInsufficientHistory is returned when a series has too few points for a
// trend fit. Two observations is the minimum.
var ErrInsufficientHistory = errors.New("insufficient history for forecast")

// Predict fits a linear trend to the series' closes and forecasts the close
// one trading day past the latest observation. The model is refit from
// scratch on every call; nothing is persisted between runs.
func Predict(series *model.HistoricalSeries) (model.PredictionRecord, error) {
	if series == nil || series.Len() < 2 {
		return model.PredictionRecord{}, ErrInsufficientHistory
	}

	slope, intercept, err := fitTrend(series.Points)
	if err != nil {
		return model.PredictionRecord{}, fmt.Errorf("fit %s: %w", series.Symbol, err)
	}

	n := float64(series.Len())
	predicted := intercept + slope*n
	if math.IsNaN(predicted) || math.IsInf(predicted, 0) {
		return model.PredictionRecord{}, fmt.Errorf("fit %s: non-finite forecast", series.Symbol)
	}

	return model.PredictionRecord{
		Symbol:         series.Symbol,
		Date:           NextTradingDay(series.Latest().Date),
		PredictedPrice: round2(predicted),
	}, nil
}

// fitTrend runs least-squares on (observation index, close).
func fitTrend(points []model.PricePoint) (slope, intercept float64, err error) {
	n := float64(len(points))
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range points {
		x := float64(i)
		sumX += x
		sumY += p.Close
		sumXY += x * p.Close
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, 0, errors.New("degenerate series")
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, nil
}

// NextTradingDay returns the first weekday strictly after d.
func NextTradingDay(d time.Time) time.Time {
	next := d.AddDate(0, 0, 1)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
