package forecast

import (
	"errors"
	"testing"
	"time"

	"StockSeer/internal/model"
)

func weekdaySeries(symbol string, start time.Time, closes []float64) *model.HistoricalSeries {
	pts := make([]model.PricePoint, 0, len(closes))
	d := start
	for _, c := range closes {
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, 1)
		}
		pts = append(pts, model.PricePoint{Date: d, Close: c})
		d = d.AddDate(0, 0, 1)
	}
	return &model.HistoricalSeries{Symbol: symbol, Points: pts}
}

func TestPredict_LinearTrend(t *testing.T) {
	// Exact line: close rises 1.0 per observation, so the one-step forecast
	// continues it exactly.
	closes := make([]float64, 10)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	series := weekdaySeries("AAPL", time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), closes)

	rec, err := Predict(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %s", rec.Symbol)
	}
	if rec.PredictedPrice != 110.00 {
		t.Errorf("expected 110.00, got %.2f", rec.PredictedPrice)
	}
	if !rec.Date.After(series.Latest().Date) {
		t.Errorf("prediction date %v not after latest observation %v", rec.Date, series.Latest().Date)
	}
}

func TestPredict_InsufficientHistory(t *testing.T) {
	cases := []*model.HistoricalSeries{
		nil,
		{Symbol: "AAPL"},
		{Symbol: "AAPL", Points: []model.PricePoint{{Date: time.Now(), Close: 100}}},
	}
	for i, series := range cases {
		if _, err := Predict(series); !errors.Is(err, ErrInsufficientHistory) {
			t.Errorf("case %d: expected ErrInsufficientHistory, got %v", i, err)
		}
	}
}

func TestPredict_RoundsToTwoDigits(t *testing.T) {
	// Two points: forecast = last + (last - first) = 100.666 before rounding.
	series := weekdaySeries("TSLA", time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), []float64{100, 100.333})
	rec, err := Predict(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.PredictedPrice != 100.67 {
		t.Errorf("expected 100.67, got %v", rec.PredictedPrice)
	}
}

func TestPredict_SkipsWeekend(t *testing.T) {
	// Series ending on a Friday must predict for the following Monday.
	series := weekdaySeries("AAPL", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), []float64{100, 101})
	if got := series.Latest().Date.Weekday(); got != time.Friday {
		t.Fatalf("test setup: expected series to end on Friday, got %v", got)
	}
	rec, err := Predict(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Date.Weekday() != time.Monday {
		t.Errorf("expected Monday forecast date, got %v (%v)", rec.Date.Weekday(), rec.Date)
	}
}

func TestNextTradingDay(t *testing.T) {
	tests := []struct {
		day  time.Time
		want time.Weekday
	}{
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Thursday}, // Wed
		{time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), time.Monday},   // Fri
		{time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC), time.Monday},   // Sat
		{time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), time.Monday},   // Sun
	}
	for _, tt := range tests {
		got := NextTradingDay(tt.day)
		if got.Weekday() != tt.want {
			t.Errorf("NextTradingDay(%v): expected %v, got %v", tt.day, tt.want, got.Weekday())
		}
		if !got.After(tt.day) {
			t.Errorf("NextTradingDay(%v) = %v is not strictly after", tt.day, got)
		}
	}
}
