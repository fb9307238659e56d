package quote

import (
	"time"

	"StockSeer/internal/model"
)

// Fetcher retrieves recent daily price history for one symbol.
type Fetcher interface {
	FetchDailySeries(symbol string) (*model.HistoricalSeries, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series map[string][]model.PricePoint // per-symbol override
	Errs   map[string]error              // per-symbol forced failure
	Price  float64
	Days   int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailySeries(symbol string) (*model.HistoricalSeries, error) {
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if pts, ok := m.Series[symbol]; ok {
		return &model.HistoricalSeries{Symbol: symbol, Points: pts, FetchedAt: time.Now()}, nil
	}
	days := m.Days
	if days == 0 {
		days = 60
	}
	base := m.Price
	if base == 0 {
		base = 100
	}
	return &model.HistoricalSeries{
		Symbol:    symbol,
		Points:    GenerateMockPoints(base, days),
		FetchedAt: time.Now(),
	}, nil
}

// GenerateMockPoints builds a gently trending daily series ending yesterday.
func GenerateMockPoints(basePrice float64, count int) []model.PricePoint {
	pts := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		pts[i] = model.PricePoint{
			Date:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return pts
}
