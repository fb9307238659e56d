package quote

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"StockSeer/internal/model"
)

// TwelveDataFetcher implements Fetcher using the Twelve Data time_series API.
type TwelveDataFetcher struct {
	BaseURL    string
	APIKey     string
	OutputSize int
	Client     *http.Client
}

// NewTwelveDataFetcher creates a new fetcher with optional proxy support.
func NewTwelveDataFetcher(baseURL, apiKey string, outputSize int, proxyURL string) *TwelveDataFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if outputSize <= 0 {
		outputSize = 60
	}
	return &TwelveDataFetcher{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		OutputSize: outputSize,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *TwelveDataFetcher) Name() string { return "twelvedata" }

// timeSeriesResponse is the Twelve Data time_series payload. Numeric fields
// arrive as strings; an error payload carries status "error" instead of values.
type timeSeriesResponse struct {
	Values []struct {
		Datetime string `json:"datetime"`
		Open     string `json:"open"`
		High     string `json:"high"`
		Low      string `json:"low"`
		Close    string `json:"close"`
		Volume   string `json:"volume"`
	} `json:"values"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (f *TwelveDataFetcher) FetchDailySeries(symbol string) (*model.HistoricalSeries, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", "1day")
	q.Set("outputsize", strconv.Itoa(f.OutputSize))
	q.Set("apikey", f.APIKey)
	u := fmt.Sprintf("%s?%s", f.BaseURL, q.Encode())

	resp, err := f.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("twelvedata fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("twelvedata read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("twelvedata: status %d, body: %s", resp.StatusCode, string(body))
	}

	var ts timeSeriesResponse
	if err := json.Unmarshal(body, &ts); err != nil {
		return nil, fmt.Errorf("twelvedata decode: %w", err)
	}
	if ts.Status == "error" {
		return nil, fmt.Errorf("twelvedata api error: code %d, %s", ts.Code, ts.Message)
	}
	if len(ts.Values) == 0 {
		return nil, fmt.Errorf("twelvedata: no values returned for %s", symbol)
	}

	pts := make([]model.PricePoint, 0, len(ts.Values))
	for _, v := range ts.Values {
		d, err := time.Parse("2006-01-02", v.Datetime)
		if err != nil {
			return nil, fmt.Errorf("twelvedata: bad datetime %q: %w", v.Datetime, err)
		}
		c, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("twelvedata: bad close %q: %w", v.Close, err)
		}
		pts = append(pts, model.PricePoint{
			Date:   d,
			Open:   parseFloatOrZero(v.Open),
			High:   parseFloatOrZero(v.High),
			Low:    parseFloatOrZero(v.Low),
			Close:  c,
			Volume: parseFloatOrZero(v.Volume),
		})
	}

	// Twelve Data returns newest first.
	sort.Slice(pts, func(i, j int) bool { return pts[i].Date.Before(pts[j].Date) })

	return &model.HistoricalSeries{
		Symbol:    symbol,
		Points:    pts,
		FetchedAt: time.Now(),
	}, nil
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
