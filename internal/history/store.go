package history

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"StockSeer/internal/model"
)

var header = []string{"date", "open", "high", "low", "close", "volume"}

// Store holds the per-symbol historical snapshots, one CSV file per symbol.
// Each fetch overwrites the symbol's file wholesale; the store only ever
// reflects the most recent retrieval window.
type Store struct {
	Dir string
}

// NewStore creates the store directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

func (s *Store) path(symbol string) string {
	return filepath.Join(s.Dir, symbol+".csv")
}

// Write replaces the symbol's snapshot with the given series.
func (s *Store) Write(series *model.HistoricalSeries) error {
	f, err := os.Create(s.path(series.Symbol))
	if err != nil {
		return fmt.Errorf("create history file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range series.Points {
		row := []string{
			p.Date.Format("2006-01-02"),
			formatPrice(p.Open),
			formatPrice(p.High),
			formatPrice(p.Low),
			formatPrice(p.Close),
			strconv.FormatFloat(p.Volume, 'f', 0, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Read loads the symbol's current snapshot.
func (s *Store) Read(symbol string) (*model.HistoricalSeries, error) {
	f, err := os.Open(s.path(symbol))
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("history file for %s is empty", symbol)
	}

	pts := make([]model.PricePoint, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) != len(header) {
			return nil, fmt.Errorf("history file for %s: malformed row %v", symbol, row)
		}
		d, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			return nil, fmt.Errorf("history file for %s: bad date %q: %w", symbol, row[0], err)
		}
		c, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, fmt.Errorf("history file for %s: bad close %q: %w", symbol, row[4], err)
		}
		pts = append(pts, model.PricePoint{
			Date:   d,
			Open:   parseOrZero(row[1]),
			High:   parseOrZero(row[2]),
			Low:    parseOrZero(row[3]),
			Close:  c,
			Volume: parseOrZero(row[5]),
		})
	}
	return &model.HistoricalSeries{Symbol: symbol, Points: pts}, nil
}

// Symbols lists every symbol with a snapshot on disk. The training stage
// enumerates this rather than the configured universe, so a symbol whose
// fetch failed this run still trains on its previous snapshot.
func (s *Store) Symbols() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("list history dir: %w", err)
	}
	var symbols []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		symbols = append(symbols, strings.TrimSuffix(e.Name(), ".csv"))
	}
	return symbols, nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
