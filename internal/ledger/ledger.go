package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"StockSeer/internal/model"
)

var header = []string{"symbol", "date", "predicted_price"}

// Ledger is the shared, append-only prediction table: one CSV holding every
// forecast across all symbols and all runs. Appends rewrite the whole file
// (read, concat, write back), so the Ledger serializes them internally;
// batch callers should prefer AppendBatch, one flush per run.
type Ledger struct {
	Path string
	mu   sync.Mutex
}

// NewLedger creates the parent directory if needed. The ledger file itself
// is created lazily on first append.
func NewLedger(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}
	return &Ledger{Path: path}, nil
}

// ReadAll returns every record in append order. A missing ledger file is an
// empty ledger, not an error (first run).
func (l *Ledger) ReadAll() ([]model.PredictionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readAllLocked()
}

func (l *Ledger) readAllLocked() ([]model.PredictionRecord, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	recs := make([]model.PredictionRecord, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) != len(header) {
			return nil, fmt.Errorf("ledger: malformed row %v", row)
		}
		d, err := time.Parse("2006-01-02", row[1])
		if err != nil {
			return nil, fmt.Errorf("ledger: bad date %q: %w", row[1], err)
		}
		p, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("ledger: bad price %q: %w", row[2], err)
		}
		recs = append(recs, model.PredictionRecord{Symbol: row[0], Date: d, PredictedPrice: p})
	}
	return recs, nil
}

// Append adds one record, preserving everything already in the ledger.
func (l *Ledger) Append(rec model.PredictionRecord) error {
	return l.AppendBatch([]model.PredictionRecord{rec})
}

// AppendBatch adds records in order with a single rewrite. This is the
// flush half of the buffer-then-flush discipline: the training stage
// accumulates its records in memory and lands them here once.
func (l *Ledger) AppendBatch(recs []model.PredictionRecord) error {
	if len(recs) == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.readAllLocked()
	if err != nil {
		return err
	}

	f, err := os.Create(l.Path)
	if err != nil {
		return fmt.Errorf("create ledger: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}
	for _, r := range append(existing, recs...) {
		row := []string{
			r.Symbol,
			r.DateString(),
			strconv.FormatFloat(r.PredictedPrice, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write ledger row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
