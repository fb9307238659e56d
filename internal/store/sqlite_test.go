package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestListSymbols(t *testing.T) {
	s := newTestStore(t)
	for _, code := range []string{"TSLA", "AAPL", "MSFT"} {
		if err := s.AddSymbol(code); err != nil {
			t.Fatalf("add symbol %s: %v", code, err)
		}
	}
	// Re-adding must not duplicate.
	if err := s.AddSymbol("AAPL"); err != nil {
		t.Fatalf("re-add symbol: %v", err)
	}

	symbols, err := s.ListSymbols()
	if err != nil {
		t.Fatalf("list symbols: %v", err)
	}
	if len(symbols) != 3 {
		t.Fatalf("expected 3 symbols, got %v", symbols)
	}
	if symbols[0] != "AAPL" || symbols[2] != "TSLA" {
		t.Errorf("expected sorted symbols, got %v", symbols)
	}
}

func TestSubscriptions(t *testing.T) {
	s := newTestStore(t)
	for _, code := range []string{"AAPL", "TSLA"} {
		if err := s.AddSymbol(code); err != nil {
			t.Fatalf("add symbol: %v", err)
		}
	}

	u1, err := s.AddSubscriber("u1@example.com", []string{"AAPL"})
	if err != nil {
		t.Fatalf("add u1: %v", err)
	}
	u2, err := s.AddSubscriber("u2@example.com", []string{"AAPL", "TSLA"})
	if err != nil {
		t.Fatalf("add u2: %v", err)
	}

	subs, err := s.ListSubscribers()
	if err != nil {
		t.Fatalf("list subscribers: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subscribers, got %v", subs)
	}

	got, err := s.FollowedSymbols(u1)
	if err != nil {
		t.Fatalf("followed for u1: %v", err)
	}
	if len(got) != 1 || got[0] != "AAPL" {
		t.Errorf("u1 follows wrong set: %v", got)
	}

	got, err = s.FollowedSymbols(u2)
	if err != nil {
		t.Fatalf("followed for u2: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("u2 follows wrong set: %v", got)
	}
}

func TestAddSubscriber_Idempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddSymbol("AAPL"); err != nil {
		t.Fatalf("add symbol: %v", err)
	}

	first, err := s.AddSubscriber("u1@example.com", []string{"AAPL"})
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	second, err := s.AddSubscriber("u1@example.com", []string{"AAPL"})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if first != second {
		t.Errorf("expected same subscriber id, got %d and %d", first, second)
	}

	followed, err := s.FollowedSymbols(first)
	if err != nil {
		t.Fatalf("followed: %v", err)
	}
	if len(followed) != 1 {
		t.Errorf("follow rows duplicated: %v", followed)
	}
}
