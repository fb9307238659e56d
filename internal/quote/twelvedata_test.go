package quote

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchDailySeries_ParsesAndSortsAscending(t *testing.T) {
	// Twelve Data returns values newest first, numbers as strings.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("interval"); got != "1day" {
			t.Errorf("expected interval=1day, got %q", got)
		}
		if got := r.URL.Query().Get("outputsize"); got != "60" {
			t.Errorf("expected outputsize=60, got %q", got)
		}
		fmt.Fprint(w, `{
			"values": [
				{"datetime":"2025-01-03","open":"151.0","high":"153.0","low":"150.0","close":"152.50","volume":"1200"},
				{"datetime":"2025-01-02","open":"149.0","high":"151.5","low":"148.5","close":"150.25","volume":"1000"}
			],
			"status": "ok"
		}`)
	}))
	defer srv.Close()

	f := NewTwelveDataFetcher(srv.URL, "test-key", 60, "")
	series, err := f.FetchDailySeries("AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Len() != 2 {
		t.Fatalf("expected 2 points, got %d", series.Len())
	}
	if series.Points[0].Close != 150.25 || series.Points[1].Close != 152.50 {
		t.Errorf("points not sorted ascending by date: %+v", series.Points)
	}
	if series.Latest().Date.Format("2006-01-02") != "2025-01-03" {
		t.Errorf("latest date wrong: %v", series.Latest().Date)
	}
}

func TestFetchDailySeries_ErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Provider reports errors in-band with HTTP 200.
		fmt.Fprint(w, `{"code":404,"message":"symbol not found","status":"error"}`)
	}))
	defer srv.Close()

	f := NewTwelveDataFetcher(srv.URL, "test-key", 60, "")
	if _, err := f.FetchDailySeries("NOPE"); err == nil {
		t.Fatal("expected error for provider error payload")
	}
}

func TestFetchDailySeries_EmptyValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"values":[],"status":"ok"}`)
	}))
	defer srv.Close()

	f := NewTwelveDataFetcher(srv.URL, "test-key", 60, "")
	if _, err := f.FetchDailySeries("AAPL"); err == nil {
		t.Fatal("expected error for empty values")
	}
}
