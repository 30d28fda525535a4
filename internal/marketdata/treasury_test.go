package marketdata

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

var treasuryBenchmarks = []Benchmark{
	{Label: "3m", Maturity: 0.25, Column: "3 Mo"},
	{Label: "2y", Maturity: 2, Column: "2 Yr"},
	{Label: "5y", Maturity: 5, Column: "5 Yr"},
	{Label: "10y", Maturity: 10, Column: "10 Yr"},
	{Label: "30y", Maturity: 30, Column: "30 Yr"},
}

func serveTreasury(t *testing.T, pages map[string]string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path != treasuryTextViewPath {
			http.NotFound(w, r)
			return
		}
		file, ok := pages[r.URL.Query().Get("field_tdr_date_value_month")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		body, err := os.ReadFile(file)
		if err != nil {
			t.Errorf("read fixture: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestTreasury(baseURL string, now time.Time) *TreasurySource {
	s := NewTreasurySource(treasuryBenchmarks, Options{BaseURL: baseURL, MaxRetries: 2, RetryInterval: time.Millisecond})
	s.now = func() time.Time { return now }
	return s
}

func TestTreasuryBenchmarksLatestRow(t *testing.T) {
	srv, _ := serveTreasury(t, map[string]string{"202610": "testdata/treasury_202610.html"})
	s := newTestTreasury(srv.URL, time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC))

	points, err := s.Benchmarks(context.Background())
	if err != nil {
		t.Fatalf("Benchmarks: %v", err)
	}
	want := []float64{0.0415, 0.0365, 0.0375, 0.0405, 0.0455}
	if len(points) != len(want) {
		t.Fatalf("len(points) = %d, want %d", len(points), len(want))
	}
	for i, p := range points {
		if p.Rate == nil {
			t.Fatalf("%s: nil rate", p.Label)
		}
		if math.Abs(*p.Rate-want[i]) > 1e-12 {
			t.Errorf("%s = %v, want %v", p.Label, *p.Rate, want[i])
		}
	}
}

func TestTreasuryFallsBackToPreviousMonth(t *testing.T) {
	srv, _ := serveTreasury(t, map[string]string{
		"202611": "testdata/treasury_empty.html",
		"202610": "testdata/treasury_202610.html",
	})
	s := newTestTreasury(srv.URL, time.Date(2026, 11, 1, 6, 0, 0, 0, time.UTC))

	points, err := s.Benchmarks(context.Background())
	if err != nil {
		t.Fatalf("Benchmarks: %v", err)
	}
	if points[3].Rate == nil || math.Abs(*points[3].Rate-0.0405) > 1e-12 {
		t.Errorf("10y = %v, want 0.0405", points[3].Rate)
	}
}

func TestTreasuryMissingColumn(t *testing.T) {
	srv, _ := serveTreasury(t, map[string]string{"202610": "testdata/treasury_202610.html"})
	bm := append([]Benchmark(nil), treasuryBenchmarks...)
	bm[1].Column = "7 Yr"
	s := NewTreasurySource(bm, Options{BaseURL: srv.URL})
	s.now = func() time.Time { return time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC) }

	points, err := s.Benchmarks(context.Background())
	if err != nil {
		t.Fatalf("Benchmarks: %v", err)
	}
	if points[1].Available() {
		t.Errorf("2y should be unavailable, got %v", *points[1].Rate)
	}
	if !points[0].Available() {
		t.Errorf("3m should be available")
	}
}

func TestTreasuryNotFoundIsPermanent(t *testing.T) {
	srv, hits := serveTreasury(t, nil)
	s := newTestTreasury(srv.URL, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))

	_, err := s.Benchmarks(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	upstream, ok := err.(*UpstreamError)
	if !ok {
		t.Fatalf("error = %T %v, want *UpstreamError", err, err)
	}
	if upstream.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", upstream.StatusCode)
	}
	if n := atomic.LoadInt32(hits); n != 1 {
		t.Errorf("hits = %d, want 1 (no retry)", n)
	}
}
