package marketdata

import (
	"context"
	"testing"
	"time"
)

func TestBenchmarkCacheExpiry(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	c := NewBenchmarkCache(time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", linearPoints())
	got, ok := c.Get("k")
	if !ok || len(got) != 5 {
		t.Fatalf("Get = %v, %v", got, ok)
	}

	*got[0].Rate = 99
	again, _ := c.Get("k")
	if *again[0].Rate == 99 {
		t.Errorf("cache returned shared rate pointer")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Errorf("entry should have expired")
	}
}

func TestBenchmarkCacheDisabled(t *testing.T) {
	c := NewBenchmarkCache(0)
	c.Set("k", linearPoints())
	if _, ok := c.Get("k"); ok {
		t.Errorf("zero TTL cache should not store")
	}

	var nilCache *BenchmarkCache
	nilCache.Set("k", linearPoints())
	if _, ok := nilCache.Get("k"); ok {
		t.Errorf("nil cache should miss")
	}
}

func TestCachedSourceStoresCompleteSnapshots(t *testing.T) {
	src := &stubSource{points: linearPoints()}
	cs := NewCachedSource(src, NewBenchmarkCache(time.Hour))

	for i := 0; i < 3; i++ {
		if _, err := cs.Benchmarks(context.Background()); err != nil {
			t.Fatalf("Benchmarks: %v", err)
		}
	}
	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1", src.calls)
	}
}

func TestCachedSourceSkipsPartialSnapshots(t *testing.T) {
	pts := linearPoints()
	pts[2].Rate = nil
	src := &stubSource{points: pts}
	cs := NewCachedSource(src, NewBenchmarkCache(time.Hour))

	for i := 0; i < 2; i++ {
		if _, err := cs.Benchmarks(context.Background()); err != nil {
			t.Fatalf("Benchmarks: %v", err)
		}
	}
	if src.calls != 2 {
		t.Errorf("source calls = %d, want 2", src.calls)
	}
}
