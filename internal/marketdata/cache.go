package marketdata

import (
	"context"
	"sync"
	"time"

	"steam-roi/internal/logger"
	"steam-roi/internal/model"
)

// CacheEntry is one cached benchmark snapshot.
type CacheEntry struct {
	Points    []model.YieldCurvePoint
	ExpiresAt time.Time
}

// BenchmarkCache keeps complete benchmark snapshots for a fixed TTL.
// Derived maturities are never stored; they are interpolated per call.
type BenchmarkCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewBenchmarkCache(ttl time.Duration) *BenchmarkCache {
	return &BenchmarkCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get retrieves a cached snapshot if available and not expired
func (c *BenchmarkCache) Get(key string) ([]model.YieldCurvePoint, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists || c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return clonePoints(entry.Points), true
}

// Set stores a snapshot in the cache
func (c *BenchmarkCache) Set(key string, points []model.YieldCurvePoint) {
	if c == nil || c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Points:    clonePoints(points),
		ExpiresAt: c.now().Add(c.ttl),
	}
}

// CachedSource serves benchmarks from the cache and only stores snapshots in
// which every maturity is available, so a transient gap is retried next call.
type CachedSource struct {
	Source
	cache *BenchmarkCache
}

func NewCachedSource(src Source, cache *BenchmarkCache) *CachedSource {
	return &CachedSource{Source: src, cache: cache}
}

func (s *CachedSource) Benchmarks(ctx context.Context) ([]model.YieldCurvePoint, error) {
	if cached, ok := s.cache.Get(s.Name()); ok {
		logger.Debugf(ctx, "[%s] Cache hit: %d benchmarks", s.Name(), len(cached))
		return cached, nil
	}
	points, err := s.Source.Benchmarks(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range points {
		if !p.Available() {
			return points, nil
		}
	}
	s.cache.Set(s.Name(), points)
	return points, nil
}

func clonePoints(in []model.YieldCurvePoint) []model.YieldCurvePoint {
	out := make([]model.YieldCurvePoint, len(in))
	for i, p := range in {
		out[i] = p
		if p.Rate != nil {
			out[i].Rate = ratePtr(*p.Rate)
		}
	}
	return out
}
