package evaluation

import (
	"fmt"

	"steam-roi/internal/config"
	"steam-roi/internal/credit"
	"steam-roi/internal/data"
	"steam-roi/internal/dcf"
	"steam-roi/internal/leads"
	"steam-roi/internal/location"
	"steam-roi/internal/marketdata"
)

// Components are the long-lived collaborators built from one config.
type Components struct {
	Config   *config.Config
	Curve    *marketdata.Curve
	Credit   *credit.Resolver
	Location *location.Resolver
	History  *data.Store
	Leads    *leads.MemoryRepository
	Service  *Service
}

// Build wires the yield source, resolvers, price store and lead repository.
// Nothing is fetched or read until first use.
func Build(cfg *config.Config) (*Components, error) {
	src, err := NewYieldSource(cfg.Yield)
	if err != nil {
		return nil, err
	}
	curve, err := marketdata.NewCurve(src, benchmarks(cfg.Yield), cfg.Yield.DerivedMaturities)
	if err != nil {
		return nil, fmt.Errorf("yield curve: %w", err)
	}

	c := &Components{
		Config:  cfg,
		Curve:   curve,
		Credit:  credit.NewResolver(curve, cfg.Credit.Tiers, cfg.Credit.Fallback, cfg.Credit.PaybackPeriods),
		History: data.NewStore(cfg.Datasets.PriceHistoryPath),
		Leads:   leads.NewMemoryRepository(),
		Location: location.NewResolver(
			location.NewGeocoder(cfg.Datasets.PostalCodesDir),
			location.NewRegionSet(cfg.Datasets.RegionsPath, cfg.Datasets.RegionCodeProperty, cfg.Datasets.LocationProperty),
			cfg.Datasets.Country,
		),
	}
	c.Service = &Service{
		Locator:   c.Location,
		History:   c.History,
		Financing: c.Credit,
		Engine:    dcf.New(),
		Leads:     c.Leads,
		Project:   cfg.Project,
		Windows:   cfg.LookbackWindows,
	}
	return c, nil
}

// NewYieldSource returns the configured benchmark source behind a TTL cache.
func NewYieldSource(y config.YieldConfig) (marketdata.Source, error) {
	var src marketdata.Source
	switch y.Source {
	case "treasury":
		src = marketdata.NewTreasurySource(benchmarks(y), marketdata.Options{
			BaseURL:    y.TreasuryBaseURL,
			Timeout:    y.Timeout,
			MaxRetries: y.MaxRetries,
		})
	case "yahoo":
		src = marketdata.NewYahooSource(benchmarks(y), marketdata.Options{
			BaseURL:    y.YahooBaseURL,
			Timeout:    y.Timeout,
			MaxRetries: y.MaxRetries,
		})
	default:
		return nil, fmt.Errorf("unknown yield source %q", y.Source)
	}
	return marketdata.NewCachedSource(src, marketdata.NewBenchmarkCache(y.CacheTTL)), nil
}

func benchmarks(y config.YieldConfig) []marketdata.Benchmark {
	out := make([]marketdata.Benchmark, len(y.Benchmarks))
	for i, b := range y.Benchmarks {
		out[i] = marketdata.Benchmark{Label: b.Label, Maturity: b.Maturity, Ticker: b.Ticker, Column: b.Column}
	}
	return out
}
