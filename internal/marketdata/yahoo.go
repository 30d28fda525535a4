package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"steam-roi/internal/logger"
	"steam-roi/internal/model"

	"golang.org/x/sync/errgroup"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooSource reads the previous close of the treasury yield indices
// (^IRX, ^FVX, ^TNX, ^TYX, ...). Yahoo quotes them in percentage points.
type YahooSource struct {
	baseURL    string
	benchmarks []Benchmark
	fetch      *fetcher
}

func NewYahooSource(benchmarks []Benchmark, opts Options) *YahooSource {
	base := opts.BaseURL
	if base == "" {
		base = defaultYahooBaseURL
	}
	return &YahooSource{
		baseURL:    base,
		benchmarks: benchmarks,
		fetch:      newFetcher("Yahoo", opts),
	}
}

func (s *YahooSource) Name() string { return "yahoo" }

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string   `json:"symbol"`
				PreviousClose      *float64 `json:"previousClose"`
				ChartPreviousClose *float64 `json:"chartPreviousClose"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Benchmarks fetches every ticker concurrently. A ticker that fails is logged
// and reported with a nil rate.
func (s *YahooSource) Benchmarks(ctx context.Context) ([]model.YieldCurvePoint, error) {
	points := make([]model.YieldCurvePoint, len(s.benchmarks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, b := range s.benchmarks {
		i, b := i, b
		g.Go(func() error {
			pt := model.YieldCurvePoint{Label: b.Label, Maturity: b.Maturity}
			rate, err := s.previousClose(gctx, b.Ticker)
			if err != nil {
				logger.Warnf(ctx, "[Yahoo] %s (%s) unavailable: %v", b.Label, b.Ticker, err)
			} else {
				pt.Rate = ratePtr(rate / 100)
			}
			points[i] = pt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

func (s *YahooSource) previousClose(ctx context.Context, ticker string) (float64, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=5d&interval=1d", s.baseURL, url.PathEscape(ticker))
	raw, err := s.fetch.get(ctx, u, map[string]string{
		"Accept":     "application/json",
		"User-Agent": "Mozilla/5.0 (compatible; steam-roi)",
	})
	if err != nil {
		return 0, err
	}

	var resp yahooChartResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.Chart.Error != nil {
		return 0, fmt.Errorf("%s: %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return 0, fmt.Errorf("no chart result for %s", ticker)
	}
	meta := resp.Chart.Result[0].Meta
	switch {
	case meta.PreviousClose != nil:
		return *meta.PreviousClose, nil
	case meta.ChartPreviousClose != nil:
		return *meta.ChartPreviousClose, nil
	}
	return 0, fmt.Errorf("no previous close for %s", ticker)
}
