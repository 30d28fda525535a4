package marketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"steam-roi/internal/logger"
	"steam-roi/internal/model"

	"github.com/cenkalti/backoff/v4"
)

// Source provides the benchmark points of the treasury curve. A maturity that
// could not be fetched is returned with a nil Rate rather than failing the call.
type Source interface {
	Name() string
	Benchmarks(ctx context.Context) ([]model.YieldCurvePoint, error)
}

// Benchmark names one reference maturity and how each source quotes it.
type Benchmark struct {
	Label    string  // "10y"
	Maturity float64 // years
	Ticker   string  // Yahoo symbol
	Column   string  // treasury.gov header
}

// Options configures the HTTP behaviour shared by all sources.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	MaxRetries    uint64
	RetryInterval time.Duration
}

// UpstreamError represents a non-success answer from a market-data provider.
type UpstreamError struct {
	Source     string
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

type fetcher struct {
	name          string
	client        *http.Client
	maxRetries    uint64
	retryInterval time.Duration
}

func newFetcher(name string, opts Options) *fetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	interval := opts.RetryInterval
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &fetcher{
		name:          name,
		client:        &http.Client{Timeout: timeout},
		maxRetries:    opts.MaxRetries,
		retryInterval: interval,
	}
}

// get fetches url, retrying transport failures, 429 and 5xx with exponential
// backoff. Other statuses fail immediately.
func (f *fetcher) get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	var body []byte
	attempt := 0

	op := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		logger.Debugf(ctx, "[%s] Request: GET %s (attempt %d)", f.name, req.URL.Path, attempt)
		start := time.Now()
		resp, err := f.client.Do(req)
		duration := time.Since(start)
		if err != nil {
			logger.Warnf(ctx, "[%s] Request failed: %v (duration: %v)", f.name, err, duration)
			return fmt.Errorf("failed to execute request: %w", err)
		}
		defer resp.Body.Close()
		logger.Debugf(ctx, "[%s] Response: %s (duration: %v)", f.name, resp.Status, duration)

		switch {
		case resp.StatusCode == http.StatusOK:
			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("failed to read response: %w", err)
			}
			return nil
		case resp.StatusCode == http.StatusTooManyRequests:
			return &UpstreamError{
				Source:     f.name,
				StatusCode: resp.StatusCode,
				Code:       "RATE_LIMIT_EXCEEDED",
				Message:    fmt.Sprintf("rate limit exceeded, retry after: %s", resp.Header.Get("Retry-After")),
				RetryAfter: resp.Header.Get("Retry-After"),
			}
		case resp.StatusCode >= http.StatusInternalServerError:
			return &UpstreamError{
				Source:     f.name,
				StatusCode: resp.StatusCode,
				Code:       "UPSTREAM_ERROR",
				Message:    fmt.Sprintf("upstream returned status %d", resp.StatusCode),
			}
		default:
			return backoff.Permanent(&UpstreamError{
				Source:     f.name,
				StatusCode: resp.StatusCode,
				Code:       "API_ERROR",
				Message:    fmt.Sprintf("upstream returned status %d", resp.StatusCode),
			})
		}
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = f.retryInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, f.maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return body, nil
}

func ratePtr(v float64) *float64 {
	return &v
}
