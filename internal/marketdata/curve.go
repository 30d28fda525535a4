package marketdata

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"steam-roi/internal/model"

	"gonum.org/v1/gonum/interp"
)

// Curve answers rate queries for a fixed set of maturity labels. Benchmark
// labels are read directly from the source; the rest are interpolated.
type Curve struct {
	source     Source
	maturities map[string]float64
	labels     []string
}

// NewCurve builds a curve over the benchmark labels plus the derived ones
// ("15y", "20y", "25y").
func NewCurve(source Source, benchmarks []Benchmark, derived []string) (*Curve, error) {
	c := &Curve{source: source, maturities: make(map[string]float64)}
	for _, b := range benchmarks {
		c.add(b.Label, b.Maturity)
	}
	for _, label := range derived {
		m, err := ParseMaturity(label)
		if err != nil {
			return nil, err
		}
		c.add(label, m)
	}
	return c, nil
}

func (c *Curve) add(label string, maturity float64) {
	label = strings.ToLower(label)
	if _, ok := c.maturities[label]; !ok {
		c.labels = append(c.labels, label)
	}
	c.maturities[label] = maturity
}

// Labels returns the supported maturity labels in configuration order.
func (c *Curve) Labels() []string {
	return append([]string(nil), c.labels...)
}

// RateFor returns the decimal rate for a maturity label. Any missing benchmark
// makes interpolated labels unavailable; the error wraps model.ErrDataUnavailable.
func (c *Curve) RateFor(ctx context.Context, label string) (float64, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	maturity, ok := c.maturities[key]
	if !ok {
		return 0, fmt.Errorf("%w: unsupported maturity %q", model.ErrInvalidArgument, label)
	}

	points, err := c.source.Benchmarks(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %s benchmarks: %w", model.ErrDataUnavailable, c.source.Name(), err)
	}
	for _, p := range points {
		if strings.EqualFold(p.Label, key) {
			if !p.Available() {
				return 0, fmt.Errorf("%w: benchmark %s", model.ErrDataUnavailable, p.Label)
			}
			return *p.Rate, nil
		}
	}
	return Interpolate(points, maturity)
}

// Points returns the benchmarks followed by every derived label. A derived
// point is nil when the curve cannot be built.
func (c *Curve) Points(ctx context.Context) ([]model.YieldCurvePoint, error) {
	points, err := c.source.Benchmarks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s benchmarks: %w", model.ErrDataUnavailable, c.source.Name(), err)
	}
	have := make(map[string]bool, len(points))
	for _, p := range points {
		have[strings.ToLower(p.Label)] = true
	}
	out := append([]model.YieldCurvePoint(nil), points...)
	for _, label := range c.labels {
		if have[label] {
			continue
		}
		pt := model.YieldCurvePoint{Label: label, Maturity: c.maturities[label]}
		if r, err := Interpolate(points, pt.Maturity); err == nil {
			pt.Rate = ratePtr(r)
		}
		out = append(out, pt)
	}
	return out, nil
}

// Interpolate fits a not-a-knot cubic spline through the benchmarks (sorted by
// maturity) and evaluates it at maturity. Maturities outside the benchmark
// range are clamped by the spline, so they are not meaningful.
func Interpolate(points []model.YieldCurvePoint, maturity float64) (float64, error) {
	sorted := append([]model.YieldCurvePoint(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Maturity < sorted[j].Maturity })

	xs := make([]float64, 0, len(sorted))
	ys := make([]float64, 0, len(sorted))
	for i, p := range sorted {
		if !p.Available() {
			return 0, fmt.Errorf("%w: benchmark %s", model.ErrDataUnavailable, p.Label)
		}
		if i > 0 && p.Maturity == sorted[i-1].Maturity {
			return 0, fmt.Errorf("duplicate benchmark maturity %v", p.Maturity)
		}
		xs = append(xs, p.Maturity)
		ys = append(ys, *p.Rate)
	}

	var spline interp.NotAKnotCubic
	if err := spline.Fit(xs, ys); err != nil {
		return 0, fmt.Errorf("%w: fit yield curve: %w", model.ErrDataUnavailable, err)
	}
	rate := spline.Predict(maturity)
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("%w: interpolated rate at %vy is not finite", model.ErrDataUnavailable, maturity)
	}
	return rate, nil
}

// ParseMaturity converts labels like "3m", "2y", "15y" to years.
func ParseMaturity(label string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(label))
	unit := 1.0
	switch {
	case strings.HasSuffix(s, "m"):
		unit = 1.0 / 12.0
	case strings.HasSuffix(s, "y"):
	default:
		return 0, fmt.Errorf("%w: maturity %q, expected Nm or Ny", model.ErrInvalidArgument, label)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: maturity %q, expected Nm or Ny", model.ErrInvalidArgument, label)
	}
	return float64(n) * unit, nil
}
