package credit

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"steam-roi/internal/model"

	"github.com/shopspring/decimal"
)

// RateProvider returns the benchmark rate for a maturity label as a decimal
// fraction. *marketdata.Curve satisfies it.
type RateProvider interface {
	RateFor(ctx context.Context, label string) (float64, error)
}

// Assumptions are the financing terms for one rating and payback period.
type Assumptions struct {
	Rating        string  `json:"credit_rating"`
	PaybackPeriod string  `json:"payback_period"`
	Benchmark     float64 `json:"benchmark_rate"`
	Spread        float64 `json:"spread"`
	InterestRate  float64 `json:"interest_rate"`
	LoanToValue   float64 `json:"ltv_ratio"`
}

// Resolver maps a credit rating onto the ladder and prices it off the curve.
type Resolver struct {
	rates    RateProvider
	tiers    []model.CreditTier
	fallback model.CreditTier
	periods  map[string]bool
}

// NewResolver expects tiers ordered best first; fallback applies to every
// rating not on the ladder.
func NewResolver(rates RateProvider, tiers []model.CreditTier, fallback model.CreditTier, periods []string) *Resolver {
	r := &Resolver{
		rates:    rates,
		tiers:    append([]model.CreditTier(nil), tiers...),
		fallback: fallback,
		periods:  make(map[string]bool, len(periods)),
	}
	for _, p := range periods {
		r.periods[strings.ToLower(strings.TrimSpace(p))] = true
	}
	return r
}

// Tier returns the ladder entry for rating. Unknown ratings get the fallback.
func (r *Resolver) Tier(rating string) model.CreditTier {
	key := strings.TrimSpace(rating)
	for _, t := range r.tiers {
		if strings.EqualFold(t.Rating, key) {
			return t
		}
	}
	return r.fallback
}

// Tiers returns the ladder followed by the fallback tier.
func (r *Resolver) Tiers() []model.CreditTier {
	return append(append([]model.CreditTier(nil), r.tiers...), r.fallback)
}

// PaybackPeriod normalizes label and rejects periods outside the allowed set.
func (r *Resolver) PaybackPeriod(label string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	if !r.periods[key] {
		return "", fmt.Errorf("%w: payback period %q is not supported", model.ErrInvalidArgument, label)
	}
	return key, nil
}

// Resolve returns the interest rate (benchmark + spread, rounded to 3 dp) and
// the loan-to-value ratio for rating over the payback period.
func (r *Resolver) Resolve(ctx context.Context, rating, payback string) (Assumptions, error) {
	period, err := r.PaybackPeriod(payback)
	if err != nil {
		return Assumptions{}, err
	}
	tier := r.Tier(rating)

	benchmark, err := r.rates.RateFor(ctx, period)
	if err != nil {
		return Assumptions{}, fmt.Errorf("benchmark %s: %w", period, err)
	}

	rate, _ := decimal.NewFromFloat(benchmark).
		Add(decimal.NewFromFloat(tier.Spread)).
		Round(3).
		Float64()

	return Assumptions{
		Rating:        tier.Rating,
		PaybackPeriod: period,
		Benchmark:     benchmark,
		Spread:        tier.Spread,
		InterestRate:  rate,
		LoanToValue:   tier.LoanToValue,
	}, nil
}

// ParsePaybackYears converts "15y" to 15.
func ParsePaybackYears(label string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(label))
	if !strings.HasSuffix(s, "y") {
		return 0, fmt.Errorf("%w: payback period %q, expected Ny", model.ErrInvalidArgument, label)
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, "y"))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: payback period %q, expected Ny", model.ErrInvalidArgument, label)
	}
	return n, nil
}
