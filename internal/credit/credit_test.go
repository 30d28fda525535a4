package credit

import (
	"context"
	"errors"
	"testing"

	"steam-roi/internal/model"
)

type fixedRates map[string]float64

func (f fixedRates) RateFor(_ context.Context, label string) (float64, error) {
	v, ok := f[label]
	if !ok {
		return 0, model.ErrDataUnavailable
	}
	return v, nil
}

var ladder = []model.CreditTier{
	{Rating: "AAA", Spread: 0.005, LoanToValue: 0.9},
	{Rating: "AA", Spread: 0.01, LoanToValue: 0.8},
	{Rating: "A", Spread: 0.015, LoanToValue: 0.7},
	{Rating: "BBB", Spread: 0.02, LoanToValue: 0.6},
	{Rating: "BB", Spread: 0.025, LoanToValue: 0.5},
}

var worst = model.CreditTier{Rating: "B", Spread: 0.03, LoanToValue: 0.4}

func newResolver(rates RateProvider) *Resolver {
	return NewResolver(rates, ladder, worst, []string{"5y", "10y", "15y", "20y", "25y"})
}

func TestResolveMonotonic(t *testing.T) {
	r := newResolver(fixedRates{"15y": 0.0431})
	ratings := []string{"AAA", "AA", "A", "BBB", "BB", "CCC"}

	var prev Assumptions
	for i, rating := range ratings {
		got, err := r.Resolve(context.Background(), rating, "15y")
		if err != nil {
			t.Fatalf("Resolve(%s): %v", rating, err)
		}
		if i > 0 {
			if got.LoanToValue >= prev.LoanToValue {
				t.Errorf("%s: ltv %v not below %v", rating, got.LoanToValue, prev.LoanToValue)
			}
			if got.Spread <= prev.Spread {
				t.Errorf("%s: spread %v not above %v", rating, got.Spread, prev.Spread)
			}
		}
		prev = got
	}
}

func TestResolveRate(t *testing.T) {
	r := newResolver(fixedRates{"15y": 0.04312, "5y": 0.0375})

	tests := []struct {
		rating, period string
		rate, ltv      float64
	}{
		{"AA", "15y", 0.053, 0.8},
		{"aaa", "15Y", 0.048, 0.9},
		{" BB ", "5y", 0.063, 0.5},
		{"unrated", "5y", 0.068, 0.4},
	}
	for _, tt := range tests {
		got, err := r.Resolve(context.Background(), tt.rating, tt.period)
		if err != nil {
			t.Fatalf("Resolve(%q, %q): %v", tt.rating, tt.period, err)
		}
		if got.InterestRate != tt.rate || got.LoanToValue != tt.ltv {
			t.Errorf("Resolve(%q, %q) = (%v, %v), want (%v, %v)",
				tt.rating, tt.period, got.InterestRate, got.LoanToValue, tt.rate, tt.ltv)
		}
	}
}

func TestResolveInvalidPayback(t *testing.T) {
	r := newResolver(fixedRates{"15y": 0.04})
	for _, p := range []string{"7y", "30y", "", "15"} {
		if _, err := r.Resolve(context.Background(), "AA", p); !errors.Is(err, model.ErrInvalidArgument) {
			t.Errorf("Resolve(AA, %q) error = %v, want ErrInvalidArgument", p, err)
		}
	}
}

func TestResolveRateUnavailable(t *testing.T) {
	r := newResolver(fixedRates{})
	if _, err := r.Resolve(context.Background(), "AA", "20y"); !errors.Is(err, model.ErrDataUnavailable) {
		t.Fatalf("error = %v, want ErrDataUnavailable", err)
	}
}

func TestParsePaybackYears(t *testing.T) {
	if n, err := ParsePaybackYears("25y"); err != nil || n != 25 {
		t.Errorf("ParsePaybackYears(25y) = %d, %v", n, err)
	}
	for _, bad := range []string{"25", "0y", "-3y", "y"} {
		if _, err := ParsePaybackYears(bad); !errors.Is(err, model.ErrInvalidArgument) {
			t.Errorf("ParsePaybackYears(%q) error = %v", bad, err)
		}
	}
}
