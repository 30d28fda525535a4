package dcf

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/mat"
)

// IRR solves sum(cf[t] * x^t) = 0 for x = 1/(1+r) through the eigenvalues of
// the polynomial's companion matrix. Among real roots with x > 0 the rate
// closest to zero is returned. ok is false when there is no such root, which
// includes every series without a sign change.
func IRR(cashFlows []float64) (rate float64, ok bool) {
	coeffs := trimPolynomial(cashFlows)
	deg := len(coeffs) - 1
	if deg < 1 {
		return 0, false
	}

	// Monic companion matrix: sub-diagonal ones, last column -c[k]/c[deg].
	lead := coeffs[deg]
	c := mat.NewDense(deg, deg, nil)
	for i := 1; i < deg; i++ {
		c.Set(i, i-1, 1)
	}
	for k := 0; k < deg; k++ {
		c.Set(k, deg-1, -coeffs[k]/lead)
	}

	var eig mat.Eigen
	if !eig.Factorize(c, mat.EigenNone) {
		return 0, false
	}

	best := math.Inf(1)
	found := false
	for _, v := range eig.Values(nil) {
		x, im := real(v), imag(v)
		if math.Abs(im) > 1e-12*math.Max(1, math.Abs(x)) || x <= 0 {
			continue
		}
		r := 1/x - 1
		if math.Abs(r) < math.Abs(best) {
			best, found = r, true
		}
	}
	return best, found
}

// trimPolynomial drops trailing zero coefficients (degree) and leading ones
// (roots at x = 0, which are not rates).
func trimPolynomial(cf []float64) []float64 {
	hi := len(cf)
	for hi > 0 && cf[hi-1] == 0 {
		hi--
	}
	lo := 0
	for lo < hi && cf[lo] == 0 {
		lo++
	}
	return cf[lo:hi]
}

// PaybackPeriod returns the years until cumulative undiscounted cash flow
// turns non-negative, interpolated within the crossing year and rounded to
// 2 dp. nil when it never does.
func PaybackPeriod(cashFlows []float64) *float64 {
	cum := 0.0
	for y, cf := range cashFlows {
		prev := cum
		cum += cf
		if cum < 0 {
			continue
		}
		years := float64(y)
		if prev < 0 && cf > 0 {
			years += -prev / cf
		}
		v, _ := decimal.NewFromFloat(years).Round(2).Float64()
		return &v
	}
	return nil
}
