package model

// YieldCurvePoint is one point of the treasury curve.
// Rate is a decimal fraction (0.0425 = 4.25%); nil means the benchmark
// could not be fetched.
type YieldCurvePoint struct {
	Label    string   `json:"label"`
	Maturity float64  `json:"maturity_years"`
	Rate     *float64 `json:"rate"`
}

// Available reports whether the point carries a usable rate.
func (p YieldCurvePoint) Available() bool {
	return p.Rate != nil
}

// CreditTier maps a credit rating to the financing spread and the maximum
// loan-to-value ratio a lender would accept. Both are decimal fractions.
type CreditTier struct {
	Rating      string  `json:"rating" yaml:"rating"`
	Spread      float64 `json:"spread" yaml:"spread"`
	LoanToValue float64 `json:"loan_to_value" yaml:"loan_to_value"`
}
