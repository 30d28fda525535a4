package model

// EvaluationInputs is the canonical "inputs to the system" object for one
// calculate-roi request, after the web layer has bound and defaulted it.
//
// InterestRate and LoanToValue are optional; when nil they are resolved from
// the credit ladder and the treasury curve.
type EvaluationInputs struct {
	ZipCode          string
	CompanyName      string
	CreditRating     string
	PaybackPeriod    string // "5y".."25y"
	TotalProjectCost float64
	LoanToValue      *float64
	InterestRate     *float64
}
