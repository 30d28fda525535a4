package models

import "steam-roi/internal/model"

// CalculateROIRequest is the body of POST /api/calculate-roi.
type CalculateROIRequest struct {
	ZipCode          string   `json:"zip_code" binding:"required"`
	CompanyName      string   `json:"company_name" binding:"required"`
	CreditRating     string   `json:"credit_rating,omitempty"`  // default: "AA"
	PaybackPeriod    string   `json:"payback_period,omitempty"` // default: "15y"
	SelectedPeriod   string   `json:"selectedPeriod,omitempty"` // lookback shown by the frontend; not used in computation
	LoanToValue      *float64 `json:"ltv_ratio,omitempty"`
	InterestRate     *float64 `json:"interest_rate,omitempty"`
	TotalProjectCost float64  `json:"total_project_cost" binding:"required,gt=0"`
}

// ToInputs applies defaults and converts to the core inputs.
func (r CalculateROIRequest) ToInputs() model.EvaluationInputs {
	in := model.EvaluationInputs{
		ZipCode:          r.ZipCode,
		CompanyName:      r.CompanyName,
		CreditRating:     r.CreditRating,
		PaybackPeriod:    r.PaybackPeriod,
		TotalProjectCost: r.TotalProjectCost,
		LoanToValue:      r.LoanToValue,
		InterestRate:     r.InterestRate,
	}
	if in.CreditRating == "" {
		in.CreditRating = "AA"
	}
	if in.PaybackPeriod == "" {
		in.PaybackPeriod = "15y"
	}
	return in
}

// CreditAssumptionsRequest is the query of GET /api/credit-assumptions.
type CreditAssumptionsRequest struct {
	CreditRating  string `form:"credit_rating" binding:"required"`
	PaybackPeriod string `form:"payback_period" binding:"required"`
}

// RankRequest is the query of GET /api/regions/rank.
type RankRequest struct {
	Lookback string `form:"lookback,omitempty"` // default: "12m"
	Limit    int    `form:"limit,omitempty"`    // default: 10
}

// LocateRequest is the query of GET /api/locate.
type LocateRequest struct {
	ZipCode string `form:"zip_code" binding:"required"`
}
