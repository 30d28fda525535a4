package model

import "time"

// Lead is the retained result of one accepted evaluation. It is created once
// and never mutated afterwards.
type Lead struct {
	ID           int    `json:"id"`
	CompanyName  string `json:"company_name"`
	ISORTO       string `json:"iso_rto"`
	ZipCode      string `json:"zip_code"`
	Location     string `json:"loc"`
	CreditRating string `json:"credit_rating"`

	IRR6m  *float64 `json:"irr_6m"`
	IRR12m *float64 `json:"irr_12m"`
	IRR24m *float64 `json:"irr_24m"`
	NPV6m  *int64   `json:"npv_6m"`
	NPV12m *int64   `json:"npv_12m"`
	NPV24m *int64   `json:"npv_24m"`

	// Undiscounted payback per lookback window; nil when cumulative cash
	// flow never turns non-negative inside the modeled horizon.
	PaybackPeriod6m  *float64 `json:"payback_period_6m"`
	PaybackPeriod12m *float64 `json:"payback_period_12m"`
	PaybackPeriod24m *float64 `json:"payback_period_24m"`

	TotalProjectCost float64   `json:"total_project_cost"`
	LoanToValue      float64   `json:"ltv_ratio"`
	InterestRate     float64   `json:"interest_rate"`
	AvgPrice         float64   `json:"avg_ssp_price"`
	CreatedAt        time.Time `json:"created_at"`

	// Windows holds every configured lookback, including ones beyond the
	// three flat fields above.
	Windows []WindowResult `json:"windows,omitempty"`
}

// WindowResult is the DCF outcome for one lookback window.
type WindowResult struct {
	Lookback          string   `json:"lookback"`
	IRR               *float64 `json:"irr"`
	NPV               int64    `json:"npv"`
	PaybackYears      *float64 `json:"payback_period"`
	CapacityFactor    float64  `json:"economic_capacity_factor"`
	AvgOperatingPrice float64  `json:"average_electricity_rate"`
}
