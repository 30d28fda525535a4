package models

import (
	"time"

	"steam-roi/internal/model"
)

// CreditAssumptionsResponse answers GET /api/credit-assumptions.
type CreditAssumptionsResponse struct {
	LoanToValue   float64 `json:"ltv_ratio"`
	InterestRate  float64 `json:"interest_rate"`
	PaybackPeriod string  `json:"payback_period"`
	BenchmarkRate float64 `json:"benchmark_rate"`
	Spread        float64 `json:"spread"`
}

// CreditTiersResponse lists the ladder and accepted payback periods.
type CreditTiersResponse struct {
	Tiers          []model.CreditTier `json:"tiers"`
	PaybackPeriods []string           `json:"payback_periods"`
}

// YieldCurveResponse lists benchmark and derived points.
type YieldCurveResponse struct {
	Source string                  `json:"source"`
	Points []model.YieldCurvePoint `json:"points"`
}

// LeadsResponse answers GET /api/leads.
type LeadsResponse struct {
	Leads []model.Lead `json:"leads"`
}

// LocateResponse answers GET /api/locate.
type LocateResponse struct {
	ZipCode   string  `json:"zip_code"`
	ISORTO    string  `json:"iso_rto"`
	Location  string  `json:"loc"`
	Zone      string  `json:"zone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Nearest   bool    `json:"nearest"`
}

// RankResponse represents the response from ranking zones
type RankResponse struct {
	Lookback string    `json:"lookback"`
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked price zone
type Ranking struct {
	Rank              int     `json:"rank"`
	Zone              string  `json:"zone"`
	Count             int     `json:"count"`
	OperatingHours    int     `json:"operating_hours"`
	CapacityFactor    float64 `json:"economic_capacity_factor"`
	AvgOperatingPrice float64 `json:"average_electricity_rate"`
	MeanPrice         float64 `json:"mean_price"`
	P05Price          float64 `json:"p05_price"`
	P95Price          float64 `json:"p95_price"`
}

// ZoneInfo represents one zone of the price history
type ZoneInfo struct {
	Name           string    `json:"name"`
	Market         string    `json:"market,omitempty"`
	Observations   int       `json:"observations"`
	OperatingHours int       `json:"operating_hours"`
	First          time.Time `json:"first"`
	Last           time.Time `json:"last"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
