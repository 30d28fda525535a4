package dcf

import (
	"fmt"
	"math"

	"steam-roi/internal/model"
)

// YearRow is one column of the cash flow table (one modeled year).
type YearRow struct {
	Year int

	FuelPrice       float64 // $/MMBtu
	SteamPrice      float64 // $/MWh of steam
	Generation      float64 // MWh
	Revenue         float64 // $
	ElectricityRate float64 // $/MWh
	ElectricityCost float64 // $
	EBITDA          float64 // $
	InterestExpense float64 // $, negative
	CashFlow        float64 // $
	DiscountFactor  float64
	PresentValue    float64 // $
}

// Metrics lists the table rows in output order.
var Metrics = []string{
	"fuel_price",
	"steam_price",
	"generation",
	"revenue",
	"avg_electricity_rate",
	"electricity_cost",
	"ebitda",
	"interest_expense",
	"cash_flow",
	"discount_factor",
	"present_value",
}

// CashFlowTable is the metric x year matrix behind one DCF computation.
type CashFlowTable struct {
	Years []YearRow
}

// BuildTable lays out the yearly cash flows for a plant that runs
// capacityFactor of the time, buying power at avgRate ($/MWh) and selling
// steam priced off fuel. The loan is interest-only with the principal repaid
// in the final year; the equity share is paid in year 0.
func BuildTable(capacityFactor, avgRate float64, p model.ProjectParameters) *CashFlowTable {
	n := p.PaybackYears
	t := &CashFlowTable{Years: make([]YearRow, n)}

	generation := capacityFactor * model.HoursPerYear * p.SteamDemandMW
	interest := -p.TotalProjectCost * p.InterestRate

	for y := 0; y < n; y++ {
		r := YearRow{Year: y}
		r.FuelPrice = p.FuelPrice * math.Pow(1+p.FuelGrowthRate, float64(y))
		r.SteamPrice = r.FuelPrice * p.EnergyUnitConversion / p.BoilerEfficiency
		r.Generation = generation
		r.Revenue = r.Generation * r.SteamPrice
		r.ElectricityRate = avgRate * math.Pow(1+p.ElectricityGrowthRate, float64(y))
		r.ElectricityCost = r.Generation * r.ElectricityRate
		r.EBITDA = r.Revenue - r.ElectricityCost
		r.InterestExpense = interest
		r.CashFlow = r.EBITDA + r.InterestExpense
		t.Years[y] = r
	}

	if n > 0 {
		t.Years[n-1].CashFlow -= p.TotalProjectCost * p.LoanToValue
		t.Years[0].CashFlow -= p.TotalProjectCost * (1 - p.LoanToValue)
	}

	for y := range t.Years {
		r := &t.Years[y]
		r.DiscountFactor = 1 / math.Pow(1+p.EquityDiscountRate, float64(y))
		r.PresentValue = r.CashFlow * r.DiscountFactor
	}
	return t
}

// CashFlows returns the cash_flow row.
func (t *CashFlowTable) CashFlows() []float64 {
	out, _ := t.Metric("cash_flow")
	return out
}

// PresentValues returns the present_value row.
func (t *CashFlowTable) PresentValues() []float64 {
	out, _ := t.Metric("present_value")
	return out
}

// Metric returns one row of the table by name.
func (t *CashFlowTable) Metric(name string) ([]float64, error) {
	pick, ok := metricAccessors[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q", name)
	}
	out := make([]float64, len(t.Years))
	for i, r := range t.Years {
		out[i] = pick(r)
	}
	return out, nil
}

var metricAccessors = map[string]func(YearRow) float64{
	"fuel_price":           func(r YearRow) float64 { return r.FuelPrice },
	"steam_price":          func(r YearRow) float64 { return r.SteamPrice },
	"generation":           func(r YearRow) float64 { return r.Generation },
	"revenue":              func(r YearRow) float64 { return r.Revenue },
	"avg_electricity_rate": func(r YearRow) float64 { return r.ElectricityRate },
	"electricity_cost":     func(r YearRow) float64 { return r.ElectricityCost },
	"ebitda":               func(r YearRow) float64 { return r.EBITDA },
	"interest_expense":     func(r YearRow) float64 { return r.InterestExpense },
	"cash_flow":            func(r YearRow) float64 { return r.CashFlow },
	"discount_factor":      func(r YearRow) float64 { return r.DiscountFactor },
	"present_value":        func(r YearRow) float64 { return r.PresentValue },
}
