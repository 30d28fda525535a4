package model

import (
	"errors"
	"testing"
)

func validParams() ProjectParameters {
	return ProjectParameters{
		FuelPrice:             2.12,
		FuelGrowthRate:        0.025,
		ElectricityGrowthRate: 0.025,
		SteamDemandMW:         11,
		EnergyUnitConversion:  3.412,
		BoilerEfficiency:      0.8,
		TotalProjectCost:      2.5e6,
		InterestRate:          0.06,
		LoanToValue:           0.8,
		EquityDiscountRate:    0.12,
		PaybackYears:          15,
	}
}

func TestProjectParametersValidate(t *testing.T) {
	if err := validParams().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]func(p *ProjectParameters){
		"zero years":      func(p *ProjectParameters) { p.PaybackYears = 0 },
		"zero cost":       func(p *ProjectParameters) { p.TotalProjectCost = 0 },
		"efficiency > 1":  func(p *ProjectParameters) { p.BoilerEfficiency = 1.2 },
		"efficiency zero": func(p *ProjectParameters) { p.BoilerEfficiency = 0 },
		"ltv > 1":         func(p *ProjectParameters) { p.LoanToValue = 1.5 },
		"negative demand": func(p *ProjectParameters) { p.SteamDemandMW = -1 },
		"discount <= -1":  func(p *ProjectParameters) { p.EquityDiscountRate = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validParams()
			mutate(&p)
			err := p.Validate()
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestActionFromOperate(t *testing.T) {
	if got := ActionFromOperate(true); got != ActionOperating {
		t.Errorf("got %q, want %q", got, ActionOperating)
	}
	if got := (PriceObservation{Price: 12}).Action(); got != ActionIdle {
		t.Errorf("got %q, want %q", got, ActionIdle)
	}
}
