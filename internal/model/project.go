package model

import "fmt"

// HoursPerYear is the generation basis for one operating year.
const HoursPerYear = 8760

// ProjectParameters defines the physical and economic parameters of a steam project.
// Units:
// - FuelPrice: $/MMBtu (LNG)
// - FuelGrowthRate, ElectricityGrowthRate: fraction per year
// - SteamDemandMW: MW of steam load served while operating
// - EnergyUnitConversion: MMBtu per MWh
// - BoilerEfficiency: 0..1
// - TotalProjectCost: $
// - InterestRate: fraction per year on the project loan
// - LoanToValue: 0..1 share of cost financed by debt
// - EquityDiscountRate: fraction per year
// - PaybackYears: years modeled in the cash flow table
type ProjectParameters struct {
	FuelPrice             float64
	FuelGrowthRate        float64
	ElectricityGrowthRate float64
	SteamDemandMW         float64
	EnergyUnitConversion  float64
	BoilerEfficiency      float64
	TotalProjectCost      float64
	InterestRate          float64
	LoanToValue           float64
	EquityDiscountRate    float64
	PaybackYears          int
}

func (p ProjectParameters) Validate() error {
	if p.PaybackYears <= 0 {
		return fmt.Errorf("%w: PaybackYears must be > 0", ErrInvalidArgument)
	}
	if p.TotalProjectCost <= 0 {
		return fmt.Errorf("%w: TotalProjectCost must be > 0", ErrInvalidArgument)
	}
	if p.BoilerEfficiency <= 0 || p.BoilerEfficiency > 1 {
		return fmt.Errorf("%w: BoilerEfficiency must be in (0, 1]", ErrInvalidArgument)
	}
	if p.LoanToValue < 0 || p.LoanToValue > 1 {
		return fmt.Errorf("%w: LoanToValue must be in [0, 1]", ErrInvalidArgument)
	}
	if p.SteamDemandMW < 0 {
		return fmt.Errorf("%w: SteamDemandMW must be >= 0", ErrInvalidArgument)
	}
	if p.EnergyUnitConversion <= 0 {
		return fmt.Errorf("%w: EnergyUnitConversion must be > 0", ErrInvalidArgument)
	}
	if p.EquityDiscountRate <= -1 {
		return fmt.Errorf("%w: EquityDiscountRate must be > -1", ErrInvalidArgument)
	}
	return nil
}
