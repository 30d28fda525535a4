package model

import "time"

// PriceObservation is one hourly row of the precomputed price history.
//
// Zone is region-qualified, e.g. "SP-15 LMP". Price is $/MWh. Operate records
// whether running the boiler would have been favorable at this price.
type PriceObservation struct {
	Time    time.Time `json:"datetime"`
	Zone    string    `json:"zone"`
	Price   float64   `json:"price"`
	Operate bool      `json:"operate"`
}

// Action reports the operating state as a stable label for CSV output.
func (o PriceObservation) Action() Action {
	return ActionFromOperate(o.Operate)
}
