package strategy

import "fmt"

// ThresholdRule operates whenever the hourly price is strictly below
// Threshold. With the default of 0 the plant runs on negative prices, when
// consuming power is paid for.
type ThresholdRule struct {
	Threshold float64
}

func (r ThresholdRule) Name() string { return fmt.Sprintf("price<%g", r.Threshold) }

func (r ThresholdRule) Operate(ctx Context) bool {
	return ctx.Observation.Price < r.Threshold
}
