package strategy

import "steam-roi/internal/model"

type Context struct {
	Index       int
	Observation model.PriceObservation
}

// Rule decides whether the steam plant should run during one hour.
type Rule interface {
	Name() string
	Operate(ctx Context) bool
}

// Apply retags every observation with rule's decision and returns a new slice.
func Apply(rule Rule, obs []model.PriceObservation) []model.PriceObservation {
	out := make([]model.PriceObservation, len(obs))
	for i, o := range obs {
		o.Operate = rule.Operate(Context{Index: i, Observation: o})
		out[i] = o
	}
	return out
}

// New builds the configured rule: a price threshold, optionally limited to a
// daily window when both start and end are set.
func New(threshold float64, windowStart, windowEnd string) (Rule, error) {
	var rule Rule = ThresholdRule{Threshold: threshold}
	if windowStart == "" && windowEnd == "" {
		return rule, nil
	}
	return NewScheduleRule(windowStart, windowEnd, rule)
}
