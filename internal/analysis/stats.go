package analysis

import (
	"math"
	"sort"
	"time"

	"steam-roi/internal/model"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats summarises one zone over one window of hourly observations.
// It feeds both the DCF (capacity factor, operating price) and zone ranking.
type WindowStats struct {
	Zone  string    `json:"zone"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Count          int `json:"count"`
	OperatingCount int `json:"operating_count"`

	// CapacityFactor is the share of hours with a favorable price.
	CapacityFactor float64 `json:"economic_capacity_factor"`
	// AvgOperatingPrice is the mean price over operating hours only; zero
	// and meaningless when OperatingCount is 0.
	AvgOperatingPrice float64 `json:"average_electricity_rate"`

	MinPrice  float64 `json:"min_price"`
	MaxPrice  float64 `json:"max_price"`
	MeanPrice float64 `json:"mean_price"`
	P05Price  float64 `json:"p05_price"`
	P95Price  float64 `json:"p95_price"`
}

// HasOperating reports whether the window has any favorable hour.
func (s WindowStats) HasOperating() bool { return s.OperatingCount > 0 }

func ComputeWindowStats(obs []model.PriceObservation) WindowStats {
	s := WindowStats{}
	if len(obs) == 0 {
		return s
	}
	s.Zone = obs[0].Zone
	s.Count = len(obs)
	s.Start, s.End = obs[0].Time, obs[0].Time

	prices := make([]float64, 0, len(obs))
	operating := make([]float64, 0, len(obs))
	for _, o := range obs {
		prices = append(prices, o.Price)
		if o.Operate {
			operating = append(operating, o.Price)
		}
		if o.Time.Before(s.Start) {
			s.Start = o.Time
		}
		if o.Time.After(s.End) {
			s.End = o.Time
		}
	}

	s.OperatingCount = len(operating)
	s.CapacityFactor = float64(len(operating)) / float64(len(obs))
	if len(operating) > 0 {
		s.AvgOperatingPrice = stat.Mean(operating, nil)
	}

	s.MeanPrice = stat.Mean(prices, nil)
	s.MinPrice = floats.Min(prices)
	s.MaxPrice = floats.Max(prices)
	sort.Float64s(prices)
	s.P05Price = stat.Quantile(0.05, stat.LinInterp, prices, nil)
	s.P95Price = stat.Quantile(0.95, stat.LinInterp, prices, nil)
	return s
}

// MeanPrice is the plain mean over every observation, NaN when empty.
func MeanPrice(obs []model.PriceObservation) float64 {
	if len(obs) == 0 {
		return math.NaN()
	}
	prices := make([]float64, len(obs))
	for i, o := range obs {
		prices[i] = o.Price
	}
	return stat.Mean(prices, nil)
}
