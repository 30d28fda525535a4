package analysis

import (
	"sort"

	"steam-roi/internal/model"
)

type RankedZone struct {
	Rank int `json:"rank"`
	WindowStats
}

// RankByCapacityFactor computes stats per zone and sorts by capacity factor
// (descending), then by cheaper operating price, then by name.
func RankByCapacityFactor(byZone map[string][]model.PriceObservation) []RankedZone {
	out := make([]RankedZone, 0, len(byZone))
	for zone, obs := range byZone {
		s := ComputeWindowStats(obs)
		s.Zone = zone
		out = append(out, RankedZone{WindowStats: s})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.CapacityFactor != b.CapacityFactor {
			return a.CapacityFactor > b.CapacityFactor
		}
		if a.AvgOperatingPrice != b.AvgOperatingPrice {
			return a.AvgOperatingPrice < b.AvgOperatingPrice
		}
		return a.Zone < b.Zone
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
