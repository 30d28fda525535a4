package analysis

import (
	"math"
	"testing"
	"time"

	"steam-roi/internal/model"
)

func series(zone string, prices ...float64) []model.PriceObservation {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.PriceObservation, len(prices))
	for i, p := range prices {
		out[i] = model.PriceObservation{
			Time:    base.Add(time.Duration(i) * time.Hour),
			Zone:    zone,
			Price:   p,
			Operate: p < 0,
		}
	}
	return out
}

func TestComputeWindowStats(t *testing.T) {
	s := ComputeWindowStats(series("SP-15 LMP", -10, -20, 30, 40))
	if s.Count != 4 || s.OperatingCount != 2 {
		t.Fatalf("counts = %d/%d", s.Count, s.OperatingCount)
	}
	if s.CapacityFactor != 0.5 {
		t.Errorf("CapacityFactor = %v, want 0.5", s.CapacityFactor)
	}
	if s.AvgOperatingPrice != -15 {
		t.Errorf("AvgOperatingPrice = %v, want -15", s.AvgOperatingPrice)
	}
	if s.MeanPrice != 10 || s.MinPrice != -20 || s.MaxPrice != 40 {
		t.Errorf("mean/min/max = %v/%v/%v", s.MeanPrice, s.MinPrice, s.MaxPrice)
	}
	if s.P05Price < s.MinPrice || s.P95Price > s.MaxPrice || s.P05Price > s.P95Price {
		t.Errorf("percentiles out of range: p05=%v p95=%v", s.P05Price, s.P95Price)
	}
	if s.End.Sub(s.Start) != 3*time.Hour {
		t.Errorf("span = %v", s.End.Sub(s.Start))
	}
}

func TestComputeWindowStatsNoOperating(t *testing.T) {
	s := ComputeWindowStats(series("NP-15 LMP", 5, 6))
	if s.HasOperating() || s.CapacityFactor != 0 || s.AvgOperatingPrice != 0 {
		t.Errorf("stats = %+v", s)
	}
	if empty := ComputeWindowStats(nil); empty.Count != 0 {
		t.Errorf("empty stats = %+v", empty)
	}
}

func TestMeanPrice(t *testing.T) {
	if got := MeanPrice(series("z", 1, 2, 3)); got != 2 {
		t.Errorf("MeanPrice = %v, want 2", got)
	}
	if !math.IsNaN(MeanPrice(nil)) {
		t.Error("MeanPrice(nil) should be NaN")
	}
}

func TestRankByCapacityFactor(t *testing.T) {
	ranked := RankByCapacityFactor(map[string][]model.PriceObservation{
		"NP-15 LMP": series("NP-15 LMP", -1, 5, 5, 5),
		"SP-15 LMP": series("SP-15 LMP", -1, -2, 5, 5),
		"ZP-26 LMP": series("ZP-26 LMP", -9, 5, 5, 5),
	})
	want := []string{"SP-15 LMP", "ZP-26 LMP", "NP-15 LMP"}
	for i, w := range want {
		if ranked[i].Zone != w || ranked[i].Rank != i+1 {
			t.Errorf("rank %d = %s (#%d), want %s", i+1, ranked[i].Zone, ranked[i].Rank, w)
		}
	}
}
