package data

import (
	"context"
	"testing"
	"time"

	"steam-roi/internal/strategy"
)

func TestIngestorCompile(t *testing.T) {
	paths, err := Glob("testdata")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 3 {
		t.Fatalf("Glob = %v, want 3 files", paths)
	}

	var seen, failed int
	in := &Ingestor{
		Rule: strategy.ThresholdRule{},
		OnFile: func(_ string, _ int, err error) {
			seen++
			if err != nil {
				failed++
			}
		},
	}
	series, err := in.Compile(context.Background(), paths)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if seen != 3 || failed != 1 {
		t.Errorf("OnFile calls = %d (failed %d), want 3 (1)", seen, failed)
	}
	if len(series) != 9 {
		t.Fatalf("len = %d, want 9", len(series))
	}

	h0 := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		i       int
		at      time.Time
		zone    string
		price   float64
		operate bool
	}{
		{0, h0, "NP-15 LMP", 13, false},
		{1, h0, "SP-15 LMP", -8, true},
		{2, h0, "ZP-26 LMP", 20, false},
		{3, h0.Add(time.Hour), "NP-15 LMP", -2, true},
		{5, h0.Add(time.Hour), "ZP-26 LMP", 1.11, false},
		{7, time.Date(2024, 4, 1, 23, 0, 0, 0, time.UTC), "SP-15 LMP", -0.5, true},
		{8, time.Date(2024, 4, 1, 23, 0, 0, 0, time.UTC), "ZP-26 LMP", 0, false},
	}
	for _, tt := range tests {
		got := series[tt.i]
		if !got.Time.Equal(tt.at) || got.Zone != tt.zone || got.Price != tt.price || got.Operate != tt.operate {
			t.Errorf("series[%d] = %+v, want %v %s %v %v", tt.i, got, tt.at, tt.zone, tt.price, tt.operate)
		}
	}
}

func TestIngestorAllFilesFail(t *testing.T) {
	in := &Ingestor{Rule: strategy.ThresholdRule{}}
	if _, err := in.Compile(context.Background(), []string{"testdata/caiso_lmp_rt_15min_zones_broken.csv"}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := (&Ingestor{}).Compile(context.Background(), nil); err == nil {
		t.Fatal("expected error without a rule")
	}
}

func TestIngestorMissingZone(t *testing.T) {
	in := &Ingestor{Rule: strategy.ThresholdRule{}, Zones: []string{"DLAP_PGAE LMP"}}
	if _, err := in.Compile(context.Background(), []string{"testdata/caiso_lmp_rt_15min_zones_2024Q2.csv"}); err == nil {
		t.Fatal("expected missing column error")
	}
}
