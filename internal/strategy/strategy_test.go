package strategy

import (
	"testing"
	"time"

	"steam-roi/internal/model"
)

func obsAt(hour int, price float64) model.PriceObservation {
	return model.PriceObservation{
		Time:  time.Date(2024, 3, 10, hour, 0, 0, 0, time.UTC),
		Zone:  "SP-15 LMP",
		Price: price,
	}
}

func TestThresholdRule(t *testing.T) {
	r := ThresholdRule{}
	tests := []struct {
		price float64
		want  bool
	}{
		{-12.5, true},
		{-0.01, true},
		{0, false},
		{35, false},
	}
	for _, tt := range tests {
		if got := r.Operate(Context{Observation: obsAt(12, tt.price)}); got != tt.want {
			t.Errorf("Operate(price=%v) = %v, want %v", tt.price, got, tt.want)
		}
	}
	if got := (ThresholdRule{Threshold: 10}).Operate(Context{Observation: obsAt(0, 5)}); !got {
		t.Error("price 5 under threshold 10 should operate")
	}
}

func TestScheduleRuleWraps(t *testing.T) {
	r, err := NewScheduleRule("22:00", "06:00", ThresholdRule{})
	if err != nil {
		t.Fatalf("NewScheduleRule: %v", err)
	}
	tests := []struct {
		hour int
		want bool
	}{
		{23, true},
		{2, true},
		{6, false},
		{12, false},
	}
	for _, tt := range tests {
		if got := r.Operate(Context{Observation: obsAt(tt.hour, -5)}); got != tt.want {
			t.Errorf("hour %d: Operate = %v, want %v", tt.hour, got, tt.want)
		}
	}
}

func TestNewRejectsBadWindow(t *testing.T) {
	if _, err := New(0, "25:00", "06:00"); err == nil {
		t.Error("expected error for hour 25")
	}
	if _, err := New(0, "10:00", ""); err == nil {
		t.Error("expected error for a half-open window")
	}
	r, err := New(0, "", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := r.(ThresholdRule); !ok {
		t.Errorf("New without window = %T, want ThresholdRule", r)
	}
}

func TestApply(t *testing.T) {
	in := []model.PriceObservation{obsAt(0, -1), obsAt(1, 20)}
	in[1].Operate = true
	out := Apply(ThresholdRule{}, in)
	if !out[0].Operate || out[1].Operate {
		t.Errorf("Apply = %+v", out)
	}
	if !in[1].Operate {
		t.Error("Apply modified its input")
	}
}
