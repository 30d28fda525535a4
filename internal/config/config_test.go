package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Project.FuelPrice != 2.12 || c.Project.BoilerEfficiency != 0.8 {
		t.Errorf("unexpected project defaults: %+v", c.Project)
	}
	if len(c.Credit.Tiers) != 5 || c.Credit.Fallback.LoanToValue != 0.4 {
		t.Errorf("unexpected credit ladder: %+v", c.Credit)
	}
	if got := c.LookbackWindows; len(got) != 3 || got[2] != "24m" {
		t.Errorf("unexpected windows %v", got)
	}
}

func TestLoadMergesProjectFile(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "assumptions.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// project_file supplies fuel price and demand; inline project overrides discount rate.
	if c.Project.FuelPrice != 3.5 {
		t.Errorf("FuelPrice = %v, want 3.5", c.Project.FuelPrice)
	}
	if c.Project.SteamDemandMW != 4 {
		t.Errorf("SteamDemandMW = %v, want 4", c.Project.SteamDemandMW)
	}
	if c.Project.EquityDiscountRate != 0.1 {
		t.Errorf("EquityDiscountRate = %v, want 0.1", c.Project.EquityDiscountRate)
	}
	if c.Yield.Source != "yahoo" {
		t.Errorf("Source = %q, want yahoo", c.Yield.Source)
	}
	if c.Yield.CacheTTL != 0 {
		t.Errorf("CacheTTL = %v, want 0", c.Yield.CacheTTL)
	}
	if c.Yield.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want default 15s", c.Yield.Timeout)
	}
	if len(c.Credit.PaybackPeriods) != 2 {
		t.Errorf("PaybackPeriods = %v", c.Credit.PaybackPeriods)
	}
}

func TestValidateRejectsNonMonotonicLadder(t *testing.T) {
	c := Default()
	c.Credit.Tiers[2].LoanToValue = 0.85
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for non-monotonic loan_to_value")
	}

	c = Default()
	c.Credit.Fallback.Spread = 0.02
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for fallback spread below ladder")
	}
}

func TestValidateRejectsBadLabels(t *testing.T) {
	c := Default()
	c.LookbackWindows = []string{"6x"}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for bad lookback window")
	}

	c = Default()
	c.Yield.Source = "bloomberg"
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for unknown yield source")
	}
}

func TestLoadServer(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("API_ENV", "production")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	s := LoadServer()
	if s.Port != "9090" {
		t.Errorf("Port = %q", s.Port)
	}
	if !s.Production() {
		t.Error("expected production")
	}
	if len(s.CORSOrigins) != 2 || s.CORSOrigins[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", s.CORSOrigins)
	}
	if s.ReadTimeout != 30*time.Second {
		t.Errorf("ReadTimeout = %v", s.ReadTimeout)
	}
}
