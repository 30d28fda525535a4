package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"steam-roi/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk assumptions shape (YAML).
type Config struct {
	// Optional: load project parameters from a separate YAML (e.g. examples/projects/*.yaml).
	// If both ProjectFile and Project are provided, Project overrides ProjectFile.
	ProjectFile string          `yaml:"project_file"`
	Project     ProjectConfig   `yaml:"project"`
	Credit      CreditConfig    `yaml:"credit"`
	Yield       YieldConfig     `yaml:"yield"`
	Datasets    DatasetConfig   `yaml:"datasets"`
	Operating   OperatingConfig `yaml:"operating"`
	// LookbackWindows are the trailing windows evaluated per request ("6m", "12m", "24m").
	LookbackWindows []string `yaml:"lookback_windows"`
}

// ProjectConfig holds the per-request constants of the DCF model.
// Cost, financing terms and horizon come from the request itself.
type ProjectConfig struct {
	FuelPrice             float64 `yaml:"fuel_price"`
	FuelGrowthRate        float64 `yaml:"fuel_growth_rate"`
	ElectricityGrowthRate float64 `yaml:"electricity_growth_rate"`
	SteamDemandMW         float64 `yaml:"steam_demand_mw"`
	EnergyUnitConversion  float64 `yaml:"energy_unit_conversion"`
	BoilerEfficiency      float64 `yaml:"boiler_efficiency"`
	EquityDiscountRate    float64 `yaml:"equity_discount_rate"`
}

type CreditConfig struct {
	// Tiers is the ordered ladder, best credit first.
	Tiers []model.CreditTier `yaml:"tiers"`
	// Fallback applies to any rating not in Tiers.
	Fallback       model.CreditTier `yaml:"fallback"`
	PaybackPeriods []string         `yaml:"payback_periods"`
}

type YieldConfig struct {
	Source            string            `yaml:"source"` // "treasury" or "yahoo"
	YahooBaseURL      string            `yaml:"yahoo_base_url"`
	TreasuryBaseURL   string            `yaml:"treasury_base_url"`
	Timeout           time.Duration     `yaml:"timeout"`
	MaxRetries        uint64            `yaml:"max_retries"`
	CacheTTL          time.Duration     `yaml:"cache_ttl"`
	Benchmarks        []BenchmarkConfig `yaml:"benchmarks"`
	DerivedMaturities []string          `yaml:"derived_maturities"`
}

// BenchmarkConfig names one reference maturity for each supported source.
type BenchmarkConfig struct {
	Label    string  `yaml:"label"`
	Maturity float64 `yaml:"maturity"`
	Ticker   string  `yaml:"ticker"` // Yahoo symbol, quoted in percentage points
	Column   string  `yaml:"column"` // treasury.gov table header
}

type DatasetConfig struct {
	RegionsPath        string `yaml:"regions_path"`
	RegionCodeProperty string `yaml:"region_code_property"`
	LocationProperty   string `yaml:"location_property"`
	PostalCodesDir     string `yaml:"postal_codes_dir"`
	Country            string `yaml:"country"`
	PriceHistoryPath   string `yaml:"price_history_path"`
}

type OperatingConfig struct {
	// PriceThreshold: an hour is tagged operate=true when price < threshold ($/MWh).
	PriceThreshold float64 `yaml:"price_threshold"`
	// Optional daily window ("HH:MM"); both or neither.
	WindowStart string `yaml:"window_start"`
	WindowEnd   string `yaml:"window_end"`
}

// Default returns the assumptions used when no file is given.
func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			FuelPrice:             2.12,
			FuelGrowthRate:        0.025,
			ElectricityGrowthRate: 0.025,
			SteamDemandMW:         11,
			EnergyUnitConversion:  3.412,
			BoilerEfficiency:      0.8,
			EquityDiscountRate:    0.12,
		},
		Credit: CreditConfig{
			Tiers: []model.CreditTier{
				{Rating: "AAA", Spread: 0.005, LoanToValue: 0.9},
				{Rating: "AA", Spread: 0.01, LoanToValue: 0.8},
				{Rating: "A", Spread: 0.015, LoanToValue: 0.7},
				{Rating: "BBB", Spread: 0.02, LoanToValue: 0.6},
				{Rating: "BB", Spread: 0.025, LoanToValue: 0.5},
			},
			Fallback:       model.CreditTier{Rating: "B", Spread: 0.03, LoanToValue: 0.4},
			PaybackPeriods: []string{"5y", "10y", "15y", "20y", "25y"},
		},
		Yield: YieldConfig{
			Source:          "treasury",
			YahooBaseURL:    "https://query1.finance.yahoo.com",
			TreasuryBaseURL: "https://home.treasury.gov",
			Timeout:         15 * time.Second,
			MaxRetries:      3,
			CacheTTL:        15 * time.Minute,
			Benchmarks: []BenchmarkConfig{
				{Label: "3m", Maturity: 0.25, Ticker: "^IRX", Column: "3 Mo"},
				{Label: "2y", Maturity: 2, Ticker: "^TWO", Column: "2 Yr"},
				{Label: "5y", Maturity: 5, Ticker: "^FVX", Column: "5 Yr"},
				{Label: "10y", Maturity: 10, Ticker: "^TNX", Column: "10 Yr"},
				{Label: "30y", Maturity: 30, Ticker: "^TYX", Column: "30 Yr"},
			},
			DerivedMaturities: []string{"15y", "20y", "25y"},
		},
		Datasets: DatasetConfig{
			RegionsPath:        "./data/RTO_Regions.geojson",
			RegionCodeProperty: "RTO_ISO",
			LocationProperty:   "LOC_ABBREV",
			PostalCodesDir:     "./data/geonames",
			Country:            "US",
			PriceHistoryPath:   "./data/price_history.csv",
		},
		Operating:       OperatingConfig{PriceThreshold: 0},
		LookbackWindows: []string{"6m", "12m", "24m"},
	}
}

// Load reads path over the defaults and validates the result.
// An empty path yields the validated defaults.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// If project_file is set, load it and merge in any explicit overrides from the
	// inline project block. Defaults sit underneath both.
	if c.ProjectFile != "" {
		var inline projectFileWrapper
		if err := yaml.Unmarshal(raw, &inline); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		projectPath := c.ProjectFile
		if !filepath.IsAbs(projectPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), projectPath)
			if _, err := os.Stat(cand); err == nil {
				projectPath = cand
			}
		}
		loaded, err := loadProjectFile(projectPath)
		if err != nil {
			return nil, err
		}
		c.Project = MergeProject(MergeProject(Default().Project, loaded), inline.Project)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Project.BoilerEfficiency <= 0 || c.Project.BoilerEfficiency > 1 {
		return errors.New("project.boiler_efficiency must be in (0, 1]")
	}
	if c.Project.EnergyUnitConversion <= 0 {
		return errors.New("project.energy_unit_conversion must be > 0")
	}
	if len(c.Credit.Tiers) == 0 {
		return errors.New("credit.tiers is required")
	}
	// Better credit must mean a strictly smaller spread and a strictly higher LTV,
	// and the fallback must be the worst step of the ladder.
	ladder := append(append([]model.CreditTier{}, c.Credit.Tiers...), c.Credit.Fallback)
	for i := 1; i < len(ladder); i++ {
		prev, cur := ladder[i-1], ladder[i]
		if cur.Spread <= prev.Spread {
			return fmt.Errorf("credit tier %q: spread must increase down the ladder", cur.Rating)
		}
		if cur.LoanToValue >= prev.LoanToValue {
			return fmt.Errorf("credit tier %q: loan_to_value must decrease down the ladder", cur.Rating)
		}
	}
	for _, p := range c.Credit.PaybackPeriods {
		if _, err := parsePeriod(p, "y"); err != nil {
			return fmt.Errorf("credit.payback_periods: %w", err)
		}
	}
	switch c.Yield.Source {
	case "treasury", "yahoo":
	default:
		return fmt.Errorf("yield.source must be treasury or yahoo, got %q", c.Yield.Source)
	}
	if len(c.Yield.Benchmarks) < 4 {
		return errors.New("yield.benchmarks needs at least 4 points for a cubic fit")
	}
	for _, w := range c.LookbackWindows {
		if _, err := parsePeriod(w, "m"); err != nil {
			return fmt.Errorf("lookback_windows: %w", err)
		}
	}
	if (c.Operating.WindowStart == "") != (c.Operating.WindowEnd == "") {
		return errors.New("operating.window_start and window_end must be set together")
	}
	if c.Datasets.RegionCodeProperty == "" || c.Datasets.LocationProperty == "" {
		return errors.New("datasets region/location property names are required")
	}
	return nil
}

// ToModelParams combines the configured constants with request-level terms.
func (p ProjectConfig) ToModelParams(totalCost, interestRate, loanToValue float64, years int) model.ProjectParameters {
	return model.ProjectParameters{
		FuelPrice:             p.FuelPrice,
		FuelGrowthRate:        p.FuelGrowthRate,
		ElectricityGrowthRate: p.ElectricityGrowthRate,
		SteamDemandMW:         p.SteamDemandMW,
		EnergyUnitConversion:  p.EnergyUnitConversion,
		BoilerEfficiency:      p.BoilerEfficiency,
		TotalProjectCost:      totalCost,
		InterestRate:          interestRate,
		LoanToValue:           loanToValue,
		EquityDiscountRate:    p.EquityDiscountRate,
		PaybackYears:          years,
	}
}

type projectFileWrapper struct {
	Project ProjectConfig `yaml:"project"`
}

func loadProjectFile(path string) (ProjectConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ProjectConfig{}, err
	}
	var w projectFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return ProjectConfig{}, err
	}
	return w.Project, nil
}

// MergeProject overlays non-zero fields from override onto base.
func MergeProject(base, override ProjectConfig) ProjectConfig {
	out := base
	if override.FuelPrice != 0 {
		out.FuelPrice = override.FuelPrice
	}
	// Note: growth rates are allowed to be 0 in theory, but a zero override is read as "unset".
	if override.FuelGrowthRate != 0 {
		out.FuelGrowthRate = override.FuelGrowthRate
	}
	if override.ElectricityGrowthRate != 0 {
		out.ElectricityGrowthRate = override.ElectricityGrowthRate
	}
	if override.SteamDemandMW != 0 {
		out.SteamDemandMW = override.SteamDemandMW
	}
	if override.EnergyUnitConversion != 0 {
		out.EnergyUnitConversion = override.EnergyUnitConversion
	}
	if override.BoilerEfficiency != 0 {
		out.BoilerEfficiency = override.BoilerEfficiency
	}
	if override.EquityDiscountRate != 0 {
		out.EquityDiscountRate = override.EquityDiscountRate
	}
	return out
}

func parsePeriod(label, unit string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(label))
	if !strings.HasSuffix(s, unit) {
		return 0, fmt.Errorf("invalid period %q, expected N%s", label, unit)
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, unit))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid period %q, expected N%s", label, unit)
	}
	return n, nil
}
