package dcf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"steam-roi/internal/analysis"
	"steam-roi/internal/data"
	"steam-roi/internal/model"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
)

// DaysPerMonth approximates a lookback month; "6m" is 180 days.
const DaysPerMonth = 30

// MaxLookbackMonths caps lookback labels at 100 years.
const MaxLookbackMonths = 1200

type Engine struct {
	Now func() time.Time
}

func New() *Engine { return &Engine{Now: time.Now} }

// Result of one DCF computation. IRR is nil when no real rate solves the
// cash flows.
type Result struct {
	Lookback     string
	Window       analysis.WindowStats
	Table        *CashFlowTable
	NPV          int64
	IRR          *float64
	PaybackYears *float64
}

// ParseLookback converts "6m" to its trailing duration (N * 30 days).
func ParseLookback(label string) (time.Duration, error) {
	s := strings.ToLower(strings.TrimSpace(label))
	if !strings.HasSuffix(s, "m") {
		return 0, fmt.Errorf("%w: lookback %q, expected Nm", model.ErrInvalidArgument, label)
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, "m"))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: lookback %q, expected Nm", model.ErrInvalidArgument, label)
	}
	if n > MaxLookbackMonths {
		return 0, fmt.Errorf("%w: lookback %q exceeds %dm", model.ErrInvalidArgument, label, MaxLookbackMonths)
	}
	return time.Duration(n*DaysPerMonth) * 24 * time.Hour, nil
}

// Compute filters obs (one zone) to the trailing lookback window and runs the
// cash flow model over it.
func (e *Engine) Compute(obs []model.PriceObservation, lookback string, params model.ProjectParameters) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	span, err := ParseLookback(lookback)
	if err != nil {
		return nil, err
	}

	now := e.now()
	window := data.Window(obs, now.Add(-span), now)
	if len(window) == 0 {
		return nil, fmt.Errorf("%w: no price observations in the last %s", model.ErrDataUnavailable, lookback)
	}
	stats := analysis.ComputeWindowStats(window)
	if !stats.HasOperating() {
		return nil, fmt.Errorf("%w: no operating hours in the last %s", model.ErrDataUnavailable, lookback)
	}

	table := BuildTable(stats.CapacityFactor, stats.AvgOperatingPrice, params)
	total := floats.Sum(table.PresentValues())
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w: present value is not finite", model.ErrDataUnavailable)
	}

	res := &Result{
		Lookback:     lookback,
		Window:       stats,
		Table:        table,
		NPV:          decimal.NewFromFloat(total).Truncate(0).IntPart(),
		PaybackYears: PaybackPeriod(table.CashFlows()),
	}
	if raw, ok := IRR(table.CashFlows()); ok {
		irr := -raw
		res.IRR = &irr
	}
	return res, nil
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
