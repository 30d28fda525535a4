package evaluation

import (
	"context"
	"fmt"
	"strings"

	"steam-roi/internal/analysis"
	"steam-roi/internal/config"
	"steam-roi/internal/credit"
	"steam-roi/internal/data"
	"steam-roi/internal/dcf"
	"steam-roi/internal/leads"
	"steam-roi/internal/location"
	"steam-roi/internal/logger"
	"steam-roi/internal/model"
)

// Locator maps a postal code to a market region.
type Locator interface {
	ResolveErr(ctx context.Context, postal string) (location.Resolution, error)
}

// History returns the hourly series of one price zone.
type History interface {
	Zone(ctx context.Context, zone string) ([]model.PriceObservation, error)
}

// Financing prices a credit rating over a payback period. PaybackPeriod
// normalizes a label and rejects periods outside the accepted set.
type Financing interface {
	PaybackPeriod(label string) (string, error)
	Resolve(ctx context.Context, rating, payback string) (credit.Assumptions, error)
}

// Service runs one evaluation: region, price history, financing terms, then a
// DCF per lookback window. Accepted evaluations are appended to Leads.
type Service struct {
	Locator   Locator
	History   History
	Financing Financing
	Engine    *dcf.Engine
	Leads     leads.Repository
	Project   config.ProjectConfig
	Windows   []string
}

// Evaluation is the full outcome behind a stored lead.
type Evaluation struct {
	Lead       model.Lead
	Resolution location.Resolution
	Zone       string
	Results    []*dcf.Result
}

func (s *Service) Evaluate(ctx context.Context, in model.EvaluationInputs) (*Evaluation, error) {
	// The period bounds the table length, so it is checked even when the
	// request carries its own financing terms.
	period, err := s.Financing.PaybackPeriod(in.PaybackPeriod)
	if err != nil {
		return nil, err
	}
	in.PaybackPeriod = period
	years, err := credit.ParsePaybackYears(period)
	if err != nil {
		return nil, err
	}
	if in.TotalProjectCost <= 0 {
		return nil, fmt.Errorf("%w: total project cost must be > 0", model.ErrInvalidArgument)
	}

	res, err := s.Locator.ResolveErr(ctx, in.ZipCode)
	if err != nil {
		return nil, err
	}
	zone := data.ZoneFor(res.Location)
	ctx = logger.With(ctx, "zip_code", in.ZipCode, "zone", zone)

	obs, err := s.History.Zone(ctx, zone)
	if err != nil {
		return nil, err
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("%w: no price history for zone %q", model.ErrDataUnavailable, zone)
	}

	rate, ltv, err := s.financing(ctx, in)
	if err != nil {
		return nil, err
	}
	params := s.Project.ToModelParams(in.TotalProjectCost, rate, ltv, years)

	ev := &Evaluation{Resolution: res, Zone: zone}
	lead := model.Lead{
		CompanyName:      in.CompanyName,
		ISORTO:           res.Region,
		ZipCode:          in.ZipCode,
		Location:         res.Location,
		CreditRating:     in.CreditRating,
		TotalProjectCost: in.TotalProjectCost,
		LoanToValue:      ltv,
		InterestRate:     rate,
		AvgPrice:         analysis.MeanPrice(obs),
	}
	for _, w := range s.Windows {
		r, err := s.Engine.Compute(obs, w, params)
		if err != nil {
			return nil, fmt.Errorf("lookback %s: %w", w, err)
		}
		ev.Results = append(ev.Results, r)
		setWindow(&lead, r)
		logger.Debugf(ctx, "[Evaluation] %s: npv=%d irr=%v cf=%.3f", w, r.NPV, r.IRR, r.Window.CapacityFactor)
	}

	if s.Leads != nil {
		lead = s.Leads.Append(lead)
	}
	ev.Lead = lead
	logger.Infof(ctx, "[Evaluation] lead %d for %q in %s/%s", lead.ID, lead.CompanyName, lead.ISORTO, lead.Location)
	return ev, nil
}

// financing returns the request's own terms, resolving whichever is missing
// from the credit ladder.
func (s *Service) financing(ctx context.Context, in model.EvaluationInputs) (rate, ltv float64, err error) {
	if in.InterestRate != nil && in.LoanToValue != nil {
		return *in.InterestRate, *in.LoanToValue, nil
	}
	a, err := s.Financing.Resolve(ctx, in.CreditRating, in.PaybackPeriod)
	if err != nil {
		return 0, 0, err
	}
	rate, ltv = a.InterestRate, a.LoanToValue
	if in.InterestRate != nil {
		rate = *in.InterestRate
	}
	if in.LoanToValue != nil {
		ltv = *in.LoanToValue
	}
	return rate, ltv, nil
}

func setWindow(l *model.Lead, r *dcf.Result) {
	npv := r.NPV
	l.Windows = append(l.Windows, model.WindowResult{
		Lookback:          r.Lookback,
		IRR:               r.IRR,
		NPV:               npv,
		PaybackYears:      r.PaybackYears,
		CapacityFactor:    r.Window.CapacityFactor,
		AvgOperatingPrice: r.Window.AvgOperatingPrice,
	})
	switch strings.ToLower(r.Lookback) {
	case "6m":
		l.IRR6m, l.NPV6m, l.PaybackPeriod6m = r.IRR, &npv, r.PaybackYears
	case "12m":
		l.IRR12m, l.NPV12m, l.PaybackPeriod12m = r.IRR, &npv, r.PaybackYears
	case "24m":
		l.IRR24m, l.NPV24m, l.PaybackPeriod24m = r.IRR, &npv, r.PaybackYears
	}
}
