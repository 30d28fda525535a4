package marketdata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"steam-roi/internal/logger"
	"steam-roi/internal/model"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultTreasuryBaseURL = "https://home.treasury.gov"
	treasuryTextViewPath   = "/resource-center/data-chart-center/interest-rates/TextView"
	treasuryDateLayout     = "01/02/2006"
)

var errNoTreasuryRows = errors.New("no yield rows in table")

// TreasurySource scrapes the daily par yield curve published on treasury.gov.
// Rates are quoted in percent; the most recent row of the month is used.
type TreasurySource struct {
	baseURL    string
	benchmarks []Benchmark
	fetch      *fetcher
	now        func() time.Time
}

func NewTreasurySource(benchmarks []Benchmark, opts Options) *TreasurySource {
	base := opts.BaseURL
	if base == "" {
		base = defaultTreasuryBaseURL
	}
	return &TreasurySource{
		baseURL:    base,
		benchmarks: benchmarks,
		fetch:      newFetcher("Treasury", opts),
		now:        time.Now,
	}
}

func (s *TreasurySource) Name() string { return "treasury" }

// Benchmarks reads the current month's table, falling back to the previous
// month early in a month before the first publication.
func (s *TreasurySource) Benchmarks(ctx context.Context) ([]model.YieldCurvePoint, error) {
	month := s.now()
	row, err := s.latestRow(ctx, month)
	if errors.Is(err, errNoTreasuryRows) {
		prev := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location()).AddDate(0, -1, 0)
		logger.Infof(ctx, "[Treasury] no rows for %s, trying %s", month.Format("200601"), prev.Format("200601"))
		row, err = s.latestRow(ctx, prev)
	}
	if err != nil {
		return nil, err
	}

	points := make([]model.YieldCurvePoint, 0, len(s.benchmarks))
	for _, b := range s.benchmarks {
		pt := model.YieldCurvePoint{Label: b.Label, Maturity: b.Maturity}
		if v, ok := row.values[b.Column]; ok {
			pt.Rate = ratePtr(v / 100)
		} else {
			logger.Warnf(ctx, "[Treasury] %s (%q) unavailable on %s", b.Label, b.Column, row.date.Format("2006-01-02"))
		}
		points = append(points, pt)
	}
	return points, nil
}

type treasuryRow struct {
	date   time.Time
	values map[string]float64
}

func (s *TreasurySource) latestRow(ctx context.Context, month time.Time) (treasuryRow, error) {
	u := fmt.Sprintf("%s%s?type=daily_treasury_yield_curve&field_tdr_date_value_month=%s",
		s.baseURL, treasuryTextViewPath, month.Format("200601"))
	raw, err := s.fetch.get(ctx, u, map[string]string{"Accept": "text/html"})
	if err != nil {
		return treasuryRow{}, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return treasuryRow{}, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}
	return parseTreasuryTable(doc)
}

// parseTreasuryTable returns the row with the latest date. Cells that are
// blank or "N/A" are left out of the row's values.
func parseTreasuryTable(doc *goquery.Document) (treasuryRow, error) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return treasuryRow{}, errNoTreasuryRows
	}

	var headers []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, normalizeHeader(th.Text()))
	})
	if len(headers) == 0 {
		return treasuryRow{}, errors.New("yield table has no header")
	}

	var latest treasuryRow
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		row := treasuryRow{values: make(map[string]float64)}
		cells.Each(func(i int, td *goquery.Selection) {
			if i >= len(headers) {
				return
			}
			text := strings.TrimSpace(td.Text())
			if headers[i] == "Date" {
				if d, err := time.Parse(treasuryDateLayout, text); err == nil {
					row.date = d
				}
				return
			}
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				row.values[headers[i]] = v
			}
		})
		if row.date.IsZero() {
			return
		}
		if latest.date.IsZero() || row.date.After(latest.date) {
			latest = row
		}
	})
	if latest.date.IsZero() {
		return treasuryRow{}, errNoTreasuryRows
	}
	return latest, nil
}

func normalizeHeader(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
