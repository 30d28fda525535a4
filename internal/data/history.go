package data

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"steam-roi/internal/logger"
	"steam-roi/internal/model"
)

var historyHeader = []string{"datetime", "zone", "price", "operate"}

// Accepted datetime layouts, tried in order. Naive timestamps are read as UTC.
var historyTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// Store serves the precomputed hourly price history. The backing file is read
// once; later calls share the parsed series.
type Store struct {
	path string

	once   sync.Once
	series []model.PriceObservation
	err    error
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the full series ordered by time. Callers must not modify it.
func (s *Store) Load(ctx context.Context) ([]model.PriceObservation, error) {
	s.once.Do(func() {
		s.series, s.err = LoadPriceHistory(s.path)
		if s.err == nil {
			logger.Infof(ctx, "[History] loaded %d observations from %s", len(s.series), s.path)
		}
	})
	if s.err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrDataUnavailable, s.err)
	}
	return s.series, nil
}

// Zone loads the series and keeps the rows of zone.
func (s *Store) Zone(ctx context.Context, zone string) ([]model.PriceObservation, error) {
	series, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return FilterZone(series, zone), nil
}

func LoadPriceHistory(path string) ([]model.PriceObservation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price history: %w", err)
	}
	defer f.Close()
	return ReadPriceHistory(f)
}

// ReadPriceHistory parses datetime,zone,price,operate rows and sorts them by
// time (stable, so zone order within an hour is kept).
func ReadPriceHistory(r io.Reader) ([]model.PriceObservation, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range historyHeader {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("price history is missing column %q", col)
		}
	}

	var out []model.PriceObservation
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ts, err := parseHistoryTime(rec[idx["datetime"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(rec[idx["price"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid price: %w", line, err)
		}
		operate, err := strconv.ParseBool(strings.TrimSpace(rec[idx["operate"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid operate flag: %w", line, err)
		}
		out = append(out, model.PriceObservation{
			Time:    ts,
			Zone:    strings.TrimSpace(rec[idx["zone"]]),
			Price:   price,
			Operate: operate,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

func parseHistoryTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range historyTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q", s)
}

// SavePriceHistory writes obs as CSV, creating the parent directory.
func SavePriceHistory(path string, obs []model.PriceObservation) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WritePriceHistory(f, obs); err != nil {
		return fmt.Errorf("failed to write price history: %w", err)
	}
	return f.Close()
}

func WritePriceHistory(w io.Writer, obs []model.PriceObservation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(historyHeader); err != nil {
		return err
	}
	for _, o := range obs {
		row := []string{
			o.Time.Format("2006-01-02 15:04:05"),
			o.Zone,
			strconv.FormatFloat(o.Price, 'f', -1, 64),
			strconv.FormatBool(o.Operate),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ZoneFor maps a region sub-location ("SP-15") to its price zone ("SP-15 LMP").
func ZoneFor(location string) string {
	return strings.TrimSpace(location) + " LMP"
}

func FilterZone(series []model.PriceObservation, zone string) []model.PriceObservation {
	var out []model.PriceObservation
	for _, o := range series {
		if o.Zone == zone {
			out = append(out, o)
		}
	}
	return out
}

// Window keeps observations with from <= Time <= to.
func Window(series []model.PriceObservation, from, to time.Time) []model.PriceObservation {
	var out []model.PriceObservation
	for _, o := range series {
		if o.Time.Before(from) || o.Time.After(to) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// GroupByZone splits a series into zone-keyed slices.
func GroupByZone(series []model.PriceObservation) map[string][]model.PriceObservation {
	out := map[string][]model.PriceObservation{}
	for _, o := range series {
		out[o.Zone] = append(out[o.Zone], o)
	}
	return out
}
