package data

import (
	"bufio"
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
	"time"

	"steam-roi/internal/logger"
	"steam-roi/internal/model"
	"steam-roi/internal/strategy"

	"github.com/shopspring/decimal"
)

// CAISO real-time zonal LMP exports carry a short preamble before the header.
const caisoPreambleLines = 3

// DefaultCAISOZones are the trading hub zones kept from each export.
var DefaultCAISOZones = []string{"NP-15 LMP", "SP-15 LMP", "ZP-26 LMP"}

var caisoDateLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006"}

// Ingestor compiles raw 15-minute CAISO exports into the hourly history.
type Ingestor struct {
	Rule  strategy.Rule
	Zones []string // defaults to DefaultCAISOZones
	// OnFile, when set, is called after each file with the hourly rows it produced.
	OnFile func(path string, rows int, err error)
}

// Glob lists caiso_lmp_rt_15min_zones_*.csv files in dir, sorted by name.
func Glob(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "caiso_lmp_rt_15min_zones_*.csv"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// Compile reads every file, averages to hourly prices rounded to cents,
// tags each row with the rule and returns the long-format series sorted by
// (time, zone). Files that fail are logged and skipped; if all fail the
// error is returned.
func (in *Ingestor) Compile(ctx context.Context, paths []string) ([]model.PriceObservation, error) {
	if in.Rule == nil {
		return nil, errors.New("ingestor needs an operating rule")
	}
	zones := in.Zones
	if len(zones) == 0 {
		zones = DefaultCAISOZones
	}

	var (
		out     []model.PriceObservation
		lastErr error
		ok      int
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := readCAISOFile(path, zones)
		if in.OnFile != nil {
			in.OnFile(path, len(rows), err)
		}
		if err != nil {
			logger.Warnf(ctx, "[Ingest] error reading %s: %v", path, err)
			lastErr = err
			continue
		}
		ok++
		out = append(out, rows...)
	}
	if ok == 0 && lastErr != nil {
		return nil, lastErr
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Time.Equal(out[j].Time) {
			return out[i].Time.Before(out[j].Time)
		}
		return out[i].Zone < out[j].Zone
	})
	return strategy.Apply(in.Rule, out), nil
}

type hourBucket struct {
	sum   float64
	count int
}

func readCAISOFile(path string, zones []string) ([]model.PriceObservation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	for i := 0; i < caisoPreambleLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			return nil, fmt.Errorf("short preamble: %w", err)
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	dateCol, okDate := idx["Local Date"]
	hourCol, okHour := idx["Hour Number"]
	if !okDate || !okHour {
		return nil, errors.New(`missing "Local Date" or "Hour Number" column`)
	}
	zoneCols := make([]int, len(zones))
	for i, z := range zones {
		c, ok := idx[z]
		if !ok {
			return nil, fmt.Errorf("missing zone column %q", z)
		}
		zoneCols[i] = c
	}

	// hour -> zone index -> bucket
	buckets := map[time.Time][]hourBucket{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) <= dateCol || len(rec) <= hourCol {
			continue
		}
		day, err := parseCAISODate(rec[dateCol])
		if err != nil {
			return nil, err
		}
		hourNum, err := strconv.Atoi(strings.TrimSpace(rec[hourCol]))
		if err != nil {
			return nil, fmt.Errorf("invalid hour number %q", rec[hourCol])
		}
		ts := day.Add(time.Duration(hourNum-1) * time.Hour)

		b, ok := buckets[ts]
		if !ok {
			b = make([]hourBucket, len(zones))
			buckets[ts] = b
		}
		for i, c := range zoneCols {
			if c >= len(rec) {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[c]), 64)
			if err != nil {
				continue
			}
			b[i].sum += v
			b[i].count++
		}
	}

	out := make([]model.PriceObservation, 0, len(buckets)*len(zones))
	for ts, b := range buckets {
		for i, z := range zones {
			if b[i].count == 0 {
				continue
			}
			mean, _ := decimal.NewFromFloat(b[i].sum / float64(b[i].count)).Round(2).Float64()
			out = append(out, model.PriceObservation{Time: ts, Zone: z, Price: mean})
		}
	}
	return out, nil
}

func parseCAISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range caisoDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid local date %q", s)
}
