package location

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"steam-roi/internal/logger"

	"github.com/paulmach/orb"
)

// GeoNames postal code dump columns (https://download.geonames.org/export/zip/).
const (
	colCountry    = 0
	colPostalCode = 1
	colPlaceName  = 2
	colLatitude   = 9
	colLongitude  = 10
	minColumns    = 11
)

// PostalCode is one geocoded row of the postal table.
type PostalCode struct {
	Country    string
	PostalCode string
	PlaceName  string
	Point      orb.Point // lon, lat
}

// Geocoder looks postal codes up in per-country GeoNames tables found in dir
// (US.txt, CA.txt, ...). Each table is read once on first use.
type Geocoder struct {
	dir string

	mu     sync.Mutex
	tables map[string]map[string]PostalCode
}

func NewGeocoder(dir string) *Geocoder {
	return &Geocoder{dir: dir, tables: make(map[string]map[string]PostalCode)}
}

// Lookup returns the coordinates of postal in country. ok is false when the
// code is not in the table.
func (g *Geocoder) Lookup(ctx context.Context, country, postal string) (PostalCode, bool, error) {
	country = strings.ToUpper(strings.TrimSpace(country))
	table, err := g.table(ctx, country)
	if err != nil {
		return PostalCode{}, false, err
	}
	pc, ok := table[normalizePostal(country, postal)]
	return pc, ok, nil
}

func (g *Geocoder) table(ctx context.Context, country string) (map[string]PostalCode, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if t, ok := g.tables[country]; ok {
		return t, nil
	}
	path := filepath.Join(g.dir, country+".txt")
	t, err := loadPostalTable(path)
	if err != nil {
		return nil, err
	}
	logger.Infof(ctx, "[Geocoder] loaded %d postal codes for %s from %s", len(t), country, path)
	g.tables[country] = t
	return t, nil
}

func loadPostalTable(path string) (map[string]PostalCode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open postal table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	out := make(map[string]PostalCode)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read postal table %s: %w", path, err)
		}
		if len(rec) < minColumns {
			continue
		}
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(rec[colLatitude]), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(rec[colLongitude]), 64)
		if errLat != nil || errLon != nil {
			continue
		}
		country := strings.ToUpper(strings.TrimSpace(rec[colCountry]))
		code := normalizePostal(country, rec[colPostalCode])
		if _, dup := out[code]; dup {
			continue
		}
		out[code] = PostalCode{
			Country:    country,
			PostalCode: code,
			PlaceName:  rec[colPlaceName],
			Point:      orb.Point{lon, lat},
		}
	}
	return out, nil
}

// normalizePostal trims whitespace, upper-cases and cuts US ZIP+4 down to
// the five-digit ZIP.
func normalizePostal(country, postal string) string {
	s := strings.ToUpper(strings.TrimSpace(postal))
	if country == "US" {
		if i := strings.IndexByte(s, '-'); i >= 0 {
			s = s[:i]
		}
		if len(s) > 5 {
			s = s[:5]
		}
	}
	return s
}
