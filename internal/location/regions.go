package location

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"

	"steam-roi/internal/logger"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Region is one market sub-region boundary.
type Region struct {
	Code     string // RTO/ISO, e.g. "CAISO"
	Location string // sub-location, e.g. "SP-15"
	Geometry orb.Geometry
}

// RegionSet is the static boundary dataset, read once from a GeoJSON file.
type RegionSet struct {
	path         string
	codeProp     string
	locationProp string

	once    sync.Once
	regions []Region
	err     error
}

func NewRegionSet(path, codeProp, locationProp string) *RegionSet {
	return &RegionSet{path: path, codeProp: codeProp, locationProp: locationProp}
}

// Regions returns the valid polygons of the dataset in file order. Features
// that are not (multi)polygons or fail validity checks are skipped.
func (s *RegionSet) Regions(ctx context.Context) ([]Region, error) {
	s.once.Do(func() {
		s.regions, s.err = s.load(ctx)
	})
	return s.regions, s.err
}

func (s *RegionSet) load(ctx context.Context) ([]Region, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read regions file: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regions file: %w", err)
	}

	out := make([]Region, 0, len(fc.Features))
	skipped := 0
	for _, f := range fc.Features {
		if !validArea(f.Geometry) {
			skipped++
			continue
		}
		out = append(out, Region{
			Code:     f.Properties.MustString(s.codeProp, ""),
			Location: f.Properties.MustString(s.locationProp, ""),
			Geometry: f.Geometry,
		})
	}
	logger.Infof(ctx, "[Regions] loaded %d regions from %s (%d skipped)", len(out), s.path, skipped)
	return out, nil
}

// Locate returns the first region containing p. When none does, it returns
// the region closest to p and nearest=true. ok is false only for an empty set.
func Locate(regions []Region, p orb.Point) (r Region, nearest bool, ok bool) {
	for _, reg := range regions {
		if contains(reg.Geometry, p) {
			return reg, false, true
		}
	}

	best, bestDist := -1, math.Inf(1)
	for i, reg := range regions {
		if d := planar.DistanceFrom(reg.Geometry, p); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Region{}, false, false
	}
	return regions[best], true, true
}

func contains(g orb.Geometry, p orb.Point) bool {
	switch geom := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, p)
	}
	return false
}

// validArea accepts polygons whose rings are closed, have at least four
// points, and enclose a non-zero area.
func validArea(g orb.Geometry) bool {
	var polys []orb.Polygon
	switch geom := g.(type) {
	case orb.Polygon:
		polys = []orb.Polygon{geom}
	case orb.MultiPolygon:
		polys = geom
	default:
		return false
	}
	if len(polys) == 0 {
		return false
	}
	for _, poly := range polys {
		if len(poly) == 0 {
			return false
		}
		for _, ring := range poly {
			if len(ring) < 4 || !ring.Closed() {
				return false
			}
		}
		if planar.Area(poly) == 0 {
			return false
		}
	}
	return true
}
