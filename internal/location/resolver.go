package location

import (
	"context"
	"fmt"

	"steam-roi/internal/logger"
	"steam-roi/internal/model"

	"github.com/paulmach/orb"
)

// Resolution is the outcome of resolving a postal code. The zero value means
// unresolved.
type Resolution struct {
	Resolved bool
	Region   string    // RTO/ISO code
	Location string    // sub-location code
	Point    orb.Point // lon, lat of the postal code
	Nearest  bool      // true when no polygon contained the point
}

// Resolver maps postal codes to market regions.
type Resolver struct {
	geocoder *Geocoder
	regions  *RegionSet
	country  string
}

func NewResolver(geocoder *Geocoder, regions *RegionSet, country string) *Resolver {
	if country == "" {
		country = "US"
	}
	return &Resolver{geocoder: geocoder, regions: regions, country: country}
}

// Resolve never fails: lookup or dataset problems are logged and reported as
// an unresolved result.
func (r *Resolver) Resolve(ctx context.Context, postal string) Resolution {
	pc, ok, err := r.geocoder.Lookup(ctx, r.country, postal)
	if err != nil {
		logger.Warnf(ctx, "[Location] geocode %q: %v", postal, err)
		return Resolution{}
	}
	if !ok {
		logger.Debugf(ctx, "[Location] postal code %q not found", postal)
		return Resolution{}
	}

	regions, err := r.regions.Regions(ctx)
	if err != nil {
		logger.Warnf(ctx, "[Location] regions: %v", err)
		return Resolution{}
	}
	region, nearest, ok := Locate(regions, pc.Point)
	if !ok {
		return Resolution{}
	}
	return Resolution{
		Resolved: true,
		Region:   region.Code,
		Location: region.Location,
		Point:    pc.Point,
		Nearest:  nearest,
	}
}

// ResolveErr is Resolve for callers that want an error; unresolved codes wrap
// model.ErrUnresolved.
func (r *Resolver) ResolveErr(ctx context.Context, postal string) (Resolution, error) {
	res := r.Resolve(ctx, postal)
	if !res.Resolved {
		return res, fmt.Errorf("%w: postal code %q", model.ErrUnresolved, postal)
	}
	return res, nil
}
