package location

import (
	"context"
	"errors"
	"testing"

	"steam-roi/internal/model"

	"github.com/paulmach/orb"
)

func newTestResolver() *Resolver {
	return NewResolver(
		NewGeocoder("testdata"),
		NewRegionSet("testdata/regions.geojson", "RTO_ISO", "LOC_ABBREV"),
		"US",
	)
}

func TestResolveInsidePolygon(t *testing.T) {
	r := newTestResolver()
	tests := []struct {
		postal   string
		location string
	}{
		{"90210", "SP-15"},
		{"90210-1234", "SP-15"},
		{" 94105 ", "NP-15"},
	}
	for _, tt := range tests {
		got := r.Resolve(context.Background(), tt.postal)
		if !got.Resolved {
			t.Fatalf("Resolve(%q) unresolved", tt.postal)
		}
		if got.Region != "CAISO" || got.Location != tt.location || got.Nearest {
			t.Errorf("Resolve(%q) = %+v, want CAISO/%s inside", tt.postal, got, tt.location)
		}
	}
}

func TestResolveGapUsesNearest(t *testing.T) {
	got := newTestResolver().Resolve(context.Background(), "93650")
	if !got.Resolved || !got.Nearest {
		t.Fatalf("Resolve(93650) = %+v, want nearest match", got)
	}
	if got.Location != "NP-15" {
		t.Errorf("Location = %q, want NP-15", got.Location)
	}
}

func TestResolveSkipsInvalidPolygon(t *testing.T) {
	got := newTestResolver().Resolve(context.Background(), "10001")
	if !got.Resolved {
		t.Fatal("expected a nearest-polygon match")
	}
	if got.Region == "PJM" {
		t.Errorf("matched the unclosed PJM ring")
	}
	if !got.Nearest {
		t.Errorf("Nearest = false, want true")
	}
}

func TestResolveUnknownPostal(t *testing.T) {
	r := newTestResolver()
	for _, postal := range []string{"99999", "", "00000"} {
		if got := r.Resolve(context.Background(), postal); got.Resolved {
			t.Errorf("Resolve(%q) = %+v, want unresolved", postal, got)
		}
	}
	if _, err := r.ResolveErr(context.Background(), "99999"); !errors.Is(err, model.ErrUnresolved) {
		t.Errorf("ResolveErr error = %v, want ErrUnresolved", err)
	}
}

func TestResolveMissingDatasets(t *testing.T) {
	r := NewResolver(NewGeocoder("testdata/missing"), NewRegionSet("testdata/regions.geojson", "RTO_ISO", "LOC_ABBREV"), "US")
	if got := r.Resolve(context.Background(), "90210"); got.Resolved {
		t.Errorf("missing postal table: got %+v", got)
	}

	r = NewResolver(NewGeocoder("testdata"), NewRegionSet("testdata/missing.geojson", "RTO_ISO", "LOC_ABBREV"), "US")
	if got := r.Resolve(context.Background(), "90210"); got.Resolved {
		t.Errorf("missing regions file: got %+v", got)
	}
}

func TestLocateEmpty(t *testing.T) {
	if _, _, ok := Locate(nil, orb.Point{-118, 34}); ok {
		t.Error("Locate on empty set should fail")
	}
}

func TestRegionSetSkipsInvalid(t *testing.T) {
	regions, err := NewRegionSet("testdata/regions.geojson", "RTO_ISO", "LOC_ABBREV").Regions(context.Background())
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("len(regions) = %d, want 2", len(regions))
	}
	if regions[0].Location != "SP-15" || regions[1].Location != "NP-15" {
		t.Errorf("regions = %+v", regions)
	}
}
