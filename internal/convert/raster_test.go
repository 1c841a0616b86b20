package convert

import (
	"math"
	"strings"
	"testing"
)

// TestNumericConversions tests the token-to-number mappings used by the
// raster view.
func TestNumericConversions(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) float64
		tok  string
		want float64
	}{
		{"concentration digit", NumericConcentration, "7", 7},
		{"concentration 9+", NumericConcentration, "9+", 9.9},
		{"concentration 10", NumericConcentration, "10", 10},
		{"stage digit", NumericStage, "6", 6},
		{"stage dotted 1.", NumericStage, "1.", 10},
		{"stage dotted 4.", NumericStage, "4.", 40},
		{"stage dotted 9.", NumericStage, "9.", 90},
		{"form digit", NumericForm, "5", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.tok); got != tt.want {
				t.Errorf("Got %v, want %v", got, tt.want)
			}
		})
	}

	nanCases := []struct {
		name string
		fn   func(string) float64
		tok  string
	}{
		{"concentration sentinel", NumericConcentration, Sentinel},
		{"concentration IF", NumericConcentration, TokenIceFree},
		{"concentration missing", NumericConcentration, TokenMissing},
		{"stage L", NumericStage, "L"},
		{"stage sentinel", NumericStage, Sentinel},
		{"form Pa", NumericForm, "Pa"},
		{"form S", NumericForm, "S"},
	}
	for _, tt := range nanCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.tok); !math.IsNaN(got) {
				t.Errorf("Got %v, want NaN", got)
			}
		})
	}
}

// TestFlag tests the CT-derived data-type channel.
func TestFlag(t *testing.T) {
	tests := []struct {
		kind PolyKind
		want float64
	}{
		{KindEgg, FlagIce},
		{KindIceFree, FlagIceFree},
		{KindNoData, FlagMissing},
		{KindFastIce, FlagFastIce},
		{KindLand, FlagLand},
	}
	for _, tt := range tests {
		rec := PointRecord{Egg: Egg{Kind: tt.kind}}
		if got := Flag(rec); got != tt.want {
			t.Errorf("Flag(%v) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

// gridDex builds a 2x2 regular-grid dex body with one ice cell.
const gridDex = `65.00 48.00 9+ 9 8 Pa X X X X X X
64.50 48.00 IF X X X X X X X X X
65.00 48.50 X X X X X X X X X X
64.50 48.50 missing X X X X X X X X X
`

// TestBuildDatasetRaster tests the flat-to-grid reshape on a regular grid.
func TestBuildDatasetRaster(t *testing.T) {
	records, err := ParseDex(strings.NewReader(gridDex), "GEC_H_20190325.dex")
	if err != nil {
		t.Fatalf("ParseDex failed: %v", err)
	}
	ds := BuildDataset("GEC_H_20190325.dex", records)

	if ds.Date != "20190325" {
		t.Errorf("Date = %q, want 20190325", ds.Date)
	}
	if len(ds.Points) != 4 {
		t.Errorf("Points = %d, want 4", len(ds.Points))
	}
	if ds.Raster == nil {
		t.Fatal("Expected a raster for a regular 2x2 grid")
	}

	r := ds.Raster
	wantLons := []float64{-65.0, -64.5}
	wantLats := []float64{48.0, 48.5}
	for i, lon := range wantLons {
		if r.Lons[i] != lon {
			t.Errorf("Lons[%d] = %v, want %v", i, r.Lons[i], lon)
		}
	}
	for i, lat := range wantLats {
		if r.Lats[i] != lat {
			t.Errorf("Lats[%d] = %v, want %v", i, r.Lats[i], lat)
		}
	}

	// Ice cell at lat 48.0, lon -65.0.
	if got := r.At("CT", 0, 0); got != 9.9 {
		t.Errorf("CT[0,0] = %v, want 9.9", got)
	}
	if got := r.At("CA", 0, 0); got != 9 {
		t.Errorf("CA[0,0] = %v, want 9", got)
	}
	if got := r.At("SA", 0, 0); got != 8 {
		t.Errorf("SA[0,0] = %v, want 8", got)
	}
	if got := r.At("FA", 0, 0); !math.IsNaN(got) {
		t.Errorf("FA[0,0] = %v, want NaN for form Pa", got)
	}

	flags := []struct {
		lat, lon int
		want     float64
	}{
		{0, 0, FlagIce},
		{0, 1, FlagIceFree},
		{1, 0, FlagLand},
		{1, 1, FlagMissing},
	}
	for _, f := range flags {
		if got := r.At("flag", f.lat, f.lon); got != f.want {
			t.Errorf("flag[%d,%d] = %v, want %v", f.lat, f.lon, got, f.want)
		}
	}
}

// TestBuildDatasetFlat tests the fallback when points do not form a grid.
func TestBuildDatasetFlat(t *testing.T) {
	tests := []struct {
		name string
		dex  string
	}{
		{
			"too few points",
			"65.00 48.00 IF\n64.50 48.00 IF\n",
		},
		{
			"incomplete grid",
			"65.00 48.00 IF\n64.50 48.00 IF\n65.00 48.50 IF\n64.50 48.50 IF\n64.00 49.00 IF\n",
		},
		{
			"irregular axis",
			"65.00 48.00 IF\n64.50 48.00 IF\n64.30 48.00 IF\n" +
				"65.00 48.50 IF\n64.50 48.50 IF\n64.30 48.50 IF\n",
		},
		{
			"duplicate point",
			"65.00 48.00 IF\n65.00 48.00 IF\n65.00 48.50 IF\n64.50 48.50 IF\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseDex(strings.NewReader(tt.dex), "flat.dex")
			if err != nil {
				t.Fatalf("ParseDex failed: %v", err)
			}
			ds := BuildDataset("flat.dex", records)
			if ds.Raster != nil {
				t.Error("Expected flat dataset, got a raster")
			}
			if len(ds.Points) != len(records) {
				t.Errorf("Points = %d, want %d", len(ds.Points), len(records))
			}
		})
	}
}
