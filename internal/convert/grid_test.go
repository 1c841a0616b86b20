package convert

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// TestBuildGridRegular tests the documented regular-grid convention:
// 0.5° spacing over lon [-65,-64], lat [48,49] yields exactly 9 points,
// latitude outer loop ascending, longitude inner ascending.
func TestBuildGridRegular(t *testing.T) {
	spec := GridSpec{
		Spacing: 0.5,
		Bounds:  &Bounds{MinLon: -65, MaxLon: -64, MinLat: 48, MaxLat: 49},
	}
	grid, err := BuildGrid(spec, Bounds{})
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}
	if len(grid) != 9 {
		t.Fatalf("Expected 9 points, got %d", len(grid))
	}

	want := []Point{
		{-65, 48}, {-64.5, 48}, {-64, 48},
		{-65, 48.5}, {-64.5, 48.5}, {-64, 48.5},
		{-65, 49}, {-64.5, 49}, {-64, 49},
	}
	for i := range want {
		if math.Abs(grid[i].Lon-want[i].Lon) > 1e-9 || math.Abs(grid[i].Lat-want[i].Lat) > 1e-9 {
			t.Errorf("grid[%d] = %v, want %v", i, grid[i], want[i])
		}
	}
}

// TestBuildGridInferredBounds tests falling back to the chart extent when
// no bounds are specified.
func TestBuildGridInferredBounds(t *testing.T) {
	extent := Bounds{MinLon: -62, MaxLon: -61, MinLat: 46, MaxLat: 47}
	grid, err := BuildGrid(GridSpec{Spacing: 1.0}, extent)
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}
	if len(grid) != 4 {
		t.Fatalf("Expected 4 points, got %d", len(grid))
	}
}

// TestBuildGridIrregular tests that a supplied point list is used verbatim.
func TestBuildGridIrregular(t *testing.T) {
	points := []Point{{-60.0, 48.0}, {-71.26, 51.89}, {-60.0, 48.0}}
	grid, err := BuildGrid(GridSpec{Points: points}, Bounds{})
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}
	if len(grid) != len(points) {
		t.Fatalf("Expected %d points, got %d", len(points), len(grid))
	}
	for i := range points {
		if grid[i] != points[i] {
			t.Errorf("grid[%d] = %v, want %v (order not preserved)", i, grid[i], points[i])
		}
	}
}

// TestBuildGridBadSpec tests configuration failures.
func TestBuildGridBadSpec(t *testing.T) {
	tests := []struct {
		name string
		spec GridSpec
	}{
		{"zero spacing", GridSpec{Spacing: 0, Bounds: &Bounds{MinLon: -65, MaxLon: -64, MinLat: 48, MaxLat: 49}}},
		{"negative spacing", GridSpec{Spacing: -0.5, Bounds: &Bounds{MinLon: -65, MaxLon: -64, MinLat: 48, MaxLat: 49}}},
		{"degenerate lon bounds", GridSpec{Spacing: 0.5, Bounds: &Bounds{MinLon: -64, MaxLon: -65, MinLat: 48, MaxLat: 49}}},
		{"degenerate lat bounds", GridSpec{Spacing: 0.5, Bounds: &Bounds{MinLon: -65, MaxLon: -64, MinLat: 49, MaxLat: 49}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildGrid(tt.spec, Bounds{})
			var cfgErr *ErrBadGridSpec
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected ErrBadGridSpec, got %v", err)
			}
		})
	}
}

// TestReadPointList tests the external two-column grid file format, comma
// and whitespace separated.
func TestReadPointList(t *testing.T) {
	input := `-71.2633744816721,51.8870744481099
-71.1651234450164,51.8870744481099

-71.0668724083606 51.8870744481099
`
	points, err := ReadPointList(strings.NewReader(input), "grid.csv")
	if err != nil {
		t.Fatalf("ReadPointList failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(points))
	}
	if points[0].Lon != -71.2633744816721 || points[0].Lat != 51.8870744481099 {
		t.Errorf("points[0] = %v", points[0])
	}
}

// TestReadPointListErrors tests malformed point list rows.
func TestReadPointListErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"wrong field count", "-71.26,51.88,3\n"},
		{"bad longitude", "west,51.88\n"},
		{"out of range", "-200.0,51.88\n"},
		{"empty file", "\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPointList(strings.NewReader(tt.input), "grid.csv")
			var cfgErr *ErrBadGridSpec
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected ErrBadGridSpec, got %v", err)
			}
		})
	}
}

// TestUniformSpacing tests the axis regularity check used for raster
// detection.
func TestUniformSpacing(t *testing.T) {
	if step, ok := uniformSpacing([]float64{48, 48.5, 49, 49.5}); !ok || math.Abs(step-0.5) > 1e-9 {
		t.Errorf("uniformSpacing(regular) = %v, %v", step, ok)
	}
	if _, ok := uniformSpacing([]float64{48, 48.5, 50}); ok {
		t.Error("uniformSpacing accepted irregular axis")
	}
	if _, ok := uniformSpacing([]float64{48}); ok {
		t.Error("uniformSpacing accepted single-value axis")
	}
}
