package convert

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// GridSpec describes how to build the sample grid.
//
// Exactly one mode applies: if Points is non-empty the grid is the supplied
// list, verbatim and in order (irregular mode); otherwise Spacing generates
// a regular lon/lat grid over Bounds, or over the chart's polygon extent
// when Bounds is nil (regular mode).
type GridSpec struct {
	// Points is an externally supplied ordered point list (irregular mode).
	Points []Point

	// Spacing is the step in decimal degrees on both axes (regular mode).
	Spacing float64

	// Bounds limits the regular grid. Nil means infer from the chart.
	Bounds *Bounds
}

// BuildGrid produces the ordered sample point sequence for spec.
//
// Regular grids are row-major with latitude as the outer loop (ascending
// south to north) and longitude inner (ascending west to east); output row
// order depends on this convention, so it is fixed. Both axes include their
// bounds endpoints.
func BuildGrid(spec GridSpec, extent Bounds) ([]Point, error) {
	if len(spec.Points) > 0 {
		return spec.Points, nil
	}

	if spec.Spacing <= 0 {
		return nil, &ErrBadGridSpec{Reason: fmt.Sprintf("spacing must be positive, got %g", spec.Spacing)}
	}
	bounds := extent
	if spec.Bounds != nil {
		bounds = *spec.Bounds
	}
	if bounds.Degenerate() {
		return nil, &ErrBadGridSpec{
			Reason: fmt.Sprintf("degenerate bounds: lon [%g,%g] lat [%g,%g]",
				bounds.MinLon, bounds.MaxLon, bounds.MinLat, bounds.MaxLat),
		}
	}

	lons := regularAxis(bounds.MinLon, bounds.MaxLon, spec.Spacing)
	lats := regularAxis(bounds.MinLat, bounds.MaxLat, spec.Spacing)

	grid := make([]Point, 0, len(lons)*len(lats))
	for _, lat := range lats {
		for _, lon := range lons {
			grid = append(grid, Point{Lon: lon, Lat: lat})
		}
	}
	return grid, nil
}

// regularAxis returns evenly spaced values from min towards max, inclusive
// of max when it is a whole number of steps away (within rounding).
func regularAxis(min, max, spacing float64) []float64 {
	n := int(math.Floor((max-min)/spacing+1e-9)) + 1
	if n < 2 {
		return []float64{min}
	}
	return floats.Span(make([]float64, n), min, min+spacing*float64(n-1))
}

// ReadPointList reads an external grid specification: one point per line,
// longitude then latitude, comma- or whitespace-separated, no header.
// Order is preserved. name is used in error reports only.
func ReadPointList(r io.Reader, name string) ([]Point, error) {
	var points []Point
	scanner := bufio.NewScanner(r)
	row := 0
	for scanner.Scan() {
		row++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
		if len(fields) != 2 {
			return nil, &ErrBadGridSpec{
				Reason: fmt.Sprintf("%s: row %d: want 2 fields (lon, lat), got %d", name, row, len(fields)),
			}
		}
		lon, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, &ErrBadGridSpec{Reason: fmt.Sprintf("%s: row %d: bad longitude %q", name, row, fields[0])}
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, &ErrBadGridSpec{Reason: fmt.Sprintf("%s: row %d: bad latitude %q", name, row, fields[1])}
		}
		if err := ValidateCoordinate(lon, lat); err != nil {
			return nil, &ErrBadGridSpec{Reason: fmt.Sprintf("%s: row %d: %v", name, row, err)}
		}
		points = append(points, Point{Lon: lon, Lat: lat})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading point list %s: %w", name, err)
	}
	if len(points) == 0 {
		return nil, &ErrBadGridSpec{Reason: fmt.Sprintf("%s: empty point list", name)}
	}
	return points, nil
}

// uniformSpacing reports whether ascending axis values are evenly spaced,
// returning the spacing. Tolerance absorbs the fixed-precision coordinate
// formatting of dex files.
func uniformSpacing(axis []float64) (float64, bool) {
	if len(axis) < 2 {
		return 0, false
	}
	diffs := make([]float64, len(axis)-1)
	ref := make([]float64, len(axis)-1)
	step := (axis[len(axis)-1] - axis[0]) / float64(len(axis)-1)
	for i := 1; i < len(axis); i++ {
		diffs[i-1] = axis[i] - axis[i-1]
		ref[i-1] = step
	}
	if !floats.EqualApprox(diffs, ref, 1e-6) {
		return 0, false
	}
	return step, true
}
