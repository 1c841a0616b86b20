package convert

import (
	"strconv"
	"strings"
)

// Dex rows have 12 space-separated fields:
//
//	lon(west) lat CT CA SA FA CB SB FB CC SC FC
//
// Coordinates are printed with a fixed 2-decimal precision, longitude in
// positive west-degrees (the historical dex convention; the signed
// east-positive value is recovered by negation on the reverse path). The
// precision must be identical on every row of a file so the reverse
// parser's token-count heuristic holds.
const coordDecimals = 2

// RowFields is the fixed dex column count.
const RowFields = 12

// westLongitude converts a signed east-positive longitude to the
// west-positive degrees written to dex files.
func westLongitude(lon float64) float64 {
	if lon == 0 {
		return 0
	}
	return -lon
}

// formatCoord prints a coordinate with the fixed dex precision.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', coordDecimals, 64)
}

// FormatRow renders one grid point and its decoded attributes as a dex row.
func FormatRow(pt Point, egg Egg) string {
	fields := make([]string, 0, RowFields)
	fields = append(fields,
		formatCoord(westLongitude(pt.Lon)),
		formatCoord(pt.Lat),
		egg.Total,
	)
	for _, class := range egg.Classes {
		fields = append(fields, class.Concentration, class.Stage, class.Form)
	}
	return strings.Join(fields, " ")
}

// AssembleRows combines grid points with their classified polygons into dex
// rows, one per grid point in grid order. matches holds, per point, the ID
// of the containing polygon or NoMatch; unmatched points get the sentinel
// row, never an omission, so len(rows) == len(grid) always.
func AssembleRows(grid []Point, polygons []Polygon, matches []int) []string {
	byID := make(map[int]*Polygon, len(polygons))
	for i := range polygons {
		byID[polygons[i].ID] = &polygons[i]
	}

	rows := make([]string, len(grid))
	for i, pt := range grid {
		egg := sentinelEgg
		if id := matches[i]; id != NoMatch {
			if poly, ok := byID[id]; ok {
				egg = poly.Egg
			}
		}
		rows[i] = FormatRow(pt, egg)
	}
	return rows
}
