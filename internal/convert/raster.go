package convert

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// VarNames lists the raster variables in dex column order, plus the derived
// flag channel.
var VarNames = []string{"CT", "CA", "SA", "FA", "CB", "SB", "FB", "CC", "SC", "FC", "flag"}

// Data-type flags derived from the CT column, one per grid point.
const (
	FlagIce     = 0 // sea ice present, egg code recorded
	FlagIceFree = 1 // ice-free water
	FlagMissing = 2 // no data
	FlagFastIce = 3 // fast ice
	FlagLand    = 4 // land / outside chart coverage
)

// Dataset is the structured result of parsing one dex file.
// Points is always populated in file row order; Raster is non-nil only when
// the points form a regular lon/lat grid.
type Dataset struct {
	Name   string // source file name
	Date   string // YYYYMMDD from the file name, "" if absent
	Points []PointRecord
	Raster *Raster
}

// Raster is a 2-D numeric view of a regular-grid dataset. Axes are
// ascending; values are row-major with latitude as the leading dimension
// (Vars[name][i*len(Lons)+j] for lat index i, lon index j). Tokens with no
// numeric reading are NaN.
type Raster struct {
	Lons []float64 // signed east-positive
	Lats []float64
	Vars map[string][]float64
}

// At returns one raster value by latitude and longitude index.
func (r *Raster) At(name string, latIdx, lonIdx int) float64 {
	return r.Vars[name][latIdx*len(r.Lons)+lonIdx]
}

// NumericConcentration converts a concentration token to the numeric 1/10
// scale: "9+" becomes 9.9 (the most concentrated ice short of consolidation)
// and legend tokens (IF, missing, Fast-ice, sentinel) become NaN.
func NumericConcentration(tok string) float64 {
	if tok == "9+" {
		return 9.9
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// NumericStage converts a stage token to a numeric code: the dotted egg
// shorthand multiplies by ten ("1." -> 10, "4." -> 40, "9." -> 90), so
// stage codes stay strictly ordered by thickness. "L" and the sentinel
// are NaN.
func NumericStage(tok string) float64 {
	if strings.HasSuffix(tok, ".") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(tok, "."), 64)
		if err != nil {
			return math.NaN()
		}
		return v * 10
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// NumericForm converts a form token to a numeric code; the textual forms
// ("Pa" pancake, "S" strips and patches) and the sentinel are NaN.
func NumericForm(tok string) float64 {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Flag derives the data-type flag from a record's CT token.
func Flag(rec PointRecord) float64 {
	switch rec.Egg.Kind {
	case KindIceFree:
		return FlagIceFree
	case KindNoData:
		return FlagMissing
	case KindFastIce:
		return FlagFastIce
	case KindLand:
		return FlagLand
	}
	return FlagIce
}

// numericRow expands one record into VarNames order.
func numericRow(rec PointRecord) [11]float64 {
	return [11]float64{
		NumericConcentration(rec.Egg.Total),
		NumericConcentration(rec.Egg.Classes[0].Concentration),
		NumericStage(rec.Egg.Classes[0].Stage),
		NumericForm(rec.Egg.Classes[0].Form),
		NumericConcentration(rec.Egg.Classes[1].Concentration),
		NumericStage(rec.Egg.Classes[1].Stage),
		NumericForm(rec.Egg.Classes[1].Form),
		NumericConcentration(rec.Egg.Classes[2].Concentration),
		NumericStage(rec.Egg.Classes[2].Stage),
		NumericForm(rec.Egg.Classes[2].Form),
		Flag(rec),
	}
}

// BuildDataset assembles parsed records into a dataset, detecting
// regular-grid structure.
//
// The flat point list reshapes into a 2-D raster when the unique sorted
// coordinate values are evenly spaced on both axes, every (lat, lon) cell is
// hit exactly once, and the point count equals nx*ny. Otherwise the dataset
// keeps only the flat table.
func BuildDataset(name string, records []PointRecord) *Dataset {
	ds := &Dataset{
		Name:   name,
		Points: records,
	}
	if date := datePattern.FindString(name); date != "" {
		ds.Date = date
	}
	ds.Raster = buildRaster(records)
	return ds
}

// buildRaster attempts the flat-to-grid reshape; nil when the points are
// not a regular grid.
func buildRaster(records []PointRecord) *Raster {
	if len(records) < 4 {
		return nil
	}
	lons := uniqueSorted(records, func(r PointRecord) float64 { return r.Point.Lon })
	lats := uniqueSorted(records, func(r PointRecord) float64 { return r.Point.Lat })
	nx, ny := len(lons), len(lats)
	if nx < 2 || ny < 2 || nx*ny != len(records) {
		return nil
	}
	if _, ok := uniformSpacing(lons); !ok {
		return nil
	}
	if _, ok := uniformSpacing(lats); !ok {
		return nil
	}

	lonIdx := indexOf(lons)
	latIdx := indexOf(lats)

	raster := &Raster{Lons: lons, Lats: lats, Vars: make(map[string][]float64, len(VarNames))}
	for _, v := range VarNames {
		cells := make([]float64, nx*ny)
		for i := range cells {
			cells[i] = math.NaN()
		}
		raster.Vars[v] = cells
	}

	seen := make([]bool, nx*ny)
	for _, rec := range records {
		cell := latIdx[rec.Point.Lat]*nx + lonIdx[rec.Point.Lon]
		if seen[cell] {
			return nil // duplicate coordinate, not a clean grid
		}
		seen[cell] = true
		values := numericRow(rec)
		for vi, v := range VarNames {
			raster.Vars[v][cell] = values[vi]
		}
	}
	return raster
}

func uniqueSorted(records []PointRecord, key func(PointRecord) float64) []float64 {
	set := make(map[float64]struct{}, len(records))
	for _, r := range records {
		set[key(r)] = struct{}{}
	}
	values := make([]float64, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Float64s(values)
	return values
}

func indexOf(axis []float64) map[float64]int {
	idx := make(map[float64]int, len(axis))
	for i, v := range axis {
		idx[v] = i
	}
	return idx
}
