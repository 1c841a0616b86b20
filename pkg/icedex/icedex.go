package icedex

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/beetlebugorg/icedex/internal/cisshp"
	"github.com/beetlebugorg/icedex/internal/convert"
	"github.com/beetlebugorg/icedex/internal/log"
)

// Core types re-exported from the conversion core.
type (
	// Point is a lon/lat sample location, longitude signed east-positive.
	Point = convert.Point
	// Bounds is a geographic bounding box.
	Bounds = convert.Bounds
	// GridSpec selects the sample grid: an explicit ordered point list, or
	// spacing plus optional bounds for a regular grid.
	GridSpec = convert.GridSpec
	// Dataset is a parsed dex file: flat point table plus a 2-D raster view
	// when the points form a regular grid.
	Dataset = convert.Dataset
	// Raster is the 2-D numeric view of a regular-grid dataset.
	Raster = convert.Raster
	// PointRecord is one parsed dex row.
	PointRecord = convert.PointRecord
)

// Typed errors surfaced by conversions and parses, for errors.As.
type (
	// ErrBadGridSpec is an unusable grid specification.
	ErrBadGridSpec = convert.ErrBadGridSpec
	// ErrUnknownCode is an attribute value outside the egg-code vocabulary.
	ErrUnknownCode = convert.ErrUnknownCode
	// ErrInvalidPolygon is chart geometry unusable for containment testing.
	ErrInvalidPolygon = convert.ErrInvalidPolygon
	// ErrBadDexRow is a dex row that matches no dex row convention.
	ErrBadDexRow = convert.ErrBadDexRow
	// ErrNoChartDate is a source file name without an embedded date.
	ErrNoChartDate = convert.ErrNoChartDate
)

// Converter turns CIS ice-analysis shapefiles into dex files.
//
// Create one with NewConverter. A converter holds no state between calls;
// conversions of different files are independent and may run on separate
// goroutines, one file per worker.
type Converter interface {
	// Convert rasterizes one shapefile onto the grid described by spec and
	// writes the dex file. The conversion is atomic: the output appears
	// only after every row has been assembled successfully.
	Convert(shpPath string, spec GridSpec, opts ConvertOptions) (*Conversion, error)
}

// Conversion reports the outcome of one shapefile conversion.
type Conversion struct {
	// OutputPath is the written dex file, named <stem>_YYYYMMDD.dex after
	// the date embedded in the source file name.
	OutputPath string
	// Date is the chart acquisition date (YYYYMMDD).
	Date string
	// Rows is the output row count; always equal to the grid point count.
	Rows int
	// Matched counts grid points covered by some chart polygon.
	Matched int
	// ByKind counts rows per polygon kind (Egg, IceFree, NoData, FastIce,
	// Land). Unmatched grid points count as Land.
	ByKind map[string]int
}

// NewConverter creates a converter with no shared state.
func NewConverter() Converter {
	return &converter{}
}

type converter struct{}

func (c *converter) Convert(shpPath string, spec GridSpec, opts ConvertOptions) (*Conversion, error) {
	chart, err := cisshp.ReadChart(shpPath)
	if err != nil {
		return nil, err
	}

	classifier, err := convert.NewClassifier(chart.Polygons)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", shpPath, err)
	}

	extent, ok := classifier.Extent()
	if !ok && len(spec.Points) == 0 && spec.Bounds == nil {
		return nil, &convert.ErrBadGridSpec{Reason: fmt.Sprintf("%s: empty chart, cannot infer grid bounds", shpPath)}
	}
	grid, err := convert.BuildGrid(spec, extent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", shpPath, err)
	}

	matches := classifier.Classify(grid)
	rows := convert.AssembleRows(grid, chart.Polygons, matches)

	outName, err := convert.DexFileName(shpPath)
	if err != nil {
		return nil, err
	}
	outPath := filepath.Join(opts.OutDir, outName)
	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := convert.WriteDex(outPath, rows); err != nil {
		return nil, err
	}

	kindByID := make(map[int]convert.PolyKind, len(chart.Polygons))
	for _, p := range chart.Polygons {
		kindByID[p.ID] = p.Egg.Kind
	}
	matched := 0
	byKind := make(map[string]int)
	for _, m := range matches {
		if m == convert.NoMatch {
			byKind[convert.KindLand.String()]++
			continue
		}
		matched++
		byKind[kindByID[m].String()]++
	}
	log.Info("chart converted",
		zap.String("shp", shpPath),
		zap.String("dex", outPath),
		zap.Int("rows", len(rows)),
		zap.Int("matched", matched))

	return &Conversion{
		OutputPath: outPath,
		Date:       chart.Date,
		Rows:       len(rows),
		Matched:    matched,
		ByKind:     byKind,
	}, nil
}

// DexToDataset parses a dex file into a structured dataset: the flat
// point-indexed table in file order, reshaped into a 2-D raster when the
// points form a regular lon/lat grid.
func DexToDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dex file: %w", err)
	}
	defer f.Close()

	records, err := convert.ParseDex(f, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return convert.BuildDataset(filepath.Base(path), records), nil
}

// WriteNetCDF writes a regular-grid dataset to a CF-styled NetCDF-3 file.
func WriteNetCDF(path string, ds *Dataset) error {
	return convert.WriteNetCDF(path, ds)
}

// ReadPointList reads an external two-column (lon, lat) grid point file for
// GridSpec.Points, preserving order.
func ReadPointList(path string) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening point list: %w", err)
	}
	defer f.Close()
	return convert.ReadPointList(f, filepath.Base(path))
}
