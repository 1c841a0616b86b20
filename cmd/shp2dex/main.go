// Command shp2dex rasterizes Canadian Ice Service ice-analysis shapefiles
// onto a sample grid and writes one dex file per input chart.
//
// The grid comes either from an external point list (-grid, two columns:
// longitude, latitude) or from a regular spacing (-spacing, with optional
// -bounds; bounds default to the chart's polygon extent).
//
//	shp2dex -spacing 0.1 GEC_H_20190325.shp
//	shp2dex -grid grid.csv -out /data/dex 'charts/*.shp'
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/beetlebugorg/icedex/internal/log"
	"github.com/beetlebugorg/icedex/pkg/icedex"
)

func main() {
	gridFile := flag.String("grid", "", "point list file (lon,lat per line)")
	spacing := flag.Float64("spacing", 0, "regular grid spacing in degrees")
	boundsArg := flag.String("bounds", "", "regular grid bounds: lonmin,lonmax,latmin,latmax")
	outDir := flag.String("out", "", "output directory (default: working directory)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: shp2dex [-grid file | -spacing deg [-bounds lonmin,lonmax,latmin,latmax]] [-out dir] shapefile...")
		os.Exit(2)
	}
	defer log.Sync()

	spec, err := gridSpec(*gridFile, *spacing, *boundsArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shp2dex: %v\n", err)
		os.Exit(2)
	}

	files, err := expandArgs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "shp2dex: %v\n", err)
		os.Exit(2)
	}

	converter := icedex.NewConverter()
	opts := icedex.DefaultConvertOptions()
	opts.OutDir = *outDir

	failed := 0
	for _, file := range files {
		result, err := converter.Convert(file, spec, opts)
		if err != nil {
			log.Error("conversion failed", zap.String("file", file), zap.Error(err))
			fmt.Fprintf(os.Stderr, "shp2dex: %s: %v\n", file, err)
			failed++
			continue
		}
		fmt.Printf("%s: %d rows (%d on ice) -> %s\n", file, result.Rows, result.Matched, result.OutputPath)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// gridSpec assembles the grid specification from the flag values.
func gridSpec(gridFile string, spacing float64, boundsArg string) (icedex.GridSpec, error) {
	var spec icedex.GridSpec
	switch {
	case gridFile != "" && spacing != 0:
		return spec, fmt.Errorf("-grid and -spacing are mutually exclusive")
	case gridFile != "":
		points, err := icedex.ReadPointList(gridFile)
		if err != nil {
			return spec, err
		}
		spec.Points = points
	case spacing != 0:
		spec.Spacing = spacing
		if boundsArg != "" {
			bounds, err := parseBounds(boundsArg)
			if err != nil {
				return spec, err
			}
			spec.Bounds = &bounds
		}
	default:
		return spec, fmt.Errorf("one of -grid or -spacing is required")
	}
	return spec, nil
}

func parseBounds(arg string) (icedex.Bounds, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 4 {
		return icedex.Bounds{}, fmt.Errorf("bad -bounds %q: want lonmin,lonmax,latmin,latmax", arg)
	}
	values := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return icedex.Bounds{}, fmt.Errorf("bad -bounds value %q", p)
		}
		values[i] = v
	}
	return icedex.Bounds{
		MinLon: values[0], MaxLon: values[1],
		MinLat: values[2], MaxLat: values[3],
	}, nil
}

// expandArgs glob-expands the path arguments; a pattern matching nothing is
// an error rather than a silent no-op.
func expandArgs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		files = append(files, matches...)
	}
	return files, nil
}
