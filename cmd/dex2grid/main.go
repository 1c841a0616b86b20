// Command dex2grid reads gridded sea ice dex files and writes one
// reconstructed raster per input as a CF-styled NetCDF file.
//
//	dex2grid GEC_H_20190325.dex
//	dex2grid 'archive/*.dex'
//	dex2grid -o march.nc GEC_H_20190325.dex
//
// By default the input file's name (extension replaced) names the output;
// -o overrides it for single-file conversions. Inputs are independent, so
// large archives can be converted one file per worker with no coordination.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/beetlebugorg/icedex/internal/log"
	"github.com/beetlebugorg/icedex/pkg/icedex"
)

func main() {
	outName := flag.String("o", "", "output NetCDF file name (single input only)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: dex2grid [-o out.nc] dexfile...")
		os.Exit(2)
	}
	defer log.Sync()

	var files []string
	for _, arg := range flag.Args() {
		matches, err := filepath.Glob(arg)
		if err != nil || len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "dex2grid: no files match %q\n", arg)
			os.Exit(2)
		}
		files = append(files, matches...)
	}
	if *outName != "" && len(files) > 1 {
		fmt.Fprintln(os.Stderr, "dex2grid: -o needs exactly one input file")
		os.Exit(2)
	}

	failed := 0
	for _, file := range files {
		out := *outName
		if out == "" {
			stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
			out = stem + ".nc"
		}
		if err := convertOne(file, out); err != nil {
			log.Error("reconstruction failed", zap.String("file", file), zap.Error(err))
			fmt.Fprintf(os.Stderr, "dex2grid: %s: %v\n", file, err)
			failed++
			continue
		}
		fmt.Printf("%s -> %s\n", file, out)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func convertOne(dexPath, outPath string) error {
	ds, err := icedex.DexToDataset(dexPath)
	if err != nil {
		return err
	}
	log.Info("dex parsed",
		zap.String("file", dexPath),
		zap.Int("points", len(ds.Points)),
		zap.Bool("regular", ds.Raster != nil))
	return icedex.WriteNetCDF(outPath, ds)
}
