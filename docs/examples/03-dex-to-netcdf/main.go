package main

import (
	"fmt"
	"log"
	"math"

	"github.com/beetlebugorg/icedex/pkg/icedex"
)

func main() {
	// Parse a dex file back into a structured dataset
	ds, err := icedex.DexToDataset("GEC_H_20190325.dex")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Chart date: %s, %d grid points\n", ds.Date, len(ds.Points))

	if ds.Raster == nil {
		log.Fatal("points do not form a regular grid")
	}

	// Mean total concentration over ice-covered cells
	sum, n := 0.0, 0
	for i := range ds.Raster.Lats {
		for j := range ds.Raster.Lons {
			ct := ds.Raster.At("CT", i, j)
			if !math.IsNaN(ct) {
				sum += ct
				n++
			}
		}
	}
	if n > 0 {
		fmt.Printf("Mean CT over %d ice cells: %.1f/10\n", n, sum/float64(n))
	}

	// Write the gridded view as NetCDF
	if err := icedex.WriteNetCDF("GEC_H_20190325.nc", ds); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Wrote GEC_H_20190325.nc")
}
