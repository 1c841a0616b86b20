package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/icedex/pkg/icedex"
)

func main() {
	converter := icedex.NewConverter()
	opts := icedex.DefaultConvertOptions()
	opts.OutDir = "dex"

	// Regular grid over an explicit region instead of the chart extent
	spec := icedex.GridSpec{
		Spacing: 0.25,
		Bounds: &icedex.Bounds{
			MinLon: -70.0, MaxLon: -55.0,
			MinLat: 45.0, MaxLat: 52.0,
		},
	}
	result, err := converter.Convert("GEC_H_20190325.shp", spec, opts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Gulf of St. Lawrence grid: %d rows -> %s\n", result.Rows, result.OutputPath)

	// Sample at the exact stations of an existing model grid
	points, err := icedex.ReadPointList("model_grid.csv")
	if err != nil {
		log.Fatal(err)
	}
	result, err = converter.Convert("GEC_H_20190325.shp", icedex.GridSpec{Points: points}, opts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Station grid: %d rows -> %s\n", result.Rows, result.OutputPath)
}
