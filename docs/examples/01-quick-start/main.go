package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/icedex/pkg/icedex"
)

func main() {
	// Create converter
	converter := icedex.NewConverter()

	// Convert one CIS ice chart onto a 0.1 degree grid covering the chart
	spec := icedex.GridSpec{Spacing: 0.1}
	result, err := converter.Convert("GEC_H_20190325.shp", spec, icedex.DefaultConvertOptions())
	if err != nil {
		log.Fatal(err)
	}

	// Print conversion info
	fmt.Printf("Output: %s\n", result.OutputPath)
	fmt.Printf("Date: %s\n", result.Date)
	fmt.Printf("Rows: %d (%d inside ice polygons)\n", result.Rows, result.Matched)
}
