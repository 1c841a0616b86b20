package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/beetlebugorg/icedex/pkg/icedex"
)

func main() {
	converter := icedex.NewConverter()

	_, err := converter.Convert("GEC_H_20190325.shp",
		icedex.GridSpec{Spacing: 0.1}, icedex.DefaultConvertOptions())
	if err == nil {
		fmt.Println("converted cleanly")
		return
	}

	// Typed errors identify the failing polygon or attribute
	var unknownCode *icedex.ErrUnknownCode
	var invalidPoly *icedex.ErrInvalidPolygon
	var badSpec *icedex.ErrBadGridSpec
	switch {
	case errors.As(err, &unknownCode):
		fmt.Printf("polygon %d carries %s=%q outside the egg-code vocabulary\n",
			unknownCode.Polygon, unknownCode.Field, unknownCode.Value)
	case errors.As(err, &invalidPoly):
		fmt.Printf("polygon %d is not usable for containment: %s\n",
			invalidPoly.Polygon, invalidPoly.Reason)
	case errors.As(err, &badSpec):
		fmt.Printf("grid specification rejected: %s\n", badSpec.Reason)
	default:
		log.Fatal(err)
	}
}
