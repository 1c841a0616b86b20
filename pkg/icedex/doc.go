// Package icedex converts Canadian Ice Service (CIS) ice-analysis shapefiles
// to the gridded dex text format, and parses dex files back into labeled
// raster datasets.
//
// # Forward path: shapefile to dex
//
//	converter := icedex.NewConverter()
//	result, err := converter.Convert("GEC_H_20190325.shp",
//	    icedex.GridSpec{Spacing: 0.1},
//	    icedex.DefaultConvertOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("wrote %s (%d rows, %d on ice)\n", result.OutputPath, result.Rows, result.Matched)
//
// Each output row pairs one sample grid point with the decoded egg code of
// the chart polygon covering it: 12 space-separated fields, longitude
// (west-degrees) and latitude followed by the total concentration and three
// (concentration, stage, form) triplets ordered thickest class first.
// Points outside every polygon get the sentinel row ("X" in every attribute
// column); row count always equals grid point count, in grid order.
//
// # Reverse path: dex to dataset
//
//	ds, err := icedex.DexToDataset("GEC_H_20190325.dex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if ds.Raster != nil {
//	    // points formed a regular grid: 2-D numeric view available
//	    ct := ds.Raster.At("CT", 0, 0)
//	    _ = ct
//	}
//
// The parser accepts both the fixed 12-column convention this package
// writes and the legacy variable-trailing-column convention found in
// historical dex files, detecting which is in use from each row's token
// count.
//
// # Grids
//
// The sample grid is either regular (spacing over bounds, or over the chart
// extent when bounds are omitted; latitude outer loop ascending, longitude
// inner ascending) or an externally supplied ordered point list. Order is
// preserved through to the output rows.
package icedex
