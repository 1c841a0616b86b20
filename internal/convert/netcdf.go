package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ctessum/cdf"
	"github.com/google/uuid"
)

// varMeta carries the CF attributes written for each raster variable.
var varMeta = map[string][2]string{ // long_name, units
	"CT":   {"Sea ice total concentration", "1/10 m^2/m^2"},
	"CA":   {"Sea ice first class concentration", "1/10 m^2/m^2"},
	"SA":   {"Sea ice first class stage of development", "code"},
	"FA":   {"Sea ice first class form", "code"},
	"CB":   {"Sea ice second class concentration", "1/10 m^2/m^2"},
	"SB":   {"Sea ice second class stage of development", "code"},
	"FB":   {"Sea ice second class form", "code"},
	"CC":   {"Sea ice third class concentration", "1/10 m^2/m^2"},
	"SC":   {"Sea ice third class stage of development", "code"},
	"FC":   {"Sea ice third class form", "code"},
	"flag": {"data type", "flag"},
}

// WriteNetCDF writes a regular-grid dataset to a CF-styled NetCDF-3 file.
// Flat (irregular) datasets have no grid shape and are rejected. The file
// is written to a unique temp name and renamed onto path on success.
func WriteNetCDF(path string, ds *Dataset) error {
	if ds.Raster == nil {
		return fmt.Errorf("%s: dataset is not a regular grid; NetCDF output needs one", ds.Name)
	}
	raster := ds.Raster
	ny, nx := len(raster.Lats), len(raster.Lons)

	h := cdf.NewHeader([]string{"lat", "lon"}, []int{ny, nx})
	h.AddVariable("lat", []string{"lat"}, []float64{})
	h.AddAttribute("lat", "standard_name", "latitude")
	h.AddAttribute("lat", "units", "degrees_north")
	h.AddVariable("lon", []string{"lon"}, []float64{})
	h.AddAttribute("lon", "standard_name", "longitude")
	h.AddAttribute("lon", "units", "degrees_east")
	for _, v := range VarNames {
		h.AddVariable(v, []string{"lat", "lon"}, []float64{})
		meta := varMeta[v]
		h.AddAttribute(v, "long_name", meta[0])
		h.AddAttribute(v, "units", meta[1])
	}
	h.AddAttribute("flag", "flag_values", "0 1 2 3 4")
	h.AddAttribute("flag", "flag_meanings", "ice ice-free missing fast-ice land")
	h.AddAttribute("", "Conventions", "CF-1.8")
	h.AddAttribute("", "title", "Gridded Canadian Ice Service egg code data")
	h.AddAttribute("", "source", "Ice charts gridded with a point-in-polygon routine")
	if ds.Date != "" {
		h.AddAttribute("", "chart_date", ds.Date)
	}
	h.Define()

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+uuid.New().String()+".nc.tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}

	write := func() error {
		cf, err := cdf.Create(f, h)
		if err != nil {
			return err
		}
		if err := writeVar(cf, "lat", raster.Lats); err != nil {
			return err
		}
		if err := writeVar(cf, "lon", raster.Lons); err != nil {
			return err
		}
		for _, v := range VarNames {
			if err := writeVar(cf, v, raster.Vars[v]); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing NetCDF %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", path, err)
	}
	return nil
}

func writeVar(cf *cdf.File, name string, values []float64) error {
	w := cf.Writer(name, nil, nil)
	// The cdf library reports io.EOF when a write fills the variable exactly.
	if _, err := w.Write(values); err != nil && err != io.EOF {
		return fmt.Errorf("variable %s: %w", name, err)
	}
	return nil
}
