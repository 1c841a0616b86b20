// Package cisshp reads Canadian Ice Service SIGRID-3 shapefiles into the
// polygon model used by the conversion core. It is the only place the
// repository touches shapefile I/O; the core receives already-parsed
// geometries and attribute records.
package cisshp

import (
	"fmt"
	"path/filepath"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	"go.uber.org/zap"

	"github.com/beetlebugorg/icedex/internal/convert"
	"github.com/beetlebugorg/icedex/internal/log"
)

// eggFields are the DBF columns decoded for every polygon.
var eggFields = []string{
	convert.FieldPolyType,
	convert.FieldTotal,
	"E_CA", "E_SA", "E_FA",
	"E_CB", "E_SB", "E_FB",
	"E_CC", "E_SC", "E_FC",
}

// Chart is one ice-analysis shapefile, decoded and reprojected.
type Chart struct {
	Name     string // source file name (base)
	Date     string // YYYYMMDD from the file name
	Polygons []convert.Polygon
}

// ReadChart decodes path into chart polygons with their raw egg attributes
// already decoded to output tokens.
//
// CIS charts ship in a Lambert conformal conic projection; when the
// shapefile carries a spatial reference it is transformed to WGS-84
// lon/lat, the frame all containment testing runs in. A missing .prj is
// tolerated and the coordinates are taken as lon/lat already.
func ReadChart(path string) (*Chart, error) {
	name := filepath.Base(path)
	date, err := convert.ChartDate(name)
	if err != nil {
		return nil, err
	}

	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("opening shapefile %s: %w", path, err)
	}
	defer d.Close()

	transform, err := lonLatTransform(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	chart := &Chart{Name: name, Date: date}
	for i := 0; ; i++ {
		g, fields, more := d.DecodeRowFields(eggFields...)
		if !more {
			break
		}
		if transform != nil {
			if g, err = g.Transform(transform); err != nil {
				return nil, fmt.Errorf("%s: polygon %d: reprojection: %w", path, i, err)
			}
		}
		rings, err := polygonRings(g)
		if err != nil {
			return nil, &convert.ErrInvalidPolygon{Polygon: i, Reason: err.Error()}
		}
		egg, err := convert.DecodeEgg(i, convert.AttributeRecord(fields))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		chart.Polygons = append(chart.Polygons, convert.Polygon{
			ID:    i,
			Rings: rings,
			Egg:   egg,
		})
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("reading shapefile %s: %w", path, err)
	}

	log.Info("chart read",
		zap.String("file", name),
		zap.String("date", date),
		zap.Int("polygons", len(chart.Polygons)))
	return chart, nil
}

// lonLatTransform builds the source-SR to lon/lat transform, or nil when the
// shapefile declares no spatial reference.
func lonLatTransform(d *shp.Decoder) (proj.Transformer, error) {
	sr, err := d.SR()
	if err != nil {
		log.Warn("no spatial reference, assuming lon/lat", zap.Error(err))
		return nil, nil
	}
	lonLat, err := proj.Parse("+proj=longlat")
	if err != nil {
		return nil, fmt.Errorf("parsing lon/lat projection: %w", err)
	}
	transform, err := sr.NewTransform(lonLat)
	if err != nil {
		return nil, fmt.Errorf("building lon/lat transform: %w", err)
	}
	return transform, nil
}

// polygonRings flattens a decoded shapefile geometry into boundary rings.
// Multi-part polygons keep all parts and holes in one ring set; even-odd
// containment treats them correctly without part bookkeeping.
func polygonRings(g geom.Geom) ([]convert.Ring, error) {
	var rings []convert.Ring
	appendPolygon := func(poly geom.Polygon) {
		for _, ring := range poly {
			r := make(convert.Ring, len(ring))
			for i, pt := range ring {
				r[i] = convert.Point{Lon: pt.X, Lat: pt.Y}
			}
			rings = append(rings, r)
		}
	}

	switch t := g.(type) {
	case geom.Polygon:
		appendPolygon(t)
	case geom.MultiPolygon:
		for _, poly := range t {
			appendPolygon(poly)
		}
	default:
		return nil, fmt.Errorf("geometry is %T, want polygon", g)
	}
	return rings, nil
}
