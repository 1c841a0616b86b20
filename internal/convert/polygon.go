package convert

import (
	"fmt"
)

// Point is one sample or vertex location in WGS-84 decimal degrees,
// longitude signed east-positive ([lon, lat] order, GeoJSON convention).
type Point struct {
	Lon float64
	Lat float64
}

// Ring is one closed polygon boundary. The first and last vertex need not
// repeat; containment testing closes the ring implicitly.
type Ring []Point

// Bounds is a geographic bounding box.
type Bounds struct {
	MinLon, MinLat float64
	MaxLon, MaxLat float64
}

// extend grows the box to include p.
func (b *Bounds) extend(p Point) {
	if p.Lon < b.MinLon {
		b.MinLon = p.Lon
	}
	if p.Lon > b.MaxLon {
		b.MaxLon = p.Lon
	}
	if p.Lat < b.MinLat {
		b.MinLat = p.Lat
	}
	if p.Lat > b.MaxLat {
		b.MaxLat = p.Lat
	}
}

// union grows the box to include o.
func (b *Bounds) union(o Bounds) {
	b.extend(Point{Lon: o.MinLon, Lat: o.MinLat})
	b.extend(Point{Lon: o.MaxLon, Lat: o.MaxLat})
}

// Contains reports whether p falls inside or on the box.
func (b Bounds) Contains(p Point) bool {
	return p.Lon >= b.MinLon && p.Lon <= b.MaxLon &&
		p.Lat >= b.MinLat && p.Lat <= b.MaxLat
}

// Degenerate reports whether the box has no positive extent on either axis.
func (b Bounds) Degenerate() bool {
	return b.MinLon >= b.MaxLon || b.MinLat >= b.MaxLat
}

// emptyBounds is the identity element for union/extend.
func emptyBounds() Bounds {
	return Bounds{
		MinLon: 180, MinLat: 90,
		MaxLon: -180, MaxLat: -90,
	}
}

// Polygon is one chart polygon: boundary rings plus its decoded egg code.
// Rings[0] is the outer boundary; any further rings are holes. Ice charts
// are non-overlapping by construction, so at most one polygon contains a
// given sample point.
type Polygon struct {
	// ID is the polygon's index in the source attribute table. It is the
	// classifier tie-break key and the identifier reported in errors.
	ID int

	Rings []Ring
	Egg   Egg

	bounds    Bounds
	hasBounds bool
}

// Bounds returns the polygon's bounding box over all rings.
func (p *Polygon) Bounds() Bounds {
	if !p.hasBounds {
		b := emptyBounds()
		for _, ring := range p.Rings {
			for _, v := range ring {
				b.extend(v)
			}
		}
		p.bounds = b
		p.hasBounds = true
	}
	return p.bounds
}

// Contains reports whether pt falls inside the polygon, holes excluded.
//
// Even-odd ray casting accumulated over all rings: a point inside the outer
// boundary and inside a hole crosses an even number of edges in total, so
// interior rings subtract regardless of their winding orientation.
func (p *Polygon) Contains(pt Point) bool {
	inside := false
	for _, ring := range p.Rings {
		n := len(ring)
		if n < 3 {
			continue
		}
		j := n - 1
		for i := 0; i < n; i++ {
			a, b := ring[i], ring[j]
			if (a.Lat > pt.Lat) != (b.Lat > pt.Lat) {
				x := a.Lon + (pt.Lat-a.Lat)/(b.Lat-a.Lat)*(b.Lon-a.Lon)
				if pt.Lon < x {
					inside = !inside
				}
			}
			j = i
		}
	}
	return inside
}

// ValidateCoordinate checks that a coordinate pair is within geographic bounds.
func ValidateCoordinate(lon, lat float64) error {
	if lat < -90.0 || lat > 90.0 || lon < -180.0 || lon > 180.0 {
		return fmt.Errorf("coordinate out of range: lon=%f lat=%f (lon must be ±180, lat must be ±90)", lon, lat)
	}
	return nil
}

// Validate checks the polygon holds geometry that containment testing can
// handle: at least one ring, every ring with at least 3 distinct vertices,
// every vertex within geographic bounds.
func (p *Polygon) Validate() error {
	if len(p.Rings) == 0 {
		return &ErrInvalidPolygon{Polygon: p.ID, Reason: "no boundary rings"}
	}
	for ri, ring := range p.Rings {
		if distinctVertices(ring) < 3 {
			return &ErrInvalidPolygon{
				Polygon: p.ID,
				Reason:  fmt.Sprintf("ring %d has fewer than 3 distinct vertices", ri),
			}
		}
		for _, v := range ring {
			if err := ValidateCoordinate(v.Lon, v.Lat); err != nil {
				return &ErrInvalidPolygon{
					Polygon: p.ID,
					Reason:  fmt.Sprintf("ring %d: %v", ri, err),
				}
			}
		}
	}
	return nil
}

// distinctVertices counts ring vertices ignoring consecutive duplicates and
// an explicit closing vertex.
func distinctVertices(ring Ring) int {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	count := 0
	for i := 0; i < n; i++ {
		if i > 0 && ring[i] == ring[i-1] {
			continue
		}
		count++
	}
	return count
}
