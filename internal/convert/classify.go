package convert

import (
	"github.com/dhconnelly/rtreego"
)

// NoMatch marks a grid point outside every chart polygon.
const NoMatch = -1

// indexedPolygon wraps a polygon for R-tree storage.
type indexedPolygon struct {
	poly *Polygon
}

// Bounds implements rtreego.Spatial.
func (ip *indexedPolygon) Bounds() rtreego.Rect {
	b := ip.poly.Bounds()

	// R-tree requires non-zero dimensions; degenerate polygons get a
	// small epsilon (~11 meters at the equator).
	const epsilon = 0.0001
	lonLength := b.MaxLon - b.MinLon
	latLength := b.MaxLat - b.MinLat
	if lonLength < epsilon {
		lonLength = epsilon
	}
	if latLength < epsilon {
		latLength = epsilon
	}

	rect, _ := rtreego.NewRect(rtreego.Point{b.MinLon, b.MinLat}, []float64{lonLength, latLength})
	return rect
}

// Classifier answers "which polygon contains this point" for one chart.
//
// Candidate polygons are pruned with an R-tree over bounding boxes before
// exact ray-casting containment, so classifying N points against M polygons
// costs O(N log M) instead of the naive O(N·M) full scan. The polygon set is
// read-only after construction; a classifier is safe for concurrent Locate
// calls.
type Classifier struct {
	polygons []Polygon
	tree     *rtreego.Rtree
}

// NewClassifier validates the polygon set and builds the spatial index.
// Invalid geometry is a hard failure identifying the polygon.
func NewClassifier(polygons []Polygon) (*Classifier, error) {
	c := &Classifier{polygons: polygons}

	// 2D R-tree, min 25 / max 50 children per node.
	c.tree = rtreego.NewTree(2, 25, 50)
	for i := range c.polygons {
		if err := c.polygons[i].Validate(); err != nil {
			return nil, err
		}
		c.tree.Insert(&indexedPolygon{poly: &c.polygons[i]})
	}
	return c, nil
}

// Polygons returns the classifier's polygon set in attribute-table order.
func (c *Classifier) Polygons() []Polygon { return c.polygons }

// Extent returns the union of all polygon bounding boxes.
// ok is false for an empty polygon set.
func (c *Classifier) Extent() (extent Bounds, ok bool) {
	extent = emptyBounds()
	for i := range c.polygons {
		extent.union(c.polygons[i].Bounds())
		ok = true
	}
	return extent, ok
}

// Locate returns the attribute-table index of the polygon containing pt,
// or NoMatch.
//
// Ice-chart polygons are non-overlapping, so at most one true match exists.
// If numerical boundary degeneracy puts pt inside several polygons, the one
// earliest in attribute-table order wins; the result is deterministic
// regardless of R-tree traversal order.
func (c *Classifier) Locate(pt Point) int {
	const epsilon = 1e-9
	rect, _ := rtreego.NewRect(rtreego.Point{pt.Lon, pt.Lat}, []float64{epsilon, epsilon})

	match := NoMatch
	for _, spatial := range c.tree.SearchIntersect(rect) {
		poly := spatial.(*indexedPolygon).poly
		if match != NoMatch && poly.ID >= match {
			continue
		}
		if poly.Contains(pt) {
			match = poly.ID
		}
	}
	return match
}

// Classify locates every grid point, preserving order. The result always
// has len(grid) entries; unmatched points carry NoMatch, never an omission.
func (c *Classifier) Classify(grid []Point) []int {
	matches := make([]int, len(grid))
	for i, pt := range grid {
		matches[i] = c.Locate(pt)
	}
	return matches
}
