package convert

import (
	"fmt"
)

// ErrBadGridSpec indicates an unusable grid specification
type ErrBadGridSpec struct {
	Reason string
}

func (e *ErrBadGridSpec) Error() string {
	return fmt.Sprintf("bad grid specification: %s", e.Reason)
}

// ErrUnknownCode indicates an egg-code attribute value outside the known vocabulary
type ErrUnknownCode struct {
	Polygon int    // Attribute-table index of the offending polygon
	Field   string // Attribute field name (E_CT, E_SA, ...)
	Value   string // The unrecognized raw value
}

func (e *ErrUnknownCode) Error() string {
	return fmt.Sprintf("polygon %d: unknown %s code %q", e.Polygon, e.Field, e.Value)
}

// ErrInvalidPolygon indicates geometry that breaks containment testing
type ErrInvalidPolygon struct {
	Polygon int
	Reason  string
}

func (e *ErrInvalidPolygon) Error() string {
	return fmt.Sprintf("polygon %d: invalid geometry: %s", e.Polygon, e.Reason)
}

// ErrBadDexRow indicates a dex row that cannot be mapped onto the fixed
// 12-column model on the reverse path
type ErrBadDexRow struct {
	File   string
	Row    int // 1-based line number
	Reason string
}

func (e *ErrBadDexRow) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: row %d: %s", e.File, e.Row, e.Reason)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// ErrNoChartDate indicates a source file name without an embedded YYYYMMDD date
type ErrNoChartDate struct {
	Name string
}

func (e *ErrNoChartDate) Error() string {
	return fmt.Sprintf("no YYYYMMDD date in file name %q", e.Name)
}
