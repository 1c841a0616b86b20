package convert

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestFormatRow tests the fixed 12-column row layout, including the
// west-positive longitude convention.
func TestFormatRow(t *testing.T) {
	egg := Egg{
		Kind:  KindEgg,
		Total: "9+",
		Classes: [3]Triplet{
			{Concentration: "9", Stage: "8", Form: "Pa"},
			sentinelTriplet,
			sentinelTriplet,
		},
	}

	row := FormatRow(Point{Lon: -60.0, Lat: 48.0}, egg)
	want := "60.00 48.00 9+ 9 8 Pa X X X X X X"
	if row != want {
		t.Errorf("FormatRow = %q, want %q", row, want)
	}
	if got := len(strings.Fields(row)); got != RowFields {
		t.Errorf("Row has %d fields, want %d", got, RowFields)
	}
}

// TestFormatRowSentinel tests the land/no-data row.
func TestFormatRowSentinel(t *testing.T) {
	row := FormatRow(Point{Lon: -64.5, Lat: 48.5}, SentinelEgg())
	want := "64.50 48.50 X X X X X X X X X X"
	if row != want {
		t.Errorf("FormatRow = %q, want %q", row, want)
	}
}

// TestAssembleRows tests the row-count and order invariants: one row per
// grid point, grid order, unmatched points sentinel-filled.
func TestAssembleRows(t *testing.T) {
	polygons := []Polygon{
		{
			ID:    0,
			Rings: []Ring{square(-61, 47, 2)},
			Egg: Egg{
				Kind:    KindEgg,
				Total:   "9+",
				Classes: [3]Triplet{{"9", "8", "Pa"}, sentinelTriplet, sentinelTriplet},
			},
		},
	}
	grid := []Point{
		{-60.0, 48.0}, // inside
		{-50.0, 48.0}, // outside: sentinel row
		{-60.5, 47.5}, // inside
	}
	matches := []int{0, NoMatch, 0}

	rows := AssembleRows(grid, polygons, matches)
	if len(rows) != len(grid) {
		t.Fatalf("Expected %d rows, got %d", len(grid), len(rows))
	}
	if rows[0] != "60.00 48.00 9+ 9 8 Pa X X X X X X" {
		t.Errorf("rows[0] = %q", rows[0])
	}
	if rows[1] != "50.00 48.00 X X X X X X X X X X" {
		t.Errorf("rows[1] = %q (unmatched point must get the sentinel row)", rows[1])
	}
	if !strings.HasPrefix(rows[2], "60.50 47.50 ") {
		t.Errorf("rows[2] = %q (order not preserved)", rows[2])
	}
}

// TestChartDate tests date extraction from CIS chart file names.
func TestChartDate(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"GEC_H_20190325.shp", "20190325"},
		{"/data/charts/GEC_H_20200315.dex", "20200315"},
		{"a20000101b.shp", "20000101"},
	}
	for _, tt := range tests {
		got, err := ChartDate(tt.name)
		if err != nil {
			t.Errorf("ChartDate(%q) failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ChartDate(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}

	_, err := ChartDate("chart_nodate.shp")
	var dateErr *ErrNoChartDate
	if !errors.As(err, &dateErr) {
		t.Errorf("Expected ErrNoChartDate, got %v", err)
	}
}

// TestDexFileName tests output naming: the source stem keyed by the
// embedded date.
func TestDexFileName(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"GEC_H_20190325.shp", "GEC_H_20190325.dex"},
		{"/charts/GEC_H_20190325.shp", "GEC_H_20190325.dex"},
	}
	for _, tt := range tests {
		got, err := DexFileName(tt.src)
		if err != nil {
			t.Errorf("DexFileName(%q) failed: %v", tt.src, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DexFileName(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

// TestWriteDex tests the atomic dex write: full content present, no temp
// residue left in the directory.
func TestWriteDex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "GEC_H_20190325.dex")
	rows := []string{
		"60.00 48.00 9+ 9 8 Pa X X X X X X",
		"60.00 48.50 X X X X X X X X X X",
	}

	if err := WriteDex(path, rows); err != nil {
		t.Fatalf("WriteDex failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading written dex: %v", err)
	}
	want := strings.Join(rows, "\n") + "\n"
	if string(data) != want {
		t.Errorf("File content = %q, want %q", data, want)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the dex file in %s, found %d entries", dir, len(entries))
	}
}
