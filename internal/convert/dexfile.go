package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// DexExt is the gridded ice chart file extension.
const DexExt = ".dex"

var datePattern = regexp.MustCompile(`[0-9]{8}`)

// ChartDate extracts the acquisition date from a chart file name: the first
// 8-digit run, YYYYMMDD (CIS naming, e.g. "GEC_H_20190325.shp"). The date
// keys the output file; a name without one is a configuration failure.
func ChartDate(name string) (string, error) {
	date := datePattern.FindString(filepath.Base(name))
	if date == "" {
		return "", &ErrNoChartDate{Name: name}
	}
	return date, nil
}

// DexFileName derives the output file name for a source chart file:
// <name>_YYYYMMDD.dex, reusing the source's embedded date. Source names
// that already carry the date keep their stem unchanged.
func DexFileName(srcName string) (string, error) {
	date, err := ChartDate(srcName)
	if err != nil {
		return "", err
	}
	stem := strings.TrimSuffix(filepath.Base(srcName), filepath.Ext(srcName))
	if !strings.Contains(stem, date) {
		stem = stem + "_" + date
	}
	return stem + DexExt, nil
}

// WriteDex writes assembled rows to path atomically: the content goes to a
// uniquely named temp file in the destination directory, renamed onto path
// only after a complete successful write. A failed conversion never leaves
// a truncated dex file behind.
func WriteDex(path string, rows []string) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+uuid.New().String()+DexExt+".tmp")

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(f, row); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("writing %s: %w", path, err)
		}
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
