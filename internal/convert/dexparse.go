package convert

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PointRecord is one parsed dex row mapped onto the fixed 12-column model.
type PointRecord struct {
	Point   Point // signed east-positive longitude
	Egg     Egg   // output tokens, sentinel-padded to 3 classes
	Present int   // thickness classes actually recorded on this row
}

// Valid output-token sets, derived from the decode tables so the writer and
// the reverse parser cannot drift apart.
var (
	ctTokens    = tokenSet(concentrationCodes, TokenIceFree, TokenMissing, TokenFastIce)
	conTokens   = tokenSet(concentrationCodes)
	stageTokens = tokenSet(stageCodes)
	formTokens  = tokenSet(formCodes)
)

func tokenSet(table map[string]string, extra ...string) map[string]bool {
	set := make(map[string]bool, len(table)+len(extra)+1)
	for _, tok := range table {
		set[tok] = true
	}
	for _, tok := range extra {
		set[tok] = true
	}
	set[Sentinel] = true
	return set
}

// ParseDex reads dex rows from r into point records, preserving row order.
// name identifies the source in errors.
//
// Two row conventions are accepted, detected per row from the token count:
// the fixed 12-column convention (absent classes sentinel-padded) and the
// legacy variable-trailing-column convention, where rows stop after the
// last recorded class (3, 6, 9 or 12 tokens). Any other token count, or a
// token failing its column's vocabulary, is a ParseError naming the row.
func ParseDex(r io.Reader, name string) ([]PointRecord, error) {
	var records []PointRecord
	scanner := bufio.NewScanner(r)
	row := 0
	for scanner.Scan() {
		row++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rec, err := parseRow(strings.Fields(line), name, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return records, nil
}

// parseRow maps one tokenized row onto the fixed model.
func parseRow(fields []string, name string, row int) (PointRecord, error) {
	switch len(fields) {
	case 3, 6, 9, RowFields:
	default:
		return PointRecord{}, &ErrBadDexRow{
			File: name, Row: row,
			Reason: fmt.Sprintf("token count %d matches no dex convention (want 3, 6, 9 or 12)", len(fields)),
		}
	}

	lonWest, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return PointRecord{}, &ErrBadDexRow{File: name, Row: row, Reason: fmt.Sprintf("bad longitude %q", fields[0])}
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return PointRecord{}, &ErrBadDexRow{File: name, Row: row, Reason: fmt.Sprintf("bad latitude %q", fields[1])}
	}

	rec := PointRecord{
		Point: Point{Lon: westLongitude(lonWest), Lat: lat},
		Egg: Egg{
			Classes: [3]Triplet{sentinelTriplet, sentinelTriplet, sentinelTriplet},
		},
	}

	ct := fields[2]
	if !ctTokens[ct] {
		return PointRecord{}, &ErrBadDexRow{File: name, Row: row, Reason: fmt.Sprintf("unknown total concentration token %q", ct)}
	}
	rec.Egg.Total = ct
	rec.Egg.Kind = kindFromTotal(ct)

	for class := 0; 3+class*3 < len(fields); class++ {
		base := 3 + class*3
		t := Triplet{
			Concentration: fields[base],
			Stage:         fields[base+1],
			Form:          fields[base+2],
		}
		if !conTokens[t.Concentration] {
			return PointRecord{}, &ErrBadDexRow{File: name, Row: row, Reason: fmt.Sprintf("unknown concentration token %q", t.Concentration)}
		}
		if !stageTokens[t.Stage] {
			return PointRecord{}, &ErrBadDexRow{File: name, Row: row, Reason: fmt.Sprintf("unknown stage token %q", t.Stage)}
		}
		if !formTokens[t.Form] {
			return PointRecord{}, &ErrBadDexRow{File: name, Row: row, Reason: fmt.Sprintf("unknown form token %q", t.Form)}
		}
		rec.Egg.Classes[class] = t
		if !t.absent() {
			rec.Present++
		}
	}

	return rec, nil
}

// kindFromTotal recovers the polygon kind from the CT column token.
func kindFromTotal(ct string) PolyKind {
	switch ct {
	case TokenIceFree:
		return KindIceFree
	case TokenMissing:
		return KindNoData
	case TokenFastIce:
		return KindFastIce
	case Sentinel:
		return KindLand
	}
	return KindEgg
}
