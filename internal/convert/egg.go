package convert

import (
	"sort"
	"strings"
)

// Sentinel is the dex token marking "no data": an absent thickness class,
// or any attribute of a land / outside-coverage grid point. It is part of
// the output contract; the reverse parser treats it as NA.
const Sentinel = "X"

// Total-concentration tokens for polygons that carry no egg triplets.
// These appear in the CT column only (MANICE chart legend conventions).
const (
	TokenIceFree = "IF"       // open water, no ice
	TokenMissing = "missing"  // inside chart coverage but not analyzed
	TokenFastIce = "Fast-ice" // consolidated ice attached to the coast
)

// PolyKind classifies a chart polygon by its POLY_TYPE attribute.
type PolyKind int

const (
	KindEgg     PolyKind = iota // "I" - ice described by an egg code
	KindIceFree                 // "W" - ice-free water
	KindNoData                  // "N" - no data
	KindFastIce                 // "F" - fast ice
	KindLand                    // "L" - land
)

// String returns the human-readable name of the polygon kind.
func (k PolyKind) String() string {
	switch k {
	case KindEgg:
		return "Egg"
	case KindIceFree:
		return "IceFree"
	case KindNoData:
		return "NoData"
	case KindFastIce:
		return "FastIce"
	case KindLand:
		return "Land"
	default:
		return "Unknown"
	}
}

// Attribute field names of the CIS SIGRID-3 shapefile schema.
// One total concentration plus three (concentration, stage, form)
// triplets, suffixed A/B/C for the thickest, second and third ice class.
const (
	FieldPolyType = "POLY_TYPE"
	FieldTotal    = "E_CT"
)

// tripletFields lists the attribute names of each thickness class.
var tripletFields = [3][3]string{
	{"E_CA", "E_SA", "E_FA"},
	{"E_CB", "E_SB", "E_FB"},
	{"E_CC", "E_SC", "E_FC"},
}

// AttributeRecord is one polygon's raw DBF attribute row, keyed by field name.
type AttributeRecord map[string]string

// Triplet is one decoded thickness class of an egg code.
type Triplet struct {
	Concentration string // partial concentration token (tenths, "9+", "10")
	Stage         string // stage-of-development token ("1".."9", dotted "1.".."9.", "L")
	Form          string // form-of-ice token ("Pa", "1".."9", "S")
}

// sentinelTriplet marks an absent thickness class.
var sentinelTriplet = Triplet{Concentration: Sentinel, Stage: Sentinel, Form: Sentinel}

// absent reports whether all three fields carry the sentinel.
func (t Triplet) absent() bool {
	return t.Concentration == Sentinel && t.Stage == Sentinel && t.Form == Sentinel
}

// Egg is a polygon's fully decoded ice description, in output-token form.
// Classes is always length 3, thickest first, sentinel-filled for absent
// classes so that dex column position maps to (class index, attribute)
// identically on every row.
type Egg struct {
	Kind    PolyKind
	Total   string // CT token
	Classes [3]Triplet
}

// sentinelEgg is emitted for grid points outside every polygon (land or
// outside chart coverage): all ten attribute columns carry the sentinel.
var sentinelEgg = Egg{
	Kind:    KindLand,
	Total:   Sentinel,
	Classes: [3]Triplet{sentinelTriplet, sentinelTriplet, sentinelTriplet},
}

// SentinelEgg returns the no-data/land row attributes.
func SentinelEgg() Egg { return sentinelEgg }

// concentrationCodes maps SIGRID-3 two-digit concentration codes to egg
// tokens on the 1/10 scale. "91" is the 9+ egg (no open water visible,
// not consolidated), "92" is consolidated 10/10 ice.
var concentrationCodes = map[string]string{
	"00": "0",
	"10": "1",
	"20": "2",
	"30": "3",
	"40": "4",
	"50": "5",
	"60": "6",
	"70": "7",
	"80": "8",
	"90": "9",
	"91": "9+",
	"92": "10",
}

// stageCodes maps SIGRID-3 stage-of-development codes to egg tokens.
// Dotted tokens are the egg shorthand for the older first-year and old-ice
// stages ("1." medium first-year, "4." thick first-year, "7." old,
// "8." second-year, "9." multi-year); "L" is ice of land origin.
var stageCodes = map[string]string{
	"81": "1",  // new ice
	"82": "2",  // nilas, ice rind
	"83": "3",  // young ice
	"84": "4",  // grey ice
	"85": "5",  // grey-white ice
	"86": "6",  // first-year ice
	"87": "7",  // thin first-year ice
	"88": "8",  // thin first-year, first stage
	"89": "9",  // thin first-year, second stage
	"91": "1.", // medium first-year ice
	"93": "4.", // thick first-year ice
	"95": "7.", // old ice
	"96": "8.", // second-year ice
	"97": "9.", // multi-year ice
	"98": "L",  // ice of land origin
}

// formCodes maps SIGRID-3 form-of-ice codes to egg tokens.
// "Pa" is pancake ice, "S" strips and patches; numerals follow the
// egg floe-size scale (1 small cake/brash up to 9 icebergs).
var formCodes = map[string]string{
	"01": "Pa",
	"02": "1",
	"03": "2",
	"04": "3",
	"05": "4",
	"06": "5",
	"07": "6",
	"08": "7",
	"09": "8",
	"10": "9",
	"11": "S",
}

// stageRank orders stage tokens by ice thickness, thickest first.
// Used to re-derive the A/B/C class order when the source columns are
// not pre-sorted.
var stageRank = map[string]int{
	"L":  15,
	"9.": 14,
	"8.": 13,
	"7.": 12,
	"4.": 11,
	"1.": 10,
	"9":  9,
	"8":  8,
	"7":  7,
	"6":  6,
	"5":  5,
	"4":  4,
	"3":  3,
	"2":  2,
	"1":  1,
	// Sentinel ranks below every real stage so absent classes sink to the tail.
	Sentinel: 0,
}

// noData reports whether a raw attribute value means "field not recorded".
// CIS files leave absent fields blank; some producers write -9 or 99.
func noData(raw string) bool {
	switch strings.TrimSpace(raw) {
	case "", "-9", "99":
		return true
	}
	return false
}

// decodeCode resolves one raw attribute value against a code table.
// Single-digit concentrations pass through unpadded ("9" reads as "90"):
// some producers store partial concentrations without the SIGRID zero
// padding.
func decodeCode(raw string, table map[string]string, digitPassthrough bool) (string, bool) {
	raw = strings.TrimSpace(raw)
	if tok, ok := table[raw]; ok {
		return tok, true
	}
	if digitPassthrough && len(raw) == 1 && raw >= "0" && raw <= "9" {
		return raw, true
	}
	return "", false
}

// parsePolyType maps the POLY_TYPE attribute to a polygon kind.
func parsePolyType(raw string) (PolyKind, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "I":
		return KindEgg, true
	case "W":
		return KindIceFree, true
	case "N":
		return KindNoData, true
	case "F":
		return KindFastIce, true
	case "L":
		return KindLand, true
	}
	return 0, false
}

// DecodeEgg decodes one polygon's raw attribute record into output tokens.
//
// id is the polygon's attribute-table index, reported in errors. Fields
// outside the known code vocabularies are a hard failure: silently
// defaulting them would corrupt downstream climatology comparisons.
func DecodeEgg(id int, attrs AttributeRecord) (Egg, error) {
	kind, ok := parsePolyType(attrs[FieldPolyType])
	if !ok {
		return Egg{}, &ErrUnknownCode{Polygon: id, Field: FieldPolyType, Value: attrs[FieldPolyType]}
	}

	egg := Egg{
		Kind:    kind,
		Classes: [3]Triplet{sentinelTriplet, sentinelTriplet, sentinelTriplet},
	}

	// Non-egg polygons carry a legend token in the CT column and
	// sentinels everywhere else.
	switch kind {
	case KindIceFree:
		egg.Total = TokenIceFree
		return egg, nil
	case KindNoData:
		egg.Total = TokenMissing
		return egg, nil
	case KindFastIce:
		egg.Total = TokenFastIce
		return egg, nil
	case KindLand:
		egg.Total = Sentinel
		return egg, nil
	}

	// Total concentration
	rawTotal := attrs[FieldTotal]
	if noData(rawTotal) {
		egg.Total = Sentinel
	} else {
		tok, ok := decodeCode(rawTotal, concentrationCodes, true)
		if !ok {
			return Egg{}, &ErrUnknownCode{Polygon: id, Field: FieldTotal, Value: rawTotal}
		}
		egg.Total = tok
	}

	// Thickness-class triplets
	present := make([]Triplet, 0, 3)
	for _, fields := range tripletFields {
		t, err := decodeTriplet(id, attrs, fields)
		if err != nil {
			return Egg{}, err
		}
		if !t.absent() {
			present = append(present, t)
		}
	}

	// Re-derive thickest-first order. The sort is stable so classes with
	// equal stage keep their source order.
	sort.SliceStable(present, func(i, j int) bool {
		return stageRank[present[i].Stage] > stageRank[present[j].Stage]
	})
	copy(egg.Classes[:], present)

	return egg, nil
}

// decodeTriplet decodes one (concentration, stage, form) field group.
func decodeTriplet(id int, attrs AttributeRecord, fields [3]string) (Triplet, error) {
	t := sentinelTriplet

	if raw := attrs[fields[0]]; !noData(raw) {
		tok, ok := decodeCode(raw, concentrationCodes, true)
		if !ok {
			return Triplet{}, &ErrUnknownCode{Polygon: id, Field: fields[0], Value: raw}
		}
		t.Concentration = tok
	}
	if raw := attrs[fields[1]]; !noData(raw) {
		tok, ok := decodeCode(raw, stageCodes, false)
		if !ok {
			return Triplet{}, &ErrUnknownCode{Polygon: id, Field: fields[1], Value: raw}
		}
		t.Stage = tok
	}
	if raw := attrs[fields[2]]; !noData(raw) {
		tok, ok := decodeCode(raw, formCodes, false)
		if !ok {
			return Triplet{}, &ErrUnknownCode{Polygon: id, Field: fields[2], Value: raw}
		}
		t.Form = tok
	}

	return t, nil
}
