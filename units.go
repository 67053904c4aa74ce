package gridplot

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"
)

// A Size is an optional physical length. The empty string means unset,
// a bare number is interpreted as inches, and anything else must be a
// number followed by a unit suffix, e.g. "3cm", "24pt" or "1.5em".
type Size string

// In returns the Size for v inches.
func In(v float64) Size {
	return Size(strconv.FormatFloat(v, 'g', -1, 64))
}

// Units resolves Size values into inches. The font-relative units em and
// en depend on FontSize, the pixel unit on DPI.
type Units struct {
	FontSize vg.Length
	DPI      float64
}

// perInch is the fixed conversion table: inches per one unit.
var perInch = map[string]float64{
	"in": 1,
	"ft": 12,
	"cm": 1 / 2.54,
	"mm": 1 / 25.4,
	"pt": 1 / 72.0,
}

func (u Units) factor(unit string) (float64, bool) {
	switch unit {
	case "em":
		return float64(u.FontSize) / 72.0, true
	case "en":
		return float64(u.FontSize) / 144.0, true
	case "px":
		if u.DPI <= 0 {
			return 0, false
		}
		return 1 / u.DPI, true
	}
	f, ok := perInch[unit]
	return f, ok
}

// Resolve converts s to inches. Unset sizes report ok == false with a nil
// error. Malformed numbers and unknown unit suffixes are errors; the
// latter is an *UnrecognizedUnitError.
func (u Units) Resolve(s Size) (v float64, ok bool, err error) {
	str := strings.TrimSpace(string(s))
	if str == "" {
		return 0, false, nil
	}
	if v, err := strconv.ParseFloat(str, 64); err == nil {
		return v, true, nil
	}
	i := len(str)
	for i > 0 && !isNumChar(str[i-1]) {
		i--
	}
	num, unit := str[:i], strings.TrimSpace(str[i:])
	v, perr := strconv.ParseFloat(num, 64)
	if perr != nil {
		return 0, false, fmt.Errorf("gridplot: malformed size %q", s)
	}
	f, known := u.factor(unit)
	if !known {
		return 0, false, &UnrecognizedUnitError{Value: string(s), Unit: unit}
	}
	return v * f, true, nil
}

// ResolveLoose is Resolve for optional sizing knobs: any input that does
// not resolve is treated as unset.
func (u Units) ResolveLoose(s Size) (float64, bool) {
	v, ok, err := u.Resolve(s)
	if err != nil {
		return 0, false
	}
	return v, ok
}

// ResolveDefault resolves s, substituting def when s is unset.
func (u Units) ResolveDefault(s, def Size) (float64, error) {
	v, ok, err := u.Resolve(s)
	if err != nil {
		return 0, err
	}
	if ok {
		return v, nil
	}
	v, _, err = u.Resolve(def)
	return v, err
}

func isNumChar(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}
