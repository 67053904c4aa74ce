package gridplot

import "fmt"

// An UnrecognizedUnitError reports a size string whose unit suffix is not
// in the conversion table.
type UnrecognizedUnitError struct {
	Value string // the full size string as given
	Unit  string // the offending suffix
}

func (e *UnrecognizedUnitError) Error() string {
	return fmt.Sprintf("gridplot: unrecognized unit %q in size %q", e.Unit, e.Value)
}

// A LayoutInfeasibleError reports a sizing configuration whose margins,
// spacings and panels leave no room for the axes themselves.
type LayoutInfeasibleError struct {
	Dim      string  // "width" or "height"
	Capacity float64 // the computed (negative) axes capacity in inches
}

func (e *LayoutInfeasibleError) Error() string {
	return fmt.Sprintf("gridplot: not enough room for axes (%s would be %.3fin); increase the figure %s or reduce margins, spacings or panel widths",
		e.Dim, e.Capacity, e.Dim)
}

// A BroadcastError reports an inconsistent broadcast over an axes list,
// i.e. some axes produced a result while others produced none.
type BroadcastError struct {
	Got, Of int // axes that produced a result, out of how many
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("gridplot: inconsistent broadcast: %d of %d axes produced a result", e.Got, e.Of)
}
