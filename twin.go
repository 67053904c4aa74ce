// Alternate-unit twin axes.
//
// A twin axis displays the same data range as its primary axis in other
// units, e.g. a pressure axis twinned with barometric height. The twin's
// limits are recomputed from the primary's on every draw.
package gridplot

import (
	"fmt"
	"math"
)

// standardPressure is the sea-level reference in hPa used by the
// barometric height scale; primary limits may not exceed it.
const standardPressure = 1013.25

// scaleHeight is the atmospheric scale height in km for HeightAlt.
const scaleHeight = 7.0

// An AltScale bundles the forward and inverse mapping of an alternate
// unit scale together with the domain check applied to the primary
// axis limits before locking.
type AltScale struct {
	Name    string
	Forward func(x float64) float64
	Inverse func(y float64) float64
	Check   func(lim Interval) error
}

// LinearAlt maps units linearly; any primary limits are valid.
var LinearAlt = &AltScale{
	Name:    "Linear",
	Forward: func(x float64) float64 { return x },
	Inverse: func(y float64) float64 { return y },
}

// LogAlt maps through a base-10 logarithm. Primary limits must stay
// positive.
var LogAlt = &AltScale{
	Name:    "Log",
	Forward: math.Log10,
	Inverse: func(y float64) float64 { return math.Pow(10, y) },
	Check: func(lim Interval) error {
		if lim.Min <= 0 || lim.Max <= 0 {
			return fmt.Errorf("gridplot: axis limits [%g,%g] go non-positive and the alternate units axis uses a log scale", lim.Min, lim.Max)
		}
		return nil
	},
}

// InverseAlt maps x to 1/x, e.g. wavelength to frequency. Primary limits
// must not cross zero.
var InverseAlt = &AltScale{
	Name:    "Inverse",
	Forward: func(x float64) float64 { return 1 / x },
	Inverse: func(y float64) float64 { return 1 / y },
	Check: func(lim Interval) error {
		if lim.Min <= 0 || lim.Max <= 0 {
			return fmt.Errorf("gridplot: axis limits [%g,%g] cross zero and the alternate units axis uses an inverse scale", lim.Min, lim.Max)
		}
		return nil
	},
}

// HeightAlt converts barometric height in km to pressure in hPa using a
// fixed scale height. Primary limits are capped at standard sea-level
// pressure.
var HeightAlt = &AltScale{
	Name: "Height",
	Forward: func(z float64) float64 {
		return standardPressure * math.Exp(-z/scaleHeight)
	},
	Inverse: func(p float64) float64 {
		return scaleHeight * math.Log(standardPressure/p)
	},
	Check: func(lim Interval) error {
		if lim.Min > standardPressure || lim.Max > standardPressure {
			return fmt.Errorf("gridplot: axis limits [%g,%g] exceed %g hPa and the alternate units axis uses a height scale", lim.Min, lim.Max, standardPressure)
		}
		return nil
	},
}

// A DualScale registers an alternate unit scale on one dimension of a
// main axis: twin = Offset + Scale*Alt.Inverse(primary).
type DualScale struct {
	Offset, Scale float64
	Alt           *AltScale
}

// lock recomputes the twin limits from the primary limits. If the
// transform reverses orientation, the edges are swapped back so the twin
// runs in the same direction as the primary.
func (d *DualScale) lock(primary Interval) (Interval, error) {
	if d.Alt.Check != nil {
		if err := d.Alt.Check(primary); err != nil {
			return Interval{}, err
		}
	}
	lo := d.Alt.Inverse(primary.Min)
	hi := d.Alt.Inverse(primary.Max)
	if (primary.Max-primary.Min > 0) != (hi-lo > 0) {
		lo, hi = hi, lo
	}
	return Interval{d.Offset + d.Scale*lo, d.Offset + d.Scale*hi}, nil
}

// DualX attaches a twin axis with alternate x units to ax and returns it.
func (ax *Axis) DualX(offset, scale float64, alt *AltScale) *Axis {
	twin := ax.ensureTwin(&ax.xTwin)
	ax.dualX = &DualScale{Offset: offset, Scale: scale, Alt: alt}
	twin.TickLabelsTop = true // alternate x ticks live on the top edge
	return twin
}

// DualY attaches a twin axis with alternate y units to ax and returns it.
func (ax *Axis) DualY(offset, scale float64, alt *AltScale) *Axis {
	twin := ax.ensureTwin(&ax.yTwin)
	ax.dualY = &DualScale{Offset: offset, Scale: scale, Alt: alt}
	return twin
}

func (ax *Axis) ensureTwin(slot *int) *Axis {
	if t := ax.fig.at(*slot); t != nil {
		return t
	}
	twin := ax.fig.addAxis(ax.rowSpan, ax.colSpan)
	twin.parent = ax.index
	twin.ShowXLabel, twin.ShowYLabel = false, false
	*slot = twin.index
	return twin
}
