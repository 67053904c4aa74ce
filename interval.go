package gridplot

import "math"

// Interval represents a (potentially degenerate) real interval.
// Both edges of the interval may be NaN indicating this edge is not set.
type Interval struct {
	Min, Max float64
}

func unsetInterval() Interval {
	return Interval{math.NaN(), math.NaN()}
}

// Update expands i to include x.
func (i *Interval) Update(x ...float64) {
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		if !(i.Min < v) {
			i.Min = v
		}
		if !(i.Max > v) {
			i.Max = v
		}
	}
}

// IsSet reports whether both edges of i are set.
func (i Interval) IsSet() bool {
	return !math.IsNaN(i.Min) && !math.IsNaN(i.Max)
}

// Equal reports whether i and j agree on both edges. An unset edge
// equals only another unset edge.
func (i *Interval) Equal(j Interval) bool {
	return edgeEqual(i.Min, j.Min) && edgeEqual(i.Max, j.Max)
}

func edgeEqual(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}
