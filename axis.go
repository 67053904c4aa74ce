package gridplot

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Side names one edge of an axes or figure.
type Side int

const (
	SideNone Side = iota - 1
	SideLeft
	SideRight
	SideBottom
	SideTop
)

var sideNames = map[Side]string{
	SideLeft: "left", SideRight: "right", SideBottom: "bottom", SideTop: "top",
}

func (s Side) String() string {
	if n, ok := sideNames[s]; ok {
		return n
	}
	return "none"
}

// ParseSides expands a panel-side string over the alphabet {l,r,b,t}
// (case-insensitive) into the sides it names.
func ParseSides(which string) ([]Side, error) {
	var sides []Side
	seen := map[Side]bool{}
	for _, c := range which {
		var s Side
		switch c {
		case 'l', 'L':
			s = SideLeft
		case 'r', 'R':
			s = SideRight
		case 'b', 'B':
			s = SideBottom
		case 't', 'T':
			s = SideTop
		default:
			return nil, fmt.Errorf("gridplot: panel sides may contain l, r, b or t, got %q in %q", string(c), which)
		}
		if !seen[s] {
			seen[s] = true
			sides = append(sides, s)
		}
	}
	return sides, nil
}

// A Plotter draws data onto a prepared axis canvas.
type Plotter interface {
	Plot(c draw.Canvas, ax *Axis)
}

// An Axis is one placed drawable region: a main subplot, an inner or
// outer panel, a twin, or a colorbar substitute. Axes live in a flat
// arena owned by their Figure; cross references (panels, twins, parent,
// colorbar) are arena indices, not pointers, so there are no reference
// cycles to manage.
type Axis struct {
	fig   *Figure
	index int

	// Number is the sequential subplot number (1..N) for main axes and
	// zero for panels, twins and colorbars.
	Number int
	// Side tags panel axes with the edge they occupy.
	Side Side

	parent   int // owning main axis for panels/twins/colorbars, -1 otherwise
	panels   [4]int
	xTwin    int // axis carrying alternate x units, -1 if none
	yTwin    int
	colorbar int // colorbar axis drawn in this cell, -1 if none

	// rowSpan and colSpan are half-open grid-cell intervals in the full
	// grid, outer panel rows/columns included.
	rowSpan, colSpan [2]int

	// inner subdivides this cell when the axis owns inner panels;
	// localCell locates a panel axis inside its parent's subdivision.
	inner     *innerLayout
	localCell [2]int

	Title          string
	XLabel, YLabel string
	RowLabel       string
	ColLabel       string

	XLim, YLim Interval

	XTicker, YTicker plot.Ticker

	// ShowXTicks/ShowYTicks control tick label visibility; sharing
	// level 3 clears them on dependents. TickLabelsTop marks axes whose
	// x tick labels sit on the top edge, which the super title offset
	// heuristic consults.
	ShowXTicks, ShowYTicks bool
	ShowXLabel, ShowYLabel bool
	TickLabelsTop          bool

	// Proj names an axis projection variant. ProjUntrusted marks
	// projections whose rendered bounding box cannot be trusted; any
	// such axis disables the figure's tight layout pass.
	Proj          string
	ProjUntrusted bool

	shareX, shareY *SharingRelation
	SpanX, SpanY   bool

	dualX, dualY *DualScale

	Plotters []Plotter

	// rowLabelX is the reconciled row-label offset in axes fractions,
	// updated each draw.
	rowLabelX float64
}

// Figure returns the figure owning ax.
func (ax *Axis) Figure() *Figure { return ax.fig }

// Panel returns the inner panel on side s, or nil.
func (ax *Axis) Panel(s Side) *Axis {
	if s < SideLeft || s > SideTop {
		return nil
	}
	return ax.fig.at(ax.panels[s])
}

// Parent returns the main axis a panel, twin or colorbar belongs to.
func (ax *Axis) Parent() *Axis { return ax.fig.at(ax.parent) }

// TwinForX returns the axis carrying alternate x units, or nil.
func (ax *Axis) TwinForX() *Axis { return ax.fig.at(ax.xTwin) }

// TwinForY returns the axis carrying alternate y units, or nil.
func (ax *Axis) TwinForY() *Axis { return ax.fig.at(ax.yTwin) }

// ColorbarAxis returns the colorbar substitute occupying this cell, or nil.
func (ax *Axis) ColorbarAxis() *Axis { return ax.fig.at(ax.colorbar) }

// Colorbar creates (or returns) the colorbar axis occupying the same
// cell. Its bounding box substitutes for this axis in the tight pass.
func (ax *Axis) Colorbar() *Axis {
	if cb := ax.fig.at(ax.colorbar); cb != nil {
		return cb
	}
	cb := ax.fig.addAxis(ax.rowSpan, ax.colSpan)
	cb.parent = ax.index
	cb.ShowXTicks, cb.ShowYTicks = false, false
	cb.ShowXLabel, cb.ShowYLabel = false, false
	ax.colorbar = cb.index
	return cb
}

// SetXLim fixes the x limits. With sharing level ShareLimits or above the
// new limits propagate through the sharing base to every group member.
func (ax *Axis) SetXLim(min, max float64) {
	base := ax
	if ax.shareX != nil && ax.shareX.Level >= ShareLimits {
		base = ax.fig.at(ax.shareX.Base)
	}
	base.XLim = Interval{min, max}
	for _, other := range ax.fig.axes {
		if other.shareX != nil && other.shareX.Base == base.index && other.shareX.Level >= ShareLimits {
			other.XLim = base.XLim
		}
	}
}

// SetYLim fixes the y limits, propagating through y sharing like SetXLim.
func (ax *Axis) SetYLim(min, max float64) {
	base := ax
	if ax.shareY != nil && ax.shareY.Level >= ShareLimits {
		base = ax.fig.at(ax.shareY.Base)
	}
	base.YLim = Interval{min, max}
	for _, other := range ax.fig.axes {
		if other.shareY != nil && other.shareY.Base == base.index && other.shareY.Level >= ShareLimits {
			other.YLim = base.YLim
		}
	}
}

// Map maps the data coordinate (x,y) into a point on the axis canvas.
func (ax *Axis) Map(c draw.Canvas, x, y float64) vg.Point {
	size := c.Size()
	xl, yl := ax.effectiveXLim(), ax.effectiveYLim()
	xu := (x - xl.Min) / (xl.Max - xl.Min)
	yu := (y - yl.Min) / (yl.Max - yl.Min)
	return vg.Point{
		X: c.Min.X + vg.Length(xu)*size.X,
		Y: c.Min.Y + vg.Length(yu)*size.Y,
	}
}

// effectiveXLim substitutes [-1,1] for unset or degenerate limits.
func (ax *Axis) effectiveXLim() Interval {
	return effectiveLim(ax.XLim)
}

func (ax *Axis) effectiveYLim() Interval {
	return effectiveLim(ax.YLim)
}

func effectiveLim(i Interval) Interval {
	if !i.IsSet() || i.Min == i.Max {
		return Interval{-1, 1}
	}
	return i
}

// relatives returns the panel, twin and colorbar axes attached to ax,
// whose bounding boxes merge into its span during the tight pass.
func (ax *Axis) relatives() []*Axis {
	var rel []*Axis
	for _, idx := range ax.panels {
		if sub := ax.fig.at(idx); sub != nil {
			rel = append(rel, sub)
		}
	}
	if t := ax.fig.at(ax.xTwin); t != nil {
		rel = append(rel, t)
	}
	if t := ax.fig.at(ax.yTwin); t != nil {
		rel = append(rel, t)
	}
	return rel
}

// measured is the axis whose bounding box stands in for ax: the colorbar
// axis when one has been drawn in the same cell, else ax itself.
func (ax *Axis) measured() *Axis {
	if cb := ax.fig.at(ax.colorbar); cb != nil {
		return cb
	}
	return ax
}

// An AxesList is the ordered, iteration-transparent handle over a
// figure's main axes returned by Subplots. Indexing and slicing work as
// for any Go slice; Broadcast applies one operation to every axis with
// explicit result collection.
type AxesList []*Axis

// CollectedKind discriminates the Collected union.
type CollectedKind int

const (
	CollectedEmpty CollectedKind = iota
	CollectedSingle
	CollectedMany
)

// A Collected is the result of broadcasting over an axes list: Empty when
// no axis produced a value, Single when exactly one did, Many otherwise.
type Collected struct {
	Kind   CollectedKind
	Value  any   // set for Single
	Values []any // set for Many
}

// Broadcast applies f to every axis and collapses the results. Axes may
// opt out by returning a nil value; if some but not all opt out the
// broadcast is inconsistent and fails with a *BroadcastError. The first
// error from f aborts the broadcast.
func (l AxesList) Broadcast(f func(*Axis) (any, error)) (Collected, error) {
	var vals []any
	for _, ax := range l {
		v, err := f(ax)
		if err != nil {
			return Collected{}, err
		}
		if v != nil {
			vals = append(vals, v)
		}
	}
	switch {
	case len(vals) == 0:
		return Collected{Kind: CollectedEmpty}, nil
	case len(vals) == len(l):
		if len(vals) == 1 {
			return Collected{Kind: CollectedSingle, Value: vals[0]}, nil
		}
		return Collected{Kind: CollectedMany, Values: vals}, nil
	default:
		return Collected{}, &BroadcastError{Got: len(vals), Of: len(l)}
	}
}

// Each applies f to every axis in the list.
func (l AxesList) Each(f func(*Axis)) AxesList {
	for _, ax := range l {
		f(ax)
	}
	return l
}

// SetXLim broadcasts SetXLim to every axis.
func (l AxesList) SetXLim(min, max float64) AxesList {
	return l.Each(func(ax *Axis) { ax.SetXLim(min, max) })
}

// SetYLim broadcasts SetYLim to every axis.
func (l AxesList) SetYLim(min, max float64) AxesList {
	return l.Each(func(ax *Axis) { ax.SetYLim(min, max) })
}

// SetXLabel broadcasts an x axis label.
func (l AxesList) SetXLabel(label string) AxesList {
	return l.Each(func(ax *Axis) { ax.XLabel = label })
}

// SetYLabel broadcasts a y axis label.
func (l AxesList) SetYLabel(label string) AxesList {
	return l.Each(func(ax *Axis) { ax.YLabel = label })
}

// SetRowLabels assigns one label per grid row, written on the leftmost
// axis of each row. The label count must match the row count.
func (l AxesList) SetRowLabels(labels []string) error {
	targets := l.edgeAxes(false)
	if len(labels) != len(targets) {
		return fmt.Errorf("gridplot: %d row labels for %d rows", len(labels), len(targets))
	}
	for i, ax := range targets {
		ax.RowLabel = labels[i]
	}
	return nil
}

// SetColLabels assigns one label per grid column, written on the topmost
// axis of each column. The label count must match the column count.
func (l AxesList) SetColLabels(labels []string) error {
	targets := l.edgeAxes(true)
	if len(labels) != len(targets) {
		return fmt.Errorf("gridplot: %d column labels for %d columns", len(labels), len(targets))
	}
	for i, ax := range targets {
		ax.ColLabel = labels[i]
	}
	return nil
}

// edgeAxes picks the axes along the top edge (forCols) or left edge,
// ordered across that edge. Spanning axes appear once.
func (l AxesList) edgeAxes(forCols bool) []*Axis {
	edge := -1
	for _, ax := range l {
		at := ax.colSpan[0]
		if forCols {
			at = ax.rowSpan[0]
		}
		if edge < 0 || at < edge {
			edge = at
		}
	}
	var out []*Axis
	for _, ax := range l {
		if forCols {
			if ax.rowSpan[0] == edge {
				out = append(out, ax)
			}
		} else if ax.colSpan[0] == edge {
			out = append(out, ax)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if forCols {
			return out[i].colSpan[0] < out[j].colSpan[0]
		}
		return out[i].rowSpan[0] < out[j].rowSpan[0]
	})
	return out
}
