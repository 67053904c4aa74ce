package gridplot

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// A Box is an extent in figure inches with the origin at the
// bottom-left figure corner.
type Box struct {
	X0, Y0, X1, Y1 float64
}

func (b Box) union(o Box) Box {
	if o.X0 < b.X0 {
		b.X0 = o.X0
	}
	if o.Y0 < b.Y0 {
		b.Y0 = o.Y0
	}
	if o.X1 > b.X1 {
		b.X1 = o.X1
	}
	if o.Y1 > b.Y1 {
		b.Y1 = o.Y1
	}
	return b
}

// A Backend reports the decorated extent of an axis for the tight
// layout pass. ok is false when the extent cannot be trusted, which
// makes the pass keep the current spacing for that axis.
type Backend interface {
	TightBox(ax *Axis) (box Box, ok bool)
}

// Clearances between an axis edge and its decorations, in inches.
const (
	tickLabelPad = 3.0 / 72
	axisLabelPad = 4.0 / 72
	titlePad     = 5.0 / 72
)

// fontMeasure is the default Backend. It derives each extent from the
// style's font metrics rather than from a rasterized canvas, so the
// tight pass needs no rendering round trip and stays deterministic.
type fontMeasure struct {
	fig *Figure
}

func (m fontMeasure) TightBox(ax *Axis) (Box, bool) {
	if ax.ProjUntrusted {
		return Box{}, false
	}
	f := m.fig
	r := f.axisRect(ax)
	b := Box{
		X0: r.X0 * f.recipe.Width,
		X1: r.X1 * f.recipe.Width,
		Y0: r.Y0 * f.recipe.Height,
		Y1: r.Y1 * f.recipe.Height,
	}
	st := f.style
	tickLen := inches(st.Tick.Length)
	labelH := inches(st.Label.Font.Extents().Height)
	tickH := inches(st.Tick.Label.Font.Extents().Height)

	right := ax.yTicksRight()
	if ax.ShowYTicks {
		w := tickLen + tickLabelPad + m.maxTickWidth(ax.YTicker, ax.effectiveYLim())
		if right {
			b.X1 += w
		} else {
			b.X0 -= w
		}
	}
	if ax.ShowYLabel && ax.YLabel != "" {
		if right {
			b.X1 += axisLabelPad + labelH
		} else {
			b.X0 -= axisLabelPad + labelH
		}
	}
	if ax.ShowXTicks {
		h := tickLen + tickLabelPad + tickH
		if ax.TickLabelsTop {
			b.Y1 += h
		} else {
			b.Y0 -= h
		}
	}
	if ax.ShowXLabel && ax.XLabel != "" {
		if ax.TickLabelsTop {
			b.Y1 += axisLabelPad + labelH
		} else {
			b.Y0 -= axisLabelPad + labelH
		}
	}
	if ax.Title != "" {
		b.Y1 += titlePad + inches(st.Title.Font.Extents().Height)
	}
	if ax.RowLabel != "" {
		b.X0 -= axisLabelPad + inches(st.Label.Font.Width(ax.RowLabel))
	}
	if ax.ColLabel != "" {
		b.Y1 += axisLabelPad + labelH
	}
	return b, true
}

func (m fontMeasure) maxTickWidth(t plot.Ticker, lim Interval) float64 {
	if t == nil {
		t = plot.DefaultTicks{}
	}
	var max vg.Length
	for _, tk := range t.Ticks(lim.Min, lim.Max) {
		if tk.Label == "" {
			continue
		}
		if w := m.fig.style.Tick.Label.Font.Width(tk.Label); w > max {
			max = w
		}
	}
	return inches(max)
}

func inches(l vg.Length) float64 { return float64(l / vg.Inch) }

// yTicksRight reports whether the y tick labels of ax sit on its right
// edge. Right-hand panels and alternate-unit y twins label there.
func (ax *Axis) yTicksRight() bool {
	if ax.Side == SideRight {
		return true
	}
	if p := ax.fig.at(ax.parent); p != nil && p.yTwin == ax.index {
		return true
	}
	return false
}
