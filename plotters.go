package gridplot

import (
	"image/color"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Line draws the points of XY connected in order.
type Line struct {
	XY    plotter.XYer
	Style draw.LineStyle
}

func (l Line) Plot(c draw.Canvas, ax *Axis) {
	sty := l.Style
	if sty.Color == nil {
		sty.Color = color.Black
	}
	if sty.Width == 0 {
		sty.Width = vg.Length(1)
	}
	pts := make([]vg.Point, 0, l.XY.Len())
	for i := 0; i < l.XY.Len(); i++ {
		x, y := l.XY.XY(i)
		pts = append(pts, ax.Map(c, x, y))
	}
	c.StrokeLines(sty, c.ClipLinesXY(pts)...)
}

// Point draws one glyph per point of XY.
type Point struct {
	XY    plotter.XYer
	Style draw.GlyphStyle
}

func (p Point) Plot(c draw.Canvas, ax *Axis) {
	sty := p.Style
	if sty.Color == nil {
		sty.Color = color.Black
	}
	if sty.Radius == 0 {
		sty.Radius = vg.Length(2)
	}
	if sty.Shape == nil {
		sty.Shape = draw.CircleGlyph{}
	}
	for i := 0; i < p.XY.Len(); i++ {
		x, y := p.XY.XY(i)
		pt := ax.Map(c, x, y)
		if !c.Contains(pt) {
			continue
		}
		c.DrawGlyph(sty, pt)
	}
}
