package gridplot

import (
	"image/color"
	"math"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// A Figure owns the grid recipe, the axes arena and the layout state.
// All axes of a figure live in f.axes; they refer to each other by
// arena index only. Figure methods that mutate layout state are safe
// for concurrent use.
type Figure struct {
	mu  sync.Mutex
	log *log.Logger

	style  *Style
	recipe *GridRecipe
	grid   *GridSpec

	axes []*Axis

	backend Backend

	// SupTitle is the centered figure-level title.
	SupTitle string

	tight     bool
	tightDone bool
	pad       float64 // outer margin clearance, inches
	innerPad  float64 // subplot spacing clearance, inches

	// extraPad is top margin reserved for the super title. It only
	// grows, so repeated draws never oscillate.
	extraPad float64
	// supY is the super title baseline in inches from the figure
	// bottom, fixed by reconcileTitles.
	supY float64

	resetStyle bool
}

func newFigure(recipe *GridRecipe, style *Style, logger *log.Logger) *Figure {
	if logger == nil {
		logger = log.New(os.Stderr).WithPrefix("gridplot")
	}
	f := &Figure{
		log:    logger,
		style:  style,
		recipe: recipe,
		grid:   recipe.GridSpec(),
	}
	f.backend = fontMeasure{fig: f}
	return f
}

// at resolves an arena index; negative indices are the nil reference.
func (f *Figure) at(idx int) *Axis {
	if idx < 0 || idx >= len(f.axes) {
		return nil
	}
	return f.axes[idx]
}

func (f *Figure) addAxis(rowSpan, colSpan [2]int) *Axis {
	ax := &Axis{
		fig:        f,
		index:      len(f.axes),
		Side:       SideNone,
		parent:     -1,
		panels:     [4]int{-1, -1, -1, -1},
		xTwin:      -1,
		yTwin:      -1,
		colorbar:   -1,
		rowSpan:    rowSpan,
		colSpan:    colSpan,
		XLim:       unsetInterval(),
		YLim:       unsetInterval(),
		ShowXTicks: true,
		ShowYTicks: true,
		ShowXLabel: true,
		ShowYLabel: true,
	}
	f.axes = append(f.axes, ax)
	return ax
}

// Axes returns the figure's main axes in subplot number order.
func (f *Figure) Axes() AxesList {
	var list AxesList
	for _, ax := range f.axes {
		if ax.Number > 0 {
			list = append(list, ax)
		}
	}
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && list[j-1].Number > list[j].Number; j-- {
			list[j-1], list[j] = list[j], list[j-1]
		}
	}
	return list
}

// Width returns the current figure width in inches.
func (f *Figure) Width() float64 { return f.recipe.Width }

// Height returns the current figure height in inches.
func (f *Figure) Height() float64 { return f.recipe.Height }

// Recipe exposes the underlying grid recipe.
func (f *Figure) Recipe() *GridRecipe { return f.recipe }

// SetBackend replaces the bounding box measurer used by the automatic
// layout pass.
func (f *Figure) SetBackend(b Backend) { f.backend = b }

// axisRect resolves the fractional rectangle of any axis in the arena.
// Twins and colorbars overlay their parent; inner panels occupy a
// sub-cell of their parent's grid cell.
func (f *Figure) axisRect(ax *Axis) Rect {
	if p := f.at(ax.parent); p != nil {
		if p.inner != nil && ax.Side != SideNone && p.panels[ax.Side] == ax.index {
			cell := f.grid.Cell(p.rowSpan[0], p.rowSpan[1], p.colSpan[0], p.colSpan[1])
			return p.inner.rect(cell, f.recipe.Width, f.recipe.Height, ax.localCell[0], ax.localCell[1])
		}
		return f.axisRect(p)
	}
	cell := f.grid.Cell(ax.rowSpan[0], ax.rowSpan[1], ax.colSpan[0], ax.colSpan[1])
	if ax.inner != nil {
		return ax.inner.rect(cell, f.recipe.Width, f.recipe.Height, ax.inner.mainRow, ax.inner.mainCol)
	}
	return cell
}

// lockTwins re-derives every alternate-unit twin's limits from its
// primary axis.
func (f *Figure) lockTwins() error {
	for _, ax := range f.axes {
		if ax.dualX != nil {
			lim, err := ax.dualX.lock(ax.effectiveXLim())
			if err != nil {
				return err
			}
			if tw := f.at(ax.xTwin); tw != nil {
				tw.XLim = lim
			}
		}
		if ax.dualY != nil {
			lim, err := ax.dualY.lock(ax.effectiveYLim())
			if err != nil {
				return err
			}
			if tw := f.at(ax.yTwin); tw != nil {
				tw.YLim = lim
			}
		}
	}
	return nil
}

// reconcileTitles fixes the row label offsets and the super title
// baseline. The super title clears whatever the top subplot row puts
// on its upper edge: top tick labels first, then titles and column
// labels, then the bare axes edge.
func (f *Figure) reconcileTitles() {
	st := f.style
	for _, ax := range f.axes {
		if ax.Number == 0 || ax.RowLabel == "" {
			continue
		}
		lbl := ax.RowLabel
		ax.RowLabel = ""
		b, ok := f.backend.TightBox(ax)
		ax.RowLabel = lbl
		if !ok {
			continue
		}
		r := f.axisRect(ax)
		axW := r.W() * f.recipe.Width
		if axW > 0 {
			ax.rowLabelX = (b.X0 - r.X0*f.recipe.Width - axisLabelPad) / axW
		}
	}

	if f.SupTitle == "" {
		return
	}
	offset := titlePad
	ticksTop, titled := false, false
	for _, ax := range f.axes {
		if ax.Number == 0 || ax.rowSpan[0] != 0 {
			continue
		}
		if ax.ShowXTicks && ax.TickLabelsTop {
			ticksTop = true
		}
		if ax.Title != "" || ax.ColLabel != "" {
			titled = true
		}
		if tw := f.at(ax.xTwin); tw != nil && tw.ShowXTicks && tw.TickLabelsTop {
			ticksTop = true
		}
	}
	switch {
	case ticksTop:
		offset = inches(st.Tick.Length) + tickLabelPad +
			inches(st.Tick.Label.Font.Extents().Height) + titlePad
	case titled:
		offset = titlePad + inches(st.Title.Font.Extents().Height) + titlePad
	}
	f.supY = f.recipe.Height - f.recipe.Top + offset
	need := f.supY + inches(st.SupTitle.Font.Extents().Height) + f.pad - f.recipe.Height
	if need > f.extraPad {
		f.extraPad = need
	}
}

// tightBoxes collects one decorated bounding box per independently
// placed axis: main axes merged with their panels, twins and colorbars,
// plus standalone outer panel axes. ok is false when any box cannot be
// produced.
type tightEntry struct {
	rowSpan, colSpan [2]int
	box              Box
}

func (f *Figure) tightBoxes() ([]tightEntry, bool) {
	var entries []tightEntry
	for _, ax := range f.axes {
		if ax.parent >= 0 {
			continue
		}
		b, ok := f.backend.TightBox(ax.measured())
		if !ok {
			return nil, false
		}
		for _, rel := range ax.relatives() {
			rb, rok := f.backend.TightBox(rel.measured())
			if !rok {
				return nil, false
			}
			b = b.union(rb)
		}
		entries = append(entries, tightEntry{ax.rowSpan, ax.colSpan, b})
	}
	return entries, true
}

// tightLayout shrinks or grows the outer margins and the inter-subplot
// spacing so that every decoration clears its neighbor by exactly the
// configured pad. It reports false when the pass produced no usable
// result and should be retried on the next draw.
func (f *Figure) tightLayout() bool {
	for _, ax := range f.axes {
		if ax.ProjUntrusted {
			f.log.Warn("automatic layout disabled",
				"reason", "projection with untrusted extent", "proj", ax.Proj)
			return true
		}
	}
	entries, ok := f.tightBoxes()
	if !ok {
		f.log.Warn("automatic layout skipped, extents not measurable")
		return false
	}
	if len(entries) == 0 {
		return true
	}
	r := f.recipe

	lGap, rGap := math.Inf(1), math.Inf(1)
	bGap, tGap := math.Inf(1), math.Inf(1)
	for _, e := range entries {
		lGap = math.Min(lGap, e.box.X0)
		rGap = math.Min(rGap, r.Width-e.box.X1)
		bGap = math.Min(bGap, e.box.Y0)
		tGap = math.Min(tGap, r.Height-e.box.Y1)
	}
	newLeft := math.Max(0, r.Left-lGap+f.pad)
	newRight := math.Max(0, r.Right-rGap+f.pad)
	newBottom := math.Max(0, r.Bottom-bGap+f.pad)
	newTop := math.Max(0, r.Top-tGap+f.pad+f.extraPad)

	// Inter-subplot gaps over the full grid, panel gaps included. The
	// tightest touching pair across each gap decides its new spacing.
	wsp := make([]float64, 0, r.Cols+1)
	if r.HasLeftPanels() {
		wsp = append(wsp, r.LSpace)
	}
	wsp = append(wsp, r.WSpace...)
	if r.HasRightPanels() {
		wsp = append(wsp, r.RSpace)
	}
	hsp := append([]float64(nil), r.HSpace...)
	if r.HasBottomPanels() {
		hsp = append(hsp, r.BSpace)
	}

	for g := range wsp {
		minFree, found := math.Inf(1), false
		for _, a := range entries {
			if a.colSpan[1] != g+1 {
				continue
			}
			for _, b := range entries {
				if b.colSpan[0] != g+1 || !spansOverlap(a.rowSpan, b.rowSpan) {
					continue
				}
				minFree = math.Min(minFree, b.box.X0-a.box.X1)
				found = true
			}
		}
		if found {
			wsp[g] = math.Max(0, wsp[g]-minFree+f.innerPad)
		}
	}
	for g := range hsp {
		minFree, found := math.Inf(1), false
		for _, a := range entries {
			if a.rowSpan[1] != g+1 {
				continue
			}
			for _, b := range entries {
				if b.rowSpan[0] != g+1 || !spansOverlap(a.colSpan, b.colSpan) {
					continue
				}
				minFree = math.Min(minFree, a.box.Y0-b.box.Y1)
				found = true
			}
		}
		if found {
			hsp[g] = math.Max(0, hsp[g]-minFree+f.innerPad)
		}
	}

	vals := append([]float64{newLeft, newRight, newBottom, newTop}, wsp...)
	vals = append(vals, hsp...)
	for _, v := range vals {
		if math.IsNaN(v) {
			f.log.Warn("automatic layout produced NaN spacing, keeping current layout")
			return false
		}
	}

	r.Left, r.Right, r.Bottom, r.Top = newLeft, newRight, newBottom, newTop
	i := 0
	if r.HasLeftPanels() {
		r.LSpace = wsp[0]
		i = 1
	}
	copy(r.WSpace, wsp[i:i+len(r.WSpace)])
	if r.HasRightPanels() {
		r.RSpace = wsp[len(wsp)-1]
	}
	copy(r.HSpace, hsp[:len(r.HSpace)])
	if r.HasBottomPanels() {
		r.BSpace = hsp[len(hsp)-1]
	}
	f.grid = r.GridSpec()
	return true
}

func spansOverlap(a, b [2]int) bool { return a[0] < b[1] && b[0] < a[1] }

// prepare runs the pre-draw fixups: twin locking, title reconciliation
// and, once, the automatic layout pass.
func (f *Figure) prepare() error {
	if err := f.lockTwins(); err != nil {
		return err
	}
	f.reconcileTitles()
	if f.tight && !f.tightDone {
		if f.tightLayout() {
			f.tightDone = true
		}
		f.reconcileTitles()
	}
	return nil
}

// Draw renders the figure onto an arbitrary canvas. Layout fractions
// map onto the canvas rectangle, so the caller controls the final
// size. A twin axis whose limits cannot be locked aborts the render.
func (f *Figure) Draw(c draw.Canvas) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.prepare(); err != nil {
		return err
	}
	f.paint(c)
	if f.resetStyle {
		ResetDefault()
	}
	return nil
}

// Save renders the figure at its resolved size and writes it as a PNG.
func (f *Figure) Save(path string) (err error) {
	f.mu.Lock()
	if err = f.prepare(); err != nil {
		f.mu.Unlock()
		return err
	}
	img := vgimg.NewWith(
		vgimg.UseWH(vgIn(f.recipe.Width), vgIn(f.recipe.Height)),
		vgimg.UseDPI(int(f.style.DPI)),
	)
	f.paint(draw.New(img))
	f.mu.Unlock()

	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fd.Close(); err == nil {
			err = cerr
		}
	}()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err = png.WriteTo(fd); err != nil {
		return err
	}
	if f.resetStyle {
		ResetDefault()
	}
	return nil
}

func vgIn(in float64) vg.Length { return vg.Length(in) * vg.Inch }

func (f *Figure) paint(c draw.Canvas) {
	fillRect(c, f.style.Background, c.Rectangle)
	for _, ax := range f.axes {
		f.paintAxis(c, ax)
	}
	if f.SupTitle != "" {
		sz := c.Size()
		pt := vg.Point{
			X: c.Min.X + sz.X/2,
			Y: c.Min.Y + vg.Length(f.supY/f.recipe.Height)*sz.Y,
		}
		c.FillText(f.style.SupTitle, pt, f.SupTitle)
	}
}

func (f *Figure) paintAxis(c draw.Canvas, ax *Axis) {
	st := f.style
	rect := f.canvasRect(c, f.axisRect(ax))
	sub := draw.Canvas{Canvas: c.Canvas, Rectangle: rect}

	isColorbar := false
	if p := f.at(ax.parent); p != nil && p.colorbar == ax.index {
		isColorbar = true
	}
	if ax.Side != SideNone || isColorbar {
		fillRect(c, st.Panel.Background, rect)
	}
	strokeRect(c, st.Frame, rect)

	if ax.ShowXTicks {
		f.paintXTicks(c, ax, rect)
	}
	if ax.ShowYTicks {
		f.paintYTicks(c, ax, rect)
	}
	f.paintLabels(c, ax, rect)

	for _, p := range ax.Plotters {
		p.Plot(sub, ax)
	}
}

func (f *Figure) paintXTicks(c draw.Canvas, ax *Axis, rect vg.Rectangle) {
	st := f.style
	lim := ax.effectiveXLim()
	edge, dir := rect.Min.Y, vg.Length(-1)
	if ax.TickLabelsTop {
		edge, dir = rect.Max.Y, 1
	}
	ts := st.Tick.Label
	ts.XAlign = draw.XCenter
	ts.YAlign = draw.YTop
	if ax.TickLabelsTop {
		ts.YAlign = draw.YBottom
	}
	for _, tk := range ticksFor(ax.XTicker, lim) {
		x := rect.Min.X + vg.Length((tk.Value-lim.Min)/(lim.Max-lim.Min))*(rect.Max.X-rect.Min.X)
		if x < rect.Min.X || x > rect.Max.X {
			continue
		}
		length := st.Tick.Length
		if tk.IsMinor() {
			length /= 2
		}
		c.StrokeLine2(st.Tick.LineStyle, x, edge, x, edge+dir*length)
		if tk.Label == "" {
			continue
		}
		c.FillText(ts, vg.Point{X: x, Y: edge + dir*(st.Tick.Length+vgIn(tickLabelPad))}, tk.Label)
	}
}

func (f *Figure) paintYTicks(c draw.Canvas, ax *Axis, rect vg.Rectangle) {
	st := f.style
	lim := ax.effectiveYLim()
	edge, dir := rect.Min.X, vg.Length(-1)
	if ax.yTicksRight() {
		edge, dir = rect.Max.X, 1
	}
	ts := st.Tick.Label
	ts.XAlign = draw.XRight
	ts.YAlign = -0.3 // draw.YCenter
	if ax.yTicksRight() {
		ts.XAlign = draw.XLeft
	}
	for _, tk := range ticksFor(ax.YTicker, lim) {
		y := rect.Min.Y + vg.Length((tk.Value-lim.Min)/(lim.Max-lim.Min))*(rect.Max.Y-rect.Min.Y)
		if y < rect.Min.Y || y > rect.Max.Y {
			continue
		}
		length := st.Tick.Length
		if tk.IsMinor() {
			length /= 2
		}
		c.StrokeLine2(st.Tick.LineStyle, edge, y, edge+dir*length, y)
		if tk.Label == "" {
			continue
		}
		c.FillText(ts, vg.Point{X: edge + dir*(st.Tick.Length+vgIn(tickLabelPad)), Y: y}, tk.Label)
	}
}

func (f *Figure) paintLabels(c draw.Canvas, ax *Axis, rect vg.Rectangle) {
	st := f.style
	tickH := st.Tick.Label.Font.Extents().Height
	xmid := (rect.Min.X + rect.Max.X) / 2
	ymid := (rect.Min.Y + rect.Max.Y) / 2

	if ax.ShowXLabel && ax.XLabel != "" {
		if ax.SpanX {
			if lo, hi, ok := f.shareSpan(ax, true); ok {
				xmid = c.Min.X + vg.Length((lo+hi)/2)*c.Size().X
			}
		}
		ts := st.Label
		ts.XAlign = draw.XCenter
		clear := st.Tick.Length + vgIn(tickLabelPad) + tickH + vgIn(axisLabelPad)
		if ax.TickLabelsTop {
			ts.YAlign = draw.YBottom
			c.FillText(ts, vg.Point{X: xmid, Y: rect.Max.Y + clear}, ax.XLabel)
		} else {
			ts.YAlign = draw.YTop
			c.FillText(ts, vg.Point{X: xmid, Y: rect.Min.Y - clear}, ax.XLabel)
		}
	}
	if ax.ShowYLabel && ax.YLabel != "" {
		if ax.SpanY {
			if lo, hi, ok := f.shareSpan(ax, false); ok {
				ymid = c.Min.Y + vg.Length((lo+hi)/2)*c.Size().Y
			}
		}
		ts := st.Label
		ts.XAlign = draw.XCenter
		ts.YAlign = draw.YBottom
		clear := st.Tick.Length + vgIn(tickLabelPad+axisLabelPad) + vgIn(f.maxYTickWidth(ax))
		x := rect.Min.X - clear
		angle := math.Pi / 2
		if ax.yTicksRight() {
			x = rect.Max.X + clear
			angle = -math.Pi / 2
		}
		c.Push()
		c.Translate(vg.Point{X: x, Y: ymid})
		c.Rotate(angle)
		c.FillText(ts, vg.Point{}, ax.YLabel)
		c.Pop()
	}
	if ax.Title != "" {
		ts := st.Title
		ts.XAlign = draw.XCenter
		ts.YAlign = draw.YBottom
		c.FillText(ts, vg.Point{X: xmid, Y: rect.Max.Y + vgIn(titlePad)}, ax.Title)
	}
	if ax.ColLabel != "" {
		ts := st.Label
		ts.XAlign = draw.XCenter
		ts.YAlign = draw.YBottom
		y := rect.Max.Y + vgIn(titlePad)
		if ax.Title != "" {
			y += st.Title.Font.Extents().Height + vgIn(titlePad)
		}
		c.FillText(ts, vg.Point{X: xmid, Y: y}, ax.ColLabel)
	}
	if ax.RowLabel != "" {
		ts := st.Label
		ts.XAlign = draw.XRight
		ts.YAlign = -0.3 // draw.YCenter
		x := rect.Min.X + vg.Length(ax.rowLabelX)*(rect.Max.X-rect.Min.X)
		c.FillText(ts, vg.Point{X: x, Y: ymid}, ax.RowLabel)
	}
}

// shareSpan returns the fractional extent covered by ax and the axes
// whose sharing relation points at it, so a spanning label can center
// over the whole group. ok is false for a group of one.
func (f *Figure) shareSpan(ax *Axis, forX bool) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	count := 0
	for _, other := range f.axes {
		rel := other.shareX
		if !forX {
			rel = other.shareY
		}
		if other.index != ax.index && (rel == nil || rel.Base != ax.index) {
			continue
		}
		r := f.axisRect(other)
		if forX {
			lo = math.Min(lo, r.X0)
			hi = math.Max(hi, r.X1)
		} else {
			lo = math.Min(lo, r.Y0)
			hi = math.Max(hi, r.Y1)
		}
		count++
	}
	return lo, hi, count > 1
}

func (f *Figure) maxYTickWidth(ax *Axis) float64 {
	return fontMeasure{fig: f}.maxTickWidth(ax.YTicker, ax.effectiveYLim())
}

func (f *Figure) canvasRect(c draw.Canvas, r Rect) vg.Rectangle {
	sz := c.Size()
	return vg.Rectangle{
		Min: vg.Point{X: c.Min.X + vg.Length(r.X0)*sz.X, Y: c.Min.Y + vg.Length(r.Y0)*sz.Y},
		Max: vg.Point{X: c.Min.X + vg.Length(r.X1)*sz.X, Y: c.Min.Y + vg.Length(r.Y1)*sz.Y},
	}
}

func ticksFor(t plot.Ticker, lim Interval) []plot.Tick {
	if t == nil {
		t = plot.DefaultTicks{}
	}
	return t.Ticks(lim.Min, lim.Max)
}

func fillRect(c draw.Canvas, col color.Color, r vg.Rectangle) {
	if col == nil {
		return
	}
	c.SetColor(col)
	var p vg.Path
	p.Move(r.Min)
	p.Line(vg.Point{X: r.Max.X, Y: r.Min.Y})
	p.Line(r.Max)
	p.Line(vg.Point{X: r.Min.X, Y: r.Max.Y})
	p.Close()
	c.Fill(p)
}

func strokeRect(c draw.Canvas, sty draw.LineStyle, r vg.Rectangle) {
	c.StrokeLines(sty, []vg.Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
		r.Min,
	})
}
