package gridplot

import "fmt"

// A PanelKind selects the sizing defaults for a panel: plain panels hold
// plots, colorbar and legend panels are sized for their content.
type PanelKind int

const (
	PanelPlain PanelKind = iota
	PanelColorbar
	PanelLegend
)

// An OuterPanel describes a strip along one figure edge. Either On is set
// (one panel spanning every row/column) or Groups assigns each row/column
// a panel id: equal nonzero ids form one panel spanning those contiguous
// rows/columns, zero leaves that segment empty. Width and Space default
// by Kind.
type OuterPanel struct {
	On     bool
	Groups []int
	Kind   PanelKind
	Width  Size
	Space  Size
}

func (p OuterPanel) enabled() bool { return p.On || len(p.Groups) > 0 }

// OuterPanels toggles figure-edge panels. There is no top outer panel;
// the super title owns that edge.
type OuterPanels struct {
	Left   OuterPanel
	Right  OuterPanel
	Bottom OuterPanel
}

// Sizing carries every size-related input of a grid build. Unset fields
// fall back to the style's SizingDefaults. Width/Height, AxWidth/AxHeight
// and Journal are mutually exclusive ways to pin the figure dimensions;
// see BuildGrid.
type Sizing struct {
	Width, Height     Size
	AxWidth, AxHeight Size
	Journal           string

	// Aspect is the width:height ratio of the average axes. The pair
	// form AspectWH wins over Aspect when both its entries are nonzero.
	// Zero means square.
	Aspect   float64
	AspectWH [2]float64

	WRatios, HRatios []float64
	WSpace, HSpace   []Size

	Left, Right, Top, Bottom Size

	Outer OuterPanels

	// WExtra and HExtra are inches already committed inside the first
	// axes cell to inner panels; the aspect ratio is honored for the
	// main subplot alone, not the cell including its panels.
	WExtra, HExtra float64
}

func (sz Sizing) aspect() float64 {
	if sz.AspectWH[0] != 0 && sz.AspectWH[1] != 0 {
		return sz.AspectWH[0] / sz.AspectWH[1]
	}
	if sz.Aspect > 0 {
		return sz.Aspect
	}
	return 1
}

// A GridRecipe is the authoritative record of how a figure's layout was
// derived: counts, margins, spacings, per-row/column axes sizes and outer
// panel bookkeeping, all in inches. It is built once per figure and
// mutated in place by the tight layout pass, which substitutes new margin
// and spacing values and re-derives the GridSpec from the rest.
type GridRecipe struct {
	Rows, Cols int // main grid, excluding panel rows/columns
	Aspect     float64

	Left, Right, Top, Bottom float64

	WSpace, HSpace      []float64 // len Cols-1 and Rows-1
	AxWidths, AxHeights []float64 // resolved per-column/per-row sizes

	WExtra, HExtra float64

	LeftPanels, RightPanels, BottomPanels []int // per-row/col panel ids, 0 = none
	LWidth, RWidth, BWidth                float64
	LSpace, RSpace, BSpace                float64

	Width, Height float64 // figure size, derived
}

func anyNonzero(ids []int) bool {
	for _, id := range ids {
		if id != 0 {
			return true
		}
	}
	return false
}

// HasLeftPanels reports whether any left outer panel segment exists.
func (r *GridRecipe) HasLeftPanels() bool   { return anyNonzero(r.LeftPanels) }
func (r *GridRecipe) HasRightPanels() bool  { return anyNonzero(r.RightPanels) }
func (r *GridRecipe) HasBottomPanels() bool { return anyNonzero(r.BottomPanels) }

// ColOffset is the grid-column index of the first main axes column.
func (r *GridRecipe) ColOffset() int {
	if r.HasLeftPanels() {
		return 1
	}
	return 0
}

// refresh re-derives the figure size from the recipe's absolute parts.
func (r *GridRecipe) refresh() {
	w := r.Left + r.Right + sum(r.AxWidths) + sum(r.WSpace)
	if r.HasLeftPanels() {
		w += r.LWidth + r.LSpace
	}
	if r.HasRightPanels() {
		w += r.RWidth + r.RSpace
	}
	h := r.Top + r.Bottom + sum(r.AxHeights) + sum(r.HSpace)
	if r.HasBottomPanels() {
		h += r.BWidth + r.BSpace
	}
	r.Width, r.Height = w, h
}

// GridSpec derives the fractional grid from the recipe: panel rows and
// columns are spliced into the ratio and spacing arrays, the figure size
// recomputed, and the margins normalized to figure fractions. Calling it
// twice on an unmutated recipe yields identical results.
func (r *GridRecipe) GridSpec() *GridSpec {
	r.refresh()

	wrat := append([]float64(nil), r.AxWidths...)
	wsp := append([]float64(nil), r.WSpace...)
	hrat := append([]float64(nil), r.AxHeights...)
	hsp := append([]float64(nil), r.HSpace...)
	rows, cols := r.Rows, r.Cols
	if r.HasBottomPanels() {
		hrat = append(hrat, r.BWidth)
		hsp = append(hsp, r.BSpace)
		rows++
	}
	if r.HasLeftPanels() {
		wrat = append([]float64{r.LWidth}, wrat...)
		wsp = append([]float64{r.LSpace}, wsp...)
		cols++
	}
	if r.HasRightPanels() {
		wrat = append(wrat, r.RWidth)
		wsp = append(wsp, r.RSpace)
		cols++
	}

	return &GridSpec{
		Rows: rows, Cols: cols,
		Left:   r.Left / r.Width,
		Right:  1 - r.Right/r.Width,
		Bottom: r.Bottom / r.Height,
		Top:    1 - r.Top/r.Height,
		WRatios: wrat, HRatios: hrat,
		WSpace: wsp, HSpace: hsp,
	}
}

// A GridSpec is the low-level fractional grid consumed by axis placement:
// the frame edges as figure fractions and the per-row/column ratio and
// spacing arrays in inches (panel rows/columns included).
type GridSpec struct {
	Rows, Cols               int
	Left, Right, Bottom, Top float64
	WRatios, HRatios         []float64
	WSpace, HSpace           []float64
}

// A Rect is an axis-aligned rectangle in figure-fraction coordinates,
// origin at the bottom left.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// W returns the rectangle width.
func (r Rect) W() float64 { return r.X1 - r.X0 }

// H returns the rectangle height.
func (r Rect) H() float64 { return r.Y1 - r.Y0 }

// Cell returns the fractional rectangle covered by grid rows [r0,r1) and
// columns [c0,c1). Row 0 is the top row.
func (g *GridSpec) Cell(r0, r1, c0, c1 int) Rect {
	totW := sum(g.WRatios) + sum(g.WSpace)
	totH := sum(g.HRatios) + sum(g.HSpace)
	spanW := g.Right - g.Left
	spanH := g.Top - g.Bottom

	before := sum(g.WRatios[:c0]) + sum(g.WSpace[:c0])
	within := sum(g.WRatios[c0:c1]) + sum(g.WSpace[c0:c1-1])
	x0 := g.Left + spanW*before/totW
	x1 := x0 + spanW*within/totW

	above := sum(g.HRatios[:r0]) + sum(g.HSpace[:r0])
	inside := sum(g.HRatios[r0:r1]) + sum(g.HSpace[r0:r1-1])
	y1 := g.Top - spanH*above/totH
	y0 := y1 - spanH*inside/totH

	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// BuildGrid resolves a sizing configuration for an nrows-by-ncols grid
// into a GridRecipe. The one unknown figure dimension (or both, when only
// axes sizes were given) is derived from the requested aspect ratio, the
// ratio arrays, margins, spacings and outer panel widths.
func BuildGrid(nrows, ncols int, sz Sizing, style *Style) (*GridRecipe, error) {
	if nrows < 1 || ncols < 1 {
		return nil, fmt.Errorf("gridplot: invalid grid %dx%d", nrows, ncols)
	}
	u := style.units()
	sd := style.Sizing

	wr, err := broadcastRatios(sz.WRatios, ncols, "wratios")
	if err != nil {
		return nil, err
	}
	hr, err := broadcastRatios(sz.HRatios, nrows, "hratios")
	if err != nil {
		return nil, err
	}
	wspace, err := resolveSpaces(u, sz.WSpace, sd.InnerSpaceW, ncols-1, "wspace")
	if err != nil {
		return nil, err
	}
	hspace, err := resolveSpaces(u, sz.HSpace, sd.InnerSpaceH, nrows-1, "hspace")
	if err != nil {
		return nil, err
	}

	left, err := u.ResolveDefault(sz.Left, sd.LabelSpaceY)
	if err != nil {
		return nil, err
	}
	right, err := u.ResolveDefault(sz.Right, sd.EdgeSpace)
	if err != nil {
		return nil, err
	}
	top, err := u.ResolveDefault(sz.Top, sd.TitleSpace)
	if err != nil {
		return nil, err
	}
	bottom, err := u.ResolveDefault(sz.Bottom, sd.LabelSpaceX)
	if err != nil {
		return nil, err
	}

	lp, err := parsePanelGroups(sz.Outer.Left, nrows, "left")
	if err != nil {
		return nil, err
	}
	rp, err := parsePanelGroups(sz.Outer.Right, nrows, "right")
	if err != nil {
		return nil, err
	}
	bp, err := parsePanelGroups(sz.Outer.Bottom, ncols, "bottom")
	if err != nil {
		return nil, err
	}
	lw, ls, err := resolvePanelSize(u, sd, sz.Outer.Left, SideLeft)
	if err != nil {
		return nil, err
	}
	rw, rs, err := resolvePanelSize(u, sd, sz.Outer.Right, SideRight)
	if err != nil {
		return nil, err
	}
	bw, bs, err := resolvePanelSize(u, sd, sz.Outer.Bottom, SideBottom)
	if err != nil {
		return nil, err
	}

	szWidth, szHeight := sz.Width, sz.Height
	if sz.Journal != "" {
		if szWidth != "" || szHeight != "" || sz.AxWidth != "" || sz.AxHeight != "" {
			return nil, fmt.Errorf("gridplot: specify either journal %q or explicit figure/axes dimensions, not both", sz.Journal)
		}
		szWidth, szHeight, err = JournalSize(sz.Journal)
		if err != nil {
			return nil, err
		}
	}
	width, hasW, err := u.Resolve(szWidth)
	if err != nil {
		return nil, err
	}
	height, hasH, err := u.Resolve(szHeight)
	if err != nil {
		return nil, err
	}
	axw, hasAW, err := u.Resolve(sz.AxWidth)
	if err != nil {
		return nil, err
	}
	axh, hasAH, err := u.Resolve(sz.AxHeight)
	if err != nil {
		return nil, err
	}

	aspect := sz.aspect()
	bps, rps, lps := 0.0, 0.0, 0.0
	if anyNonzero(bp) {
		bps = bw + bs
	}
	if anyNonzero(rp) {
		rps = rw + rs
	}
	if anyNonzero(lp) {
		lps = lw + ls
	}

	autoW := !hasW && hasH
	autoH := !hasH && hasW
	autoBoth := !hasW && !hasH
	var axWTotal, axHTotal float64
	if hasH {
		axHTotal = height - top - bottom - sum(hspace) - bps
	}
	if hasW {
		axWTotal = width - left - right - sum(wspace) - lps - rps
	}
	if autoBoth {
		if !hasAW && !hasAH {
			axw, err = u.ResolveDefault("", sd.AxWidth)
			if err != nil {
				return nil, err
			}
			hasAW = true
		}
		if hasAH {
			axHTotal = axh * float64(nrows)
			height = axHTotal + top + bottom + sum(hspace) + bps
			autoW = true
		}
		if hasAW {
			axWTotal = axw * float64(ncols)
			width = axWTotal + left + right + sum(wspace) + lps + rps
			autoH = true
		}
		if hasAW && hasAH {
			autoW, autoH = false, false
		}
	}
	// Derive the remaining free dimension from the aspect ratio of the
	// first row/column axes, compensating for its ratio deviating from
	// the mean.
	if autoW {
		h0 := axHTotal * hr[0] / sum(hr)
		w0 := (h0-sz.HExtra)*aspect + sz.WExtra
		axWTotal = w0 * sum(wr) / wr[0]
		width = axWTotal + left + right + sum(wspace) + lps + rps
	} else if autoH {
		w0 := axWTotal * wr[0] / sum(wr)
		h0 := (w0-sz.WExtra)/aspect + sz.HExtra
		axHTotal = h0 * sum(hr) / hr[0]
		height = axHTotal + top + bottom + sum(hspace) + bps
	}
	if axWTotal < 0 {
		return nil, &LayoutInfeasibleError{Dim: "width", Capacity: axWTotal}
	}
	if axHTotal < 0 {
		return nil, &LayoutInfeasibleError{Dim: "height", Capacity: axHTotal}
	}

	axWidths := make([]float64, ncols)
	for i, r := range wr {
		axWidths[i] = axWTotal * r / sum(wr)
	}
	axHeights := make([]float64, nrows)
	for i, r := range hr {
		axHeights[i] = axHTotal * r / sum(hr)
	}

	rec := &GridRecipe{
		Rows: nrows, Cols: ncols,
		Aspect: aspect,
		Left:   left, Right: right, Top: top, Bottom: bottom,
		WSpace: wspace, HSpace: hspace,
		AxWidths: axWidths, AxHeights: axHeights,
		WExtra: sz.WExtra, HExtra: sz.HExtra,
		LeftPanels: lp, RightPanels: rp, BottomPanels: bp,
		LWidth: lw, RWidth: rw, BWidth: bw,
		LSpace: ls, RSpace: rs, BSpace: bs,
	}
	rec.refresh()
	return rec, nil
}

// parsePanelGroups expands an outer panel toggle into the per-row/column
// id assignment array, or nil when the side has no panel.
func parsePanelGroups(p OuterPanel, n int, side string) ([]int, error) {
	if p.On {
		ids := make([]int, n)
		for i := range ids {
			ids[i] = 1
		}
		return ids, nil
	}
	if len(p.Groups) == 0 {
		return nil, nil
	}
	if len(p.Groups) != n {
		return nil, fmt.Errorf("gridplot: %s panel groups %v must have one entry per row/column (%d)", side, p.Groups, n)
	}
	ids := append([]int(nil), p.Groups...)
	for _, id := range ids {
		if id < 0 {
			return nil, fmt.Errorf("gridplot: %s panel group id %d is negative", side, id)
		}
	}
	if !anyNonzero(ids) {
		return nil, nil
	}
	return ids, nil
}

// resolvePanelSize applies the kind-specific width and spacing defaults
// before the generic ones, since colorbar and legend panels are sized
// differently from plain panels.
func resolvePanelSize(u Units, sd SizingDefaults, p OuterPanel, side Side) (width, space float64, err error) {
	labelSpace := sd.LabelSpaceY
	if side == SideBottom {
		labelSpace = sd.LabelSpaceX
	}
	defW, defS := sd.PanelWidth, labelSpace
	switch p.Kind {
	case PanelColorbar:
		defW = sd.CbarWidth
	case PanelLegend:
		defW, defS = sd.LegendWidth, "0"
	}
	width, err = u.ResolveDefault(p.Width, defW)
	if err != nil {
		return 0, 0, err
	}
	space, err = u.ResolveDefault(p.Space, defS)
	if err != nil {
		return 0, 0, err
	}
	return width, space, nil
}

func broadcastRatios(rs []float64, n int, name string) ([]float64, error) {
	switch len(rs) {
	case 0:
		out := make([]float64, n)
		for i := range out {
			out[i] = 1
		}
		return out, nil
	case 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = rs[0]
		}
		return out, nil
	case n:
		return append([]float64(nil), rs...), nil
	}
	return nil, fmt.Errorf("gridplot: %s has %d entries, want 1 or %d", name, len(rs), n)
}

func resolveSpaces(u Units, ss []Size, def Size, n int, name string) ([]float64, error) {
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	switch len(ss) {
	case 0:
		v, err := u.ResolveDefault("", def)
		if err != nil {
			return nil, err
		}
		for i := range out {
			out[i] = v
		}
	case 1:
		v, err := u.ResolveDefault(ss[0], def)
		if err != nil {
			return nil, err
		}
		for i := range out {
			out[i] = v
		}
	case n:
		for i, s := range ss {
			v, err := u.ResolveDefault(s, def)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
	default:
		return nil, fmt.Errorf("gridplot: %s has %d entries, want 1 or %d", name, len(ss), n)
	}
	return out, nil
}

func sum(xs []float64) float64 {
	t := 0.0
	for _, x := range xs {
		t += x
	}
	return t
}
