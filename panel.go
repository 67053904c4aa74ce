package gridplot

// An InnerPanel configures the panels nested inside one subplot's cell.
// Sides is a string over {l,r,b,t}; WWidth sizes the vertical (left or
// right) panels, HWidth the horizontal ones. Unset sizes fall back to
// the style defaults for the chosen Kind.
type InnerPanel struct {
	Sides          string
	Kind           PanelKind
	WWidth, HWidth Size
	WSpace, HSpace Size
}

// innerLayout subdivides one parent grid cell into a main sub-cell plus
// edge panel sub-cells. All sizes are inches, fixed at creation; the
// main sub-cell absorbs any later change of the parent cell, so panel
// widths survive the tight layout pass exactly.
type innerLayout struct {
	colW, rowH       []float64
	wspace, hspace   float64
	mainRow, mainCol int
}

// rect returns the fractional rectangle of local cell (row, col) inside
// the parent rectangle, given the current figure size in inches.
func (il *innerLayout) rect(parent Rect, figW, figH float64, row, col int) Rect {
	pw := parent.W() * figW
	ph := parent.H() * figH

	// The main sub-cell absorbs the difference between the parent's
	// current size and the fixed panel allotment.
	colW := append([]float64(nil), il.colW...)
	rowH := append([]float64(nil), il.rowH...)
	colW[il.mainCol] = pw - il.wspace*float64(len(colW)-1)
	for i, w := range colW {
		if i != il.mainCol {
			colW[il.mainCol] -= w
		}
	}
	rowH[il.mainRow] = ph - il.hspace*float64(len(rowH)-1)
	for i, h := range rowH {
		if i != il.mainRow {
			rowH[il.mainRow] -= h
		}
	}

	x0in := sum(colW[:col]) + il.wspace*float64(col)
	y1in := sum(rowH[:row]) + il.hspace*float64(row) // from the top

	fx := parent.W() / pw
	fy := parent.H() / ph
	return Rect{
		X0: parent.X0 + x0in*fx,
		X1: parent.X0 + (x0in+colW[col])*fx,
		Y1: parent.Y1 - y1in*fy,
		Y0: parent.Y1 - (y1in+rowH[row])*fy,
	}
}

// panelFactory places one main axis plus its requested edge panels
// inside the grid cell spanning rowSpan x colSpan. Corner cells where a
// row side and a column side panel meet stay empty. The returned main
// axis records its panels per side; missing sides hold the arena
// sentinel so downstream code can test presence uniformly.
func (f *Figure) panelFactory(rowSpan, colSpan [2]int, cfg InnerPanel) (*Axis, error) {
	sides, err := ParseSides(cfg.Sides)
	if err != nil {
		return nil, err
	}
	u := f.style.units()
	sd := f.style.Sizing

	defW := sd.PanelWidth
	if cfg.Kind == PanelColorbar {
		defW = sd.CbarWidth
	} else if cfg.Kind == PanelLegend {
		defW = sd.LegendWidth
	}
	wwidth, err := u.ResolveDefault(cfg.WWidth, defW)
	if err != nil {
		return nil, err
	}
	hwidth, err := u.ResolveDefault(cfg.HWidth, defW)
	if err != nil {
		return nil, err
	}
	wspace, err := u.ResolveDefault(cfg.WSpace, sd.PanelSpace)
	if err != nil {
		return nil, err
	}
	hspace, err := u.ResolveDefault(cfg.HSpace, sd.PanelSpace)
	if err != nil {
		return nil, err
	}

	has := map[Side]bool{}
	for _, s := range sides {
		has[s] = true
	}
	ncols := 1 + btoi(has[SideLeft]) + btoi(has[SideRight])
	nrows := 1 + btoi(has[SideBottom]) + btoi(has[SideTop])
	mainCol := btoi(has[SideLeft])
	mainRow := btoi(has[SideTop])

	cell := f.grid.Cell(rowSpan[0], rowSpan[1], colSpan[0], colSpan[1])
	pw := cell.W() * f.recipe.Width
	ph := cell.H() * f.recipe.Height

	mainW := pw - (wwidth+wspace)*float64(ncols-1)
	mainH := ph - (hwidth+hspace)*float64(nrows-1)
	if ncols > 1 && mainW <= 0 {
		return nil, &LayoutInfeasibleError{Dim: "width", Capacity: mainW}
	}
	if nrows > 1 && mainH <= 0 {
		return nil, &LayoutInfeasibleError{Dim: "height", Capacity: mainH}
	}

	il := &innerLayout{
		colW: make([]float64, ncols), rowH: make([]float64, nrows),
		wspace: wspace, hspace: hspace,
		mainRow: mainRow, mainCol: mainCol,
	}
	for c := range il.colW {
		if c == mainCol {
			il.colW[c] = mainW
		} else {
			il.colW[c] = wwidth
		}
	}
	for r := range il.rowH {
		if r == mainRow {
			il.rowH[r] = mainH
		} else {
			il.rowH[r] = hwidth
		}
	}

	main := f.addAxis(rowSpan, colSpan)
	main.inner = il

	pos := map[Side][2]int{
		SideLeft:   {mainRow, 0},
		SideRight:  {mainRow, mainCol + 1},
		SideTop:    {0, mainCol},
		SideBottom: {mainRow + 1, mainCol},
	}
	for _, s := range sides {
		pnl := f.addAxis(rowSpan, colSpan)
		pnl.Side = s
		pnl.parent = main.index
		pnl.localCell = pos[s]
		main.panels[s] = pnl.index
	}
	if cfg.Kind != PanelColorbar {
		sharePanels(f, main)
	}
	return main, nil
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
