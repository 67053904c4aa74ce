package gridplot

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// A Projection names a non-rectilinear axes variant.
type Projection struct {
	Name string
	// UntrustedBox marks projections whose drawn extent cannot be
	// measured reliably. One such subplot disables the figure's
	// automatic layout pass.
	UntrustedBox bool
}

// Options configures Subplots. The zero value asks for a single
// subplot with no sharing; DefaultOptions matches the common case of a
// fully shared, label-spanning grid.
type Options struct {
	// Array places subplot numbers on the grid directly: Array[r][c]
	// holds the 1-based subplot number occupying that cell, 0 for an
	// empty cell. Each number must cover a solid rectangle and the
	// numbers must run 1..N without gaps. When set, Rows, Cols, Order,
	// EmptyRows and EmptyCols are ignored.
	Array [][]int

	// Rows and Cols build a dense numbered grid instead. Order 'C'
	// numbers row-major, 'F' column-major. EmptyRows and EmptyCols
	// (1-based) blank out whole rows or columns; the remaining
	// subplots are renumbered consecutively.
	Rows, Cols           int
	Order                byte
	EmptyRows, EmptyCols []int

	Sizing Sizing

	ShareX, ShareY ShareLevel
	SpanX, SpanY   bool

	// Inner configures the inner panels of individual subplots by
	// number; entry 0 applies to every subplot without its own entry.
	Inner map[int]InnerPanel

	// Proj assigns projections by subplot number, 0 again being the
	// catch-all.
	Proj map[int]Projection

	// NoTight keeps the margins and spacings exactly as configured
	// instead of fitting them to the drawn decorations.
	NoTight bool
	// Pad and InnerPad override the style's layout clearances.
	Pad, InnerPad Size

	// Style overrides the package default style for this figure.
	Style  *Style
	Logger *log.Logger

	// ResetDefault restores the package default style after the first
	// successful draw.
	ResetDefault bool
}

// DefaultOptions returns Options for the common case: everything
// shared, axis labels spanning their share groups, row-major
// numbering.
func DefaultOptions() Options {
	return Options{
		Order:  'C',
		ShareX: ShareAll,
		ShareY: ShareAll,
		SpanX:  true,
		SpanY:  true,
	}
}

// Subplots builds a figure of subplots from opts and returns it
// together with the main axes in number order.
func Subplots(opts Options) (*Figure, AxesList, error) {
	array, err := subplotArray(opts)
	if err != nil {
		return nil, nil, err
	}
	nrows, ncols := len(array), len(array[0])

	spans, err := subplotSpans(array)
	if err != nil {
		return nil, nil, err
	}
	n := len(spans)

	style := opts.Style
	if style == nil {
		style = Default().clone()
	}
	u := style.units()

	sz := opts.Sizing
	if err := innerExtra(&sz, u, style.Sizing, innerFor(opts.Inner, 1)); err != nil {
		return nil, nil, err
	}

	recipe, err := BuildGrid(nrows, ncols, sz, style)
	if err != nil {
		return nil, nil, err
	}

	f := newFigure(recipe, style, opts.Logger)
	f.tight = !opts.NoTight
	f.resetStyle = opts.ResetDefault
	if f.pad, err = u.ResolveDefault(opts.Pad, style.Sizing.Pad); err != nil {
		return nil, nil, err
	}
	if f.innerPad, err = u.ResolveDefault(opts.InnerPad, style.Sizing.InnerPad); err != nil {
		return nil, nil, err
	}

	// Main axes. Grid rows are shared with the full grid (the bottom
	// panel row is appended after the main rows); columns shift right
	// when a left panel column exists.
	off := recipe.ColOffset()
	mains := make(AxesList, n)
	for num := 1; num <= n; num++ {
		sp := spans[num-1]
		rowSpan := sp.rows
		colSpan := [2]int{sp.cols[0] + off, sp.cols[1] + off}

		var ax *Axis
		cfg, hasInner := innerLookup(opts.Inner, num)
		if hasInner {
			ax, err = f.panelFactory(rowSpan, colSpan, cfg)
			if err != nil {
				return nil, nil, err
			}
		} else {
			ax = f.addAxis(rowSpan, colSpan)
		}
		ax.Number = num
		ax.SpanX, ax.SpanY = opts.SpanX, opts.SpanY
		if p, ok := projLookup(opts.Proj, num); ok {
			ax.Proj = p.Name
			ax.ProjUntrusted = p.UntrustedBox
		}
		mains[num-1] = ax
	}

	wireSharing(f, mains, true, opts.ShareX)
	wireSharing(f, mains, false, opts.ShareY)

	addOuterPanels(f, recipe)

	return f, mains, nil
}

// subplotArray resolves Options into the rectangular number array.
func subplotArray(opts Options) ([][]int, error) {
	if len(opts.Array) > 0 {
		cols := len(opts.Array[0])
		if cols == 0 {
			return nil, fmt.Errorf("subplot array has empty rows")
		}
		for _, row := range opts.Array {
			if len(row) != cols {
				return nil, fmt.Errorf("subplot array is ragged: row lengths %d and %d", cols, len(row))
			}
		}
		return opts.Array, nil
	}

	rows, cols := opts.Rows, opts.Cols
	if rows <= 0 && cols <= 0 {
		rows, cols = 1, 1
	} else if rows <= 0 {
		rows = 1
	} else if cols <= 0 {
		cols = 1
	}
	array := make([][]int, rows)
	for r := range array {
		array[r] = make([]int, cols)
	}
	num := 1
	if opts.Order == 'F' {
		for c := 0; c < cols; c++ {
			for r := 0; r < rows; r++ {
				array[r][c] = num
				num++
			}
		}
	} else {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				array[r][c] = num
				num++
			}
		}
	}
	for _, er := range opts.EmptyRows {
		if er < 1 || er > rows {
			return nil, fmt.Errorf("empty row %d outside 1..%d", er, rows)
		}
		for c := 0; c < cols; c++ {
			array[er-1][c] = 0
		}
	}
	for _, ec := range opts.EmptyCols {
		if ec < 1 || ec > cols {
			return nil, fmt.Errorf("empty column %d outside 1..%d", ec, cols)
		}
		for r := 0; r < rows; r++ {
			array[r][ec-1] = 0
		}
	}
	renumber(array)
	return array, nil
}

// renumber compacts the surviving subplot numbers to 1..N, keeping
// their relative order.
func renumber(array [][]int) {
	remap := map[int]int{}
	next := 1
	for _, row := range array {
		for _, id := range row {
			if id == 0 {
				continue
			}
			if _, ok := remap[id]; !ok {
				remap[id] = next
				next++
			}
		}
	}
	for _, row := range array {
		for c, id := range row {
			if id != 0 {
				row[c] = remap[id]
			}
		}
	}
}

type subplotSpan struct {
	rows, cols [2]int
}

// subplotSpans validates the array and extracts each subplot's
// half-open row and column spans. Numbers must run 1..N and each must
// fill a solid rectangle.
func subplotSpans(array [][]int) ([]subplotSpan, error) {
	seen := map[int]*subplotSpan{}
	max := 0
	for r, row := range array {
		for c, id := range row {
			if id < 0 {
				return nil, fmt.Errorf("negative subplot number %d", id)
			}
			if id == 0 {
				continue
			}
			if id > max {
				max = id
			}
			sp, ok := seen[id]
			if !ok {
				seen[id] = &subplotSpan{rows: [2]int{r, r + 1}, cols: [2]int{c, c + 1}}
				continue
			}
			if r < sp.rows[0] {
				sp.rows[0] = r
			}
			if r+1 > sp.rows[1] {
				sp.rows[1] = r + 1
			}
			if c < sp.cols[0] {
				sp.cols[0] = c
			}
			if c+1 > sp.cols[1] {
				sp.cols[1] = c + 1
			}
		}
	}
	if max == 0 {
		return nil, fmt.Errorf("subplot array contains no subplots")
	}
	spans := make([]subplotSpan, max)
	for id := 1; id <= max; id++ {
		sp, ok := seen[id]
		if !ok {
			return nil, fmt.Errorf("subplot numbers must run 1..%d without gaps, %d is missing", max, id)
		}
		for r := sp.rows[0]; r < sp.rows[1]; r++ {
			for c := sp.cols[0]; c < sp.cols[1]; c++ {
				if array[r][c] != id {
					return nil, fmt.Errorf("subplot %d does not cover a solid rectangle", id)
				}
			}
		}
		spans[id-1] = *sp
	}
	return spans, nil
}

func innerLookup(m map[int]InnerPanel, num int) (InnerPanel, bool) {
	if cfg, ok := m[num]; ok {
		return cfg, cfg.Sides != ""
	}
	if cfg, ok := m[0]; ok {
		return cfg, cfg.Sides != ""
	}
	return InnerPanel{}, false
}

func innerFor(m map[int]InnerPanel, num int) InnerPanel {
	cfg, _ := innerLookup(m, num)
	return cfg
}

func projLookup(m map[int]Projection, num int) (Projection, bool) {
	if p, ok := m[num]; ok {
		return p, true
	}
	p, ok := m[0]
	return p, ok
}

// innerExtra feeds the first subplot's inner panel allotment into the
// sizing pass, so the aspect ratio applies to the drawable main
// sub-cell rather than the whole grid cell.
func innerExtra(sz *Sizing, u Units, sd SizingDefaults, cfg InnerPanel) error {
	if cfg.Sides == "" {
		return nil
	}
	sides, err := ParseSides(cfg.Sides)
	if err != nil {
		return err
	}
	defW := sd.PanelWidth
	if cfg.Kind == PanelColorbar {
		defW = sd.CbarWidth
	} else if cfg.Kind == PanelLegend {
		defW = sd.LegendWidth
	}
	wwidth, err := u.ResolveDefault(cfg.WWidth, defW)
	if err != nil {
		return err
	}
	hwidth, err := u.ResolveDefault(cfg.HWidth, defW)
	if err != nil {
		return err
	}
	wspace, err := u.ResolveDefault(cfg.WSpace, sd.PanelSpace)
	if err != nil {
		return err
	}
	hspace, err := u.ResolveDefault(cfg.HSpace, sd.PanelSpace)
	if err != nil {
		return err
	}
	for _, s := range sides {
		switch s {
		case SideLeft, SideRight:
			sz.WExtra += wwidth + wspace
		case SideBottom, SideTop:
			sz.HExtra += hwidth + hspace
		}
	}
	return nil
}

// addOuterPanels creates the figure-level panel axes the recipe
// reserved rows and columns for. Consecutive equal group ids merge
// into one axis spanning those rows or columns.
func addOuterPanels(f *Figure, r *GridRecipe) {
	off := r.ColOffset()
	if r.HasLeftPanels() {
		for _, run := range runs(r.LeftPanels) {
			ax := f.addAxis([2]int{run[0], run[1]}, [2]int{0, 1})
			ax.Side = SideLeft
		}
	}
	if r.HasRightPanels() {
		col := off + r.Cols
		for _, run := range runs(r.RightPanels) {
			ax := f.addAxis([2]int{run[0], run[1]}, [2]int{col, col + 1})
			ax.Side = SideRight
		}
	}
	if r.HasBottomPanels() {
		row := r.Rows
		for _, run := range runs(r.BottomPanels) {
			ax := f.addAxis([2]int{row, row + 1}, [2]int{run[0] + off, run[1] + off})
			ax.Side = SideBottom
		}
	}
}

// runs returns the half-open extents of maximal runs of equal nonzero
// ids.
func runs(ids []int) [][2]int {
	var out [][2]int
	for i := 0; i < len(ids); {
		if ids[i] == 0 {
			i++
			continue
		}
		j := i + 1
		for j < len(ids) && ids[j] == ids[i] {
			j++
		}
		out = append(out, [2]int{i, j})
		i = j
	}
	return out
}
