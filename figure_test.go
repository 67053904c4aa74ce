package gridplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg/draw"
)

type stubBackend struct {
	fn func(ax *Axis) (Box, bool)
}

func (s stubBackend) TightBox(ax *Axis) (Box, bool) { return s.fn(ax) }

func nominalBox(f *Figure, ax *Axis) Box {
	r := f.axisRect(ax)
	return Box{
		X0: r.X0 * f.recipe.Width,
		Y0: r.Y0 * f.recipe.Height,
		X1: r.X1 * f.recipe.Width,
		Y1: r.Y1 * f.recipe.Height,
	}
}

func TestTightLayoutZeroDeltas(t *testing.T) {
	fig, _, err := Subplots(Options{
		Rows: 2, Cols: 2,
		Sizing:  Sizing{AxWidth: "2in", Aspect: 1},
		NoTight: true,
	})
	require.NoError(t, err)
	fig.SetBackend(stubBackend{fn: func(ax *Axis) (Box, bool) {
		return nominalBox(fig, ax), true
	}})

	require.True(t, fig.tightLayout())

	// With decorations exactly filling the nominal boxes, everything
	// collapses to the configured cushions.
	assert.InDelta(t, fig.pad, fig.recipe.Left, 1e-9)
	assert.InDelta(t, fig.pad, fig.recipe.Right, 1e-9)
	assert.InDelta(t, fig.pad, fig.recipe.Bottom, 1e-9)
	assert.InDelta(t, fig.pad, fig.recipe.Top, 1e-9)
	assert.InDelta(t, fig.innerPad, fig.recipe.WSpace[0], 1e-9)
	assert.InDelta(t, fig.innerPad, fig.recipe.HSpace[0], 1e-9)
	// Axes sizes are untouched; the figure shrinks around them.
	assert.InDelta(t, 2.0, fig.recipe.AxWidths[0], 1e-9)
	assert.InDelta(t, 2.0, fig.recipe.AxHeights[0], 1e-9)
}

func TestTightLayoutPreservesAspect(t *testing.T) {
	fig, axs, err := Subplots(Options{
		Rows: 1, Cols: 2,
		Sizing:  Sizing{AxWidth: "2in", Aspect: 1.5},
		NoTight: true,
	})
	require.NoError(t, err)
	fig.SetBackend(stubBackend{fn: func(ax *Axis) (Box, bool) {
		b := nominalBox(fig, ax)
		b.X0 -= 0.4 // fake y tick labels
		b.Y0 -= 0.3 // fake x tick labels
		return b, true
	}})
	require.True(t, fig.tightLayout())

	r := fig.axisRect(axs[0])
	assert.InDelta(t, 2.0, r.W()*fig.Width(), 1e-9)
	assert.InDelta(t, 2.0/1.5, r.H()*fig.Height(), 1e-9)
}

func TestTightLayoutMinimumGapWins(t *testing.T) {
	fig, _, err := Subplots(Options{
		Rows: 2, Cols: 2,
		Sizing:  Sizing{AxWidth: "2in", Aspect: 1, WSpace: []Size{"1in"}},
		NoTight: true,
	})
	require.NoError(t, err)
	fig.innerPad = 0.1

	// The top pair leaves 0.3in free across the column gap, the bottom
	// pair 0.5in. The smaller remainder decides.
	fig.SetBackend(stubBackend{fn: func(ax *Axis) (Box, bool) {
		b := nominalBox(fig, ax)
		eat := 0.35
		if ax.rowSpan[0] == 1 {
			eat = 0.25
		}
		switch ax.Number {
		case 1, 3:
			b.X1 += eat
		case 2, 4:
			b.X0 -= eat
		}
		return b, true
	}})
	require.True(t, fig.tightLayout())
	assert.InDelta(t, 1.0-0.3+0.1, fig.recipe.WSpace[0], 1e-9)
}

func TestTightLayoutNaNSoftFails(t *testing.T) {
	fig, _, err := Subplots(Options{Rows: 1, Cols: 2})
	require.NoError(t, err)
	before := fig.recipe.Left
	broken := stubBackend{fn: func(ax *Axis) (Box, bool) {
		return Box{X0: math.NaN()}, true
	}}
	fig.SetBackend(broken)

	require.NoError(t, fig.prepare())
	assert.False(t, fig.tightDone, "failed pass must be retried")
	assert.Equal(t, before, fig.recipe.Left, "failed pass must not mutate the recipe")

	// Once measurement recovers, the next draw finishes the pass.
	fig.SetBackend(stubBackend{fn: func(ax *Axis) (Box, bool) {
		return nominalBox(fig, ax), true
	}})
	require.NoError(t, fig.prepare())
	assert.True(t, fig.tightDone)
}

func TestTightLayoutUnmeasurableSoftFails(t *testing.T) {
	fig, _, err := Subplots(Options{Rows: 1, Cols: 2})
	require.NoError(t, err)
	before := fig.recipe.Left
	fig.SetBackend(stubBackend{fn: func(ax *Axis) (Box, bool) {
		return Box{}, false
	}})

	require.NoError(t, fig.prepare())
	assert.False(t, fig.tightDone, "failed pass must be retried")
	assert.Equal(t, before, fig.recipe.Left, "failed pass must not mutate the recipe")

	// Once measurement recovers, the next draw finishes the pass.
	fig.SetBackend(stubBackend{fn: func(ax *Axis) (Box, bool) {
		return nominalBox(fig, ax), true
	}})
	require.NoError(t, fig.prepare())
	assert.True(t, fig.tightDone)
}

func TestDrawFailsOnTwinDomainError(t *testing.T) {
	fig, axs, err := Subplots(Options{Rows: 1, Cols: 1, NoTight: true})
	require.NoError(t, err)
	axs[0].SetXLim(-1, 2)
	axs[0].DualX(0, 1, LogAlt)

	err = fig.Draw(draw.Canvas{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log scale")
}

func TestTightLayoutRunsOnce(t *testing.T) {
	fig, _, err := Subplots(Options{Rows: 1, Cols: 1})
	require.NoError(t, err)
	calls := 0
	fig.SetBackend(stubBackend{fn: func(ax *Axis) (Box, bool) {
		calls++
		return nominalBox(fig, ax), true
	}})
	require.NoError(t, fig.prepare())
	require.NoError(t, fig.prepare())
	assert.Equal(t, 1, calls)
}

func TestTightLayoutMergesPanelExtents(t *testing.T) {
	fig, axs, err := Subplots(Options{
		Sizing:  Sizing{Width: "4in", Height: "4in"},
		Inner:   map[int]InnerPanel{1: {Sides: "r"}},
		NoTight: true,
	})
	require.NoError(t, err)
	panel := axs[0].Panel(SideRight)
	require.NotNil(t, panel)

	fig.SetBackend(stubBackend{fn: func(ax *Axis) (Box, bool) {
		return nominalBox(fig, ax), true
	}})
	entries, ok := fig.tightBoxes()
	require.True(t, ok)
	require.Len(t, entries, 1)
	// The merged box reaches the panel's right edge, not the main's.
	pb := nominalBox(fig, panel)
	assert.InDelta(t, pb.X1, entries[0].box.X1, 1e-9)
}

func TestTightBoxesSubstituteColorbar(t *testing.T) {
	fig, axs, err := Subplots(Options{
		Sizing:  Sizing{Width: "4in", Height: "4in"},
		Inner:   map[int]InnerPanel{1: {Sides: "r", Kind: PanelColorbar}},
		NoTight: true,
	})
	require.NoError(t, err)
	panel := axs[0].Panel(SideRight)
	require.NotNil(t, panel)
	sub := panel.Colorbar()

	var seen []*Axis
	fig.SetBackend(stubBackend{fn: func(ax *Axis) (Box, bool) {
		seen = append(seen, ax)
		return nominalBox(fig, ax), true
	}})
	_, ok := fig.tightBoxes()
	require.True(t, ok)
	assert.Contains(t, seen, sub)
	assert.NotContains(t, seen, panel)
}

func TestSupTitleClearsTopDecorations(t *testing.T) {
	fig, axs, err := Subplots(Options{Rows: 1, Cols: 1, NoTight: true})
	require.NoError(t, err)
	fig.SupTitle = "Overview"

	fig.reconcileTitles()
	bare := fig.supY

	axs[0].Title = "panel a"
	fig.reconcileTitles()
	titled := fig.supY
	assert.Greater(t, titled, bare)

	axs[0].DualX(0, 1, LinearAlt)
	fig.reconcileTitles()
	assert.Greater(t, fig.supY, bare)
}

func TestAxesOrdered(t *testing.T) {
	fig, _, err := Subplots(Options{Array: [][]int{
		{3, 1},
		{2, 1},
	}})
	require.NoError(t, err)
	nums := []int{}
	for _, ax := range fig.Axes() {
		nums = append(nums, ax.Number)
	}
	assert.Equal(t, []int{1, 2, 3}, nums)
}

func TestSaveWritesPNG(t *testing.T) {
	fig, axs, err := Subplots(Options{
		Rows: 1, Cols: 2,
		Sizing: Sizing{AxWidth: "1.5in", Aspect: 1},
		ShareX: ShareAll,
	})
	require.NoError(t, err)
	fig.SupTitle = "smoke"
	axs.SetXLim(0, 10).SetYLim(-1, 1).SetXLabel("t")
	axs[0].Title = "left"

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, fig.Save(path))
	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, st.Size(), int64(0))
}
