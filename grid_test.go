package gridplot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStyle() *Style { return DefaultStyle(12) }

func TestBuildGridFixedAxWidth(t *testing.T) {
	sz := Sizing{
		AxWidth: "2in",
		Aspect:  1,
		WSpace:  []Size{"0.3in"},
		HSpace:  []Size{"0.5in"},
		Left:    "0.5in", Right: "0.3in",
		Top: "0.3in", Bottom: "0.5in",
	}
	rec, err := BuildGrid(2, 2, sz, testStyle())
	require.NoError(t, err)

	// Width assembles from its parts: 2*2 + 0.3 + 0.5 + 0.3.
	assert.InDelta(t, 5.1, rec.Width, 1e-6)
	// Aspect 1 makes each axes cell 2in tall as well.
	assert.InDelta(t, 5.3, rec.Height, 1e-6)
	assert.InDelta(t, 2.0, rec.AxWidths[0], 1e-6)
	assert.InDelta(t, 2.0, rec.AxHeights[1], 1e-6)
}

func TestRecipeConservation(t *testing.T) {
	sz := Sizing{
		AxWidth: "1.7in",
		Aspect:  1.5,
		Outer: OuterPanels{
			Right:  OuterPanel{On: true},
			Bottom: OuterPanel{On: true, Kind: PanelColorbar},
		},
	}
	rec, err := BuildGrid(3, 2, sz, testStyle())
	require.NoError(t, err)

	w := rec.Left + rec.Right + sum(rec.AxWidths) + sum(rec.WSpace) +
		rec.RWidth + rec.RSpace
	assert.InDelta(t, rec.Width, w, 1e-6)
	h := rec.Top + rec.Bottom + sum(rec.AxHeights) + sum(rec.HSpace) +
		rec.BWidth + rec.BSpace
	assert.InDelta(t, rec.Height, h, 1e-6)
}

func TestGridSpecIdempotent(t *testing.T) {
	rec, err := BuildGrid(2, 3, Sizing{AxWidth: "2in", Aspect: 1}, testStyle())
	require.NoError(t, err)

	first := rec.GridSpec()
	second := rec.GridSpec()
	assert.Equal(t, first, second)

	cellA := first.Cell(0, 1, 1, 2)
	cellB := second.Cell(0, 1, 1, 2)
	assert.Equal(t, cellA, cellB)
}

func TestGridSpecTracksMutation(t *testing.T) {
	rec, err := BuildGrid(1, 2, Sizing{
		AxWidth: "2in", Aspect: 1,
		WSpace: []Size{"0.4in"},
	}, testStyle())
	require.NoError(t, err)
	w0 := rec.Width

	// Widening the gap grows the figure; the axes keep their size.
	rec.WSpace[0] = 0.9
	g := rec.GridSpec()
	assert.InDelta(t, w0+0.5, rec.Width, 1e-6)
	c := g.Cell(0, 1, 0, 1)
	assert.InDelta(t, 2.0, c.W()*rec.Width, 1e-6)
}

func TestBuildGridRatios(t *testing.T) {
	rec, err := BuildGrid(1, 2, Sizing{
		Width: "5in", Height: "3in",
		WRatios: []float64{2, 1},
	}, testStyle())
	require.NoError(t, err)
	assert.InDelta(t, 2*rec.AxWidths[1], rec.AxWidths[0], 1e-6)
}

func TestBuildGridJournal(t *testing.T) {
	rec, err := BuildGrid(1, 1, Sizing{Journal: "ams2"}, testStyle())
	require.NoError(t, err)
	assert.InDelta(t, 4.5, rec.Width, 1e-6)

	_, err = BuildGrid(1, 1, Sizing{Journal: "ams2", Width: "3in"}, testStyle())
	assert.Error(t, err)

	_, err = BuildGrid(1, 1, Sizing{Journal: "nope"}, testStyle())
	assert.Error(t, err)
}

func TestBuildGridInfeasible(t *testing.T) {
	_, err := BuildGrid(1, 1, Sizing{
		Width: "1in", Height: "3in",
		Left: "2in", Right: "2in",
	}, testStyle())
	var le *LayoutInfeasibleError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "width", le.Dim)
	assert.Less(t, le.Capacity, 0.0)
}

func TestOuterPanelGroups(t *testing.T) {
	rec, err := BuildGrid(3, 2, Sizing{
		AxWidth: "2in", Aspect: 1,
		Outer: OuterPanels{
			Left: OuterPanel{Groups: []int{1, 1, 2}},
		},
	}, testStyle())
	require.NoError(t, err)
	assert.True(t, rec.HasLeftPanels())
	assert.Equal(t, []int{1, 1, 2}, rec.LeftPanels)
	assert.Equal(t, 1, rec.ColOffset())

	g := rec.GridSpec()
	assert.Equal(t, 3, g.Cols) // panel column spliced in
}

func TestBuildGridBadRatios(t *testing.T) {
	_, err := BuildGrid(2, 2, Sizing{
		AxWidth: "2in",
		WRatios: []float64{1, 2, 3},
	}, testStyle())
	assert.Error(t, err)
}
