package gridplot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSides(t *testing.T) {
	sides, err := ParseSides("lrb")
	require.NoError(t, err)
	assert.Equal(t, []Side{SideLeft, SideRight, SideBottom}, sides)

	_, err = ParseSides("lq")
	assert.Error(t, err)

	sides, err = ParseSides("")
	require.NoError(t, err)
	assert.Empty(t, sides)
}

func TestInnerPanelPlacement(t *testing.T) {
	fig, axs, err := Subplots(Options{
		Sizing: Sizing{Width: "4in", Height: "4in"},
		Inner:  map[int]InnerPanel{1: {Sides: "rb"}},
	})
	require.NoError(t, err)
	main := axs[0]

	right := main.Panel(SideRight)
	require.NotNil(t, right)
	bottom := main.Panel(SideBottom)
	require.NotNil(t, bottom)
	assert.Nil(t, main.Panel(SideLeft))

	mr := fig.axisRect(main)
	rr := fig.axisRect(right)
	br := fig.axisRect(bottom)

	// The right panel keeps its configured width and sits past the
	// panel gap.
	assert.InDelta(t, 0.45, rr.W()*fig.Width(), 1e-6)
	assert.InDelta(t, 0.05, (rr.X0-mr.X1)*fig.Width(), 1e-6)
	// The bottom panel shares the main column.
	assert.InDelta(t, mr.X0, br.X0, 1e-9)
	assert.InDelta(t, mr.X1, br.X1, 1e-9)
	assert.InDelta(t, 0.05, (mr.Y0-br.Y1)*fig.Height(), 1e-6)

	// Panels share the main axis by default.
	require.NotNil(t, bottom.shareX)
	assert.Equal(t, main.index, bottom.shareX.Base)
	assert.False(t, bottom.ShowXTicks)
	require.NotNil(t, right.shareY)
	assert.False(t, right.ShowYTicks)
}

func TestInnerPanelWidthsSurviveResize(t *testing.T) {
	fig, axs, err := Subplots(Options{
		Sizing: Sizing{Width: "4in", Height: "4in"},
		Inner:  map[int]InnerPanel{1: {Sides: "r", WWidth: "0.6in"}},
	})
	require.NoError(t, err)
	main := axs[0]
	right := main.Panel(SideRight)

	// Grow the left margin by half an inch; the figure grows with it
	// and the panel keeps its absolute width.
	fig.recipe.Left += 0.5
	fig.grid = fig.recipe.GridSpec()

	rr := fig.axisRect(right)
	assert.InDelta(t, 0.6, rr.W()*fig.Width(), 1e-6)
}

func TestInnerPanelInfeasible(t *testing.T) {
	_, _, err := Subplots(Options{
		Sizing: Sizing{Width: "4in", Height: "4in"},
		Inner:  map[int]InnerPanel{1: {Sides: "r", WWidth: "5in"}},
	})
	var le *LayoutInfeasibleError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "width", le.Dim)
	assert.Less(t, le.Capacity, 0.0)
}

func TestInnerPanelColorbarDefaults(t *testing.T) {
	fig, axs, err := Subplots(Options{
		Sizing: Sizing{Width: "4in", Height: "4in"},
		Inner:  map[int]InnerPanel{1: {Sides: "r", Kind: PanelColorbar}},
	})
	require.NoError(t, err)
	right := axs[0].Panel(SideRight)
	require.NotNil(t, right)
	rr := fig.axisRect(right)
	// Colorbar panels default to the narrow colorbar width and do not
	// share the main y axis.
	assert.InDelta(t, 0.17, rr.W()*fig.Width(), 1e-6)
	assert.Nil(t, right.shareY)
}

func TestColorbarSubstitute(t *testing.T) {
	_, axs, err := Subplots(Options{})
	require.NoError(t, err)
	ax := axs[0]
	cb := ax.Colorbar()
	require.NotNil(t, cb)
	assert.Same(t, cb, ax.Colorbar(), "colorbar must be created once")
	assert.Same(t, cb, ax.measured(), "colorbar extent substitutes the cell's")
	assert.Same(t, ax, cb.Parent())
}
