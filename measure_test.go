package gridplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFontMeasureExtends(t *testing.T) {
	fig, axs, err := Subplots(Options{NoTight: true})
	require.NoError(t, err)
	ax := axs[0]
	ax.SetXLim(0, 10)
	ax.SetYLim(0, 10)

	nominal := nominalBox(fig, ax)
	b, ok := fig.backend.TightBox(ax)
	require.True(t, ok)
	assert.Less(t, b.X0, nominal.X0, "y tick labels extend left")
	assert.Less(t, b.Y0, nominal.Y0, "x tick labels extend down")
	assert.Equal(t, nominal.Y1, b.Y1, "nothing drawn above a bare axis")

	ax.Title = "with title"
	ax.YLabel = "yy"
	b2, ok := fig.backend.TightBox(ax)
	require.True(t, ok)
	assert.Greater(t, b2.Y1, b.Y1, "title extends up")
	assert.Less(t, b2.X0, b.X0, "y label extends further left")
}

func TestFontMeasureUntrusted(t *testing.T) {
	fig, axs, err := Subplots(Options{
		Proj: map[int]Projection{0: {Name: "ortho", UntrustedBox: true}},
	})
	require.NoError(t, err)
	_, ok := fig.backend.TightBox(axs[0])
	assert.False(t, ok)
}

func TestBoxUnion(t *testing.T) {
	a := Box{X0: 0, Y0: 0, X1: 2, Y1: 2}
	b := Box{X0: -1, Y0: 1, X1: 1, Y1: 3}
	got := a.union(b)
	assert.Equal(t, Box{X0: -1, Y0: 0, X1: 2, Y1: 3}, got)
}
