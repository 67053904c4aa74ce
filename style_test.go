package gridplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func TestLoadStyleOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
fontsize = 9.0
dpi = 200

[sizing]
axwidth = "3in"
pad = "0.2in"
`), 0o644))

	s, err := LoadStyle(path)
	require.NoError(t, err)
	assert.Equal(t, vg.Points(9), s.FontSize)
	assert.Equal(t, 200.0, s.DPI)
	assert.Equal(t, Size("3in"), s.Sizing.AxWidth)
	assert.Equal(t, Size("0.2in"), s.Sizing.Pad)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, DefaultStyle(12).Sizing.PanelWidth, s.Sizing.PanelWidth)
}

func TestLoadStyleErrors(t *testing.T) {
	_, err := LoadStyle(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [toml"), 0o644))
	_, err = LoadStyle(path)
	assert.Error(t, err)
}

func TestDefaultStyleSnapshot(t *testing.T) {
	t.Cleanup(ResetDefault)

	custom := DefaultStyle(10)
	custom.Sizing.AxWidth = "1in"
	SetDefault(custom)

	_, axs, err := Subplots(Options{})
	require.NoError(t, err)
	fig := axs[0].Figure()
	assert.InDelta(t, 1.0, fig.recipe.AxWidths[0], 1e-9)

	// The figure is immune to later default changes.
	ResetDefault()
	assert.InDelta(t, 1.0, fig.recipe.AxWidths[0], 1e-9)
}

func TestJournalSize(t *testing.T) {
	w, h, err := JournalSize("agu1")
	require.NoError(t, err)
	assert.Equal(t, Size("95mm"), w)
	assert.Equal(t, Size("115mm"), h)

	w, h, err = JournalSize("nat1")
	require.NoError(t, err)
	assert.Equal(t, Size("89mm"), w)
	assert.Equal(t, Size(""), h)

	_, _, err = JournalSize("unknown")
	assert.Error(t, err)
}

func TestResetDefaultAfterSave(t *testing.T) {
	t.Cleanup(ResetDefault)

	custom := DefaultStyle(10)
	custom.Sizing.AxWidth = "1in"
	SetDefault(custom)

	fig, _, err := Subplots(Options{ResetDefault: true, NoTight: true})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, fig.Save(path))

	assert.Equal(t, DefaultStyle(12).Sizing.AxWidth, Default().Sizing.AxWidth)
}
