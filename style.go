package gridplot

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/BurntSushi/toml"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// SizingDefaults are the fallback physical sizes consulted when a call to
// Subplots or BuildGrid leaves a knob unset. All values are Sizes.
type SizingDefaults struct {
	// Margin defaults by what the corresponding figure edge must make
	// room for: x tick labels plus label (bottom), y tick labels plus
	// label (left), an axes title (top) or nothing (right).
	LabelSpaceX Size `toml:"labelspace_x"`
	LabelSpaceY Size `toml:"labelspace_y"`
	TitleSpace  Size `toml:"titlespace"`
	EdgeSpace   Size `toml:"edgespace"`

	// Inter-axes spacing defaults.
	InnerSpaceW Size `toml:"innerspace_w"`
	InnerSpaceH Size `toml:"innerspace_h"`

	// Average axes width when neither figure nor axes sizes are given.
	AxWidth Size `toml:"axwidth"`

	// Panel sizing. Colorbar and legend panels have their own widths.
	PanelWidth  Size `toml:"panelwidth"`
	PanelSpace  Size `toml:"panelspace"`
	CbarWidth   Size `toml:"cbarwidth"`
	LegendWidth Size `toml:"legendwidth"`

	// Cushions used by the tight layout pass: Pad around the figure
	// edge, InnerPad between touching axes.
	Pad      Size `toml:"pad"`
	InnerPad Size `toml:"innerpad"`
}

// A Style bundles every default the layout solver and the drawing code
// consult. Layout math never reads ambient globals; a Style is captured
// when the figure is built and baked into its recipe.
type Style struct {
	FontSize vg.Length
	DPI      float64
	Sizing   SizingDefaults

	Background color.Color

	SupTitle draw.TextStyle
	Title    draw.TextStyle
	Label    draw.TextStyle // axis labels and row/column labels

	Frame draw.LineStyle

	Tick struct {
		draw.LineStyle
		Length vg.Length
		Label  draw.TextStyle
	}

	Panel struct {
		Background color.Color
	}
}

// DefaultStyle returns the built-in style. The baseFontSize is the font
// size for axis and row/column labels; the super title is a bit bigger,
// tick labels a bit smaller.
func DefaultStyle(baseFontSize vg.Length) *Style {
	scale := func(x vg.Length, f float64) vg.Length {
		return vg.Length(math.Round(f * float64(x)))
	}

	supFont, err := vg.MakeFont("Helvetica-Bold", scale(baseFontSize, 1.2))
	if err != nil {
		panic(err)
	}
	baseFont, err := vg.MakeFont("Helvetica", baseFontSize)
	if err != nil {
		panic(err)
	}
	tickFont, err := vg.MakeFont("Helvetica", scale(baseFontSize, 1/1.2))
	if err != nil {
		panic(err)
	}

	s := &Style{FontSize: baseFontSize, DPI: 96}
	s.Sizing = SizingDefaults{
		LabelSpaceX: "0.50in",
		LabelSpaceY: "0.55in",
		TitleSpace:  "0.30in",
		EdgeSpace:   "0.10in",
		InnerSpaceW: "0.25in",
		InnerSpaceH: "0.40in",
		AxWidth:     "2.0in",
		PanelWidth:  "0.45in",
		PanelSpace:  "0.05in",
		CbarWidth:   "0.17in",
		LegendWidth: "0.25in",
		Pad:         "0.10in",
		InnerPad:    "0.10in",
	}

	s.Background = color.White

	s.SupTitle.Color = color.Black
	s.SupTitle.Font = supFont
	s.SupTitle.XAlign = draw.XCenter
	s.SupTitle.YAlign = draw.YBottom

	s.Title.Color = color.Black
	s.Title.Font = baseFont
	s.Title.XAlign = draw.XCenter
	s.Title.YAlign = draw.YBottom

	s.Label.Color = color.Black
	s.Label.Font = baseFont
	s.Label.XAlign = draw.XCenter
	s.Label.YAlign = -0.3

	s.Frame.Color = color.Gray16{0x1111}
	s.Frame.Width = vg.Length(0.75)

	s.Tick.Color = color.Gray16{0x1111}
	s.Tick.Width = vg.Length(0.75)
	s.Tick.Length = vg.Length(4)
	s.Tick.Label.Color = color.Black
	s.Tick.Label.Font = tickFont
	s.Tick.Label.XAlign = draw.XCenter
	s.Tick.Label.YAlign = draw.YTop

	s.Panel.Background = color.Gray16{0xeeee}

	return s
}

// units returns the resolver matching this style's font size and DPI.
func (s *Style) units() Units {
	return Units{FontSize: s.FontSize, DPI: s.DPI}
}

type styleFile struct {
	FontSize float64        `toml:"fontsize"`
	DPI      float64        `toml:"dpi"`
	Sizing   SizingDefaults `toml:"sizing"`
}

// LoadStyle reads a TOML file of sizing overrides and overlays it onto
// the default style. Only keys present in the file are overridden.
func LoadStyle(path string) (*Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf styleFile
	if err := toml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("gridplot: parsing style %s: %w", path, err)
	}
	fontSize := vg.Points(12)
	if sf.FontSize > 0 {
		fontSize = vg.Points(sf.FontSize)
	}
	s := DefaultStyle(fontSize)
	if sf.DPI > 0 {
		s.DPI = sf.DPI
	}
	overlaySizing(&s.Sizing, sf.Sizing)
	return s, nil
}

func overlaySizing(dst *SizingDefaults, src SizingDefaults) {
	set := func(d *Size, s Size) {
		if s != "" {
			*d = s
		}
	}
	set(&dst.LabelSpaceX, src.LabelSpaceX)
	set(&dst.LabelSpaceY, src.LabelSpaceY)
	set(&dst.TitleSpace, src.TitleSpace)
	set(&dst.EdgeSpace, src.EdgeSpace)
	set(&dst.InnerSpaceW, src.InnerSpaceW)
	set(&dst.InnerSpaceH, src.InnerSpaceH)
	set(&dst.AxWidth, src.AxWidth)
	set(&dst.PanelWidth, src.PanelWidth)
	set(&dst.PanelSpace, src.PanelSpace)
	set(&dst.CbarWidth, src.CbarWidth)
	set(&dst.LegendWidth, src.LegendWidth)
	set(&dst.Pad, src.Pad)
	set(&dst.InnerPad, src.InnerPad)
}

var packageStyle = DefaultStyle(vg.Points(12))

// Default returns the package default style consulted by Subplots when no
// explicit style is passed. Figures snapshot it at build time; changing
// it later does not affect existing figures.
func Default() *Style { return packageStyle }

// SetDefault replaces the package default style.
func SetDefault(s *Style) { packageStyle = s }

// ResetDefault restores the built-in package default style.
func ResetDefault() { packageStyle = DefaultStyle(vg.Points(12)) }

// clone returns a shallow copy of s so a figure's snapshot is not
// affected by later SetDefault calls mutating the same value.
func (s *Style) clone() *Style {
	c := *s
	return &c
}

// journalSizes conforms figure dimensions to academic journal standards.
// A single entry fixes the width; a pair fixes both dimensions.
var journalSizes = map[string][2]Size{
	"pnas1": {"8.7cm", ""},
	"pnas2": {"11.4cm", ""},
	"pnas3": {"17.8cm", ""},
	"ams1":  {"3.2in", ""},
	"ams2":  {"4.5in", ""},
	"ams3":  {"5.5in", ""},
	"ams4":  {"6.5in", ""},
	"nat1":  {"89mm", ""},
	"nat2":  {"183mm", ""},
	"aaas1": {"5.5cm", ""},
	"aaas2": {"12cm", ""},
	"agu1":  {"95mm", "115mm"},
	"agu2":  {"190mm", "115mm"},
	"agu3":  {"95mm", "230mm"},
	"agu4":  {"190mm", "230mm"},
}

// JournalSize returns the standard figure width (and, for some journals,
// height) registered under name.
func JournalSize(name string) (width, height Size, err error) {
	wh, ok := journalSizes[name]
	if !ok {
		return "", "", fmt.Errorf("gridplot: unknown journal size %q", name)
	}
	return wh[0], wh[1], nil
}
