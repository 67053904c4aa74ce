// +build ignore

package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/gridplot/gridplot"
	"gonum.org/v1/plot/plotter"
)

func wave(n int, freq, phase float64) plotter.XYs {
	xy := make(plotter.XYs, n)
	for i := range xy {
		x := float64(i) / float64(n-1) * 4 * math.Pi
		xy[i].X = x
		xy[i].Y = math.Sin(freq*x+phase) + 0.2*rand.NormFloat64()
	}
	return xy
}

func main() {
	opts := gridplot.DefaultOptions()
	opts.Array = [][]int{
		{1, 1, 2},
		{3, 4, 4},
	}
	opts.Sizing = gridplot.Sizing{
		AxWidth: "2.2in",
		Aspect:  1.2,
		Outer: gridplot.OuterPanels{
			Bottom: gridplot.OuterPanel{On: true, Kind: gridplot.PanelColorbar},
		},
	}
	opts.Inner = map[int]gridplot.InnerPanel{
		2: {Sides: "r", Kind: gridplot.PanelColorbar},
	}

	fig, axs, err := gridplot.Subplots(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fig.SupTitle = "Shared grid with panels"
	for i, ax := range axs {
		ax.Title = fmt.Sprintf("Wave %d", i+1)
		ax.SetXLim(0, 4*math.Pi)
		ax.SetYLim(-1.5, 1.5)
		ax.Plotters = append(ax.Plotters, gridplot.Line{
			XY: wave(100, float64(i+1)/2, float64(i)),
		})
	}
	axs[0].XLabel = "Phase"
	axs[0].YLabel = "Amplitude"

	// Pressure on the left, barometric height on the right.
	axs[2].SetYLim(100, 1000)
	axs[2].DualY(0, 1, gridplot.HeightAlt)

	if err := fig.Save("subplots-demo.png"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("wrote subplots-demo.png (%.2f x %.2f in)\n", fig.Width(), fig.Height())
}
