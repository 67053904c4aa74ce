// Package gridplot arranges grids of subplots on top of
// gonum.org/v1/plot and fits the figure geometry to what actually gets
// drawn.
//
// # Grids
//
// A figure is built from a subplot number array (or a plain rows by
// columns request): each number covers a rectangle of grid cells and
// becomes one Axis. Figure dimensions follow from whichever sizing
// inputs are given - full width and height, per-axes width or height
// plus an aspect ratio, or a named journal column size - with ratio
// and spacing arrays controlling the interior.
//
// # Panels
//
// Axes can carry inner panels on their edges (for colorbars, legends
// or marginal plots) and the figure can carry outer panel rows and
// columns spanning groups of subplots. Panel sizes are absolute:
// resizing the figure never squashes a colorbar.
//
// # Automatic layout
//
// Before the first render the figure measures the decorated extent of
// every axis - tick labels, axis labels, titles, panels, twins - and
// adjusts the outer margins and the spacing between touching subplots
// so everything clears its neighbor by a fixed pad. Aspect ratios and
// panel widths survive this pass exactly.
//
// # Sharing and twins
//
// Subplots in the same row or column can share axes at increasing
// strength: spanning labels only, locked limits, or hidden interior
// tick labels. An axis can also carry a twin in alternate units whose
// limits are derived from the primary through an invertible transform
// (linear offsets, logarithmic pressure, barometric height, and so
// on) and re-locked on every draw.
package gridplot
