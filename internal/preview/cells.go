// Package preview shows processed frames in a terminal and turns key
// presses into booth commands.
package preview

import (
	"image/color"

	"github.com/gogpu/boothfx"
)

// HalfBlock is drawn in every cell: its foreground paints the upper
// pixel and its background the lower one, so a cell covers 1×2 pixels.
const HalfBlock = '▀'

// Cell is one terminal cell of a converted frame.
type Cell struct {
	Top, Bottom color.RGBA
}

// FitSize returns the cell grid that shows a srcW×srcH frame as large as
// possible inside cols×rows while keeping its aspect ratio. Each cell
// covers one pixel column and two pixel rows.
func FitSize(srcW, srcH, cols, rows int) (w, h int) {
	if srcW <= 0 || srcH <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	w = cols
	h = (cols*srcH + srcW) / (2 * srcW)
	if h > rows {
		h = rows
		w = (rows * 2 * srcW) / srcH
	}
	return max(w, 1), max(h, 1)
}

// Convert samples pm into a w×h grid of cells. Transparent samples show
// as black.
func Convert(pm *boothfx.Pixmap, w, h int) []Cell {
	if pm == nil || w <= 0 || h <= 0 || pm.Width() == 0 || pm.Height() == 0 {
		return nil
	}
	srcW, srcH := pm.Width(), pm.Height()
	pixRows := 2 * h

	cells := make([]Cell, w*h)
	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			// Sample the center of each region.
			sx := min((cx*srcW+srcW/2)/w, srcW-1)
			top := min((2*cy*srcH+srcH/2)/pixRows, srcH-1)
			bottom := min(((2*cy+1)*srcH+srcH/2)/pixRows, srcH-1)
			cells[cy*w+cx] = Cell{Top: sample(pm, sx, top), Bottom: sample(pm, sx, bottom)}
		}
	}
	return cells
}

// sample returns the sample at (x, y) composited over black.
func sample(pm *boothfx.Pixmap, x, y int) color.RGBA {
	r, g, b, a := pm.RGBA8(x, y)
	if a == 255 {
		return color.RGBA{R: r, G: g, B: b, A: 255}
	}
	k := uint32(a)
	return color.RGBA{
		R: uint8((uint32(r)*k + 127) / 255),
		G: uint8((uint32(g)*k + 127) / 255),
		B: uint8((uint32(b)*k + 127) / 255),
		A: 255,
	}
}
