// Package paint rasterizes the small vector shapes decorative overlays
// need: anti-aliased circles, filled polygons, stroked lines and rects,
// and bitmap text. Every shape is composited through internal/blend, so a
// Paint carries the same state a 2D canvas does for a fill: the brush,
// the composite operation and the global alpha.
package paint

import (
	"sort"

	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/blend"
)

// Brush supplies the color at a point in pixel space.
type Brush interface {
	ColorAt(x, y float64) boothfx.RGBA
}

// Solid is a single-color brush.
type Solid boothfx.RGBA

// ColorAt implements Brush.
func (s Solid) ColorAt(_, _ float64) boothfx.RGBA {
	return boothfx.RGBA(s)
}

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  boothfx.RGBA
}

// LinearGradient transitions colors along the line from (X0, Y0) to
// (X1, Y1). Points are projected onto that line; beyond the ends the edge
// colors are extended.
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []ColorStop
}

// NewLinearGradient creates a gradient with stops sorted by offset.
func NewLinearGradient(x0, y0, x1, y1 float64, stops ...ColorStop) *LinearGradient {
	return &LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1, Stops: sortStops(stops)}
}

// ColorAt implements Brush.
func (g *LinearGradient) ColorAt(x, y float64) boothfx.RGBA {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return colorAtOffset(g.Stops, 0)
	}
	t := ((x-g.X0)*dx + (y-g.Y0)*dy) / lenSq
	return colorAtOffset(g.Stops, t)
}

// RadialGradient radiates colors from a center out to Radius.
type RadialGradient struct {
	CX, CY, Radius float64
	Stops          []ColorStop
}

// NewRadialGradient creates a gradient with stops sorted by offset.
func NewRadialGradient(cx, cy, radius float64, stops ...ColorStop) *RadialGradient {
	return &RadialGradient{CX: cx, CY: cy, Radius: radius, Stops: sortStops(stops)}
}

// ColorAt implements Brush.
func (g *RadialGradient) ColorAt(x, y float64) boothfx.RGBA {
	if g.Radius <= 0 {
		return colorAtOffset(g.Stops, 1)
	}
	return colorAtOffset(g.Stops, boothfx.Pt(x, y).Distance(boothfx.Pt(g.CX, g.CY))/g.Radius)
}

// sortStops sorts color stops by offset.
func sortStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// colorAtOffset interpolates the stops at t, padding outside [0, 1].
// Interpolation happens on non-premultiplied sRGB values, as canvas does.
func colorAtOffset(stops []ColorStop, t float64) boothfx.RGBA {
	switch len(stops) {
	case 0:
		return boothfx.Transparent
	case 1:
		return stops[0].Color
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		if t > stops[i].Offset {
			continue
		}
		a, b := stops[i-1], stops[i]
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return a.Color.Lerp(b.Color, (t-a.Offset)/span)
	}
	return last.Color
}

// Paint is the drawing state applied to a shape.
type Paint struct {
	Brush Brush

	// LineWidth is the width of strokes.
	LineWidth float64

	// Mode is the composite operation.
	Mode blend.Mode

	// Alpha scales the brush alpha, like canvas globalAlpha.
	Alpha float64
}

// NewPaint creates a source-over Paint with full alpha and 1px lines.
func NewPaint(b Brush) *Paint {
	return &Paint{
		Brush:     b,
		LineWidth: 1,
		Mode:      blend.ModeSourceOver,
		Alpha:     1,
	}
}

// Fill is shorthand for NewPaint(Solid(c)).
func Fill(c boothfx.RGBA) *Paint {
	return NewPaint(Solid(c))
}

// plot composites the brush color at pixel (x, y) with the given coverage.
func (p *Paint) plot(dst *boothfx.Pixmap, x, y int, coverage float64) {
	if coverage <= 0 || !dst.InBounds(x, y) {
		return
	}
	if coverage > 1 {
		coverage = 1
	}
	c := p.Brush.ColorAt(float64(x)+0.5, float64(y)+0.5)
	a := c.A * p.Alpha * coverage
	if a <= 0 {
		return
	}
	blend.Sample(dst.Data(), dst.Offset(x, y), c.R, c.G, c.B, a, p.Mode)
}
