package paint

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/boothfx"
)

// FillCircle fills the disc of radius r centered at (cx, cy).
// Edge pixels are anti-aliased by their distance to the circle.
func FillCircle(dst *boothfx.Pixmap, cx, cy, r float64, p *Paint) {
	if dst == nil || p == nil || r <= 0 {
		return
	}
	x0 := max(0, int(math.Floor(cx-r-1)))
	y0 := max(0, int(math.Floor(cy-r-1)))
	x1 := min(dst.Width()-1, int(math.Ceil(cx+r+1)))
	y1 := min(dst.Height()-1, int(math.Ceil(cy+r+1)))

	// Sub-pixel discs fade by area instead of vanishing.
	scale := 1.0
	if r < 0.5 {
		scale = r * 2
	}

	for y := y0; y <= y1; y++ {
		py := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			px := float64(x) + 0.5 - cx
			d := math.Sqrt(px*px + py*py)
			p.plot(dst, x, y, (r-d+0.5)*scale)
		}
	}
}

// FillPolygon fills the closed contours using the non-zero winding rule.
// A contour wound opposite to the outer one cuts a hole. Coverage comes
// from an x/image/vector rasterizer sized to the clipped bounding box.
func FillPolygon(dst *boothfx.Pixmap, p *Paint, contours ...[]boothfx.Point) {
	if dst == nil || p == nil {
		return
	}

	minY, maxY := math.Inf(1), math.Inf(-1)
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, c := range contours {
		for _, pt := range c {
			minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
			minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		}
	}
	if minY >= maxY || minX >= maxX {
		return
	}

	x0 := max(0, int(math.Floor(minX)))
	y0 := max(0, int(math.Floor(minY)))
	x1 := min(dst.Width(), int(math.Ceil(maxX)))
	y1 := min(dst.Height(), int(math.Ceil(maxY)))
	if x0 >= x1 || y0 >= y1 {
		return
	}

	mask := coverage(contours, x0, y0, x1-x0, y1-y0)
	for y := y0; y < y1; y++ {
		row := mask.Pix[(y-y0)*mask.Stride:]
		for x := x0; x < x1; x++ {
			if a := row[x-x0]; a != 0 {
				p.plot(dst, x, y, float64(a)/255)
			}
		}
	}
}

// coverage rasterizes the contours, translated by (-ox, -oy), into a
// w×h alpha mask.
func coverage(contours [][]boothfx.Point, ox, oy, w, h int) *image.Alpha {
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	fx, fy := float64(ox), float64(oy)
	for _, c := range contours {
		if len(c) < 3 {
			continue
		}
		z.MoveTo(float32(c[0].X-fx), float32(c[0].Y-fy))
		for _, pt := range c[1:] {
			z.LineTo(float32(pt.X-fx), float32(pt.Y-fy))
		}
		z.ClosePath()
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// StrokeLine strokes the segment from a to b with butt caps and the
// paint's line width.
func StrokeLine(dst *boothfx.Pixmap, a, b boothfx.Point, p *Paint) {
	if p == nil || p.LineWidth <= 0 {
		return
	}
	d := b.Sub(a)
	length := d.Length()
	if length == 0 {
		return
	}
	hw := p.LineWidth / 2
	n := boothfx.Pt(-d.Y/length*hw, d.X/length*hw)
	FillPolygon(dst, p, []boothfx.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)})
}

// StrokeRect strokes the rectangle outline centered on its edges, the
// way canvas strokeRect does: half the line width falls outside.
func StrokeRect(dst *boothfx.Pixmap, x, y, w, h float64, p *Paint) {
	if p == nil || p.LineWidth <= 0 || w <= 0 || h <= 0 {
		return
	}
	hw := p.LineWidth / 2
	outer := []boothfx.Point{
		{X: x - hw, Y: y - hw}, {X: x + w + hw, Y: y - hw},
		{X: x + w + hw, Y: y + h + hw}, {X: x - hw, Y: y + h + hw},
	}
	if hw*2 >= w || hw*2 >= h {
		FillPolygon(dst, p, outer)
		return
	}
	// Reverse winding punches the interior out.
	inner := []boothfx.Point{
		{X: x + hw, Y: y + hw}, {X: x + hw, Y: y + h - hw},
		{X: x + w - hw, Y: y + h - hw}, {X: x + w - hw, Y: y + hw},
	}
	FillPolygon(dst, p, outer, inner)
}
