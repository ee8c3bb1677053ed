package paint

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/boothfx"
)

// Face is the bitmap face used for overlay text.
var Face font.Face = basicfont.Face7x13

// DrawText draws s with its baseline starting at (x, y). Only the brush
// color at the starting point is used; gradients are not applied to text.
func DrawText(dst *boothfx.Pixmap, x, y int, s string, p *Paint) {
	if dst == nil || p == nil || s == "" {
		return
	}
	c := p.Brush.ColorAt(float64(x), float64(y))
	r, g, b, al := c.WithAlpha(c.A * p.Alpha).Bytes()
	if al == 0 {
		return
	}

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.NRGBA{R: r, G: g, B: b, A: al}),
		Face: Face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// MeasureText returns the advance width of s in pixels.
func MeasureText(s string) int {
	return font.MeasureString(Face, s).Ceil()
}
