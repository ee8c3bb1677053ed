package filter

import (
	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/paint"
)

// AnimeHint is the text shown while the anime style is selected. The
// style itself is applied by a remote service at capture time.
const AnimeHint = "AnimeGAN effect will be applied on capture"

const animeBorderWidth = 15

var (
	animeBorderStops = []paint.ColorStop{
		{Offset: 0, Color: boothfx.RGB8(255, 105, 180, 0.5)},
		{Offset: 0.5, Color: boothfx.RGB8(147, 112, 219, 0.5)},
		{Offset: 1, Color: boothfx.RGB8(100, 149, 237, 0.5)},
	}
	animeHintColor = boothfx.RGBA2(1, 1, 1, 0.7)
)

// AnimeIndicator draws a pink to cornflower gradient border along the
// frame diagonal and the hint text. It does not transform the frame.
func AnimeIndicator(dst *boothfx.Pixmap) {
	w, h := float64(dst.Width()), float64(dst.Height())

	border := paint.NewPaint(paint.NewLinearGradient(0, 0, w, h, animeBorderStops...))
	border.LineWidth = animeBorderWidth
	paint.StrokeRect(dst, 0, 0, w, h, border)

	paint.DrawText(dst, 10, 30, AnimeHint, paint.Fill(animeHintColor))
}
