package filter

import (
	"math"

	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/paint"
	"github.com/gogpu/boothfx/internal/parallel"
)

const (
	neonBrightThreshold = 100
	neonDarkScale       = 0.3
	neonStrokeWidth     = 2
)

// NeonPulse returns the brightening factor for the frame:
// 1.3 + 0.3·sin(frame·0.05).
func NeonPulse(frame uint64) float64 {
	return 1.3 + math.Sin(float64(frame)*0.05)*0.3
}

// NeonColor returns the glow hue for the frame: hsl((frame*2) mod 360,
// 100%, 50%).
func NeonColor(frame uint64) boothfx.RGBA {
	return boothfx.HSL(float64((frame*2)%360), 1, 0.5)
}

// NeonBlur returns the canvas shadowBlur for the frame: 15 + 5·sin(frame·0.1).
func NeonBlur(frame uint64) float64 {
	return 15 + math.Sin(float64(frame)*0.1)*5
}

// NeonTone brightens samples whose mean channel exceeds 100 by the pulse
// factor (clamped to 255) and darkens the rest to 30%. Transparent samples
// are skipped.
func NeonTone(src, dst *boothfx.Pixmap, frame uint64) {
	into(src, dst)
	pulse := NeonPulse(frame)
	d := dst.Data()
	for i := 0; i < len(d); i += 4 {
		if d[i+3] == 0 {
			continue
		}
		k := neonDarkScale
		if (float64(d[i])+float64(d[i+1])+float64(d[i+2]))/3 > neonBrightThreshold {
			k = pulse
		}
		d[i] = clampByte(float64(d[i]) * k)
		d[i+1] = clampByte(float64(d[i+1]) * k)
		d[i+2] = clampByte(float64(d[i+2]) * k)
	}
}

// Neon applies NeonTone, draws a glow in the cycling hue under the frame,
// then strokes the frame border 2px wide in the same hue.
func Neon(src, dst *boothfx.Pixmap, frame uint64, s *parallel.Splitter) {
	NeonTone(src, dst, frame)

	c := NeonColor(frame)
	(&Glow{Blur: NeonBlur(frame), Color: c}).Apply(dst, s)

	p := paint.Fill(c)
	p.LineWidth = neonStrokeWidth
	paint.StrokeRect(dst, 0, 0, float64(dst.Width()), float64(dst.Height()), p)
}
