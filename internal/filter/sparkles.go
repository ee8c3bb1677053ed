package filter

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/paint"
)

const (
	sparkleAreaUnit = 500000
	sparklePerUnit  = 200
	sparkleMax      = 300

	mainSparklePeriod  = 5
	largeSparklePeriod = 30
	twinklePeriod      = 2

	largeSparkleAlpha = 0.7
)

var largeSparkleStops = []paint.ColorStop{
	{Offset: 0, Color: boothfx.RGBA2(1, 1, 1, 0.8)},
	{Offset: 0.5, Color: boothfx.RGBA2(1, 1, 1, 0.4)},
	{Offset: 1, Color: boothfx.RGBA2(1, 1, 1, 0)},
}

// SparkleCount returns the main sparkle count for a w×h frame:
// floor(200·w·h/500000), capped at 300.
func SparkleCount(w, h int) int {
	n := int(math.Floor(sparklePerUnit * float64(w) * float64(h) / sparkleAreaUnit))
	return min(n, sparkleMax)
}

// TwinkleOpacity returns sin(phase·π)·0.7 + 0.3 with phase = (frame/10) mod 1.
func TwinkleOpacity(frame uint64) float64 {
	phase := math.Mod(float64(frame)/10, 1)
	return math.Sin(phase*math.Pi)*0.7 + 0.3
}

// Sparkles draws white sparkles over dst in three independent passes:
//   - every 5th frame, SparkleCount sparkles spread over a sqrt(count)
//     grid, radius 1..4, opacity 0.3..0.8
//   - every 30th frame, count/10 larger glowing sparkles, radius 4..10,
//     with a white core
//   - every 2nd frame, count/20 twinkles, radius 2..6, all at
//     TwinkleOpacity
//
// It returns the number of sparkles drawn.
func Sparkles(dst *boothfx.Pixmap, frame uint64, rng *rand.Rand) int {
	w, h := float64(dst.Width()), float64(dst.Height())
	base := SparkleCount(dst.Width(), dst.Height())
	if base <= 0 {
		return 0
	}
	white := paint.Fill(boothfx.White)
	drawn := 0

	if frame%mainSparklePeriod == 0 {
		grid := math.Sqrt(float64(base))
		cw, ch := w/grid, h/grid
		for i := 0; i < base; i++ {
			gx := math.Mod(float64(i), grid)
			gy := math.Floor(float64(i) / grid)
			x := gx*cw + rng.Float64()*cw
			y := gy*ch + rng.Float64()*ch
			size := rng.Float64()*3 + 1
			white.Alpha = rng.Float64()*0.5 + 0.3
			paint.FillCircle(dst, x, y, size, white)
			drawn++
		}
	}

	if frame%largeSparklePeriod == 0 {
		white.Alpha = 1
		for i := 0; i < base/10; i++ {
			x := rng.Float64() * w
			y := rng.Float64() * h
			size := rng.Float64()*6 + 4

			glow := paint.NewPaint(paint.NewRadialGradient(x, y, size, largeSparkleStops...))
			glow.Alpha = largeSparkleAlpha
			paint.FillCircle(dst, x, y, size, glow)
			paint.FillCircle(dst, x, y, size/3, white)
			drawn++
		}
	}

	if frame%twinklePeriod == 0 {
		white.Alpha = TwinkleOpacity(frame)
		for i := 0; i < base/20; i++ {
			x := rng.Float64() * w
			y := rng.Float64() * h
			size := rng.Float64()*4 + 2
			paint.FillCircle(dst, x, y, size, white)
			drawn++
		}
	}

	return drawn
}
