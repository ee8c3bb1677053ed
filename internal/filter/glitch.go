package filter

import (
	"math/rand/v2"

	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/blend"
)

const (
	glitchPeriod    = 10
	glitchColorKick = 50
	scanLineStride  = 4
)

var scanLineColor = boothfx.RGBA2(1, 1, 1, 0.05)

// GlitchBlock is one displaced rectangle of the glitch effect.
type GlitchBlock struct {
	X, Y, W, H int

	// Offset is the horizontal displacement in [-15, 14].
	Offset int
}

// RandomGlitchBlocks draws 3 to 7 blocks for a w×h frame: origin anywhere
// in the frame, width 50..149, height 10..29.
func RandomGlitchBlocks(w, h int, rng *rand.Rand) []GlitchBlock {
	if w <= 0 || h <= 0 {
		return nil
	}
	blocks := make([]GlitchBlock, rng.IntN(5)+3)
	for i := range blocks {
		blocks[i] = GlitchBlock{
			X:      rng.IntN(w),
			Y:      rng.IntN(h),
			W:      rng.IntN(100) + 50,
			H:      rng.IntN(20) + 10,
			Offset: rng.IntN(30) - 15,
		}
	}
	return blocks
}

// Displace copies the rows of b shifted by b.Offset, adding 50 to red and
// blue (clamped). Transparent source samples and targets outside the
// frame are skipped. Each row is read before any of it is written.
func Displace(dst *boothfx.Pixmap, b GlitchBlock) {
	w, h := dst.Width(), dst.Height()
	d := dst.Data()
	row := make([]uint8, b.W*4)

	for j := 0; j < b.H; j++ {
		y := b.Y + j
		if y < 0 || y >= h {
			continue
		}
		x0 := max(b.X, 0)
		x1 := min(b.X+b.W, w)
		if x0 >= x1 {
			continue
		}
		copy(row, d[dst.Offset(x0, y):dst.Offset(x1, y)])

		for x := x0; x < x1; x++ {
			tx := x + b.Offset
			if tx < 0 || tx >= w {
				continue
			}
			s := row[(x-x0)*4 : (x-x0)*4+4]
			if s[3] == 0 {
				continue
			}
			t := dst.Offset(tx, y)
			d[t] = clampByte(float64(s[0]) + glitchColorKick)
			d[t+1] = s[1]
			d[t+2] = clampByte(float64(s[2]) + glitchColorKick)
			d[t+3] = s[3]
		}
	}
}

// ScanLines draws a 1px white line at 5% opacity every 4 rows, leaving
// transparent samples alone.
func ScanLines(dst *boothfx.Pixmap) {
	for y := 0; y < dst.Height(); y += scanLineStride {
		blend.FillRectVisible(dst, 0, y, dst.Width(), 1, scanLineColor, blend.ModeSourceOver)
	}
}

// Glitch displaces random blocks every 10th frame, always draws scan
// lines, then applies ChannelShift.
func Glitch(dst *boothfx.Pixmap, frame uint64, rng *rand.Rand) {
	if frame%glitchPeriod == 0 {
		for _, b := range RandomGlitchBlocks(dst.Width(), dst.Height(), rng) {
			Displace(dst, b)
		}
	}
	ScanLines(dst)
	ChannelShift(dst, frame)
}
