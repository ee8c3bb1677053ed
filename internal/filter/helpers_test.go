package filter

import (
	"math/rand/v2"
	"testing"

	"github.com/gogpu/boothfx"
)

// Test helper functions shared across filter tests.

// solid creates a pixmap filled with one 8-bit color.
func solid(w, h int, r, g, b, a uint8) *boothfx.Pixmap {
	pm := boothfx.NewPixmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pm.SetRGBA8(x, y, r, g, b, a)
		}
	}
	return pm
}

// noisy creates an opaque pixmap of random colors in which every 7th
// sample is transparent with a recognizable color.
func noisy(w, h int, seed uint64) *boothfx.Pixmap {
	rng := newRand(seed)
	pm := boothfx.NewPixmap(w, h)
	d := pm.Data()
	for i := 0; i < len(d); i += 4 {
		if (i/4)%7 == 3 {
			d[i], d[i+1], d[i+2], d[i+3] = 11, 22, 33, 0
			continue
		}
		d[i] = uint8(rng.IntN(256))
		d[i+1] = uint8(rng.IntN(256))
		d[i+2] = uint8(rng.IntN(256))
		d[i+3] = 255
	}
	return pm
}

// newRand returns a deterministic generator.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// assertTransparentKept fails for every sample that was transparent in
// before and is not byte-identical in after.
func assertTransparentKept(t *testing.T, before, after *boothfx.Pixmap) {
	t.Helper()
	bd, ad := before.Data(), after.Data()
	for i := 0; i < len(bd); i += 4 {
		if bd[i+3] != 0 {
			continue
		}
		if bd[i] != ad[i] || bd[i+1] != ad[i+1] || bd[i+2] != ad[i+2] || ad[i+3] != 0 {
			x, y := (i/4)%before.Width(), (i/4)/before.Width()
			t.Fatalf("transparent sample (%d,%d) changed from %v to %v", x, y, bd[i:i+4], ad[i:i+4])
		}
	}
}

// equalPixmaps reports whether a and b hold the same samples.
func equalPixmaps(a, b *boothfx.Pixmap) bool {
	if !a.SameSize(b) {
		return false
	}
	ad, bd := a.Data(), b.Data()
	for i := range ad {
		if ad[i] != bd[i] {
			return false
		}
	}
	return true
}
