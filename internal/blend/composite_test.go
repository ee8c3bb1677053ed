package blend

import (
	"testing"

	"github.com/gogpu/boothfx"
)

func solid(w, h int, r, g, b, a uint8) *boothfx.Pixmap {
	pm := boothfx.NewPixmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pm.SetRGBA8(x, y, r, g, b, a)
		}
	}
	return pm
}

func TestChannel(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		s, d float64
		want float64
	}{
		{"multiply", ModeMultiply, 0.5, 0.5, 0.25},
		{"multiply black", ModeMultiply, 0, 0.8, 0},
		{"screen", ModeScreen, 0.5, 0.5, 0.75},
		{"overlay dark backdrop", ModeOverlay, 0.5, 0.25, 0.25},
		{"overlay light backdrop", ModeOverlay, 0.5, 0.75, 0.75},
		{"source", ModeSourceOver, 0.3, 0.9, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Channel(tt.mode, tt.s, tt.d); got != tt.want {
				t.Errorf("Channel(%v, %v, %v) = %v, want %v", tt.mode, tt.s, tt.d, got, tt.want)
			}
		})
	}
}

func TestSampleMultiplyOpaqueBlack(t *testing.T) {
	dst := []uint8{200, 100, 50, 255}
	Sample(dst, 0, 0, 0, 0, 1, ModeMultiply)
	if dst[0] != 0 || dst[1] != 0 || dst[2] != 0 || dst[3] != 255 {
		t.Errorf("multiply black = %v, want [0 0 0 255]", dst)
	}
}

func TestSampleTransparentSourceNoop(t *testing.T) {
	for _, mode := range []Mode{ModeSourceOver, ModeMultiply, ModeScreen, ModeOverlay, ModeLighter} {
		dst := []uint8{12, 34, 56, 255}
		Sample(dst, 0, 1, 1, 1, 0, mode)
		if dst[0] != 12 || dst[1] != 34 || dst[2] != 56 || dst[3] != 255 {
			t.Errorf("%v with alpha 0 changed dst to %v", mode, dst)
		}
	}
}

func TestSampleSourceOverHalf(t *testing.T) {
	dst := []uint8{0, 0, 0, 255}
	Sample(dst, 0, 1, 1, 1, 0.5, ModeSourceOver)
	if dst[0] != 128 || dst[3] != 255 {
		t.Errorf("50%% white over black = %v, want [128 128 128 255]", dst)
	}
}

func TestSampleSourceOverTransparentBackdrop(t *testing.T) {
	dst := []uint8{0, 0, 0, 0}
	Sample(dst, 0, 1, 0, 0, 1, ModeMultiply)
	if dst[0] != 255 || dst[1] != 0 || dst[3] != 255 {
		t.Errorf("multiply onto transparent = %v, want source [255 0 0 255]", dst)
	}
}

func TestSampleLighterClamps(t *testing.T) {
	dst := []uint8{200, 10, 0, 255}
	Sample(dst, 0, 1, 0.1, 0, 1, ModeLighter)
	if dst[0] != 255 || dst[3] != 255 {
		t.Errorf("lighter = %v, want R clamped to 255", dst)
	}
	if dst[1] < 35 || dst[1] > 36 {
		t.Errorf("lighter G = %d, want ~36", dst[1])
	}
}

func TestSampleDestinationOut(t *testing.T) {
	dst := []uint8{10, 20, 30, 255}
	Sample(dst, 0, 0, 0, 0, 1, ModeDestinationOut)
	if dst[3] != 0 {
		t.Errorf("destination-out alpha = %d, want 0", dst[3])
	}
}

func TestDrawSelfTranslated(t *testing.T) {
	pm := solid(4, 1, 0, 0, 0, 255)
	pm.SetRGBA8(0, 0, 255, 255, 255, 255)

	Draw(pm, pm, 1, 0, ModeSourceOver, 1)

	// The copy reads the pre-draw snapshot: only x=1 becomes white.
	want := []uint8{255, 255, 0, 0}
	for x, w := range want {
		if r, _, _, _ := pm.RGBA8(x, 0); r != w {
			t.Errorf("x=%d R = %d, want %d", x, r, w)
		}
	}
}

func TestDrawClipsAndSkipsTransparent(t *testing.T) {
	dst := solid(3, 3, 50, 50, 50, 255)
	src := boothfx.NewPixmap(3, 3)
	src.SetRGBA8(2, 2, 255, 0, 0, 255)

	Draw(dst, src, -2, -2, ModeSourceOver, 1)

	if r, g, _, _ := dst.RGBA8(0, 0); r != 255 || g != 0 {
		t.Errorf("(0,0) = R %d G %d, want red", r, g)
	}
	if r, _, _, _ := dst.RGBA8(1, 1); r != 50 {
		t.Errorf("(1,1) R = %d, want untouched 50", r)
	}
}

func TestFillRect(t *testing.T) {
	dst := solid(4, 4, 0, 0, 0, 255)
	FillRect(dst, 0, 1, 10, 1, boothfx.RGBA2(1, 1, 1, 0.05), ModeSourceOver)

	if r, _, _, _ := dst.RGBA8(3, 1); r != 13 {
		t.Errorf("scan line R = %d, want 13", r)
	}
	if r, _, _, _ := dst.RGBA8(3, 2); r != 0 {
		t.Errorf("row 2 R = %d, want 0", r)
	}
}

func TestDrawVisibleSkipsTransparentBackdrop(t *testing.T) {
	dst := solid(3, 1, 10, 10, 10, 255)
	dst.SetRGBA8(1, 0, 7, 8, 9, 0)
	src := solid(3, 1, 255, 0, 0, 255)

	DrawVisible(dst, src, 0, 0, ModeSourceOver, 1)

	if r, g, b, a := dst.RGBA8(1, 0); r != 7 || g != 8 || b != 9 || a != 0 {
		t.Errorf("(1,0) = (%d,%d,%d,%d), want (7,8,9,0)", r, g, b, a)
	}
	if r, _, _, _ := dst.RGBA8(0, 0); r != 255 {
		t.Errorf("(0,0) R = %d, want 255", r)
	}
}

func TestFillRectVisibleSkipsTransparentBackdrop(t *testing.T) {
	dst := solid(2, 1, 0, 0, 0, 255)
	dst.SetRGBA8(0, 0, 0, 0, 0, 0)

	FillRectVisible(dst, 0, 0, 2, 1, boothfx.White, ModeSourceOver)

	if _, _, _, a := dst.RGBA8(0, 0); a != 0 {
		t.Errorf("(0,0) alpha = %d, want 0", a)
	}
	if r, _, _, _ := dst.RGBA8(1, 0); r != 255 {
		t.Errorf("(1,0) R = %d, want 255", r)
	}
}
