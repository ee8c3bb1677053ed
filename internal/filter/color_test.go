package filter

import (
	"testing"
)

func TestQuantize(t *testing.T) {
	for c := 0; c <= 255; c++ {
		got := Quantize(uint8(c))
		switch got {
		case 0, 64, 128, 192:
		default:
			t.Fatalf("Quantize(%d) = %d, not a posterize level", c, got)
		}
		if int(got) > c {
			t.Fatalf("Quantize(%d) = %d, want <= %d", c, got, c)
		}
	}
}

func TestPosterizeGrayKeepsQuantizedValue(t *testing.T) {
	for c := 0; c <= 255; c++ {
		pm := solid(1, 1, uint8(c), uint8(c), uint8(c), 255)
		Posterize(pm, pm)
		r, g, b, _ := pm.RGBA8(0, 0)
		want := Quantize(uint8(c))
		if r != want || g != want || b != want {
			t.Fatalf("Posterize gray %d = (%d,%d,%d), want %d", c, r, g, b, want)
		}
	}
}

func TestPosterizeMidGrayFrame(t *testing.T) {
	src := solid(4, 4, 128, 128, 128, 255)
	dst := solid(0, 0, 0, 0, 0, 0)
	Posterize(src, dst)

	if dst.Width() != 4 || dst.Height() != 4 {
		t.Fatalf("size = %dx%d, want 4x4", dst.Width(), dst.Height())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			r, g, b, a := dst.RGBA8(x, y)
			if r != 128 || g != 128 || b != 128 || a != 255 {
				t.Errorf("(%d,%d) = (%d,%d,%d,%d), want uniform gray 128", x, y, r, g, b, a)
			}
		}
	}
}

func TestPosterizeSaturation(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    [3]uint8
	}{
		// Quantized to (128,64,64); lightness 96 < 128.
		{"dark branch", 150, 100, 100, [3]uint8{154, 38, 38}},
		// Quantized to (192,128,128); lightness 160 >= 128.
		{"light branch", 255, 130, 130, [3]uint8{218, 102, 102}},
		// Quantized to (192,64,0): already fully saturated.
		{"saturated", 200, 100, 50, [3]uint8{192, 64, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := solid(1, 1, tt.r, tt.g, tt.b, 255)
			Posterize(pm, pm)
			r, g, b, _ := pm.RGBA8(0, 0)
			if got := [3]uint8{r, g, b}; got != tt.want {
				t.Errorf("Posterize(%d,%d,%d) = %v, want %v", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestRainbowMix(t *testing.T) {
	src := solid(2, 2, 100, 100, 100, 255)
	dst := solid(0, 0, 0, 0, 0, 0)

	// Row 1 at frame 359 lands on hue 0 like row 0 at frame 0.
	Rainbow(src, dst, 359)

	r, g, b, a := dst.RGBA8(0, 1)
	if r != 135 || g != 81 || b != 81 || a != 255 {
		t.Errorf("rainbow hue 0 = (%d,%d,%d,%d), want (135,81,81,255)", r, g, b, a)
	}
	if r0, _, _, _ := src.RGBA8(0, 1); r0 != 100 {
		t.Errorf("source modified: R = %d", r0)
	}
}

func TestChannelShiftActive(t *testing.T) {
	tests := []struct {
		frame uint64
		want  bool
	}{
		{0, true}, {4, true}, {5, false}, {29, false}, {30, true}, {34, true}, {35, false},
	}
	for _, tt := range tests {
		if got := ChannelShiftActive(tt.frame); got != tt.want {
			t.Errorf("ChannelShiftActive(%d) = %v, want %v", tt.frame, got, tt.want)
		}
	}
}

func TestChannelShift(t *testing.T) {
	pm := solid(10, 1, 0, 0, 0, 255)
	pm.SetRGBA8(5, 0, 200, 0, 0, 255)
	orig := pm.Clone()

	ChannelShift(pm, 7)
	if !equalPixmaps(pm, orig) {
		t.Fatal("ChannelShift outside its window changed the frame")
	}

	ChannelShift(pm, 0)
	// Shifted left by 3 the red sample lands on x=2; the screen pass
	// copies the shifted frame 3 to the right, bringing it back to x=5.
	if r, _, _, _ := pm.RGBA8(2, 0); r != 200 {
		t.Errorf("x=2 R = %d, want 200", r)
	}
	if r, _, _, _ := pm.RGBA8(5, 0); r != 200 {
		t.Errorf("x=5 R = %d, want 200", r)
	}
}

func TestChannelShiftKeepsCutOut(t *testing.T) {
	pm := solid(10, 1, 200, 50, 50, 255)
	pm.SetRGBA8(4, 0, 0, 0, 0, 0)

	ChannelShift(pm, 0)
	if r, g, b, a := pm.RGBA8(4, 0); r != 0 || g != 0 || b != 0 || a != 0 {
		t.Errorf("cut-out sample = (%d,%d,%d,%d), want (0,0,0,0)", r, g, b, a)
	}
	if _, _, _, a := pm.RGBA8(5, 0); a != 255 {
		t.Errorf("x=5 alpha = %d, want 255", a)
	}
}
