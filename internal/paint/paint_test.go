package paint

import (
	"testing"

	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/blend"
)

func black(w, h int) *boothfx.Pixmap {
	pm := boothfx.NewPixmap(w, h)
	pm.Clear(boothfx.Black)
	return pm
}

func red(pm *boothfx.Pixmap, x, y int) uint8 {
	r, _, _, _ := pm.RGBA8(x, y)
	return r
}

func TestFillCircle(t *testing.T) {
	pm := black(21, 21)
	FillCircle(pm, 10, 10, 5, Fill(boothfx.White))

	if got := red(pm, 10, 10); got != 255 {
		t.Errorf("center R = %d, want 255", got)
	}
	if got := red(pm, 0, 0); got != 0 {
		t.Errorf("corner R = %d, want 0", got)
	}
	// The pixel straddling the rim is partially covered.
	if got := red(pm, 14, 10); got == 0 || got == 255 {
		t.Errorf("rim R = %d, want partial coverage", got)
	}
}

func TestFillCircleGlobalAlpha(t *testing.T) {
	pm := black(9, 9)
	p := Fill(boothfx.White)
	p.Alpha = 0.5
	FillCircle(pm, 4.5, 4.5, 3, p)

	if got := red(pm, 4, 4); got != 128 {
		t.Errorf("center R = %d, want 128", got)
	}
}

func TestFillCircleLighterAdds(t *testing.T) {
	pm := boothfx.NewPixmap(9, 9)
	pm.Clear(boothfx.RGB8(100, 0, 0, 1))
	p := Fill(boothfx.RGB8(100, 50, 0, 1))
	p.Mode = blend.ModeLighter
	FillCircle(pm, 4.5, 4.5, 3, p)

	r, g, _, _ := pm.RGBA8(4, 4)
	if r != 200 || g != 50 {
		t.Errorf("lighter center = (%d, %d), want (200, 50)", r, g)
	}
}

func TestFillPolygonSquare(t *testing.T) {
	pm := black(10, 10)
	square := []boothfx.Point{{X: 2, Y: 2}, {X: 6, Y: 2}, {X: 6, Y: 6}, {X: 2, Y: 6}}
	FillPolygon(pm, Fill(boothfx.White), square)

	tests := []struct {
		x, y int
		want uint8
	}{
		{2, 2, 255},
		{5, 5, 255},
		{3, 4, 255},
		{1, 1, 0},
		{6, 6, 0},
		{6, 3, 0},
	}
	for _, tt := range tests {
		if got := red(pm, tt.x, tt.y); got != tt.want {
			t.Errorf("(%d,%d) R = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFillPolygonHalfPixelEdge(t *testing.T) {
	pm := black(4, 4)
	rect := []boothfx.Point{{X: 0, Y: 0}, {X: 1.5, Y: 0}, {X: 1.5, Y: 4}, {X: 0, Y: 4}}
	FillPolygon(pm, Fill(boothfx.White), rect)

	// The coverage mask is 8-bit, so half coverage lands on 127 or 128.
	if got := red(pm, 1, 1); got < 127 || got > 128 {
		t.Errorf("half-covered R = %d, want 127..128", got)
	}
	if got := red(pm, 2, 1); got != 0 {
		t.Errorf("uncovered R = %d, want 0", got)
	}
}

func TestFillPolygonClipsOffscreen(t *testing.T) {
	pm := black(4, 4)
	big := []boothfx.Point{{X: -10, Y: -10}, {X: 10, Y: -10}, {X: 10, Y: 10}, {X: -10, Y: 10}}
	FillPolygon(pm, Fill(boothfx.White), big)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := red(pm, x, y); got != 255 {
				t.Fatalf("(%d,%d) R = %d, want 255", x, y, got)
			}
		}
	}
}

func TestStrokeRectLeavesInterior(t *testing.T) {
	pm := black(20, 20)
	p := Fill(boothfx.White)
	p.LineWidth = 4
	StrokeRect(pm, 0, 0, 20, 20, p)

	if got := red(pm, 10, 10); got != 0 {
		t.Errorf("interior R = %d, want 0", got)
	}
	if got := red(pm, 0, 10); got != 255 {
		t.Errorf("left edge R = %d, want 255", got)
	}
	if got := red(pm, 1, 10); got != 255 {
		t.Errorf("inner half of stroke R = %d, want 255", got)
	}
	if got := red(pm, 2, 10); got != 0 {
		t.Errorf("past stroke R = %d, want 0", got)
	}
}

func TestStrokeLineHorizontal(t *testing.T) {
	pm := black(10, 10)
	p := Fill(boothfx.White)
	p.LineWidth = 2
	StrokeLine(pm, boothfx.Pt(1, 5), boothfx.Pt(8, 5), p)

	if got := red(pm, 4, 4); got != 255 {
		t.Errorf("(4,4) R = %d, want 255", got)
	}
	if got := red(pm, 4, 5); got != 255 {
		t.Errorf("(4,5) R = %d, want 255", got)
	}
	if got := red(pm, 4, 7); got != 0 {
		t.Errorf("(4,7) R = %d, want 0", got)
	}
	if got := red(pm, 9, 5); got != 0 {
		t.Errorf("past butt cap R = %d, want 0", got)
	}
}

func TestLinearGradient(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0,
		ColorStop{Offset: 1, Color: boothfx.White},
		ColorStop{Offset: 0, Color: boothfx.Black},
	)

	tests := []struct {
		x    float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{5, 0.5},
		{10, 1},
		{20, 1},
	}
	for _, tt := range tests {
		if got := g.ColorAt(tt.x, 3).R; got != tt.want {
			t.Errorf("ColorAt(%v).R = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestRadialGradient(t *testing.T) {
	g := NewRadialGradient(0, 0, 10,
		ColorStop{Offset: 0, Color: boothfx.RGBA2(1, 1, 1, 0.8)},
		ColorStop{Offset: 0.5, Color: boothfx.RGBA2(1, 1, 1, 0.4)},
		ColorStop{Offset: 1, Color: boothfx.RGBA2(1, 1, 1, 0)},
	)

	if got := g.ColorAt(0, 0).A; got != 0.8 {
		t.Errorf("center A = %v, want 0.8", got)
	}
	if got := g.ColorAt(5, 0).A; got < 0.399 || got > 0.401 {
		t.Errorf("mid A = %v, want 0.4", got)
	}
	if got := g.ColorAt(0, 12).A; got != 0 {
		t.Errorf("outside A = %v, want 0", got)
	}
}

func TestColorAtOffsetEmpty(t *testing.T) {
	if got := colorAtOffset(nil, 0.5); got != boothfx.Transparent {
		t.Errorf("colorAtOffset(nil) = %+v, want transparent", got)
	}
}

func TestDrawText(t *testing.T) {
	pm := black(40, 20)
	DrawText(pm, 2, 14, "AB", Fill(boothfx.White))

	lit := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if red(pm, x, y) > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("DrawText drew no pixels")
	}
	if got := red(pm, 39, 0); got != 0 {
		t.Errorf("far corner R = %d, want 0", got)
	}
}

func TestMeasureText(t *testing.T) {
	if got := MeasureText("abc"); got != 21 {
		t.Errorf("MeasureText(abc) = %d, want 21", got)
	}
}

func TestFillPolygonWinding(t *testing.T) {
	outer := []boothfx.Point{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 8}, {X: 0, Y: 8}}
	same := []boothfx.Point{{X: 2, Y: 2}, {X: 6, Y: 2}, {X: 6, Y: 6}, {X: 2, Y: 6}}
	reversed := []boothfx.Point{{X: 2, Y: 2}, {X: 2, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 2}}

	tests := []struct {
		name  string
		inner []boothfx.Point
		want  uint8
	}{
		{"same direction stays filled", same, 255},
		{"reversed cuts a hole", reversed, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := black(8, 8)
			FillPolygon(pm, Fill(boothfx.White), outer, tt.inner)
			if got := red(pm, 4, 4); got != tt.want {
				t.Errorf("center R = %d, want %d", got, tt.want)
			}
			if got := red(pm, 1, 1); got != 255 {
				t.Errorf("ring R = %d, want 255", got)
			}
		})
	}
}
