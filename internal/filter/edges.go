package filter

import (
	"math"

	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/blend"
)

const (
	// sobelScale divides both gradient sums.
	sobelScale = 4

	// edgeThreshold is the gradient magnitude above which a sample is an edge.
	edgeThreshold = 30
)

// Magnitude returns the scaled Sobel gradient magnitude of the red channel
// at the interior sample (x, y). The caller guarantees 1 <= x < w-1 and
// 1 <= y < h-1.
func Magnitude(src *boothfx.Pixmap, x, y int) float64 {
	d := src.Data()
	red := func(dx, dy int) float64 {
		return float64(d[src.Offset(x+dx, y+dy)])
	}

	gx := (-red(-1, -1) + red(1, -1) -
		2*red(-1, 0) + 2*red(1, 0) -
		red(-1, 1) + red(1, 1)) / sobelScale
	gy := (-red(-1, -1) - 2*red(0, -1) - red(1, -1) +
		red(-1, 1) + 2*red(0, 1) + red(1, 1)) / sobelScale

	return math.Sqrt(gx*gx + gy*gy)
}

// Edges writes an edge mask of src into dst: interior samples whose
// Sobel magnitude exceeds 30 become opaque black, every other sample
// (borders and transparent sources included) becomes fully transparent.
func Edges(src, dst *boothfx.Pixmap) {
	in := snapshot(src, dst)
	w, h := in.Width(), in.Height()
	dst.Resize(w, h)
	clear(dst.Data())

	sd := in.Data()
	od := dst.Data()
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := in.Offset(x, y)
			if sd[i+3] == 0 {
				continue
			}
			if Magnitude(in, x, y) > edgeThreshold {
				od[i+3] = 255
			}
		}
	}
}

// Outline draws dark outlines onto a copy of src: the edge mask of src,
// built in scratch, is composited onto dst with multiply blending, so
// only edge samples darken. scratch must not alias src or dst; a nil
// scratch is allocated.
func Outline(src, dst, scratch *boothfx.Pixmap) {
	if scratch == nil {
		scratch = boothfx.NewPixmap(src.Width(), src.Height())
	}
	Edges(src, scratch)
	into(src, dst)
	blend.Draw(dst, scratch, 0, 0, blend.ModeMultiply, 1)
}

// Pixelate replaces every non-transparent sample of each 10×10 block with
// the color of the block's top-left sample. Blocks whose top-left sample
// is transparent are left as is; blocks on the right and bottom borders
// are clipped.
func Pixelate(src, dst *boothfx.Pixmap) {
	into(src, dst)

	const block = 10
	w, h := dst.Width(), dst.Height()
	d := dst.Data()
	for by := 0; by < h; by += block {
		for bx := 0; bx < w; bx += block {
			tl := dst.Offset(bx, by)
			if d[tl+3] == 0 {
				continue
			}
			r, g, b := d[tl], d[tl+1], d[tl+2]
			for y := by; y < min(by+block, h); y++ {
				for x := bx; x < min(bx+block, w); x++ {
					i := dst.Offset(x, y)
					if d[i+3] != 0 {
						d[i], d[i+1], d[i+2] = r, g, b
					}
				}
			}
		}
	}
}
