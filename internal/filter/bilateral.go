package filter

import (
	"math"

	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/parallel"
)

const (
	bilateralRadius = 3

	// bilateralSigma is shared by the spatial and the color term. The
	// color distance is in raw 0..255 units, so the color term is nearly a
	// hard equality test; the cartoon look is calibrated against this.
	bilateralSigma = 0.5
)

// spatialWeights holds exp(-(kx²+ky²)/2σ²) for the window, row-major.
var spatialWeights = func() []float64 {
	const size = 2*bilateralRadius + 1
	w := make([]float64, size*size)
	for ky := -bilateralRadius; ky <= bilateralRadius; ky++ {
		for kx := -bilateralRadius; kx <= bilateralRadius; kx++ {
			d2 := float64(kx*kx + ky*ky)
			w[(ky+bilateralRadius)*size+kx+bilateralRadius] = math.Exp(-d2 / (2 * bilateralSigma * bilateralSigma))
		}
	}
	return w
}()

// Bilateral smooths src into dst with an edge-preserving bilateral filter
// of radius 3.
//
// Only samples at least 3 pixels away from every border are filtered; the
// rest are copied unchanged. Transparent centers are skipped, transparent
// neighbors contribute to neither the weighted sum nor the weight total,
// and a zero weight total leaves the sample as is. Alpha is never changed.
//
// Rows are split across s; a nil splitter filters on the calling goroutine.
func Bilateral(src, dst *boothfx.Pixmap, s *parallel.Splitter) {
	in := snapshot(src, dst)
	into(src, dst)

	w, h := in.Width(), in.Height()
	if w <= 2*bilateralRadius || h <= 2*bilateralRadius {
		return
	}

	s.Rows(bilateralRadius, h-bilateralRadius, func(y0, y1 int) {
		bilateralRows(in, dst, y0, y1)
	})
}

func bilateralRows(in, out *boothfx.Pixmap, y0, y1 int) {
	const size = 2*bilateralRadius + 1
	twoSigmaSq := 2 * bilateralSigma * bilateralSigma

	sd := in.Data()
	od := out.Data()
	w := in.Width()

	for y := y0; y < y1; y++ {
		for x := bilateralRadius; x < w-bilateralRadius; x++ {
			i := in.Offset(x, y)
			if sd[i+3] == 0 {
				continue
			}
			cr, cg, cb := float64(sd[i]), float64(sd[i+1]), float64(sd[i+2])

			var sumR, sumG, sumB, weightSum float64
			for ky := -bilateralRadius; ky <= bilateralRadius; ky++ {
				row := in.Offset(x-bilateralRadius, y+ky)
				for kx := 0; kx < size; kx++ {
					k := row + kx*4
					if sd[k+3] == 0 {
						continue
					}
					nr, ng, nb := float64(sd[k]), float64(sd[k+1]), float64(sd[k+2])
					dr, dg, db := cr-nr, cg-ng, cb-nb
					weight := spatialWeights[(ky+bilateralRadius)*size+kx] *
						math.Exp(-(dr*dr+dg*dg+db*db)/twoSigmaSq)

					sumR += nr * weight
					sumG += ng * weight
					sumB += nb * weight
					weightSum += weight
				}
			}

			if weightSum > 0 {
				od[i] = clampByte(sumR / weightSum)
				od[i+1] = clampByte(sumG / weightSum)
				od[i+2] = clampByte(sumB / weightSum)
			}
		}
	}
}
