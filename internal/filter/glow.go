package filter

import (
	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/parallel"
)

// Glow draws a colored halo under an image, the way a canvas draws an
// image onto itself with shadowBlur set and no shadow offset.
//
// The algorithm:
//  1. Extract the alpha channel of the image
//  2. Blur it with a Gaussian of sigma Blur/2
//  3. Colorize it with Color
//  4. Composite the image over the halo
//
// The halo only shows through samples that are not fully opaque.
type Glow struct {
	// Blur is the canvas shadowBlur value in pixels.
	Blur float64

	// Color is the halo color.
	Color boothfx.RGBA
}

// Apply renders the glow into pm in place. Rows of both blur passes are
// split across s.
func (g *Glow) Apply(pm *boothfx.Pixmap, s *parallel.Splitter) {
	if pm == nil || g.Color.A <= 0 || opaque(pm) {
		return
	}
	w, h := pm.Width(), pm.Height()

	alpha := make([]float32, w*h)
	extractAlpha(pm, alpha)
	if g.Blur > 0 {
		blurred := make([]float32, w*h)
		blurAlphaChannel(alpha, blurred, w, h, g.Blur/2, s)
		alpha = blurred
	}
	compositeUnder(pm, alpha, g.Color)
}

// opaque reports whether every sample of pm has full alpha, in which
// case a halo drawn under it is invisible.
func opaque(pm *boothfx.Pixmap) bool {
	d := pm.Data()
	for i := 3; i < len(d); i += 4 {
		if d[i] != 255 {
			return false
		}
	}
	return true
}

func extractAlpha(pm *boothfx.Pixmap, alpha []float32) {
	d := pm.Data()
	for i := range alpha {
		alpha[i] = float32(d[i*4+3]) / 255
	}
}

// blurAlphaChannel applies a separable Gaussian blur to a single-channel
// buffer. Samples beyond the border count as transparent.
func blurAlphaChannel(src, dst []float32, width, height int, sigma float64, s *parallel.Splitter) {
	kernel := CachedGaussianKernel(sigma)
	half := len(kernel) / 2
	temp := make([]float32, width*height)

	s.Rows(0, height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				var sum float32
				for k, wgt := range kernel {
					kx := x + k - half
					if kx >= 0 && kx < width {
						sum += src[y*width+kx] * wgt
					}
				}
				temp[y*width+x] = sum
			}
		}
	})

	s.Rows(0, height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				var sum float32
				for k, wgt := range kernel {
					ky := y + k - half
					if ky >= 0 && ky < height {
						sum += temp[ky*width+x] * wgt
					}
				}
				dst[y*width+x] = sum
			}
		}
	})
}

// compositeUnder paints the colorized halo and puts the original samples
// back on top with source-over.
func compositeUnder(pm *boothfx.Pixmap, halo []float32, c boothfx.RGBA) {
	d := pm.Data()
	for i, ha := range halo {
		j := i * 4
		sa := float64(d[j+3]) / 255
		if sa == 1 {
			continue
		}
		// The halo lands on the image itself first, then the image is
		// drawn over the result.
		hA := float64(ha) * c.A
		baseA := hA + sa*(1-hA)
		sr, sg, sb := float64(d[j])/255, float64(d[j+1])/255, float64(d[j+2])/255
		var br, bg, bb float64
		if baseA > 0 {
			br = (c.R*hA + sr*sa*(1-hA)) / baseA
			bg = (c.G*hA + sg*sa*(1-hA)) / baseA
			bb = (c.B*hA + sb*sa*(1-hA)) / baseA
		}

		inv := baseA * (1 - sa)
		oa := sa + inv
		if oa == 0 {
			continue
		}
		d[j] = clampByte((sr*sa + br*inv) / oa * 255)
		d[j+1] = clampByte((sg*sa + bg*inv) / oa * 255)
		d[j+2] = clampByte((sb*sa + bb*inv) / oa * 255)
		d[j+3] = clampByte(oa * 255)
	}
}
