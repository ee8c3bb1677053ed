// Package blend composites non-premultiplied RGBA samples the way a 2D
// canvas does for globalCompositeOperation.
//
// Separable blend modes follow the W3C Compositing and Blending Level 1
// formulas: the source color is first mixed with the blend result
// B(Cb, Cs) in proportion to the backdrop alpha, then composited
// source-over.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import (
	"github.com/gogpu/boothfx"
)

// Mode represents a compositing operation.
type Mode int

const (
	// ModeSourceOver is the default alpha blending mode.
	ModeSourceOver Mode = iota
	// ModeMultiply darkens: B = Cs * Cb.
	ModeMultiply
	// ModeScreen lightens: B = Cs + Cb - Cs*Cb.
	ModeScreen
	// ModeOverlay is HardLight with source and backdrop swapped.
	ModeOverlay
	// ModeLighter adds premultiplied source and backdrop, clamped.
	ModeLighter
	// ModeDestinationOut keeps the backdrop where the source is transparent.
	ModeDestinationOut
)

// String returns the canvas name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSourceOver:
		return "source-over"
	case ModeMultiply:
		return "multiply"
	case ModeScreen:
		return "screen"
	case ModeOverlay:
		return "overlay"
	case ModeLighter:
		return "lighter"
	case ModeDestinationOut:
		return "destination-out"
	default:
		return "unknown"
	}
}

// Channel applies the separable blend function of mode to one channel.
// s is the source channel, d the backdrop channel, both in [0, 1].
func Channel(mode Mode, s, d float64) float64 {
	switch mode {
	case ModeMultiply:
		return s * d
	case ModeScreen:
		return s + d - s*d
	case ModeOverlay:
		if d <= 0.5 {
			return 2 * s * d
		}
		return 1 - 2*(1-s)*(1-d)
	default:
		return s
	}
}

// Sample composites a source sample onto the 4 bytes at dst[i:i+4].
// Source channels and alpha are in [0, 1]; sa already includes any
// global alpha.
func Sample(dst []uint8, i int, sr, sg, sb, sa float64, mode Mode) {
	if sa <= 0 && mode != ModeDestinationOut {
		return
	}
	if sa > 1 {
		sa = 1
	}

	db := dst[i : i+4 : i+4]
	dr := float64(db[0]) / 255
	dg := float64(db[1]) / 255
	dbl := float64(db[2]) / 255
	da := float64(db[3]) / 255

	var or, og, ob, oa float64

	switch mode {
	case ModeDestinationOut:
		or, og, ob = dr, dg, dbl
		oa = da * (1 - sa)
	case ModeLighter:
		oa = min(1, sa+da)
		if oa == 0 {
			break
		}
		or = min(1, sr*sa+dr*da) / oa
		og = min(1, sg*sa+dg*da) / oa
		ob = min(1, sb*sa+dbl*da) / oa
	default:
		if mode != ModeSourceOver && da > 0 {
			sr = (1-da)*sr + da*Channel(mode, sr, dr)
			sg = (1-da)*sg + da*Channel(mode, sg, dg)
			sb = (1-da)*sb + da*Channel(mode, sb, dbl)
		}
		inv := da * (1 - sa)
		oa = sa + inv
		if oa == 0 {
			break
		}
		or = (sr*sa + dr*inv) / oa
		og = (sg*sa + dg*inv) / oa
		ob = (sb*sa + dbl*inv) / oa
	}

	db[0] = toByte(or)
	db[1] = toByte(og)
	db[2] = toByte(ob)
	db[3] = toByte(oa)
}

// Draw composites src onto dst with its origin at (dx, dy), scaling every
// source alpha by alpha. Samples falling outside dst are skipped.
// When src and dst are the same pixmap, src is snapshotted first so the
// draw reads the pre-draw contents, as a canvas drawImage of itself does.
func Draw(dst, src *boothfx.Pixmap, dx, dy int, mode Mode, alpha float64) {
	draw(dst, src, dx, dy, mode, alpha, false)
}

// DrawVisible is Draw restricted to dst samples that are not fully
// transparent. Cut-out samples keep their exact bytes.
func DrawVisible(dst, src *boothfx.Pixmap, dx, dy int, mode Mode, alpha float64) {
	draw(dst, src, dx, dy, mode, alpha, true)
}

func draw(dst, src *boothfx.Pixmap, dx, dy int, mode Mode, alpha float64, visibleOnly bool) {
	if dst == nil || src == nil || alpha <= 0 {
		return
	}
	if src == dst {
		src = src.Clone()
	}

	x0 := max(0, dx)
	y0 := max(0, dy)
	x1 := min(dst.Width(), dx+src.Width())
	y1 := min(dst.Height(), dy+src.Height())
	if x0 >= x1 || y0 >= y1 {
		return
	}

	sd := src.Data()
	dd := dst.Data()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			si := src.Offset(x-dx, y-dy)
			sa := float64(sd[si+3]) / 255 * alpha
			if sa == 0 && mode != ModeDestinationOut {
				continue
			}
			di := dst.Offset(x, y)
			if visibleOnly && dd[di+3] == 0 {
				continue
			}
			Sample(dd, di,
				float64(sd[si])/255, float64(sd[si+1])/255, float64(sd[si+2])/255, sa, mode)
		}
	}
}

// FillRect composites a solid color over the rectangle [x, x+w) × [y, y+h),
// clipped to dst.
func FillRect(dst *boothfx.Pixmap, x, y, w, h int, c boothfx.RGBA, mode Mode) {
	fillRect(dst, x, y, w, h, c, mode, false)
}

// FillRectVisible is FillRect restricted to dst samples that are not
// fully transparent.
func FillRectVisible(dst *boothfx.Pixmap, x, y, w, h int, c boothfx.RGBA, mode Mode) {
	fillRect(dst, x, y, w, h, c, mode, true)
}

func fillRect(dst *boothfx.Pixmap, x, y, w, h int, c boothfx.RGBA, mode Mode, visibleOnly bool) {
	if dst == nil || c.A <= 0 {
		return
	}
	x0, y0 := max(0, x), max(0, y)
	x1, y1 := min(dst.Width(), x+w), min(dst.Height(), y+h)
	dd := dst.Data()
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			i := dst.Offset(px, py)
			if visibleOnly && dd[i+3] == 0 {
				continue
			}
			Sample(dd, i, c.R, c.G, c.B, c.A, mode)
		}
	}
}

// toByte converts a [0, 1] value to a rounded byte.
func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
