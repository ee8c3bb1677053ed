package filter

import (
	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/blend"
)

const (
	// posterizeStep is the quantization step of Posterize.
	posterizeStep = 64

	// saturationBoost multiplies the saturation after quantization.
	saturationBoost = 1.8

	rainbowSaturation = 0.7
	rainbowLightness  = 0.5
	rainbowMix        = 0.3

	channelShiftPeriod = 30
	channelShiftWindow = 5
	channelShiftOffset = 3
)

// Quantize maps a channel value to the lower bound of its posterize step.
func Quantize(c uint8) uint8 {
	return c / posterizeStep * posterizeStep
}

// Posterize quantizes every channel of the opaque samples of src to steps
// of 64 and boosts saturation by 1.8 (capped at full saturation) around the
// sample's mid-lightness. Gray samples keep their quantized value. The
// result is written to dst, which may be src.
func Posterize(src, dst *boothfx.Pixmap) {
	into(src, dst)
	data := dst.Data()
	for i := 0; i < len(data); i += 4 {
		if data[i+3] == 0 {
			continue
		}
		r := Quantize(data[i])
		g := Quantize(data[i+1])
		b := Quantize(data[i+2])
		data[i], data[i+1], data[i+2] = saturate(r, g, b)
	}
}

// saturate applies the HSL saturation boost to one sample.
func saturate(r, g, b uint8) (uint8, uint8, uint8) {
	hi := float64(max(r, g, b))
	lo := float64(min(r, g, b))
	if hi == lo {
		return r, g, b
	}

	var sat float64
	if (hi+lo)/2 < 128 {
		sat = (hi - lo) / (hi + lo)
	} else {
		sat = (hi - lo) / (510 - hi - lo)
	}
	ratio := min(sat*saturationBoost, 1) / sat
	mid := (hi + lo) / 2

	return clampByte(mid + (float64(r)-mid)*ratio),
		clampByte(mid + (float64(g)-mid)*ratio),
		clampByte(mid + (float64(b)-mid)*ratio)
}

// Rainbow tints each opaque sample toward a hue that cycles with the row
// and the frame number: 70% original color, 30% hsl((y+frame) mod 360,
// 70%, 50%).
func Rainbow(src, dst *boothfx.Pixmap, frame uint64) {
	into(src, dst)
	data := dst.Data()
	w := dst.Width()
	for y := 0; y < dst.Height(); y++ {
		hue := float64((uint64(y) + frame) % 360)
		hr, hg, hb := boothfx.HSLBytes(hue/360, rainbowSaturation, rainbowLightness)
		row := data[dst.Offset(0, y) : dst.Offset(0, y)+w*4]
		for i := 0; i < len(row); i += 4 {
			if row[i+3] == 0 {
				continue
			}
			row[i] = mix(row[i], hr)
			row[i+1] = mix(row[i+1], hg)
			row[i+2] = mix(row[i+2], hb)
		}
	}
}

func mix(orig, tint uint8) uint8 {
	return clampByte(float64(orig)*(1-rainbowMix) + float64(tint)*rainbowMix)
}

// ChannelShiftActive reports whether the color aberration window is open
// for the frame: the first 5 frames of every 30.
func ChannelShiftActive(frame uint64) bool {
	return frame%channelShiftPeriod < channelShiftWindow
}

// ChannelShift smears the frame horizontally for the chromatic aberration
// look: the frame is drawn onto itself 3px to the left, then 3px to the
// right with screen blending. Outside the active window it does nothing.
// Transparent samples are never written.
func ChannelShift(dst *boothfx.Pixmap, frame uint64) {
	if !ChannelShiftActive(frame) {
		return
	}
	blend.DrawVisible(dst, dst, -channelShiftOffset, 0, blend.ModeSourceOver, 1)
	blend.DrawVisible(dst, dst, channelShiftOffset, 0, blend.ModeScreen, 1)
}
