package filter

import (
	"math"

	"github.com/gogpu/boothfx"
)

// into makes dst a same-size copy of src. It is a no-op when they alias.
func into(src, dst *boothfx.Pixmap) {
	if src == dst {
		return
	}
	dst.Resize(src.Width(), src.Height())
	copy(dst.Data(), src.Data())
}

// snapshot returns a view of src that stays unchanged while dst is written.
func snapshot(src, dst *boothfx.Pixmap) *boothfx.Pixmap {
	if src == dst {
		return src.Clone()
	}
	return src
}

// clampByte rounds half to even and clamps to [0, 255].
func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}
