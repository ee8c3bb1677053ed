package segment

import (
	"github.com/gogpu/boothfx"
)

// Compose writes into dst the person from src over the replacement
// background bg: samples the mask marks as foreground come from src, the
// rest from bg. bg must already be scaled to the frame size.
//
// A missing or mismatched mask or background is a transient not-ready
// state: src is copied to dst unchanged and Compose returns false.
func Compose(src, bg *boothfx.Pixmap, mask *Mask, dst *boothfx.Pixmap) bool {
	w, h := src.Width(), src.Height()
	if dst != src {
		dst.Resize(w, h)
		copy(dst.Data(), src.Data())
	}

	switch {
	case !mask.Fits(w, h):
		boothfx.Logger().Debug("segment: mask not ready", "width", w, "height", h)
		return false
	case bg == nil || !bg.SameSize(src):
		boothfx.Logger().Debug("segment: background not ready", "width", w, "height", h)
		return false
	}

	bd := bg.Data()
	dd := dst.Data()
	for i, v := range mask.Data {
		if v >= ForegroundThreshold {
			continue
		}
		j := i * 4
		copy(dd[j:j+4], bd[j:j+4])
	}
	return true
}
