// Package capture turns the frame on screen into a keepsake: it encodes
// the processed frame as JPEG, plays a shutter sound, saves a local copy
// and uploads it to object storage.
package capture

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/gogpu/boothfx"
)

// DefaultQuality is the JPEG quality used for captures.
const DefaultQuality = 90

// ContentType is the MIME type of encoded captures.
const ContentType = "image/jpeg"

// EncodeJPEG encodes pm at the given quality (1..100). Out of range
// values are clamped.
func EncodeJPEG(pm *boothfx.Pixmap, quality int) ([]byte, error) {
	if pm == nil || pm.Width() == 0 || pm.Height() == 0 {
		return nil, fmt.Errorf("encode capture: %w", boothfx.ErrInvalidDimensions)
	}
	quality = min(max(quality, 1), 100)

	var buf bytes.Buffer
	buf.Grow(pm.Width() * pm.Height() / 4)
	if err := jpeg.Encode(&buf, pm.ToImage(), &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode capture: %w", err)
	}
	return buf.Bytes(), nil
}
