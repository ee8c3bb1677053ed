package filter

import (
	"math/rand/v2"

	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/parallel"
)

// Scratch holds the intermediate buffers of multi-pass stages so they are
// allocated once per session instead of once per frame.
//
// Thread safety: Scratch belongs to the render loop and is not safe for
// concurrent use.
type Scratch struct {
	posterized *boothfx.Pixmap
	smoothed   *boothfx.Pixmap
	edges      *boothfx.Pixmap

	// Splitter spreads neighborhood filter rows across goroutines.
	Splitter *parallel.Splitter
}

// NewScratch creates empty scratch buffers. They grow to the frame size
// on first use.
func NewScratch(s *parallel.Splitter) *Scratch {
	return &Scratch{
		posterized: boothfx.NewPixmap(0, 0),
		smoothed:   boothfx.NewPixmap(0, 0),
		edges:      boothfx.NewPixmap(0, 0),
		Splitter:   s,
	}
}

// Cartoon renders src as a flat-shaded illustration into dst:
// Posterize, then Bilateral smoothing, then Outline, then TextureOverlay.
func Cartoon(src, dst *boothfx.Pixmap, scratch *Scratch, rng *rand.Rand) {
	if scratch == nil {
		scratch = NewScratch(nil)
	}
	Posterize(src, scratch.posterized)
	Bilateral(scratch.posterized, scratch.smoothed, scratch.Splitter)
	Outline(scratch.smoothed, dst, scratch.edges)
	TextureOverlay(dst, rng)
}
