package filter

import (
	"math/rand/v2"

	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/blend"
)

const (
	// noiseAmplitude spans the raw noise range [-5, 5).
	noiseAmplitude = 10

	// noiseAlpha is the opacity of the noise layer.
	noiseAlpha = 20.0 / 255
)

// NoiseValue draws one noise sample. The raw value is uniform in [-5, 5);
// stored as a clamped byte it lands in [0, 5].
func NoiseValue(rng *rand.Rand) uint8 {
	return clampByte(rng.Float64()*noiseAmplitude - noiseAmplitude/2)
}

// TextureOverlay overlays a faint gray noise layer (alpha 20/255) onto
// every non-transparent sample of dst.
func TextureOverlay(dst *boothfx.Pixmap, rng *rand.Rand) {
	d := dst.Data()
	for i := 0; i < len(d); i += 4 {
		if d[i+3] == 0 {
			continue
		}
		n := float64(NoiseValue(rng)) / 255
		blend.Sample(d, i, n, n, n, noiseAlpha, blend.ModeOverlay)
	}
}
