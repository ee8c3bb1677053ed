package pipeline

import (
	"math/rand/v2"
	"sync"

	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/avatar"
)

// pixmapSource serves a copy of pm on every frame.
type pixmapSource struct {
	pm  *boothfx.Pixmap
	err error
}

func (s *pixmapSource) Size() (int, int) { return s.pm.Width(), s.pm.Height() }

func (s *pixmapSource) Draw(dst *boothfx.Pixmap) error {
	if s.err != nil {
		return s.err
	}
	return dst.CopyFrom(s.pm)
}

type fixedBackground struct {
	bg *boothfx.Pixmap
}

func (f fixedBackground) Background(w, h int) (*boothfx.Pixmap, bool) {
	if f.bg == nil || f.bg.Width() != w || f.bg.Height() != h {
		return nil, false
	}
	return f.bg, true
}

type panickingPoses struct{}

func (panickingPoses) LatestPose() (*avatar.Pose, bool) {
	panic("pose estimator crashed")
}

// countingSurface records presented frames and signals each one.
type countingSurface struct {
	mu     sync.Mutex
	n      int
	last   *boothfx.Pixmap
	frames chan struct{}
}

func newCountingSurface() *countingSurface {
	return &countingSurface{frames: make(chan struct{}, 1024)}
}

func (c *countingSurface) Present(pm *boothfx.Pixmap) error {
	c.mu.Lock()
	c.n++
	c.last = pm.Clone()
	c.mu.Unlock()
	select {
	case c.frames <- struct{}{}:
	default:
	}
	return nil
}

func (c *countingSurface) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func solid(w, h int, r, g, b, a uint8) *boothfx.Pixmap {
	pm := boothfx.NewPixmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pm.SetRGBA8(x, y, r, g, b, a)
		}
	}
	return pm
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func equalPixmaps(a, b *boothfx.Pixmap) bool {
	if !a.SameSize(b) {
		return false
	}
	ad, bd := a.Data(), b.Data()
	for i := range ad {
		if ad[i] != bd[i] {
			return false
		}
	}
	return true
}

func wristPose() *avatar.Pose {
	return &avatar.Pose{Score: 0.9, Keypoints: []avatar.Keypoint{
		{Part: avatar.LeftWrist, Position: boothfx.Pt(10, 20), Score: 0.9},
		{Part: avatar.RightWrist, Position: boothfx.Pt(30, 20), Score: 0.9},
	}}
}

func spark() boothfx.Particle {
	return boothfx.Particle{X: 1, Y: 1, Size: 1, Life: 5, Color: boothfx.White}
}
