package pipeline

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/avatar"
	"github.com/gogpu/boothfx/internal/filter"
	"github.com/gogpu/boothfx/internal/parallel"
	"github.com/gogpu/boothfx/internal/segment"
)

// Selector applies the requested effect to frames.
//
// Select may be called from any goroutine; the request is read once per
// frame. RenderFrame must only be called from the render goroutine.
type Selector struct {
	requested atomic.Int32

	state    *EffectState
	snapshot *boothfx.Pixmap
	out      *boothfx.Pixmap
	scratch  *filter.Scratch
	splitter *parallel.Splitter
	rng      *rand.Rand

	masks       MaskProvider
	poses       PoseProvider
	backgrounds BackgroundProvider
}

// NewSelector creates a selector with the normal effect active.
func NewSelector(opts ...Option) *Selector {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := parallel.NewSplitter(o.workers)
	return &Selector{
		state:       NewEffectState(o.particleLimit),
		snapshot:    boothfx.NewPixmap(0, 0),
		out:         boothfx.NewPixmap(0, 0),
		scratch:     filter.NewScratch(s),
		splitter:    s,
		rng:         o.random(),
		masks:       o.masks,
		poses:       o.poses,
		backgrounds: o.backgrounds,
	}
}

// Select requests e for the next frame.
func (s *Selector) Select(e Effect) error {
	if !e.Valid() {
		return fmt.Errorf("select %v: %w", e, ErrUnknownEffect)
	}
	s.requested.Store(int32(e))
	return nil
}

// Requested returns the effect the next frame will use.
func (s *Selector) Requested() Effect {
	return Effect(s.requested.Load())
}

// State returns the render loop state. It must only be read from the
// render goroutine.
func (s *Selector) State() *EffectState {
	return s.state
}

// RenderFrame processes the current frame of src and returns the result.
// The returned pixmap belongs to the selector and is overwritten by the
// next call.
//
// A failure inside an effect stage is logged and the frame is returned
// as captured, with the background already replaced.
func (s *Selector) RenderFrame(src FrameSource) (*boothfx.Pixmap, error) {
	e := Effect(s.requested.Load())
	s.state.switchTo(e)
	frame := s.state.tick()

	w, h := src.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("frame source %dx%d: %w", w, h, boothfx.ErrSourceNotReady)
	}
	if s.snapshot.Resize(w, h) {
		boothfx.Logger().Debug("pipeline: frame resized", "width", w, "height", h)
	}
	s.out.Resize(w, h)
	if err := src.Draw(s.snapshot); err != nil {
		return nil, fmt.Errorf("draw frame %d: %w", frame, err)
	}

	return s.process(e, frame), nil
}

// process runs the frame through the compositor and the active effect,
// recovering from a stage failure.
func (s *Selector) process(e Effect, frame uint64) (out *boothfx.Pixmap) {
	defer func() {
		if r := recover(); r != nil {
			boothfx.Logger().Warn("pipeline: effect stage failed", "effect", e, "frame", frame, "panic", r)
			copy(s.out.Data(), s.snapshot.Data())
			out = s.out
		}
	}()

	s.replaceBackground()
	s.apply(e, frame)

	if pose, ok := s.pose(); ok && (e == EffectAvatar || s.state.avatarMode) {
		avatar.Animate(s.out, pose, frame, s.state.Particles, s.rng)
	}
	return s.out
}

// replaceBackground composites the snapshot over the theme background in
// place when both a mask and a background are configured.
func (s *Selector) replaceBackground() {
	if s.masks == nil || s.backgrounds == nil {
		return
	}
	mask, _ := s.masks.LatestMask()
	bg, _ := s.backgrounds.Background(s.snapshot.Width(), s.snapshot.Height())
	segment.Compose(s.snapshot, bg, mask, s.snapshot)
}

func (s *Selector) pose() (*avatar.Pose, bool) {
	if s.poses == nil {
		return nil, false
	}
	return s.poses.LatestPose()
}

// apply dispatches the snapshot to e, writing s.out.
func (s *Selector) apply(e Effect, frame uint64) {
	src, dst := s.snapshot, s.out
	switch e {
	case EffectCartoon:
		filter.Cartoon(src, dst, s.scratch, s.rng)
	case EffectNeon:
		filter.Neon(src, dst, frame, s.splitter)
	case EffectPixelate:
		filter.Pixelate(src, dst)
	case EffectAvatar:
		filter.Cartoon(src, dst, s.scratch, s.rng)
		if pose, ok := s.pose(); ok {
			avatar.DrawAvatar(dst, pose, frame, s.state.Trails, s.rng)
		}
	case EffectGlitch:
		copy(dst.Data(), src.Data())
		filter.Glitch(dst, frame, s.rng)
	case EffectRainbow:
		filter.Rainbow(src, dst, frame)
		filter.Sparkles(dst, frame, s.rng)
	case EffectAnime:
		copy(dst.Data(), src.Data())
		filter.AnimeIndicator(dst)
	default:
		copy(dst.Data(), src.Data())
	}
}
