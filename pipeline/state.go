package pipeline

import (
	"github.com/gogpu/boothfx"
)

// FrameCounterWrap is the bound at which the frame counter restarts at 0.
// Stages derive float phases from the counter, and 1<<53 is the largest
// range float64 represents exactly.
const FrameCounterWrap = 1 << 53

// DefaultParticleLimit caps live particles per set.
const DefaultParticleLimit = 4096

// EffectState is the render loop's view of the active effect.
//
// Thread safety: EffectState is owned by the render goroutine and is not
// safe for concurrent use.
type EffectState struct {
	active       Effect
	frameCounter uint64
	avatarMode   bool

	// Particles holds the pose animation sparks.
	Particles *boothfx.ParticleSet

	// Trails holds the avatar wrist trails.
	Trails *boothfx.ParticleSet
}

// NewEffectState returns the initial state: normal effect, frame 0, no
// particles.
func NewEffectState(particleLimit int) *EffectState {
	return &EffectState{
		active:    EffectNormal,
		Particles: boothfx.NewParticleSet(particleLimit),
		Trails:    boothfx.NewParticleSet(particleLimit),
	}
}

// Active returns the effect applied to the last frame.
func (s *EffectState) Active() Effect { return s.active }

// Frame returns the frame counter.
func (s *EffectState) Frame() uint64 { return s.frameCounter }

// AvatarMode reports whether pose animations run on every frame.
func (s *EffectState) AvatarMode() bool { return s.avatarMode }

// switchTo makes e the active effect. Leaving a particle-emitting effect
// drops its particles so they do not reappear when it is selected again.
func (s *EffectState) switchTo(e Effect) {
	if e == s.active {
		return
	}
	if s.active.emitsParticles() {
		s.Particles.Clear()
		s.Trails.Clear()
	}
	boothfx.Logger().Info("pipeline: effect switched", "from", s.active, "to", e)
	s.active = e
	s.avatarMode = e == EffectAvatar
}

// tick advances the frame counter and returns the new value.
func (s *EffectState) tick() uint64 {
	s.frameCounter++
	if s.frameCounter >= FrameCounterWrap {
		s.frameCounter = 0
	}
	return s.frameCounter
}
