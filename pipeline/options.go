package pipeline

import (
	"math/rand/v2"
	"time"
)

// Option configures a Selector during creation.
//
// Example:
//
//	masks := &segment.MaskStore{}
//	sel := pipeline.NewSelector(
//	    pipeline.WithMasks(masks),
//	    pipeline.WithBackgrounds(themes),
//	)
type Option func(*options)

type options struct {
	masks         MaskProvider
	poses         PoseProvider
	backgrounds   BackgroundProvider
	rng           *rand.Rand
	workers       int
	particleLimit int
}

func defaultOptions() options {
	return options{
		workers:       0, // GOMAXPROCS
		particleLimit: DefaultParticleLimit,
	}
}

// WithMasks sets the segmentation mask source. Without one, frames keep
// their camera background.
func WithMasks(m MaskProvider) Option {
	return func(o *options) {
		o.masks = m
	}
}

// WithPoses sets the pose source used by the avatar effect.
func WithPoses(p PoseProvider) Option {
	return func(o *options) {
		o.poses = p
	}
}

// WithBackgrounds sets the replacement background source.
func WithBackgrounds(b BackgroundProvider) Option {
	return func(o *options) {
		o.backgrounds = b
	}
}

// WithRand sets the random source of the randomized stages. Tests pass a
// seeded generator for reproducible frames.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithWorkers sets how many goroutines split the rows of neighborhood
// filters. Zero or less uses GOMAXPROCS; 1 keeps everything on the render
// goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithParticleLimit caps live particles per set. Zero or less removes the
// cap.
func WithParticleLimit(n int) Option {
	return func(o *options) {
		o.particleLimit = n
	}
}

func (o *options) random() *rand.Rand {
	if o.rng != nil {
		return o.rng
	}
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}
