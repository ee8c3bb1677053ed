package capture

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	shutterSampleRate = beep.SampleRate(44100)
	chimeGain         = 0.15
)

// Shutter plays the capture sound.
type Shutter interface {
	Play()
}

// BeepShutter plays a synthesized shutter click on the default audio
// device. A booth without audio keeps working: when the speaker cannot
// be opened, Play does nothing.
type BeepShutter struct {
	mu          sync.Mutex
	initialized bool
}

// NewBeepShutter opens the speaker. The returned shutter is usable even
// when err is non-nil; it is then silent.
func NewBeepShutter() (*BeepShutter, error) {
	s := &BeepShutter{}
	if err := speaker.Init(shutterSampleRate, shutterSampleRate.N(100*time.Millisecond)); err != nil {
		return s, fmt.Errorf("open speaker: %w", err)
	}
	s.initialized = true
	return s, nil
}

// Play implements Shutter. It returns without waiting for the sound.
func (s *BeepShutter) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	st, err := ShutterSound(shutterSampleRate)
	if err != nil {
		return
	}
	speaker.Play(st)
}

// Close stops playback and releases the speaker.
func (s *BeepShutter) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// ShutterSound returns the shutter click: a decaying noise burst for the
// mechanism followed by a short high beep.
func ShutterSound(sr beep.SampleRate) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, 1760)
	if err != nil {
		return nil, fmt.Errorf("shutter tone: %w", err)
	}
	click := beep.Take(sr.N(60*time.Millisecond), &clickGenerator{
		sr:  sr,
		rng: rand.New(rand.NewPCG(0x5eed, 0xc11c)),
	})
	beepLen := sr.N(40 * time.Millisecond)
	chime := beep.Take(beepLen, &effects.Volume{Streamer: tone, Base: 2, Volume: math.Log2(chimeGain)})
	return beep.Seq(click, chime), nil
}

// clickGenerator produces white noise under a fast exponential decay.
type clickGenerator struct {
	sr  beep.SampleRate
	rng *rand.Rand
	pos int
}

func (g *clickGenerator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		v := (g.rng.Float64()*2 - 1) * 0.5 * math.Exp(-t*80)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *clickGenerator) Err() error { return nil }
