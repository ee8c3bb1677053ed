package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/gogpu/boothfx"
)

// Stats summarizes scheduler activity.
type Stats struct {
	// Frames is the number of frames presented.
	Frames uint64
	// Dropped counts ticks that produced no frame.
	Dropped uint64
	// LastFrame is the processing time of the most recent frame,
	// including Present.
	LastFrame time.Duration
}

// Scheduler renders one frame per tick on a single goroutine.
type Scheduler struct {
	selector *Selector
	source   FrameSource
	surface  Surface
	interval time.Duration

	frames  atomic.Uint64
	dropped atomic.Uint64
	last    atomic.Int64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewScheduler creates a scheduler rendering fps frames per second from
// source through sel onto surface. fps below 1 is treated as 1.
func NewScheduler(sel *Selector, source FrameSource, surface Surface, fps int) *Scheduler {
	fps = max(fps, 1)
	return &Scheduler{
		selector: sel,
		source:   source,
		surface:  surface,
		interval: time.Second / time.Duration(fps),
		stopChan: make(chan struct{}),
	}
}

// Start begins ticking. The loop ends when ctx is done or Stop is called.
// A scheduler cannot be restarted after it stops.
func (s *Scheduler) Start(ctx context.Context) {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		go s.loop(ctx)
		boothfx.Logger().Info("pipeline: scheduler started", "interval", s.interval)
	}
}

// Stop ends the loop and waits for the frame in flight, if any. No frame
// is presented after Stop returns.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
		if s.running.Load() {
			st := s.Stats()
			boothfx.Logger().Info("pipeline: scheduler stopped",
				"frames", humanize.Comma(int64(st.Frames)),
				"dropped", humanize.Comma(int64(st.Dropped)))
		}
	})
}

// Stats returns a snapshot of the counters. Safe for concurrent use.
func (s *Scheduler) Stats() Stats {
	return Stats{
		Frames:    s.frames.Load(),
		Dropped:   s.dropped.Load(),
		LastFrame: time.Duration(s.last.Load()),
	}
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		// A tick racing with Stop must not present.
		select {
		case <-s.stopChan:
			return
		default:
		}
		s.renderOnce()
	}
}

func (s *Scheduler) renderOnce() {
	start := time.Now()

	frame, err := s.selector.RenderFrame(s.source)
	if err != nil {
		s.dropped.Add(1)
		if errors.Is(err, boothfx.ErrSourceNotReady) {
			boothfx.Logger().Debug("pipeline: source not ready", "err", err)
		} else {
			boothfx.Logger().Warn("pipeline: frame failed", "err", err)
		}
		return
	}

	if err := s.surface.Present(frame); err != nil {
		s.dropped.Add(1)
		boothfx.Logger().Warn("pipeline: present failed", "err", err)
		return
	}
	s.frames.Add(1)
	s.last.Store(int64(time.Since(start)))
}
