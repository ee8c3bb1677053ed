// Package parallel splits a per-row image workload across goroutines
// within a single synchronous call.
//
// The caller blocks until every band is done, so a frame filter that uses
// Rows still completes inside one render tick. Bands must only write to
// disjoint output rows and read from an input that nobody writes during
// the call.
package parallel

import (
	"runtime"
	"sync"
)

// minRowsPerBand keeps bands large enough that goroutine startup does
// not dominate small frames.
const minRowsPerBand = 16

// Splitter runs row bands on up to Workers goroutines.
//
// Thread safety: Splitter holds no mutable state and is safe for
// concurrent use.
type Splitter struct {
	workers int
}

// NewSplitter creates a splitter with the given worker count.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewSplitter(workers int) *Splitter {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Splitter{workers: workers}
}

// Workers returns the maximum number of concurrent bands.
func (s *Splitter) Workers() int {
	if s == nil {
		return 1
	}
	return s.workers
}

// Rows calls fn(y0, y1) for consecutive half-open row ranges covering
// [from, to) and returns when all calls have returned. A nil Splitter runs
// the whole range on the calling goroutine. If a band panics, the first
// panic value is re-raised on the calling goroutine after every band has
// finished.
func (s *Splitter) Rows(from, to int, fn func(y0, y1 int)) {
	n := to - from
	if n <= 0 {
		return
	}

	bands := s.Workers()
	if maxBands := (n + minRowsPerBand - 1) / minRowsPerBand; bands > maxBands {
		bands = maxBands
	}
	if bands <= 1 {
		fn(from, to)
		return
	}

	per := (n + bands - 1) / bands
	var (
		wg        sync.WaitGroup
		panicOnce sync.Once
		panicked  any
	)
	for y0 := from; y0 < to; y0 += per {
		y1 := min(y0+per, to)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() { panicked = r })
				}
			}()
			fn(y0, y1)
		}()
	}
	wg.Wait()
	if panicked != nil {
		panic(panicked)
	}
}
