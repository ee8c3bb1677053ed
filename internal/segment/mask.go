// Package segment replaces the background behind a person using a
// segmentation mask produced by an external model.
package segment

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/boothfx"
)

// ForegroundThreshold is the smallest mask value classified as person.
// Probabilistic masks store probability×255; binary masks store 0 or 255.
const ForegroundThreshold = 128

// Mask is a per-sample person classification the size of a frame.
// Masks are immutable once published.
type Mask struct {
	Width  int
	Height int
	Data   []uint8
}

// NewMask creates an all-background mask.
func NewMask(width, height int) (*Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("mask %dx%d: %w", width, height, boothfx.ErrInvalidDimensions)
	}
	return &Mask{Width: width, Height: height, Data: make([]uint8, width*height)}, nil
}

// Foreground reports whether (x, y) belongs to the person.
func (m *Mask) Foreground(x, y int) bool {
	return m.Data[y*m.Width+x] >= ForegroundThreshold
}

// Set marks (x, y) as foreground or background.
func (m *Mask) Set(x, y int, foreground bool) {
	v := uint8(0)
	if foreground {
		v = 255
	}
	m.Data[y*m.Width+x] = v
}

// Fits reports whether the mask covers exactly a w×h frame.
func (m *Mask) Fits(w, h int) bool {
	return m != nil && m.Width == w && m.Height == h && len(m.Data) == w*h
}

// MaskStore holds the most recent mask. A segmentation worker publishes
// at its own cadence and the render loop reads whatever is current
// without blocking.
type MaskStore struct {
	latest atomic.Pointer[Mask]
}

// Publish replaces the current mask. Passing nil clears it.
func (s *MaskStore) Publish(m *Mask) {
	s.latest.Store(m)
}

// LatestMask returns the current mask, if any.
func (s *MaskStore) LatestMask() (*Mask, bool) {
	m := s.latest.Load()
	return m, m != nil
}
