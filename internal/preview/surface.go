package preview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/pipeline"
)

// Handler carries out the commands typed into the preview.
type Handler interface {
	SelectEffect(e pipeline.Effect)
	NextTheme()
	Capture()
}

// Surface draws frames into a tcell screen with a status line below.
// Present runs on the render goroutine while Run polls keys, so all
// screen access is serialized.
type Surface struct {
	mu     sync.Mutex
	screen tcell.Screen
	status string
	accent tcell.Color
}

// NewSurface wraps an initialized screen.
func NewSurface(screen tcell.Screen) *Surface {
	return &Surface{screen: screen, accent: tcell.ColorWhite}
}

// SetStatus replaces the status line text. accent colors it.
func (s *Surface) SetStatus(text string, accent boothfx.RGBA) {
	r, g, b, _ := accent.Bytes()
	s.mu.Lock()
	s.status = text
	s.accent = tcell.NewRGBColor(int32(r), int32(g), int32(b))
	s.mu.Unlock()
}

// Present implements pipeline.Surface.
func (s *Surface) Present(frame *boothfx.Pixmap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cols, rows := s.screen.Size()
	if rows < 2 || cols < 1 {
		return nil
	}
	w, h := FitSize(frame.Width(), frame.Height(), cols, rows-1)
	cells := Convert(frame, w, h)

	s.screen.Clear()
	x0 := (cols - w) / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(c.Top.R), int32(c.Top.G), int32(c.Top.B))).
				Background(tcell.NewRGBColor(int32(c.Bottom.R), int32(c.Bottom.G), int32(c.Bottom.B)))
			s.screen.SetContent(x0+x, y, HalfBlock, nil, style)
		}
	}
	s.drawStatus(cols, rows-1)
	s.screen.Show()
	return nil
}

func (s *Surface) drawStatus(cols, y int) {
	style := tcell.StyleDefault.Foreground(s.accent)
	x := 0
	for _, r := range s.status {
		if x >= cols {
			break
		}
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Run dispatches key presses to h until the quit key, ctx is done or the
// screen is finalized.
func (s *Surface) Run(ctx context.Context, h Handler) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				s.mu.Lock()
				s.screen.Sync()
				s.mu.Unlock()
			case *tcell.EventKey:
				action, e := KeyAction(ev)
				switch action {
				case ActionQuit:
					return nil
				case ActionEffect:
					h.SelectEffect(e)
				case ActionNextTheme:
					h.NextTheme()
				case ActionCapture:
					h.Capture()
				}
			}
		}
	}
}

// StatusLine formats the default status text.
func StatusLine(e pipeline.Effect, theme string, stats pipeline.Stats) string {
	return fmt.Sprintf(" %s | %s | %d frames | %v | 1-8 effect  t theme  c capture  q quit",
		e.DisplayName(), theme, stats.Frames, stats.LastFrame.Round(100*time.Microsecond))
}
