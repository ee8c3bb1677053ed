package preview

import (
	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/boothfx/pipeline"
)

// Action is a booth command bound to a key.
type Action uint8

const (
	ActionNone Action = iota
	ActionEffect
	ActionNextTheme
	ActionCapture
	ActionQuit
)

// KeyAction maps a key press to an action. For ActionEffect the effect
// is also returned: keys 1..8 select effects in pipeline.Effects order.
func KeyAction(ev *tcell.EventKey) (Action, pipeline.Effect) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit, 0
	case tcell.KeyEnter:
		return ActionCapture, 0
	case tcell.KeyRune:
	default:
		return ActionNone, 0
	}

	switch r := ev.Rune(); {
	case r == 'q' || r == 'Q':
		return ActionQuit, 0
	case r == 'c' || r == 'C' || r == ' ':
		return ActionCapture, 0
	case r == 't' || r == 'T':
		return ActionNextTheme, 0
	case r >= '1' && r <= '9':
		if e := pipeline.Effect(r - '1'); e.Valid() {
			return ActionEffect, e
		}
	}
	return ActionNone, 0
}
