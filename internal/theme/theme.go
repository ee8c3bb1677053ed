// Package theme loads the replacement backgrounds shown behind the guest.
//
// Backgrounds decode on a background goroutine; until a decode succeeds
// the theme reports not ready and the compositor leaves frames alone.
// Scaled copies are cached per theme and frame size.
package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/boothfx"
)

// ErrThemeUnknown is returned for a theme name that has no background.
var ErrThemeUnknown = errors.New("theme: unknown theme")

// Theme is a named background with its accent color.
type Theme struct {
	Name string
	// File is the background image path relative to the assets directory.
	File string
	// Accent tints the preview border and status text.
	Accent boothfx.RGBA
}

var themes = []Theme{
	{Name: "default", File: "event-bg.jpg", Accent: boothfx.Hex("#ffffff")},
	{Name: "tech", File: "tech-bg.jpg", Accent: boothfx.Hex("#00c3ff")},
	{Name: "futuristic", File: "futuristic-bg.jpg", Accent: boothfx.Hex("#bb00ff")},
	{Name: "celebration", File: "celebration-bg.jpg", Accent: boothfx.Hex("#ff6600")},
}

// Names returns the theme names in display order.
func Names() []string {
	out := make([]string, len(themes))
	for i, t := range themes {
		out[i] = t.Name
	}
	return out
}

// Lookup returns the theme called name, ignoring case.
func Lookup(name string) (Theme, error) {
	for _, t := range themes {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("lookup %q: %w", name, ErrThemeUnknown)
}
