// Package pipeline drives the booth's per-frame processing: it reads the
// requested effect, snapshots the camera frame, replaces the background
// when a segmentation mask is available, dispatches to the active effect
// and hands the result to a display surface at a fixed rate.
package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownEffect is returned when an effect name or value is not one of
// the known effects.
var ErrUnknownEffect = errors.New("pipeline: unknown effect")

// Effect selects the live processing applied to every frame.
type Effect int32

const (
	// EffectNormal passes frames through unchanged.
	EffectNormal Effect = iota
	// EffectCartoon posterizes, smooths, outlines and adds paper texture.
	EffectCartoon
	// EffectNeon brightens highlights and adds a hue-cycling glow.
	EffectNeon
	// EffectPixelate renders 10×10 blocks.
	EffectPixelate
	// EffectAvatar draws the cartoon frame with pose decorations.
	EffectAvatar
	// EffectGlitch displaces rows and splits color channels.
	EffectGlitch
	// EffectRainbow tints rows with a scrolling hue and adds sparkles.
	EffectRainbow
	// EffectAnime marks the frame; the style transfer runs on capture.
	EffectAnime

	effectCount
)

var effectNames = [effectCount]string{
	EffectNormal:   "normal",
	EffectCartoon:  "cartoon",
	EffectNeon:     "neon",
	EffectPixelate: "pixelate",
	EffectAvatar:   "avatar",
	EffectGlitch:   "glitch",
	EffectRainbow:  "rainbow",
	EffectAnime:    "anime",
}

// Effects returns every effect in selection order.
func Effects() []Effect {
	out := make([]Effect, effectCount)
	for i := range out {
		out[i] = Effect(i)
	}
	return out
}

// Valid reports whether e is a known effect.
func (e Effect) Valid() bool {
	return e >= 0 && e < effectCount
}

// String returns the effect's lowercase name.
func (e Effect) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Effect(%d)", int32(e))
	}
	return effectNames[e]
}

// DisplayName returns the title-cased name shown to guests.
func (e Effect) DisplayName() string {
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Title(language.English).String(e.String())
}

// emitsParticles reports whether the effect keeps particles alive across
// frames.
func (e Effect) emitsParticles() bool {
	return e == EffectAvatar
}

// ParseEffect returns the effect named s. Matching ignores case and
// surrounding space.
func ParseEffect(s string) (Effect, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range effectNames {
		if n == name {
			return Effect(i), nil
		}
	}
	return EffectNormal, fmt.Errorf("parse effect %q: %w", s, ErrUnknownEffect)
}
