package pipeline

import (
	"errors"
	"testing"
)

func TestParseEffect(t *testing.T) {
	tests := []struct {
		in   string
		want Effect
	}{
		{"normal", EffectNormal},
		{"cartoon", EffectCartoon},
		{" Neon ", EffectNeon},
		{"PIXELATE", EffectPixelate},
		{"avatar", EffectAvatar},
		{"glitch", EffectGlitch},
		{"rainbow", EffectRainbow},
		{"anime", EffectAnime},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEffect(tt.in)
			if err != nil {
				t.Fatalf("ParseEffect(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseEffect(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseEffectUnknown(t *testing.T) {
	if _, err := ParseEffect("sepia"); !errors.Is(err, ErrUnknownEffect) {
		t.Errorf("ParseEffect(sepia) error = %v, want ErrUnknownEffect", err)
	}
}

func TestEffectNames(t *testing.T) {
	for _, e := range Effects() {
		back, err := ParseEffect(e.String())
		if err != nil || back != e {
			t.Errorf("ParseEffect(%v.String()) = %v, %v", e, back, err)
		}
	}
	if got := EffectNeon.DisplayName(); got != "Neon" {
		t.Errorf("DisplayName() = %q, want Neon", got)
	}
	if got := Effect(42).String(); got != "Effect(42)" {
		t.Errorf("String() = %q, want Effect(42)", got)
	}
	if len(Effects()) != 8 {
		t.Errorf("len(Effects()) = %d, want 8", len(Effects()))
	}
}

func TestEffectStateSwitch(t *testing.T) {
	s := NewEffectState(0)
	if s.Active() != EffectNormal || s.AvatarMode() {
		t.Fatalf("initial state = %v avatar=%v, want normal", s.Active(), s.AvatarMode())
	}

	s.switchTo(EffectAvatar)
	if !s.AvatarMode() {
		t.Error("avatar mode off after selecting avatar")
	}
	s.Particles.Emit(spark())
	s.Trails.Emit(spark())

	s.switchTo(EffectNeon)
	if s.AvatarMode() {
		t.Error("avatar mode still on after leaving avatar")
	}
	if s.Particles.Len() != 0 || s.Trails.Len() != 0 {
		t.Errorf("particles = %d, trails = %d after leaving avatar, want 0", s.Particles.Len(), s.Trails.Len())
	}

	// Effects that emit nothing leave the sets alone.
	s.Particles.Emit(spark())
	s.switchTo(EffectGlitch)
	if s.Particles.Len() != 1 {
		t.Errorf("particles = %d after neon -> glitch, want 1", s.Particles.Len())
	}
}

func TestEffectStateTickWraps(t *testing.T) {
	s := NewEffectState(0)
	if got := s.tick(); got != 1 {
		t.Errorf("first tick = %d, want 1", got)
	}
	s.frameCounter = FrameCounterWrap - 2
	if got := s.tick(); got != FrameCounterWrap-1 {
		t.Errorf("tick = %d, want %d", got, uint64(FrameCounterWrap-1))
	}
	if got := s.tick(); got != 0 {
		t.Errorf("tick at wrap = %d, want 0", got)
	}
}
