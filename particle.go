package boothfx

// Particle is a transient point sprite used by decorative overlays.
type Particle struct {
	X, Y   float64
	VX, VY float64

	// Size is the sprite radius in pixels.
	Size float64

	// Shrink multiplies Size on every update. Zero means no shrinking.
	Shrink float64

	Color RGBA

	// Life is the number of updates left before removal.
	Life int

	// MaxLife is the life the particle was emitted with; it scales opacity.
	MaxLife int

	// Additive selects "lighter" compositing instead of source-over.
	Additive bool
}

// Opacity returns the fade factor life/maxLife in [0, 1].
func (p *Particle) Opacity() float64 {
	if p.MaxLife <= 0 || p.Life <= 0 {
		return 0
	}
	if p.Life >= p.MaxLife {
		return 1
	}
	return float64(p.Life) / float64(p.MaxLife)
}

// ParticleSet is the ordered collection of live particles for one session.
//
// Thread safety: ParticleSet is owned by the render loop and is not safe
// for concurrent use.
type ParticleSet struct {
	items []Particle
	limit int
}

// NewParticleSet creates an empty set. A positive limit caps the number of
// live particles; further emissions are dropped until some expire.
func NewParticleSet(limit int) *ParticleSet {
	return &ParticleSet{limit: limit}
}

// Emit adds p to the set. Particles with no life left are rejected.
func (s *ParticleSet) Emit(p Particle) bool {
	if p.Life <= 0 {
		return false
	}
	if s.limit > 0 && len(s.items) >= s.limit {
		return false
	}
	if p.MaxLife < p.Life {
		p.MaxLife = p.Life
	}
	s.items = append(s.items, p)
	return true
}

// Len returns the number of live particles.
func (s *ParticleSet) Len() int {
	return len(s.items)
}

// Each calls fn for every live particle in emission order.
func (s *ParticleSet) Each(fn func(p *Particle)) {
	for i := range s.items {
		fn(&s.items[i])
	}
}

// Update advances every particle by one tick: position moves by its
// velocity, size shrinks, life decreases by one. Particles whose life
// reaches zero are removed. Update returns the number removed.
func (s *ParticleSet) Update() int {
	kept := s.items[:0]
	for _, p := range s.items {
		p.X += p.VX
		p.Y += p.VY
		if p.Shrink > 0 {
			p.Size *= p.Shrink
		}
		p.Life--
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	removed := len(s.items) - len(kept)
	clear(s.items[len(kept):])
	s.items = kept
	return removed
}

// Clear removes all particles.
func (s *ParticleSet) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// Snapshot returns a copy of the live particles.
func (s *ParticleSet) Snapshot() []Particle {
	out := make([]Particle, len(s.items))
	copy(out, s.items)
	return out
}
