package simulation

import (
	"math"

	"github.com/MarkyMan4/ragdolls/pkg/entity"
	"github.com/MarkyMan4/ragdolls/pkg/physics"
)

// --- Explosion ---
// Explode bursts particles at p and casts evenly spaced rays out to the
// blast radius. Every ragdoll torso and live ball a ray crosses is pushed
// along that ray at the point it was hit. A body holding p never shows up in
// a ray cast, so it is pushed from p through its center instead. Returns
// how many distinct bodies were pushed.
func (s *Session) Explode(p physics.Vec2) int {
	ec := s.cfg.Explosion
	popt := ec.ParticleOptions()
	for i := 0; i < ec.Particles; i++ {
		c := s.explosionColors[s.rng.Intn(len(s.explosionColors))]
		s.Particles = append(s.Particles, entity.NewParticle(s.rng, p.X, p.Y, c, popt))
	}

	tracked := make(map[*physics.Body]bool, len(s.Ragdolls)+len(s.Balls))
	for _, r := range s.Ragdolls {
		tracked[r.Torso.Body] = true
	}
	for _, b := range s.Balls {
		if b.Alive() {
			tracked[b] = true
		}
	}
	if len(tracked) == 0 {
		return 0
	}
	accept := func(b *physics.Body) bool { return tracked[b] }

	pushed := make(map[*physics.Body]bool)
	for b := range tracked {
		if !b.Contains(p) {
			continue
		}
		dir := b.Position().Sub(p).Normalize()
		if dir == (physics.Vec2{}) {
			dir = physics.Polar(0, 1)
		}
		b.ApplyImpulse(dir.Mul(ec.Impulse))
		pushed[b] = true
	}

	step := 2 * math.Pi / float64(ec.Rays)
	for i := 0; i < ec.Rays; i++ {
		dir := physics.Polar(float64(i)*step, 1)
		end := p.Add(dir.Mul(ec.Radius))
		for _, hit := range s.World.RayCastAll(p, end, accept) {
			hit.Body.ApplyImpulseAt(dir.Mul(ec.Impulse), hit.Point)
			pushed[hit.Body] = true
		}
	}

	s.log.Debug().Float64("x", p.X).Float64("y", p.Y).Int("pushed", len(pushed)).Msg("explosion")
	return len(pushed)
}
