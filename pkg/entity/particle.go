package entity

import (
	"image/color"
	"math/rand"
)

// MinParticleRadius is the radius below which a particle stops moving and
// should be dropped by its owner.
const MinParticleRadius = 0.2

// ParticleOptions bound the random size and speed of a new particle.
// Zero fields take the defaults.
type ParticleOptions struct {
	MaxSize     float64
	MaxVelocity float64
	RadiusDecay float64
}

var DefaultParticleOptions = ParticleOptions{
	MaxSize:     50,
	MaxVelocity: 15,
	RadiusDecay: 3,
}

func (o ParticleOptions) withDefaults() ParticleOptions {
	if o.MaxSize == 0 {
		o.MaxSize = DefaultParticleOptions.MaxSize
	}
	if o.MaxVelocity == 0 {
		o.MaxVelocity = DefaultParticleOptions.MaxVelocity
	}
	if o.RadiusDecay == 0 {
		o.RadiusDecay = DefaultParticleOptions.RadiusDecay
	}
	return o
}

// Particle is a shrinking dot drifting at constant velocity. It owns no
// engine resources.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Decay  float64
	Color  color.RGBA
}

func randomSign(rng *rand.Rand) float64 {
	if rng.Float64() < 0.5 {
		return -1
	}
	return 1
}

// NewParticle places a particle at (x, y) with a random radius in
// [0, MaxSize) and velocity components in [-MaxVelocity, MaxVelocity].
func NewParticle(rng *rand.Rand, x, y float64, c color.RGBA, opt ParticleOptions) *Particle {
	opt = opt.withDefaults()
	return &Particle{
		X:      x,
		Y:      y,
		Radius: rng.Float64() * opt.MaxSize,
		VX:     rng.Float64() * opt.MaxVelocity * randomSign(rng),
		VY:     rng.Float64() * opt.MaxVelocity * randomSign(rng),
		Decay:  opt.RadiusDecay,
		Color:  c,
	}
}

// Update shrinks and moves the particle while it is still visible.
func (p *Particle) Update() {
	if p.Radius >= MinParticleRadius {
		p.Radius -= p.Decay
		p.X += p.VX
		p.Y += p.VY
	}
}

// Dead reports whether the particle is too small to keep.
func (p *Particle) Dead() bool {
	return p.Radius < MinParticleRadius
}

// UpdateParticles advances every particle and drops the dead ones, reusing
// the backing array.
func UpdateParticles(ps []*Particle) []*Particle {
	alive := ps[:0]
	for _, p := range ps {
		p.Update()
		if !p.Dead() {
			alive = append(alive, p)
		}
	}
	for i := len(alive); i < len(ps); i++ {
		ps[i] = nil
	}
	return alive
}
