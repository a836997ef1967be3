package physics

import (
	"math"

	"github.com/ByteArena/box2d"
)

// --- 2D vector in canvas (pixel) space ---
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{0, 0}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate returns v rotated by angle radians around the origin.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Polar builds a vector of length r pointing at angle radians.
func Polar(angle, r float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{c * r, s * r}
}

// ShapeKind tells how a body was built, so it can be drawn without
// asking the engine for its fixture geometry.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
)

// BodyOptions are the material settings of a new body.
type BodyOptions struct {
	Static        bool
	Density       float64
	Friction      float64
	Restitution   float64
	LinearDamping float64
	// Group is the box2d collision group. Bodies sharing a negative group
	// never collide with each other.
	Group  int16
	Bullet bool
	Tag    string
}

// --- Rigid body handle ---
// Body wraps an engine body; geometry fields are in pixels and never
// change after creation.
type Body struct {
	b2    *box2d.B2Body
	world *World

	Kind   ShapeKind
	Radius float64
	Width  float64
	Height float64
	Tag    string
}

func (b *Body) Position() Vec2 {
	return b.world.toPixels(b.b2.GetPosition())
}

func (b *Body) Angle() float64 {
	return b.b2.GetAngle()
}

func (b *Body) Velocity() Vec2 {
	return b.world.toPixels(b.b2.GetLinearVelocity())
}

func (b *Body) Mass() float64 {
	return b.b2.GetMass()
}

func (b *Body) IsStatic() bool {
	return b.b2.GetType() == box2d.B2BodyType.B2_staticBody
}

// WorldPoint converts a point local to the body into canvas space.
func (b *Body) WorldPoint(local Vec2) Vec2 {
	return b.world.toPixels(b.b2.GetWorldPoint(b.world.toMeters(local)))
}

// ApplyImpulse applies a linear impulse (kg*px/s) at the center of mass.
func (b *Body) ApplyImpulse(impulse Vec2) {
	b.b2.ApplyLinearImpulseToCenter(b.world.toMeters(impulse), true)
}

// ApplyImpulseAt applies a linear impulse (kg*px/s) at a canvas point.
func (b *Body) ApplyImpulseAt(impulse, point Vec2) {
	b.b2.ApplyLinearImpulse(b.world.toMeters(impulse), b.world.toMeters(point), true)
}

// ApplyForce applies a force (kg*px/s^2) at the center of mass until the
// end of the next step.
func (b *Body) ApplyForce(force Vec2) {
	b.b2.ApplyForceToCenter(b.world.toMeters(force), true)
}

// Contains reports whether the canvas point lies inside the body shape.
func (b *Body) Contains(p Vec2) bool {
	mp := b.world.toMeters(p)
	for f := b.b2.GetFixtureList(); f != nil; f = f.GetNext() {
		if f.TestPoint(mp) {
			return true
		}
	}
	return false
}

// Overlaps runs an exact pairwise shape test between two bodies. Shapes
// resting on each other count as overlapping.
func (b *Body) Overlaps(o *Body) bool {
	xfA := b.b2.GetTransform()
	xfB := o.b2.GetTransform()
	for fa := b.b2.GetFixtureList(); fa != nil; fa = fa.GetNext() {
		for fb := o.b2.GetFixtureList(); fb != nil; fb = fb.GetNext() {
			if box2d.B2TestOverlapShapes(fa.GetShape(), 0, fb.GetShape(), 0, xfA, xfB) {
				return true
			}
		}
	}
	return false
}
