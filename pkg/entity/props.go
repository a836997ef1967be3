package entity

import (
	"github.com/MarkyMan4/ragdolls/pkg/physics"
)

// Tags set on prop bodies.
const (
	BallTag = "ball"
	WallTag = "wall"
)

// NewBall spawns a fully elastic projectile.
func NewBall(w *physics.World, pos physics.Vec2, radius float64) *physics.Body {
	return w.CreateCircle(pos, radius, physics.BodyOptions{
		Density:     1,
		Friction:    0.1,
		Restitution: 1,
		Bullet:      true,
		Tag:         BallTag,
	})
}

// NewBlock spawns a grippy square with no air drag.
func NewBlock(w *physics.World, pos physics.Vec2, size, friction float64) *SegmentBody {
	return NewSegmentBody(w, "block", pos, size, size, physics.BodyOptions{
		Density:       1,
		Friction:      friction,
		LinearDamping: 0,
	})
}

// Bounds are the four static walls around the canvas.
type Bounds struct {
	Ground  *SegmentBody
	Ceiling *SegmentBody
	Left    *SegmentBody
	Right   *SegmentBody
}

const (
	wallThickness = 2020.0
	wallOffset    = 1000.0
)

// NewBounds boxes a width x height canvas in. Each wall is mostly off
// screen; only a 10 pixel rim shows.
func NewBounds(w *physics.World, width, height float64) *Bounds {
	opt := physics.BodyOptions{Static: true, Friction: 0.8, Tag: WallTag}
	return &Bounds{
		Ground:  NewSegmentBody(w, "ground", physics.Vec2{X: width / 2, Y: height + wallOffset}, width+wallOffset, wallThickness, opt),
		Ceiling: NewSegmentBody(w, "ceiling", physics.Vec2{X: width / 2, Y: -wallOffset}, width+wallOffset, wallThickness, opt),
		Left:    NewSegmentBody(w, "leftWall", physics.Vec2{X: -wallOffset, Y: height / 2}, wallThickness, height+wallOffset, opt),
		Right:   NewSegmentBody(w, "rightWall", physics.Vec2{X: width + wallOffset, Y: height / 2}, wallThickness, height+wallOffset, opt),
	}
}

func (b *Bounds) All() []*SegmentBody {
	return []*SegmentBody{b.Ground, b.Ceiling, b.Left, b.Right}
}
