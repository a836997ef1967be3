package simulation

import (
	"math"

	"github.com/MarkyMan4/ragdolls/pkg/physics"
)

type GestureState uint8

const (
	GestureIdle GestureState = iota
	GestureArmed
	GestureCommitted
	GestureCancelled
)

func (s GestureState) String() string {
	switch s {
	case GestureArmed:
		return "armed"
	case GestureCommitted:
		return "committed"
	case GestureCancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// Gesture is a two step pick: the first event arms it with a body, a
// later event commits or cancels. It holds a reference to the body, never
// ownership.
type Gesture struct {
	State GestureState
	body  *physics.Body
}

func (g *Gesture) Arm(b *physics.Body) {
	g.State = GestureArmed
	g.body = b
}

// Pending returns the armed body, or nil when nothing is armed or the body
// has since left the world.
func (g *Gesture) Pending() *physics.Body {
	if g.State != GestureArmed || !g.body.Alive() {
		return nil
	}
	return g.body
}

func (g *Gesture) Commit() {
	g.State = GestureCommitted
	g.body = nil
}

// Cancel drops an armed gesture; it does nothing otherwise.
func (g *Gesture) Cancel() bool {
	if g.State != GestureArmed {
		return false
	}
	g.State = GestureCancelled
	g.body = nil
	return true
}

type LaunchState uint8

const (
	LaunchIdle LaunchState = iota
	// ball spawned and held on the pointer, launcher stretched
	LaunchAiming
	// pointer let go, waiting for the ball to pass its anchor
	LaunchReleased
)

func (s LaunchState) String() string {
	switch s {
	case LaunchAiming:
		return "aiming"
	case LaunchReleased:
		return "released"
	default:
		return "idle"
	}
}

// Launch is the slingshot: a ball tied to its spawn point by an elastic
// launcher and held by the pointer until release.
type Launch struct {
	State    LaunchState
	Ball     *physics.Body
	Launcher *physics.Joint
	Hold     *physics.Joint
	Anchor   physics.Vec2
}

// Returned reports whether the ball is within threshold of its anchor on
// both axes.
func (l *Launch) Returned(threshold float64) bool {
	if !l.Ball.Alive() {
		return true
	}
	d := l.Ball.Position().Sub(l.Anchor)
	return math.Abs(d.X) < threshold && math.Abs(d.Y) < threshold
}
