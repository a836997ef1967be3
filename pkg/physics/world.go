package physics

import (
	"github.com/ByteArena/box2d"
)

// World owns the engine world. All coordinates crossing this boundary are
// canvas pixels; the engine itself runs in meters.
type World struct {
	b2  *box2d.B2World
	ppm float64

	// static body at the origin, the far end of every joint that is
	// anchored to a fixed world point
	anchor *box2d.B2Body

	joints  map[box2d.B2JointInterface]*Joint
	gravity Vec2

	Dt                 float64
	VelocityIterations int
	PositionIterations int
	steps              uint64
}

// NewWorld creates an empty world. pixelsPerMeter must be positive.
func NewWorld(gravity Vec2, pixelsPerMeter float64) *World {
	w := &World{
		ppm:                pixelsPerMeter,
		joints:             make(map[box2d.B2JointInterface]*Joint),
		Dt:                 1.0 / 60.0,
		VelocityIterations: 8,
		PositionIterations: 3,
	}
	b2 := box2d.MakeB2World(box2d.MakeB2Vec2(0, 0))
	w.b2 = &b2
	w.SetGravity(gravity)

	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_staticBody
	w.anchor = w.b2.CreateBody(&bd)
	return w
}

func (w *World) toMeters(v Vec2) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(v.X/w.ppm, v.Y/w.ppm)
}

func (w *World) toPixels(v box2d.B2Vec2) Vec2 {
	return Vec2{v.X * w.ppm, v.Y * w.ppm}
}

// SetGravity sets gravity in px/s^2. Gravity returns exactly the value
// last set.
func (w *World) SetGravity(g Vec2) {
	w.gravity = g
	w.b2.SetGravity(w.toMeters(g))
}

func (w *World) Gravity() Vec2 {
	return w.gravity
}

func (w *World) PixelsPerMeter() float64 {
	return w.ppm
}

// BodyCount is the number of bodies created through CreateCircle and
// CreateBox that are still alive.
func (w *World) BodyCount() int {
	return w.b2.GetBodyCount() - 1
}

func (w *World) JointCount() int {
	return w.b2.GetJointCount()
}

// Bodies lists every live body handle.
func (w *World) Bodies() []*Body {
	var out []*Body
	for b := w.b2.GetBodyList(); b != nil; b = b.GetNext() {
		if h, ok := b.GetUserData().(*Body); ok {
			out = append(out, h)
		}
	}
	return out
}

func (w *World) newBodyDef(pos Vec2, opt BodyOptions) box2d.B2BodyDef {
	bd := box2d.MakeB2BodyDef()
	if opt.Static {
		bd.Type = box2d.B2BodyType.B2_staticBody
	} else {
		bd.Type = box2d.B2BodyType.B2_dynamicBody
	}
	bd.Position = w.toMeters(pos)
	bd.LinearDamping = opt.LinearDamping
	bd.Bullet = opt.Bullet
	return bd
}

func (w *World) newFixtureDef(shape box2d.B2ShapeInterface, opt BodyOptions) box2d.B2FixtureDef {
	fd := box2d.MakeB2FixtureDef()
	fd.Shape = shape
	fd.Density = opt.Density
	fd.Friction = opt.Friction
	fd.Restitution = opt.Restitution
	fd.Filter = box2d.MakeB2Filter()
	fd.Filter.GroupIndex = opt.Group
	return fd
}

// CreateCircle adds a circle of the given pixel radius centered at pos.
func (w *World) CreateCircle(pos Vec2, radius float64, opt BodyOptions) *Body {
	bd := w.newBodyDef(pos, opt)
	b2 := w.b2.CreateBody(&bd)

	shape := box2d.MakeB2CircleShape()
	shape.M_radius = radius / w.ppm
	fd := w.newFixtureDef(&shape, opt)
	b2.CreateFixtureFromDef(&fd)

	body := &Body{b2: b2, world: w, Kind: ShapeCircle, Radius: radius, Tag: opt.Tag}
	b2.SetUserData(body)
	return body
}

// CreateBox adds a width x height rectangle centered at pos.
func (w *World) CreateBox(pos Vec2, width, height float64, opt BodyOptions) *Body {
	bd := w.newBodyDef(pos, opt)
	b2 := w.b2.CreateBody(&bd)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(width/2/w.ppm, height/2/w.ppm)
	fd := w.newFixtureDef(&shape, opt)
	b2.CreateFixtureFromDef(&fd)

	body := &Body{b2: b2, world: w, Kind: ShapeBox, Width: width, Height: height, Tag: opt.Tag}
	b2.SetUserData(body)
	return body
}

// DestroyBody removes the body. The engine drops every joint attached to
// it as well; their handles turn dead.
func (w *World) DestroyBody(b *Body) {
	if b == nil || b.b2 == nil {
		return
	}
	for je := b.b2.GetJointList(); je != nil; je = je.Next {
		if h, ok := w.joints[je.Joint]; ok {
			h.j = nil
			delete(w.joints, je.Joint)
		}
	}
	w.b2.DestroyBody(b.b2)
	b.b2 = nil
}

// Alive reports whether the body is still part of the world.
func (b *Body) Alive() bool {
	return b != nil && b.b2 != nil
}
