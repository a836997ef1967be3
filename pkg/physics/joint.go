package physics

import (
	"github.com/ByteArena/box2d"
)

type JointKind uint8

const (
	// JointDistance keeps two anchor points at a rest length; soft when
	// FrequencyHz is non-zero.
	JointDistance JointKind = iota
	// JointPin holds a body point on a fixed world point.
	JointPin
	// JointDrag pulls a body point toward a movable target.
	JointDrag
)

// JointSpec is the tuning of a distance joint. Length is in pixels. A zero
// FrequencyHz makes the joint rigid.
type JointSpec struct {
	Length       float64
	FrequencyHz  float64
	DampingRatio float64
}

// Joint is a handle to an engine joint. B is nil when the joint ends on a
// fixed world point (Anchor).
type Joint struct {
	j     box2d.B2JointInterface
	world *World

	Kind   JointKind
	A, B   *Body
	LocalA Vec2
	LocalB Vec2
	Anchor Vec2
	Length float64
}

// Alive reports whether the joint still exists in the world. Destroying
// either attached body kills the joint too.
func (j *Joint) Alive() bool {
	return j != nil && j.j != nil
}

// EndpointA is the canvas position of the anchor on body A.
func (j *Joint) EndpointA() Vec2 {
	return j.A.WorldPoint(j.LocalA)
}

// EndpointB is the canvas position of the other end; ok is false when the
// joint has no second body.
func (j *Joint) EndpointB() (p Vec2, ok bool) {
	if j.B == nil {
		return j.Anchor, false
	}
	return j.B.WorldPoint(j.LocalB), true
}

// SetTarget moves the target of a drag joint.
func (j *Joint) SetTarget(p Vec2) {
	if !j.Alive() {
		return
	}
	if mj, ok := j.j.(*box2d.B2MouseJoint); ok {
		mj.SetTarget(j.world.toMeters(p))
		j.Anchor = p
	}
}

func (w *World) track(j *Joint) *Joint {
	w.joints[j.j] = j
	return j
}

// CreateDistanceJoint links a local point of a to a local point of b.
func (w *World) CreateDistanceJoint(a, b *Body, localA, localB Vec2, spec JointSpec) *Joint {
	def := box2d.MakeB2DistanceJointDef()
	def.BodyA = a.b2
	def.BodyB = b.b2
	def.LocalAnchorA = w.toMeters(localA)
	def.LocalAnchorB = w.toMeters(localB)
	def.Length = spec.Length / w.ppm
	def.FrequencyHz = spec.FrequencyHz
	def.DampingRatio = spec.DampingRatio

	return w.track(&Joint{
		j:      w.b2.CreateJoint(&def),
		world:  w,
		Kind:   JointDistance,
		A:      a,
		B:      b,
		LocalA: localA,
		LocalB: localB,
		Length: spec.Length,
	})
}

// CreateAnchoredJoint links a local point of a to a fixed canvas point.
func (w *World) CreateAnchoredJoint(a *Body, localA, anchor Vec2, spec JointSpec) *Joint {
	def := box2d.MakeB2DistanceJointDef()
	def.BodyA = w.anchor
	def.BodyB = a.b2
	def.LocalAnchorA = w.toMeters(anchor)
	def.LocalAnchorB = w.toMeters(localA)
	def.Length = spec.Length / w.ppm
	def.FrequencyHz = spec.FrequencyHz
	def.DampingRatio = spec.DampingRatio

	return w.track(&Joint{
		j:      w.b2.CreateJoint(&def),
		world:  w,
		Kind:   JointDistance,
		A:      a,
		LocalA: localA,
		Anchor: anchor,
		Length: spec.Length,
	})
}

// CreatePin fixes the current position of a's center to the world: a
// zero length joint of maximum stiffness.
func (w *World) CreatePin(a *Body) *Joint {
	anchor := a.Position()
	def := box2d.MakeB2RevoluteJointDef()
	def.Initialize(w.anchor, a.b2, w.toMeters(anchor))

	return w.track(&Joint{
		j:      w.b2.CreateJoint(&def),
		world:  w,
		Kind:   JointPin,
		A:      a,
		Anchor: anchor,
	})
}

// CreateDrag attaches a soft drag joint to a at the canvas point target.
// maxForce is in newtons per kilogram of the dragged body.
func (w *World) CreateDrag(a *Body, target Vec2, frequencyHz, maxForce float64) *Joint {
	def := box2d.MakeB2MouseJointDef()
	def.BodyA = w.anchor
	def.BodyB = a.b2
	def.Target = w.toMeters(target)
	def.FrequencyHz = frequencyHz
	def.DampingRatio = 0.7
	def.MaxForce = maxForce * a.b2.GetMass()
	def.CollideConnected = true
	a.b2.SetAwake(true)

	return w.track(&Joint{
		j:      w.b2.CreateJoint(&def),
		world:  w,
		Kind:   JointDrag,
		A:      a,
		LocalA: w.toPixels(a.b2.GetLocalPoint(def.Target)),
		Anchor: target,
	})
}

// DestroyJoint removes the joint. Dead joints are ignored.
func (w *World) DestroyJoint(j *Joint) {
	if !j.Alive() {
		return
	}
	delete(w.joints, j.j)
	w.b2.DestroyJoint(j.j)
	j.j = nil
}
