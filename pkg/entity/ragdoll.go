package entity

import (
	"github.com/MarkyMan4/ragdolls/pkg/physics"
)

// Fixed figure geometry, in pixels.
const (
	HeadRadius  = 20.0
	TorsoWidth  = 10.0
	TorsoHeight = 60.0
	LimbWidth   = 10.0
	LimbLength  = 50.0

	// torso center sits this far below the head center at spawn
	torsoDrop = 5.0
	// legs hang from the torso bottom, offset sideways by this much
	hipOffset = 5.0
	// gap between torso side and arm center at spawn
	shoulderGap = 5.0

	neckOnHead  = 10.0
	neckOnTorso = 25.0

	NeckLength = 15.0
	LimbJoint  = 5.0
)

// RagdollOptions are the materials of a figure.
type RagdollOptions struct {
	HeadDensity float64
	LimbDensity float64
	Friction    float64
}

var DefaultRagdollOptions = RagdollOptions{
	HeadDensity: 0.5,
	LimbDensity: 1,
	Friction:    0.4,
}

// Ragdoll is a head circle and five rectangles (torso, two legs, two arms)
// held together by five distance joints.
type Ragdoll struct {
	Head     *physics.Body
	Torso    *SegmentBody
	LeftLeg  *SegmentBody
	RightLeg *SegmentBody
	LeftArm  *SegmentBody
	RightArm *SegmentBody

	Joints []*physics.Joint
}

// NewRagdoll builds a figure with its head centered at pos. Parts share
// the collision group so a figure never collides with itself; pass a
// distinct negative group per figure.
func NewRagdoll(w *physics.World, pos physics.Vec2, group int16, opt RagdollOptions) *Ragdoll {
	limb := physics.BodyOptions{Density: opt.LimbDensity, Friction: opt.Friction, Group: group}
	r := &Ragdoll{}

	r.Head = w.CreateCircle(pos, HeadRadius, physics.BodyOptions{
		Density:  opt.HeadDensity,
		Friction: opt.Friction,
		Group:    group,
		Tag:      "head",
	})

	tp := physics.Vec2{X: pos.X, Y: pos.Y + torsoDrop}
	r.Torso = NewSegmentBody(w, "torso", tp, TorsoWidth, TorsoHeight, limb)

	legY := tp.Y + TorsoHeight/2 + hipOffset
	r.LeftLeg = NewSegmentBody(w, "leftLeg", physics.Vec2{X: tp.X - hipOffset, Y: legY}, LimbWidth, LimbLength, limb)
	r.RightLeg = NewSegmentBody(w, "rightLeg", physics.Vec2{X: tp.X + hipOffset, Y: legY}, LimbWidth, LimbLength, limb)

	armY := tp.Y - TorsoHeight/5
	armX := TorsoWidth/2 + shoulderGap
	r.LeftArm = NewSegmentBody(w, "leftArm", physics.Vec2{X: tp.X - armX, Y: armY}, LimbWidth, LimbLength, limb)
	r.RightArm = NewSegmentBody(w, "rightArm", physics.Vec2{X: tp.X + armX, Y: armY}, LimbWidth, LimbLength, limb)

	rigid := func(l float64) physics.JointSpec { return physics.JointSpec{Length: l} }
	top := physics.Vec2{Y: -LimbLength / 2}

	r.Joints = []*physics.Joint{
		w.CreateDistanceJoint(r.Head, r.Torso.Body,
			physics.Vec2{Y: neckOnHead}, physics.Vec2{Y: -neckOnTorso}, rigid(NeckLength)),
		w.CreateDistanceJoint(r.Torso.Body, r.LeftLeg.Body,
			physics.Vec2{X: -hipOffset, Y: TorsoHeight / 2}, top, rigid(LimbJoint)),
		w.CreateDistanceJoint(r.Torso.Body, r.RightLeg.Body,
			physics.Vec2{X: hipOffset, Y: TorsoHeight / 2}, top, rigid(LimbJoint)),
		w.CreateDistanceJoint(r.Torso.Body, r.LeftArm.Body,
			physics.Vec2{X: -TorsoWidth / 2, Y: -TorsoHeight / 3}, top, rigid(LimbJoint)),
		w.CreateDistanceJoint(r.Torso.Body, r.RightArm.Body,
			physics.Vec2{X: TorsoWidth / 2, Y: -TorsoHeight / 3}, top, rigid(LimbJoint)),
	}
	return r
}

// Limbs returns torso, legs and arms in drawing order.
func (r *Ragdoll) Limbs() []*SegmentBody {
	return []*SegmentBody{r.Torso, r.LeftLeg, r.RightLeg, r.LeftArm, r.RightArm}
}

// Bodies returns all six engine bodies, head first.
func (r *Ragdoll) Bodies() []*physics.Body {
	out := []*physics.Body{r.Head}
	for _, l := range r.Limbs() {
		out = append(out, l.Body)
	}
	return out
}

// Owns reports whether b is one of the figure's bodies.
func (r *Ragdoll) Owns(b *physics.Body) bool {
	for _, rb := range r.Bodies() {
		if rb == b {
			return true
		}
	}
	return false
}

// Touching reports whether the head or any limb overlaps ground.
func (r *Ragdoll) Touching(ground *physics.Body) bool {
	for _, b := range r.Bodies() {
		if b.Overlaps(ground) {
			return true
		}
	}
	return false
}

// Grounded is Touching without the head.
func (r *Ragdoll) Grounded(ground *physics.Body) bool {
	for _, l := range r.Limbs() {
		if l.Body.Overlaps(ground) {
			return true
		}
	}
	return false
}

// Remove takes the figure out of the world.
func (r *Ragdoll) Remove(w *physics.World) {
	for _, j := range r.Joints {
		w.DestroyJoint(j)
	}
	for _, b := range r.Bodies() {
		w.DestroyBody(b)
	}
	r.Joints = nil
}
