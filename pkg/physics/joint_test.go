package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceJoint(t *testing.T) {
	w := newTestWorld()
	a := w.CreateCircle(Vec2{100, 100}, 10, BodyOptions{Density: 1})
	b := w.CreateCircle(Vec2{200, 100}, 10, BodyOptions{Density: 1})

	j := w.CreateDistanceJoint(a, b, Vec2{}, Vec2{}, JointSpec{Length: 100, FrequencyHz: 2, DampingRatio: 0.2})
	assert.True(t, j.Alive())
	assert.Equal(t, 1, w.JointCount())
	assert.Equal(t, JointDistance, j.Kind)
	assert.Equal(t, 100.0, j.Length)

	pb, ok := j.EndpointB()
	assert.True(t, ok)
	assert.InDelta(t, 200, pb.X, 1e-9)
	assert.InDelta(t, 100, j.EndpointA().X, 1e-9)

	w.DestroyJoint(j)
	assert.False(t, j.Alive())
	assert.Equal(t, 0, w.JointCount())

	// dead joints are ignored
	w.DestroyJoint(j)
	assert.Equal(t, 0, w.JointCount())
}

func TestJointDiesWithBody(t *testing.T) {
	w := newTestWorld()
	a := w.CreateCircle(Vec2{100, 100}, 10, BodyOptions{Density: 1})
	b := w.CreateCircle(Vec2{200, 100}, 10, BodyOptions{Density: 1})
	j := w.CreateDistanceJoint(a, b, Vec2{}, Vec2{}, JointSpec{Length: 100})
	pin := w.CreatePin(b)

	w.DestroyBody(b)
	assert.False(t, j.Alive())
	assert.False(t, pin.Alive())
	assert.Equal(t, 0, w.JointCount())

	w.DestroyJoint(j)
	assert.Equal(t, 0, w.JointCount())
}

func TestAnchoredJointAndPin(t *testing.T) {
	w := newTestWorld()
	a := w.CreateCircle(Vec2{100, 100}, 10, BodyOptions{Density: 1})

	anchored := w.CreateAnchoredJoint(a, Vec2{}, Vec2{120, 90}, JointSpec{Length: 10})
	p, ok := anchored.EndpointB()
	assert.False(t, ok)
	assert.Equal(t, Vec2{120, 90}, p)
	assert.Nil(t, anchored.B)

	pin := w.CreatePin(a)
	assert.Equal(t, JointPin, pin.Kind)
	assert.Equal(t, a.Position(), pin.Anchor)
	assert.Equal(t, 2, w.JointCount())
}

func TestPinHoldsBody(t *testing.T) {
	w := newTestWorld()
	a := w.CreateCircle(Vec2{100, 100}, 10, BodyOptions{Density: 1})
	w.CreatePin(a)

	for i := 0; i < 60; i++ {
		w.Step()
	}
	assert.InDelta(t, 100, a.Position().X, 0.5)
	assert.InDelta(t, 100, a.Position().Y, 0.5)
}

func TestDragFollowsTarget(t *testing.T) {
	w := NewWorld(ZeroGravity, 30)
	a := w.CreateCircle(Vec2{100, 100}, 10, BodyOptions{Density: 1})

	d := w.CreateDrag(a, Vec2{100, 100}, 5, 1000)
	assert.Equal(t, JointDrag, d.Kind)
	assert.InDelta(t, 0, d.LocalA.X, 1e-9)

	d.SetTarget(Vec2{200, 100})
	assert.Equal(t, Vec2{200, 100}, d.Anchor)
	for i := 0; i < 30; i++ {
		w.Step()
	}
	assert.Greater(t, a.Position().X, 100.0)

	w.DestroyJoint(d)
	d.SetTarget(Vec2{0, 0})
	assert.Equal(t, Vec2{200, 100}, d.Anchor, "dead drag keeps its last target")
}
