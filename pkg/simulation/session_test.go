package simulation

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarkyMan4/ragdolls/pkg/physics"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(DefaultConfig(), zerolog.Nop(), rand.New(rand.NewSource(1)))
}

func newEmptySession(t *testing.T) *Session {
	t.Helper()
	cfg := DefaultConfig()
	cfg.InitialRagdolls = 0
	return NewSession(cfg, zerolog.Nop(), rand.New(rand.NewSource(1)))
}

func vec(x, y float64) physics.Vec2 {
	return physics.Vec2{X: x, Y: y}
}

// click presses and releases at p.
func click(s *Session, p physics.Vec2) {
	s.PointerDown(p)
	s.PointerUp(p)
}

func placeBlocks(t *testing.T, s *Session, ps ...physics.Vec2) {
	t.Helper()
	require.True(t, s.SetTool("block"))
	for _, p := range ps {
		click(s, p)
	}
	require.Len(t, s.Blocks, len(ps))
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t)

	require.Len(t, s.Ragdolls, 1)
	assert.InDelta(t, 640, s.Ragdolls[0].Head.Position().X, 1e-9)
	assert.InDelta(t, 360, s.Ragdolls[0].Head.Position().Y, 1e-9)
	assert.Equal(t, 6, s.AppBodyCount())
	assert.Equal(t, 10, s.World.BodyCount(), "four walls on top")
	assert.Equal(t, ToolGrab, s.Tool())
	assert.True(t, s.GravityEnabled())
}

func TestParseTool(t *testing.T) {
	for _, tool := range Tools() {
		got, ok := ParseTool(tool.String())
		assert.True(t, ok)
		assert.Equal(t, tool, got)
	}
	_, ok := ParseTool("lasso")
	assert.False(t, ok)
	assert.Len(t, Tools(), 8)
	assert.Equal(t, "antiGravity", ToolAntiGravity.String())
}

func TestSetTool(t *testing.T) {
	s := newTestSession(t)

	assert.True(t, s.SetTool("web"))
	assert.Equal(t, ToolWeb, s.Tool())

	assert.False(t, s.SetTool("flamethrower"))
	assert.Equal(t, ToolWeb, s.Tool(), "unknown names keep the current tool")
}

func TestGravityToggle(t *testing.T) {
	s := newTestSession(t)
	before := s.World.Gravity()

	require.True(t, s.SetTool("antiGravity"))
	click(s, vec(100, 100))
	assert.False(t, s.GravityEnabled())
	assert.Equal(t, physics.ZeroGravity, s.World.Gravity())

	click(s, vec(900, 500))
	assert.True(t, s.GravityEnabled())
	assert.Equal(t, before, s.World.Gravity())
}

func TestSpawnRagdoll(t *testing.T) {
	s := newEmptySession(t)

	for i := 0; i < 5; i++ {
		r := s.SpawnRagdoll()
		p := r.Head.Position()
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.LessOrEqual(t, p.X, 1280.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.LessOrEqual(t, p.Y, 720.0)
	}
	assert.Len(t, s.Ragdolls, 5)
	assert.Equal(t, 30, s.AppBodyCount())
	assert.Equal(t, 25, s.World.JointCount())
}

func TestGrab(t *testing.T) {
	s := newEmptySession(t)
	placeBlocks(t, s, vec(200, 300))
	require.True(t, s.SetTool("grab"))

	s.PointerDown(vec(200, 300))
	from, to, ok := s.DragLine()
	require.True(t, ok)
	assert.Equal(t, vec(200, 300), from)
	assert.InDelta(t, 200, to.X, 1e-9)

	s.PointerMove(vec(260, 300))
	from, _, ok = s.DragLine()
	require.True(t, ok)
	assert.Equal(t, vec(260, 300), from)

	s.PointerUp(vec(260, 300))
	_, _, ok = s.DragLine()
	assert.False(t, ok)
	assert.Equal(t, 0, s.World.JointCount())
}

func TestGrabEmptySpace(t *testing.T) {
	s := newEmptySession(t)
	s.PointerDown(vec(50, 50))
	_, _, ok := s.DragLine()
	assert.False(t, ok)
	s.PointerUp(vec(50, 50))
	assert.Equal(t, 0, s.World.JointCount())
}

func TestBlock(t *testing.T) {
	s := newEmptySession(t)
	placeBlocks(t, s, vec(200, 300), vec(400, 300))

	assert.Equal(t, 2, s.AppBodyCount())
	assert.InDelta(t, 400, s.Blocks[1].Body.Position().X, 1e-9)
	assert.Equal(t, 50.0, s.Blocks[0].Width)
}

func TestGrappleTwoClicks(t *testing.T) {
	s := newEmptySession(t)
	placeBlocks(t, s, vec(200, 300), vec(400, 300))
	require.True(t, s.SetTool("grapple"))

	click(s, vec(200, 300))
	assert.Same(t, s.Blocks[0].Body, s.PendingGrapple())
	assert.Empty(t, s.Grapples)
	assert.Equal(t, 0, s.World.JointCount())

	click(s, vec(400, 300))
	require.Len(t, s.Grapples, 1)
	assert.Nil(t, s.PendingGrapple())
	assert.Equal(t, 1, s.World.JointCount())

	j := s.Grapples[0]
	assert.Same(t, s.Blocks[0].Body, j.A)
	assert.Same(t, s.Blocks[1].Body, j.B)
	assert.Equal(t, 100.0, j.Length)
}

func TestGrappleOneClickLeavesPending(t *testing.T) {
	s := newEmptySession(t)
	placeBlocks(t, s, vec(200, 300))
	require.True(t, s.SetTool("grapple"))

	click(s, vec(200, 300))
	// same body and empty space keep the gesture armed
	click(s, vec(205, 300))
	click(s, vec(900, 100))

	assert.Empty(t, s.Grapples)
	assert.Equal(t, 0, s.World.JointCount())
	assert.Same(t, s.Blocks[0].Body, s.PendingGrapple())
}

func TestToolSwitchCancelsGrapple(t *testing.T) {
	s := newEmptySession(t)
	placeBlocks(t, s, vec(200, 300), vec(400, 300))
	require.True(t, s.SetTool("grapple"))
	click(s, vec(200, 300))

	require.True(t, s.SetTool("grapple"))
	assert.NotNil(t, s.PendingGrapple(), "reselecting the active tool is a no-op")

	require.True(t, s.SetTool("ball"))
	require.True(t, s.SetTool("grapple"))
	assert.Nil(t, s.PendingGrapple())

	click(s, vec(400, 300))
	assert.Empty(t, s.Grapples, "the stale anchor is not reused")
	assert.Same(t, s.Blocks[1].Body, s.PendingGrapple())
}

func TestPin(t *testing.T) {
	s := newEmptySession(t)
	placeBlocks(t, s, vec(200, 300))
	require.True(t, s.SetTool("pin"))

	s.PointerDown(vec(200, 300))
	assert.Same(t, s.Blocks[0].Body, s.PendingPin())
	assert.Empty(t, s.Pins)

	s.PointerUp(vec(210, 280))
	require.Len(t, s.Pins, 1)
	assert.Nil(t, s.PendingPin())
	assert.Equal(t, vec(210, 280), s.Pins[0].Anchor)
	assert.Equal(t, 10.0, s.Pins[0].Length)
	assert.Equal(t, 1, s.World.JointCount())
}

func TestPinOnEmptySpace(t *testing.T) {
	s := newEmptySession(t)
	require.True(t, s.SetTool("pin"))

	click(s, vec(600, 100))
	assert.Empty(t, s.Pins)
	assert.Nil(t, s.PendingPin())
	assert.Equal(t, 0, s.World.JointCount())
}

func TestBallLaunch(t *testing.T) {
	s := newEmptySession(t)
	require.True(t, s.SetTool("ball"))

	s.PointerDown(vec(300, 300))
	require.Len(t, s.Balls, 1)
	assert.Equal(t, LaunchAiming, s.LaunchState())
	assert.True(t, s.Launcher().Alive())
	assert.Equal(t, 2, s.World.JointCount(), "launcher plus the pointer hold")
	assert.Equal(t, 20.0, s.Balls[0].Radius)

	from, to, ok := s.AimLine()
	require.True(t, ok)
	assert.Equal(t, vec(300, 300), from)
	assert.InDelta(t, 300, to.X, 1e-9)

	// still aiming: the ball sits on its anchor but the launcher holds
	s.Step()
	assert.Equal(t, LaunchAiming, s.LaunchState())

	s.PointerUp(vec(300, 300))
	assert.Equal(t, LaunchReleased, s.LaunchState())
	assert.Equal(t, 1, s.World.JointCount())

	launcher := s.Launcher()
	s.Step()
	assert.Equal(t, LaunchIdle, s.LaunchState())
	assert.False(t, launcher.Alive())
	assert.Equal(t, 0, s.World.JointCount())
	assert.True(t, s.Balls[0].Alive(), "the ball outlives its launcher")
}

func TestBallPullBackFires(t *testing.T) {
	s := newEmptySession(t)
	s.ToggleGravity()
	require.True(t, s.SetTool("ball"))

	s.PointerDown(vec(600, 300))
	s.PointerMove(vec(450, 300))
	for i := 0; i < 60; i++ {
		s.Step()
	}
	assert.Less(t, s.Balls[0].Position().X, 580.0, "the hold drags the ball back")

	s.PointerUp(vec(450, 300))
	for i := 0; i < 10; i++ {
		s.Step()
	}
	assert.Greater(t, s.Balls[0].Velocity().X, 0.0, "released toward the anchor")
}

func TestToolSwitchFiresAimedBall(t *testing.T) {
	s := newEmptySession(t)
	require.True(t, s.SetTool("ball"))
	s.PointerDown(vec(300, 300))

	require.True(t, s.SetTool("grab"))
	assert.Equal(t, LaunchReleased, s.LaunchState())
	assert.True(t, s.Launcher().Alive())
}

func TestExplodeInsideRadius(t *testing.T) {
	s := newTestSession(t)
	torso := s.Ragdolls[0].Torso.Body
	require.True(t, s.SetTool("explode"))

	s.PointerDown(vec(500, 365))
	assert.Len(t, s.Particles, 100)
	assert.Greater(t, torso.Velocity().X, 0.0, "pushed away from the blast")
}

func TestExplodeOutsideRadius(t *testing.T) {
	s := newTestSession(t)
	torso := s.Ragdolls[0].Torso.Body

	assert.Equal(t, 0, s.Explode(vec(100, 365)))
	assert.Equal(t, physics.Vec2{}, torso.Velocity())
	for _, b := range s.Ragdolls[0].Bodies() {
		assert.Equal(t, physics.Vec2{}, b.Velocity())
	}
	assert.Len(t, s.Particles, 100)
}

func TestExplodePushesBalls(t *testing.T) {
	s := newEmptySession(t)
	require.True(t, s.SetTool("ball"))
	click(s, vec(800, 300))
	require.True(t, s.SetTool("block"))
	click(s, vec(700, 300))

	n := s.Explode(vec(650, 300))
	assert.Equal(t, 1, n, "blocks are not tracked")
	assert.Greater(t, s.Balls[0].Velocity().X, 0.0)
	assert.Equal(t, physics.Vec2{}, s.Blocks[0].Body.Velocity())
}

func TestExplodeInsideTorso(t *testing.T) {
	s := newTestSession(t)
	torso := s.Ragdolls[0].Torso.Body

	assert.Equal(t, 1, s.Explode(torso.Position()))
	assert.Greater(t, torso.Velocity().Len(), 0.0)
}

func TestExplodeInsideBall(t *testing.T) {
	s := newEmptySession(t)
	require.True(t, s.SetTool("ball"))
	click(s, vec(800, 300))
	ball := s.Balls[0]

	assert.Equal(t, 1, s.Explode(vec(805, 300)))
	assert.Less(t, ball.Velocity().X, 0.0, "pushed from the blast point through its center")
}

func TestParticlesAgeOut(t *testing.T) {
	s := newEmptySession(t)
	s.Explode(vec(300, 300))
	require.NotEmpty(t, s.Particles)

	for i := 0; i < 17; i++ {
		s.Step()
	}
	assert.Empty(t, s.Particles)
}

func TestWebTool(t *testing.T) {
	s := newEmptySession(t)
	require.True(t, s.SetTool("web"))
	click(s, vec(300, 100))

	require.Len(t, s.Webs, 1)
	assert.Equal(t, 100, s.AppBodyCount())
	assert.Equal(t, 9*10+10*9+4, s.World.JointCount())
}

func TestClearKeepsRagdolls(t *testing.T) {
	s := newTestSession(t)
	placeBlocks(t, s, vec(200, 300), vec(400, 300))

	require.True(t, s.SetTool("grapple"))
	click(s, vec(200, 300))
	click(s, vec(400, 300))
	require.True(t, s.SetTool("pin"))
	click(s, vec(400, 300))
	require.True(t, s.SetTool("web"))
	click(s, vec(100, 50))
	require.True(t, s.SetTool("ball"))
	s.PointerDown(vec(1000, 300))
	s.Explode(vec(1000, 600))

	s.Clear()

	assert.Len(t, s.Ragdolls, 1)
	assert.Empty(t, s.Balls)
	assert.Empty(t, s.Blocks)
	assert.Empty(t, s.Grapples)
	assert.Empty(t, s.Pins)
	assert.Empty(t, s.Webs)
	assert.Empty(t, s.Particles)
	assert.Equal(t, LaunchIdle, s.LaunchState())
	assert.Equal(t, 6, s.AppBodyCount())
	assert.Equal(t, 5, s.World.JointCount())
}

func TestClearDropsPendingGesture(t *testing.T) {
	s := newEmptySession(t)
	placeBlocks(t, s, vec(200, 300))
	require.True(t, s.SetTool("grapple"))
	click(s, vec(200, 300))

	s.Clear()
	assert.Nil(t, s.PendingGrapple())
}

func TestReset(t *testing.T) {
	s := newTestSession(t)
	s.SpawnRagdoll()
	placeBlocks(t, s, vec(200, 300))
	require.True(t, s.SetTool("web"))
	click(s, vec(100, 50))

	s.Reset()

	assert.Empty(t, s.Ragdolls)
	assert.Empty(t, s.Blocks)
	assert.Empty(t, s.Webs)
	assert.Equal(t, 0, s.AppBodyCount())
	assert.Equal(t, 0, s.World.JointCount())
	assert.Equal(t, 4, s.World.BodyCount(), "walls stay")
}

func TestStabilizeGroundedOnly(t *testing.T) {
	s := newTestSession(t)
	standing := s.SpawnRagdollAt(vec(300, 650))

	assert.Equal(t, 1, s.Stabilize())
	assert.Less(t, standing.Head.Velocity().Y, 0.0)
	assert.Less(t, standing.LeftArm.Body.Velocity().X, 0.0)
	assert.Greater(t, standing.RightArm.Body.Velocity().X, 0.0)
	assert.Equal(t, physics.Vec2{}, s.Ragdolls[0].Head.Velocity(), "a floating ragdoll is left alone")
}

func TestStabilizeNeedsGravity(t *testing.T) {
	s := newEmptySession(t)
	standing := s.SpawnRagdollAt(vec(300, 650))
	s.ToggleGravity()

	assert.Equal(t, 0, s.Stabilize())
	assert.Equal(t, physics.Vec2{}, standing.Head.Velocity())
}

func TestRecoveryInterval(t *testing.T) {
	s := newTestSession(t)

	for i := 0; i < 89; i++ {
		s.Step()
	}
	assert.Equal(t, uint64(0), s.LastRecovery())
	s.Step()
	assert.Equal(t, uint64(90), s.LastRecovery())

	for i := 0; i < 90; i++ {
		s.Step()
	}
	assert.Equal(t, uint64(180), s.LastRecovery())

	s.ToggleGravity()
	for i := 0; i < 90; i++ {
		s.Step()
	}
	assert.Equal(t, uint64(180), s.LastRecovery(), "no recovery without gravity")
}

func TestStandingBias(t *testing.T) {
	lifted := newEmptySession(t)
	free := newEmptySession(t)
	a := lifted.SpawnRagdollAt(vec(300, 650))
	b := free.SpawnRagdollAt(vec(300, 650))
	free.cfg.Ragdoll.StandImpulse = 0

	lifted.Step()
	free.Step()
	assert.Less(t, a.Head.Velocity().Y, b.Head.Velocity().Y)
}
