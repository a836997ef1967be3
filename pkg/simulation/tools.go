package simulation

import (
	"github.com/MarkyMan4/ragdolls/pkg/entity"
	"github.com/MarkyMan4/ragdolls/pkg/physics"
)

// Tool is what a pointer press does.
type Tool uint8

const (
	ToolGrab Tool = iota
	ToolBall
	ToolExplode
	ToolBlock
	ToolGrapple
	ToolPin
	ToolAntiGravity
	ToolWeb
)

var toolNames = [...]string{
	ToolGrab:        "grab",
	ToolBall:        "ball",
	ToolExplode:     "explode",
	ToolBlock:       "block",
	ToolGrapple:     "grapple",
	ToolPin:         "pin",
	ToolAntiGravity: "antiGravity",
	ToolWeb:         "web",
}

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	out := make([]Tool, len(toolNames))
	for i := range toolNames {
		out[i] = Tool(i)
	}
	return out
}

func (t Tool) String() string {
	if int(t) < len(toolNames) {
		return toolNames[t]
	}
	return "unknown"
}

// ParseTool maps a tool identifier to its Tool.
func ParseTool(name string) (Tool, bool) {
	for i, n := range toolNames {
		if n == name {
			return Tool(i), true
		}
	}
	return 0, false
}

// SetTool selects a tool by name. Unknown names keep the current tool and
// report false.
func (s *Session) SetTool(name string) bool {
	t, ok := ParseTool(name)
	if !ok {
		s.log.Debug().Str("name", name).Msg("unknown tool ignored")
		return false
	}
	s.SelectTool(t)
	return true
}

// SelectTool switches tools. Leaving a tool cancels its pending gesture and
// lets go of anything held; an aimed ball is fired.
func (s *Session) SelectTool(t Tool) {
	if t == s.tool {
		return
	}
	if s.grapple.Cancel() {
		s.log.Debug().Msg("grapple cancelled")
	}
	if s.pin.Cancel() {
		s.log.Debug().Msg("pin cancelled")
	}
	s.releaseDrag()
	s.releaseLaunch()

	s.log.Debug().Stringer("from", s.tool).Stringer("to", t).Msg("tool selected")
	s.tool = t
}

// --- Pointer events ---
func (s *Session) PointerDown(p physics.Vec2) {
	s.pointer = p

	switch s.tool {
	case ToolGrab:
		s.grab(p)
	case ToolBall:
		s.aim(p)
	case ToolExplode:
		s.Explode(p)
	case ToolBlock:
		s.spawnBlock(p)
	case ToolGrapple:
		s.grappleAt(p)
	case ToolPin:
		if b := s.World.BodyAt(p); b != nil {
			s.pin.Arm(b)
		}
	case ToolAntiGravity:
		s.ToggleGravity()
	case ToolWeb:
		s.spawnWeb(p)
	}
}

func (s *Session) PointerUp(p physics.Vec2) {
	s.pointer = p

	switch s.tool {
	case ToolGrab:
		s.releaseDrag()
	case ToolBall:
		s.releaseLaunch()
	case ToolPin:
		s.pinAt(p)
	}
}

func (s *Session) PointerMove(p physics.Vec2) {
	s.pointer = p
	if s.drag.Alive() {
		s.drag.SetTarget(p)
	}
	if s.launch.Hold.Alive() {
		s.launch.Hold.SetTarget(p)
	}
}

// --- grab ---
func (s *Session) grab(p physics.Vec2) {
	s.releaseDrag()
	b := s.World.BodyAt(p)
	if b == nil {
		return
	}
	s.drag = s.World.CreateDrag(b, p, s.cfg.Drag.FrequencyHz, s.cfg.Drag.MaxForce)
}

func (s *Session) releaseDrag() {
	if s.drag == nil {
		return
	}
	s.World.DestroyJoint(s.drag)
	s.drag = nil
}

// --- ball ---
// aim spawns a ball at p, ties it to p with the launcher and holds it on
// the pointer. A launch still in flight loses its launcher first.
func (s *Session) aim(p physics.Vec2) {
	s.dropLaunch()

	ball := entity.NewBall(s.World, p, s.cfg.Ball.Radius)
	s.Balls = append(s.Balls, ball)

	launcher := physics.JointSpec{
		Length:       s.cfg.Ball.LauncherLength,
		FrequencyHz:  s.cfg.Ball.LauncherFrequencyHz,
		DampingRatio: s.cfg.Ball.LauncherDampingRatio,
	}
	s.launch = Launch{
		State:    LaunchAiming,
		Ball:     ball,
		Launcher: s.World.CreateAnchoredJoint(ball, physics.Vec2{}, p, launcher),
		Hold:     s.World.CreateDrag(ball, p, s.cfg.Drag.FrequencyHz, s.cfg.Drag.MaxForce),
		Anchor:   p,
	}
	s.log.Debug().Float64("x", p.X).Float64("y", p.Y).Int("balls", len(s.Balls)).Msg("ball aimed")
}

// releaseLaunch lets go of an aimed ball; the launcher then fires it.
func (s *Session) releaseLaunch() {
	if s.launch.State != LaunchAiming {
		return
	}
	s.World.DestroyJoint(s.launch.Hold)
	s.launch.Hold = nil
	s.launch.State = LaunchReleased
}

// settleLaunch removes the launcher once a released ball is back within
// the threshold of its anchor.
func (s *Session) settleLaunch() {
	if s.launch.State != LaunchReleased {
		return
	}
	if !s.launch.Returned(s.cfg.Ball.ReleaseThreshold) {
		return
	}
	s.World.DestroyJoint(s.launch.Launcher)
	s.launch = Launch{}
	s.log.Debug().Msg("ball launched")
}

func (s *Session) dropLaunch() {
	if s.launch.State == LaunchIdle {
		return
	}
	s.World.DestroyJoint(s.launch.Hold)
	s.World.DestroyJoint(s.launch.Launcher)
	s.launch = Launch{}
}

// --- grapple ---
// grappleAt arms on the first body clicked and ties it to the next
// different body. Clicks on empty space or on the armed body change
// nothing.
func (s *Session) grappleAt(p physics.Vec2) {
	b := s.World.BodyAt(p)
	if b == nil {
		return
	}
	first := s.grapple.Pending()
	if first == nil {
		s.grapple.Arm(b)
		return
	}
	if first == b {
		return
	}
	j := s.World.CreateDistanceJoint(first, b, physics.Vec2{}, physics.Vec2{}, s.cfg.Grapple.Spec())
	s.Grapples = append(s.Grapples, j)
	s.grapple.Commit()
	s.log.Debug().Str("a", first.Tag).Str("b", b.Tag).Msg("grapple committed")
}

// --- pin ---
func (s *Session) pinAt(p physics.Vec2) {
	b := s.pin.Pending()
	if b == nil {
		return
	}
	j := s.World.CreateAnchoredJoint(b, physics.Vec2{}, p, s.cfg.Pin.Spec())
	s.Pins = append(s.Pins, j)
	s.pin.Commit()
	s.log.Debug().Str("body", b.Tag).Float64("x", p.X).Float64("y", p.Y).Msg("pin committed")
}
