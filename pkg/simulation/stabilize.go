package simulation

import (
	"github.com/MarkyMan4/ragdolls/pkg/physics"
)

// standUp gives every ragdoll touching the ground a small lift on the
// head, once per step.
func (s *Session) standUp() {
	ground := s.Bounds.Ground.Body
	lift := physics.Vec2{Y: -s.cfg.Ragdoll.StandImpulse}
	for _, r := range s.Ragdolls {
		if r.Touching(ground) {
			r.Head.ApplyImpulse(lift)
		}
	}
}

// Stabilize pushes every ragdoll whose torso or a limb rests on the ground
// back up: head straight up, arms up and outward. It does nothing while
// gravity is off. Returns the number of ragdolls pushed.
func (s *Session) Stabilize() int {
	if !s.gravityOn {
		return 0
	}
	rc := s.cfg.Ragdoll
	ground := s.Bounds.Ground.Body
	head := physics.Vec2{Y: -rc.RecoverHeadImpulse}
	left := physics.Vec2{X: -rc.RecoverArmOutward, Y: -rc.RecoverArmUp}
	right := physics.Vec2{X: rc.RecoverArmOutward, Y: -rc.RecoverArmUp}

	n := 0
	for _, r := range s.Ragdolls {
		if !r.Grounded(ground) {
			continue
		}
		r.Head.ApplyImpulse(head)
		r.LeftArm.Body.ApplyImpulse(left)
		r.RightArm.Body.ApplyImpulse(right)
		n++
	}
	if n > 0 {
		s.log.Debug().Int("ragdolls", n).Uint64("step", s.World.Steps()).Msg("recovery impulse")
	}
	return n
}
