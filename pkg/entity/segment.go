package entity

import (
	"github.com/MarkyMan4/ragdolls/pkg/physics"
)

// SegmentBody is a labeled rectangle. The engine does not hand back box
// dimensions, so they are kept here for drawing.
type SegmentBody struct {
	Label  string
	Width  float64
	Height float64
	Body   *physics.Body
}

func NewSegmentBody(w *physics.World, label string, pos physics.Vec2, width, height float64, opt physics.BodyOptions) *SegmentBody {
	if opt.Tag == "" {
		opt.Tag = label
	}
	return &SegmentBody{
		Label:  label,
		Width:  width,
		Height: height,
		Body:   w.CreateBox(pos, width, height, opt),
	}
}

// Corners returns the four rotated corners in canvas space, clockwise from
// the top left.
func (s *SegmentBody) Corners() [4]physics.Vec2 {
	hw, hh := s.Width/2, s.Height/2
	return [4]physics.Vec2{
		s.Body.WorldPoint(physics.Vec2{X: -hw, Y: -hh}),
		s.Body.WorldPoint(physics.Vec2{X: hw, Y: -hh}),
		s.Body.WorldPoint(physics.Vec2{X: hw, Y: hh}),
		s.Body.WorldPoint(physics.Vec2{X: -hw, Y: hh}),
	}
}

// Spine returns the end points of the long center line, the way limbs are
// drawn.
func (s *SegmentBody) Spine() (physics.Vec2, physics.Vec2) {
	hh := s.Height / 2
	return s.Body.WorldPoint(physics.Vec2{Y: -hh}), s.Body.WorldPoint(physics.Vec2{Y: hh})
}
