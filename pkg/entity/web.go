package entity

import (
	"github.com/MarkyMan4/ragdolls/pkg/physics"
)

// WebOptions describe the lattice. Zero fields take the defaults.
type WebOptions struct {
	Rows        int
	Cols        int
	Spacing     float64
	PointRadius float64
	Density     float64
	Strand      physics.JointSpec
}

var DefaultWebOptions = WebOptions{
	Rows:        10,
	Cols:        10,
	Spacing:     50,
	PointRadius: 5,
	Density:     0.2,
	Strand:      physics.JointSpec{Length: 20, FrequencyHz: 1.5, DampingRatio: 0.3},
}

func (o WebOptions) withDefaults() WebOptions {
	d := DefaultWebOptions
	if o.Rows <= 0 {
		o.Rows = d.Rows
	}
	if o.Cols <= 0 {
		o.Cols = d.Cols
	}
	if o.Spacing == 0 {
		o.Spacing = d.Spacing
	}
	if o.PointRadius == 0 {
		o.PointRadius = d.PointRadius
	}
	if o.Density == 0 {
		o.Density = d.Density
	}
	if o.Strand == (physics.JointSpec{}) {
		o.Strand = d.Strand
	}
	return o
}

// Web is a grid of small circles, each tied to its right and lower
// neighbor, with the four corners pinned where they were spawned.
type Web struct {
	Points [][]*physics.Body
	Bodies []*physics.Body
	Joints []*physics.Joint
}

// NewWeb spawns the grid with its first point at pos. Row i runs along X,
// column j along Y.
func NewWeb(w *physics.World, pos physics.Vec2, opt WebOptions) *Web {
	opt = opt.withDefaults()
	web := &Web{}

	for i := 0; i < opt.Rows; i++ {
		row := make([]*physics.Body, 0, opt.Cols)
		for j := 0; j < opt.Cols; j++ {
			p := physics.Vec2{X: pos.X + float64(i)*opt.Spacing, Y: pos.Y + float64(j)*opt.Spacing}
			b := w.CreateCircle(p, opt.PointRadius, physics.BodyOptions{Density: opt.Density, Tag: "web"})
			row = append(row, b)
			web.Bodies = append(web.Bodies, b)
		}
		web.Points = append(web.Points, row)
	}

	for i := range web.Points {
		for j := range web.Points[i] {
			if i < len(web.Points)-1 {
				web.Joints = append(web.Joints, w.CreateDistanceJoint(
					web.Points[i][j], web.Points[i+1][j], physics.Vec2{}, physics.Vec2{}, opt.Strand))
			}
			if j < len(web.Points[i])-1 {
				web.Joints = append(web.Joints, w.CreateDistanceJoint(
					web.Points[i][j], web.Points[i][j+1], physics.Vec2{}, physics.Vec2{}, opt.Strand))
			}
		}
	}

	last := len(web.Points) - 1
	corners := []*physics.Body{
		web.Points[0][0],
		web.Points[0][len(web.Points[0])-1],
		web.Points[last][0],
		web.Points[last][len(web.Points[last])-1],
	}
	for _, c := range corners {
		web.Joints = append(web.Joints, w.CreatePin(c))
	}
	return web
}

// Strands returns the line segments to draw: one per joint that links two
// bodies. Corner pins have a single body and yield nothing.
func (web *Web) Strands() [][2]physics.Vec2 {
	out := make([][2]physics.Vec2, 0, len(web.Joints))
	for _, j := range web.Joints {
		if !j.Alive() {
			continue
		}
		b, ok := j.EndpointB()
		if !ok {
			continue
		}
		out = append(out, [2]physics.Vec2{j.EndpointA(), b})
	}
	return out
}

func (web *Web) Owns(b *physics.Body) bool {
	for _, wb := range web.Bodies {
		if wb == b {
			return true
		}
	}
	return false
}

func (web *Web) Remove(w *physics.World) {
	for _, j := range web.Joints {
		w.DestroyJoint(j)
	}
	for _, b := range web.Bodies {
		w.DestroyBody(b)
	}
	web.Joints = nil
}
