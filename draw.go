package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/MarkyMan4/ragdolls/pkg/entity"
	"github.com/MarkyMan4/ragdolls/pkg/physics"
	"github.com/MarkyMan4/ragdolls/pkg/simulation"
)

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// palette is the parsed color section of the config.
type palette struct {
	background color.RGBA
	ragdoll    color.RGBA
	wall       color.RGBA
	ball       color.RGBA
	block      color.RGBA
	web        color.RGBA
	joint      color.RGBA
}

func newPalette(c simulation.ColorConfig) palette {
	return palette{
		background: simulation.ParseColor(c.Background),
		ragdoll:    simulation.ParseColor(c.Ragdoll),
		wall:       simulation.ParseColor(c.Wall),
		ball:       simulation.ParseColor(c.Ball),
		block:      simulation.ParseColor(c.Block),
		web:        simulation.ParseColor(c.Web),
		joint:      simulation.ParseColor(c.Joint),
	}
}

func f32(v float64) float32 { return float32(v) }

// drawCircle fills a circle centered at c.
func drawCircle(screen *ebiten.Image, c physics.Vec2, r float64, clr color.RGBA) {
	vector.DrawFilledCircle(screen, f32(c.X), f32(c.Y), f32(r), clr, true)
}

func drawLine(screen *ebiten.Image, a, b physics.Vec2, width float64, clr color.RGBA) {
	vector.StrokeLine(screen, f32(a.X), f32(a.Y), f32(b.X), f32(b.Y), f32(width), clr, true)
}

// drawCapsule strokes a thick line with round caps.
func drawCapsule(screen *ebiten.Image, a, b physics.Vec2, width float64, clr color.RGBA) {
	drawLine(screen, a, b, width, clr)
	drawCircle(screen, a, width/2, clr)
	drawCircle(screen, b, width/2, clr)
}

// drawPolygon fills a convex polygon given in canvas space.
func drawPolygon(screen *ebiten.Image, pts []physics.Vec2, clr color.RGBA) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(f32(pts[0].X), f32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(f32(p.X), f32(p.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vs, is, whiteSubImage, op)
}

func drawSegment(screen *ebiten.Image, s *entity.SegmentBody, clr color.RGBA) {
	c := s.Corners()
	drawPolygon(screen, c[:], clr)
}

func drawRagdoll(screen *ebiten.Image, r *entity.Ragdoll, clr color.RGBA) {
	drawCircle(screen, r.Head.Position(), r.Head.Radius, clr)
	for _, l := range r.Limbs() {
		top, bottom := l.Spine()
		drawCapsule(screen, top, bottom, l.Width, clr)
	}
}

func drawWeb(screen *ebiten.Image, web *entity.Web, clr color.RGBA) {
	for _, s := range web.Strands() {
		drawLine(screen, s[0], s[1], 1, clr)
	}
	for _, b := range web.Bodies {
		drawCircle(screen, b.Position(), b.Radius, clr)
	}
}

// drawJoint draws a user joint as a line between its ends, marking a fixed
// world end with a dot.
func drawJoint(screen *ebiten.Image, j *physics.Joint, clr color.RGBA) {
	if !j.Alive() {
		return
	}
	b, ok := j.EndpointB()
	drawLine(screen, j.EndpointA(), b, 2, clr)
	if !ok {
		drawCircle(screen, b, 3, clr)
	}
}

// drawSession paints every entity, ragdolls first and particles last,
// then the active tool's guide line.
func (g *Game) drawSession(screen *ebiten.Image) {
	s := g.session
	pal := g.palette

	for _, r := range s.Ragdolls {
		drawRagdoll(screen, r, pal.ragdoll)
	}
	for _, b := range s.Balls {
		if b.Alive() {
			drawCircle(screen, b.Position(), b.Radius, pal.ball)
		}
	}
	for _, b := range s.Blocks {
		drawSegment(screen, b, pal.block)
	}
	for _, j := range s.Grapples {
		drawJoint(screen, j, pal.joint)
	}
	for _, j := range s.Pins {
		drawJoint(screen, j, pal.joint)
	}
	for _, web := range s.Webs {
		drawWeb(screen, web, pal.web)
	}
	for _, w := range s.Bounds.All() {
		drawSegment(screen, w, pal.wall)
	}
	for _, p := range s.Particles {
		drawCircle(screen, physics.Vec2{X: p.X, Y: p.Y}, p.Radius, p.Color)
	}

	switch s.Tool() {
	case simulation.ToolGrab:
		if from, to, ok := s.DragLine(); ok {
			drawLine(screen, from, to, 1, color.RGBA{255, 255, 255, 255})
		}
	case simulation.ToolBall:
		if from, to, ok := s.AimLine(); ok {
			drawLine(screen, from, to, 1, color.RGBA{255, 255, 255, 255})
		}
	case simulation.ToolGrapple:
		if b := s.PendingGrapple(); b != nil {
			drawLine(screen, b.Position(), s.Pointer(), 1, color.RGBA{255, 255, 255, 120})
		}
	case simulation.ToolPin:
		if b := s.PendingPin(); b != nil {
			drawLine(screen, b.Position(), s.Pointer(), 1, color.RGBA{255, 255, 255, 120})
		}
	}
}
