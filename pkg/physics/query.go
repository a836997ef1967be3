package physics

import (
	"sort"

	"github.com/ByteArena/box2d"
)

// pointer slop for picking, in pixels
const pickSlop = 1.0

// BodyAt returns the dynamic body under the canvas point p, or nil.
func (w *World) BodyAt(p Vec2) *Body {
	mp := w.toMeters(p)
	slop := pickSlop / w.ppm
	aabb := box2d.MakeB2AABB()
	aabb.LowerBound = box2d.MakeB2Vec2(mp.X-slop, mp.Y-slop)
	aabb.UpperBound = box2d.MakeB2Vec2(mp.X+slop, mp.Y+slop)

	var found *Body
	w.b2.QueryAABB(func(f *box2d.B2Fixture) bool {
		body := f.GetBody()
		if body.GetType() != box2d.B2BodyType.B2_dynamicBody {
			return true
		}
		if !f.TestPoint(mp) {
			return true
		}
		if h, ok := body.GetUserData().(*Body); ok {
			found = h
			return false
		}
		return true
	}, aabb)
	return found
}

// RayHit is a body crossed by a ray.
type RayHit struct {
	Body     *Body
	Point    Vec2
	Normal   Vec2
	Fraction float64
}

// RayCastAll casts a ray from a to b and returns every body it crosses for
// which accept returns true, one hit per body at its entry point, nearest
// first.
func (w *World) RayCastAll(a, b Vec2, accept func(*Body) bool) []RayHit {
	p1 := w.toMeters(a)
	p2 := w.toMeters(b)
	if box2d.B2Vec2Sub(p2, p1).LengthSquared() == 0 {
		return nil
	}

	var hits []RayHit
	w.b2.RayCast(func(f *box2d.B2Fixture, point, normal box2d.B2Vec2, fraction float64) float64 {
		h, ok := f.GetBody().GetUserData().(*Body)
		if !ok || (accept != nil && !accept(h)) {
			return -1
		}
		hit := RayHit{
			Body:     h,
			Point:    w.toPixels(point),
			Normal:   Vec2{normal.X, normal.Y},
			Fraction: fraction,
		}
		for i := range hits {
			if hits[i].Body == h {
				if fraction < hits[i].Fraction {
					hits[i] = hit
				}
				return 1
			}
		}
		hits = append(hits, hit)
		return 1
	}, p1, p2)

	sort.Slice(hits, func(i, j int) bool { return hits[i].Fraction < hits[j].Fraction })
	return hits
}
