// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package primitive

import (
	"math"

	"raytrace/aabb"
	"raytrace/math/lin"
)

// Sphere is a ray-traced sphere, grounded on
// original_source/Graphics/ViewableSphere.h.
type Sphere struct {
	baseSurface
	Center lin.V3
	Radius float64
}

// NewSphere returns a sphere centered at center with the given radius.
// ErrDegenerate is returned for a non-positive radius (spec §3).
func NewSphere(center lin.V3, radius float64) (*Sphere, error) {
	if radius <= 0 {
		return nil, ErrDegenerate
	}
	return &Sphere{Center: center, Radius: radius}, nil
}

// Intersect solves the quadratic A*t^2 + B*t + C = 0 with A=1,
// B = 2(p-c).d, C = (p-c).(p-c) - r^2 (spec §4.1). A ray that starts
// outside the sphere (C>0) and points away from it (B>=0) is rejected
// without solving. A ray exactly tangent to the sphere (a single
// repeated root) is treated as a miss rather than a hit. Of the two
// distinct roots, the smallest positive one within maxDist is a
// front-face hit; if neither root qualifies but a root is still
// positive the ray originates inside the sphere and the far root is a
// back-face hit.
func (s *Sphere) Intersect(origin, dir lin.V3, maxDist float64) (float64, VisiblePoint, bool) {
	oc := lin.V3{X: origin.X - s.Center.X, Y: origin.Y - s.Center.Y, Z: origin.Z - s.Center.Z}
	b := 2 * oc.Dot(&dir)
	c := oc.Dot(&oc) - s.Radius*s.Radius
	if c > 0 && b >= 0 {
		return 0, VisiblePoint{}, false
	}
	roots, n := aabb.QuadraticSolveReal(1, b, c)
	if n < 2 {
		// n==1 is an exact tangent (discriminant zero): spec §8 calls
		// for a grazing ray to miss rather than report a degenerate
		// single-point hit.
		return 0, VisiblePoint{}, false
	}

	var t float64
	front := true
	switch {
	case roots[0] > 0 && roots[0] <= maxDist:
		t = roots[0]
	case roots[1] > 0 && roots[1] <= maxDist:
		t = roots[1]
		front = false
	default:
		return 0, VisiblePoint{}, false
	}

	hit := lin.V3{X: origin.X + t*dir.X, Y: origin.Y + t*dir.Y, Z: origin.Z + t*dir.Z}
	normal := lin.V3{X: (hit.X - s.Center.X) / s.Radius, Y: (hit.Y - s.Center.Y) / s.Radius, Z: (hit.Z - s.Center.Z) / s.Radius}

	vp := VisiblePoint{Position: hit, Normal: normal, Front: front, Object: s}
	vp.U = math.Atan2(normal.Y, normal.X)/(2*math.Pi) + 0.5
	vp.V = math.Acos(clamp(normal.Z, -1, 1)) / math.Pi
	viewDir := lin.V3{X: -dir.X, Y: -dir.Y, Z: -dir.Z}
	s.finishHit(&vp, viewDir)
	return t, vp, true
}

func (s *Sphere) BoundingBox() aabb.Box {
	r := lin.V3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	min := lin.V3{X: s.Center.X - r.X, Y: s.Center.Y - r.Y, Z: s.Center.Z - r.Z}
	max := lin.V3{X: s.Center.X + r.X, Y: s.Center.Y + r.Y, Z: s.Center.Z + r.Z}
	return aabb.Box{Min: min, Max: max}
}

func (s *Sphere) ClippedExtent(box aabb.Box) aabb.Box {
	return aabb.Intersect(s.BoundingBox(), box)
}

// Partials returns the partial derivatives of the sphere's parametric
// position with respect to (u, v), undefined (ok=false) exactly at the
// poles where the U partial vanishes.
func (s *Sphere) Partials(vp VisiblePoint) (lin.V3, lin.V3, bool) {
	sinPhi := math.Sin(vp.V * math.Pi)
	if math.Abs(sinPhi) < 1e-9 {
		return lin.V3{}, lin.V3{}, false
	}
	theta := (vp.U - 0.5) * 2 * math.Pi
	du := lin.V3{
		X: -s.Radius * sinPhi * math.Sin(theta) * 2 * math.Pi,
		Y: s.Radius * sinPhi * math.Cos(theta) * 2 * math.Pi,
		Z: 0,
	}
	cosPhi := math.Cos(vp.V * math.Pi)
	dv := lin.V3{
		X: s.Radius * cosPhi * math.Cos(theta) * math.Pi,
		Y: s.Radius * cosPhi * math.Sin(theta) * math.Pi,
		Z: -s.Radius * sinPhi * math.Pi,
	}
	return du, dv, true
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
