// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package primitive

import (
	"raytrace/aabb"
	"raytrace/math/lin"
)

// Triangle is a flat triangular surface with vertices A, B, C, grounded
// on original_source/Graphics/ViewableTriangle.h. Ubeta and Ugamma are
// precomputed so the barycentric coordinates of a hit can be solved in
// constant time (spec §4.1).
type Triangle struct {
	baseSurface
	A, B, C      lin.V3
	Normal       lin.V3 // unit
	planeConst   float64
	Ubeta, Ugamma lin.V3
}

// NewTriangle returns a triangle with the given vertices.
// ErrDegenerate is returned if the vertices are collinear (zero area).
func NewTriangle(a, b, c lin.V3) (*Triangle, error) {
	e1 := lin.V3{X: b.X - a.X, Y: b.Y - a.Y, Z: b.Z - a.Z}
	e2 := lin.V3{X: c.X - a.X, Y: c.Y - a.Y, Z: c.Z - a.Z}
	var n lin.V3
	n.Cross(&e1, &e2)
	areaSq := n.Dot(&n)
	if areaSq < 1e-18 {
		return nil, ErrDegenerate
	}
	n.Unit()

	// Solve [e1 e2]^T [beta;gamma] = (p-a) for beta, gamma using the
	// standard 2x2-from-3D least-squares inverse (Cramer's rule on the
	// normal equations), so Ubeta.(p-a) = beta and Ugamma.(p-a) = gamma.
	e1e1, e1e2, e2e2 := e1.Dot(&e1), e1.Dot(&e2), e2.Dot(&e2)
	det := e1e1*e2e2 - e1e2*e1e2
	invDet := 1 / det
	ubeta := lin.V3{
		X: (e2e2*e1.X - e1e2*e2.X) * invDet,
		Y: (e2e2*e1.Y - e1e2*e2.Y) * invDet,
		Z: (e2e2*e1.Z - e1e2*e2.Z) * invDet,
	}
	ugamma := lin.V3{
		X: (e1e1*e2.X - e1e2*e1.X) * invDet,
		Y: (e1e1*e2.Y - e1e2*e1.Y) * invDet,
		Z: (e1e1*e2.Z - e1e2*e1.Z) * invDet,
	}

	return &Triangle{
		A: a, B: b, C: c, Normal: n, planeConst: n.Dot(&a),
		Ubeta: ubeta, Ugamma: ugamma,
	}, nil
}

func (tr *Triangle) Intersect(origin, dir lin.V3, maxDist float64) (float64, VisiblePoint, bool) {
	denom := tr.Normal.Dot(&dir)
	if denom == 0 {
		return 0, VisiblePoint{}, false
	}
	t := (tr.planeConst - tr.Normal.Dot(&origin)) / denom
	if t <= 0 || t > maxDist {
		return 0, VisiblePoint{}, false
	}
	hit := lin.V3{X: origin.X + t*dir.X, Y: origin.Y + t*dir.Y, Z: origin.Z + t*dir.Z}
	rel := lin.V3{X: hit.X - tr.A.X, Y: hit.Y - tr.A.Y, Z: hit.Z - tr.A.Z}
	beta := tr.Ubeta.Dot(&rel)
	gamma := tr.Ugamma.Dot(&rel)
	if beta < 0 || gamma < 0 || beta+gamma > 1 {
		return 0, VisiblePoint{}, false
	}

	front := denom < 0
	normal := tr.Normal
	vp := VisiblePoint{Position: hit, Normal: normal, U: beta, V: gamma, Front: front, Object: tr}
	viewDir := lin.V3{X: -dir.X, Y: -dir.Y, Z: -dir.Z}
	tr.finishHit(&vp, viewDir)
	return t, vp, true
}

func (tr *Triangle) BoundingBox() aabb.Box {
	return aabb.BoundingBox([]lin.V3{tr.A, tr.B, tr.C})
}

func (tr *Triangle) ClippedExtent(box aabb.Box) aabb.Box {
	clipped := aabb.ClipAgainstBox([]lin.V3{tr.A, tr.B, tr.C}, box)
	if len(clipped) == 0 {
		return aabb.Empty()
	}
	return aabb.BoundingBox(clipped)
}

// Partials returns the two (constant) edge vectors as the partials of
// the barycentric parametrization; always defined for a non-degenerate
// triangle.
func (tr *Triangle) Partials(vp VisiblePoint) (lin.V3, lin.V3, bool) {
	du := lin.V3{X: tr.B.X - tr.A.X, Y: tr.B.Y - tr.A.Y, Z: tr.B.Z - tr.A.Z}
	dv := lin.V3{X: tr.C.X - tr.A.X, Y: tr.C.Y - tr.A.Y, Z: tr.C.Z - tr.A.Z}
	return du, dv, true
}
