// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package primitive

import (
	"raytrace/aabb"
	"raytrace/math/lin"
)

// Parallelogram is a flat quadrilateral with corner A and edge vectors
// EdgeU, EdgeV (so the four vertices are A, A+EdgeU, A+EdgeU+EdgeV,
// A+EdgeV), grounded on
// original_source/Graphics/ViewableParallelogram.h.
type Parallelogram struct {
	baseSurface
	A                  lin.V3
	EdgeU, EdgeV       lin.V3
	Normal             lin.V3 // unit
	planeConst         float64
	Ubeta, Ugamma      lin.V3
}

// NewParallelogram returns a parallelogram anchored at a with edges
// edgeU, edgeV. ErrDegenerate is returned if the edges are parallel
// (zero area).
func NewParallelogram(a, edgeU, edgeV lin.V3) (*Parallelogram, error) {
	var n lin.V3
	n.Cross(&edgeU, &edgeV)
	if n.Dot(&n) < 1e-18 {
		return nil, ErrDegenerate
	}
	n.Unit()

	uu, uv, vv := edgeU.Dot(&edgeU), edgeU.Dot(&edgeV), edgeV.Dot(&edgeV)
	det := uu*vv - uv*uv
	invDet := 1 / det
	ubeta := lin.V3{
		X: (vv*edgeU.X - uv*edgeV.X) * invDet,
		Y: (vv*edgeU.Y - uv*edgeV.Y) * invDet,
		Z: (vv*edgeU.Z - uv*edgeV.Z) * invDet,
	}
	ugamma := lin.V3{
		X: (uu*edgeV.X - uv*edgeU.X) * invDet,
		Y: (uu*edgeV.Y - uv*edgeU.Y) * invDet,
		Z: (uu*edgeV.Z - uv*edgeU.Z) * invDet,
	}
	return &Parallelogram{
		A: a, EdgeU: edgeU, EdgeV: edgeV, Normal: n, planeConst: n.Dot(&a),
		Ubeta: ubeta, Ugamma: ugamma,
	}, nil
}

func (pg *Parallelogram) Intersect(origin, dir lin.V3, maxDist float64) (float64, VisiblePoint, bool) {
	denom := pg.Normal.Dot(&dir)
	if denom == 0 {
		return 0, VisiblePoint{}, false
	}
	t := (pg.planeConst - pg.Normal.Dot(&origin)) / denom
	if t <= 0 || t > maxDist {
		return 0, VisiblePoint{}, false
	}
	hit := lin.V3{X: origin.X + t*dir.X, Y: origin.Y + t*dir.Y, Z: origin.Z + t*dir.Z}
	rel := lin.V3{X: hit.X - pg.A.X, Y: hit.Y - pg.A.Y, Z: hit.Z - pg.A.Z}
	u := pg.Ubeta.Dot(&rel)
	v := pg.Ugamma.Dot(&rel)
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return 0, VisiblePoint{}, false
	}

	front := denom < 0
	vp := VisiblePoint{Position: hit, Normal: pg.Normal, U: u, V: v, Front: front, Object: pg}
	viewDir := lin.V3{X: -dir.X, Y: -dir.Y, Z: -dir.Z}
	pg.finishHit(&vp, viewDir)
	return t, vp, true
}

func (pg *Parallelogram) corners() []lin.V3 {
	return []lin.V3{
		pg.A,
		{X: pg.A.X + pg.EdgeU.X, Y: pg.A.Y + pg.EdgeU.Y, Z: pg.A.Z + pg.EdgeU.Z},
		{X: pg.A.X + pg.EdgeU.X + pg.EdgeV.X, Y: pg.A.Y + pg.EdgeU.Y + pg.EdgeV.Y, Z: pg.A.Z + pg.EdgeU.Z + pg.EdgeV.Z},
		{X: pg.A.X + pg.EdgeV.X, Y: pg.A.Y + pg.EdgeV.Y, Z: pg.A.Z + pg.EdgeV.Z},
	}
}

func (pg *Parallelogram) BoundingBox() aabb.Box {
	return aabb.BoundingBox(pg.corners())
}

func (pg *Parallelogram) ClippedExtent(box aabb.Box) aabb.Box {
	clipped := aabb.ClipAgainstBox(pg.corners(), box)
	if len(clipped) == 0 {
		return aabb.Empty()
	}
	return aabb.BoundingBox(clipped)
}

// Partials returns the (constant) edge vectors, always defined for a
// non-degenerate parallelogram.
func (pg *Parallelogram) Partials(vp VisiblePoint) (lin.V3, lin.V3, bool) {
	return pg.EdgeU, pg.EdgeV, true
}
