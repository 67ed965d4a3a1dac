// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package primitive

import (
	"math"

	"raytrace/aabb"
	"raytrace/math/lin"
)

// Parallelepiped is a (possibly non-axis-aligned) box spanned by a
// corner and three edge vectors, grounded on
// original_source/Graphics/ViewableParallelepiped.h. Its slab helper is
// also used by the Bézier patches' own bounding-parallelepiped type,
// bezierBox.
type Parallelepiped struct {
	baseSurface
	Corner             lin.V3
	EdgeA, EdgeB, EdgeC lin.V3
	normalA, normalB, normalC lin.V3 // unit face normals
}

// NewParallelepiped returns a parallelepiped anchored at corner with
// edges a, b, c. ErrDegenerate is returned if the edges are coplanar
// (zero volume).
func NewParallelepiped(corner, a, b, c lin.V3) (*Parallelepiped, error) {
	var nA, nB, nC lin.V3
	nA.Cross(&b, &c)
	nB.Cross(&c, &a)
	nC.Cross(&a, &b)
	vol := nA.Dot(&a)
	if math.Abs(vol) < 1e-18 {
		return nil, ErrDegenerate
	}
	nA.Unit()
	nB.Unit()
	nC.Unit()
	return &Parallelepiped{Corner: corner, EdgeA: a, EdgeB: b, EdgeC: c, normalA: nA, normalB: nB, normalC: nC}, nil
}

// slab intersects the ray against the pair of parallel planes with
// normal n separated along n by distance extent, anchored so that one
// plane passes through origin-relative corner c0 and the other through
// c0+extent (the edge vector the normal is conjugate to).
func slab(o, d, n, c0 lin.V3, extent lin.V3) (near, far float64, ok bool) {
	denom := n.Dot(&d)
	rel := lin.V3{X: o.X - c0.X, Y: o.Y - c0.Y, Z: o.Z - c0.Z}
	d0 := n.Dot(&rel)
	d1 := d0 - n.Dot(&extent)
	if denom == 0 {
		if (d0 >= 0) != (d1 >= 0) {
			return -math.Inf(1), math.Inf(1), true
		}
		return 0, 0, false
	}
	t0 := -d0 / denom
	t1 := -d1 / denom
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}

func (pp *Parallelepiped) Intersect(origin, dir lin.V3, maxDist float64) (float64, VisiblePoint, bool) {
	nearA, farA, okA := slab(origin, dir, pp.normalA, pp.Corner, pp.EdgeA)
	nearB, farB, okB := slab(origin, dir, pp.normalB, pp.Corner, pp.EdgeB)
	nearC, farC, okC := slab(origin, dir, pp.normalC, pp.Corner, pp.EdgeC)
	if !okA || !okB || !okC {
		return 0, VisiblePoint{}, false
	}

	maxFront := math.Max(nearA, math.Max(nearB, nearC))
	minBack := math.Min(farA, math.Min(farB, farC))
	if maxFront > minBack {
		return 0, VisiblePoint{}, false
	}

	var t float64
	var faceNormal lin.V3
	faceNum := 0
	front := true
	switch {
	case maxFront > 0 && maxFront <= maxDist:
		t = maxFront
		switch maxFront {
		case nearA:
			faceNormal, faceNum = pp.normalA, 0
		case nearB:
			faceNormal, faceNum = pp.normalB, 2
		default:
			faceNormal, faceNum = pp.normalC, 4
		}
		if faceNormal.Dot(&dir) > 0 {
			faceNormal = lin.V3{X: -faceNormal.X, Y: -faceNormal.Y, Z: -faceNormal.Z}
		}
	case minBack > 0 && minBack <= maxDist:
		t = minBack
		front = false
		switch minBack {
		case farA:
			faceNormal, faceNum = pp.normalA, 1
		case farB:
			faceNormal, faceNum = pp.normalB, 3
		default:
			faceNormal, faceNum = pp.normalC, 5
		}
	default:
		return 0, VisiblePoint{}, false
	}

	hit := lin.V3{X: origin.X + t*dir.X, Y: origin.Y + t*dir.Y, Z: origin.Z + t*dir.Z}
	vp := VisiblePoint{Position: hit, Normal: faceNormal, Face: faceNum, Front: front, Object: pp}
	viewDir := lin.V3{X: -dir.X, Y: -dir.Y, Z: -dir.Z}
	pp.finishHit(&vp, viewDir)
	return t, vp, true
}

func (pp *Parallelepiped) corners() []lin.V3 {
	c, a, b, cc := pp.Corner, pp.EdgeA, pp.EdgeB, pp.EdgeC
	pts := make([]lin.V3, 0, 8)
	for _, sa := range []float64{0, 1} {
		for _, sb := range []float64{0, 1} {
			for _, sc := range []float64{0, 1} {
				pts = append(pts, lin.V3{
					X: c.X + sa*a.X + sb*b.X + sc*cc.X,
					Y: c.Y + sa*a.Y + sb*b.Y + sc*cc.Y,
					Z: c.Z + sa*a.Z + sb*b.Z + sc*cc.Z,
				})
			}
		}
	}
	return pts
}

func (pp *Parallelepiped) BoundingBox() aabb.Box {
	return aabb.BoundingBox(pp.corners())
}

func (pp *Parallelepiped) ClippedExtent(box aabb.Box) aabb.Box {
	clipped := aabb.ClipAgainstBox(pp.corners(), box)
	if len(clipped) == 0 {
		return aabb.Empty()
	}
	return aabb.BoundingBox(clipped)
}

// Partials returns the two edge vectors adjacent to the face that was
// hit.
func (pp *Parallelepiped) Partials(vp VisiblePoint) (lin.V3, lin.V3, bool) {
	switch vp.Face {
	case 0, 1:
		return pp.EdgeB, pp.EdgeC, true
	case 2, 3:
		return pp.EdgeC, pp.EdgeA, true
	default:
		return pp.EdgeA, pp.EdgeB, true
	}
}
