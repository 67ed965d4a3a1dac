// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package aabb

import "raytrace/math/lin"

// ClipAgainstPlane clips a convex polygon (given as an ordered vertex
// loop) against the half-space normal.p <= constant using Sutherland-
// Hodgman. Vertices exactly on the plane are treated as inside, so a
// polygon lying exactly on the clip plane is retained unchanged rather
// than discarded (spec boundary behavior).
func ClipAgainstPlane(verts []lin.V3, normal lin.V3, constant float64) []lin.V3 {
	if len(verts) == 0 {
		return verts
	}
	out := make([]lin.V3, 0, len(verts)+1)
	n := len(verts)
	for i := 0; i < n; i++ {
		cur := verts[i]
		prev := verts[(i-1+n)%n]
		curIn := normal.Dot(&cur) <= constant
		prevIn := normal.Dot(&prev) <= constant
		if curIn != prevIn {
			t := edgeIntersect(prev, cur, normal, constant)
			out = append(out, t)
		}
		if curIn {
			out = append(out, cur)
		}
	}
	return out
}

// edgeIntersect returns the point where segment a->b crosses the plane
// normal.p == constant.
func edgeIntersect(a, b lin.V3, normal lin.V3, constant float64) lin.V3 {
	da := normal.Dot(&a) - constant
	db := normal.Dot(&b) - constant
	denom := da - db
	if denom == 0 {
		return a
	}
	t := da / denom
	return lin.V3{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
		Z: a.Z + t*(b.Z-a.Z),
	}
}

// ClipAgainstSlab clips a convex polygon against the infinite slab
// bounded by normal.p == min and normal.p == max. A zero-thickness slab
// (min == max) discards the polygon entirely unless the polygon already
// lies exactly in that plane, per spec boundary behavior.
func ClipAgainstSlab(verts []lin.V3, normal lin.V3, min, max float64) []lin.V3 {
	if min == max {
		for _, v := range verts {
			if !lin.Aeq(normal.Dot(&v), min) {
				return nil
			}
		}
		return verts
	}
	verts = ClipAgainstPlane(verts, normal, max)
	negN := lin.V3{X: -normal.X, Y: -normal.Y, Z: -normal.Z}
	verts = ClipAgainstPlane(verts, negN, -min)
	return verts
}

// ClipAgainstBox clips a convex polygon against an axis-aligned box by
// successively clipping against its six faces. Used by the kd-tree
// builder's clipped-extent callback (spec §4.3) to tighten a triangle's
// or parallelogram's per-child bounding box during a split.
func ClipAgainstBox(verts []lin.V3, box Box) []lin.V3 {
	axes := [3]lin.V3{{X: 1}, {Y: 1}, {Z: 1}}
	for axis := 0; axis < 3 && len(verts) > 0; axis++ {
		min, max := box.Axis(axis)
		verts = ClipAgainstSlab(verts, axes[axis], min, max)
	}
	return verts
}

// BoundingBox returns the axis-aligned bounding box of a vertex set.
func BoundingBox(verts []lin.V3) Box {
	b := Empty()
	for _, v := range verts {
		b.Extend(v)
	}
	return b
}
