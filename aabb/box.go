// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package aabb provides axis-aligned bounding boxes, polynomial root
// solving, and convex-polygon clipping — the small math utilities that
// sit below the kd-tree and the ray/primitive intersection library.
package aabb

import (
	"math"

	"raytrace/math/lin"
)

// Box is an axis-aligned bounding box given by its componentwise minima
// and maxima. Min.X <= Max.X and so on; a degenerate (flat) box, where
// one axis has Min == Max, is legal and expected for planar primitives
// such as triangles and parallelograms.
type Box struct {
	Min lin.V3
	Max lin.V3
}

// Empty returns a box with an inverted extent so that the first Extend
// call always replaces it.
func Empty() Box {
	return Box{
		Min: lin.V3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: lin.V3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// FromPoint returns the degenerate box containing exactly p.
func FromPoint(p lin.V3) Box { return Box{Min: p, Max: p} }

// Extend grows b (in place) to also contain p and returns b.
func (b *Box) Extend(p lin.V3) *Box {
	b.Min.X, b.Max.X = math.Min(b.Min.X, p.X), math.Max(b.Max.X, p.X)
	b.Min.Y, b.Max.Y = math.Min(b.Min.Y, p.Y), math.Max(b.Max.Y, p.Y)
	b.Min.Z, b.Max.Z = math.Min(b.Min.Z, p.Z), math.Max(b.Max.Z, p.Z)
	return b
}

// Union returns the smallest box containing both a and b.
func Union(a, b Box) Box {
	return Box{
		Min: lin.V3{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y), Z: math.Min(a.Min.Z, b.Min.Z)},
		Max: lin.V3{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y), Z: math.Max(a.Max.Z, b.Max.Z)},
	}
}

// Intersect returns the overlap of a and b. The result may be degenerate
// or inverted (Min > Max on some axis) if a and b do not overlap; callers
// that care should check Valid() first.
func Intersect(a, b Box) Box {
	return Box{
		Min: lin.V3{X: math.Max(a.Min.X, b.Min.X), Y: math.Max(a.Min.Y, b.Min.Y), Z: math.Max(a.Min.Z, b.Min.Z)},
		Max: lin.V3{X: math.Min(a.Max.X, b.Max.X), Y: math.Min(a.Max.Y, b.Max.Y), Z: math.Min(a.Max.Z, b.Max.Z)},
	}
}

// Valid returns true if the box has non-negative extent on every axis.
func (b Box) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Axis returns the extent of the box along the given axis (0=X, 1=Y, 2=Z).
func (b Box) Axis(axis int) (min, max float64) {
	switch axis {
	case 0:
		return b.Min.X, b.Max.X
	case 1:
		return b.Min.Y, b.Max.Y
	default:
		return b.Min.Z, b.Max.Z
	}
}

// SurfaceArea returns the total surface area of the box, used directly
// by the kd-tree's surface-area-heuristic split cost. A degenerate
// (flat) box has zero volume but non-zero area, which is the behavior
// the SAH cost expects for planar primitives.
func (b Box) SurfaceArea() float64 {
	dx := b.Max.X - b.Min.X
	dy := b.Max.Y - b.Min.Y
	dz := b.Max.Z - b.Min.Z
	return 2 * (dx*dy + dy*dz + dz*dx)
}

// Center returns the midpoint of the box.
func (b Box) Center() lin.V3 {
	return lin.V3{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2, Z: (b.Min.Z + b.Max.Z) / 2}
}

// Hit intersects a ray (origin o, unit direction d) against the box and
// returns the entry/exit distances along the ray. ok is false if the ray
// misses the box or the box lies entirely behind the ray origin relative
// to maxDist.
func (b Box) Hit(o, d lin.V3, maxDist float64) (tMin, tMax float64, ok bool) {
	tMin, tMax = 0, maxDist
	ro, rd := [3]float64{o.X, o.Y, o.Z}, [3]float64{d.X, d.Y, d.Z}
	bmin, bmax := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}, [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
	for axis := 0; axis < 3; axis++ {
		if rd[axis] == 0 {
			if ro[axis] < bmin[axis] || ro[axis] > bmax[axis] {
				return 0, 0, false
			}
			continue
		}
		invD := 1 / rd[axis]
		t0 := (bmin[axis] - ro[axis]) * invD
		t1 := (bmax[axis] - ro[axis]) * invD
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}
