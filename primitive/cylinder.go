// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package primitive

import (
	"math"

	"raytrace/aabb"
	"raytrace/math/lin"
)

// Cylinder is a right or oblique cylinder of finite height, grounded on
// original_source/Graphics/ViewableCylinder.h. AxisC runs along the
// center axis from the bottom cap to the top cap (unit length times
// Height); AxisA and AxisB span the cross-section and are stored
// pre-scaled by the inverse of their radius, per spec §3.
type Cylinder struct {
	baseSurface
	Center       lin.V3 // bottom cap center
	AxisC        lin.V3 // unit, bottom-to-top
	Height       float64
	AxisA, AxisB lin.V3 // inverse-radius-scaled
	Radius       float64
}

// NewCylinder returns a cylinder with bottom cap center center, unit
// axis axisC running to the top cap at distance height, cross-section
// axes unitA/unitB (orthogonal to axisC and each other), and the given
// radius. ErrDegenerate is returned for a non-positive height or
// radius.
func NewCylinder(center lin.V3, axisC lin.V3, height float64, unitA, unitB lin.V3, radius float64) (*Cylinder, error) {
	if height <= 0 || radius <= 0 {
		return nil, ErrDegenerate
	}
	axisC.Unit()
	return &Cylinder{
		Center: center, AxisC: axisC, Height: height,
		AxisA:  lin.V3{X: unitA.X / radius, Y: unitA.Y / radius, Z: unitA.Z / radius},
		AxisB:  lin.V3{X: unitB.X / radius, Y: unitB.Y / radius, Z: unitB.Z / radius},
		Radius: radius,
	}, nil
}

// Intersect implements the slab-against-caps plus infinite-cylinder
// quadratic described in spec §4.1: the two cap planes give
// (maxFront, minBack) and the cross-section quadratic (using AxisA,
// AxisB in inverse-scaled form) gives up to two roots against the
// infinite cylinder; the two constraints are combined by intersecting
// the front/back intervals.
func (c *Cylinder) Intersect(origin, dir lin.V3, maxDist float64) (float64, VisiblePoint, bool) {
	oc := lin.V3{X: origin.X - c.Center.X, Y: origin.Y - c.Center.Y, Z: origin.Z - c.Center.Z}
	hOc := oc.Dot(&c.AxisC)
	hDir := dir.Dot(&c.AxisC)

	capFront, capBack := -math.Inf(1), math.Inf(1)
	capFrontIsBottom := true
	if hDir == 0 {
		if hOc < 0 || hOc > c.Height {
			return 0, VisiblePoint{}, false
		}
	} else {
		t0 := (0 - hOc) / hDir
		t1 := (c.Height - hOc) / hDir
		if t0 > t1 {
			t0, t1 = t1, t0
			capFrontIsBottom = false
		}
		capFront, capBack = t0, t1
	}

	ocA, ocB := oc.Dot(&c.AxisA), oc.Dot(&c.AxisB)
	dA, dB := dir.Dot(&c.AxisA), dir.Dot(&c.AxisB)
	a := dA*dA + dB*dB
	b := 2 * (ocA*dA + ocB*dB)
	cc := ocA*ocA + ocB*ocB - 1
	var cylFront, cylBack float64
	if a == 0 {
		// The ray runs parallel to the axis: the radial distance never
		// changes, so it either lies entirely inside the infinite
		// cylinder (cc <= 0, unconstrained) or entirely outside it.
		if cc > 0 {
			return 0, VisiblePoint{}, false
		}
		cylFront, cylBack = -math.Inf(1), math.Inf(1)
	} else {
		roots, n := aabb.QuadraticSolveReal(a, b, cc)
		if n == 0 {
			return 0, VisiblePoint{}, false
		}
		cylFront, cylBack = roots[0], roots[0]
		if n == 2 {
			cylBack = roots[1]
		}
	}

	maxFront := math.Max(capFront, cylFront)
	minBack := math.Min(capBack, cylBack)
	if maxFront > minBack {
		return 0, VisiblePoint{}, false
	}

	var t float64
	front := true
	faceNum := 0 // 0 = side, 1 = bottom cap, 2 = top cap
	switch {
	case maxFront > 0 && maxFront <= maxDist:
		t = maxFront
		if maxFront == capFront && capFront != cylFront {
			faceNum = 1
			if !capFrontIsBottom {
				faceNum = 2
			}
		}
	case minBack > 0 && minBack <= maxDist:
		t = minBack
		front = false
	default:
		return 0, VisiblePoint{}, false
	}

	hit := lin.V3{X: origin.X + t*dir.X, Y: origin.Y + t*dir.Y, Z: origin.Z + t*dir.Z}
	var normal lin.V3
	var u, v float64
	if faceNum == 0 {
		hA, hB := ocA+t*dA, ocB+t*dB
		normal = lin.V3{
			X: hA*c.AxisA.X + hB*c.AxisB.X,
			Y: hA*c.AxisA.Y + hB*c.AxisB.Y,
			Z: hA*c.AxisA.Z + hB*c.AxisB.Z,
		}
		normal.Unit()
		u = math.Atan2(hB, hA)/(2*math.Pi) + 0.5
		v = (hOc + t*hDir) / c.Height
	} else {
		normal = c.AxisC
		if faceNum == 1 {
			normal = lin.V3{X: -normal.X, Y: -normal.Y, Z: -normal.Z}
		}
		hA, hB := ocA+t*dA, ocB+t*dB
		u = hA*0.5 + 0.5
		v = hB*0.5 + 0.5
	}

	vp := VisiblePoint{Position: hit, Normal: normal, U: u, V: v, Face: faceNum, Front: front, Object: c}
	viewDir := lin.V3{X: -dir.X, Y: -dir.Y, Z: -dir.Z}
	c.finishHit(&vp, viewDir)
	return t, vp, true
}

func (c *Cylinder) BoundingBox() aabb.Box {
	unitA := lin.V3{X: c.AxisA.X * c.Radius, Y: c.AxisA.Y * c.Radius, Z: c.AxisA.Z * c.Radius}
	unitB := lin.V3{X: c.AxisB.X * c.Radius, Y: c.AxisB.Y * c.Radius, Z: c.AxisB.Z * c.Radius}
	top := lin.V3{X: c.Center.X + c.AxisC.X*c.Height, Y: c.Center.Y + c.AxisC.Y*c.Height, Z: c.Center.Z + c.AxisC.Z*c.Height}
	box := aabb.Empty()
	for _, center := range []lin.V3{c.Center, top} {
		for _, sa := range []float64{-1, 1} {
			for _, sb := range []float64{-1, 1} {
				box.Extend(lin.V3{
					X: center.X + sa*unitA.X + sb*unitB.X,
					Y: center.Y + sa*unitA.Y + sb*unitB.Y,
					Z: center.Z + sa*unitA.Z + sb*unitB.Z,
				})
			}
		}
	}
	return box
}

func (c *Cylinder) ClippedExtent(box aabb.Box) aabb.Box {
	return aabb.Intersect(c.BoundingBox(), box)
}

// Partials is undefined on the cap faces (the parametrization there is
// a flat disk whose partials are not orthogonal to the cylinder's side
// partials); only side-face partials are returned.
func (c *Cylinder) Partials(vp VisiblePoint) (lin.V3, lin.V3, bool) {
	if vp.Face != 0 {
		return lin.V3{}, lin.V3{}, false
	}
	theta := (vp.U - 0.5) * 2 * math.Pi
	unitA := lin.V3{X: c.AxisA.X * c.Radius, Y: c.AxisA.Y * c.Radius, Z: c.AxisA.Z * c.Radius}
	unitB := lin.V3{X: c.AxisB.X * c.Radius, Y: c.AxisB.Y * c.Radius, Z: c.AxisB.Z * c.Radius}
	du := lin.V3{
		X: (-unitA.X*math.Sin(theta) + unitB.X*math.Cos(theta)) * 2 * math.Pi,
		Y: (-unitA.Y*math.Sin(theta) + unitB.Y*math.Cos(theta)) * 2 * math.Pi,
		Z: (-unitA.Z*math.Sin(theta) + unitB.Z*math.Cos(theta)) * 2 * math.Pi,
	}
	dv := lin.V3{X: c.AxisC.X * c.Height, Y: c.AxisC.Y * c.Height, Z: c.AxisC.Z * c.Height}
	return du, dv, true
}
