// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package primitive

import (
	"math"

	"raytrace/aabb"
	"raytrace/math/lin"
)

// Cone is a right or oblique cone closed by a base cap, grounded on
// original_source/Graphics/ViewableCone.h. The apex sits at distance
// Height along AxisC past the base center; the base radius is 1/|AxisA|
// (AxisA, AxisB inverse-radius-scaled as with Cylinder), shrinking
// linearly to zero at the apex.
type Cone struct {
	baseSurface
	Center       lin.V3 // base cap center
	AxisC        lin.V3 // unit, base-to-apex
	Height       float64
	AxisA, AxisB lin.V3 // inverse-radius-scaled, at the base
}

// NewCone returns a cone with base center center, apex at
// center+axisC*height, cross-section axes unitA/unitB at the base, and
// base radius radius. ErrDegenerate is returned for a non-positive
// height or radius.
func NewCone(center lin.V3, axisC lin.V3, height float64, unitA, unitB lin.V3, radius float64) (*Cone, error) {
	if height <= 0 || radius <= 0 {
		return nil, ErrDegenerate
	}
	axisC.Unit()
	return &Cone{
		Center: center, AxisC: axisC, Height: height,
		AxisA: lin.V3{X: unitA.X / radius, Y: unitA.Y / radius, Z: unitA.Z / radius},
		AxisB: lin.V3{X: unitB.X / radius, Y: unitB.Y / radius, Z: unitB.Z / radius},
	}, nil
}

// Intersect combines a slab test against the base plane with a
// quadratic for the infinite double cone, then rejects roots on the
// dual cone beyond the apex (spec §4.1): `p.axis > apex.axis && d.axis
// >= 0` misses, since such a ray travels away from the apex on the far
// side of the double cone.
func (k *Cone) Intersect(origin, dir lin.V3, maxDist float64) (float64, VisiblePoint, bool) {
	oc := lin.V3{X: origin.X - k.Center.X, Y: origin.Y - k.Center.Y, Z: origin.Z - k.Center.Z}
	hOc := oc.Dot(&k.AxisC)
	hDir := dir.Dot(&k.AxisC)

	baseFront, baseBack := -math.Inf(1), math.Inf(1)
	if hDir == 0 {
		if hOc < 0 || hOc > k.Height {
			return 0, VisiblePoint{}, false
		}
	} else {
		t0 := (0 - hOc) / hDir
		t1 := (k.Height - hOc) / hDir
		if hDir > 0 {
			baseFront, baseBack = t0, t1
		} else {
			baseFront, baseBack = t1, t0
		}
	}

	// Cross-section radius at height h (0 at base, shrinking to 0 at
	// apex height k.Height): scale = 1 - h/Height, so the implicit
	// surface is ocA'^2+ocB'^2 = scale^2 where ocA' = oc.AxisA etc.
	ocA, ocB := oc.Dot(&k.AxisA), oc.Dot(&k.AxisB)
	dA, dB := dir.Dot(&k.AxisA), dir.Dot(&k.AxisB)
	invH := 1 / k.Height
	// (ocA+t dA)^2 + (ocB+t dB)^2 - (1 - (hOc+t hDir)*invH)^2 = 0
	s0 := 1 - hOc*invH
	sT := -hDir * invH
	a := dA*dA + dB*dB - sT*sT
	b := 2*(ocA*dA+ocB*dB) - 2*s0*sT
	c := ocA*ocA + ocB*ocB - s0*s0
	roots, n := aabb.QuadraticSolveReal(a, b, c)
	if n == 0 {
		return 0, VisiblePoint{}, false
	}

	// Reject roots on the dual cone beyond the apex.
	valid := make([]float64, 0, 2)
	for i := 0; i < n; i++ {
		h := hOc + roots[i]*hDir
		if h > k.Height && hDir >= 0 {
			continue
		}
		valid = append(valid, roots[i])
	}
	if len(valid) == 0 {
		return 0, VisiblePoint{}, false
	}
	coneFront, coneBack := valid[0], valid[0]
	if len(valid) == 2 {
		if valid[0] > valid[1] {
			coneFront, coneBack = valid[1], valid[0]
		} else {
			coneBack = valid[1]
		}
	}

	maxFront := math.Max(baseFront, coneFront)
	minBack := math.Min(baseBack, coneBack)
	if maxFront > minBack {
		return 0, VisiblePoint{}, false
	}

	var t float64
	front := true
	onBase := false
	switch {
	case maxFront > 0 && maxFront <= maxDist:
		t = maxFront
		onBase = maxFront == baseFront && baseFront != coneFront
	case minBack > 0 && minBack <= maxDist:
		t = minBack
		front = false
	default:
		return 0, VisiblePoint{}, false
	}

	hit := lin.V3{X: origin.X + t*dir.X, Y: origin.Y + t*dir.Y, Z: origin.Z + t*dir.Z}
	var normal lin.V3
	faceNum := 0
	if onBase {
		faceNum = 1
		normal = lin.V3{X: -k.AxisC.X, Y: -k.AxisC.Y, Z: -k.AxisC.Z}
	} else {
		hA, hB := ocA+t*dA, ocB+t*dB
		h := hOc + t*hDir
		slope := invH // d(scale)/dh = -invH, outward component along axis has this coefficient
		normal = lin.V3{
			X: hA*k.AxisA.X + hB*k.AxisB.X + slope*(1-h*invH)*k.AxisC.X,
			Y: hA*k.AxisA.Y + hB*k.AxisB.Y + slope*(1-h*invH)*k.AxisC.Y,
			Z: hA*k.AxisA.Z + hB*k.AxisB.Z + slope*(1-h*invH)*k.AxisC.Z,
		}
		normal.Unit()
	}

	vp := VisiblePoint{Position: hit, Normal: normal, Face: faceNum, Front: front, Object: k}
	if !onBase {
		hA, hB := ocA+t*dA, ocB+t*dB
		vp.U = math.Atan2(hB, hA)/(2*math.Pi) + 0.5
		vp.V = (hOc + t*hDir) / k.Height
	}
	viewDir := lin.V3{X: -dir.X, Y: -dir.Y, Z: -dir.Z}
	k.finishHit(&vp, viewDir)
	return t, vp, true
}

func (k *Cone) BoundingBox() aabb.Box {
	unitA := lin.V3{X: k.AxisA.X, Y: k.AxisA.Y, Z: k.AxisA.Z}
	// Undo the inverse-radius scaling to recover the unit cross-section
	// vectors scaled back up by their own length.
	lenA := 1 / unitA.Len()
	unitA.Unit()
	unitA = lin.V3{X: unitA.X * lenA, Y: unitA.Y * lenA, Z: unitA.Z * lenA}
	unitB := lin.V3{X: k.AxisB.X, Y: k.AxisB.Y, Z: k.AxisB.Z}
	lenB := 1 / unitB.Len()
	unitB.Unit()
	unitB = lin.V3{X: unitB.X * lenB, Y: unitB.Y * lenB, Z: unitB.Z * lenB}

	apex := lin.V3{X: k.Center.X + k.AxisC.X*k.Height, Y: k.Center.Y + k.AxisC.Y*k.Height, Z: k.Center.Z + k.AxisC.Z*k.Height}
	box := aabb.FromPoint(apex)
	for _, sa := range []float64{-1, 1} {
		for _, sb := range []float64{-1, 1} {
			box.Extend(lin.V3{
				X: k.Center.X + sa*unitA.X + sb*unitB.X,
				Y: k.Center.Y + sa*unitA.Y + sb*unitB.Y,
				Z: k.Center.Z + sa*unitA.Z + sb*unitB.Z,
			})
		}
	}
	return box
}

func (k *Cone) ClippedExtent(box aabb.Box) aabb.Box {
	return aabb.Intersect(k.BoundingBox(), box)
}

// Partials is undefined (ok=false) at the apex and on the base cap; the
// apex is a genuine parametric singularity (the u partial vanishes)
// and the base cap uses a disjoint flat parametrization.
func (k *Cone) Partials(vp VisiblePoint) (lin.V3, lin.V3, bool) {
	if vp.Face != 0 || vp.V >= 1-1e-9 {
		return lin.V3{}, lin.V3{}, false
	}
	theta := (vp.U - 0.5) * 2 * math.Pi
	scale := 1 - vp.V
	unitA := lin.V3{X: k.AxisA.X, Y: k.AxisA.Y, Z: k.AxisA.Z}
	lenA := 1 / unitA.Len()
	unitA.Unit()
	unitB := lin.V3{X: k.AxisB.X, Y: k.AxisB.Y, Z: k.AxisB.Z}
	lenB := 1 / unitB.Len()
	unitB.Unit()
	du := lin.V3{
		X: scale * lenA * (-math.Sin(theta)) * 2 * math.Pi * unitA.X,
		Y: scale * lenA * (-math.Sin(theta)) * 2 * math.Pi * unitA.Y,
		Z: scale * lenA * (-math.Sin(theta)) * 2 * math.Pi * unitA.Z,
	}
	dv := lin.V3{
		X: k.AxisC.X*k.Height - lenA*math.Cos(theta)*unitA.X - lenB*math.Sin(theta)*unitB.X,
		Y: k.AxisC.Y*k.Height - lenA*math.Cos(theta)*unitA.Y - lenB*math.Sin(theta)*unitB.Y,
		Z: k.AxisC.Z*k.Height - lenA*math.Cos(theta)*unitA.Z - lenB*math.Sin(theta)*unitB.Z,
	}
	return du, dv, true
}
