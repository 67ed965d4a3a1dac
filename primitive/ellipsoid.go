// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package primitive

import (
	"math"

	"raytrace/aabb"
	"raytrace/math/lin"
)

// Ellipsoid is a sphere stretched along three orthogonal axes, grounded
// on original_source/Graphics/ViewableEllipsoid.h. AxisA, AxisB, AxisC
// are stored pre-scaled by the inverse of their radius (spec §3), so
// that the implicit surface is `|(p-center).AxisA|^2 + ... - 1 == 0`
// and the ray/ellipsoid quadratic has the same shape as the sphere's.
type Ellipsoid struct {
	baseSurface
	Center                   lin.V3
	AxisA, AxisB, AxisC      lin.V3 // inverse-radius-scaled, mutually orthogonal
	RadiusA, RadiusB, RadiusC float64
}

// NewEllipsoid returns an ellipsoid centered at center with unit axes
// unitA, unitB, unitC (assumed mutually orthogonal and unit length) and
// radii radiusA/B/C along those axes. ErrDegenerate is returned if any
// radius is non-positive.
func NewEllipsoid(center lin.V3, unitA, unitB, unitC lin.V3, radiusA, radiusB, radiusC float64) (*Ellipsoid, error) {
	if radiusA <= 0 || radiusB <= 0 || radiusC <= 0 {
		return nil, ErrDegenerate
	}
	return &Ellipsoid{
		Center:  center,
		AxisA:   lin.V3{X: unitA.X / radiusA, Y: unitA.Y / radiusA, Z: unitA.Z / radiusA},
		AxisB:   lin.V3{X: unitB.X / radiusB, Y: unitB.Y / radiusB, Z: unitB.Z / radiusB},
		AxisC:   lin.V3{X: unitC.X / radiusC, Y: unitC.Y / radiusC, Z: unitC.Z / radiusC},
		RadiusA: radiusA, RadiusB: radiusB, RadiusC: radiusC,
	}, nil
}

func (e *Ellipsoid) Intersect(origin, dir lin.V3, maxDist float64) (float64, VisiblePoint, bool) {
	oc := lin.V3{X: origin.X - e.Center.X, Y: origin.Y - e.Center.Y, Z: origin.Z - e.Center.Z}
	ocA, ocB, ocC := oc.Dot(&e.AxisA), oc.Dot(&e.AxisB), oc.Dot(&e.AxisC)
	dA, dB, dC := dir.Dot(&e.AxisA), dir.Dot(&e.AxisB), dir.Dot(&e.AxisC)

	a := dA*dA + dB*dB + dC*dC
	b := 2 * (ocA*dA + ocB*dB + ocC*dC)
	c := ocA*ocA + ocB*ocB + ocC*ocC - 1
	if c > 0 && b >= 0 {
		return 0, VisiblePoint{}, false
	}
	roots, n := aabb.QuadraticSolveReal(a, b, c)
	if n == 0 {
		return 0, VisiblePoint{}, false
	}

	var t float64
	front := true
	switch {
	case n == 2 && roots[0] > 0 && roots[0] <= maxDist:
		t = roots[0]
	case n == 2 && roots[1] > 0 && roots[1] <= maxDist:
		t = roots[1]
		front = false
	case roots[0] > 0 && roots[0] <= maxDist:
		t = roots[0]
	default:
		return 0, VisiblePoint{}, false
	}

	hit := lin.V3{X: origin.X + t*dir.X, Y: origin.Y + t*dir.Y, Z: origin.Z + t*dir.Z}
	hcA, hB, hC := ocA+t*dA, ocB+t*dB, ocC+t*dC
	normal := lin.V3{
		X: hcA*e.AxisA.X + hB*e.AxisB.X + hC*e.AxisC.X,
		Y: hcA*e.AxisA.Y + hB*e.AxisB.Y + hC*e.AxisC.Y,
		Z: hcA*e.AxisA.Z + hB*e.AxisB.Z + hC*e.AxisC.Z,
	}
	normal.Unit()

	vp := VisiblePoint{Position: hit, Normal: normal, Front: front, Object: e}
	vp.U = math.Atan2(hB, hcA)/(2*math.Pi) + 0.5
	vp.V = math.Acos(clamp(hC, -1, 1)) / math.Pi
	viewDir := lin.V3{X: -dir.X, Y: -dir.Y, Z: -dir.Z}
	e.finishHit(&vp, viewDir)
	return t, vp, true
}

func (e *Ellipsoid) BoundingBox() aabb.Box {
	unitA := lin.V3{X: e.AxisA.X * e.RadiusA, Y: e.AxisA.Y * e.RadiusA, Z: e.AxisA.Z * e.RadiusA}
	unitB := lin.V3{X: e.AxisB.X * e.RadiusB, Y: e.AxisB.Y * e.RadiusB, Z: e.AxisB.Z * e.RadiusB}
	unitC := lin.V3{X: e.AxisC.X * e.RadiusC, Y: e.AxisC.Y * e.RadiusC, Z: e.AxisC.Z * e.RadiusC}
	box := aabb.Empty()
	for _, sa := range []float64{-1, 1} {
		for _, sb := range []float64{-1, 1} {
			for _, sc := range []float64{-1, 1} {
				p := lin.V3{
					X: e.Center.X + sa*unitA.X*e.RadiusA + sb*unitB.X*e.RadiusB + sc*unitC.X*e.RadiusC,
					Y: e.Center.Y + sa*unitA.Y*e.RadiusA + sb*unitB.Y*e.RadiusB + sc*unitC.Y*e.RadiusC,
					Z: e.Center.Z + sa*unitA.Z*e.RadiusA + sb*unitB.Z*e.RadiusB + sc*unitC.Z*e.RadiusC,
				}
				box.Extend(p)
			}
		}
	}
	return box
}

func (e *Ellipsoid) ClippedExtent(box aabb.Box) aabb.Box {
	return aabb.Intersect(e.BoundingBox(), box)
}

// Partials is undefined (ok=false) at the poles of the spherical
// parametrization, mirroring Sphere.Partials.
func (e *Ellipsoid) Partials(vp VisiblePoint) (lin.V3, lin.V3, bool) {
	sinPhi := math.Sin(vp.V * math.Pi)
	if math.Abs(sinPhi) < 1e-9 {
		return lin.V3{}, lin.V3{}, false
	}
	theta := (vp.U - 0.5) * 2 * math.Pi
	cosPhi := math.Cos(vp.V * math.Pi)
	unitA := lin.V3{X: e.AxisA.X * e.RadiusA, Y: e.AxisA.Y * e.RadiusA, Z: e.AxisA.Z * e.RadiusA}
	unitB := lin.V3{X: e.AxisB.X * e.RadiusB, Y: e.AxisB.Y * e.RadiusB, Z: e.AxisB.Z * e.RadiusB}
	unitC := lin.V3{X: e.AxisC.X * e.RadiusC, Y: e.AxisC.Y * e.RadiusC, Z: e.AxisC.Z * e.RadiusC}
	scale := func(v lin.V3, s float64) lin.V3 { return lin.V3{X: v.X * s, Y: v.Y * s, Z: v.Z * s} }
	add := func(a, b lin.V3) lin.V3 { return lin.V3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z} }

	du := add(scale(unitA, -e.RadiusA*sinPhi*math.Sin(theta)*2*math.Pi), scale(unitB, e.RadiusB*sinPhi*math.Cos(theta)*2*math.Pi))
	dv := add(add(scale(unitA, e.RadiusA*cosPhi*math.Cos(theta)*math.Pi), scale(unitB, e.RadiusB*cosPhi*math.Sin(theta)*math.Pi)), scale(unitC, -e.RadiusC*sinPhi*math.Pi))
	return du, dv, true
}
