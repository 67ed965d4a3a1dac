// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package primitive

import (
	"log/slog"
	"math"

	"raytrace/aabb"
	"raytrace/math/lin"
)

// ControlNet is a degree-3x3 rational Bezier patch: 16 homogeneous
// control points net[u][v], grounded on
// original_source/Graphics/BezierPatch.h.
type ControlNet [4][4]lin.V4

// bezierBox holds a refined patch's bounding parallelepiped in the form the
// run-time stack needs: a corner plus three (not necessarily unit)
// edge vectors, and the unit axis considered the patch's "thickness"
// direction for the flatness test.
type bezierBox struct {
	corner             lin.V3
	edgeA, edgeB, edgeC lin.V3
	normalC            lin.V3
	thickness          float64
}

// refinedPatch is a leaf of the build-time subdivision: a "nice"
// bounding parallelepiped (spec §4.1) paired with the control net it
// bounds.
type refinedPatch struct {
	net ControlNet
	box bezierBox
}

// BezierSet holds a collection of rational bicubic Bezier patches,
// grounded on original_source/Graphics/ViewableBezierSet.h. Patches
// are precomputed into a refined leaf set at construction time so
// that intersection only ever walks "nice" (sufficiently flat)
// sub-patches.
type BezierSet struct {
	baseSurface
	patches  []ControlNet
	refined  []refinedPatch
	sphereC  lin.V3
	sphereR2 float64
}

// NewBezierSet returns an empty set of Bezier patches; patches are
// added with AddPatch.
func NewBezierSet() *BezierSet {
	return &BezierSet{}
}

// maxBuildSplitDepth bounds the build-time recursion (spec's error
// table: "Bézier build budget exceeded ... >8 recursive splits").
const maxBuildSplitDepth = 8

// maxActiveStack bounds the number of live entries on the run-time
// intersection stack (spec §4.1 step 5).
const maxActiveStack = 192

var bezierBuildWarned bool

// AddPatch appends a rational bicubic patch with homogeneous control
// points net (net[i][j].W == 0 marks a point at infinity and forces
// further subdivision, per spec §4.1). The patch is recursively split
// until every leaf's bounding parallelepiped is "nice".
func (bs *BezierSet) AddPatch(net ControlNet) {
	bs.patches = append(bs.patches, net)
	bs.refine(net, true, 0)
	bs.recomputeBoundingSphere()
}

func (bs *BezierSet) refine(net ControlNet, firstPass bool, depth int) {
	box, nice := boundingFrame(net)
	if nice && !hasPointAtInfinity(net) {
		bs.refined = append(bs.refined, refinedPatch{net: net, box: box})
		return
	}
	if depth >= maxBuildSplitDepth {
		if !bezierBuildWarned {
			slog.Warn("bezier patch exceeded build recursion budget, keeping as-is", "max_depth", maxBuildSplitDepth)
			bezierBuildWarned = true
		}
		bs.refined = append(bs.refined, refinedPatch{net: net, box: box})
		return
	}
	if firstPass {
		a, b := splitNet(net, axisU, 0.5)
		aa, ab := splitNet(a, axisV, 0.5)
		ba, bb := splitNet(b, axisV, 0.5)
		bs.refine(aa, false, depth+1)
		bs.refine(ab, false, depth+1)
		bs.refine(ba, false, depth+1)
		bs.refine(bb, false, depth+1)
		return
	}
	axis := axisU
	if netExtent(net, axisV) > netExtent(net, axisU) {
		axis = axisV
	}
	left, right := splitNet(net, axis, 0.5)
	bs.refine(left, false, depth+1)
	bs.refine(right, false, depth+1)
}

func hasPointAtInfinity(net ControlNet) bool {
	for i := range net {
		for j := range net[i] {
			if net[i][j].W == 0 {
				return true
			}
		}
	}
	return false
}

type splitAxis int

const (
	axisU splitAxis = iota
	axisV
)

func lerp4(a, b lin.V4, t float64) lin.V4 {
	return lin.V4{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t, Z: a.Z + (b.Z-a.Z)*t, W: a.W + (b.W-a.W)*t}
}

// curveSplit de Casteljau-splits a cubic control polygon at t.
func curveSplit(b [4]lin.V4, t float64) (left, right [4]lin.V4) {
	p01 := lerp4(b[0], b[1], t)
	p12 := lerp4(b[1], b[2], t)
	p23 := lerp4(b[2], b[3], t)
	p012 := lerp4(p01, p12, t)
	p123 := lerp4(p12, p23, t)
	p0123 := lerp4(p012, p123, t)
	return [4]lin.V4{b[0], p01, p012, p0123}, [4]lin.V4{p0123, p123, p23, b[3]}
}

// curveEval de Casteljau-evaluates a cubic control polygon at t,
// returning the homogeneous point and its homogeneous derivative.
func curveEval(b [4]lin.V4, t float64) (point, deriv lin.V4) {
	p01 := lerp4(b[0], b[1], t)
	p12 := lerp4(b[1], b[2], t)
	p23 := lerp4(b[2], b[3], t)
	p012 := lerp4(p01, p12, t)
	p123 := lerp4(p12, p23, t)
	p0123 := lerp4(p012, p123, t)
	deriv = lin.V4{X: 3 * (p123.X - p012.X), Y: 3 * (p123.Y - p012.Y), Z: 3 * (p123.Z - p012.Z), W: 3 * (p123.W - p012.W)}
	return p0123, deriv
}

// splitNet splits a patch along axis at parameter t, applying the
// curve split to every row (axis==axisV) or column (axis==axisU) of
// the control net.
func splitNet(net ControlNet, axis splitAxis, t float64) (left, right ControlNet) {
	if axis == axisU {
		for j := 0; j < 4; j++ {
			col := [4]lin.V4{net[0][j], net[1][j], net[2][j], net[3][j]}
			l, r := curveSplit(col, t)
			for i := 0; i < 4; i++ {
				left[i][j] = l[i]
				right[i][j] = r[i]
			}
		}
		return
	}
	for i := 0; i < 4; i++ {
		l, r := curveSplit(net[i], t)
		left[i] = l
		right[i] = r
	}
	return
}

func dehom(p lin.V4) lin.V3 {
	if p.W == 0 {
		return lin.V3{X: p.X, Y: p.Y, Z: p.Z}
	}
	return lin.V3{X: p.X / p.W, Y: p.Y / p.W, Z: p.Z / p.W}
}

// netExtent is a crude corner-to-corner span used only to choose the
// longer axis for a 2-way runtime/build split; it does not need to be
// exact.
func netExtent(net ControlNet, axis splitAxis) float64 {
	if axis == axisU {
		a := dehom(net[0][0])
		b := dehom(net[3][0])
		c := lin.V3{X: b.X - a.X, Y: b.Y - a.Y, Z: b.Z - a.Z}
		return c.Len()
	}
	a := dehom(net[0][0])
	b := dehom(net[0][3])
	c := lin.V3{X: b.X - a.X, Y: b.Y - a.Y, Z: b.Z - a.Z}
	return c.Len()
}

// boundingFrame builds the patch's bounding parallelepiped by
// projecting its 16 (dehomogenized) control points onto a local frame
// derived from the patch's corner-to-corner edges, then reports
// whether the frame is "nice" per spec §4.1: the thickness axis's
// extent is at most half the extent of each of the other two axes.
func boundingFrame(net ControlNet) (bezierBox, bool) {
	c00 := dehom(net[0][0])
	c03 := dehom(net[0][3])
	c30 := dehom(net[3][0])
	c33 := dehom(net[3][3])

	edgeU := lin.V3{X: (c30.X - c00.X + c33.X - c03.X) / 2, Y: (c30.Y - c00.Y + c33.Y - c03.Y) / 2, Z: (c30.Z - c00.Z + c33.Z - c03.Z) / 2}
	edgeV := lin.V3{X: (c03.X - c00.X + c33.X - c30.X) / 2, Y: (c03.Y - c00.Y + c33.Y - c30.Y) / 2, Z: (c03.Z - c00.Z + c33.Z - c30.Z) / 2}

	e1 := edgeU
	if e1.Dot(&e1) < 1e-18 {
		e1 = lin.V3{X: 1}
	}
	e1.Unit()
	var e3 lin.V3
	e3.Cross(&edgeU, &edgeV)
	if e3.Dot(&e3) < 1e-18 {
		ref := lin.V3{X: 0, Y: 1, Z: 0}
		if math.Abs(e1.Y) > 0.9 {
			ref = lin.V3{X: 1}
		}
		e3.Cross(&e1, &ref)
	}
	e3.Unit()
	var e2 lin.V3
	e2.Cross(&e3, &e1)
	e2.Unit()

	origin := c00
	minA, maxA := math.Inf(1), math.Inf(-1)
	minB, maxB := math.Inf(1), math.Inf(-1)
	minC, maxC := math.Inf(1), math.Inf(-1)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			p := dehom(net[i][j])
			rel := lin.V3{X: p.X - origin.X, Y: p.Y - origin.Y, Z: p.Z - origin.Z}
			a, b, c := rel.Dot(&e1), rel.Dot(&e2), rel.Dot(&e3)
			minA, maxA = math.Min(minA, a), math.Max(maxA, a)
			minB, maxB = math.Min(minB, b), math.Max(maxB, b)
			minC, maxC = math.Min(minC, c), math.Max(maxC, c)
		}
	}

	extA, extB, extC := maxA-minA, maxB-minB, maxC-minC
	corner := lin.V3{
		X: origin.X + minA*e1.X + minB*e2.X + minC*e3.X,
		Y: origin.Y + minA*e1.Y + minB*e2.Y + minC*e3.Y,
		Z: origin.Z + minA*e1.Z + minB*e2.Z + minC*e3.Z,
	}
	box := bezierBox{
		corner:    corner,
		edgeA:     lin.V3{X: e1.X * extA, Y: e1.Y * extA, Z: e1.Z * extA},
		edgeB:     lin.V3{X: e2.X * extB, Y: e2.Y * extB, Z: e2.Z * extB},
		edgeC:     lin.V3{X: e3.X * extC, Y: e3.Y * extC, Z: e3.Z * extC},
		normalC:   e3,
		thickness: extC,
	}
	nice := extC <= 0.5*extA && extC <= 0.5*extB
	return box, nice
}

func (bs *BezierSet) recomputeBoundingSphere() {
	box := aabb.Empty()
	for _, rp := range bs.refined {
		for _, corner := range bezierBoxCorners(rp.box) {
			box.Extend(corner)
		}
	}
	center := box.Center()
	r2 := 0.0
	for _, rp := range bs.refined {
		for _, corner := range bezierBoxCorners(rp.box) {
			d := lin.V3{X: corner.X - center.X, Y: corner.Y - center.Y, Z: corner.Z - center.Z}
			if dd := d.Dot(&d); dd > r2 {
				r2 = dd
			}
		}
	}
	bs.sphereC, bs.sphereR2 = center, r2
}

func bezierBoxCorners(b bezierBox) []lin.V3 {
	pts := make([]lin.V3, 0, 8)
	for _, sa := range []float64{0, 1} {
		for _, sb := range []float64{0, 1} {
			for _, sc := range []float64{0, 1} {
				pts = append(pts, lin.V3{
					X: b.corner.X + sa*b.edgeA.X + sb*b.edgeB.X + sc*b.edgeC.X,
					Y: b.corner.Y + sa*b.edgeA.Y + sb*b.edgeB.Y + sc*b.edgeC.Y,
					Z: b.corner.Z + sa*b.edgeA.Z + sb*b.edgeB.Z + sc*b.edgeC.Z,
				})
			}
		}
	}
	return pts
}

// stackEntry is one live candidate patch on the run-time intersection
// stack (spec §4.1 step 2-5).
type stackEntry struct {
	net      ControlNet
	box      bezierBox
	tEnter   float64
}

func (bs *BezierSet) Intersect(origin, dir lin.V3, maxDist float64) (float64, VisiblePoint, bool) {
	rel := lin.V3{X: origin.X - bs.sphereC.X, Y: origin.Y - bs.sphereC.Y, Z: origin.Z - bs.sphereC.Z}
	b := rel.Dot(&dir)
	c := rel.Dot(&rel) - bs.sphereR2
	if c > 0 && b >= 0 {
		return 0, VisiblePoint{}, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, VisiblePoint{}, false
	}

	stack := make([]stackEntry, 0, 64)
	for _, rp := range bs.refined {
		if near, _, ok := bezierSlabTest(origin, dir, rp.box); ok && near <= maxDist {
			stack = append(stack, stackEntry{net: rp.net, box: rp.box, tEnter: near})
		}
	}

	bestT := maxDist
	var bestVP VisiblePoint
	found := false

	for len(stack) > 0 {
		// pop the nearest entry: the stack is never sorted; a linear scan
		// over all of it finds the smallest entry distance.
		bi := 0
		for i := 1; i < len(stack); i++ {
			if stack[i].tEnter < stack[bi].tEnter {
				bi = i
			}
		}
		e := stack[bi]
		stack[bi] = stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if e.tEnter > bestT {
			continue
		}

		near, far, ok := bezierSlabTest(origin, dir, e.box)
		if !ok || near > bestT {
			continue
		}

		if e.box.thickness < 1e-4 {
			tMid := (near + far) / 2
			if tMid <= 0 || tMid > bestT {
				continue
			}
			rayPoint := lin.V3{X: origin.X + tMid*dir.X, Y: origin.Y + tMid*dir.Y, Z: origin.Z + tMid*dir.Z}
			relHit := lin.V3{X: rayPoint.X - e.box.corner.X, Y: rayPoint.Y - e.box.corner.Y, Z: rayPoint.Z - e.box.corner.Z}
			u, v := bezierBoxUV(e.box, relHit)
			point, dpdu, dpdv := evalPatch(e.net, u, v)
			residual := lin.V3{X: point.X - rayPoint.X, Y: point.Y - rayPoint.Y, Z: point.Z - rayPoint.Z}
			if residual.Len() < 1e-4 {
				var normal lin.V3
				normal.Cross(&dpdu, &dpdv)
				if normal.Dot(&normal) < 1e-20 {
					normal = e.box.normalC
				} else {
					normal.Unit()
				}
				front := normal.Dot(&dir) < 0
				if !front {
					normal = lin.V3{X: -normal.X, Y: -normal.Y, Z: -normal.Z}
				}
				bestT = tMid
				bestVP = VisiblePoint{Position: point, Normal: normal, U: u, V: v, Front: front, Object: bs, impl: e.net}
				found = true
			}
			continue
		}

		if len(stack) >= maxActiveStack {
			slog.Warn("bezier run-time patch stack overflow, dropping candidate")
			continue
		}
		axis := axisU
		if netExtent(e.net, axisV) > netExtent(e.net, axisU) {
			axis = axisV
		}
		left, right := splitNet(e.net, axis, 0.5)
		leftBox, _ := boundingFrame(left)
		rightBox, _ := boundingFrame(right)
		if near, _, ok := bezierSlabTest(origin, dir, leftBox); ok && near <= bestT {
			stack = append(stack, stackEntry{net: left, box: leftBox, tEnter: near})
		}
		if near, _, ok := bezierSlabTest(origin, dir, rightBox); ok && near <= bestT {
			stack = append(stack, stackEntry{net: right, box: rightBox, tEnter: near})
		}
	}

	if !found {
		return 0, VisiblePoint{}, false
	}
	viewDir := lin.V3{X: -dir.X, Y: -dir.Y, Z: -dir.Z}
	bs.finishHit(&bestVP, viewDir)
	return bestT, bestVP, true
}

// bezierSlabTest intersects a ray against a bezierBox's three slab
// pairs, reusing the parallelepiped slab helper.
func bezierSlabTest(origin, dir lin.V3, box bezierBox) (near, far float64, ok bool) {
	// The faces are taken from normalC rather than edgeC so that a
	// perfectly flat patch (zero-length edgeC) still has a usable box.
	var nA, nB lin.V3
	nC := box.normalC
	nA.Cross(&box.edgeB, &nC)
	nB.Cross(&nC, &box.edgeA)
	if nA.Dot(&nA) < 1e-30 || nB.Dot(&nB) < 1e-30 {
		return 0, 0, false
	}
	nA.Unit()
	nB.Unit()
	nearA, farA, okA := slab(origin, dir, nA, box.corner, box.edgeA)
	nearB, farB, okB := slab(origin, dir, nB, box.corner, box.edgeB)
	nearC, farC, okC := slab(origin, dir, nC, box.corner, box.edgeC)
	if !okA || !okB || !okC {
		return 0, 0, false
	}
	near = math.Max(nearA, math.Max(nearB, nearC))
	far = math.Min(farA, math.Min(farB, farC))
	if near > far || far < 0 {
		return 0, 0, false
	}
	if near < 0 {
		near = 0
	}
	return near, far, true
}

// bezierBoxUV recovers the approximate (u,v) parametrization of a
// slab-relative hit point from its projection onto the box's A/B
// axes, used to evaluate the patch when accepting a midpoint
// approximation (spec §4.1 step 3).
func bezierBoxUV(box bezierBox, rel lin.V3) (u, v float64) {
	lenA := box.edgeA.Len()
	lenB := box.edgeB.Len()
	if lenA < 1e-12 || lenB < 1e-12 {
		return 0.5, 0.5
	}
	dirA := box.edgeA
	dirA.Unit()
	dirB := box.edgeB
	dirB.Unit()
	u = clamp(rel.Dot(&dirA)/lenA, 0, 1)
	v = clamp(rel.Dot(&dirB)/lenB, 0, 1)
	return u, v
}

// evalPatch evaluates the rational patch at (u,v), returning the
// dehomogenized surface point and its two partial derivatives (De
// Casteljau on the homogeneous control net, quotient rule to recover
// the rational derivative).
func evalPatch(net ControlNet, u, v float64) (point, dpdu, dpdv lin.V3) {
	var rowReduced [4]lin.V4
	for i := 0; i < 4; i++ {
		rowReduced[i], _ = curveEval(net[i], v)
	}
	var colReduced [4]lin.V4
	for j := 0; j < 4; j++ {
		col := [4]lin.V4{net[0][j], net[1][j], net[2][j], net[3][j]}
		colReduced[j], _ = curveEval(col, u)
	}

	p, dPdu := curveEval(rowReduced, u)
	_, dPdv := curveEval(colReduced, v)

	point = dehom(p)
	dpdu = rationalDeriv(p, dPdu)
	dpdv = rationalDeriv(p, dPdv)
	return
}

// rationalDeriv applies the quotient rule to recover the spatial
// derivative of a rational (homogeneous) curve: d/dt (X/W) = (X'W -
// XW')/W^2. If W is (numerically) zero the raw homogeneous derivative
// is returned as a best-effort fallback.
func rationalDeriv(p, dp lin.V4) lin.V3 {
	if math.Abs(p.W) < 1e-12 {
		return lin.V3{X: dp.X, Y: dp.Y, Z: dp.Z}
	}
	invW2 := 1 / (p.W * p.W)
	return lin.V3{
		X: (dp.X*p.W - p.X*dp.W) * invW2,
		Y: (dp.Y*p.W - p.Y*dp.W) * invW2,
		Z: (dp.Z*p.W - p.Z*dp.W) * invW2,
	}
}

func (bs *BezierSet) BoundingBox() aabb.Box {
	box := aabb.Empty()
	for _, rp := range bs.refined {
		for _, corner := range bezierBoxCorners(rp.box) {
			box.Extend(corner)
		}
	}
	return box
}

func (bs *BezierSet) ClippedExtent(box aabb.Box) aabb.Box {
	return aabb.Intersect(bs.BoundingBox(), box)
}

// Partials recomputes the patch partials directly from the leaf net
// stashed on the VisiblePoint at hit time and its (u,v). It is
// undefined (ok=false) for a VisiblePoint this set did not itself
// produce.
func (bs *BezierSet) Partials(vp VisiblePoint) (lin.V3, lin.V3, bool) {
	net, ok := vp.impl.(ControlNet)
	if !ok {
		return lin.V3{}, lin.V3{}, false
	}
	_, dpdu, dpdv := evalPatch(net, vp.U, vp.V)
	return dpdu, dpdv, true
}
