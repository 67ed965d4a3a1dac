// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytrace

import (
	"raytrace/material"
	"raytrace/math/lin"
	"raytrace/primitive"
)

// noAvoid is the sentinel ObjID meaning "no surface to suppress",
// used for primary rays which have no originating surface.
const noAvoid ObjID = -1

// selfIntersectEps is the self-intersection suppression epsilon from
// spec §4.5: reflected and refracted rays start at origin+eps*dir, and
// the avoid primitive's own intersection test is additionally offset by eps and
// the returned distance corrected back, so the avoid surface is never
// re-selected as its own first hit but unrelated primitives at
// genuinely closer distances still win.
const selfIntersectEps = 1e-6

// seekIntersection finds the closest primitive hit along (origin, dir)
// within (0, maxDist], skipping self-intersection against avoid per
// spec §4.5. It walks the scene's kd-tree nearest-leaf-first so the
// traversal can stop as soon as no remaining leaf can beat the best hit
// found so far.
func seekIntersection(s *Scene, origin, dir lin.V3, maxDist float64, avoid ObjID) (dist float64, vp primitive.VisiblePoint, obj ObjID, ok bool) {
	best := maxDist
	bestObj := noAvoid
	var bestVP primitive.VisiblePoint

	if s.tree == nil {
		return 0, primitive.VisiblePoint{}, noAvoid, false
	}

	s.tree.Walk(origin, dir, maxDist, func(ids []int, tMin, tMax float64) float64 {
		for _, id := range ids {
			testOrigin := origin
			limit := best
			offset := 0.0
			if ObjID(id) == avoid {
				testOrigin = lin.V3{X: origin.X + selfIntersectEps*dir.X, Y: origin.Y + selfIntersectEps*dir.Y, Z: origin.Z + selfIntersectEps*dir.Z}
				offset = selfIntersectEps
				limit -= offset
				if limit <= 0 {
					continue
				}
			}
			d, hit, found := s.viewables[id].Intersect(testOrigin, dir, limit)
			if !found {
				continue
			}
			d += offset
			if d > 0 && d < best {
				best = d
				bestObj = ObjID(id)
				bestVP = hit
			}
		}
		return best
	})

	if bestObj == noAvoid {
		return 0, primitive.VisiblePoint{}, noAvoid, false
	}
	return best, bestVP, bestObj, true
}

// RayTrace computes the radiance returned along (origin, dir) up to
// depth recursive bounces, suppressing self-intersection against
// avoid, per spec §4.5's RayTrace pseudocode.
func RayTrace(s *Scene, depth int, origin, dir lin.V3, avoid ObjID) material.Color {
	_, vp, obj, hit := seekIntersection(s, origin, dir, lin.Large, avoid)
	if !hit {
		return s.cfg.background
	}

	viewDir := lin.V3{X: -dir.X, Y: -dir.Y, Z: -dir.Z}
	n := vp.FacingNormal(viewDir)
	mat := vp.Mat.Get()

	color := DirectIllumination(s, vp, n, viewDir, obj)

	if depth > 1 {
		if mat.IsReflective() {
			var r lin.V3
			r.Reflect(&dir, &n)
			start := lin.V3{X: vp.Position.X + selfIntersectEps*r.X, Y: vp.Position.Y + selfIntersectEps*r.Y, Z: vp.Position.Z + selfIntersectEps*r.Z}
			reflCol := RayTrace(s, depth-1, start, r, obj)
			color = color.Add(mat.ReflectionColor().Mul(reflCol))
		}
		if mat.IsTransmissive() {
			if t, ok := mat.CalcRefractDir(&n, &dir); ok {
				start := lin.V3{X: vp.Position.X + selfIntersectEps*t.X, Y: vp.Position.Y + selfIntersectEps*t.Y, Z: vp.Position.Z + selfIntersectEps*t.Z}
				transCol := RayTrace(s, depth-1, start, t, obj)
				color = color.Add(mat.TransmissionColor().Mul(transCol))
			}
		}
	}

	return color
}

// DirectIllumination evaluates the ambient, emissive, and per-light
// local lighting contribution at vp, with n the surface normal already
// facing the viewer and viewDir the unit direction toward the eye, per
// spec §4.5.
func DirectIllumination(s *Scene, vp primitive.VisiblePoint, n, viewDir lin.V3, avoid ObjID) material.Color {
	mat := vp.Mat.Get()
	base := mat.Base()
	color := base.Ambient.Mul(s.cfg.globalAmbient).Add(base.Emissive)

	for _, lt := range s.lights {
		lightDir, lightDist, lightColor, ok := lt.Sample(vp.Position)
		if !ok {
			continue
		}
		if lightDir.Dot(&n) <= 0 && !mat.IsTransmissive() {
			// The light is behind the surface and the material can't
			// transmit it through; no shadow feeler needed.
			continue
		}
		percentLit := material.Black
		if ShadowFeeler(s, vp.Position, lightDir, lightDist, avoid) {
			percentLit = material.White
		}
		color = color.Add(mat.LocalLighting(n, lightDir, viewDir, nil, lightColor, percentLit, 1))
	}
	return color
}

// ShadowFeeler casts a ray from point toward a light at distance
// lightDist along lightDir, returning true (lit) iff no intersection
// is found closer than lightDist. The avoid primitive is still tested
// (via the same self-intersection epsilon offset as seekIntersection)
// since a concave object can occlude its own surface point, per
// spec §4.5.
func ShadowFeeler(s *Scene, point lin.V3, lightDir lin.V3, lightDist float64, avoid ObjID) bool {
	const shadowEps = 1e-4
	_, _, _, hit := seekIntersection(s, point, lightDir, lightDist-shadowEps, avoid)
	return !hit
}
