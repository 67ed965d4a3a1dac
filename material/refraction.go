// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package material

import (
	"math"

	"raytrace/math/lin"
)

// calcRefractDir implements Snell's law for a ray crossing a surface with
// outward unit normal n and index of refraction (relative, inside/outside)
// indexOfRefraction. in is the incoming unit direction (pointing toward
// the surface). ok is false when the geometry produces total internal
// reflection, in which case out is left at its zero value and the caller
// should fall back to a pure reflection ray (spec §4.2).
//
// The normal is flipped to face against the incoming ray so the same
// formula applies whether the ray is entering or leaving the medium; the
// index of refraction used is inverted to match.
func calcRefractDir(n, in *lin.V3, indexOfRefraction float64) (out lin.V3, ok bool) {
	nrm := *n
	eta := 1 / indexOfRefraction
	cosI := -nrm.Dot(in)
	if cosI < 0 {
		// Ray is leaving the medium: flip the normal and invert eta so
		// cosI stays positive regardless of which side the ray enters.
		nrm = lin.V3{X: -n.X, Y: -n.Y, Z: -n.Z}
		eta = indexOfRefraction
		cosI = -cosI
	}
	sinT2 := eta * eta * (1 - cosI*cosI)
	if sinT2 >= 1 {
		return lin.V3{}, false
	}
	cosT := math.Sqrt(1 - sinT2)
	k := eta*cosI - cosT
	out = lin.V3{
		X: eta*in.X + k*nrm.X,
		Y: eta*in.Y + k*nrm.Y,
		Z: eta*in.Z + k*nrm.Z,
	}
	out.Unit()
	return out, true
}
