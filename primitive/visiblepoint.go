// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package primitive implements the ray/surface intersection library: nine
// quadric and parametric surface variants plus the VisiblePoint record
// they fill in on a hit, grounded on original_source/Graphics's
// ViewableXxx classes and VisiblePoint.h.
package primitive

import (
	"errors"

	"raytrace/material"
	"raytrace/math/lin"
)

// ErrDegenerate is returned by a primitive constructor when the supplied
// parameters describe a degenerate shape (zero radius, collinear
// triangle vertices, a zero-volume parallelepiped, and so on).
var ErrDegenerate = errors.New("primitive: degenerate shape")

// MaterialRef is a Borrowed|Owned sum type for a VisiblePoint's material:
// most hits reference the primitive's own shared material (Borrowed);
// MakeMutable promotes it to an Owned clone so a texture can tweak the
// per-hit material without mutating the primitive's shared one,
// grounded on VisiblePoint.h's MatNeedsFreeing/Clone dance translated
// into a value that doesn't need a destructor.
type MaterialRef struct {
	borrowed material.Material
	owned    material.Material
}

// BorrowMaterial returns a MaterialRef referencing m without copying it.
func BorrowMaterial(m material.Material) MaterialRef {
	return MaterialRef{borrowed: m}
}

// Get returns the material currently in effect: the owned clone if
// MakeMutable has been called, otherwise the borrowed original.
func (r *MaterialRef) Get() material.Material {
	if r.owned != nil {
		return r.owned
	}
	return r.borrowed
}

// MakeMutable promotes r to hold an owned clone of its current material,
// returning it so the caller can mutate it in place. Subsequent calls
// are no-ops that return the same clone.
func (r *MaterialRef) MakeMutable() material.Material {
	if r.owned == nil {
		r.owned = r.Get().Clone()
	}
	return r.owned
}

// VisiblePoint records everything a shader needs about a ray/primitive
// hit: position, outward normal, parametrization, face number, facing,
// the material in effect, and a back-reference to the primitive hit.
type VisiblePoint struct {
	Position lin.V3
	Normal   lin.V3
	U, V     float64
	Face     int
	Front    bool
	Mat      MaterialRef
	Object   Viewable
	impl     any // primitive-private scratch data (e.g. the Bezier leaf patch hit)
}

// FacingNormal returns the normal flipped to face the viewer direction
// viewDir (the unit direction from the surface toward the viewer's
// eye), matching the two-sided lighting convention used by Phong and
// Cook-Torrance local lighting.
func (vp *VisiblePoint) FacingNormal(viewDir lin.V3) lin.V3 {
	n := vp.Normal
	if n.Dot(&viewDir) < 0 {
		n.X, n.Y, n.Z = -n.X, -n.Y, -n.Z
	}
	return n
}
