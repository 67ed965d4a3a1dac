// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package primitive

import (
	"raytrace/aabb"
	"raytrace/material"
	"raytrace/math/lin"
	"raytrace/texture"
)

// Viewable is the contract every intersectable surface satisfies,
// grounded on original_source/Graphics/ViewableBase.h.
type Viewable interface {
	// Intersect tests the ray (origin, dir) — dir must be a unit vector
	// — against the surface, reporting the closest hit distance less
	// than maxDist. ok is false if there is no such hit.
	Intersect(origin, dir lin.V3, maxDist float64) (dist float64, vp VisiblePoint, ok bool)

	// BoundingBox returns the surface's axis-aligned bounding box, used
	// by the kd-tree builder.
	BoundingBox() aabb.Box

	// ClippedExtent returns the surface's bounding box intersected with
	// box, used by the kd-tree builder to tighten child bounds below
	// the surface's own full extent (spec §4.3).
	ClippedExtent(box aabb.Box) aabb.Box

	// Partials returns the partial derivatives of the surface position
	// with respect to its own (u, v) parametrization at vp, used for
	// bump mapping. ok is false at a parametric singularity (a pole).
	Partials(vp VisiblePoint) (du, dv lin.V3, ok bool)
}

// baseSurface holds the state shared by every primitive variant: the
// front and back materials and textures, grounded on ViewableBase's
// MaterialFront/MaterialBack/TextureFront/TextureBack fields.
type baseSurface struct {
	frontMaterial material.Material
	backMaterial  material.Material
	frontTexture  texture.Texture
	backTexture   texture.Texture
}

// SetMaterial sets both the front and back material to m.
func (b *baseSurface) SetMaterial(m material.Material) {
	b.frontMaterial = m
	b.backMaterial = m
}

// SetMaterialFront sets only the front-facing material.
func (b *baseSurface) SetMaterialFront(m material.Material) { b.frontMaterial = m }

// SetMaterialBack sets only the back-facing material.
func (b *baseSurface) SetMaterialBack(m material.Material) { b.backMaterial = m }

// SetTexture sets both the front and back texture to tex.
func (b *baseSurface) SetTexture(tex texture.Texture) {
	b.frontTexture = tex
	b.backTexture = tex
}

// SetTextureFront sets only the front-facing texture.
func (b *baseSurface) SetTextureFront(tex texture.Texture) { b.frontTexture = tex }

// SetTextureBack sets only the back-facing texture.
func (b *baseSurface) SetTextureBack(tex texture.Texture) { b.backTexture = tex }

// finishHit fills in the material (and, if a texture is assigned, an
// updated material from it) on vp depending on which face was hit.
// Every primitive's Intersect calls this once it has determined
// position, normal, UV, and front/back orientation.
func (b *baseSurface) finishHit(vp *VisiblePoint, viewDir lin.V3) {
	mat, tex := b.frontMaterial, b.frontTexture
	if !vp.Front {
		mat, tex = b.backMaterial, b.backTexture
	}
	vp.Mat = BorrowMaterial(mat)
	if tex != nil {
		applied := tex.Apply(vp.U, vp.V, viewDir)
		if applied != nil {
			vp.Mat = BorrowMaterial(applied)
		}
	}
}
