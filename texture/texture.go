// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package texture maps a surface's (u, v) coordinates to a material,
// grounded on original_source/Graphics/TextureMapBase.h and
// TextureCheckered.h.
package texture

import (
	"raytrace/material"
	"raytrace/math/lin"
)

// Texture selects the material to use at a given surface point. Apply is
// called with the viewable's own (u, v) parametrization and the unit
// direction toward the viewer, so view-dependent textures (environment
// maps, Fresnel-blended layers) are possible even though none are
// implemented here.
type Texture interface {
	Apply(u, v float64, viewDir lin.V3) material.Material
}

// Checkered alternates between two materials in a uv-space checkerboard
// pattern that tiles the whole (u, v) plane, grounded on
// original_source/Graphics/TextureCheckered.cpp's InOddSquare.
type Checkered struct {
	UWidth, VWidth float64
	Material1      material.Material
	Material2      material.Material
}

// NewCheckered returns a Checkered texture with 0.5x0.5 squares,
// matching the original renderer's default.
func NewCheckered(m1, m2 material.Material) *Checkered {
	return &Checkered{UWidth: 0.5, VWidth: 0.5, Material1: m1, Material2: m2}
}

func (c *Checkered) Apply(u, v float64, viewDir lin.V3) material.Material {
	if c.inOddSquare(u, v) {
		return c.Material2
	}
	return c.Material1
}

// inOddSquare reports whether (u, v) falls in an odd-indexed square of
// the tiling, matching the original's floor-and-parity computation.
func (c *Checkered) inOddSquare(u, v float64) bool {
	ui := floorDiv(u, c.UWidth)
	vi := floorDiv(v, c.VWidth)
	return (ui+vi)%2 != 0
}

func floorDiv(x, width float64) int64 {
	if width <= 0 {
		return 0
	}
	q := x / width
	n := int64(q)
	if q < 0 && float64(n) != q {
		n--
	}
	return n
}
