// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package material

import "raytrace/math/lin"

// Material answers the questions the shader needs to turn a VisiblePoint
// and a set of incident light directions into a radiance contribution.
// Phong and CookTorrance are the two supported variants (spec §3/§4.2).
type Material interface {
	// IsReflective reports whether global reflection rays should be spawned.
	IsReflective() bool
	// IsTransmissive reports whether global refraction rays should be spawned.
	IsTransmissive() bool

	// CalcRefractDir computes the refraction direction for incoming unit
	// direction in crossing a surface with outward unit normal n. ok is
	// false on total internal reflection (spec §4.2).
	CalcRefractDir(n, in *lin.V3) (out lin.V3, ok bool)

	// ReflectionColor is the per-channel attenuation applied to a
	// reflected ray's returned radiance before summing into the pixel.
	ReflectionColor() Color
	// TransmissionColor is the per-channel attenuation applied to a
	// transmitted ray's returned radiance before summing into the pixel.
	TransmissionColor() Color

	// LocalLighting evaluates the direct (non-recursive) contribution of
	// a single light, given the surface normal N (already facing the
	// viewer), the direction to the light L, the direction to the viewer
	// V, an optional precomputed half vector H, the light's own color,
	// the fraction of the light that is unoccluded (percentLit, one
	// component per channel so colored shadow feelers are possible),
	// and the light's distance attenuation factor.
	LocalLighting(n, l, v lin.V3, h *lin.V3, lightColor Color, percentLit Color, attenuation float64) Color

	// Base returns the shared ambient/diffuse/specular/emissive colors.
	Base() *Base

	// Clone returns a deep copy, used by VisiblePoint.MakeMutable when a
	// texture needs to mutate a per-hit material without affecting the
	// primitive's shared material.
	Clone() Material
}

// Base holds the color channels common to every material variant. It is
// embedded (not inherited, per spec §9's re-architecture note) into
// Phong and CookTorrance.
type Base struct {
	Ambient  Color
	Diffuse  Color
	Specular Color
	Emissive Color
}

// Base satisfies part of the Material interface for embedders: both
// Phong and CookTorrance expose Base() by embedding *Base and forwarding.
func (b *Base) Base() *Base { return b }

// DefaultBase mirrors the original renderer's Material::Reset() defaults.
func DefaultBase() Base {
	return Base{
		Ambient:  Color{R: 0.2, G: 0.2, B: 0.2},
		Diffuse:  Color{R: 0.8, G: 0.8, B: 0.8},
		Specular: Black,
		Emissive: Black,
	}
}
