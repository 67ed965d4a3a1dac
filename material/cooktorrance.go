// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package material

import (
	"math"

	"raytrace/math/lin"
)

// CookTorrance is a microfacet local lighting model using a Beckmann
// distribution, a Blinn geometric attenuation term, and a per-channel
// Fresnel reflectance computed from a per-channel (R, G, B) index of
// refraction, grounded on original_source/Graphics/MaterialCookTorrance.h.
type CookTorrance struct {
	*Base

	Roughness float64
	// IndexOfRefraction holds one value per channel (index 0=R, 1=G,
	// 2=B) so that dispersion can separate the color channels of the
	// Fresnel term.
	IndexOfRefraction [3]float64

	reflective   bool
	transmissive bool
	reflColor    Color
	transColor   Color
}

// NewCookTorrance returns a CookTorrance material with the renderer's
// default colors and a mid-range roughness.
func NewCookTorrance() *CookTorrance {
	b := DefaultBase()
	return &CookTorrance{
		Base:              &b,
		Roughness:         0.3,
		IndexOfRefraction: [3]float64{1, 1, 1},
		reflColor:         Color{R: 0.2, G: 0.2, B: 0.2},
	}
}

func (c *CookTorrance) SetReflective(col Color) *CookTorrance {
	c.reflective = true
	c.reflColor = col
	return c
}

func (c *CookTorrance) SetTransmissive(col Color, indexOfRefraction [3]float64) *CookTorrance {
	c.transmissive = true
	c.transColor = col
	c.IndexOfRefraction = indexOfRefraction
	return c
}

func (c *CookTorrance) IsReflective() bool   { return c.reflective }
func (c *CookTorrance) IsTransmissive() bool { return c.transmissive }

// CalcRefractDir uses the average of the three per-channel indices of
// refraction to pick a single refracted ray direction; the per-channel
// dispersion only affects the Fresnel weighting in LocalLighting, not
// the geometric path of the transmitted ray (spec §4.2).
func (c *CookTorrance) CalcRefractDir(n, in *lin.V3) (lin.V3, bool) {
	avg := (c.IndexOfRefraction[0] + c.IndexOfRefraction[1] + c.IndexOfRefraction[2]) / 3
	return calcRefractDir(n, in, avg)
}

func (c *CookTorrance) ReflectionColor() Color   { return c.reflColor }
func (c *CookTorrance) TransmissionColor() Color { return c.transColor }

// LocalLighting evaluates the Cook-Torrance specular term
// (D*G*F)/(4*(N.V)*(N.L)) added to a Lambertian diffuse term, summed per
// channel since the Fresnel term F depends on a per-channel index of
// refraction.
func (c *CookTorrance) LocalLighting(n, l, v lin.V3, hp *lin.V3, lightColor Color, percentLit Color, attenuation float64) Color {
	ndotl := n.Dot(&l)
	if ndotl <= 0 {
		return Black
	}
	ndotv := n.Dot(&v)
	if ndotv <= 0 {
		return Black
	}

	var h lin.V3
	if hp != nil {
		h = *hp
	} else {
		h = lin.V3{X: l.X + v.X, Y: l.Y + v.Y, Z: l.Z + v.Z}
		h.Unit()
	}
	ndoth := n.Dot(&h)
	vdoth := v.Dot(&h)

	d := beckmann(ndoth, c.Roughness)
	g := blinnGeometric(ndotv, ndotl, ndoth, vdoth)

	diffuse := c.Diffuse.Mul(lightColor).Scale(ndotl)

	var spec Color
	denom := 4 * ndotv * ndotl
	if denom > 0 && d > 0 && g > 0 {
		for ch := 0; ch < 3; ch++ {
			f := fresnel(vdoth, c.IndexOfRefraction[ch])
			s := c.Specular.Channel(ch) * lightColor.Channel(ch) * d * g * f / denom
			spec = spec.SetChannel(ch, s)
		}
	}

	direct := diffuse.Add(spec).Mul(percentLit).Scale(attenuation)
	return direct
}

// beckmann evaluates the Beckmann microfacet distribution term D for the
// angle between the normal and the half vector.
func beckmann(ndoth, roughness float64) float64 {
	if ndoth <= 0 {
		return 0
	}
	m2 := roughness * roughness
	cos2 := ndoth * ndoth
	cos4 := cos2 * cos2
	tan2 := (1 - cos2) / cos2
	return math.Exp(-tan2/m2) / (m2 * cos4 * math.Pi)
}

// blinnGeometric evaluates the geometric attenuation term G, the
// fraction of microfacets not shadowed or masked by neighboring facets.
func blinnGeometric(ndotv, ndotl, ndoth, vdoth float64) float64 {
	if vdoth <= 0 {
		return 0
	}
	gShadow := 2 * ndoth * ndotv / vdoth
	gMask := 2 * ndoth * ndotl / vdoth
	return math.Min(1, math.Min(gShadow, gMask))
}

// fresnel approximates the unpolarized Fresnel reflectance at normal-to-
// grazing incidence using Schlick's approximation with reflectance at
// normal incidence derived from the index of refraction.
func fresnel(vdoth, indexOfRefraction float64) float64 {
	r0 := (indexOfRefraction - 1) / (indexOfRefraction + 1)
	r0 *= r0
	x := 1 - vdoth
	return r0 + (1-r0)*x*x*x*x*x
}

// Clone returns a deep copy of c.
func (c *CookTorrance) Clone() Material {
	cp := *c
	b := *c.Base
	cp.Base = &b
	return &cp
}
