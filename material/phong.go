// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package material

import "raytrace/math/lin"

// Phong is a classic ambient+diffuse+specular local lighting model with
// an optional reflective and/or transmissive component, grounded on
// original_source/Graphics/Material.h's ShininessExponent/IndexOfRefraction
// fields.
type Phong struct {
	*Base

	Shininess         float64
	IndexOfRefraction float64

	reflective   bool
	transmissive bool
	reflColor    Color
	transColor   Color
}

// NewPhong returns a Phong material with the renderer's default colors
// (spec §4.2) and no reflective or transmissive component.
func NewPhong() *Phong {
	b := DefaultBase()
	return &Phong{
		Base:              &b,
		Shininess:         32,
		IndexOfRefraction: 1,
		reflColor:         Color{R: 0.2, G: 0.2, B: 0.2},
	}
}

// SetReflective turns on global reflection and sets the per-channel
// attenuation applied to the returned reflected radiance.
func (p *Phong) SetReflective(c Color) *Phong {
	p.reflective = true
	p.reflColor = c
	return p
}

// SetTransmissive turns on global refraction, sets the per-channel
// attenuation applied to the returned transmitted radiance, and the
// index of refraction used by CalcRefractDir.
func (p *Phong) SetTransmissive(c Color, indexOfRefraction float64) *Phong {
	p.transmissive = true
	p.transColor = c
	p.IndexOfRefraction = indexOfRefraction
	return p
}

func (p *Phong) IsReflective() bool   { return p.reflective }
func (p *Phong) IsTransmissive() bool { return p.transmissive }

func (p *Phong) CalcRefractDir(n, in *lin.V3) (lin.V3, bool) {
	return calcRefractDir(n, in, p.IndexOfRefraction)
}

func (p *Phong) ReflectionColor() Color   { return p.reflColor }
func (p *Phong) TransmissionColor() Color { return p.transColor }

// LocalLighting evaluates the direct term atten*percentLit*(Kd*Ldiffuse*
// max(0,N.L) + Ks*Lspecular*max(0,R.V)^shininess) of one light; the
// ambient term Ka*Lambient is added by the caller, not here. The
// half vector h is accepted for interface parity with CookTorrance but
// unused: Phong's specular term is computed from the mirror reflection
// direction R = 2(N.L)N - L rather than a half-angle approximation.
func (p *Phong) LocalLighting(n, l, v lin.V3, h *lin.V3, lightColor Color, percentLit Color, attenuation float64) Color {
	ndotl := n.Dot(&l)
	if ndotl <= 0 {
		return Black
	}
	diffuse := p.Diffuse.Mul(lightColor).Scale(ndotl)

	var r lin.V3
	r.Reflect(&l, &n)
	r.X, r.Y, r.Z = -r.X, -r.Y, -r.Z
	rdotv := r.Dot(&v)
	specular := Black
	if rdotv > 0 {
		specular = p.Specular.Mul(lightColor).Scale(pow(rdotv, p.Shininess))
	}

	direct := diffuse.Add(specular).Mul(percentLit).Scale(attenuation)
	return direct
}

// Clone returns a deep copy of p.
func (p *Phong) Clone() Material {
	cp := *p
	b := *p.Base
	cp.Base = &b
	return &cp
}
