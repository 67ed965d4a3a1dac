// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package light implements directional and positional scene lights,
// including quadratic distance attenuation and spotlight cutoff,
// grounded on original_source/Graphics/Light.h and DirectLight.h.
package light

import (
	"math"

	"raytrace/material"
	"raytrace/math/lin"
)

// Light answers the questions the tracer needs to evaluate direct
// illumination at a surface point: the unit direction toward the light
// and the attenuation factor (1 for a directional light, falloff with
// distance and optional spot cutoff for a positional light), plus the
// light's own ambient/diffuse/specular color.
type Light interface {
	// Sample returns the unit direction from point toward the light,
	// the light's attenuated color, and the maximum distance a shadow
	// feeler toward the light needs to travel (lin.Large for a
	// directional light). ok is false if the point is outside a
	// spotlight's cone, meaning the light contributes nothing.
	Sample(point lin.V3) (dir lin.V3, dist float64, color material.Color, ok bool)

	// Ambient is the light's contribution to the scene's ambient term,
	// independent of surface position or occlusion.
	Ambient() material.Color
}

// Directional is a light at infinite distance: every point in the scene
// sees the same direction toward it and no distance attenuation
// applies (spec §3).
type Directional struct {
	// Dir is the unit direction FROM the light TOWARD the scene, stored
	// the way original_source's Light::SetDirectional keeps the negated
	// direction; Sample returns the reverse (point-to-light) direction.
	Dir          lin.V3
	Color        material.Color
	AmbientColor material.Color
}

// NewDirectional returns a Directional light pointed along dir (from the
// light toward the scene) with the given diffuse/specular color. The
// ambient contribution defaults to the same color, matching the
// original renderer's Light::Reset behavior of tying all three color
// slots together unless overridden.
func NewDirectional(dir lin.V3, color material.Color) *Directional {
	dir.Unit()
	return &Directional{Dir: dir, Color: color, AmbientColor: color}
}

func (d *Directional) Sample(point lin.V3) (lin.V3, float64, material.Color, bool) {
	toLight := lin.V3{X: -d.Dir.X, Y: -d.Dir.Y, Z: -d.Dir.Z}
	return toLight, lin.Large, d.Color, true
}

func (d *Directional) Ambient() material.Color { return d.AmbientColor }

// Positional is a point light with optional quadratic distance
// attenuation and an optional spotlight cone, grounded on
// original_source/Graphics/Light.h's AttenuateConstant/Linear/Quadratic
// and SpotDirection/SpotCutoffCosine/SpotAttenuate fields.
type Positional struct {
	Position     lin.V3
	Color        material.Color
	AmbientColor material.Color

	// AttenuateConstant, AttenuateLinear, and AttenuateQuadratic give
	// the distance attenuation factor 1/(c + l*d + q*d^2). When that
	// denominator is not positive (as with all three fields zero) no
	// attenuation is applied; NewPositional sets the constant term to 1.
	AttenuateConstant  float64
	AttenuateLinear    float64
	AttenuateQuadratic float64

	// spotDirection, spotCutoffCosine, and spotExponent implement an
	// optional spotlight cone; spotActive is false until SetSpot is
	// called, matching original_source's SpotlightFlag.
	spotActive       bool
	spotDirection    lin.V3
	spotCutoffCosine float64
	spotExponent     float64
}

// NewPositional returns a Positional light at position with no
// attenuation falloff beyond the constant term and no spotlight cone.
func NewPositional(position lin.V3, color material.Color) *Positional {
	return &Positional{
		Position:          position,
		Color:             color,
		AmbientColor:      color,
		AttenuateConstant: 1,
	}
}

// SetAttenuate sets the quadratic distance attenuation coefficients.
func (p *Positional) SetAttenuate(constant, linear, quadratic float64) *Positional {
	p.AttenuateConstant, p.AttenuateLinear, p.AttenuateQuadratic = constant, linear, quadratic
	return p
}

// SetSpot turns p into a spotlight pointed along dir (from the light
// toward the scene) with the given cutoff angle cosine and falloff
// exponent.
func (p *Positional) SetSpot(dir lin.V3, cutoffCosine, exponent float64) *Positional {
	dir.Unit()
	p.spotActive = true
	p.spotDirection = dir
	p.spotCutoffCosine = cutoffCosine
	p.spotExponent = exponent
	return p
}

func (p *Positional) Sample(point lin.V3) (lin.V3, float64, material.Color, bool) {
	toLight := lin.V3{X: p.Position.X - point.X, Y: p.Position.Y - point.Y, Z: p.Position.Z - point.Z}
	dist := toLight.Len()
	if dist == 0 {
		return lin.V3{}, 0, material.Black, false
	}
	toLight.Unit()

	atten := 1.0
	denom := p.AttenuateConstant + p.AttenuateLinear*dist + p.AttenuateQuadratic*dist*dist
	if denom > 0 {
		atten = 1 / denom
	}

	col := p.Color.Scale(atten)

	if p.spotActive {
		fromLight := lin.V3{X: -toLight.X, Y: -toLight.Y, Z: -toLight.Z}
		cosAngle := fromLight.Dot(&p.spotDirection)
		if cosAngle < p.spotCutoffCosine {
			return toLight, dist, material.Black, false
		}
		col = col.Scale(pow(cosAngle, p.spotExponent))
	}

	return toLight, dist, col, true
}

func (p *Positional) Ambient() material.Color { return p.AmbientColor }

func pow(base, exp float64) float64 {
	if base <= 0 {
		return 0
	}
	return math.Pow(base, exp)
}
