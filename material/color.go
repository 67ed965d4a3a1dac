// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package material implements the Phong and Cook-Torrance local lighting
// models, reflection/transmission color lookup, and Snell refraction.
package material

import "math"

// Color holds radiance or reflectance values, one component per
// wavelength channel. Values are not implicitly clamped — clamping to
// [0,1] happens only at the pixel buffer (see raytrace.PixelBuffer),
// matching spec's separation of concerns.
type Color struct {
	R, G, B float64
}

// Black is the zero color, used as the default emissive and
// transmissive color of a freshly constructed material.
var Black = Color{}

// White is full intensity on every channel.
var White = Color{R: 1, G: 1, B: 1}

// Add returns the componentwise sum of c and o.
func (c Color) Add(o Color) Color { return Color{c.R + o.R, c.G + o.G, c.B + o.B} }

// Scale returns c with every component multiplied by s.
func (c Color) Scale(s float64) Color { return Color{c.R * s, c.G * s, c.B * s} }

// Mul returns the componentwise (Hadamard) product of c and o — the ⊙
// operator from spec's RayTrace pseudocode.
func (c Color) Mul(o Color) Color { return Color{c.R * o.R, c.G * o.G, c.B * o.B} }

// IsBlack returns true if every channel is exactly zero.
func (c Color) IsBlack() bool { return c.R == 0 && c.G == 0 && c.B == 0 }

// Clamp01 returns c with every channel clamped to [0,1].
func (c Color) Clamp01() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Channel selects one of R, G, B by index (0, 1, 2) for the Cook-Torrance
// per-channel index-of-refraction loop.
func (c Color) Channel(i int) float64 {
	switch i {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

// SetChannel returns c with channel i set to v.
func (c Color) SetChannel(i int, v float64) Color {
	switch i {
	case 0:
		c.R = v
	case 1:
		c.G = v
	default:
		c.B = v
	}
	return c
}

func pow(base, exp float64) float64 {
	if base <= 0 {
		return 0
	}
	return math.Pow(base, exp)
}
