// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package material

import (
	"math"
	"testing"

	"raytrace/math/lin"
)

func TestColorMul(t *testing.T) {
	a := Color{R: 0.5, G: 1, B: 0}
	b := Color{R: 2, G: 0.5, B: 9}
	got := a.Mul(b)
	want := Color{R: 1, G: 0.5, B: 0}
	if got != want {
		t.Errorf("Mul() = %+v, want %+v", got, want)
	}
}

func TestColorClamp01(t *testing.T) {
	c := Color{R: -1, G: 0.5, B: 2}
	got := c.Clamp01()
	want := Color{R: 0, G: 0.5, B: 1}
	if got != want {
		t.Errorf("Clamp01() = %+v, want %+v", got, want)
	}
}

func TestCalcRefractDirNormalIncidence(t *testing.T) {
	n := lin.V3{X: 0, Y: 0, Z: 1}
	in := lin.V3{X: 0, Y: 0, Z: -1}
	out, ok := calcRefractDir(&n, &in, 1.5)
	if !ok {
		t.Fatalf("expected refraction to succeed at normal incidence")
	}
	if !lin.Aeq(out.X, 0) || !lin.Aeq(out.Y, 0) || !lin.Aeq(out.Z, -1) {
		t.Errorf("normal incidence should pass straight through, got %+v", out)
	}
}

func TestCalcRefractDirTotalInternalReflection(t *testing.T) {
	n := lin.V3{X: 0, Y: 0, Z: 1}
	// Steep grazing angle exiting a dense (index 1.5) medium into air:
	// total internal reflection should trigger.
	in := lin.V3{X: 0.99, Y: 0, Z: 0.1411}
	in.Unit()
	_, ok := calcRefractDir(&n, &in, 1.5)
	if ok {
		t.Errorf("expected total internal reflection at grazing incidence with low index of refraction")
	}
}

func TestPhongLocalLightingBackFace(t *testing.T) {
	p := NewPhong()
	n := lin.V3{X: 0, Y: 0, Z: 1}
	l := lin.V3{X: 0, Y: 0, Z: -1}
	v := lin.V3{X: 0, Y: 0, Z: 1}
	got := p.LocalLighting(n, l, v, nil, White, White, 1)
	if !got.IsBlack() {
		t.Errorf("light behind the surface should contribute no direct light, got %+v", got)
	}
}

func TestPhongLocalLightingDirectHit(t *testing.T) {
	p := NewPhong()
	p.Diffuse = White
	p.Specular = Black
	n := lin.V3{X: 0, Y: 0, Z: 1}
	l := lin.V3{X: 0, Y: 0, Z: 1}
	v := lin.V3{X: 0, Y: 0, Z: 1}
	got := p.LocalLighting(n, l, v, nil, White, White, 1)
	if !lin.Aeq(got.R, 1) {
		t.Errorf("head-on diffuse lighting should saturate channel, got %+v", got)
	}
}

func TestCookTorranceLocalLightingHeadOnIsFinite(t *testing.T) {
	c := NewCookTorrance()
	c.Diffuse = White
	c.Specular = White
	n := lin.V3{X: 0, Y: 0, Z: 1}
	l := lin.V3{X: 0, Y: 0, Z: 1}
	v := lin.V3{X: 0, Y: 0, Z: 1}
	got := c.LocalLighting(n, l, v, nil, White, White, 1)
	if got.R <= 0 || math.IsNaN(got.R) || math.IsInf(got.R, 0) {
		t.Errorf("head-on Cook-Torrance lighting should be finite and positive, got %+v", got)
	}
}

func TestBeckmannPeaksAtNormalIncidence(t *testing.T) {
	onAxis := beckmann(1, 0.2)
	offAxis := beckmann(0.5, 0.2)
	if onAxis <= offAxis {
		t.Errorf("beckmann distribution should peak when the half vector aligns with the normal")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewPhong()
	clone := p.Clone().(*Phong)
	clone.Diffuse = Color{R: 1}
	if p.Diffuse == clone.Diffuse {
		t.Errorf("Clone should not alias the original material's Base")
	}
}
