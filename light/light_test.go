// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package light

import (
	"testing"

	"raytrace/material"
	"raytrace/math/lin"
)

func TestDirectionalSampleReversesDirection(t *testing.T) {
	d := NewDirectional(lin.V3{X: 0, Y: 0, Z: -1}, material.White)
	dir, dist, col, ok := d.Sample(lin.V3{X: 5, Y: 5, Z: 5})
	if !ok {
		t.Fatal("directional light should always be visible")
	}
	if !lin.Aeq(dir.X, 0) || !lin.Aeq(dir.Y, 0) || !lin.Aeq(dir.Z, 1) {
		t.Errorf("Sample direction = %+v, want toward +Z", dir)
	}
	if dist <= 0 {
		t.Errorf("directional shadow feeler distance should be large and positive, got %v", dist)
	}
	if col != material.White {
		t.Errorf("Sample color = %+v, want White", col)
	}
}

func TestPositionalAttenuationDecreasesWithDistance(t *testing.T) {
	p := NewPositional(lin.V3{X: 0, Y: 0, Z: 0}, material.White)
	p.SetAttenuate(1, 0, 1)
	_, _, near, _ := p.Sample(lin.V3{X: 1, Y: 0, Z: 0})
	_, _, far, _ := p.Sample(lin.V3{X: 10, Y: 0, Z: 0})
	if far.R >= near.R {
		t.Errorf("attenuation should reduce intensity with distance: near=%v far=%v", near.R, far.R)
	}
}

func TestPositionalSpotCutoffExcludesOutsideCone(t *testing.T) {
	p := NewPositional(lin.V3{X: 0, Y: 0, Z: 0}, material.White)
	p.SetSpot(lin.V3{X: 0, Y: 0, Z: -1}, 0.9, 1)
	_, _, _, ok := p.Sample(lin.V3{X: 0, Y: 0, Z: -5})
	if !ok {
		t.Errorf("point directly ahead of the spotlight should be lit")
	}
	_, _, _, ok = p.Sample(lin.V3{X: 5, Y: 0, Z: 0})
	if ok {
		t.Errorf("point to the side of a tight spotlight cone should be excluded")
	}
}

func TestPositionalSampleAtLightPosition(t *testing.T) {
	p := NewPositional(lin.V3{X: 1, Y: 1, Z: 1}, material.White)
	_, _, _, ok := p.Sample(lin.V3{X: 1, Y: 1, Z: 1})
	if ok {
		t.Errorf("sampling exactly at a point light's position should not report a usable direction")
	}
}
