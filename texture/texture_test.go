// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package texture

import (
	"testing"

	"raytrace/material"
	"raytrace/math/lin"
)

func TestCheckeredAlternates(t *testing.T) {
	red := material.NewPhong()
	blue := material.NewPhong()
	c := NewCheckered(red, blue)

	got := c.Apply(0.1, 0.1, lin.V3{})
	if got != material.Material(red) {
		t.Errorf("square (0,0) should use Material1")
	}
	got = c.Apply(0.6, 0.1, lin.V3{})
	if got != material.Material(blue) {
		t.Errorf("square (1,0) should use Material2")
	}
	got = c.Apply(0.6, 0.6, lin.V3{})
	if got != material.Material(red) {
		t.Errorf("square (1,1) should alternate back to Material1")
	}
}

func TestCheckeredTilesNegativeCoordinates(t *testing.T) {
	red := material.NewPhong()
	blue := material.NewPhong()
	c := NewCheckered(red, blue)

	got := c.Apply(-0.1, 0.1, lin.V3{})
	if got != material.Material(blue) {
		t.Errorf("square (-1,0) should tile to Material2")
	}
}
