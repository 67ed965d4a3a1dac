// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package nff

import (
	"strings"
	"testing"

	"raytrace"
)

// s6Scene is spec §8's seed test S6: a red-diffuse unit sphere at the
// origin, viewed head-on through a 2x2 pixel image, expected to render
// every pixel red.
const s6Scene = `
b 0 0 0
v
from 0 0 5
at 0 0 0
up 0 1 0
angle 20
hither 1
resolution 2 2
l 0 0 10
f 1 0 0 0.8 0.0 1 0 1
s 0 0 0 1
`

func TestS6NffSphereRendersAllRedPixels(t *testing.T) {
	scene, camera, skipped, err := Load(strings.NewReader(s6Scene), nil)
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if camera == nil {
		t.Fatal("expected a camera to be parsed from the 'v' block")
	}
	w, h := camera.Resolution()
	if w != 2 || h != 2 {
		t.Fatalf("resolution = %dx%d, want 2x2", w, h)
	}

	buf := raytrace.NewPixelBuffer(w, h)
	raytrace.Render(scene, buf)

	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			r, g, b, _ := buf.Image().At(i, j).RGBA()
			if r>>8 == 0 {
				t.Errorf("pixel (%d,%d) red channel = %d, want non-zero", i, j, r>>8)
			}
			if g>>8 != 0 || b>>8 != 0 {
				t.Errorf("pixel (%d,%d) = (%d,%d,%d), want a pure red tint", i, j, r>>8, g>>8, b>>8)
			}
		}
	}
}

func TestLoadRecoversFromUnparsableLines(t *testing.T) {
	src := `b 0 0 0
this is not a valid record
v
from 0 0 5
at 0 0 0
up 0 1 0
angle 60
hither 1
resolution 1 1
f 1 1 1 1 0 1 0 1
s 0 0 0 1
`
	_, camera, skipped, err := Load(strings.NewReader(src), nil)
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if camera == nil {
		t.Fatal("expected parsing to continue past the bad line and still build a camera")
	}
}

func TestLoadViewFieldsOutsideViewBlockAreSkipped(t *testing.T) {
	src := `from 0 0 5
b 0 0 0
s 0 0 0 1
`
	_, _, skipped, err := Load(strings.NewReader(src), nil)
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1 (stray 'from' outside a 'v' block)", skipped)
	}
}

func TestLoadPolygonFanTriangulation(t *testing.T) {
	src := `f 1 1 1 1 0 1 0 1
p 4
0 0 0
1 0 0
1 1 0
0 1 0
`
	scene, _, skipped, err := Load(strings.NewReader(src), nil)
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if scene == nil {
		t.Fatal("expected a non-nil scene")
	}
}
