// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package primitive

import (
	"math"
	"testing"

	"raytrace/math/lin"
)

func unit(x, y, z float64) lin.V3 {
	v := lin.V3{X: x, Y: y, Z: z}
	v.Unit()
	return v
}

func TestSphereIntersectFrontHit(t *testing.T) {
	s, err := NewSphere(lin.V3{}, 1)
	if err != nil {
		t.Fatal(err)
	}
	dist, vp, ok := s.Intersect(lin.V3{X: 0, Y: 0, Z: 5}, unit(0, 0, -1), 100)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(dist-4) > 1e-9 {
		t.Errorf("dist = %v, want 4", dist)
	}
	if !vp.Front {
		t.Error("expected front face")
	}
	if math.Abs(vp.Normal.Z-1) > 1e-9 {
		t.Errorf("normal = %v, want (0,0,1)", vp.Normal)
	}
}

func TestSphereIntersectTangentMisses(t *testing.T) {
	s, _ := NewSphere(lin.V3{}, 1)
	_, _, ok := s.Intersect(lin.V3{X: 0, Y: 1, Z: 5}, unit(0, 0, -1), 100)
	if ok {
		t.Error("a grazing tangent ray should report no hit")
	}
}

func TestSphereRejectsNonPositiveRadius(t *testing.T) {
	if _, err := NewSphere(lin.V3{}, 0); err != ErrDegenerate {
		t.Errorf("err = %v, want ErrDegenerate", err)
	}
}

func TestEllipsoidIntersectAlongAxis(t *testing.T) {
	e, err := NewEllipsoid(lin.V3{}, unit(1, 0, 0), unit(0, 1, 0), unit(0, 0, 1), 2, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	dist, _, ok := e.Intersect(lin.V3{X: 5, Y: 0, Z: 0}, unit(-1, 0, 0), 100)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(dist-3) > 1e-9 {
		t.Errorf("dist = %v, want 3", dist)
	}
}

func TestCylinderSideHit(t *testing.T) {
	c, err := NewCylinder(lin.V3{}, unit(0, 0, 1), 2, unit(1, 0, 0), unit(0, 1, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	dist, vp, ok := c.Intersect(lin.V3{X: 5, Y: 0, Z: 1}, unit(-1, 0, 0), 100)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(dist-4) > 1e-9 {
		t.Errorf("dist = %v, want 4", dist)
	}
	if vp.Face != 0 {
		t.Errorf("face = %v, want side(0)", vp.Face)
	}
}

func TestCylinderCapHit(t *testing.T) {
	c, _ := NewCylinder(lin.V3{}, unit(0, 0, 1), 2, unit(1, 0, 0), unit(0, 1, 0), 1)
	dist, vp, ok := c.Intersect(lin.V3{X: 0, Y: 0, Z: 10}, unit(0, 0, -1), 100)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(dist-8) > 1e-9 {
		t.Errorf("dist = %v, want 8", dist)
	}
	if vp.Face != 2 {
		t.Errorf("face = %v, want top cap(2)", vp.Face)
	}
}

func TestConeSideHitAtBaseRadius(t *testing.T) {
	k, err := NewCone(lin.V3{}, unit(0, 0, 1), 2, unit(1, 0, 0), unit(0, 1, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	// at height 0 (the base) the cross-section radius is 1.
	dist, _, ok := k.Intersect(lin.V3{X: 5, Y: 0, Z: 0}, unit(-1, 0, 0), 100)
	if !ok {
		t.Fatal("expected hit at the base")
	}
	if math.Abs(dist-4) > 1e-6 {
		t.Errorf("dist = %v, want 4", dist)
	}
}

func TestConeRejectsNonPositiveHeight(t *testing.T) {
	if _, err := NewCone(lin.V3{}, unit(0, 0, 1), 0, unit(1, 0, 0), unit(0, 1, 0), 1); err != ErrDegenerate {
		t.Errorf("err = %v, want ErrDegenerate", err)
	}
}

func TestTorusSideHit(t *testing.T) {
	tor, err := NewTorus(lin.V3{}, unit(0, 0, 1), 2, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	// a ray along x=2 parallel to the torus axis passes through the
	// tube's center circle and should clip the near and far tube wall.
	dist, _, ok := tor.Intersect(lin.V3{X: 2, Y: 0, Z: -5}, unit(0, 0, 1), 100)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(dist-4.5) > 1e-6 {
		t.Errorf("dist = %v, want 4.5", dist)
	}
}

func TestTorusMissesOutsideBody(t *testing.T) {
	tor, _ := NewTorus(lin.V3{}, unit(0, 0, 1), 2, 0.5)
	_, _, ok := tor.Intersect(lin.V3{X: 0, Y: 0, Z: -5}, unit(0, 0, 1), 100)
	if ok {
		t.Error("a ray through the torus's empty center hole should miss")
	}
}

func TestTriangleBarycentricHit(t *testing.T) {
	tr, err := NewTriangle(lin.V3{X: 0, Y: 0, Z: 0}, lin.V3{X: 1, Y: 0, Z: 0}, lin.V3{X: 0, Y: 1, Z: 0})
	if err != nil {
		t.Fatal(err)
	}
	dist, vp, ok := tr.Intersect(lin.V3{X: 0.2, Y: 0.2, Z: 5}, unit(0, 0, -1), 100)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(dist-5) > 1e-9 {
		t.Errorf("dist = %v, want 5", dist)
	}
	if vp.U < 0 || vp.V < 0 || vp.U+vp.V > 1 {
		t.Errorf("barycentric (u,v) = (%v,%v) outside the triangle", vp.U, vp.V)
	}
}

func TestTriangleRejectsCollinearVertices(t *testing.T) {
	_, err := NewTriangle(lin.V3{X: 0}, lin.V3{X: 1}, lin.V3{X: 2})
	if err != ErrDegenerate {
		t.Errorf("err = %v, want ErrDegenerate", err)
	}
}

func TestParallelogramEdgeBounds(t *testing.T) {
	pg, err := NewParallelogram(lin.V3{}, lin.V3{X: 1}, lin.V3{Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, ok := pg.Intersect(lin.V3{X: 2, Y: 2, Z: 5}, unit(0, 0, -1), 100); ok {
		t.Error("a ray outside the parallelogram's edges should miss")
	}
	if _, _, ok := pg.Intersect(lin.V3{X: 0.5, Y: 0.5, Z: 5}, unit(0, 0, -1), 100); !ok {
		t.Error("a ray inside the parallelogram's edges should hit")
	}
}

func TestParallelepipedFaceSelection(t *testing.T) {
	pp, err := NewParallelepiped(lin.V3{X: -1, Y: -1, Z: -1}, lin.V3{X: 2}, lin.V3{Y: 2}, lin.V3{Z: 2})
	if err != nil {
		t.Fatal(err)
	}
	dist, vp, ok := pp.Intersect(lin.V3{X: 5, Y: 0, Z: 0}, unit(-1, 0, 0), 100)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(dist-4) > 1e-9 {
		t.Errorf("dist = %v, want 4", dist)
	}
	if vp.Face != 0 {
		t.Errorf("face = %v, want 0", vp.Face)
	}
}

func TestParallelepipedRejectsZeroVolume(t *testing.T) {
	_, err := NewParallelepiped(lin.V3{}, lin.V3{X: 1}, lin.V3{X: 2}, lin.V3{Z: 1})
	if err != ErrDegenerate {
		t.Errorf("err = %v, want ErrDegenerate", err)
	}
}

// flatPatch builds a degree-3x3 patch that happens to be exactly
// planar (z=0, over [0,1]x[0,1]) so its evaluated surface and its
// bounding parallelepiped agree exactly, giving an easily checked
// intersection result.
func flatPatch() ControlNet {
	var net ControlNet
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			net[i][j] = lin.V4{X: float64(i) / 3, Y: float64(j) / 3, Z: 0, W: 1}
		}
	}
	return net
}

func TestBezierSetFlatPatchHit(t *testing.T) {
	bs := NewBezierSet()
	bs.AddPatch(flatPatch())
	dist, vp, ok := bs.Intersect(lin.V3{X: 0.5, Y: 0.5, Z: 5}, unit(0, 0, -1), 100)
	if !ok {
		t.Fatal("expected hit on the flat patch")
	}
	if math.Abs(dist-5) > 1e-3 {
		t.Errorf("dist = %v, want ~5", dist)
	}
	if math.Abs(vp.Normal.Z) < 0.9 {
		t.Errorf("normal = %v, want roughly (0,0,+-1)", vp.Normal)
	}
}

func TestBezierSetMissesOutsidePatch(t *testing.T) {
	bs := NewBezierSet()
	bs.AddPatch(flatPatch())
	_, _, ok := bs.Intersect(lin.V3{X: 10, Y: 10, Z: 5}, unit(0, 0, -1), 100)
	if ok {
		t.Error("a ray far outside the patch's footprint should miss")
	}
}

func TestBezierSetRefinesNonFlatPatch(t *testing.T) {
	var net ControlNet
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			net[i][j] = lin.V4{X: float64(i) / 3, Y: float64(j) / 3, Z: float64(i) * float64(j) / 9, W: 1}
		}
	}
	bs := NewBezierSet()
	bs.AddPatch(net)
	if len(bs.refined) == 0 {
		t.Fatal("expected at least one refined leaf patch")
	}
	for _, rp := range bs.refined {
		_, nice := boundingFrame(rp.net)
		if !nice {
			t.Error("every refined leaf must have a nice bounding parallelepiped")
		}
	}
}
