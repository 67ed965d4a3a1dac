// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytrace

import (
	"math"

	"raytrace/math/lin"
)

// Camera holds the eye position and view basis used to generate primary
// ray directions, grounded on original_source/Graphics/CameraView.h's
// Eye/UnitViewDir/UnitUpVector/UnitRightVector fields.
type Camera struct {
	eye    lin.V3
	lookAt lin.V3
	up     lin.V3

	// forward, right, and camUp are the orthonormal view basis derived
	// from eye/lookAt/up; screenWidth/screenHeight are the half-angle
	// extents of the image plane at unit distance along forward.
	forward, right, camUp lin.V3
	screenWidth, screenHeight float64

	width, height int // pixel resolution
}

// NewCamera returns a Camera at eye looking toward lookAt with the given
// up hint, vertical field of view in degrees, and pixel resolution.
// Width and height must be positive.
func NewCamera(eye, lookAt, up lin.V3, fovDegrees float64, width, height int) *Camera {
	c := &Camera{eye: eye, lookAt: lookAt, up: up, width: width, height: height}
	c.rebuildBasis(fovDegrees)
	return c
}

func (c *Camera) rebuildBasis(fovDegrees float64) {
	c.forward.Sub(&c.lookAt, &c.eye)
	c.forward.Unit()

	c.right.Cross(&c.forward, &c.up)
	c.right.Unit()
	c.camUp.Cross(&c.right, &c.forward)
	c.camUp.Unit()

	aspect := float64(c.width) / float64(c.height)
	c.screenHeight = math.Tan(fovDegrees * math.Pi / 360)
	c.screenWidth = c.screenHeight * aspect
}

// Eye returns the camera's eye position.
func (c *Camera) Eye() lin.V3 { return c.eye }

// Resolution returns the camera's pixel width and height.
func (c *Camera) Resolution() (width, height int) { return c.width, c.height }

// PixelDirection returns the unit primary-ray direction for the pixel at
// column i, row j (0-indexed, row 0 at the top of the image), per spec
// §6's camera.pixel_direction contract.
func (c *Camera) PixelDirection(i, j int) lin.V3 {
	// Map the pixel center to normalized device coordinates in [-1,1],
	// with row 0 at the top (NDC y = +1) matching the PixelBuffer's
	// top-left origin convention.
	ndcX := (2*(float64(i)+0.5)/float64(c.width) - 1)
	ndcY := -(2*(float64(j)+0.5)/float64(c.height) - 1)

	dir := lin.V3{
		X: c.forward.X + ndcX*c.screenWidth*c.right.X + ndcY*c.screenHeight*c.camUp.X,
		Y: c.forward.Y + ndcX*c.screenWidth*c.right.Y + ndcY*c.screenHeight*c.camUp.Y,
		Z: c.forward.Z + ndcX*c.screenWidth*c.right.Z + ndcY*c.screenHeight*c.camUp.Z,
	}
	dir.Unit()
	return dir
}
