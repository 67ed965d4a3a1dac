// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytrace

import (
	"image"
	"image/color"

	"raytrace/material"
)

// PixelBuffer is the tracer's only output: an RGBA image that clamps
// every written color to [0,1] itself, per spec §6 ("clamping to [0,1]
// is the buffer's responsibility, not the tracer's").
type PixelBuffer struct {
	img *image.RGBA
}

// NewPixelBuffer returns a black width x height buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// SetPixel writes col into column i, row j, clamping each channel to
// [0,1] before converting to 8-bit color.
func (b *PixelBuffer) SetPixel(i, j int, col material.Color) {
	c := col.Clamp01()
	b.img.SetRGBA(i, j, color.RGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: 255,
	})
}

// Image returns the underlying image, ready for encoding.
func (b *PixelBuffer) Image() *image.RGBA { return b.img }

// Bounds returns the buffer's pixel rectangle.
func (b *PixelBuffer) Bounds() image.Rectangle { return b.img.Bounds() }
