// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytrace

import "sync"

// Render traces every pixel of scene's camera into buf using the
// scene's configured worker count, grounded on the teacher's
// frame.go/eng.go per-frame dispatch loop, adapted from "one update per
// frame" to "one scanline per task" (spec §5's data-parallel worker
// pool). The scene must be fully built (BuildKdTree called) and have a
// camera assigned before calling Render.
func Render(s *Scene, buf *PixelBuffer) {
	width, height := s.camera.Resolution()
	rows := make(chan int, height)
	for j := 0; j < height; j++ {
		rows <- j
	}
	close(rows)

	var wg sync.WaitGroup
	for w := 0; w < s.cfg.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range rows {
				renderRow(s, buf, width, j)
			}
		}()
	}
	wg.Wait()
}

// renderRow traces one scanline. Each worker's call owns its own stack
// (RayTrace's recursion) and never touches another worker's row, so no
// synchronization is needed beyond the channel handing out row indices
// (spec §5's "no locks on the render hot path").
func renderRow(s *Scene, buf *PixelBuffer, width, j int) {
	for i := 0; i < width; i++ {
		dir := s.camera.PixelDirection(i, j)
		col := RayTrace(s, s.cfg.maxDepth, s.camera.Eye(), dir, noAvoid)
		buf.SetPixel(i, j, col)
	}
}
