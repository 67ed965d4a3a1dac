// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package nff implements a minimal loader for the NFF scene-description
// subset named in spec §6 (viewport/background/light/flat-material/
// sphere/polygon records), grounded on
// original_source/RaytraceMgr/LoadNffFile.cpp. It is intentionally not
// a general NFF/OBJ implementation — only the records listed above are
// supported; everything else is a recoverable parse error.
package nff

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"raytrace"
	"raytrace/light"
	"raytrace/material"
	"raytrace/math/lin"
	"raytrace/primitive"
)

// Load reads an NFF scene from r into a freshly built Scene using cfg
// (or raytrace.NewConfig()'s defaults if cfg is nil). skipped is the
// count of lines that could not be parsed, recovered by skipping to
// the next line per spec §7's "NFF/OBJ parse error" policy.
func Load(r io.Reader, cfg *raytrace.Config) (scene *raytrace.Scene, camera *raytrace.Camera, skipped int, err error) {
	scene = raytrace.NewScene(cfg)

	var (
		curMaterial material.Material = material.NewPhong()
		viewPending               bool
		from, at, up              lin.V3
		angle                     = 60.0
		width, height             = 256, 256
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		cmd := fields[0]
		args := fields[1:]

		if viewPending && cmd != "from" && cmd != "at" && cmd != "up" && cmd != "angle" && cmd != "hither" && cmd != "resolution" {
			camera = raytrace.NewCamera(from, at, up, angle, width, height)
			scene.SetCamera(camera)
			viewPending = false
		}

		var ok bool
		switch cmd {
		case "v":
			viewPending = true
			ok = true
		case "from":
			if viewPending {
				from, ok = parseV3(args)
			}
		case "at":
			if viewPending {
				at, ok = parseV3(args)
			}
		case "up":
			if viewPending {
				up, ok = parseV3(args)
			}
		case "angle":
			if viewPending && len(args) == 1 {
				angle, ok = parseFloat(args[0])
			}
		case "hither":
			ok = viewPending && len(args) == 1
		case "resolution":
			if viewPending && len(args) == 2 {
				w, e1 := strconv.Atoi(args[0])
				h, e2 := strconv.Atoi(args[1])
				if e1 == nil && e2 == nil && w > 0 && h > 0 {
					width, height, ok = w, h, true
				}
			}
		case "b":
			var c lin.V3
			if c, ok = parseV3(args); ok {
				scene.SetBackground(material.Color{R: c.X, G: c.Y, B: c.Z})
			}
		case "l":
			ok = parseLight(scene, args)
		case "f":
			var m material.Material
			if m, ok = parseMaterial(args); ok {
				curMaterial = m
			}
		case "s":
			ok = parseSphere(scene, curMaterial, args)
		case "p":
			ok = parsePolygon(scene, curMaterial, sc, args, &lineNum)
		default:
			ok = false
		}

		if !ok {
			skipped++
			slog.Warn("nff: skipping unparsable line", "line", lineNum, "text", line)
		}
	}
	if viewPending {
		camera = raytrace.NewCamera(from, at, up, angle, width, height)
		scene.SetCamera(camera)
	}
	if err := sc.Err(); err != nil {
		return scene, camera, skipped, fmt.Errorf("nff: read: %w", err)
	}

	if err := scene.BuildKdTree(); err != nil {
		return scene, camera, skipped, err
	}
	return scene, camera, skipped, nil
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func parseFloats(args []string, n int) ([]float64, bool) {
	if len(args) != n {
		return nil, false
	}
	out := make([]float64, n)
	for i, a := range args {
		f, ok := parseFloat(a)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

func parseV3(args []string) (lin.V3, bool) {
	f, ok := parseFloats(args, 3)
	if !ok {
		return lin.V3{}, false
	}
	return lin.V3{X: f[0], Y: f[1], Z: f[2]}, true
}

func parseLight(scene *raytrace.Scene, args []string) bool {
	switch len(args) {
	case 3:
		pos, ok := parseV3(args)
		if !ok {
			return false
		}
		scene.AddLight(light.NewPositional(pos, material.White))
		return true
	case 6:
		f, ok := parseFloats(args, 6)
		if !ok {
			return false
		}
		pos := lin.V3{X: f[0], Y: f[1], Z: f[2]}
		col := material.Color{R: f[3], G: f[4], B: f[5]}
		scene.AddLight(light.NewPositional(pos, col))
		return true
	default:
		return false
	}
}

// parseMaterial implements the 'f' record per original_source's
// NffFileLoader::Load case 3: ambient and diffuse both set to Kd*color,
// specular set to Ks*color, and a transmissive component enabled only
// when T>0.
func parseMaterial(args []string) (material.Material, bool) {
	f, ok := parseFloats(args, 8)
	if !ok {
		return nil, false
	}
	color := material.Color{R: f[0], G: f[1], B: f[2]}
	kd, ks, shine, transmission, refrIndex := f[3], f[4], f[5], f[6], f[7]

	m := material.NewPhong()
	m.Ambient = color.Scale(kd)
	m.Diffuse = color.Scale(kd)
	m.Specular = color.Scale(ks)
	m.Shininess = shine
	if transmission > 0 {
		m.SetTransmissive(material.Color{R: transmission, G: transmission, B: transmission}, refrIndex)
	}
	return m, true
}

func parseSphere(scene *raytrace.Scene, mat material.Material, args []string) bool {
	f, ok := parseFloats(args, 4)
	if !ok || f[3] <= 0 {
		return false
	}
	s, err := primitive.NewSphere(lin.V3{X: f[0], Y: f[1], Z: f[2]}, f[3])
	if err != nil {
		return false
	}
	s.SetMaterial(mat)
	scene.AddViewable(s)
	return true
}

// parsePolygon reads the 'p N' record's N following vertex lines and
// triangulates them as a simple fan from the first vertex, matching
// original_source's ProcessFaceNFF (spec §6 describes a "bisecting-index
// scheme" but the ground-truth loader uses a plain fan; see DESIGN.md).
func parsePolygon(scene *raytrace.Scene, mat material.Material, sc *bufio.Scanner, args []string, lineNum *int) bool {
	if len(args) != 1 {
		return false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 3 {
		return false
	}
	verts := make([]lin.V3, 0, n)
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return false
		}
		*lineNum++
		v, ok := parseV3(strings.Fields(sc.Text()))
		if !ok {
			return false
		}
		verts = append(verts, v)
	}
	for i := 2; i < len(verts); i++ {
		tr, err := primitive.NewTriangle(verts[0], verts[i-1], verts[i])
		if err != nil {
			continue // degenerate sub-triangle: skip, not a parse error
		}
		tr.SetMaterial(mat)
		scene.AddViewable(tr)
	}
	return true
}
