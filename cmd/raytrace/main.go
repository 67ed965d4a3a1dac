// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command raytrace reads an NFF scene description and renders it to a
// BMP image. Usage:
//
//	raytrace -in scene.nff -out scene.bmp [-config settings.yaml] [-depth 3] [-workers N]
//
// Grounded on the teacher's render/gl/gen/gen.go flag-driven main, and
// on encoding via golang.org/x/image/bmp (already part of the
// teacher's dependency set) rather than stdlib image/png, per spec §6's
// "single flat image, 8-bit per channel" output contract. The optional
// -config file is a yaml render settings document (see configfile.go),
// grounded on the teacher's own yaml-based load/shd.go.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/image/bmp"

	"raytrace"
	"raytrace/nff"
)

func main() {
	in := flag.String("in", "", "input NFF scene file (required)")
	out := flag.String("out", "out.bmp", "output BMP file")
	config := flag.String("config", "", "optional yaml render settings file")
	depth := flag.Int("depth", 0, "maximum recursive ray depth (1-8, 0 = config/default)")
	workers := flag.Int("workers", 0, "render worker count (0 = config/default)")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*in, *out, *config, *depth, *workers); err != nil {
		slog.Error("raytrace: render failed", "error", err)
		os.Exit(1)
	}
}

func run(inPath, outPath, configPath string, depth, workers int) error {
	src, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("raytrace: open %s: %w", inPath, err)
	}
	defer src.Close()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if depth > 0 {
		cfg = cfg.WithMaxDepth(depth)
	}
	if workers > 0 {
		cfg = cfg.WithWorkers(workers)
	}

	scene, camera, skipped, err := nff.Load(src, cfg)
	if err != nil {
		return fmt.Errorf("raytrace: load %s: %w", inPath, err)
	}
	if skipped > 0 {
		slog.Warn("raytrace: some NFF lines could not be parsed", "file", inPath, "skipped", skipped)
	}
	if camera == nil {
		return fmt.Errorf("raytrace: %s defines no viewport ('v' record)", inPath)
	}

	width, height := camera.Resolution()
	buf := raytrace.NewPixelBuffer(width, height)
	raytrace.Render(scene, buf)

	dst, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("raytrace: create %s: %w", outPath, err)
	}
	defer dst.Close()
	if err := bmp.Encode(dst, buf.Image()); err != nil {
		return fmt.Errorf("raytrace: encode %s: %w", outPath, err)
	}
	return nil
}

// loadConfig returns raytrace.NewConfig()'s defaults when path is
// empty, otherwise parses path as a yaml render settings file.
func loadConfig(path string) (*raytrace.Config, error) {
	if path == "" {
		return raytrace.NewConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("raytrace: read %s: %w", path, err)
	}
	cfg, err := raytrace.LoadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("raytrace: %s: %w", path, err)
	}
	return cfg, nil
}
