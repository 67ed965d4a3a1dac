// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytrace

import (
	"runtime"

	"raytrace/kdtree"
	"raytrace/material"
)

// Config tunes the renderer: recursion depth, kd-tree build cost
// parameters, ambient scene colors, and the worker pool size. It is
// built with functional-option setters rather than an exported struct
// literal, following the teacher's accessor-method style over exported
// fields (see camera.go).
type Config struct {
	maxDepth int

	buildCfg kdtree.BuildConfig

	background    material.Color
	globalAmbient material.Color

	workers int
}

// maxDepthHardCap bounds recursion regardless of configuration, per
// spec §5 ("bounded by max_depth <= 8 in practice").
const maxDepthHardCap = 8

// defaultMaxDepth is the scene-level recursion depth used when no
// WithMaxDepth option is supplied (spec §4.5's "default 3").
const defaultMaxDepth = 3

// NewConfig returns a Config with the renderer's defaults: max depth 3,
// the kd-tree's default SAH tuning, a black background/ambient, and one
// worker per available CPU.
func NewConfig() *Config {
	return &Config{
		maxDepth:      defaultMaxDepth,
		buildCfg:      kdtree.DefaultBuildConfig(),
		background:    material.Black,
		globalAmbient: material.Black,
		workers:       runtime.GOMAXPROCS(0),
	}
}

// WithMaxDepth sets the recursion depth, clamped to [1, 8].
func (c *Config) WithMaxDepth(n int) *Config {
	if n < 1 {
		n = 1
	}
	if n > maxDepthHardCap {
		n = maxDepthHardCap
	}
	c.maxDepth = n
	return c
}

// WithWorkers sets the render worker-pool size; values less than 1 are
// clamped to 1.
func (c *Config) WithWorkers(n int) *Config {
	if n < 1 {
		n = 1
	}
	c.workers = n
	return c
}

// WithBackground sets the color returned for a primary ray that hits
// nothing.
func (c *Config) WithBackground(col material.Color) *Config {
	c.background = col
	return c
}

// WithGlobalAmbient sets the scene-wide ambient light color, multiplied
// into every surface's ambient material color during direct
// illumination.
func (c *Config) WithGlobalAmbient(col material.Color) *Config {
	c.globalAmbient = col
	return c
}

// WithBuildConfig overrides the kd-tree's SAH build tuning.
func (c *Config) WithBuildConfig(bc kdtree.BuildConfig) *Config {
	c.buildCfg = bc
	return c
}
