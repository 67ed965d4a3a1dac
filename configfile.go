// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytrace

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"raytrace/kdtree"
	"raytrace/material"
)

// renderConfig is the on-disk shape of a render settings file, grounded
// on the teacher's load/shd.go yaml-tagged config structs. The yaml is
// string/number based so that hand-written settings files stay easy to
// read and diff.
type renderConfig struct {
	Depth         int        `yaml:"depth"`
	Workers       int        `yaml:"workers"`
	Background    []float64  `yaml:"background"`
	GlobalAmbient []float64  `yaml:"global_ambient"`
	KdTree        *kdTreeCfg `yaml:"kdtree"`
}

type kdTreeCfg struct {
	LeafCostMultiplier     float64 `yaml:"leaf_cost_multiplier"`
	TraversalCost          float64 `yaml:"traversal_cost"`
	NumRays                float64 `yaml:"num_rays"`
	NumAccesses            float64 `yaml:"num_accesses"`
	EventStorageMultiplier int     `yaml:"event_storage_multiplier"`
	MaxLeafObjects         int     `yaml:"max_leaf_objects"`
}

// LoadConfig parses a yaml render settings document and returns the
// Config it describes, starting from NewConfig's defaults so a settings
// file only needs to mention the fields it wants to override.
func LoadConfig(data []byte) (*Config, error) {
	def := kdtree.DefaultBuildConfig()
	rc := renderConfig{KdTree: &kdTreeCfg{
		LeafCostMultiplier:     def.LeafCostMultiplier,
		TraversalCost:          def.TraversalCost,
		NumRays:                def.NumRays,
		NumAccesses:            def.NumAccesses,
		EventStorageMultiplier: def.EventStorageMultiplier,
		MaxLeafObjects:         def.MaxLeafObjects,
	}}
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("raytrace: config yaml: %w", err)
	}

	cfg := NewConfig()
	if rc.Depth > 0 {
		cfg = cfg.WithMaxDepth(rc.Depth)
	}
	if rc.Workers > 0 {
		cfg = cfg.WithWorkers(rc.Workers)
	}
	if rc.Background != nil {
		col, err := colorFrom(rc.Background)
		if err != nil {
			return nil, fmt.Errorf("raytrace: config background: %w", err)
		}
		cfg = cfg.WithBackground(col)
	}
	if rc.GlobalAmbient != nil {
		col, err := colorFrom(rc.GlobalAmbient)
		if err != nil {
			return nil, fmt.Errorf("raytrace: config global_ambient: %w", err)
		}
		cfg = cfg.WithGlobalAmbient(col)
	}
	if rc.KdTree != nil {
		cfg = cfg.WithBuildConfig(kdtree.BuildConfig{
			LeafCostMultiplier:     rc.KdTree.LeafCostMultiplier,
			TraversalCost:          rc.KdTree.TraversalCost,
			NumRays:                rc.KdTree.NumRays,
			NumAccesses:            rc.KdTree.NumAccesses,
			EventStorageMultiplier: rc.KdTree.EventStorageMultiplier,
			MaxLeafObjects:         rc.KdTree.MaxLeafObjects,
		})
	}
	return cfg, nil
}

func colorFrom(rgb []float64) (material.Color, error) {
	if len(rgb) != 3 {
		return material.Color{}, fmt.Errorf("want [r, g, b], got %d values", len(rgb))
	}
	return material.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}
