// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytrace

import "testing"

func TestLoadConfigDefaultsWhenFieldsOmitted(t *testing.T) {
	cfg, err := LoadConfig([]byte(`depth: 5`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.maxDepth != 5 {
		t.Errorf("maxDepth = %d, want 5", cfg.maxDepth)
	}
	if cfg.workers != NewConfig().workers {
		t.Errorf("workers = %d, want the default %d", cfg.workers, NewConfig().workers)
	}
}

func TestLoadConfigColorsAndKdTreeTuning(t *testing.T) {
	doc := `
depth: 2
workers: 4
background: [0.1, 0.2, 0.3]
global_ambient: [1, 1, 1]
kdtree:
  leaf_cost_multiplier: 2
  traversal_cost: 1
  num_rays: 1000
  num_accesses: 2
  event_storage_multiplier: 4
  max_leaf_objects: 2
`
	cfg, err := LoadConfig([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.maxDepth != 2 || cfg.workers != 4 {
		t.Errorf("maxDepth/workers = %d/%d, want 2/4", cfg.maxDepth, cfg.workers)
	}
	if cfg.background.R != 0.1 || cfg.background.G != 0.2 || cfg.background.B != 0.3 {
		t.Errorf("background = %+v, want (0.1, 0.2, 0.3)", cfg.background)
	}
	if cfg.globalAmbient.R != 1 || cfg.globalAmbient.G != 1 || cfg.globalAmbient.B != 1 {
		t.Errorf("globalAmbient = %+v, want white", cfg.globalAmbient)
	}
	if cfg.buildCfg.MaxLeafObjects != 2 || cfg.buildCfg.EventStorageMultiplier != 4 {
		t.Errorf("buildCfg = %+v, want MaxLeafObjects=2 EventStorageMultiplier=4", cfg.buildCfg)
	}
}

func TestLoadConfigRejectsMalformedColor(t *testing.T) {
	if _, err := LoadConfig([]byte(`background: [1, 0]`)); err == nil {
		t.Error("expected an error for a two-component color")
	}
}
