// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package kdtree

import (
	"testing"

	"raytrace/aabb"
	"raytrace/math/lin"
)

func unitV(x, y, z float64) lin.V3 {
	v := lin.V3{X: x, Y: y, Z: z}
	v.Unit()
	return v
}

func TestWalkVisitsLeavesInNonDecreasingOrder(t *testing.T) {
	boxes := gridBoxes()
	tree, err := Build(len(boxes), func(id int) aabb.Box { return boxes[id] }, nil, DefaultBuildConfig())
	if err != nil {
		t.Fatal(err)
	}

	origin := lin.V3{X: -5, Y: 1, Z: 1}
	dir := unitV(1, 0, 0)

	last := -1.0
	tree.Walk(origin, dir, 100, func(ids []int, tMin, tMax float64) float64 {
		if tMin < last-1e-9 {
			t.Errorf("leaf visited out of order: tMin=%v after previous tMin=%v", tMin, last)
		}
		last = tMin
		return 100
	})
}

func TestWalkStopsWhenBestSoFarBeatsRemainingLeaves(t *testing.T) {
	boxes := gridBoxes()
	tree, err := Build(len(boxes), func(id int) aabb.Box { return boxes[id] }, nil, DefaultBuildConfig())
	if err != nil {
		t.Fatal(err)
	}

	origin := lin.V3{X: -5, Y: 1, Z: 1}
	dir := unitV(1, 0, 0)

	visited := 0
	tree.Walk(origin, dir, 100, func(ids []int, tMin, tMax float64) float64 {
		visited++
		return 0 // no remaining leaf can be closer than distance 0
	})
	if visited != 1 {
		t.Errorf("expected exactly one leaf visited once bestSoFar collapses to 0, got %d", visited)
	}
}

func TestWalkMissesEmptyTree(t *testing.T) {
	tree := &Tree{RootBox: aabb.Empty()}
	called := false
	tree.Walk(lin.V3{}, unitV(1, 0, 0), 100, func(ids []int, tMin, tMax float64) float64 {
		called = true
		return 100
	})
	if called {
		t.Error("walking a tree with no nodes should never invoke the visitor")
	}
}

func TestWalkVisitsALeafForAxisAlignedRay(t *testing.T) {
	boxes := []aabb.Box{cubeAt(0, 0, 0), cubeAt(10, 0, 0)}
	tree, err := Build(len(boxes), func(id int) aabb.Box { return boxes[id] }, nil, DefaultBuildConfig())
	if err != nil {
		t.Fatal(err)
	}

	var gotIDs []int
	tree.Walk(lin.V3{X: -5, Y: 0, Z: 0}, unitV(1, 0, 0), 100, func(ids []int, tMin, tMax float64) float64 {
		gotIDs = append(gotIDs, ids...)
		return 100
	})
	if len(gotIDs) == 0 {
		t.Fatal("expected to visit at least one leaf along the ray")
	}
}
