// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package kdtree builds and traverses a kd-tree spatial index over a
// fixed set of primitives, grounded on
// original_source/DataStructs/KdTree.h's node layout and SAH build.
package kdtree

import "raytrace/aabb"

// noChild marks a pruned (empty) half-space in a Split node.
const noChild = -1

// Node is a tagged union: a Split node carries an axis and split
// value plus the indices of its two children in the tree's node
// array; a Leaf node carries the ids of the primitives it holds. All
// nodes live in a single contiguous array (spec §3); the root is index
// 0.
type Node struct {
	IsLeaf bool

	// Split fields.
	Axis      int // 0=X, 1=Y, 2=Z
	SplitVal  float64
	Left      int // noChild if the left half-space is empty
	Right     int // noChild if the right half-space is empty
	ParentIdx int

	// Leaf fields.
	ObjectIDs []int
}

// Tree is the built kd-tree: the node array plus the bounding box of
// the root node. It keeps no reference to the AABB callbacks it was
// built from.
type Tree struct {
	Nodes   []Node
	RootBox aabb.Box
}
