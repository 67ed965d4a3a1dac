// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package kdtree

import "raytrace/math/lin"

// VisitFunc is called once per leaf node the traversal reaches, in
// non-decreasing order of entry distance along the ray, with the ids
// held at that leaf and the [tMin,tMax] span of the ray clipped to the
// leaf's box. It returns the caller's current best-hit distance; once
// that distance is less than the entry distance of the next leaf on
// the stack, traversal stops early, since no closer candidate primitive
// can remain. Returning a negative value is the "stop" convention: the
// walk halts immediately regardless of what remains on the stack.
type VisitFunc func(ids []int, tMin, tMax float64) (bestSoFar float64)

type stackFrame struct {
	node       int
	tMin, tMax float64
}

// Walk traverses t along the ray (origin, dir) from distance 0 to
// maxDist, invoking visit at each leaf whose box the ray crosses,
// nearest-leaf-first, using an explicit stack rather than recursion
// (spec §4.4).
func (t *Tree) Walk(origin, dir lin.V3, maxDist float64, visit VisitFunc) {
	tMin, tMax, ok := t.RootBox.Hit(origin, dir, maxDist)
	if !ok || len(t.Nodes) == 0 {
		return
	}

	best := maxDist
	stack := []stackFrame{{node: 0, tMin: tMin, tMax: tMax}}
	for len(stack) > 0 {
		top := len(stack) - 1
		frame := stack[top]
		stack = stack[:top]

		if frame.tMin > best {
			continue
		}

		node := t.Nodes[frame.node]
		if node.IsLeaf {
			if len(node.ObjectIDs) == 0 {
				continue
			}
			best = visit(node.ObjectIDs, frame.tMin, frame.tMax)
			if best < 0 {
				return
			}
			continue
		}

		axis := node.Axis
		var o, d float64
		switch axis {
		case 0:
			o, d = origin.X, dir.X
		case 1:
			o, d = origin.Y, dir.Y
		default:
			o, d = origin.Z, dir.Z
		}

		near, far := node.Left, node.Right
		if d < 0 {
			near, far = node.Right, node.Left
		}

		if d == 0 {
			// Parallel to the splitting plane: the ray lies entirely on
			// one side, decided by the origin's position relative to the
			// split value.
			if o <= node.SplitVal {
				near, far = node.Left, node.Right
			} else {
				near, far = node.Right, node.Left
			}
			if near != noChild {
				stack = append(stack, stackFrame{node: near, tMin: frame.tMin, tMax: frame.tMax})
			}
			continue
		}

		tSplit := (node.SplitVal - o) / d

		var nearMin, nearMax, farMin, farMax float64
		switch {
		case tSplit <= frame.tMin:
			// Entirely on the far side.
			nearMin, nearMax = 0, -1 // empty, pushed nowhere
			farMin, farMax = frame.tMin, frame.tMax
		case tSplit >= frame.tMax:
			// Entirely on the near side.
			nearMin, nearMax = frame.tMin, frame.tMax
			farMin, farMax = 0, -1
		default:
			nearMin, nearMax = frame.tMin, tSplit
			farMin, farMax = tSplit, frame.tMax
		}

		if far != noChild && farMax >= farMin {
			stack = append(stack, stackFrame{node: far, tMin: farMin, tMax: farMax})
		}
		if near != noChild && nearMax >= nearMin {
			stack = append(stack, stackFrame{node: near, tMin: nearMin, tMax: nearMax})
		}
	}
}
