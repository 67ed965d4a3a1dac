// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package kdtree

import (
	"sort"

	"raytrace/aabb"
)

// eventType distinguishes the three kinds of per-object, per-axis
// events the SAH sweep consumes (spec §3's ExtentTriple). A Flat event
// fires when an object's extent on the axis is a single point
// (min==max, e.g. a triangle lying exactly in a splitting plane).
type eventType int

const (
	eventMax eventType = iota
	eventFlat
	eventMin
)

// event is one ExtentTriple: a (value, type, id) triple used only
// during the build sweep.
type event struct {
	value float64
	kind  eventType
	id    int
}

// lessEvent orders two events lexicographically on (value, kind, id),
// with Max < Flat < Min as the tie-break at an exactly coincident
// value (spec §3): this way, at a coincident split the object leaving
// the left half-space (Max) is counted out before the object entering
// the right half-space (Min) is counted in.
func lessEvent(a, b event) bool {
	if a.value != b.value {
		return a.value < b.value
	}
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	return a.id < b.id
}

// sortEvents sorts events in place per lessEvent.
func sortEvents(events []event) {
	sort.Slice(events, func(i, j int) bool { return lessEvent(events[i], events[j]) })
}

// buildAxisEvents produces the sorted event list for one axis over the
// given object ids, using box(id) to fetch each object's (possibly
// clipped) extent on that axis.
func buildAxisEvents(ids []int, axis int, box func(id int) aabb.Box) []event {
	events := make([]event, 0, 2*len(ids))
	for _, id := range ids {
		lo, hi := box(id).Axis(axis)
		if lo == hi {
			events = append(events, event{value: lo, kind: eventFlat, id: id})
			continue
		}
		events = append(events, event{value: lo, kind: eventMin, id: id})
		events = append(events, event{value: hi, kind: eventMax, id: id})
	}
	sortEvents(events)
	return events
}
