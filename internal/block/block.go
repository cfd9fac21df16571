// Package block implements a flattening/grouping algorithm: a flat
// sequence of directed, possibly-groupable items is collapsed into
// maximal adjacent runs sharing one direction, each run becoming a single
// Step the driver can execute as one request/response round trip instead
// of one per statement.
//
// The algorithm itself has no notion of what an "item" is — the semantic
// package feeds it ast statements, but nothing here imports ast, so the
// same grouping logic could serve any other directed, groupable sequence.
package block

import "github.com/turingarena/turingarena/internal/reference"

// Item is one unit of work to be placed into a Step: a statement (or a
// synthesized node) tagged with the direction of data flow it causes and
// whether it may be merged with neighbors of the same direction.
type Item[T any] struct {
	Node      T
	Direction reference.Direction
	Groupable bool
}

// Step is a maximal adjacent run of same-direction, mutually groupable
// Items, or a single non-groupable Item standing alone.
type Step[T any] struct {
	Direction reference.Direction
	Nodes     []T
}

// Group flattens items into Steps: scan left to right, start a new Step
// whenever the direction changes or either the current item or the run
// it would join is not groupable. A non-groupable item always ends its
// own Step: it can neither absorb a neighbor nor be absorbed by one.
func Group[T any](items []Item[T]) []Step[T] {
	var steps []Step[T]
	openGroupable := false // whether the open run may still absorb items
	for _, it := range items {
		if len(steps) > 0 {
			last := &steps[len(steps)-1]
			if openGroupable && it.Groupable && last.Direction == it.Direction {
				last.Nodes = append(last.Nodes, it.Node)
				continue
			}
		}
		steps = append(steps, Step[T]{Direction: it.Direction, Nodes: []T{it.Node}})
		openGroupable = it.Groupable
	}
	return steps
}
