// File: topological.go
// Role: Kahn-style topological ordering of a causal graph.
//
// The ordering mirrors a rotating work queue: variables are visited in
// ascending id order, resolved ones are assigned the next position, the
// rest go back to the tail. A full rotation that resolves nothing proves a
// cycle among the remaining variables.
//
// Complexity:
//
//   - Time:   O(V² + E) worst case (a chain listed in reverse id order)
//   - Memory: O(V)
package dbn

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/dbnet/causal"
)

// TopologicalOrder returns variable ids ordered so that every cause precedes
// its effects. Ties are broken by ascending id.
// If g is nil, returns ErrGraphNil; if a cycle exists, returns ErrCyclicGraph
// listing the unresolved ids. You may pass WithContext(ctx) for cancellation.
func TopologicalOrder(g *causal.Graph, opts ...Option) ([]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	return orderVariables(g.Variables(), applyOptions(opts))
}

// orderVariables runs the elimination over a consistent snapshot.
func orderVariables(vars []*causal.Variable, o compileOptions) ([]int, error) {
	// 1. Count unresolved causes and index effects by id
	pending := make(map[int]int, len(vars))
	effects := make(map[int][]int, len(vars))
	queue := make([]int, 0, len(vars))
	for _, v := range vars {
		pending[v.ID()] = v.CauseCount()
		effects[v.ID()] = v.Effects()
		queue = append(queue, v.ID())
	}

	// 2. Rotate the queue until it drains
	order := make([]int, 0, len(vars))
	stalled := 0 // consecutive pops without progress
	for len(queue) > 0 {
		if err := o.ctx.Err(); err != nil {
			return nil, err
		}
		id := queue[0]
		queue = queue[1:]

		if pending[id] > 0 {
			// 2a. Not ready yet: back to the tail
			queue = append(queue, id)
			stalled++
			if stalled >= len(queue) {
				return nil, cycleError(queue)
			}
			continue
		}

		// 2b. Ready: assign the next position and release one cause per effect
		order = append(order, id)
		stalled = 0
		for _, effect := range effects[id] {
			pending[effect]--
		}
	}

	return order, nil
}

// cycleError reports the unresolved ids in ascending order.
func cycleError(remaining []int) error {
	ids := append([]int(nil), remaining...)
	sort.Ints(ids)

	return fmt.Errorf("%w: unresolved variables %v", ErrCyclicGraph, ids)
}

func applyOptions(opts []Option) compileOptions {
	o := defaultCompileOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
