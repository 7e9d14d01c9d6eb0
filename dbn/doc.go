// Package dbn compiles a causal.Graph into a dynamic Bayesian network: a
// topologically ordered, immutable array of Nodes ready for sampling.
//
// What:
//
//   - TopologicalOrder: Kahn-style elimination over the variables' causes.
//     The queue is seeded in ascending id order; a variable whose causes are
//     all resolved takes the next position and releases its effects, any
//     other variable rotates to the tail. Ties are therefore broken by id.
//     A full rotation without progress means a cycle (ErrCyclicGraph).
//   - Compile: orders the graph, remaps every cause id to its position,
//     builds each dense CPT with package cpt and allocates a zeroed
//     marginal buffer of horizon+1 slots (slot 0 is the static prior).
//
// Invariants:
//
//   - For every Node at position i, every cause position c satisfies c < i.
//   - Compiling the same graph twice yields identical orders and tables.
//   - A Network is a snapshot: later graph edits are never reflected in it.
//     Only inference engines write, and only into marginal buffers.
//
// Complexity:
//
//   - TopologicalOrder: Time O(V²+E) worst case (queue rotation), Memory O(V)
//   - Compile:          adds Σ O(2^k · k) for the CPTs
//
// Errors:
//
//   - ErrGraphNil           graph pointer is nil
//   - ErrInvalidHorizon     horizon < 0
//   - ErrCyclicGraph        dependency cycle, unresolved ids in the message
//   - ErrTimeOutOfRange     marginal slot outside [0, horizon]
//   - ErrMissingObservation observation queried at a time with none
//   - context.Canceled      compile cancelled via WithContext
package dbn
