// Package causal defines the editable causal model: binary Variables
// connected by directed cause→effect links inside a thread-safe Graph.
//
// What:
//
//   - Variable: a binary random variable with a leak probability, sparse
//     elicited cause-combination probabilities keyed by power-set index,
//     temporal persistence/continuation parameters, and observations.
//   - Graph: the mutable collection of Variables plus the graph-edit API
//     (add/remove variable, add/remove link, elicitation, observations).
//
// Power-set convention:
//
//	Every elicited index is a bitmask over the variable's causes. With n
//	causes, the cause at insertion position k owns bit n-1-k: the earliest
//	cause is the most-significant bit, the newest cause is bit 0.
//
//	    causes = [A, B, C]      index 0b101 = 5 ⇒ {A, C} active
//
//	Adding a cause doubles every existing index and seeds index 1 with a
//	default of 1.0. Removing a cause drops every combination containing its
//	bit and closes the gap by shifting the higher bits right. Both
//	re-indexings build a fresh map (see powerset.go).
//
// Concurrency:
//
//	Graph guards all state with a sync.RWMutex. Read accessors return deep
//	clones, so a *Variable obtained from a Graph never aliases live state.
//
// Errors:
//
//   - ErrVariableNotFound       id not present in the graph
//   - ErrDuplicateVariable      explicit id already taken
//   - ErrInvalidID              explicit id is not positive
//   - ErrLinkExists             causal link already present
//   - ErrLinkNotFound           causal link absent
//   - cpt.ErrTooManyCauses      link would exceed cpt.MaxCauses causes
//   - ErrIndexOutOfRange        elicitation index ≥ 2^causeCount
//   - ErrProbabilityOutOfRange  probability outside [0,1] or NaN
//   - ErrInvalidPersistence     persistence < 1
//   - ErrInvalidTime            negative observation time
//   - ErrMissingObservation     observation queried at a time with none
package causal
