// Package modelfile persists causal graphs as YAML model files.
//
// It sits outside the inference core: it reads a causal.Graph through its
// public snapshot API and rebuilds one through the graph-edit API, so every
// invariant the core enforces (power-set bit order, probability ranges,
// link uniqueness) is enforced on load as well.
//
// Format:
//
//	name: outbreak
//	key: 7c9e6679-7425-40de-944b-e07fc1f90ae7
//	counter: 3
//	variables:
//	  - id: 1
//	    name: Exposure
//	    elicited: {0: 0.05}
//	  - id: 2
//	    name: Fever
//	    causes: [1]
//	    elicited: {0: 0.01, 1: 0.7}
//	    continuation: 0.8
//	    observations: {3: 1.0}
//
// causes lists upstream ids in insertion order: the first cause is the
// most-significant bit of every elicited index. elicited is the complete
// elicitation: indices it omits are derived by the CPT compiler. When the
// key is absent altogether, every cause keeps the default strength 1.0.
// Omitted persistence and continuation fall back to the causal package
// defaults.
//
// The storage key is opaque. Save assigns a random UUID when the graph
// carries none; Load restores whatever key the file holds.
//
// Errors:
//
//   - ErrMalformedModel  unknown cause ids, duplicate ids, invalid values
//   - I/O and YAML errors are wrapped with the offending path
package modelfile
