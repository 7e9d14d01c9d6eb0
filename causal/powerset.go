// File: powerset.go
// Role: power-set re-indexing of elicited probabilities.
//
// The functions in this file are pure: they never mutate their input and
// always return a freshly allocated map. Graph edits call them and swap the
// result in, which keeps the bit-shift invariant testable in isolation.
package causal

import "sort"

// DefaultCausalStrength is the probability seeded at index 1 whenever a new
// cause is added to a variable.
const DefaultCausalStrength = 1.0

// shiftForNewCause re-keys elicited for a freshly appended cause.
// Every index is doubled (the old causes move one bit up) and the new cause
// takes bit 0 with DefaultCausalStrength.
//
// Complexity: O(m) where m = len(elicited).
func shiftForNewCause(elicited map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(elicited)+1)
	for idx, p := range elicited {
		out[idx<<1] = p
	}
	out[1] = DefaultCausalStrength

	return out
}

// dropCauseBit removes every combination that includes bit and shifts all
// higher bits right by one. Bits below bit keep their position.
//
// Example with bit=1 (cause B of [A,B,C]):
//
//	0b101 (A,C) → 0b11 (A,C)     0b010 (B) → dropped     0b001 (C) → 0b001
//
// Complexity: O(m).
func dropCauseBit(elicited map[int]float64, bit int) map[int]float64 {
	mask := 1 << bit
	low := mask - 1
	out := make(map[int]float64, len(elicited))
	for idx, p := range elicited {
		if idx&mask != 0 {
			continue // combination contains the removed cause
		}
		out[(idx>>(bit+1))<<bit|idx&low] = p
	}

	return out
}

// causeBit returns the bit owned by the cause at insertion position pos
// among n causes.
func causeBit(pos, n int) int {
	return n - 1 - pos
}

// SingletonIndex returns the power-set index that activates only the cause
// at insertion position pos among n causes.
func SingletonIndex(pos, n int) int {
	return 1 << causeBit(pos, n)
}

// sortedIndices returns the keys of m in ascending order.
func sortedIndices(m map[int]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	return keys
}
