package cpt

import (
	"errors"
	"fmt"
	"math/bits"
)

// MaxCauses bounds the table size at 2^MaxCauses entries.
const MaxCauses = 30

// rnorThreshold is the smallest number of active causes resolved by RNOR
// instead of direct Noisy-OR expansion.
const rnorThreshold = 3

var (
	// ErrNegativeCauseCount is returned when Build receives k < 0.
	ErrNegativeCauseCount = errors.New("cpt: negative cause count")

	// ErrTooManyCauses is returned when 2^k would exceed the supported table size.
	ErrTooManyCauses = errors.New("cpt: too many causes")
)

// Build compiles elicited into a dense table of 2^k probabilities.
//
// elicited maps power-set indices to probabilities; index 0 is the leak.
// Entries at or above 2^k are ignored. The input map is not modified.
func Build(elicited map[int]float64, k int) ([]float64, error) {
	// 1. Validate the table dimension
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCauseCount, k)
	}
	if k > MaxCauses {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyCauses, k, MaxCauses)
	}

	// 2. Seed the leak
	table := make([]float64, 1<<k)
	table[0] = elicited[0]

	// 3. Resolve every other index in increasing order
	var (
		p  float64
		ok bool
	)
	for index := 1; index < len(table); index++ {
		if p, ok = elicited[index]; ok {
			table[index] = p // explicit elicitation wins
			continue
		}
		if PopCount(index) < rnorThreshold {
			table[index] = noisyOr(table, index)
		} else {
			table[index] = recursiveNoisyOr(table, index, k)
		}
	}

	// 4. Fold the leak into every combination
	foldLeak(table)

	return table, nil
}

// PopCount returns the number of active causes encoded by index.
func PopCount(index int) int {
	return bits.OnesCount(uint(index))
}

// noisyOr combines the singleton probabilities of every set bit:
// 1 − Π (1 − table[bit]).
func noisyOr(table []float64, index int) float64 {
	acc := 1.0
	rest := index
	for rest != 0 {
		low := rest & -rest // lowest set bit
		acc *= 1 - table[low]
		rest ^= low
	}

	return 1 - acc
}

// recursiveNoisyOr derives an entry with three or more active causes from
// lower-order entries. For every set bit b, the numerator collects
// 1 − table[i∖b] and the denominator collects 1 − table[i∖{b, next(b)}],
// where next(b) is the next set bit of i∖b scanning upward cyclically.
func recursiveNoisyOr(table []float64, index, k int) float64 {
	num, den := 1.0, 1.0
	for bit := 0; bit < k; bit++ {
		mask := 1 << bit
		if index&mask == 0 {
			continue
		}
		without := index ^ mask
		num *= 1 - table[without]
		den *= 1 - table[without^nextSetBit(without, bit, k)]
	}

	// Guard the ratio: an inconsistent elicitation can push num above den.
	switch {
	case den < num:
		return 0
	case den == 0:
		return 1
	default:
		return 1 - num/den
	}
}

// nextSetBit returns the mask of the first set bit of x strictly after bit,
// wrapping around at k. x must have at least one set bit.
func nextSetBit(x, bit, k int) int {
	for step := 1; step <= k; step++ {
		mask := 1 << ((bit + step) % k)
		if x&mask != 0 {
			return mask
		}
	}

	return 0
}

// foldLeak composes a non-zero leak into every non-empty combination.
func foldLeak(table []float64) {
	leak := table[0]
	if leak <= 0 {
		return
	}
	for i := 1; i < len(table); i++ {
		table[i] = 1 - (1-table[i])*(1-leak)
	}
}
