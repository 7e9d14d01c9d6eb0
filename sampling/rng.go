// File: rng.go
// Role: RNG utilities shared by both engines.
//
// Goals:
//   - Determinism: same seed ⇒ identical marginals across runs.
//   - Encapsulation: a single RNG factory; no time-based sources.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Each worker receives its own
//     stream from deriveRNG; the base stream stays on the calling goroutine.
package sampling

import "math/rand"

// defaultRNGSeed is used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream id with a SplitMix64 finalizer.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// deriveRNG creates an independent stream from base and a stream id.
// base.Int63() is consumed once so successive derivations differ even when
// the same stream id is reused.
func deriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	parent := defaultRNGSeed
	if base != nil {
		parent = base.Int63()
	}

	return rand.New(rand.NewSource(deriveSeed(parent, stream)))
}

// workerStreams derives one RNG per worker for the coming step.
func workerStreams(base *rand.Rand, workers int) []*rand.Rand {
	out := make([]*rand.Rand, workers)
	for w := range out {
		out[w] = deriveRNG(base, uint64(w))
	}

	return out
}

// fires draws u ~ U[0,1) and reports p ≥ u.
func fires(p float64, r *rand.Rand) bool {
	return p >= r.Float64()
}
