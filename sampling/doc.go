// Package sampling runs approximate inference over a compiled dbn.Network
// by sequential Monte-Carlo simulation.
//
// What:
//
//   - Engine: the strategy interface shared by both algorithms; New(kind, …)
//     selects one without type inspection.
//   - Prediction: stateless forward sampling. For every step t, `samples`
//     independent trials visit the nodes in topological order; the marginal
//     is the fraction of trials in which the node fired.
//   - ParticleFilter: forward sampling at t=0, then per step: generate
//     weighted particles (evidence on caused nodes multiplies importance
//     weights of the particle's cause states), resample with replacement by
//     cyclic acceptance scanning, and count the accepted particles.
//   - Interval: Wald binomial confidence interval for a reported marginal.
//
// Activation rule, shared by both engines:
//
//	observed at t         p = observation (a hard override)
//	root, t = 0           p = cpt[0]
//	root, t > 0           p = 1 − (1 − marginal[t−1]·continuation)(1 − cpt[0])
//	caused                p = cpt[index of active causes]
//	active                ⇔ p ≥ u,  u ~ U[0,1)
//
// Concurrency:
//
//   - Steps are strictly sequential: step t reads marginal[t−1].
//   - Inside a step, WithWorkers(n) splits the trials across n goroutines.
//     Each worker owns a derived *rand.Rand, a disjoint particle range and
//     private counters; counters are reduced after the errgroup barrier.
//   - Particle-filter resampling always runs on the calling goroutine.
//
// Determinism:
//
//   - Seed 0 selects a fixed default seed; the same seed, worker count and
//     network always produce identical marginals.
//
// Errors:
//
//   - ErrNetworkNil          nil network
//   - ErrInvalidSampleCount  samples < 1
//   - ErrInvalidWorkers      workers < 1
//   - ErrUnknownEngine       unknown Kind
//   - ErrDegenerateWeights   every particle weight is zero, or the
//     resampling scan exceeded MaxResampleScans fruitless passes
//   - ErrInvalidConfidence   Interval confidence outside (0,1)
//   - context.Canceled       run cancelled between steps
package sampling
