package sampling

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dbnet/dbn"
)

// evidenceThreshold splits an observed value into a boolean direction.
// Observations are usually 0 or 1 give or take a small epsilon.
const evidenceThreshold = 0.49

// ParticleFilter is the sequential importance-resampling estimator.
//
// Complexity: O(T · samples · nodes) plus an O(samples) resampling scan
// per step in the non-degenerate case.
type ParticleFilter struct {
	samples int
	opts    Options
}

// NewParticleFilter returns a ParticleFilter with samples particles.
// Argument validation is deferred to Run.
func NewParticleFilter(samples int, opts ...Option) *ParticleFilter {
	return &ParticleFilter{samples: samples, opts: buildOptions(opts)}
}

// Kind returns KindParticleFilter.
func (pf *ParticleFilter) Kind() Kind { return KindParticleFilter }

// Samples returns the number of particles.
func (pf *ParticleFilter) Samples() int { return pf.samples }

// population is the particle set of one step: a flat row-major state matrix
// (particle × node) and one importance weight per particle.
type population struct {
	width   int
	states  []bool
	weights []float64
}

func newPopulation(particles, width int) *population {
	return &population{
		width:   width,
		states:  make([]bool, particles*width),
		weights: make([]float64, particles),
	}
}

func (p *population) row(i int) []bool {
	return p.states[i*p.width : (i+1)*p.width]
}

// Run fills marginal[t] of every node for t = 0 … horizon.
//
// Steps:
//  1. t = 0: plain forward sampling over the prior (same as Prediction).
//  2. t ≥ 1: generate weighted particles across workers, then resample
//     with replacement on the calling goroutine and store the counts.
func (pf *ParticleFilter) Run(ctx context.Context, net *dbn.Network) error {
	// 1. Validate
	if err := validate(net, pf.samples, pf.opts); err != nil {
		return err
	}
	nodes := net.Nodes()
	if len(nodes) == 0 {
		return nil
	}
	base := rngFromSeed(pf.opts.Seed)

	// 2. Prior pass
	if err := ctx.Err(); err != nil {
		return err
	}
	counts, err := forwardCounts(ctx, nodes, 0, pf.samples, workerStreams(base, pf.opts.Workers))
	if err != nil {
		return err
	}
	if err = storeMarginals(nodes, 0, counts, pf.samples); err != nil {
		return err
	}
	pf.opts.Logger.Debug("particle filter prior", "particles", pf.samples, "nodes", len(nodes))

	// 3. Weighted steps
	pop := newPopulation(pf.samples, len(nodes))
	for t := 1; t < net.Steps(); t++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = pf.generate(ctx, nodes, t, pop, workerStreams(base, pf.opts.Workers)); err != nil {
			return err
		}
		counts, err = resample(pop, base, pf.opts.MaxResampleScans)
		if err != nil {
			return fmt.Errorf("t=%d: %w", t, err)
		}
		if err = storeMarginals(nodes, t, counts, pf.samples); err != nil {
			return err
		}
		pf.opts.Logger.Debug("particle filter step",
			"t", t, "particles", pf.samples, "ess", effectiveSampleSize(pop.weights))
	}

	return nil
}

// generate samples every particle of step t into pop. Workers own disjoint
// particle ranges, so rows and weights are written without locking.
func (pf *ParticleFilter) generate(ctx context.Context, nodes []*dbn.Node, t int, pop *population, streams []*rand.Rand) error {
	clear(pop.states)
	g, gctx := errgroup.WithContext(ctx)
	for w, sp := range partition(pf.samples, len(streams)) {
		w, sp := w, sp
		g.Go(func() error {
			r := streams[w]
			for i := sp.lo; i < sp.hi; i++ {
				if (i-sp.lo)%cancelCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				pop.weights[i] = sampleParticle(nodes, t, pop.row(i), r)
			}

			return nil
		})
	}

	return g.Wait()
}

// sampleParticle draws one full assignment for step t into state and
// returns its importance weight.
func sampleParticle(nodes []*dbn.Node, t int, state []bool, r *rand.Rand) float64 {
	weight := 1.0
	for n, node := range nodes {
		var p float64
		obs, observed := node.Evidence(t)
		switch {
		case node.IsRoot():
			// A root has no P(e|x) to weight; soft evidence is sampled as-is.
			p = forwardProbability(node, t, state)
		case !observed:
			p = node.Conditional(node.PowerSetIndex(state))
		default:
			weight *= evidenceWeight(node, obs, state)
			// Still sampled, so non-absolute evidence propagates stochastically.
			p = obs
		}
		if fires(p, r) {
			state[n] = true
		}
	}

	return weight
}

// evidenceWeight scores the particle's cause states against evidence on
// node. For each cause k with singleton strength s_k:
//
//	cause state == observed direction   factor s_k·e
//	otherwise                           factor 1 − s_k·e
//
// where e is the observation, or its complement for a negative observation.
func evidenceWeight(node *dbn.Node, obs float64, state []bool) float64 {
	direction := obs > evidenceThreshold
	evidence := obs
	if !direction {
		evidence = 1 - obs
	}

	w := 1.0
	for k := 0; k < node.CauseCount(); k++ {
		s := node.Conditional(node.SingletonIndex(k)) * evidence
		if state[node.CauseAt(k)] == direction {
			w *= s
		} else {
			w *= 1 - s
		}
	}

	return w
}

// resample accepts particles with replacement by scanning the population
// cyclically; particle i is accepted when w_i > 0 and w_i ≥ u, u ~ U[0,1).
// It returns how many accepted particles had each node active.
//
// The scan fails with ErrDegenerateWeights immediately when every weight is
// zero, and after maxScans consecutive passes without any acceptance.
func resample(pop *population, r *rand.Rand, maxScans int) ([]int, error) {
	n := len(pop.weights)
	if allZero(pop.weights) {
		return nil, fmt.Errorf("%w: all %d weights are zero", ErrDegenerateWeights, n)
	}

	counts := make([]int, pop.width)
	accepted, idle := 0, 0
	for i := 0; accepted < n; i = (i + 1) % n {
		u := r.Float64()
		if w := pop.weights[i]; w > 0 && w >= u {
			for k, on := range pop.row(i) {
				if on {
					counts[k]++
				}
			}
			accepted++
			idle = 0
			continue
		}
		idle++
		if idle >= maxScans*n {
			return nil, fmt.Errorf("%w: no particle accepted in %d passes", ErrDegenerateWeights, maxScans)
		}
	}

	return counts, nil
}

func allZero(ws []float64) bool {
	for _, w := range ws {
		if w > 0 {
			return false
		}
	}

	return true
}

// effectiveSampleSize returns (Σw)² / Σw², a weight-degeneracy diagnostic.
func effectiveSampleSize(ws []float64) float64 {
	var sum, sq float64
	for _, w := range ws {
		sum += w
		sq += w * w
	}
	if sq == 0 {
		return 0
	}

	return sum * sum / sq
}
