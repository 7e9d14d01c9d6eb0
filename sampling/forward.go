package sampling

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dbnet/dbn"
)

// cancelCheckEvery is how many trials a worker runs between context checks.
const cancelCheckEvery = 1024

// span is the half-open trial range [lo, hi) owned by one worker.
type span struct{ lo, hi int }

// partition splits n trials into at most workers contiguous spans.
func partition(n, workers int) []span {
	if workers > n {
		workers = n
	}
	out := make([]span, workers)
	base, extra := n/workers, n%workers
	lo := 0
	for w := range out {
		size := base
		if w < extra {
			size++
		}
		out[w] = span{lo: lo, hi: lo + size}
		lo += size
	}

	return out
}

// forwardProbability is the activation probability of node at time t given
// the causes already sampled into state.
func forwardProbability(node *dbn.Node, t int, state []bool) float64 {
	if obs, ok := node.Evidence(t); ok {
		return obs
	}
	if node.IsRoot() {
		return rootProbability(node, t)
	}

	return node.Conditional(node.PowerSetIndex(state))
}

// rootProbability composes the previous marginal, decayed by continuation,
// with a fresh leak-driven activation via Noisy-OR.
func rootProbability(node *dbn.Node, t int) float64 {
	if t == 0 {
		return node.Leak()
	}
	prev, _ := node.Marginal(t - 1)

	return 1 - (1-prev*node.Continuation())*(1-node.Leak())
}

// forwardCounts runs samples independent trials at time t, split across the
// given streams, and returns how often each node fired.
func forwardCounts(ctx context.Context, nodes []*dbn.Node, t, samples int, streams []*rand.Rand) ([]int, error) {
	parts := partition(samples, len(streams))
	local := make([][]int, len(parts))

	g, gctx := errgroup.WithContext(ctx)
	for w, sp := range parts {
		w, sp := w, sp
		g.Go(func() error {
			counts := make([]int, len(nodes))
			state := make([]bool, len(nodes))
			r := streams[w]
			for i := sp.lo; i < sp.hi; i++ {
				if (i-sp.lo)%cancelCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				clear(state)
				for n, node := range nodes {
					if fires(forwardProbability(node, t, state), r) {
						state[n] = true
						counts[n]++
					}
				}
			}
			local[w] = counts

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reduceCounts(local, len(nodes)), nil
}

// reduceCounts sums per-worker counters after the step barrier.
func reduceCounts(local [][]int, width int) []int {
	total := make([]int, width)
	for _, counts := range local {
		for n, c := range counts {
			total[n] += c
		}
	}

	return total
}

// storeMarginals writes counts/samples into slot t of every node.
func storeMarginals(nodes []*dbn.Node, t int, counts []int, samples int) error {
	for n, node := range nodes {
		if err := node.SetMarginal(t, float64(counts[n])/float64(samples)); err != nil {
			return err
		}
	}

	return nil
}
