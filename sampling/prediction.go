package sampling

import (
	"context"

	"github.com/katalvlaran/dbnet/dbn"
)

// Prediction is the stateless forward simulator. It never weights or
// resamples; evidence only overrides the observed node's own probability.
//
// Complexity: O(T · samples · nodes).
type Prediction struct {
	samples int
	opts    Options
}

// NewPrediction returns a Prediction engine drawing samples trials per step.
// Argument validation is deferred to Run.
func NewPrediction(samples int, opts ...Option) *Prediction {
	return &Prediction{samples: samples, opts: buildOptions(opts)}
}

// Kind returns KindPrediction.
func (p *Prediction) Kind() Kind { return KindPrediction }

// Samples returns the number of trials per step.
func (p *Prediction) Samples() int { return p.samples }

// Run fills marginal[t] of every node for t = 0 … horizon.
func (p *Prediction) Run(ctx context.Context, net *dbn.Network) error {
	// 1. Validate
	if err := validate(net, p.samples, p.opts); err != nil {
		return err
	}
	nodes := net.Nodes()
	if len(nodes) == 0 {
		return nil
	}

	// 2. Simulate each step; step t reads the marginals of step t-1
	base := rngFromSeed(p.opts.Seed)
	for t := 0; t < net.Steps(); t++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		counts, err := forwardCounts(ctx, nodes, t, p.samples, workerStreams(base, p.opts.Workers))
		if err != nil {
			return err
		}
		if err = storeMarginals(nodes, t, counts, p.samples); err != nil {
			return err
		}
		p.opts.Logger.Debug("prediction step", "t", t, "samples", p.samples, "nodes", len(nodes))
	}

	return nil
}
