package dbn

import (
	"context"
	"errors"
)

var (
	// ErrGraphNil is returned when a nil *causal.Graph is passed to Compile
	// or TopologicalOrder.
	ErrGraphNil = errors.New("dbn: graph is nil")

	// ErrInvalidHorizon indicates a negative time horizon.
	ErrInvalidHorizon = errors.New("dbn: time horizon must be non-negative")

	// ErrCyclicGraph indicates topological ordering could not make progress.
	ErrCyclicGraph = errors.New("dbn: cyclic graph")

	// ErrTimeOutOfRange indicates a marginal slot outside [0, horizon].
	ErrTimeOutOfRange = errors.New("dbn: time out of range")

	// ErrMissingObservation indicates no observation exists at the queried time.
	ErrMissingObservation = errors.New("dbn: no observation at time")

	// ErrNodeNotFound indicates a variable id absent from the network.
	ErrNodeNotFound = errors.New("dbn: node not found")
)

// Option configures optional behavior of Compile and TopologicalOrder.
type Option func(*compileOptions)

// compileOptions holds settings for compilation, currently only cancellation.
type compileOptions struct {
	ctx context.Context // allows cancellation; defaults to Background
}

func defaultCompileOptions() compileOptions {
	return compileOptions{ctx: context.Background()}
}

// WithContext returns an Option that sets the cancellation context.
// Passing a nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *compileOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// Node is one compiled variable of a Network.
//
// Everything except the marginal buffer is fixed at compile time.
type Node struct {
	id   int
	name string

	cpt    []float64 // dense table, len 2^len(causes)
	causes []int     // positions in Network order, cause insertion order kept

	persistence  int
	continuation float64
	observations map[int]float64

	marginal []float64 // len horizon+1; slot 0 is the prior
}

// Network is the topologically ordered output of Compile.
type Network struct {
	nodes    []*Node
	position map[int]int // variable id → index in nodes
	horizon  int
}
