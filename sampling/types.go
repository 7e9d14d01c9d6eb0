package sampling

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/dbnet/dbn"
)

var (
	// ErrNetworkNil is returned when Run receives a nil network.
	ErrNetworkNil = errors.New("sampling: network is nil")

	// ErrInvalidSampleCount indicates fewer than one sample per step.
	ErrInvalidSampleCount = errors.New("sampling: sample count must be positive")

	// ErrInvalidWorkers indicates fewer than one worker.
	ErrInvalidWorkers = errors.New("sampling: worker count must be positive")

	// ErrUnknownEngine indicates an unsupported engine kind.
	ErrUnknownEngine = errors.New("sampling: unknown engine")

	// ErrDegenerateWeights indicates resampling cannot accept any particle.
	ErrDegenerateWeights = errors.New("sampling: degenerate particle weights")

	// ErrInvalidConfidence indicates a confidence level outside (0,1).
	ErrInvalidConfidence = errors.New("sampling: confidence must lie in (0,1)")
)

// Kind names an inference algorithm.
type Kind string

const (
	// KindPrediction selects forward, non-resampling simulation.
	KindPrediction Kind = "prediction"

	// KindParticleFilter selects weighted simulation with resampling.
	KindParticleFilter Kind = "particle"
)

// Engine fills the marginal buffers of a compiled network in place.
type Engine interface {
	// Run estimates P(X(t)) for every node and every t in [0, horizon].
	Run(ctx context.Context, net *dbn.Network) error

	// Kind reports which algorithm the engine implements.
	Kind() Kind

	// Samples reports the number of trials or particles per time step.
	Samples() int
}

// DefaultMaxResampleScans bounds consecutive fruitless resampling passes.
const DefaultMaxResampleScans = 1000

// Options configures an Engine.
type Options struct {
	// Seed drives every random draw; 0 selects the fixed default seed.
	Seed int64

	// Workers splits each step's trials across goroutines. Default 1.
	Workers int

	// MaxResampleScans is the number of consecutive full passes over the
	// particles without a single acceptance after which the particle filter
	// gives up with ErrDegenerateWeights.
	MaxResampleScans int

	// Logger receives per-step Debug records. Default discards.
	Logger *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns single-worker, default-seed options with a
// discarding logger.
func DefaultOptions() Options {
	return Options{
		Seed:             0,
		Workers:          1,
		MaxResampleScans: DefaultMaxResampleScans,
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithSeed fixes the random seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithWorkers sets the per-step worker count.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithMaxResampleScans overrides DefaultMaxResampleScans. Values below one
// are ignored.
func WithMaxResampleScans(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxResampleScans = n
		}
	}
}

// WithLogger installs a logger. Passing nil has no effect.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// New returns the engine of the requested kind.
func New(kind Kind, samples int, opts ...Option) (Engine, error) {
	switch kind {
	case KindPrediction:
		return NewPrediction(samples, opts...), nil
	case KindParticleFilter:
		return NewParticleFilter(samples, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, kind)
	}
}

// ParseKind converts a configuration string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindPrediction, KindParticleFilter:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEngine, s)
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// validate checks the run preconditions shared by both engines.
func validate(net *dbn.Network, samples int, o Options) error {
	if net == nil {
		return ErrNetworkNil
	}
	if samples < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleCount, samples)
	}
	if o.Workers < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, o.Workers)
	}

	return nil
}
