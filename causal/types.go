package causal

import (
	"errors"
	"sync"
)

// Sentinel errors for causal graph operations.
var (
	// ErrVariableNotFound indicates an operation referenced a non-existent variable.
	ErrVariableNotFound = errors.New("causal: variable not found")

	// ErrDuplicateVariable indicates an explicit id is already in use.
	ErrDuplicateVariable = errors.New("causal: duplicate variable id")

	// ErrInvalidID indicates an explicit id that is not strictly positive.
	ErrInvalidID = errors.New("causal: variable id must be positive")

	// ErrLinkExists indicates the causal link is already present.
	ErrLinkExists = errors.New("causal: link already exists")

	// ErrLinkNotFound indicates the causal link does not exist.
	ErrLinkNotFound = errors.New("causal: link not found")

	// ErrIndexOutOfRange indicates a power-set index ≥ 2^causeCount.
	ErrIndexOutOfRange = errors.New("causal: power-set index out of range")

	// ErrProbabilityOutOfRange indicates a probability outside [0,1].
	ErrProbabilityOutOfRange = errors.New("causal: probability out of range")

	// ErrInvalidPersistence indicates a persistence below one step.
	ErrInvalidPersistence = errors.New("causal: persistence must be at least 1")

	// ErrInvalidTime indicates a negative time index.
	ErrInvalidTime = errors.New("causal: time index must be non-negative")

	// ErrMissingObservation indicates no observation exists at the queried time.
	ErrMissingObservation = errors.New("causal: no observation at time")
)

const (
	// DefaultPersistence is the number of steps a variable persists by default.
	DefaultPersistence = 1

	// DefaultContinuation is P(X(t+1) | X(t)) for a fresh variable.
	DefaultContinuation = 1.0
)

// Variable is a binary random variable of the causal model.
//
// Fields are unexported; mutation goes through Graph so the power-set
// invariant and the cause/effect symmetry cannot be broken by callers.
type Variable struct {
	id   int
	name string

	causes  []int // upstream ids, insertion order (earliest = MSB)
	effects []int // downstream ids, insertion order

	elicited     map[int]float64 // power-set index → probability; 0 is the leak
	observations map[int]float64 // time → observed probability

	persistence  int
	continuation float64
}

// newVariable returns a Variable with a zero leak and default temporal parameters.
func newVariable(id int, name string) *Variable {
	return &Variable{
		id:           id,
		name:         name,
		causes:       make([]int, 0),
		effects:      make([]int, 0),
		elicited:     map[int]float64{0: 0},
		observations: make(map[int]float64),
		persistence:  DefaultPersistence,
		continuation: DefaultContinuation,
	}
}

// Graph is the mutable causal model.
//
// mu guards every field. counter is the auto-increment source for ids and is
// scoped to this Graph instance. key is opaque storage metadata: the core
// never interprets it.
type Graph struct {
	mu sync.RWMutex

	name    string
	key     string
	counter int

	variables map[int]*Variable
}

// NewGraph creates an empty named Graph.
// Complexity: O(1)
func NewGraph(name string) *Graph {
	return &Graph{
		name:      name,
		variables: make(map[int]*Variable),
	}
}
