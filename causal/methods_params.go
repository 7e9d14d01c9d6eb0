// File: methods_params.go
// Role: elicitation, temporal parameters and observations.
package causal

import (
	"fmt"
	"math"
)

// SetElicitedProbability sets P(effect | exactly the causes in index).
//
// index is a power-set bitmask over the variable's causes (earliest cause =
// most-significant bit). Index 0 is the leak.
//
// Errors:
//   - ErrVariableNotFound: unknown variable.
//   - ErrIndexOutOfRange: index < 0 or index ≥ 2^causeCount.
//   - ErrProbabilityOutOfRange: p ∉ [0,1].
func (g *Graph) SetElicitedProbability(variable, index int, p float64) error {
	if err := checkProbability(p); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	v, err := g.lookup(variable)
	if err != nil {
		return err
	}
	if index < 0 || index >= 1<<len(v.causes) {
		return fmt.Errorf("%w: index %d with %d causes", ErrIndexOutOfRange, index, len(v.causes))
	}
	v.elicited[index] = p

	return nil
}

// RemoveElicitation forgets an explicit elicitation so the compiler derives
// it again. Removing index 0 resets the leak to 0; absent indices are a no-op.
func (g *Graph) RemoveElicitation(variable, index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	v, err := g.lookup(variable)
	if err != nil {
		return err
	}
	if index == 0 {
		v.elicited[0] = 0

		return nil
	}
	delete(v.elicited, index)

	return nil
}

// SetLeak sets the baseline probability of the variable (elicited index 0).
func (g *Graph) SetLeak(variable int, p float64) error {
	return g.SetElicitedProbability(variable, 0, p)
}

// SetContinuation sets P(X(t+1) | X(t)).
func (g *Graph) SetContinuation(variable int, p float64) error {
	if err := checkProbability(p); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	v, err := g.lookup(variable)
	if err != nil {
		return err
	}
	v.continuation = p

	return nil
}

// SetPersistence sets how many steps the effect lasts. steps must be ≥ 1.
func (g *Graph) SetPersistence(variable, steps int) error {
	if steps < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPersistence, steps)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	v, err := g.lookup(variable)
	if err != nil {
		return err
	}
	v.persistence = steps

	return nil
}

// AddObservation records soft (0<value<1) or hard (0 or 1) evidence for the
// variable at time t, replacing any previous value at t.
func (g *Graph) AddObservation(variable, t int, value float64) error {
	if t < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTime, t)
	}
	if err := checkProbability(value); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	v, err := g.lookup(variable)
	if err != nil {
		return err
	}
	v.observations[t] = value

	return nil
}

// ClearObservation removes the observation at time t, if any.
func (g *Graph) ClearObservation(variable, t int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	v, err := g.lookup(variable)
	if err != nil {
		return err
	}
	delete(v.observations, t)

	return nil
}

// ClearAllObservations removes every observation of the variable.
func (g *Graph) ClearAllObservations(variable int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	v, err := g.lookup(variable)
	if err != nil {
		return err
	}
	v.observations = make(map[int]float64)

	return nil
}

// checkProbability rejects NaN and values outside [0,1].
func checkProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: %v", ErrProbabilityOutOfRange, p)
	}

	return nil
}
