// File: variable.go
// Role: read-only accessors on Variable snapshots plus the cause/effect
// bookkeeping that Graph calls while holding its write lock.
package causal

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/dbnet/cpt"
)

// ID returns the unique identifier of the variable.
func (v *Variable) ID() int { return v.id }

// Name returns the display name.
func (v *Variable) Name() string { return v.name }

// CauseCount returns the number of direct causes.
func (v *Variable) CauseCount() int { return len(v.causes) }

// Causes returns a copy of the cause ids in insertion order.
func (v *Variable) Causes() []int { return append([]int(nil), v.causes...) }

// Effects returns a copy of the effect ids in insertion order.
func (v *Variable) Effects() []int { return append([]int(nil), v.effects...) }

// Leak returns the baseline activation probability (elicited index 0).
func (v *Variable) Leak() float64 { return v.elicited[0] }

// Persistence returns the persistence parameter in steps.
func (v *Variable) Persistence() int { return v.persistence }

// Continuation returns P(X(t+1) | X(t)).
func (v *Variable) Continuation() float64 { return v.continuation }

// Elicited returns a copy of the sparse elicitation map.
func (v *Variable) Elicited() map[int]float64 {
	out := make(map[int]float64, len(v.elicited))
	for k, p := range v.elicited {
		out[k] = p
	}

	return out
}

// ElicitedIndices returns the elicited power-set indices in ascending order.
func (v *Variable) ElicitedIndices() []int { return sortedIndices(v.elicited) }

// Elicitation returns the elicited probability at index, if present.
func (v *Variable) Elicitation(index int) (float64, bool) {
	p, ok := v.elicited[index]

	return p, ok
}

// CauseIndex returns the power-set index that activates only the given cause.
// Returns ErrVariableNotFound if cause is not one of v's causes.
func (v *Variable) CauseIndex(cause int) (int, error) {
	pos := indexOf(v.causes, cause)
	if pos < 0 {
		return 0, fmt.Errorf("%w: %d is not a cause of %d", ErrVariableNotFound, cause, v.id)
	}

	return SingletonIndex(pos, len(v.causes)), nil
}

// Observations returns a copy of the time → value observation map.
func (v *Variable) Observations() map[int]float64 {
	out := make(map[int]float64, len(v.observations))
	for t, p := range v.observations {
		out[t] = p
	}

	return out
}

// ObservationTimes returns the observed time indices in ascending order.
func (v *Variable) ObservationTimes() []int { return sortedIndices(v.observations) }

// HasObservation reports whether an observation exists at time t.
func (v *Variable) HasObservation(t int) bool {
	_, ok := v.observations[t]

	return ok
}

// Observation returns the observed value at time t.
// Callers are expected to check HasObservation first; a missing time
// yields ErrMissingObservation.
func (v *Variable) Observation(t int) (float64, error) {
	p, ok := v.observations[t]
	if !ok {
		return 0, fmt.Errorf("%w: variable %d, t=%d", ErrMissingObservation, v.id, t)
	}

	return p, nil
}

// PreviewCPT compiles the current elicitation into the dense table the DBN
// compiler would produce, without touching the graph.
func (v *Variable) PreviewCPT() ([]float64, error) {
	return cpt.Build(v.elicited, len(v.causes))
}

// clone returns a deep copy of v.
func (v *Variable) clone() *Variable {
	return &Variable{
		id:           v.id,
		name:         v.name,
		causes:       v.Causes(),
		effects:      v.Effects(),
		elicited:     v.Elicited(),
		observations: v.Observations(),
		persistence:  v.persistence,
		continuation: v.continuation,
	}
}

// addCause appends id as the newest cause and re-keys the elicitation.
func (v *Variable) addCause(id int) {
	v.causes = append(v.causes, id)
	v.elicited = shiftForNewCause(v.elicited)
}

// removeCause drops id from the causes and removes its bit from every
// elicited combination. Unknown ids are ignored.
func (v *Variable) removeCause(id int) {
	pos := indexOf(v.causes, id)
	if pos < 0 {
		return
	}
	v.elicited = dropCauseBit(v.elicited, causeBit(pos, len(v.causes)))
	v.causes = append(v.causes[:pos:pos], v.causes[pos+1:]...)
}

func (v *Variable) addEffect(id int) {
	v.effects = append(v.effects, id)
}

func (v *Variable) removeEffect(id int) {
	pos := indexOf(v.effects, id)
	if pos < 0 {
		return
	}
	v.effects = append(v.effects[:pos:pos], v.effects[pos+1:]...)
}

// String renders the variable as "name(id) leak=… causes=[…]".
func (v *Variable) String() string {
	return fmt.Sprintf("%s(%d) leak=%g causes=%v", v.name, v.id, v.Leak(), v.causes)
}

// indexOf returns the first index of val in s, or -1 if not found.
func indexOf(s []int, val int) int {
	for i, x := range s {
		if x == val {
			return i
		}
	}

	return -1
}

// sortedIDs returns the keys of m in ascending order.
func sortedIDs(m map[int]*Variable) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}
