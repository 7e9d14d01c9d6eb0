// File: methods_variables.go
// Role: Variable lifecycle & queries on Graph.
//
// Determinism:
//   - VariableIDs() and Variables() return ascending id order, which is the
//     tie-break order used by the DBN compiler.
//
// Concurrency:
//   - All state protected by Graph.mu; readers receive deep clones.
package causal

import "fmt"

// Name returns the graph's display name.
func (g *Graph) Name() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.name
}

// SetName replaces the graph's display name.
func (g *Graph) SetName(name string) {
	g.mu.Lock()
	g.name = name
	g.mu.Unlock()
}

// Key returns the opaque storage key (empty for graphs never persisted).
func (g *Graph) Key() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.key
}

// SetKey stores an opaque storage key. The graph never interprets it.
func (g *Graph) SetKey(key string) {
	g.mu.Lock()
	g.key = key
	g.mu.Unlock()
}

// Counter returns the current value of the id auto-increment counter.
func (g *Graph) Counter() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.counter
}

// SetCounter restores the auto-increment counter, e.g. after loading a
// persisted graph. The counter never drops below the largest existing id.
func (g *Graph) SetCounter(counter int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter = counter
	for id := range g.variables {
		if id > g.counter {
			g.counter = id
		}
	}
}

// AddVariable inserts a new variable with an auto-assigned id.
//
// Implementation:
//   - Stage 1: Under the write lock, advance counter past any taken id.
//   - Stage 2: Register a fresh Variable (leak 0, persistence 1, continuation 1).
//
// Returns the assigned id.
//
// Complexity: O(1) amortized.
func (g *Graph) AddVariable(name string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counter++
	for g.variables[g.counter] != nil {
		g.counter++
	}
	g.variables[g.counter] = newVariable(g.counter, name)

	return g.counter
}

// AddVariableWithID inserts a new variable under a caller-chosen id.
// The counter is raised to id so later AddVariable calls never collide.
//
// Errors:
//   - ErrInvalidID: id ≤ 0.
//   - ErrDuplicateVariable: id already present.
func (g *Graph) AddVariableWithID(name string, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.variables[id]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateVariable, id)
	}
	g.variables[id] = newVariable(id, name)
	if id > g.counter {
		g.counter = id
	}

	return nil
}

// RemoveVariable deletes a variable and every link touching it.
//
// Implementation:
//   - Stage 1: Verify presence (ErrVariableNotFound).
//   - Stage 2: Remove id as a cause of each effect; their elicitations are
//     re-indexed to close the removed bit.
//   - Stage 3: Remove id as an effect of each cause.
//   - Stage 4: Drop the variable from the catalog.
//
// Complexity: O(deg(v) · m) where m is the largest elicitation map touched.
func (g *Graph) RemoveVariable(id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	v, ok := g.variables[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrVariableNotFound, id)
	}
	for _, effect := range v.effects {
		if e := g.variables[effect]; e != nil {
			e.removeCause(id)
		}
	}
	for _, cause := range v.causes {
		if c := g.variables[cause]; c != nil {
			c.removeEffect(id)
		}
	}
	delete(g.variables, id)

	return nil
}

// HasVariable reports whether id exists.
func (g *Graph) HasVariable(id int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.variables[id]

	return ok
}

// Variable returns a deep-clone snapshot of the variable with the given id.
func (g *Graph) Variable(id int) (*Variable, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	v, ok := g.variables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrVariableNotFound, id)
	}

	return v.clone(), nil
}

// VariableIDs returns every id in ascending order.
func (g *Graph) VariableIDs() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return sortedIDs(g.variables)
}

// Variables returns deep-clone snapshots of every variable in ascending id
// order, taken atomically under one read lock.
func (g *Graph) Variables() []*Variable {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := sortedIDs(g.variables)
	out := make([]*Variable, len(ids))
	for i, id := range ids {
		out[i] = g.variables[id].clone()
	}

	return out
}

// Len returns the number of variables.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.variables)
}

// lookup returns the live variable for id. Caller must hold g.mu.
func (g *Graph) lookup(id int) (*Variable, error) {
	v, ok := g.variables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrVariableNotFound, id)
	}

	return v, nil
}
