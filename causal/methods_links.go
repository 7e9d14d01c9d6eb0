// File: methods_links.go
// Role: causal link lifecycle. A link from→to registers from as the newest
// cause of to (re-keying to's elicitation) and to as an effect of from.
package causal

import (
	"fmt"

	"github.com/katalvlaran/dbnet/cpt"
)

// AddCausalLink connects from → to.
//
// Implementation:
//   - Stage 1: Resolve both endpoints (ErrVariableNotFound).
//   - Stage 2: Reject an existing link (ErrLinkExists) and a cause beyond
//     cpt.MaxCauses (cpt.ErrTooManyCauses).
//   - Stage 3: Append from to to.causes; every elicited index of to is
//     doubled and the new cause receives index 1 = DefaultCausalStrength.
//   - Stage 4: Append to to from.effects.
//
// Self-links are accepted here; compiling such a graph fails with a cycle.
//
// Complexity: O(deg + m), m = len(to.elicited).
func (g *Graph) AddCausalLink(from, to int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	src, err := g.lookup(from)
	if err != nil {
		return err
	}
	dst, err := g.lookup(to)
	if err != nil {
		return err
	}
	if indexOf(dst.causes, from) >= 0 {
		return fmt.Errorf("%w: %d→%d", ErrLinkExists, from, to)
	}
	if len(dst.causes) >= cpt.MaxCauses {
		return fmt.Errorf("%w: variable %d already has %d causes", cpt.ErrTooManyCauses, to, len(dst.causes))
	}
	dst.addCause(from)
	src.addEffect(to)

	return nil
}

// RemoveCausalLink disconnects from → to and closes the removed cause's bit
// in to's elicitation.
//
// Errors:
//   - ErrVariableNotFound: either endpoint missing.
//   - ErrLinkNotFound: link absent.
func (g *Graph) RemoveCausalLink(from, to int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	src, err := g.lookup(from)
	if err != nil {
		return err
	}
	dst, err := g.lookup(to)
	if err != nil {
		return err
	}
	if indexOf(dst.causes, from) < 0 {
		return fmt.Errorf("%w: %d→%d", ErrLinkNotFound, from, to)
	}
	dst.removeCause(from)
	src.removeEffect(to)

	return nil
}

// HasCausalLink reports whether from → to exists.
func (g *Graph) HasCausalLink(from, to int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	dst, ok := g.variables[to]
	if !ok {
		return false
	}

	return indexOf(dst.causes, from) >= 0
}
