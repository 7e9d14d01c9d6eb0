package dbn

import "fmt"

// ID returns the id of the variable this node was compiled from.
func (n *Node) ID() int { return n.id }

// Name returns the variable's display name.
func (n *Node) Name() string { return n.name }

// IsRoot reports whether the node has no causes.
func (n *Node) IsRoot() bool { return len(n.causes) == 0 }

// Causes returns a copy of the cause positions, earliest cause first.
func (n *Node) Causes() []int { return append([]int(nil), n.causes...) }

// CauseAt returns the position of the k-th cause without copying.
func (n *Node) CauseAt(k int) int { return n.causes[k] }

// CauseCount returns the number of causes.
func (n *Node) CauseCount() int { return len(n.causes) }

// CPT returns a copy of the dense conditional probability table.
func (n *Node) CPT() []float64 { return append([]float64(nil), n.cpt...) }

// Conditional returns cpt[index]. index must lie in [0, 2^CauseCount()).
func (n *Node) Conditional(index int) float64 { return n.cpt[index] }

// Leak returns cpt[0], the activation probability with no active cause.
func (n *Node) Leak() float64 { return n.cpt[0] }

// Persistence returns the persistence parameter in steps.
func (n *Node) Persistence() int { return n.persistence }

// Continuation returns P(X(t+1) | X(t)).
func (n *Node) Continuation() float64 { return n.continuation }

// HasObservation reports whether evidence exists at time t.
func (n *Node) HasObservation(t int) bool {
	_, ok := n.observations[t]

	return ok
}

// Observation returns the evidence at time t or ErrMissingObservation.
func (n *Node) Observation(t int) (float64, error) {
	p, ok := n.observations[t]
	if !ok {
		return 0, fmt.Errorf("%w: node %d, t=%d", ErrMissingObservation, n.id, t)
	}

	return p, nil
}

// Evidence is the comma-ok form of Observation for sampling hot paths.
func (n *Node) Evidence(t int) (float64, bool) {
	p, ok := n.observations[t]

	return p, ok
}

// Steps returns the length of the marginal buffer (horizon + 1).
func (n *Node) Steps() int { return len(n.marginal) }

// Marginal returns the estimated P(X(t) = true).
func (n *Node) Marginal(t int) (float64, error) {
	if t < 0 || t >= len(n.marginal) {
		return 0, fmt.Errorf("%w: t=%d, steps=%d", ErrTimeOutOfRange, t, len(n.marginal))
	}

	return n.marginal[t], nil
}

// Marginals returns a copy of the whole marginal buffer.
func (n *Node) Marginals() []float64 { return append([]float64(nil), n.marginal...) }

// SetMarginal stores the estimate for time t. Inference engines are the only
// intended writers.
func (n *Node) SetMarginal(t int, p float64) error {
	if t < 0 || t >= len(n.marginal) {
		return fmt.Errorf("%w: t=%d, steps=%d", ErrTimeOutOfRange, t, len(n.marginal))
	}
	n.marginal[t] = p

	return nil
}

// PowerSetIndex builds the CPT index of this node from a particle state
// indexed by network position. The earliest cause sets the highest bit.
func (n *Node) PowerSetIndex(state []bool) int {
	index := 0
	bit := len(n.causes) - 1
	for _, c := range n.causes {
		if state[c] {
			index |= 1 << bit
		}
		bit--
	}

	return index
}

// SingletonIndex returns the CPT index activating only the cause at
// position k of Causes().
func (n *Node) SingletonIndex(k int) int {
	return 1 << (len(n.causes) - 1 - k)
}

// Len returns the number of nodes.
func (net *Network) Len() int { return len(net.nodes) }

// Horizon returns the last time index.
func (net *Network) Horizon() int { return net.horizon }

// Steps returns horizon + 1, the number of marginal slots per node.
func (net *Network) Steps() int { return net.horizon + 1 }

// Node returns the node at topological position i.
func (net *Network) Node(i int) *Node { return net.nodes[i] }

// Nodes returns the nodes in topological order. The slice is a copy; the
// nodes are shared.
func (net *Network) Nodes() []*Node { return append([]*Node(nil), net.nodes...) }

// Position returns the topological position of variable id.
func (net *Network) Position(id int) (int, error) {
	pos, ok := net.position[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}

	return pos, nil
}

// NodeByID returns the node compiled from variable id.
func (net *Network) NodeByID(id int) (*Node, error) {
	pos, err := net.Position(id)
	if err != nil {
		return nil, err
	}

	return net.nodes[pos], nil
}

// ResetMarginals zeroes every marginal buffer so the network can be reused
// by another inference pass.
func (net *Network) ResetMarginals() {
	for _, n := range net.nodes {
		clear(n.marginal)
	}
}
