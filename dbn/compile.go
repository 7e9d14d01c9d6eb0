package dbn

import (
	"fmt"

	"github.com/katalvlaran/dbnet/causal"
	"github.com/katalvlaran/dbnet/cpt"
)

// Compile turns g into a Network with marginal buffers of horizon+1 slots.
//
// Steps:
//  1. Take one consistent snapshot of every variable.
//  2. Order the snapshot topologically (ErrCyclicGraph on cycles).
//  3. For each variable in order: remap its causes to positions, build its
//     dense CPT, copy observations and allocate a zeroed marginal buffer.
//
// The returned Network shares no state with g.
func Compile(g *causal.Graph, horizon int, opts ...Option) (*Network, error) {
	// 1. Validate input
	if g == nil {
		return nil, ErrGraphNil
	}
	if horizon < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHorizon, horizon)
	}
	o := applyOptions(opts)

	// 2. Snapshot and order
	vars := g.Variables()
	byID := make(map[int]*causal.Variable, len(vars))
	for _, v := range vars {
		byID[v.ID()] = v
	}
	order, err := orderVariables(vars, o)
	if err != nil {
		return nil, err
	}

	net := &Network{
		nodes:    make([]*Node, len(order)),
		position: make(map[int]int, len(order)),
		horizon:  horizon,
	}
	for pos, id := range order {
		net.position[id] = pos
	}

	// 3. Build nodes in topological order
	for pos, id := range order {
		if err = o.ctx.Err(); err != nil {
			return nil, err
		}
		node, err := compileNode(byID[id], net.position, horizon)
		if err != nil {
			return nil, err
		}
		net.nodes[pos] = node
	}

	return net, nil
}

// compileNode builds the Node for one variable snapshot.
func compileNode(v *causal.Variable, position map[int]int, horizon int) (*Node, error) {
	causeIDs := v.Causes()
	causes := make([]int, len(causeIDs))
	for i, c := range causeIDs {
		causes[i] = position[c]
	}

	table, err := cpt.Build(v.Elicited(), len(causeIDs))
	if err != nil {
		return nil, fmt.Errorf("dbn: variable %d: %w", v.ID(), err)
	}

	return &Node{
		id:           v.ID(),
		name:         v.Name(),
		cpt:          table,
		causes:       causes,
		persistence:  v.Persistence(),
		continuation: v.Continuation(),
		observations: v.Observations(),
		marginal:     make([]float64, horizon+1),
	}, nil
}
