package dbn_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbnet/causal"
	"github.com/katalvlaran/dbnet/dbn"
)

// diamond builds Cloudy→Rain, Cloudy→Sprinkler, {Sprinkler,Rain}→Wet with
// ids deliberately out of causal order.
func diamond(t *testing.T) *causal.Graph {
	t.Helper()
	g := causal.NewGraph("diamond")
	require.NoError(t, g.AddVariableWithID("Wet", 1))
	require.NoError(t, g.AddVariableWithID("Sprinkler", 2))
	require.NoError(t, g.AddVariableWithID("Rain", 3))
	require.NoError(t, g.AddVariableWithID("Cloudy", 4))

	require.NoError(t, g.AddCausalLink(4, 3))
	require.NoError(t, g.AddCausalLink(4, 2))
	require.NoError(t, g.AddCausalLink(2, 1))
	require.NoError(t, g.AddCausalLink(3, 1))

	require.NoError(t, g.SetLeak(4, 0.5))
	require.NoError(t, g.SetElicitedProbability(3, 1, 0.8))
	require.NoError(t, g.SetElicitedProbability(2, 1, 0.1))
	require.NoError(t, g.SetElicitedProbability(1, 2, 0.9))
	require.NoError(t, g.SetElicitedProbability(1, 1, 0.9))
	require.NoError(t, g.SetElicitedProbability(1, 3, 0.99))
	require.NoError(t, g.AddObservation(1, 2, 1.0))

	return g
}

// TestCompile_NilAndHorizon validates inputs.
func TestCompile_NilAndHorizon(t *testing.T) {
	_, err := dbn.Compile(nil, 3)
	assert.ErrorIs(t, err, dbn.ErrGraphNil)

	_, err = dbn.Compile(causal.NewGraph("g"), -1)
	assert.ErrorIs(t, err, dbn.ErrInvalidHorizon)

	_, err = dbn.TopologicalOrder(nil)
	assert.ErrorIs(t, err, dbn.ErrGraphNil)
}

// TestCompile_Empty yields an empty network.
func TestCompile_Empty(t *testing.T) {
	net, err := dbn.Compile(causal.NewGraph("g"), 4)
	require.NoError(t, err)
	assert.Equal(t, 0, net.Len())
	assert.Equal(t, 5, net.Steps())
}

// TestTopologicalOrder_TieBreakByID keeps independent variables in id order.
func TestTopologicalOrder_TieBreakByID(t *testing.T) {
	g := causal.NewGraph("g")
	for _, name := range []string{"a", "b", "c"} {
		g.AddVariable(name)
	}
	order, err := dbn.TopologicalOrder(g)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, order)
}

// TestTopologicalOrder_Diamond follows the queue-rotation order.
func TestTopologicalOrder_Diamond(t *testing.T) {
	order, err := dbn.TopologicalOrder(diamond(t))
	require.NoError(t, err)
	// queue 1,2,3,4 → only 4 ready; then 1(no),2,3 ready in rotation; then 1.
	assert.Equal(t, []int{4, 2, 3, 1}, order)
}

// TestCompile_TopologicalValidity: every cause position precedes its node.
func TestCompile_TopologicalValidity(t *testing.T) {
	net, err := dbn.Compile(diamond(t), 3)
	require.NoError(t, err)
	require.Equal(t, 4, net.Len())

	for i, n := range net.Nodes() {
		for _, c := range n.Causes() {
			assert.Less(t, c, i, "node %d cause %d", n.ID(), c)
		}
		assert.Len(t, n.CPT(), 1<<n.CauseCount())
		assert.Equal(t, 4, n.Steps())
		assert.Equal(t, []float64{0, 0, 0, 0}, n.Marginals())
	}
}

// TestCompile_RemapsCausesAndTables checks positions and table contents.
func TestCompile_RemapsCausesAndTables(t *testing.T) {
	net, err := dbn.Compile(diamond(t), 2)
	require.NoError(t, err)

	wet, err := net.NodeByID(1)
	require.NoError(t, err)
	posS, _ := net.Position(2)
	posR, _ := net.Position(3)
	assert.Equal(t, []int{posS, posR}, wet.Causes(), "insertion order kept")
	assert.InDelta(t, 0.9, wet.Conditional(2), 1e-12)
	assert.InDelta(t, 0.99, wet.Conditional(3), 1e-12)
	assert.False(t, wet.IsRoot())

	cloudy, err := net.NodeByID(4)
	require.NoError(t, err)
	assert.True(t, cloudy.IsRoot())
	assert.Equal(t, 0.5, cloudy.Leak())

	_, err = net.NodeByID(42)
	assert.ErrorIs(t, err, dbn.ErrNodeNotFound)
}

// TestCompile_Cycle detects A→B→A and self links.
func TestCompile_Cycle(t *testing.T) {
	g := causal.NewGraph("cycle")
	a, b, c := g.AddVariable("A"), g.AddVariable("B"), g.AddVariable("C")
	require.NoError(t, g.AddCausalLink(a, b))
	require.NoError(t, g.AddCausalLink(b, a))
	require.NoError(t, g.AddCausalLink(c, a))

	_, err := dbn.Compile(g, 3)
	require.ErrorIs(t, err, dbn.ErrCyclicGraph)
	assert.Contains(t, err.Error(), "[1 2]")

	self := causal.NewGraph("self")
	s := self.AddVariable("S")
	require.NoError(t, self.AddCausalLink(s, s))
	_, err = dbn.Compile(self, 1)
	assert.ErrorIs(t, err, dbn.ErrCyclicGraph)
}

// TestCompile_RoundTrip: two compiles with no edits are identical.
func TestCompile_RoundTrip(t *testing.T) {
	g := diamond(t)
	first, err := dbn.Compile(g, 5)
	require.NoError(t, err)
	second, err := dbn.Compile(g, 5)
	require.NoError(t, err)

	require.Equal(t, first.Len(), second.Len())
	for i := 0; i < first.Len(); i++ {
		a, b := first.Node(i), second.Node(i)
		assert.Equal(t, a.ID(), b.ID())
		assert.Equal(t, a.CPT(), b.CPT())
		assert.Equal(t, a.Causes(), b.Causes())
	}
}

// TestCompile_SnapshotIsolation: edits after compile never leak into the network.
func TestCompile_SnapshotIsolation(t *testing.T) {
	g := diamond(t)
	net, err := dbn.Compile(g, 2)
	require.NoError(t, err)

	require.NoError(t, g.SetLeak(4, 0.9))
	require.NoError(t, g.ClearAllObservations(1))

	cloudy, _ := net.NodeByID(4)
	assert.Equal(t, 0.5, cloudy.Leak())
	wet, _ := net.NodeByID(1)
	assert.True(t, wet.HasObservation(2))
}

// TestNode_ObservationsAndMarginals covers the accessors with error paths.
func TestNode_ObservationsAndMarginals(t *testing.T) {
	net, err := dbn.Compile(diamond(t), 2)
	require.NoError(t, err)
	wet, _ := net.NodeByID(1)

	obs, err := wet.Observation(2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, obs)
	_, err = wet.Observation(1)
	assert.ErrorIs(t, err, dbn.ErrMissingObservation)
	_, ok := wet.Evidence(1)
	assert.False(t, ok)

	require.NoError(t, wet.SetMarginal(2, 0.75))
	m, err := wet.Marginal(2)
	require.NoError(t, err)
	assert.Equal(t, 0.75, m)
	_, err = wet.Marginal(3)
	assert.ErrorIs(t, err, dbn.ErrTimeOutOfRange)
	assert.ErrorIs(t, wet.SetMarginal(-1, 0.1), dbn.ErrTimeOutOfRange)

	net.ResetMarginals()
	m, _ = wet.Marginal(2)
	assert.Equal(t, 0.0, m)
}

// TestNode_PowerSetIndex uses the earliest-cause-is-MSB convention.
func TestNode_PowerSetIndex(t *testing.T) {
	net, err := dbn.Compile(diamond(t), 0)
	require.NoError(t, err)
	wet, _ := net.NodeByID(1)
	posS, _ := net.Position(2)
	posR, _ := net.Position(3)

	state := make([]bool, net.Len())
	state[posS] = true
	assert.Equal(t, 2, wet.PowerSetIndex(state))
	state[posR] = true
	assert.Equal(t, 3, wet.PowerSetIndex(state))
	state[posS] = false
	assert.Equal(t, 1, wet.PowerSetIndex(state))

	assert.Equal(t, 2, wet.SingletonIndex(0))
	assert.Equal(t, 1, wet.SingletonIndex(1))
}

// TestCompile_Cancelled honours a cancelled context.
func TestCompile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dbn.Compile(diamond(t), 2, dbn.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}
