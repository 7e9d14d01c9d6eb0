package modelfile_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbnet/causal"
	"github.com/katalvlaran/dbnet/dbn"
	"github.com/katalvlaran/dbnet/modelfile"
)

const outbreak = `
name: outbreak
key: fixed-key
counter: 7
variables:
  - id: 1
    name: Exposure
    elicited: {0: 0.05}
  - id: 2
    name: Contact
    elicited: {0: 0.1}
  - id: 3
    name: Fever
    causes: [1, 2]
    elicited: {0: 0.01, 1: 0.4, 2: 0.7}
    persistence: 2
    continuation: 0.8
    observations: {3: 1.0}
`

// sample builds the graph that the outbreak document describes.
func sample(t *testing.T) *causal.Graph {
	t.Helper()
	g := causal.NewGraph("outbreak")
	exp, con, fev := g.AddVariable("Exposure"), g.AddVariable("Contact"), g.AddVariable("Fever")
	require.NoError(t, g.SetLeak(exp, 0.05))
	require.NoError(t, g.SetLeak(con, 0.1))
	require.NoError(t, g.AddCausalLink(exp, fev))
	require.NoError(t, g.AddCausalLink(con, fev))
	require.NoError(t, g.SetLeak(fev, 0.01))
	require.NoError(t, g.SetElicitedProbability(fev, 2, 0.7))
	require.NoError(t, g.SetElicitedProbability(fev, 1, 0.4))
	require.NoError(t, g.SetPersistence(fev, 2))
	require.NoError(t, g.SetContinuation(fev, 0.8))
	require.NoError(t, g.AddObservation(fev, 3, 1.0))

	return g
}

// compiledCPTs maps variable id to its compiled table.
func compiledCPTs(t *testing.T, g *causal.Graph) map[int][]float64 {
	t.Helper()
	net, err := dbn.Compile(g, 3)
	require.NoError(t, err)
	out := make(map[int][]float64, net.Len())
	for _, n := range net.Nodes() {
		out[n.ID()] = n.CPT()
	}

	return out
}

// TestDecode_Document checks a hand-written model.
func TestDecode_Document(t *testing.T) {
	g, err := modelfile.Decode(strings.NewReader(outbreak))
	require.NoError(t, err)

	assert.Equal(t, "outbreak", g.Name())
	assert.Equal(t, "fixed-key", g.Key())
	assert.Equal(t, 7, g.Counter())
	assert.Equal(t, 3, g.Len())

	fever, err := g.Variable(3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, fever.Causes())
	assert.Equal(t, 2, fever.Persistence())
	assert.Equal(t, 0.8, fever.Continuation())
	p, err := fever.Observation(3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)

	exposure, err := g.Variable(1)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, exposure.Effects())
	assert.Equal(t, causal.DefaultContinuation, exposure.Continuation())
}

// TestDecode_MatchesBuiltGraph compiles identically to the same graph built by hand.
func TestDecode_MatchesBuiltGraph(t *testing.T) {
	g, err := modelfile.Decode(strings.NewReader(outbreak))
	require.NoError(t, err)
	assert.Equal(t, compiledCPTs(t, sample(t)), compiledCPTs(t, g))
}

// TestEncodeDecode_RoundTrip preserves structure and compiled tables.
func TestEncodeDecode_RoundTrip(t *testing.T) {
	src := sample(t)
	src.SetKey("k1")

	var buf bytes.Buffer
	require.NoError(t, modelfile.Encode(&buf, src))

	dst, err := modelfile.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, src.Name(), dst.Name())
	assert.Equal(t, src.Key(), dst.Key())
	assert.Equal(t, src.Counter(), dst.Counter())
	assert.Equal(t, src.VariableIDs(), dst.VariableIDs())
	assert.Equal(t, compiledCPTs(t, src), compiledCPTs(t, dst))

	for _, id := range src.VariableIDs() {
		a, _ := src.Variable(id)
		b, _ := dst.Variable(id)
		assert.Equal(t, a.Elicited(), b.Elicited(), "variable %d", id)
		assert.Equal(t, a.Observations(), b.Observations(), "variable %d", id)
	}
}

// TestEncodeDecode_RemovedElicitationStaysDerived keeps a forgotten singleton
// derived instead of restoring the default strength seeded by linking.
func TestEncodeDecode_RemovedElicitationStaysDerived(t *testing.T) {
	src := causal.NewGraph("derived")
	a, b, x := src.AddVariable("A"), src.AddVariable("B"), src.AddVariable("X")
	require.NoError(t, src.AddCausalLink(a, x))
	require.NoError(t, src.AddCausalLink(b, x))
	require.NoError(t, src.RemoveElicitation(x, 2))

	before, err := mustVariable(t, src, x).PreviewCPT()
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 0, 1}, before)

	var buf bytes.Buffer
	require.NoError(t, modelfile.Encode(&buf, src))
	dst, err := modelfile.Decode(&buf)
	require.NoError(t, err)

	decoded := mustVariable(t, dst, x)
	after, err := decoded.PreviewCPT()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	_, elicited := decoded.Elicitation(2)
	assert.False(t, elicited, "index 2 must stay derived")
	assert.Equal(t, compiledCPTs(t, src), compiledCPTs(t, dst))
}

// TestDecode_OmittedElicitationKeepsDefaults seeds every cause at strength 1.
func TestDecode_OmittedElicitationKeepsDefaults(t *testing.T) {
	g, err := modelfile.Decode(strings.NewReader(`
name: m
variables:
  - {id: 1, name: A}
  - {id: 2, name: B}
  - {id: 3, name: X, causes: [1, 2]}
`))
	require.NoError(t, err)
	table, err := mustVariable(t, g, 3).PreviewCPT()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 1, 1}, table)
}

func mustVariable(t *testing.T, g *causal.Graph, id int) *causal.Variable {
	t.Helper()
	v, err := g.Variable(id)
	require.NoError(t, err)

	return v
}

// TestEncode_OmitsDefaults keeps default temporal parameters out of the file.
func TestEncode_OmitsDefaults(t *testing.T) {
	g := causal.NewGraph("tiny")
	g.AddVariable("A")

	var buf bytes.Buffer
	require.NoError(t, modelfile.Encode(&buf, g))
	out := buf.String()
	assert.NotContains(t, out, "persistence")
	assert.NotContains(t, out, "continuation")
	assert.Contains(t, out, "name: A")
}

// TestSaveLoad writes through the filesystem and assigns a UUID key.
func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	src := sample(t)
	require.Empty(t, src.Key())

	require.NoError(t, modelfile.Save(path, src))
	_, err := uuid.Parse(src.Key())
	require.NoError(t, err, "Save must assign a UUID key")

	dst, err := modelfile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, src.Key(), dst.Key())
	assert.Equal(t, compiledCPTs(t, src), compiledCPTs(t, dst))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not survive")
}

// TestSave_KeepsExistingKey does not replace a key already set.
func TestSave_KeepsExistingKey(t *testing.T) {
	g := sample(t)
	g.SetKey("mine")
	require.NoError(t, modelfile.Save(filepath.Join(t.TempDir(), "m.yaml"), g))
	assert.Equal(t, "mine", g.Key())
}

// TestLoad_Missing wraps the I/O error.
func TestLoad_Missing(t *testing.T) {
	_, err := modelfile.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// TestDecode_Malformed rejects structurally invalid documents.
func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty": ``,
		"unknown cause": `
name: m
variables:
  - {id: 1, name: A, causes: [9]}
`,
		"duplicate id": `
name: m
variables:
  - {id: 1, name: A}
  - {id: 1, name: B}
`,
		"non-positive id": `
name: m
variables:
  - {id: 0, name: A}
`,
		"duplicate cause": `
name: m
variables:
  - {id: 1, name: A}
  - {id: 2, name: B, causes: [1, 1]}
`,
		"index out of range": `
name: m
variables:
  - {id: 1, name: A, elicited: {1: 0.5}}
`,
		"probability out of range": `
name: m
variables:
  - {id: 1, name: A, elicited: {0: 1.5}}
`,
		"bad continuation": `
name: m
variables:
  - {id: 1, name: A, continuation: 2}
`,
		"negative time": `
name: m
variables:
  - {id: 1, name: A, observations: {-1: 1}}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := modelfile.Decode(strings.NewReader(doc))
			assert.ErrorIs(t, err, modelfile.ErrMalformedModel)
		})
	}
}

// TestDecode_UnknownField rejects misspelt keys instead of silently dropping them.
func TestDecode_UnknownField(t *testing.T) {
	_, err := modelfile.Decode(strings.NewReader("name: m\nvariabels: []\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, modelfile.ErrMalformedModel)
}

// TestDecode_CycleLoadsButFailsCompile keeps cycle detection in the compiler.
func TestDecode_CycleLoadsButFailsCompile(t *testing.T) {
	g, err := modelfile.Decode(strings.NewReader(`
name: loop
variables:
  - {id: 1, name: A, causes: [2]}
  - {id: 2, name: B, causes: [1]}
`))
	require.NoError(t, err)
	_, err = dbn.Compile(g, 1)
	assert.ErrorIs(t, err, dbn.ErrCyclicGraph)
}
