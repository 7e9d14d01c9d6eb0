package modelfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dbnet/causal"
)

// ErrMalformedModel wraps every structural problem found while decoding.
var ErrMalformedModel = errors.New("modelfile: malformed model")

// Model is the on-disk form of a causal.Graph.
type Model struct {
	Name      string     `yaml:"name"`
	Key       string     `yaml:"key,omitempty"`
	Counter   int        `yaml:"counter,omitempty"`
	Variables []Variable `yaml:"variables"`
}

// Variable is the on-disk form of a causal.Variable.
type Variable struct {
	ID           int             `yaml:"id"`
	Name         string          `yaml:"name"`
	Causes       []int           `yaml:"causes,omitempty,flow"`
	Elicited     map[int]float64 `yaml:"elicited,omitempty,flow"`
	Persistence  *int            `yaml:"persistence,omitempty"`
	Continuation *float64        `yaml:"continuation,omitempty"`
	Observations map[int]float64 `yaml:"observations,omitempty,flow"`
}

// FromGraph snapshots g into a Model. Variables are listed in ascending id
// order; default temporal parameters are omitted.
func FromGraph(g *causal.Graph) *Model {
	m := &Model{
		Name:    g.Name(),
		Key:     g.Key(),
		Counter: g.Counter(),
	}
	for _, v := range g.Variables() {
		mv := Variable{
			ID:           v.ID(),
			Name:         v.Name(),
			Causes:       v.Causes(),
			Elicited:     v.Elicited(),
			Observations: v.Observations(),
		}
		if p := v.Persistence(); p != causal.DefaultPersistence {
			mv.Persistence = &p
		}
		if c := v.Continuation(); c != causal.DefaultContinuation {
			mv.Continuation = &c
		}
		m.Variables = append(m.Variables, mv)
	}

	return m
}

// Graph rebuilds a causal.Graph through the graph-edit API.
//
// Steps:
//  1. Register every variable under its id.
//  2. Add links per variable in listed cause order (fixes the bit order).
//  3. Apply elicitations, temporal parameters and observations; indices are
//     only valid once the final cause count is known.
//  4. Restore the counter and the opaque key.
func (m *Model) Graph() (*causal.Graph, error) {
	g := causal.NewGraph(m.Name)

	// 1. Variables
	for _, v := range m.Variables {
		if err := g.AddVariableWithID(v.Name, v.ID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedModel, err)
		}
	}

	// 2. Links
	for _, v := range m.Variables {
		for _, c := range v.Causes {
			if err := g.AddCausalLink(c, v.ID); err != nil {
				return nil, fmt.Errorf("%w: variable %d: %v", ErrMalformedModel, v.ID, err)
			}
		}
	}

	// 3. Parameters
	for _, v := range m.Variables {
		if err := applyParameters(g, v); err != nil {
			return nil, fmt.Errorf("%w: variable %d: %v", ErrMalformedModel, v.ID, err)
		}
	}

	// 4. Metadata
	g.SetCounter(m.Counter)
	g.SetKey(m.Key)

	return g, nil
}

// applyParameters makes the file's elicitation authoritative: indices that
// linking seeded but the file omits are removed again, so they stay derived.
// A variable without an elicited key keeps the seeded defaults.
func applyParameters(g *causal.Graph, v Variable) error {
	if v.Elicited != nil {
		linked, err := g.Variable(v.ID)
		if err != nil {
			return err
		}
		for _, idx := range linked.ElicitedIndices() {
			if _, keep := v.Elicited[idx]; keep {
				continue
			}
			if err = g.RemoveElicitation(v.ID, idx); err != nil {
				return err
			}
		}
	}
	for _, idx := range sortedKeys(v.Elicited) {
		if err := g.SetElicitedProbability(v.ID, idx, v.Elicited[idx]); err != nil {
			return err
		}
	}
	if v.Persistence != nil {
		if err := g.SetPersistence(v.ID, *v.Persistence); err != nil {
			return err
		}
	}
	if v.Continuation != nil {
		if err := g.SetContinuation(v.ID, *v.Continuation); err != nil {
			return err
		}
	}
	for _, t := range sortedKeys(v.Observations) {
		if err := g.AddObservation(v.ID, t, v.Observations[t]); err != nil {
			return err
		}
	}

	return nil
}

// Decode reads a YAML model from r.
func Decode(r io.Reader) (*causal.Graph, error) {
	var m Model
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrMalformedModel)
		}
		return nil, fmt.Errorf("modelfile: decode: %w", err)
	}

	return m.Graph()
}

// Encode writes g to w as YAML.
func Encode(w io.Writer, g *causal.Graph) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("modelfile: encode: %w", err)
	}

	return enc.Close()
}

// Load reads the model file at path.
func Load(path string) (*causal.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("modelfile: open %s: %w", path, err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// Save writes g to path, assigning a fresh UUID storage key first when g
// has none. The file is written to a temporary sibling and renamed into place.
func Save(path string, g *causal.Graph) error {
	if g.Key() == "" {
		g.SetKey(uuid.NewString())
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".model-*.yaml")
	if err != nil {
		return fmt.Errorf("modelfile: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err = Encode(tmp, g); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("modelfile: close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("modelfile: rename to %s: %w", path, err)
	}

	return nil
}

func sortedKeys(m map[int]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	return keys
}
