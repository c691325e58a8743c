package operators

import (
	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
	"github.com/sharnoff/netscope/initializers"
)

type embedding struct {
	vocab, dim int
	init       ns.Initializer
}

// Embedding returns an Operator that replaces each integer id of its input with a learned vector
// of the given dimension, adding a trailing axis. Ids must be in [0, vocab).
func Embedding(vocab, dim int) *embedding {
	return &embedding{vocab, dim, initializers.Random(initializers.UniformRNG().Bounds(-0.05, 0.05))}
}

// Init sets the Initializer of the embedding table, returning the same Operator
func (e *embedding) Init(init ns.Initializer) *embedding {
	e.init = init
	return e
}

func (e *embedding) TypeString() string {
	return "embedding"
}

func (e *embedding) NeuronScale() ns.Shape {
	return ns.Shape{e.dim}
}

func (e *embedding) Validate() error {
	if e.vocab < 1 || e.dim < 1 {
		return ns.ConstructionError{Name: e.TypeString(), Reason: "vocabulary size and dimension must be positive"}
	}

	return nil
}

func (e *embedding) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	table, err := s.Param("embeddings", ns.Shape{e.vocab, e.dim}, e.init, nil)
	if err != nil {
		return nil, err
	}

	out, err := s.Backend().Gather(table, in)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't look up embeddings")
	}

	return out, nil
}
