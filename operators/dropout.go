package operators

import (
	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
)

type dropout float64

// Dropout returns an Operator that, while training, zeroes each value of its input with
// probability 1-keepProb and scales the rest by 1/keepProb. Outside of training, it returns its
// input unchanged.
func Dropout(keepProb float64) dropout {
	return dropout(keepProb)
}

func (t dropout) TypeString() string {
	return "dropout"
}

func (t dropout) Validate() error {
	if t <= 0 || t > 1 {
		return ns.ConstructionError{Name: t.TypeString(), Reason: "keep probability must be in (0, 1]"}
	}

	return nil
}

func (t dropout) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	keep := float64(t)
	if !s.Training() || keep == 1 {
		return in, nil
	}

	// the mask is drawn up front; the tree's source can't be shared between threads
	shape := in.Shape()
	if !shape.IsKnown() {
		return nil, errors.Errorf("Can't apply dropout to input with shape %v", shape)
	}

	src := s.Rand()
	mask := make([]float64, shape.Size())
	for i := range mask {
		if src.Float64() < keep {
			mask[i] = 1 / keep
		}
	}

	m, err := s.Backend().Constant(shape, mask, s.DType())
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't make dropout mask")
	}

	return s.Backend().Mul(in, m)
}
