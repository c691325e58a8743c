package operators

import (
	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
)

type onehot int

// OneHot returns an Operator that expands integer class ids into one-hot vectors of the given
// depth, adding a trailing axis.
func OneHot(depth int) onehot {
	return onehot(depth)
}

func (t onehot) TypeString() string {
	return "onehot"
}

func (t onehot) NeuronScale() ns.Shape {
	return ns.Shape{int(t)}
}

func (t onehot) Validate() error {
	if t < 1 {
		return ns.ConstructionError{Name: t.TypeString(), Reason: "depth is not positive"}
	}

	return nil
}

func (t onehot) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	out, err := s.Backend().OneHot(in, int(t))
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't apply onehot")
	}

	return out, nil
}
