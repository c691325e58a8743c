package operators

import (
	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
)

type reshape struct {
	shape ns.Shape
	name  string
}

// Reshape returns an Operator that gives each example of its input the given shape, keeping the
// leading (batch) dimension. One dimension of the shape may be netscope.Unknown, to be inferred.
func Reshape(shape ...int) reshape {
	return reshape{ns.Shape(shape).Copy(), "reshape"}
}

// Flatten returns an Operator that folds each example of its input into a single dimension
func Flatten() reshape {
	return reshape{ns.Shape{ns.Unknown}, "flatten"}
}

func (t reshape) TypeString() string {
	return t.name
}

func (t reshape) NeuronScale() ns.Shape {
	if !t.shape.IsKnown() {
		return nil
	}

	return t.shape.Copy()
}

func (t reshape) Validate() error {
	unknown := 0
	for _, d := range t.shape {
		if d == ns.Unknown {
			unknown++
		} else if d < 1 {
			return ns.ConstructionError{Name: t.name, Reason: "dimensions of " + t.shape.String() + " must be positive"}
		}
	}

	if unknown > 1 {
		return ns.ConstructionError{Name: t.name, Reason: "at most one dimension can be inferred"}
	}

	return nil
}

func (t reshape) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	shape := in.Shape()
	if len(shape) == 0 {
		return nil, errors.Errorf("Can't %s a scalar", t.name)
	}

	target := append(ns.Shape{shape[0]}, t.shape...)
	if shape[0] < 0 && !t.shape.IsKnown() {
		// only one dimension can be inferred; the batch size must come from the input itself
		return nil, errors.Errorf("Can't %s input %v, batch size is unknown", t.name, shape)
	}

	out, err := s.Backend().Reshape(in, target)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't %s", t.name)
	}

	return out, nil
}
