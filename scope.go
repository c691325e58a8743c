package netscope

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Scope is given to an Operator each time its Layer is invoked. It gives access to the tree's
// Backend and to the parameter store of the Layer's Group.
type Scope struct {
	group *Group
	layer *Layer
}

// Backend returns the execution engine of the tree. It is never nil inside Apply.
func (s *Scope) Backend() Backend {
	return s.group.tree.backend
}

// DType returns the element type of the tree
func (s *Scope) DType() DType {
	return s.group.tree.dtype
}

// Training returns whether or not the tree is being invoked for training
func (s *Scope) Training() bool {
	return s.group.tree.training
}

// Rand returns the random source of the tree. Operators that draw random values use it, never the
// global source, so that a tree given a seeded source by WithRand is reproducible.
func (s *Scope) Rand() *rand.Rand {
	return s.group.tree.rng
}

// Name returns the name of the Layer being invoked
func (s *Scope) Name() string {
	return s.layer.name
}

// Path returns the full path of the Layer being invoked
func (s *Scope) Path() string {
	return s.layer.Path()
}

// Param returns the Layer's parameter with the given name, declaring it through the Backend the
// first time. Later calls with the same name return the same parameter, so long as the shape is
// unchanged; a different shape gives a ShapeMismatchError.
//
// If reg is not nil, it is attached to the parameter when the parameter is declared, and its
// penalty is included in the tree's ExtraLoss. init may only be nil if the Backend allows it.
func (s *Scope) Param(name string, shape Shape, init Initializer, reg Regularizer) (Value, error) {
	g := s.group
	key := s.layer.name + "/" + name

	if p := g.paramIndex[key]; p != nil {
		if !p.value.Shape().Equal(shape) {
			return nil, ShapeMismatchError{p.path, p.value.Shape(), shape}
		}

		return p.value, nil
	}

	if !shape.IsKnown() {
		return nil, ConstructionError{s.layer.Path() + "/" + name, "parameter shape " + shape.String() + " is not fully known"}
	}

	path := g.Path() + "/" + key
	v, err := g.tree.backend.Variable(path, shape, g.tree.dtype, init, g.tree.rng)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't declare parameter %q", path)
	}

	p := &param{owner: s.layer.name, name: name, path: path, value: v}
	g.params = append(g.params, p)
	g.paramIndex[key] = p

	if reg != nil {
		b := g.tree.backend
		g.tree.losses = append(g.tree.losses, lossTerm{
			name: path + "/" + reg.TypeString(),
			eval: func() (Value, error) { return reg.Penalty(b, v) },
		})
	}

	return v, nil
}

// AddLoss registers an auxiliary loss with the tree, to be included in ExtraLoss
func (s *Scope) AddLoss(name string, v Value) {
	s.group.tree.losses = append(s.group.tree.losses, lossTerm{
		name: s.layer.Path() + "/" + name,
		eval: func() (Value, error) { return v, nil },
	})
}

// SetLogits records v as the logits of the tree; see Group.ContextLogits()
func (s *Scope) SetLogits(v Value) {
	s.group.tree.logits = v
}

// call invokes the Layer's Operator, checking the input against the shape seen the first time.
// The leading (batch) dimension of inputs with more than one dimension isn't fixed, so the same
// Layer can be given batches of any size.
func (l *Layer) call(in Value) (Value, error) {
	if in == nil {
		return nil, errors.Wrapf(ErrNoInput, "Can't invoke layer %q", l.Path())
	} else if l.host.tree.backend == nil {
		return nil, errors.Wrapf(ErrNoBackend, "Can't invoke layer %q", l.Path())
	}

	shape := in.Shape()
	if l.inShape != nil && !l.inShape.Compatible(shape) {
		return nil, ShapeMismatchError{l.Path(), l.inShape.Copy(), shape}
	}

	out, err := l.op.Apply(&Scope{group: l.host, layer: l}, in)
	if err != nil {
		return nil, errors.Wrapf(err, "Layer %q failed", l.Path())
	} else if out == nil {
		return nil, errors.Errorf("Layer %q gave no output", l.Path())
	}

	if l.inShape == nil {
		l.inShape = batchFree(shape)
		l.outShape = batchFree(out.Shape())
	}

	return out, nil
}

// batchFree returns a copy of the shape with its leading dimension Unknown, if it has more than one
func batchFree(shape Shape) Shape {
	s := shape.Copy()
	if len(s) > 1 {
		s[0] = Unknown
	}
	return s
}
