package netscope

import (
	"strconv"

	"github.com/pkg/errors"
)

// NewRecurrent returns a new Recurrent whose cell produces a state of the given size. The cell is
// empty; once the Recurrent has been added to a Group, Operators are added to it through Cell() or
// through the Group returned by Add.
//
// The input of a Recurrent has the shape [batch, steps, features]. At every step, the cell is given
// [batch, features+stateSize] and must give back [batch, stateSize]. The output stacks the states
// of all steps: [batch, steps, stateSize].
func NewRecurrent(stateSize int) (*Recurrent, error) {
	if stateSize < 1 {
		return nil, ConstructionError{"recurrent", "state size is not positive (" + strconv.Itoa(stateSize) + ")"}
	}

	r := &Recurrent{
		name:      "recurrent",
		stateSize: stateSize,
	}

	r.cell = newGroup("cell", Sequential)
	r.cell.rec = r
	r.adopt(newTree(), 0)
	return r, nil
}

// Name returns the name of the Recurrent, unique among the Groups of its parent
func (r *Recurrent) Name() string {
	return r.name
}

// Path returns the path of the Recurrent's parent Group, followed by its name
func (r *Recurrent) Path() string {
	if r.host == nil {
		return r.name
	}

	return r.host.Path() + "/" + r.name
}

// Cell returns the Group that is invoked for every step
func (r *Recurrent) Cell() *Group {
	return r.cell
}

// StateSize returns the size of the state produced by the cell
func (r *Recurrent) StateSize() int {
	return r.stateSize
}

// Invoked returns whether or not the Recurrent has been invoked
func (r *Recurrent) Invoked() bool {
	return r.invoked
}

// NumParams returns the number of values in the parameters of the cell, which are shared by all
// steps.
func (r *Recurrent) NumParams() int {
	return r.cell.NumParams()
}

// StructureString describes the Recurrent as its name followed by its cell in parentheses, e.g.
// "recurrent(fc_16 -> tanh)".
func (r *Recurrent) StructureString(detail, scale bool) string {
	return r.name + "(" + r.cell.StructureString(detail, scale) + ")"
}

func (r *Recurrent) adopt(t *tree, level int) {
	mergeTree(r.tree, t)
	r.retree(t, level)
}

func (r *Recurrent) retree(t *tree, level int) {
	r.tree = t
	r.level = level
	r.cell.retree(t, level+1)
}

func (r *Recurrent) invoke(in Value) (Value, error) {
	if in == nil {
		return nil, errors.Wrapf(ErrNoInput, "Can't invoke recurrent %q", r.Path())
	}

	b := r.tree.backend
	if b == nil {
		return nil, errors.Wrapf(ErrNoBackend, "Can't invoke recurrent %q", r.Path())
	}

	shape := in.Shape()
	if len(shape) != 3 || !shape.IsKnown() {
		return nil, ShapeMismatchError{r.Path(), Shape{Unknown, Unknown, Unknown}, shape}
	}

	batch, steps := shape[0], shape[1]
	state, err := b.Zeros(Shape{batch, r.stateSize}, r.tree.dtype)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't make initial state of %q", r.Path())
	}

	outs := make([]Value, steps)
	for t := 0; t < steps; t++ {
		x, err := b.Slice(in, 1, t)
		if err != nil {
			return nil, errors.Wrapf(err, "Couldn't take step %d of %q", t, r.Path())
		}

		if x, err = b.Concat([]Value{x, state}, -1); err != nil {
			return nil, errors.Wrapf(err, "Couldn't join step %d with state of %q", t, r.Path())
		}

		if state, err = r.cell.link(x); err != nil {
			return nil, errors.Wrapf(err, "Recurrent %q failed at step %d", r.Path(), t)
		}

		if s := state.Shape(); !s.Compatible(Shape{batch, r.stateSize}) {
			return nil, ShapeMismatchError{r.cell.Path(), Shape{batch, r.stateSize}, s}
		}

		outs[t] = state
	}

	r.invoked = true
	return b.Stack(outs, 1)
}
