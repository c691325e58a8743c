package cpu

import (
	"math"
	"math/rand"
	"sort"

	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
	"github.com/sharnoff/netscope/utils"
)

// The work split used for parallel loops; see utils.MultiThread
const (
	opsPerThread  int = 256
	threadsPerCPU int = 1
)

var _ ns.Backend = (*Backend)(nil)

// Backend is the cpu implementation of netscope.Backend. A Backend is not safe for concurrent
// use; each tree being invoked concurrently should have its own.
type Backend struct {
	feeds map[string]*Tensor
	vars  map[string]*Tensor
}

// New returns an empty Backend, with nothing fed and no variables
func New() *Backend {
	return &Backend{
		feeds: make(map[string]*Tensor),
		vars:  make(map[string]*Tensor),
	}
}

// Feed sets the value given for the placeholder with the given name. Feeding the same name again
// replaces the value for placeholders declared afterwards.
func (b *Backend) Feed(name string, t *Tensor) {
	b.feeds[name] = t
}

// Var returns the variable with the given name, or nil if it hasn't been declared
func (b *Backend) Var(name string) *Tensor {
	return b.vars[name]
}

// VarNames returns the names of all declared variables, sorted
func (b *Backend) VarNames() []string {
	names := make([]string, 0, len(b.vars))
	for n := range b.vars {
		names = append(names, n)
	}

	sort.Strings(names)
	return names
}

// SetVar replaces the values of a declared variable, keeping its shape. It is used to load trained
// values, or to set exact values in tests.
func (b *Backend) SetVar(name string, data []float64) error {
	v, ok := b.vars[name]
	if !ok {
		return errors.Errorf("Can't set variable %q, it hasn't been declared", name)
	} else if len(data) != len(v.data) {
		return errors.Errorf("Can't set variable %q, it holds %d values, got %d", name, len(v.data), len(data))
	}

	d := make([]float64, len(data))
	copy(d, data)
	b.vars[name] = newTensor(v.shape, d, v.dtype)
	return nil
}

// Placeholder returns the value fed under the name. The fed value must be compatible with the
// declared shape.
func (b *Backend) Placeholder(name string, shape ns.Shape, dtype ns.DType) (ns.Value, error) {
	t, ok := b.feeds[name]
	if !ok {
		return nil, errors.Errorf("No value fed for placeholder %q", name)
	} else if !shape.Compatible(t.shape) {
		return nil, ns.ShapeMismatchError{Name: name, Expected: shape.Copy(), Actual: t.Shape()}
	}

	return newTensor(t.shape, t.Data(), dtype), nil
}

// Variable declares the named variable, or returns it if it has been declared before with the
// same shape.
func (b *Backend) Variable(name string, shape ns.Shape, dtype ns.DType, init ns.Initializer, src *rand.Rand) (ns.Value, error) {
	if v, ok := b.vars[name]; ok {
		if !v.shape.Equal(shape) {
			return nil, ns.ShapeMismatchError{Name: name, Expected: v.Shape(), Actual: shape.Copy()}
		}

		return v, nil
	}

	if !shape.IsKnown() {
		return nil, errors.Errorf("Can't declare variable %q, shape %v is not fully known", name, shape)
	}

	data := make([]float64, shape.Size())
	if init != nil {
		init.Set(src, shape.Copy(), data)
	}

	v := newTensor(shape, data, dtype)
	b.vars[name] = v
	return v, nil
}

// Zeros returns a Tensor of zeros
func (b *Backend) Zeros(shape ns.Shape, dtype ns.DType) (ns.Value, error) {
	if !shape.IsKnown() {
		return nil, errors.Errorf("Can't make zeros, shape %v is not fully known", shape)
	}

	return newTensor(shape, make([]float64, shape.Size()), dtype), nil
}

// Constant returns a Tensor holding a copy of the data
func (b *Backend) Constant(shape ns.Shape, data []float64, dtype ns.DType) (ns.Value, error) {
	if !shape.IsKnown() {
		return nil, errors.Errorf("Can't make constant, shape %v is not fully known", shape)
	} else if shape.Size() != len(data) {
		return nil, errors.Errorf("Can't make constant, shape %v holds %d values, got %d", shape, shape.Size(), len(data))
	}

	d := make([]float64, len(data))
	copy(d, data)
	return newTensor(shape, d, dtype), nil
}

// AddN sums Tensors of identical shapes
func (b *Backend) AddN(vs []ns.Value) (ns.Value, error) {
	ts, err := tensors(vs)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't add values")
	} else if len(ts) == 0 {
		return nil, errors.Errorf("Can't add zero values")
	}

	out := make([]float64, len(ts[0].data))
	for _, t := range ts {
		if !t.shape.Equal(ts[0].shape) {
			return nil, ns.ShapeMismatchError{Name: "add_n", Expected: ts[0].Shape(), Actual: t.Shape()}
		}

		for i, f := range t.data {
			out[i] += f
		}
	}

	return newTensor(ts[0].shape, out, ts[0].dtype), nil
}

// Add adds Tensors elementwise; see broadcast
func (b *Backend) Add(x, y ns.Value) (ns.Value, error) {
	return broadcast("add", x, y, func(p, q float64) float64 { return p + q })
}

// Mul multiplies Tensors elementwise; see broadcast
func (b *Backend) Mul(x, y ns.Value) (ns.Value, error) {
	return broadcast("mul", x, y, func(p, q float64) float64 { return p * q })
}

// broadcast applies f elementwise. If the shapes differ, the shape of one must be a suffix of the
// other's (a scalar's empty shape is a suffix of everything), and the smaller one is repeated over
// the leading dimensions of the larger.
func broadcast(name string, x, y ns.Value, f func(float64, float64) float64) (ns.Value, error) {
	a, err := tensor(x)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't %s", name)
	}
	c, err := tensor(y)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't %s", name)
	}

	big, small, swapped := a, c, false
	if len(c.shape) > len(a.shape) {
		big, small, swapped = c, a, true
	}

	if !big.shape[len(big.shape)-len(small.shape):].Equal(small.shape) {
		return nil, ns.ShapeMismatchError{Name: name, Expected: a.Shape(), Actual: c.Shape()}
	}

	out := make([]float64, len(big.data))
	n := len(small.data)
	for i := range out {
		if swapped {
			out[i] = f(small.data[i%n], big.data[i])
		} else {
			out[i] = f(big.data[i], small.data[i%n])
		}
	}

	return newTensor(big.shape, out, a.dtype), nil
}

// MatMul multiplies x ([..., k]) by the matrix y ([k, n]), giving [..., n]
func (b *Backend) MatMul(x, y ns.Value) (ns.Value, error) {
	a, err := tensor(x)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't matmul")
	}
	w, err := tensor(y)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't matmul")
	}

	if len(w.shape) != 2 {
		return nil, errors.Errorf("Can't matmul, %v is not a matrix", w.shape)
	} else if len(a.shape) < 1 || a.shape[len(a.shape)-1] != w.shape[0] {
		return nil, ns.ShapeMismatchError{Name: "matmul", Expected: ns.Shape{ns.Unknown, w.shape[0]}, Actual: a.Shape()}
	}

	k, n := w.shape[0], w.shape[1]
	rows := len(a.data) / k
	out := make([]float64, rows*n)

	utils.MultiThread(0, rows, func(r int) {
		in := a.data[r*k : (r+1)*k]
		o := out[r*n : (r+1)*n]
		for i, f := range in {
			if f == 0 {
				continue
			}

			ws := w.data[i*n : (i+1)*n]
			for j := range o {
				o[j] += f * ws[j]
			}
		}
	}, opsPerThread/n+1, threadsPerCPU)

	shape := append(a.shape[:len(a.shape)-1].Copy(), n)
	return newTensor(shape, out, a.dtype), nil
}

// Concat joins Tensors along the axis. Their shapes must be equal on every other axis.
func (b *Backend) Concat(vs []ns.Value, axis int) (ns.Value, error) {
	ts, err := tensors(vs)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't concat")
	} else if len(ts) == 0 {
		return nil, errors.Errorf("Can't concat zero values")
	}

	first := ts[0]
	if axis, err = normAxis(axis, len(first.shape)); err != nil {
		return nil, errors.Wrapf(err, "Can't concat")
	}

	shape := first.Shape()
	shape[axis] = 0
	for _, t := range ts {
		s := t.Shape()
		if len(s) != len(shape) {
			return nil, ns.ShapeMismatchError{Name: "concat", Expected: first.Shape(), Actual: s}
		}

		for i := range s {
			if i != axis && s[i] != shape[i] {
				return nil, ns.ShapeMismatchError{Name: "concat", Expected: first.Shape(), Actual: s}
			}
		}
		shape[axis] += s[axis]
	}

	outer := first.layout.Outer(axis)
	out := make([]float64, 0, shape.Size())
	for o := 0; o < outer; o++ {
		for _, t := range ts {
			run := t.shape[axis] * t.layout.Inner(axis)
			out = append(out, t.data[o*run:(o+1)*run]...)
		}
	}

	return newTensor(shape, out, first.dtype), nil
}

// Reshape gives the Tensor a new shape with the same number of values. One dimension may be
// Unknown, in which case it is inferred.
func (b *Backend) Reshape(v ns.Value, shape ns.Shape) (ns.Value, error) {
	t, err := tensor(v)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't reshape")
	}

	s := shape.Copy()
	unknown, known := -1, 1
	for i, d := range s {
		if d >= 0 {
			known *= d
			continue
		} else if unknown >= 0 {
			return nil, errors.Errorf("Can't reshape to %v, more than one dimension is unknown", shape)
		}
		unknown = i
	}

	if unknown >= 0 {
		if known == 0 || len(t.data)%known != 0 {
			return nil, ns.ShapeMismatchError{Name: "reshape", Expected: shape.Copy(), Actual: t.Shape()}
		}
		s[unknown] = len(t.data) / known
	}

	if s.Size() != len(t.data) {
		return nil, ns.ShapeMismatchError{Name: "reshape", Expected: shape.Copy(), Actual: t.Shape()}
	}

	return newTensor(s, t.Data(), t.dtype), nil
}

// Map applies f to every value. f must be safe to call concurrently.
func (b *Backend) Map(v ns.Value, f func(float64) float64) (ns.Value, error) {
	t, err := tensor(v)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't map")
	}

	out := make([]float64, len(t.data))
	utils.MultiThread(0, len(out), func(i int) {
		out[i] = f(t.data[i])
	}, opsPerThread, threadsPerCPU)

	return newTensor(t.shape, out, t.dtype), nil
}

// Softmax normalizes the Tensor along its last axis
func (b *Backend) Softmax(v ns.Value) (ns.Value, error) {
	t, err := tensor(v)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't softmax")
	} else if len(t.shape) == 0 {
		return nil, errors.Errorf("Can't softmax a scalar")
	}

	n := t.shape[len(t.shape)-1]
	out := make([]float64, len(t.data))
	for r := 0; r*n < len(out); r++ {
		in, o := t.data[r*n:(r+1)*n], out[r*n:(r+1)*n]

		max := math.Inf(-1)
		for _, f := range in {
			max = math.Max(max, f)
		}

		var sum float64
		for i, f := range in {
			o[i] = math.Exp(f - max)
			sum += o[i]
		}

		for i := range o {
			o[i] /= sum
		}
	}

	return newTensor(t.shape, out, t.dtype), nil
}

// Sum reduces the Tensor to a scalar
func (b *Backend) Sum(v ns.Value) (ns.Value, error) {
	t, err := tensor(v)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't sum")
	}

	var sum float64
	for _, f := range t.data {
		sum += f
	}

	return newTensor(ns.Shape{}, []float64{sum}, t.dtype), nil
}

// Slice takes the index along the axis, removing the axis
func (b *Backend) Slice(v ns.Value, axis, index int) (ns.Value, error) {
	t, err := tensor(v)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't slice")
	}

	if axis, err = normAxis(axis, len(t.shape)); err != nil {
		return nil, errors.Wrapf(err, "Can't slice")
	} else if index < 0 || index >= t.shape[axis] {
		return nil, errors.Errorf("Can't slice, index %d is out of range for axis %d of %v", index, axis, t.shape)
	}

	inner := t.layout.Inner(axis)
	run := t.shape[axis] * inner
	outer := t.layout.Outer(axis)

	out := make([]float64, 0, outer*inner)
	for o := 0; o < outer; o++ {
		start := o*run + index*inner
		out = append(out, t.data[start:start+inner]...)
	}

	shape := append(t.shape[:axis].Copy(), t.shape[axis+1:]...)
	return newTensor(shape, out, t.dtype), nil
}

// Stack joins Tensors of identical shapes along a new axis
func (b *Backend) Stack(vs []ns.Value, axis int) (ns.Value, error) {
	ts, err := tensors(vs)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't stack")
	} else if len(ts) == 0 {
		return nil, errors.Errorf("Can't stack zero values")
	}

	shape := ts[0].shape
	if axis, err = normAxis(axis, len(shape)+1); err != nil {
		return nil, errors.Wrapf(err, "Can't stack")
	}

	expanded := append(append(shape[:axis].Copy(), 1), shape[axis:]...)
	parts := make([]ns.Value, len(ts))
	for i, t := range ts {
		if !t.shape.Equal(shape) {
			return nil, ns.ShapeMismatchError{Name: "stack", Expected: shape.Copy(), Actual: t.Shape()}
		}

		parts[i] = newTensor(expanded, t.data, t.dtype)
	}

	return b.Concat(parts, axis)
}

// Gather takes the rows of params ([n, ...]) given by the values of ids, which must be integers
// in [0, n). The result has the shape of ids followed by the shape of a row.
func (b *Backend) Gather(params, ids ns.Value) (ns.Value, error) {
	p, err := tensor(params)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't gather")
	}
	idx, err := tensor(ids)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't gather")
	} else if len(p.shape) == 0 {
		return nil, errors.Errorf("Can't gather from a scalar")
	}

	rows, row := p.shape[0], p.layout.Inner(0)
	out := make([]float64, 0, len(idx.data)*row)
	for _, f := range idx.data {
		i := int(f)
		if float64(i) != f || i < 0 || i >= rows {
			return nil, errors.Errorf("Can't gather, id %v is not an integer in [0, %d)", f, rows)
		}

		out = append(out, p.data[i*row:(i+1)*row]...)
	}

	shape := append(idx.shape.Copy(), p.shape[1:]...)
	return newTensor(shape, out, p.dtype), nil
}

// OneHot expands the integer values of ids into a new trailing axis of length depth. Ids outside
// of [0, depth) give rows of zeros.
func (b *Backend) OneHot(ids ns.Value, depth int) (ns.Value, error) {
	idx, err := tensor(ids)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't one-hot")
	} else if depth < 1 {
		return nil, errors.Errorf("Can't one-hot with depth %d", depth)
	}

	out := make([]float64, len(idx.data)*depth)
	for r, f := range idx.data {
		i := int(f)
		if float64(i) != f {
			return nil, errors.Errorf("Can't one-hot, id %v is not an integer", f)
		} else if i >= 0 && i < depth {
			out[r*depth+i] = 1
		}
	}

	shape := append(idx.shape.Copy(), depth)
	return newTensor(shape, out, idx.dtype), nil
}
