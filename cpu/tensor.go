// Package cpu is a reference Backend that computes every operation eagerly, with dense tensors of
// float64 values held in memory. Placeholders are satisfied by values fed to the Backend by name
// before the tree is invoked.
package cpu

import (
	"math"

	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
	"github.com/sharnoff/netscope/utils"
)

// Tensor is a dense, row-major array of values. Tensors are never modified after they are made.
type Tensor struct {
	layout *utils.Layout
	shape  ns.Shape
	data   []float64
	dtype  ns.DType
}

// NewTensor returns a Float64 Tensor with the given shape, holding a copy of the data. Every
// dimension must be known, and the length of the data must match the shape.
func NewTensor(shape ns.Shape, data []float64) (*Tensor, error) {
	if !shape.IsKnown() {
		return nil, errors.Errorf("Can't make tensor, shape %v is not fully known", shape)
	} else if shape.Size() != len(data) {
		return nil, errors.Errorf("Can't make tensor, shape %v holds %d values, got %d", shape, shape.Size(), len(data))
	}

	d := make([]float64, len(data))
	copy(d, data)
	return newTensor(shape, d, ns.Float64), nil
}

// Scalar returns a Float64 Tensor holding a single value, with an empty shape
func Scalar(f float64) *Tensor {
	return newTensor(ns.Shape{}, []float64{f}, ns.Float64)
}

// Vector returns a Float64 Tensor with the shape [len(fs)]
func Vector(fs ...float64) *Tensor {
	d := make([]float64, len(fs))
	copy(d, fs)
	return newTensor(ns.Shape{len(fs)}, d, ns.Float64)
}

// newTensor takes ownership of the data. Float32 tensors have their values rounded.
func newTensor(shape ns.Shape, data []float64, dtype ns.DType) *Tensor {
	if dtype == ns.Float32 {
		for i, f := range data {
			data[i] = float64(float32(f))
		}
	}

	return &Tensor{
		layout: utils.NewLayout(shape),
		shape:  shape.Copy(),
		data:   data,
		dtype:  dtype,
	}
}

// Shape returns the shape of the Tensor
func (t *Tensor) Shape() ns.Shape {
	return t.shape.Copy()
}

// DType returns the element type of the Tensor
func (t *Tensor) DType() ns.DType {
	return t.dtype
}

// Data returns a copy of the values of the Tensor, in row-major order
func (t *Tensor) Data() []float64 {
	d := make([]float64, len(t.data))
	copy(d, t.data)
	return d
}

// At returns the value at the given point. It panics if the point is out of bounds.
func (t *Tensor) At(point ...int) float64 {
	if len(point) != len(t.shape) {
		panic(errors.Errorf("cpu: point %v has %d dimensions, tensor has %d", point, len(point), len(t.shape)))
	}

	for i, p := range point {
		if p < 0 || p >= t.shape[i] {
			panic(errors.Errorf("cpu: point %v is out of bounds of %v", point, t.shape))
		}
	}

	return t.data[t.layout.Index(point)]
}

// Item returns the single value of a Tensor holding exactly one value
func (t *Tensor) Item() (float64, error) {
	if len(t.data) != 1 {
		return 0, errors.Errorf("Tensor with shape %v has %d values, not one", t.shape, len(t.data))
	}

	return t.data[0], nil
}

// AlmostEqual returns whether both Tensors have the same shape and all values are within tol of
// each other.
func (t *Tensor) AlmostEqual(other *Tensor, tol float64) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}

	for i := range t.data {
		if math.Abs(t.data[i]-other.data[i]) > tol {
			return false
		}
	}

	return true
}

func (t *Tensor) String() string {
	return "Tensor" + t.shape.String()
}

func tensor(v ns.Value) (*Tensor, error) {
	if v == nil {
		return nil, errors.Errorf("Value is nil")
	}

	t, ok := v.(*Tensor)
	if !ok {
		return nil, errors.Errorf("Value of type %T is not a cpu tensor", v)
	}

	return t, nil
}

func tensors(vs []ns.Value) ([]*Tensor, error) {
	ts := make([]*Tensor, len(vs))
	for i, v := range vs {
		var err error
		if ts[i], err = tensor(v); err != nil {
			return nil, errors.Wrapf(err, "Value %d", i)
		}
	}

	return ts, nil
}

// normAxis turns a negative axis into the corresponding positive one
func normAxis(axis, rank int) (int, error) {
	if axis < 0 {
		axis += rank
	}

	if axis < 0 || axis >= rank {
		return 0, errors.Errorf("Axis %d is out of range for rank %d", axis, rank)
	}

	return axis, nil
}
