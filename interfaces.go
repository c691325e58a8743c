package netscope

import "math/rand"

// Value is anything produced by a Backend: a realized tensor, a placeholder, or a parameter. The
// tree never looks inside Values; it only asks for their shapes when reporting.
type Value interface {
	Shape() Shape
}

// Values is the output of a FORK Group: one Value per child, in insertion order. Because it is
// not a single tensor, its Shape is nil.
type Values []Value

// Shape is the implementation of Value. It always returns nil.
func (vs Values) Shape() Shape {
	return nil
}

// Backend is the execution engine that the tree delegates all numeric work to. The tree itself
// only uses Placeholder, Variable, AddN, Mul, Concat and Reshape; the rest are for Operators.
//
// Implementations are expected to treat every method as a pure function of its arguments, with
// the exception of Variable, which must return the same parameter when it is declared again under
// the same name.
type Backend interface {
	// Placeholder declares the named input of a tree. Unknown dimensions in the shape are filled in
	// by whatever the Backend provides for the name.
	Placeholder(name string, shape Shape, dtype DType) (Value, error)

	// Variable declares a learnable parameter, setting its initial values with init, which draws
	// from src. Declaring the same name again returns the existing parameter, provided that the
	// shape is the same.
	Variable(name string, shape Shape, dtype DType, init Initializer, src *rand.Rand) (Value, error)

	// Zeros returns a Value of the given shape filled with zeros
	Zeros(shape Shape, dtype DType) (Value, error)

	// Constant returns a Value of the given shape holding a copy of data, in row-major order
	Constant(shape Shape, data []float64, dtype DType) (Value, error)

	// AddN sums values of identical shapes elementwise
	AddN(vs []Value) (Value, error)

	// Add adds b to a elementwise, broadcasting b over the leading dimensions of a
	Add(a, b Value) (Value, error)

	// Mul multiplies a and b elementwise, broadcasting in the same way as Add
	Mul(a, b Value) (Value, error)

	// MatMul multiplies a ([..., k]) by the matrix b ([k, n]), giving [..., n]
	MatMul(a, b Value) (Value, error)

	// Concat joins the values along the given axis. Negative axes count from the end.
	Concat(vs []Value, axis int) (Value, error)

	// Reshape changes the shape of v. At most one dimension may be Unknown, to be inferred.
	Reshape(v Value, shape Shape) (Value, error)

	// Map applies f to every element of v
	Map(v Value, f func(float64) float64) (Value, error)

	// Softmax normalizes v along its last axis
	Softmax(v Value) (Value, error)

	// Sum reduces v to a scalar
	Sum(v Value) (Value, error)

	// Slice takes the given index along an axis, removing that axis
	Slice(v Value, axis, index int) (Value, error)

	// Stack joins values of identical shapes along a new axis
	Stack(vs []Value, axis int) (Value, error)

	// Gather takes the rows of params ([n, ...]) given by the integer-valued ids
	Gather(params, ids Value) (Value, error)

	// OneHot expands the integer-valued ids into a new trailing axis of length depth
	OneHot(ids Value, depth int) (Value, error)
}

// Initializer dictates how the values of a parameter will be set, given its shape and a blank
// slice to hold the values. Random Initializers draw only from the source they are given.
type Initializer interface {
	// TypeString returns the string corresponding to the type of the Initializer, such as
	// "xavier_normal" or "zeros".
	TypeString() string

	Set(src *rand.Rand, shape Shape, ws []float64)
}

// Regularizer produces the auxiliary loss for a parameter. Regularizers are attached to
// parameters when they are declared, and their losses are summed by Group.ExtraLoss().
type Regularizer interface {
	// TypeString returns the string corresponding to the type of the Regularizer, e.g. "l2".
	TypeString() string

	// Penalty returns the scalar loss for the given parameter
	Penalty(b Backend, w Value) (Value, error)
}
