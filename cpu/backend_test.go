package cpu

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
)

func mustTensor(t *testing.T, shape ns.Shape, data ...float64) *Tensor {
	t.Helper()
	x, err := NewTensor(shape, data)
	if err != nil {
		t.Fatal(err)
	}
	return x
}

func data(t *testing.T, v ns.Value, err error) []float64 {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	return v.(*Tensor).Data()
}

type fill float64

func (f fill) TypeString() string { return "fill" }

func (f fill) Set(_ *rand.Rand, shape ns.Shape, ws []float64) {
	for i := range ws {
		ws[i] = float64(f)
	}
}

func TestNewTensor(t *testing.T) {
	if _, err := NewTensor(ns.Shape{2, 2}, []float64{1, 2, 3}); err == nil {
		t.Error("expected error for wrong data length")
	}
	if _, err := NewTensor(ns.Shape{ns.Unknown}, nil); err == nil {
		t.Error("expected error for unknown shape")
	}

	x := mustTensor(t, ns.Shape{2, 3}, 0, 1, 2, 3, 4, 5)
	if x.At(1, 2) != 5 || x.At(0, 1) != 1 {
		t.Errorf("At gave wrong values")
	}

	if f, err := Scalar(3).Item(); err != nil || f != 3 {
		t.Errorf("Item() = %v, %v", f, err)
	}
}

func TestPlaceholder(t *testing.T) {
	b := New()

	if _, err := b.Placeholder("x", ns.Shape{ns.Unknown, 2}, ns.Float32); err == nil {
		t.Error("expected error for missing feed")
	}

	b.Feed("x", mustTensor(t, ns.Shape{3, 2}, 1, 2, 3, 4, 5, 6))
	v, err := b.Placeholder("x", ns.Shape{ns.Unknown, 2}, ns.Float32)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Shape().Equal(ns.Shape{3, 2}) {
		t.Errorf("shape = %v", v.Shape())
	}
	if v.(*Tensor).DType() != ns.Float32 {
		t.Errorf("dtype = %v", v.(*Tensor).DType())
	}

	_, err = b.Placeholder("x", ns.Shape{ns.Unknown, 3}, ns.Float32)
	if _, ok := errors.Cause(err).(ns.ShapeMismatchError); !ok {
		t.Errorf("expected ShapeMismatchError, got %v", err)
	}
}

func TestVariableReuse(t *testing.T) {
	b := New()

	v1, err := b.Variable("w", ns.Shape{2, 2}, ns.Float64, fill(0.5), nil)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := b.Variable("w", ns.Shape{2, 2}, ns.Float64, fill(9), nil)
	if err != nil {
		t.Fatal(err)
	}
	if v1 != v2 {
		t.Error("declaring the same variable again should return it")
	}
	if !reflect.DeepEqual(v1.(*Tensor).Data(), []float64{0.5, 0.5, 0.5, 0.5}) {
		t.Errorf("initializer not applied: %v", v1.(*Tensor).Data())
	}

	_, err = b.Variable("w", ns.Shape{4}, ns.Float64, nil, nil)
	if _, ok := errors.Cause(err).(ns.ShapeMismatchError); !ok {
		t.Errorf("expected ShapeMismatchError, got %v", err)
	}

	if err := b.SetVar("w", []float64{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	if b.Var("w").At(1, 0) != 3 {
		t.Errorf("SetVar not applied")
	}
	if !reflect.DeepEqual(b.VarNames(), []string{"w"}) {
		t.Errorf("VarNames() = %v", b.VarNames())
	}
}

func TestConstant(t *testing.T) {
	b := New()
	xs := []float64{1, 2, 3, 4}

	v, err := b.Constant(ns.Shape{2, 2}, xs, ns.Float64)
	xs[0] = 9
	if got := data(t, v, err); !reflect.DeepEqual(got, []float64{1, 2, 3, 4}) {
		t.Errorf("Constant = %v", got)
	}

	if _, err := b.Constant(ns.Shape{3}, xs, ns.Float64); err == nil {
		t.Error("expected error for wrong data length")
	}
}

func TestElementwise(t *testing.T) {
	b := New()
	x := mustTensor(t, ns.Shape{2, 3}, 1, 2, 3, 4, 5, 6)
	bias := Vector(10, 20, 30)

	v, err := b.Add(x, bias)
	if got := data(t, v, err); !reflect.DeepEqual(got, []float64{11, 22, 33, 14, 25, 36}) {
		t.Errorf("Add = %v", got)
	}

	v, err = b.Mul(Scalar(2), x)
	if got := data(t, v, err); !reflect.DeepEqual(got, []float64{2, 4, 6, 8, 10, 12}) {
		t.Errorf("Mul = %v", got)
	}

	if _, err = b.Add(x, Vector(1, 2)); err == nil {
		t.Error("expected error for incompatible shapes")
	}

	v, err = b.AddN([]ns.Value{Scalar(2), Scalar(3), Scalar(5)})
	if got := data(t, v, err); !reflect.DeepEqual(got, []float64{10}) {
		t.Errorf("AddN = %v", got)
	}

	v, err = b.Map(x, func(f float64) float64 { return -f })
	if got := data(t, v, err); got[5] != -6 {
		t.Errorf("Map = %v", got)
	}
}

func TestMatMul(t *testing.T) {
	b := New()
	x := mustTensor(t, ns.Shape{2, 3}, 1, 2, 3, 4, 5, 6)
	w := mustTensor(t, ns.Shape{3, 2}, 1, 0, 0, 1, 1, 1)

	v, err := b.MatMul(x, w)
	if got := data(t, v, err); !reflect.DeepEqual(got, []float64{4, 5, 10, 11}) {
		t.Errorf("MatMul = %v", got)
	}
	if !v.Shape().Equal(ns.Shape{2, 2}) {
		t.Errorf("MatMul shape = %v", v.Shape())
	}

	if _, err := b.MatMul(w, w); err == nil {
		t.Error("expected error for mismatched inner dimension")
	}
}

func TestConcatSliceStack(t *testing.T) {
	b := New()
	x := mustTensor(t, ns.Shape{2, 2}, 1, 2, 3, 4)
	y := mustTensor(t, ns.Shape{2, 1}, 5, 6)

	v, err := b.Concat([]ns.Value{x, y}, -1)
	if got := data(t, v, err); !reflect.DeepEqual(got, []float64{1, 2, 5, 3, 4, 6}) {
		t.Errorf("Concat = %v", got)
	}

	v, err = b.Concat([]ns.Value{Vector(2), Vector(3), Vector(5)}, -1)
	if got := data(t, v, err); !reflect.DeepEqual(got, []float64{2, 3, 5}) {
		t.Errorf("Concat of vectors = %v", got)
	}

	v, err = b.Slice(x, 1, 1)
	if got := data(t, v, err); !reflect.DeepEqual(got, []float64{2, 4}) {
		t.Errorf("Slice = %v", got)
	}

	v, err = b.Stack([]ns.Value{Vector(1, 2), Vector(3, 4)}, 1)
	if got := data(t, v, err); !reflect.DeepEqual(got, []float64{1, 3, 2, 4}) {
		t.Errorf("Stack = %v", got)
	}
	if !v.Shape().Equal(ns.Shape{2, 2}) {
		t.Errorf("Stack shape = %v", v.Shape())
	}
}

func TestReshape(t *testing.T) {
	b := New()
	x := mustTensor(t, ns.Shape{2, 3}, 1, 2, 3, 4, 5, 6)

	v, err := b.Reshape(x, ns.Shape{ns.Unknown, 2})
	if err != nil {
		t.Fatal(err)
	}
	if !v.Shape().Equal(ns.Shape{3, 2}) {
		t.Errorf("shape = %v", v.Shape())
	}

	if _, err := b.Reshape(x, ns.Shape{4, ns.Unknown}); err == nil {
		t.Error("expected error for indivisible shape")
	}
	if _, err := b.Reshape(x, ns.Shape{ns.Unknown, ns.Unknown}); err == nil {
		t.Error("expected error for two unknown dimensions")
	}
}

func TestSoftmaxSum(t *testing.T) {
	b := New()
	x := mustTensor(t, ns.Shape{2, 2}, 0, 0, 1, 1000)

	v, err := b.Softmax(x)
	got := data(t, v, err)
	if math.Abs(got[0]-0.5) > 1e-12 || math.Abs(got[3]-1) > 1e-12 {
		t.Errorf("Softmax = %v", got)
	}

	v, err = b.Sum(x)
	if got := data(t, v, err); got[0] != 1001 || len(v.Shape()) != 0 {
		t.Errorf("Sum = %v (shape %v)", got, v.Shape())
	}
}

func TestGatherOneHot(t *testing.T) {
	b := New()
	table := mustTensor(t, ns.Shape{3, 2}, 0, 1, 10, 11, 20, 21)
	ids := Vector(2, 0)

	v, err := b.Gather(table, ids)
	if got := data(t, v, err); !reflect.DeepEqual(got, []float64{20, 21, 0, 1}) {
		t.Errorf("Gather = %v", got)
	}

	if _, err := b.Gather(table, Vector(3)); err == nil {
		t.Error("expected error for id out of range")
	}

	v, err = b.OneHot(ids, 3)
	if got := data(t, v, err); !reflect.DeepEqual(got, []float64{0, 0, 1, 1, 0, 0}) {
		t.Errorf("OneHot = %v", got)
	}
}

func TestFloat32Rounding(t *testing.T) {
	b := New()
	v, err := b.Zeros(ns.Shape{1}, ns.Float32)
	if err != nil {
		t.Fatal(err)
	}

	v, err = b.Map(v, func(float64) float64 { return 0.1 })
	if got := data(t, v, err); got[0] != float64(float32(0.1)) {
		t.Errorf("value not rounded to float32: %v", got[0])
	}
}
