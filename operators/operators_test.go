package operators_test

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
	"github.com/sharnoff/netscope/cpu"
	"github.com/sharnoff/netscope/initializers"
	"github.com/sharnoff/netscope/operators"
	"github.com/sharnoff/netscope/penalties"
)

func apply(t *testing.T, op ns.Operator, in *cpu.Tensor, opts ...ns.Option) (*ns.Group, []float64) {
	t.Helper()

	g := ns.New("net", append([]ns.Option{ns.WithBackend(cpu.New())}, opts...)...)
	g.Add(op)

	out, err := g.Invoke(in)
	if err != nil {
		t.Fatal(err)
	}

	return g, out.(*cpu.Tensor).Data()
}

func almost(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestActivations(t *testing.T) {
	in := cpu.Vector(-2, 0, 3)

	cases := []struct {
		op   ns.Operator
		want []float64
	}{
		{operators.ReLU(), []float64{0, 0, 3}},
		{operators.LeakyReLU(0.5), []float64{-1, 0, 3}},
		{operators.ELU(1), []float64{math.Exp(-2) - 1, 0, 3}},
		{operators.Softplus(), []float64{math.Log1p(math.Exp(-2)), math.Log(2), math.Log1p(math.Exp(3))}},
		{operators.Sigmoid(), []float64{1 / (1 + math.Exp(2)), 0.5, 1 / (1 + math.Exp(-3))}},
		{operators.Tanh(), []float64{math.Tanh(-2), 0, math.Tanh(3)}},
		{operators.Softsign(), []float64{-2.0 / 3, 0, 0.75}},
		{operators.Identity(), []float64{-2, 0, 3}},
		{operators.Add(1), []float64{-1, 1, 4}},
		{operators.Mult(2), []float64{-4, 0, 6}},
		{operators.Rescale(-2, 3, 0, 1), []float64{0, 0.4, 1}},
	}

	for _, c := range cases {
		if _, got := apply(t, c.op, in); !almost(got, c.want) {
			t.Errorf("%s: got %v, want %v", c.op.TypeString(), got, c.want)
		}
	}
}

func TestIsActivation(t *testing.T) {
	cases := []struct {
		op   ns.Operator
		want bool
	}{
		{operators.ReLU(), true},
		{operators.Softmax(false), true},
		{operators.Identity(), true},
		{operators.WithLogits(operators.Add(1)), true},
		{operators.Add(1), false},
		{operators.Dense(3), false},
		{operators.Dropout(0.5), false},
	}

	for _, c := range cases {
		a, ok := c.op.(ns.Activation)
		if got := ok && a.IsActivation(); got != c.want {
			t.Errorf("%s: IsActivation = %v, want %v", c.op.TypeString(), got, c.want)
		}
	}
}

func TestSoftmaxLogits(t *testing.T) {
	in := cpu.Vector(1, 1)

	g, got := apply(t, operators.Softmax(true), in)
	if !almost(got, []float64{0.5, 0.5}) {
		t.Errorf("softmax = %v", got)
	}
	if g.ContextLogits() != ns.Value(in) {
		t.Error("softmax with logits should record its input")
	}

	g, _ = apply(t, operators.Softmax(false), in)
	if g.ContextLogits() != nil {
		t.Error("softmax without logits should not record anything")
	}

	op, err := operators.Activation("relu", true)
	if err != nil {
		t.Fatal(err)
	}
	if g, _ = apply(t, op, in); g.ContextLogits() != ns.Value(in) {
		t.Error("Activation with setLogits should record its input")
	}
}

func TestDense(t *testing.T) {
	in, err := cpu.NewTensor(ns.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}

	d := operators.Dense(2).WeightInit(initializers.Constant(1)).BiasInit(initializers.Constant(0.5)).WeightReg(penalties.L2(1))
	g, got := apply(t, d, in)

	if !reflect.DeepEqual(got, []float64{6.5, 6.5, 15.5, 15.5}) {
		t.Errorf("dense = %v", got)
	}

	ps := g.Params()
	if len(ps) != 2 || ps[0].Path != "net/fc/fc/weights" || ps[1].Path != "net/fc/fc/biases" {
		t.Fatalf("unexpected params %v", ps)
	}
	if n := g.NumParams(); n != 3*2+2 {
		t.Errorf("NumParams() = %d", n)
	}

	loss, err := g.ExtraLoss()
	if err != nil {
		t.Fatal(err)
	}
	if f, _ := loss.(*cpu.Tensor).Item(); f != 6 {
		t.Errorf("extra loss = %v, want 6", f)
	}
}

func TestDenseNoBias(t *testing.T) {
	d := operators.Dense(4).NoBias()
	g, _ := apply(t, d, cpu.Vector(1, 2))

	if len(g.Params()) != 1 {
		t.Errorf("expected only weights, got %v", g.Params())
	}
	if !d.NeuronScale().Equal(ns.Shape{4}) {
		t.Errorf("NeuronScale() = %v", d.NeuronScale())
	}
}

func TestDropout(t *testing.T) {
	in := cpu.Vector(1, 2, 3, 4)

	if _, got := apply(t, operators.Dropout(0.5), in, ns.Training(false)); !reflect.DeepEqual(got, in.Data()) {
		t.Errorf("dropout outside of training changed its input: %v", got)
	}

	seeded := func(seed int64) []float64 {
		_, got := apply(t, operators.Dropout(0.5), in, ns.Training(true), ns.WithRand(rand.New(rand.NewSource(seed))))
		return got
	}

	got := seeded(1)
	for i, f := range got {
		if f != 0 && f != 2*in.Data()[i] {
			t.Errorf("dropped value %d = %v", i, f)
		}
	}
	if again := seeded(1); !reflect.DeepEqual(got, again) {
		t.Errorf("same seed dropped different values: %v, %v", got, again)
	}
}

func TestValidate(t *testing.T) {
	bad := []ns.Operator{
		operators.Dense(0),
		operators.Dropout(0),
		operators.Dropout(1.5),
		operators.OneHot(0),
		operators.Embedding(0, 4),
		operators.Rescale(1, 1, 0, 1),
		operators.Reshape(2, -5),
		operators.Reshape(ns.Unknown, ns.Unknown),
	}

	for _, op := range bad {
		g := ns.New("net", ns.WithBackend(cpu.New()))
		g.Add(op)
		if _, ok := errors.Cause(g.Err()).(ns.ConstructionError); !ok {
			t.Errorf("%s: expected ConstructionError when added, got %v", op.TypeString(), g.Err())
		}
	}

	g := ns.New("net", ns.WithBackend(cpu.New()))
	g.Add(operators.Dense(1))
	g.Add(operators.Dropout(1))
	g.Add(operators.Reshape(ns.Unknown, 1))
	if err := g.Err(); err != nil {
		t.Errorf("valid operators rejected: %v", err)
	}
}

func TestOneHotEmbedding(t *testing.T) {
	ids := cpu.Vector(1, 0)

	_, got := apply(t, operators.OneHot(2), ids)
	if !reflect.DeepEqual(got, []float64{0, 1, 1, 0}) {
		t.Errorf("onehot = %v", got)
	}

	e := operators.Embedding(3, 2).Init(initializers.Constant(7))
	g, got := apply(t, e, ids)
	if !reflect.DeepEqual(got, []float64{7, 7, 7, 7}) {
		t.Errorf("embedding = %v", got)
	}
	if g.NumParams() != 6 {
		t.Errorf("NumParams() = %d", g.NumParams())
	}
}

func TestFlatten(t *testing.T) {
	in, err := cpu.NewTensor(ns.Shape{2, 2, 2}, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		t.Fatal(err)
	}

	g := ns.New("net", ns.WithBackend(cpu.New()))
	g.Add(operators.Flatten())

	out, err := g.Invoke(in)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Shape().Equal(ns.Shape{2, 4}) {
		t.Errorf("flatten shape = %v", out.Shape())
	}
}

func TestRegistry(t *testing.T) {
	cases := []struct {
		identifier string
		typeString string
		fail       bool
	}{
		{"relu", "relu", false},
		{"lrelu:0.1", "lrelu", false},
		{"elu", "elu", false},
		{"logistic", "sigmoid", false},
		{"identity", "id", false},
		{"softmax:logits=true", "softmax", false},
		{"fc:10", "fc", false},
		{"dense:10,bias=false", "fc", false},
		{"add:1", "add", false},
		{"mult:-2", "mult", false},
		{"dropout:0.8", "dropout", false},
		{"onehot:5", "onehot", false},
		{"embedding:vocab=10,dim=4", "embedding", false},
		{"rescale:lower=0", "rescale", false},
		{"flatten", "flatten", false},
		{"relu:1", "", true},
		{"fc", "", true},
		{"fc:0", "", true},
		{"fc:10,units=3", "", true},
		{"add", "", true},
		{"dropout:0", "", true},
		{"embedding:vocab=10", "", true},
		{"rescale:from_upper=0", "", true},
		{"not_an_operator", "", true},
	}

	for _, c := range cases {
		op, err := ns.GetOperator(c.identifier)
		if c.fail {
			if err == nil {
				t.Errorf("%q: expected error", c.identifier)
			}
			continue
		}

		if err != nil {
			t.Errorf("%q: %v", c.identifier, err)
		} else if op.TypeString() != c.typeString {
			t.Errorf("%q: TypeString() = %q, want %q", c.identifier, op.TypeString(), c.typeString)
		}
	}
}

func TestSetDefault(t *testing.T) {
	if err := operators.SetDefault("lrelu-alpha", math.NaN()); err == nil {
		t.Error("expected error for NaN")
	}
	if err := operators.SetDefault("bogus", 1); err == nil {
		t.Error("expected error for unknown name")
	}

	operators.SetDefault_Lazy("dropout-keep", 0.9)
	defer operators.SetDefault_Lazy("dropout-keep", 0.5)

	op, err := ns.GetOperator("dropout")
	if err != nil {
		t.Fatal(err)
	}
	if op != ns.Operator(operators.Dropout(0.9)) {
		t.Errorf("default not applied: %v", op)
	}
}
